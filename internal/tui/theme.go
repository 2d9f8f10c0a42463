package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#0000ff"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
	colorWhite  = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"}
	colorBlack  = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#000000"}
)

var (
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	treeFolderStyle = lipgloss.NewStyle().Foreground(colorBlue)
	treeKeyStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	treeSelectedStyle = lipgloss.NewStyle().
				Foreground(colorBlack).
				Background(colorCyan).
				Bold(true)

	ttlNormalStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	ttlWarningStyle  = lipgloss.NewStyle().Foreground(colorYellow)
	ttlCriticalStyle = lipgloss.NewStyle().Foreground(colorRed).Bold(true)

	statusBarStyle = lipgloss.NewStyle().Foreground(colorGray)
	errorStyle     = lipgloss.NewStyle().Foreground(colorRed).Bold(true)

	diffAddStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	diffRemoveStyle = lipgloss.NewStyle().Foreground(colorRed)
	diffContextStyle = lipgloss.NewStyle().Foreground(colorGray)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorCyan).
			Padding(1, 2)

	warnDialogStyle = dialogStyle.BorderForeground(colorYellow)
	blockDialogStyle = dialogStyle.BorderForeground(colorRed)
)

// ttlStyle picks the TTL color threshold per §4.8/S6: red under 60s, yellow
// under 3600s, green otherwise; -1 (no expiry) and -2 (missing) render plain.
func ttlStyle(ttl int64) lipgloss.Style {
	switch {
	case ttl < 0:
		return statusBarStyle
	case ttl < 60:
		return ttlCriticalStyle
	case ttl < 3600:
		return ttlWarningStyle
	default:
		return ttlNormalStyle
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
