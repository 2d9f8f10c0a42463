package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/redis-nav/internal/format"
	"github.com/studiowebux/redis-nav/internal/redisstore"
	"github.com/studiowebux/redis-nav/internal/tree"
)

func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderTreePane(), m.renderRightColumn()),
		m.renderStatusBar(),
	)

	switch m.mode {
	case ModeHelp:
		return m.overlayDialog(main, renderHelpDialog(m.registry, m.updateLine()))
	case ModeConfirm:
		return m.overlayDialog(main, renderConfirmDialog(m.pendingDelete.key, m.confirmInput.View()))
	case ModeProtection:
		return m.overlayDialog(main, renderProtectionDialog(m.protectionKey, m.policy, m.confirmInput.View()))
	case ModeDiffPreview:
		return m.overlayDialog(main, renderDiffDialog(m.pendingWrite))
	case ModeHistory:
		return m.overlayDialog(main, renderHistoryDialog(m.recentVisits))
	}
	return main
}

// updateLine is the Help dialog's one-line notice for a pending release,
// empty until checkForUpdateCmd's result arrives and finds one.
func (m *Model) updateLine() string {
	if !m.updateAvailable {
		return ""
	}
	return fmt.Sprintf("update available: v%s — %s", m.updateVersion, m.updateURL)
}

func (m *Model) treeWidth() int {
	return m.width * TreePanePercent / 100
}

func (m *Model) renderTreePane() string {
	width := m.treeWidth()
	height := m.height - MainViewHeightOffset

	var b strings.Builder
	for i, row := range m.rows {
		line := renderTreeRow(row)
		if i == m.cursor {
			line = treeSelectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	content := b.String()
	if m.mode == ModeSearch {
		content = m.search.View() + "\n" + content
	}

	return borderStyle.Width(width - ViewportBorderWidth).Height(height - ViewportBorderWidth).Render(content)
}

func renderTreeRow(row tree.Row) string {
	indent := strings.Repeat("  ", row.Depth)
	var icon string
	switch {
	case row.ChildCount == 0 && !row.IsFolder:
		icon = "    "
	case row.ChildCount == 0:
		icon = "[ ] "
	case row.Expanded:
		icon = "[-] "
	default:
		icon = "[+] "
	}

	name := row.Name
	if row.IsFolder {
		name = treeFolderStyle.Render(name)
	} else {
		name = treeKeyStyle.Render(name)
	}
	// A leaf can itself have children (a:b coexisting with a:b:c); show the
	// count regardless of kind.
	if row.ChildCount > 0 {
		name = fmt.Sprintf("%s (%d)", name, row.ChildCount)
	}

	return indent + icon + name
}

func (m *Model) renderRightColumn() string {
	width := m.width - m.treeWidth()
	valuePane := borderStyle.Width(width - ViewportBorderWidth).Height(m.valueViewport.Height).Render(m.valueViewport.View())
	infoBar := m.renderInfoBar(width)
	return lipgloss.JoinVertical(lipgloss.Left, valuePane, infoBar)
}

func (m *Model) renderInfoBar(width int) string {
	if m.selectedKey == "" || !m.valueLoaded {
		return borderStyle.Width(width - ViewportBorderWidth).Height(InfoBarHeight - ViewportBorderWidth).Render(" (no key selected)")
	}

	ttlText := ttlLabel(m.selectedTTL)
	size := valueSize(m.selectedValue)

	editHint := "[e]dit"
	if m.readonly || m.selectedType != redisstore.TypeString {
		editHint = "[readonly]"
	}

	line := fmt.Sprintf(" Type: %s | TTL: %s | Size: %d |%s", m.selectedType.String(), ttlText, size, editHint)
	return borderStyle.Width(width - ViewportBorderWidth).Height(InfoBarHeight - ViewportBorderWidth).Render(line)
}

func ttlLabel(ttl int64) string {
	switch {
	case ttl == -2:
		return "missing"
	case ttl == -1:
		return "no expiry"
	default:
		return ttlStyle(ttl).Render(formatTTL(ttl))
	}
}

// formatTTL renders a non-negative TTL in whichever unit keeps the number
// small, matching the Rust info bar: seconds under a minute, minutes under
// an hour, hours otherwise.
func formatTTL(ttl int64) string {
	switch {
	case ttl < 60:
		return fmt.Sprintf("%ds", ttl)
	case ttl < 3600:
		return fmt.Sprintf("%dm", ttl/60)
	default:
		return fmt.Sprintf("%dh", ttl/3600)
	}
}

func valueSize(v redisstore.Value) int {
	switch v.Type {
	case redisstore.TypeString:
		return len(v.String)
	case redisstore.TypeList:
		return len(v.List)
	case redisstore.TypeSet:
		return len(v.Set)
	case redisstore.TypeOrderedSet:
		return len(v.ZSet)
	case redisstore.TypeHash:
		return len(v.Hash)
	default:
		return 0
	}
}

func (m *Model) renderStatusBar() string {
	if m.errMessage != "" {
		return errorStyle.Render(" " + m.errMessage)
	}
	if m.statusMessage != "" {
		return statusBarStyle.Render(" " + m.statusMessage)
	}
	return statusBarStyle.Render(" ? for help")
}

// renderValueBody renders the typed value as display lines, per the format
// contract: strings get JSON pretty-printing and syntax highlighting when
// detected as JSON, other structures get their per-type line renderer, and
// anything binary gets a hex dump.
func renderValueBody(v redisstore.Value, dt redisstore.DataType) string {
	switch dt {
	case redisstore.TypeString:
		raw := []byte(v.String)
		switch format.Detect(raw) {
		case format.Json:
			pretty, err := format.PrettyJSON(v.String)
			if err == nil {
				lines, err := format.HighlightJSON(pretty)
				if err == nil {
					return strings.Join(lines, "\n")
				}
				return pretty
			}
			return v.String
		case format.Binary:
			return strings.Join(format.HexDump(raw), "\n")
		default:
			return v.String
		}

	case redisstore.TypeList:
		return strings.Join(format.ListLines(v.List), "\n")

	case redisstore.TypeSet:
		return strings.Join(format.SetLines(v.Set), "\n")

	case redisstore.TypeOrderedSet:
		lines := make([]string, len(v.ZSet))
		for i, member := range v.ZSet {
			lines[i] = format.OrderedSetLines(member.Member, member.Score)
		}
		return strings.Join(lines, "\n")

	case redisstore.TypeHash:
		lines := make([]string, len(v.Hash))
		for i, f := range v.Hash {
			lines[i] = format.HashLines(f.Name, f.Value)
		}
		return strings.Join(lines, "\n")

	case redisstore.TypeStream:
		return "<stream values are not displayed>"

	default:
		return ""
	}
}
