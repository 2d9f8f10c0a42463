package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/redis-nav/internal/history"
	"github.com/studiowebux/redis-nav/internal/keybinds"
	"github.com/studiowebux/redis-nav/internal/protection"
)

// overlayDialog replaces the frame with dialog, centered, matching
// centered_rect(60, 50): the dialog box occupies roughly 60% of width and
// 50% of height. base is accepted for symmetry with the normal render path
// but bubbletea has no cheap way to composite over it, so the main view is
// simply not drawn while a dialog is open.
func (m *Model) overlayDialog(base, dialog string) string {
	_ = base
	width := m.width * DialogWidthPercent / 100
	height := m.height * DialogHeightPercent / 100
	box := lipgloss.NewStyle().Width(width).Height(height).Render(dialog)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func renderHelpDialog(registry *keybinds.Registry, updateLine string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Keybindings"))
	b.WriteString("\n\n")

	for _, binding := range registry.ListBindings(keybinds.ContextNormal) {
		fmt.Fprintf(&b, "  %-10s %s\n", binding.Key, binding.Action)
	}
	b.WriteString("\n")
	if updateLine != "" {
		b.WriteString(ttlWarningStyle.Render(updateLine))
		b.WriteString("\n\n")
	}
	b.WriteString(statusBarStyle.Render("[q/esc] close"))

	return dialogStyle.Render(b.String())
}

func renderHistoryDialog(entries []history.Entry) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Recent Visits"))
	b.WriteString("\n\n")

	if len(entries) == 0 {
		b.WriteString(statusBarStyle.Render("no visits recorded yet"))
	} else {
		for _, e := range entries {
			fmt.Fprintf(&b, "  %s  %-6s %s\n", formatTimestamp(e.Timestamp), e.Type, e.Key)
		}
	}

	b.WriteString("\n")
	b.WriteString(statusBarStyle.Render("[q/esc] close"))
	return dialogStyle.Render(b.String())
}

func renderConfirmDialog(key, input string) string {
	title := titleStyle.Render("Confirm Delete")
	body := fmt.Sprintf("Type 'yes' to delete %q, Esc to cancel\n\n%s", key, input)
	return warnDialogStyle.Render(title + "\n\n" + body)
}

func renderProtectionDialog(key string, policy *protection.Policy, input string) string {
	level := policy.Classify(key)
	prefix := policy.MatchedPrefix(key)

	title := titleStyle.Render("Protected Namespace")
	var body, footer string
	var style lipgloss.Style

	switch level {
	case protection.Warn:
		style = warnDialogStyle
		body = fmt.Sprintf("%q is under protected namespace %q.", key, prefix)
		footer = "press any key to continue"
	case protection.Confirm:
		style = warnDialogStyle
		body = fmt.Sprintf("%q is under protected namespace %q.\n\n%s", key, prefix, input)
		footer = "type 'yes' to confirm, Esc to cancel"
	case protection.Block:
		style = blockDialogStyle
		body = fmt.Sprintf("%q is under protected namespace %q.", key, prefix)
		footer = "not allowed, Esc to close"
	}

	return style.Render(title + "\n\n" + body + "\n\n" + statusBarStyle.Render(footer))
}

func renderDiffDialog(pw *pendingWrite) string {
	if pw == nil {
		return ""
	}
	title := titleStyle.Render(fmt.Sprintf("Diff preview: %s", pw.key))
	diff := renderDiff(string(pw.oldValue), string(pw.newValue))
	footer := statusBarStyle.Render("[Enter] Write to Redis    [Esc] Cancel")
	return dialogStyle.Render(title + "\n\n" + diff + "\n\n" + footer)
}

// renderDiff is a naive line-by-line diff: lines equal at the same index
// render as context, otherwise the old line renders removed and the new
// line renders added. This matches the original tool's diff preview, which
// favors speed and clarity over a minimal edit script.
func renderDiff(oldText, newText string) string {
	oldLines := strings.Split(oldText, "\n")
	newLines := strings.Split(newText, "\n")

	max := len(oldLines)
	if len(newLines) > max {
		max = len(newLines)
	}

	var b strings.Builder
	for i := 0; i < max; i++ {
		var oldLine, newLine string
		hasOld := i < len(oldLines)
		hasNew := i < len(newLines)
		if hasOld {
			oldLine = oldLines[i]
		}
		if hasNew {
			newLine = newLines[i]
		}

		switch {
		case hasOld && hasNew && oldLine == newLine:
			b.WriteString(diffContextStyle.Render("  " + oldLine))
			b.WriteString("\n")
		case hasOld && hasNew:
			b.WriteString(diffRemoveStyle.Render("- " + oldLine))
			b.WriteString("\n")
			b.WriteString(diffAddStyle.Render("+ " + newLine))
			b.WriteString("\n")
		case hasOld:
			b.WriteString(diffRemoveStyle.Render("- " + oldLine))
			b.WriteString("\n")
		case hasNew:
			b.WriteString(diffAddStyle.Render("+ " + newLine))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
