package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tmih06/profilegen/pkg/styles"
	"github.com/tmih06/profilegen/pkg/tty"
)

// Layout helpers build composable blocks of styled output. In a terminal they
// render lipgloss boxes; when output is piped they fall back to plain text so
// logs stay grep-friendly.

// LayoutTitleBox renders a titled banner constrained to the given width.
func LayoutTitleBox(title string, width int) string {
	if !tty.IsStderrTerminal() {
		separator := strings.Repeat("─", width)
		return separator + "\n" + title + "\n" + separator
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.ColorPurple).
		Padding(0, 1).
		Width(width)
	return box.Render(styles.Title.Render(title))
}

// LayoutInfoSection renders a single "Label: value" line.
func LayoutInfoSection(label, value string) string {
	return styles.Bold.Render(label+":") + " " + value
}

// LayoutEmphasisBox renders content inside a colored border to draw the eye.
func LayoutEmphasisBox(content string, color lipgloss.AdaptiveColor) string {
	if !tty.IsStderrTerminal() {
		return content
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)
	return box.Render(content)
}

// LayoutJoinVertical stacks sections top to bottom. Empty input renders as an
// empty string; empty sections act as spacing.
func LayoutJoinVertical(sections ...string) string {
	if len(sections) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
