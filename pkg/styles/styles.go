// Package styles centralizes the lipgloss colors and text styles used by the
// CLI so output stays consistent across commands. Colors adapt to light and
// dark terminal backgrounds.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// ColorError is used for failures and fatal messages.
	ColorError = lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f85149"}

	// ColorWarning is used for recoverable problems.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#9a6700", Dark: "#d29922"}

	// ColorSuccess is used for completed operations.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#3fb950"}

	// ColorInfo is used for neutral informational output.
	ColorInfo = lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#58a6ff"}

	// ColorPurple is used for titles and emphasis.
	ColorPurple = lipgloss.AdaptiveColor{Light: "#8250df", Dark: "#bc8cff"}

	// ColorYellow is used for highlights such as pending states.
	ColorYellow = lipgloss.AdaptiveColor{Light: "#bf8700", Dark: "#e3b341"}

	// ColorMuted is used for de-emphasized detail text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#59636e", Dark: "#8b949e"}
)

var (
	Error   = lipgloss.NewStyle().Foreground(ColorError)
	Warning = lipgloss.NewStyle().Foreground(ColorWarning)
	Success = lipgloss.NewStyle().Foreground(ColorSuccess)
	Info    = lipgloss.NewStyle().Foreground(ColorInfo)
	Muted   = lipgloss.NewStyle().Foreground(ColorMuted)
	Bold    = lipgloss.NewStyle().Bold(true)
	Title   = lipgloss.NewStyle().Foreground(ColorPurple).Bold(true)
)
