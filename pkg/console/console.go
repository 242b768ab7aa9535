// Package console formats all user-facing CLI output: status messages with
// icons, compiler-style positioned errors, tables, and progress feedback.
// Everything renders through lipgloss so colors degrade gracefully on dumb
// terminals, and anything interactive is gated on TTY detection.
package console

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tmih06/profilegen/pkg/styles"
)

// ErrorPosition identifies a location in a source file.
type ErrorPosition struct {
	File   string
	Line   int
	Column int
}

// CompilerError is a positioned diagnostic with optional source context.
// Context holds the source lines surrounding the error; the errored line sits
// in the middle of the slice.
type CompilerError struct {
	Position ErrorPosition
	Type     string // "error" or "warning"
	Message  string
	Context  []string
	Hint     string
}

// FormatError renders a CompilerError in the familiar file:line:column form
// with numbered context lines.
func FormatError(e CompilerError) string {
	var b strings.Builder

	location := fmt.Sprintf("%s:%d:%d:", ToRelativePath(e.Position.File), e.Position.Line, e.Position.Column)
	kind := e.Type
	if kind == "" {
		kind = "error"
	}
	kindStyle := styles.Error
	if kind == "warning" {
		kindStyle = styles.Warning
	}
	b.WriteString(fmt.Sprintf("%s %s %s\n", styles.Bold.Render(location), kindStyle.Render(kind+":"), e.Message))

	if len(e.Context) > 0 {
		start := e.Position.Line - len(e.Context)/2
		if start < 1 {
			start = 1
		}
		width := len(strconv.Itoa(start + len(e.Context) - 1))
		for i, line := range e.Context {
			number := start + i
			b.WriteString(fmt.Sprintf("  %*d | %s\n", width, number, line))
			if number == e.Position.Line && e.Position.Column > 0 {
				b.WriteString(fmt.Sprintf("  %s | %s^\n", strings.Repeat(" ", width), strings.Repeat(" ", e.Position.Column-1)))
			}
		}
	}

	return b.String()
}

// FormatErrorWithSuggestions renders an error message followed by a bulleted
// list of next steps. The suggestions section is omitted when empty.
func FormatErrorWithSuggestions(message string, suggestions []string) string {
	var b strings.Builder
	b.WriteString(FormatErrorMessage(message))
	b.WriteString("\n")
	if len(suggestions) > 0 {
		b.WriteString("Suggestions:\n")
		for _, s := range suggestions {
			b.WriteString(fmt.Sprintf("  %s %s\n", styles.Muted.Render("•"), s))
		}
	}
	return b.String()
}

// FormatInfoMessage renders an informational message.
func FormatInfoMessage(message string) string {
	return styles.Info.Render("ℹ") + " " + message
}

// FormatSuccessMessage renders a completion message.
func FormatSuccessMessage(message string) string {
	return styles.Success.Render("✓") + " " + message
}

// FormatWarningMessage renders a warning.
func FormatWarningMessage(message string) string {
	return styles.Warning.Render("⚠") + " " + message
}

// FormatErrorMessage renders a failure.
func FormatErrorMessage(message string) string {
	return styles.Error.Render("✗") + " " + message
}

// FormatCommandMessage echoes a command the tool is about to run.
func FormatCommandMessage(command string) string {
	return styles.Muted.Render("$") + " " + command
}

// FormatProgressMessage renders an in-progress status line.
func FormatProgressMessage(message string) string {
	return styles.Info.Render("⏳") + " " + message
}

// FormatListItem renders one entry of a bulleted list.
func FormatListItem(item string) string {
	return "  " + styles.Muted.Render("•") + " " + item
}

// FormatLocationMessage renders a filesystem location notice.
func FormatLocationMessage(message string) string {
	return "📁 " + message
}

// FormatVerboseMessage renders detail text shown only in verbose runs.
func FormatVerboseMessage(message string) string {
	return styles.Muted.Render(message)
}

// LogVerbose prints a verbose message to stderr when enabled.
func LogVerbose(verbose bool, message string) {
	if verbose {
		fmt.Fprintln(os.Stderr, FormatVerboseMessage(message))
	}
}

// ToRelativePath converts an absolute path to one relative to the working
// directory when possible. Relative paths pass through unchanged.
func ToRelativePath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}
	return rel
}

// IsAccessibleMode reports whether accessible output was requested via the
// ACCESSIBLE environment variable. Interactive prompts and animations switch
// to plain alternatives when set.
func IsAccessibleMode() bool {
	return os.Getenv("ACCESSIBLE") != ""
}

// TableConfig describes a table for RenderTable.
type TableConfig struct {
	Title     string
	Headers   []string
	Rows      [][]string
	ShowTotal bool
	TotalRow  []string
}

// RenderTable renders a plain-text table with aligned columns. An empty
// config renders as an empty string.
func RenderTable(config TableConfig) string {
	if len(config.Headers) == 0 && len(config.Rows) == 0 {
		return ""
	}

	widths := make([]int, len(config.Headers))
	for i, h := range config.Headers {
		widths[i] = len(h)
	}
	measure := func(row []string) {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for _, row := range config.Rows {
		measure(row)
	}
	if config.ShowTotal {
		measure(config.TotalRow)
	}

	formatRow := func(row []string) string {
		cells := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		return strings.TrimRight(strings.Join(cells, "  "), " ")
	}

	separatorWidth := 0
	for _, w := range widths {
		separatorWidth += w
	}
	separatorWidth += 2 * (len(widths) - 1)
	separator := strings.Repeat("-", separatorWidth)

	var b strings.Builder
	if config.Title != "" {
		b.WriteString(styles.Title.Render(config.Title))
		b.WriteString("\n")
	}
	b.WriteString(styles.Bold.Render(formatRow(config.Headers)))
	b.WriteString("\n")
	b.WriteString(separator)
	b.WriteString("\n")
	for _, row := range config.Rows {
		b.WriteString(formatRow(row))
		b.WriteString("\n")
	}
	if config.ShowTotal && len(config.TotalRow) > 0 {
		b.WriteString(separator)
		b.WriteString("\n")
		b.WriteString(styles.Bold.Render(formatRow(config.TotalRow)))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderStruct renders any value as indented JSON with a trailing newline,
// for --json command output.
func RenderStruct(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(data) + "\n"
}

// RenderComposedSections joins pre-rendered sections vertically and writes
// them to stderr.
func RenderComposedSections(sections ...string) {
	if len(sections) == 0 {
		return
	}
	fmt.Fprintln(os.Stderr, LayoutJoinVertical(sections...))
}
