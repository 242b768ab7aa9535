package svgcard

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Column widths in characters. The cards are drawn in a monospace font, so
// every line is padded with dots or spaces to these widths to keep the right
// edge aligned.
const (
	lineWidth   = 58
	headerWidth = 60

	activityLeftWidth  = 28
	activityRightWidth = 26
	statsLeftWidth     = 32
	statsRightWidth    = 22
)

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// dotsFor pads a key/value pair out to the column width. A line always keeps
// at least two dots so the leader stays visible even when the value is long.
func dotsFor(width int) string {
	if width < 2 {
		width = 2
	}
	return strings.Repeat(".", width)
}

// makeHeader draws a section rule: "- Title ----—-" stretched to the header
// width with em dashes.
func makeHeader(x, y int, title string) string {
	prefix := fmt.Sprintf("- %s ", title)
	dashes := headerWidth - utf8.RuneCountInString(prefix) - 3
	if dashes < 1 {
		dashes = 1
	}
	return fmt.Sprintf(`<tspan x="%d" y="%d">%s</tspan>%s-—-`,
		x, y, escapeXML(prefix), strings.Repeat("—", dashes))
}

// makeLine draws ". Key: ....... Value" padded to width characters.
func makeLine(x, y int, key, value string, width int) string {
	used := utf8.RuneCountInString(key) + 4 + utf8.RuneCountInString(value)
	return fmt.Sprintf(`<tspan x="%d" y="%d" class="cc">. </tspan>`+
		`<tspan class="key">%s</tspan>:`+
		`<tspan class="cc"> %s </tspan>`+
		`<tspan class="value">%s</tspan>`,
		x, y, escapeXML(key), dotsFor(width-used), escapeXML(value))
}

// makeDottedLine is makeLine with a two-part key joined by a literal dot,
// used for the "Languages.Programming" style rows.
func makeDottedLine(x, y int, key, subkey, value string, width int) string {
	used := utf8.RuneCountInString(key) + utf8.RuneCountInString(subkey) + 5 +
		utf8.RuneCountInString(value)
	return fmt.Sprintf(`<tspan x="%d" y="%d" class="cc">. </tspan>`+
		`<tspan class="key">%s</tspan>.<tspan class="key">%s</tspan>:`+
		`<tspan class="cc"> %s </tspan>`+
		`<tspan class="value">%s</tspan>`,
		x, y, escapeXML(key), escapeXML(subkey), dotsFor(width-used), escapeXML(value))
}

// makeDoubleLine draws two key/value pairs on one row separated by a pipe.
// The left pair is padded to leftWidth and the right pair to rightWidth.
func makeDoubleLine(x, y int, key, value, key2, value2 string, leftWidth, rightWidth int) string {
	used := utf8.RuneCountInString(key) + 4 + utf8.RuneCountInString(value)
	used2 := utf8.RuneCountInString(key2) + 2 + utf8.RuneCountInString(value2)
	return fmt.Sprintf(`<tspan x="%d" y="%d" class="cc">. </tspan>`+
		`<tspan class="key">%s</tspan>:`+
		`<tspan class="cc"> %s </tspan>`+
		`<tspan class="value">%s</tspan>`+
		`<tspan class="cc"> | </tspan>`+
		`<tspan class="key">%s</tspan>:`+
		`<tspan class="cc"> %s </tspan>`+
		`<tspan class="value">%s</tspan>`,
		x, y, escapeXML(key), dotsFor(leftWidth-used), escapeXML(value),
		escapeXML(key2), dotsFor(rightWidth-used2), escapeXML(value2))
}

// makeLOCLine draws the lines-of-code row: the net total on the left and the
// "+adds++, -dels--" diff pair right-aligned after a pipe.
func makeLOCLine(x, y int, total, adds, dels string, leftWidth, rightWidth int) string {
	used := utf8.RuneCountInString("Lines of Code") + 4 + utf8.RuneCountInString(total)
	addText := adds + "++"
	delText := dels + "--"
	spaces := rightWidth - (utf8.RuneCountInString(addText) + 2 + utf8.RuneCountInString(delText))
	if spaces < 1 {
		spaces = 1
	}
	return fmt.Sprintf(`<tspan x="%d" y="%d" class="cc">. </tspan>`+
		`<tspan class="key">Lines of Code</tspan>:`+
		`<tspan class="cc"> %s </tspan>`+
		`<tspan class="value">%s</tspan>`+
		`<tspan class="cc"> |%s</tspan>`+
		`<tspan class="add">%s</tspan>`+
		`<tspan class="cc">, </tspan>`+
		`<tspan class="del">%s</tspan>`,
		x, y, dotsFor(leftWidth-used), escapeXML(total),
		strings.Repeat(" ", spaces), addText, delText)
}

// blankLine draws an empty connector row that keeps the left gutter dots
// aligned between sections.
func blankLine(x, y int) string {
	return fmt.Sprintf(`<tspan x="%d" y="%d" class="cc">. </tspan>`, x, y)
}
