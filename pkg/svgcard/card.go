package svgcard

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tmih06/profilegen/pkg/logger"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var cardLog = logger.New("svgcard:render")

var numberPrinter = message.NewPrinter(language.English)

const (
	combinedWidth = 985
	infoWidth     = 610
	asciiWidth    = 390

	minHeight    = 600
	maxASCIIRows = 25
)

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

// Contact is one row of the Contact section.
type Contact struct {
	Label string
	Value string
}

// Data holds everything the cards render. Numeric fields are formatted by
// the renderer, so callers pass raw counts.
type Data struct {
	Title  string
	OS     string
	Uptime string
	Host   string
	Kernel string
	IDE    string

	LanguagesProgramming string
	LanguagesReal        string
	HobbiesSoftware      string
	HobbiesHardware      string

	Contacts []Contact
	ASCIIArt []string

	Commits       int
	PRsOpened     int
	PRsReviewed   int
	Issues        int
	CurrentStreak int
	LongestStreak int
	BestDayCount  int
	AvgPerDay     float64

	Repos         int
	Stars         int
	Contributions int
	Followers     int

	Additions int
	Deletions int
}

// Output is one rendered card file.
type Output struct {
	Name    string
	Content string
}

// Height returns the card height in pixels. The info column grows with the
// number of contact rows; short columns are padded up to the minimum height
// so the card never looks cramped.
func Height(d *Data) int {
	h := 540 + 20*len(d.Contacts)
	if h < minHeight {
		h = minHeight
	}
	return h
}

// Combined renders the full card: ASCII art on the left, info column on the
// right.
func (p Palette) Combined(d *Data) string {
	h := Height(d)
	lines := []string{xmlDeclaration, svgOpen(combinedWidth, h)}
	lines = append(lines, p.styleLines()...)
	lines = append(lines, rectLine(combinedWidth, h, p.Background))
	lines = append(lines, fmt.Sprintf(`<text x="15" y="30" fill="%s" class="ascii">`, p.Text))
	lines = append(lines, asciiSpans(d.ASCIIArt)...)
	lines = append(lines, "</text>")
	lines = append(lines, fmt.Sprintf(`<text x="390" y="30" fill="%s">`, p.Text))
	lines = append(lines, infoColumn(d, 390)...)
	lines = append(lines, "</text>", "</svg>")
	return strings.Join(lines, "\n")
}

// Info renders the info column on its own.
func (p Palette) Info(d *Data) string {
	h := Height(d)
	lines := []string{xmlDeclaration, svgOpen(infoWidth, h)}
	lines = append(lines, p.styleLines()...)
	lines = append(lines, rectLine(infoWidth, h, p.Background))
	lines = append(lines, fmt.Sprintf(`<text x="15" y="30" fill="%s">`, p.Text))
	lines = append(lines, infoColumn(d, 15)...)
	lines = append(lines, "</text>", "</svg>")
	return strings.Join(lines, "\n")
}

// ASCIIOnly renders just the ASCII art block. The height is passed in so the
// split cards line up with the combined one.
func (p Palette) ASCIIOnly(art []string, height int) string {
	lines := []string{
		xmlDeclaration,
		svgOpen(asciiWidth, height),
		"<style>",
		"text, tspan {white-space: pre;}",
		"</style>",
		rectLine(asciiWidth, height, p.Background),
		fmt.Sprintf(`<text x="15" y="30" fill="%s" class="ascii">`, p.Text),
	}
	lines = append(lines, asciiSpans(art)...)
	lines = append(lines, "</text>", "</svg>")
	return strings.Join(lines, "\n")
}

// infoColumn lays out the shared info column at the given x offset. Rows are
// 20px apart; the Activity and Stats sections float below the contact rows.
func infoColumn(d *Data, x int) []string {
	lines := []string{
		makeHeader(x, 30, d.Title),
		makeLine(x, 50, "OS", d.OS, lineWidth),
		makeLine(x, 70, "Uptime", d.Uptime, lineWidth),
		makeLine(x, 90, "Host", d.Host, lineWidth),
		makeLine(x, 110, "Kernel", d.Kernel, lineWidth),
		makeLine(x, 130, "IDE", d.IDE, lineWidth),
		blankLine(x, 150),
		makeDottedLine(x, 170, "Languages", "Programming", d.LanguagesProgramming, lineWidth),
		makeDottedLine(x, 190, "Languages", "Real", d.LanguagesReal, lineWidth),
		blankLine(x, 210),
		makeDottedLine(x, 230, "Hobbies", "Software", d.HobbiesSoftware, lineWidth),
		makeDottedLine(x, 250, "Hobbies", "Hardware", d.HobbiesHardware, lineWidth),
		makeHeader(x, 290, "Contact"),
	}
	y := 310
	for _, c := range d.Contacts {
		lines = append(lines, makeLine(x, y, c.Label, c.Value, lineWidth))
		y += 20
	}

	activityY := 290 + 20 + len(d.Contacts)*20 + 20
	lines = append(lines,
		makeHeader(x, activityY, "Activity"),
		makeDoubleLine(x, activityY+20,
			"Commits", comma(d.Commits),
			"PRs Opened", strconv.Itoa(d.PRsOpened),
			activityLeftWidth, activityRightWidth),
		makeDoubleLine(x, activityY+40,
			"PRs Reviewed", strconv.Itoa(d.PRsReviewed),
			"Issues", strconv.Itoa(d.Issues),
			activityLeftWidth, activityRightWidth),
		makeDoubleLine(x, activityY+60,
			"Current Streak", fmt.Sprintf("%d days", d.CurrentStreak),
			"Longest Streak", fmt.Sprintf("%d days", d.LongestStreak),
			activityLeftWidth, activityRightWidth),
		makeDoubleLine(x, activityY+80,
			"Best Day", fmt.Sprintf("%d commits", d.BestDayCount),
			"Avg", fmt.Sprintf("~%.2f/day", d.AvgPerDay),
			activityLeftWidth, activityRightWidth),
	)

	statsY := activityY + 120
	lines = append(lines,
		makeHeader(x, statsY, "GitHub Stats"),
		makeDoubleLine(x, statsY+20,
			"Repos", strconv.Itoa(d.Repos),
			"Stars", strconv.Itoa(d.Stars),
			statsLeftWidth, statsRightWidth),
		makeDoubleLine(x, statsY+40,
			"Contributions", comma(d.Contributions),
			"Followers", strconv.Itoa(d.Followers),
			statsLeftWidth, statsRightWidth),
		makeLOCLine(x, statsY+60,
			comma(d.Additions-d.Deletions), comma(d.Additions), comma(d.Deletions),
			statsLeftWidth, statsRightWidth),
	)
	return lines
}

func asciiSpans(art []string) []string {
	if len(art) > maxASCIIRows {
		art = art[:maxASCIIRows]
	}
	spans := make([]string, 0, len(art))
	for i, line := range art {
		spans = append(spans, fmt.Sprintf(`<tspan x="15" y="%d">%s</tspan>`, 30+i*20, escapeXML(line)))
	}
	return spans
}

func svgOpen(width, height int) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" font-family="Consolas,monospace" width="%dpx" height="%dpx" font-size="16px">`, width, height)
}

func rectLine(width, height int, fill string) string {
	return fmt.Sprintf(`<rect width="%dpx" height="%dpx" fill="%s" rx="15"/>`, width, height, fill)
}

func (p Palette) styleLines() []string {
	return []string{
		"<style>",
		fmt.Sprintf(".key {fill: %s;}", p.Key),
		fmt.Sprintf(".value {fill: %s;}", p.Value),
		fmt.Sprintf(".cc {fill: %s;}", p.Dot),
		fmt.Sprintf(".add {fill: %s;}", p.Add),
		fmt.Sprintf(".del {fill: %s;}", p.Del),
		"text, tspan {white-space: pre;}",
		"</style>",
	}
}

func comma(n int) string {
	return numberPrinter.Sprintf("%d", n)
}

// RenderAll renders the six card files in their write order: the combined
// dark and light cards, then the split ASCII and info cards.
func RenderAll(d *Data) []Output {
	h := Height(d)
	return []Output{
		{Name: "dark_mode.svg", Content: Dark.Combined(d)},
		{Name: "light_mode.svg", Content: Light.Combined(d)},
		{Name: "ascii_dark.svg", Content: Dark.ASCIIOnly(d.ASCIIArt, h)},
		{Name: "ascii_light.svg", Content: Light.ASCIIOnly(d.ASCIIArt, h)},
		{Name: "info_dark.svg", Content: Dark.Info(d)},
		{Name: "info_light.svg", Content: Light.Info(d)},
	}
}

// WriteAll renders every card into dir. Files are written through a temp
// file and renamed so readers never observe a half written SVG. The written
// filenames are returned in order.
func WriteAll(dir string, d *Data) ([]string, error) {
	outs := RenderAll(d)
	names := make([]string, 0, len(outs))
	for _, out := range outs {
		if err := writeFileAtomic(filepath.Join(dir, out.Name), []byte(out.Content)); err != nil {
			return names, fmt.Errorf("failed to write %s: %w", out.Name, err)
		}
		cardLog.Printf("wrote %s (%d bytes)", out.Name, len(out.Content))
		names = append(names, out.Name)
	}
	return names, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
