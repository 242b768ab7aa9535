// Package svgcard renders the profile stat cards as SVG files: a combined
// card (ASCII art next to the info column), an ASCII-only card, and an
// info-only card, each in a dark and a light palette. The markup is plain
// text tspans in a monospace font, so all alignment is done in characters
// with dot and space padding.
package svgcard

// Palette is one color scheme for the cards.
type Palette struct {
	Name       string
	Background string
	Text       string
	Key        string
	Value      string
	Dot        string
	Add        string
	Del        string
}

// Dark matches GitHub's dark dimmed code background.
var Dark = Palette{
	Name:       "dark",
	Background: "#161b22",
	Text:       "#c9d1d9",
	Key:        "#ffa657",
	Value:      "#a5d6ff",
	Dot:        "#616e7f",
	Add:        "#3fb950",
	Del:        "#f85149",
}

// Light matches GitHub's light theme.
var Light = Palette{
	Name:       "light",
	Background: "#ffffff",
	Text:       "#1f2328",
	Key:        "#953800",
	Value:      "#0550ae",
	Dot:        "#afb8c1",
	Add:        "#1a7f37",
	Del:        "#cf222e",
}
