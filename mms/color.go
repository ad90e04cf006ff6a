package mms

import "fmt"

// CellColor is a display color for a maze cell. The wire form is a single
// letter; dark variants use the uppercase letter of their base color
// (gray is "a" to keep "g" for green).
type CellColor int

const (
	ColorBlack CellColor = iota
	ColorBlue
	ColorGray
	ColorCyan
	ColorGreen
	ColorOrange
	ColorRed
	ColorWhite
	ColorYellow
	ColorDarkBlue
	ColorDarkCyan
	ColorDarkGray
	ColorDarkGreen
	ColorDarkRed
	ColorDarkYellow
)

var colorLetters = map[CellColor]string{
	ColorBlack:      "k",
	ColorBlue:       "b",
	ColorGray:       "a",
	ColorCyan:       "c",
	ColorGreen:      "g",
	ColorOrange:     "o",
	ColorRed:        "r",
	ColorWhite:      "w",
	ColorYellow:     "y",
	ColorDarkBlue:   "B",
	ColorDarkCyan:   "C",
	ColorDarkGray:   "A",
	ColorDarkGreen:  "G",
	ColorDarkRed:    "R",
	ColorDarkYellow: "Y",
}

var colorNames = map[CellColor]string{
	ColorBlack:      "black",
	ColorBlue:       "blue",
	ColorGray:       "gray",
	ColorCyan:       "cyan",
	ColorGreen:      "green",
	ColorOrange:     "orange",
	ColorRed:        "red",
	ColorWhite:      "white",
	ColorYellow:     "yellow",
	ColorDarkBlue:   "dark blue",
	ColorDarkCyan:   "dark cyan",
	ColorDarkGray:   "dark gray",
	ColorDarkGreen:  "dark green",
	ColorDarkRed:    "dark red",
	ColorDarkYellow: "dark yellow",
}

// ParseColor parses the single-letter wire form.
func ParseColor(s string) (CellColor, error) {
	for c, letter := range colorLetters {
		if s == letter {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// Letter returns the single-letter wire form.
func (c CellColor) Letter() string {
	if l, ok := colorLetters[c]; ok {
		return l
	}
	return "?"
}

// String returns a human-readable name.
func (c CellColor) String() string {
	if n, ok := colorNames[c]; ok {
		return n
	}
	return "unknown"
}
