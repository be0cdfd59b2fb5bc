package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Widths below are display columns, not bytes or runes.

// RuneWidth returns the display width of a single rune, treating control
// and combining characters as zero width
func RuneWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 0 {
		return 0
	}
	return w
}

// StringWidth returns the display width of a string
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateToWidth cuts s to at most maxWidth columns without splitting a rune
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxWidth, "")
}

// TruncateToWidthWithEllipsis truncates s with "…" when it exceeds maxWidth
func TruncateToWidthWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 1 {
		return TruncateToWidth(s, maxWidth)
	}
	return runewidth.Truncate(s, maxWidth, "…")
}

// PadStringToWidth pads s with spaces up to width columns
func PadStringToWidth(s string, width int) string {
	current := StringWidth(s)
	if current >= width {
		return s
	}
	return s + strings.Repeat(" ", width-current)
}

// ColumnOfRune returns the display column at which rune index i of s starts
func ColumnOfRune(s string, i int) int {
	col := 0
	for n, r := range []rune(s) {
		if n >= i {
			break
		}
		col += RuneWidth(r)
	}
	return col
}
