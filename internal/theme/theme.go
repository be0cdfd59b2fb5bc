package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	Background tcell.Color

	// Tree rows
	TreeNormalText   tcell.Color
	TreeSelectedItem tcell.Color
	TreeSelectedBg   tcell.Color
	TreeArrow        tcell.Color
	TreeChildCount   tcell.Color

	// Checkboxes
	CheckboxChecked       tcell.Color
	CheckboxIndeterminate tcell.Color
	CheckboxUnchecked     tcell.Color

	// Filter prompt
	FilterLabel  tcell.Color
	FilterText   tcell.Color
	FilterCursor tcell.Color

	// Command line
	CommandPrompt tcell.Color
	CommandText   tcell.Color

	// Help overlay
	HelpBackground tcell.Color
	HelpBorder     tcell.Color
	HelpTitle      tcell.Color
	HelpContent    tcell.Color

	// Status line and header
	StatusMode    tcell.Color
	StatusMessage tcell.Color
	HeaderTitle   tcell.Color
	EmptyState    tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	d := tcell.ColorDefault
	return &Theme{
		Name: "default",
		Colors: Colors{
			Background:            d,
			TreeNormalText:        d,
			TreeSelectedItem:      d,
			TreeSelectedBg:        d,
			TreeArrow:             d,
			TreeChildCount:        d,
			CheckboxChecked:       d,
			CheckboxIndeterminate: d,
			CheckboxUnchecked:     d,
			FilterLabel:           d,
			FilterText:            d,
			FilterCursor:          d,
			CommandPrompt:         d,
			CommandText:           d,
			HelpBackground:        d,
			HelpBorder:            d,
			HelpTitle:             d,
			HelpContent:           d,
			StatusMode:            d,
			StatusMessage:         d,
			HeaderTitle:           d,
			EmptyState:            d,
		},
	}
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			Background:            HexToColor("#1a1b26"),
			TreeNormalText:        HexToColor("#c0caf5"),
			TreeSelectedItem:      HexToColor("#7aa2f7"),
			TreeSelectedBg:        Blend("#1a1b26", "#7aa2f7", 0.2),
			TreeArrow:             HexToColor("#7dcfff"),
			TreeChildCount:        HexToColor("#565f89"),
			CheckboxChecked:       HexToColor("#9ece6a"),
			CheckboxIndeterminate: HexToColor("#e0af68"),
			CheckboxUnchecked:     HexToColor("#565f89"),
			FilterLabel:           HexToColor("#bb9af7"),
			FilterText:            HexToColor("#c0caf5"),
			FilterCursor:          HexToColor("#7aa2f7"),
			CommandPrompt:         HexToColor("#bb9af7"),
			CommandText:           HexToColor("#c0caf5"),
			HelpBackground:        HexToColor("#1a1b26"),
			HelpBorder:            HexToColor("#7dcfff"),
			HelpTitle:             HexToColor("#bb9af7"),
			HelpContent:           HexToColor("#c0caf5"),
			StatusMode:            HexToColor("#bb9af7"),
			StatusMessage:         HexToColor("#9ece6a"),
			HeaderTitle:           HexToColor("#bb9af7"),
			EmptyState:            HexToColor("#f7768e"),
		},
	}
}
