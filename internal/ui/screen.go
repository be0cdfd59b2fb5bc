package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-treeselect/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreenWithTheme creates a new terminal Screen with a specific theme
func NewScreenWithTheme(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return NewScreenFrom(tcellScreen, t)
}

// NewScreenFrom initializes an existing tcell screen, such as a simulation
// screen in tests
func NewScreenFrom(tcellScreen tcell.Screen, t *theme.Theme) (*Screen, error) {
	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	if t == nil {
		t = theme.Default()
	}

	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// SetTheme switches the theme used by the style helpers
func (s *Screen) SetTheme(t *theme.Theme) {
	if t != nil {
		s.Theme = t
	}
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws a string at the given position and returns the column
// after the last drawn rune. Wide runes take two columns.
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		s.SetCell(x, y, r, style)
		x += w
	}
	return x
}

// DrawStringLimited draws a string, truncating it to maxWidth columns
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) int {
	if maxWidth <= 0 {
		return x
	}
	return s.DrawString(x, y, TruncateToWidthWithEllipsis(text, maxWidth), style)
}

// FillLine paints the rest of row y from column x with style
func (s *Screen) FillLine(x, y int, style tcell.Style) {
	for ; x < s.width; x++ {
		s.SetCell(x, y, ' ', style)
	}
}

// PollEvent polls for the next event (key press, resize, interrupt)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// PostInterrupt wakes the event loop from another goroutine
func (s *Screen) PostInterrupt(data any) error {
	return s.tcellScreen.PostEvent(tcell.NewEventInterrupt(data))
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Sync redraws the whole terminal, used after a resize
func (s *Screen) Sync() {
	s.Size()
	s.tcellScreen.Sync()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	w, h := s.tcellScreen.Size()
	s.width = w
	s.height = h
	return w, h
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	s.width, _ = s.tcellScreen.Size()
	return s.width
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, s.height = s.tcellScreen.Size()
	return s.height
}

// Theme-aware style methods

// BackgroundStyle returns the default background style for the application
func (s *Screen) BackgroundStyle() tcell.Style {
	return tcell.StyleDefault.Background(s.Theme.Colors.Background)
}

// TreeNormalStyle returns the style for normal tree rows
func (s *Screen) TreeNormalStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeNormalText, s.Theme.Colors.Background)
}

// TreeSelectedStyle returns the style for the row under the cursor
func (s *Screen) TreeSelectedStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeSelectedItem, s.Theme.Colors.TreeSelectedBg).Bold(true)
}

func (s *Screen) TreeArrowStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeArrow, s.Theme.Colors.Background)
}

func (s *Screen) TreeChildCountStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeChildCount, s.Theme.Colors.Background)
}

// CheckboxStyle returns the style for a checkbox in the given state
func (s *Screen) CheckboxStyle(checked, indeterminate bool) tcell.Style {
	c := s.Theme.Colors.CheckboxUnchecked
	switch {
	case checked:
		c = s.Theme.Colors.CheckboxChecked
	case indeterminate:
		c = s.Theme.Colors.CheckboxIndeterminate
	}
	return theme.ColorPairToStyle(c, s.Theme.Colors.Background)
}

// FilterLabelStyle returns the style for the filter prompt label
func (s *Screen) FilterLabelStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.FilterLabel, s.Theme.Colors.Background)
}

// FilterTextStyle returns the style for filter input text
func (s *Screen) FilterTextStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.FilterText, s.Theme.Colors.Background)
}

// CursorStyle returns the style for a prompt cursor
func (s *Screen) CursorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.FilterCursor).Reverse(true)
}

// CommandPromptStyle returns the style for command prompt
func (s *Screen) CommandPromptStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.CommandPrompt, s.Theme.Colors.Background)
}

// CommandTextStyle returns the style for command text
func (s *Screen) CommandTextStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.CommandText, s.Theme.Colors.Background)
}

// HelpStyle returns the style for help background
func (s *Screen) HelpStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpContent, s.Theme.Colors.HelpBackground)
}

// HelpBorderStyle returns the style for help borders
func (s *Screen) HelpBorderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpBorder, s.Theme.Colors.HelpBackground)
}

// HelpTitleStyle returns the style for help title
func (s *Screen) HelpTitleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpTitle, s.Theme.Colors.HelpBackground).Bold(true)
}

// StatusModeStyle returns the style for mode indicator
func (s *Screen) StatusModeStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.StatusMode, s.Theme.Colors.Background).Bold(true)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.StatusMessage, s.Theme.Colors.Background)
}

// HeaderStyle returns the style for header title
func (s *Screen) HeaderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HeaderTitle, s.Theme.Colors.Background).Bold(true)
}

// EmptyStateStyle returns the style for the "no matching nodes" notice
func (s *Screen) EmptyStateStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.EmptyState, s.Theme.Colors.Background)
}
