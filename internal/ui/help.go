package ui

import "fmt"

// KeyBindingInfo represents a keybinding for display
type KeyBindingInfo interface {
	GetKey() string
	GetDescription() string
}

// HelpScreen manages the help overlay
type HelpScreen struct {
	visible     bool
	keybindings []KeyBindingInfo
	commands    []string
}

// NewHelpScreen creates a new HelpScreen
func NewHelpScreen() *HelpScreen {
	return &HelpScreen{}
}

// SetKeybindings sets the keybindings to display
func (h *HelpScreen) SetKeybindings(keybindings []KeyBindingInfo) {
	h.keybindings = keybindings
}

// SetCommands sets the command descriptions shown below the keybindings
func (h *HelpScreen) SetCommands(commands []string) {
	h.commands = commands
}

// Toggle toggles the help screen visibility
func (h *HelpScreen) Toggle() {
	h.visible = !h.visible
}

// Hide closes the help screen
func (h *HelpScreen) Hide() {
	h.visible = false
}

// IsVisible returns whether the help screen is visible
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// Lines returns the formatted help text
func (h *HelpScreen) Lines() []string {
	width := 0
	for _, kb := range h.keybindings {
		width = max(width, StringWidth(kb.GetKey()))
	}

	result := []string{"Keybindings:", ""}
	for _, kb := range h.keybindings {
		result = append(result, fmt.Sprintf("  %s  %s", PadStringToWidth(kb.GetKey(), width), kb.GetDescription()))
	}

	if len(h.commands) > 0 {
		result = append(result, "", "Commands:")
		for _, c := range h.commands {
			result = append(result, "  "+c)
		}
	}
	return result
}

// Render renders the help screen as a bordered box over the tree
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	contentStyle := screen.HelpStyle()
	borderStyle := screen.HelpBorderStyle()
	titleStyle := screen.HelpTitleStyle()

	width, height := screen.Size()
	for y := 0; y < height; y++ {
		screen.FillLine(0, y, contentStyle)
	}

	startX, startY := 2, 1
	boxWidth := width - 4
	boxHeight := height - 2
	if boxWidth < 10 || boxHeight < 4 {
		return
	}
	right := startX + boxWidth - 1

	hline := func(y int, left, right rune) {
		screen.SetCell(startX, y, left, borderStyle)
		for x := startX + 1; x < startX+boxWidth-1; x++ {
			screen.SetCell(x, y, '─', borderStyle)
		}
		screen.SetCell(startX+boxWidth-1, y, right, borderStyle)
	}

	hline(startY, '┌', '┐')
	screen.SetCell(startX, startY+1, '│', borderStyle)
	screen.DrawStringLimited(startX+2, startY+1, "Help (? or Esc to close)", boxWidth-4, titleStyle)
	screen.SetCell(right, startY+1, '│', borderStyle)
	hline(startY+2, '├', '┤')

	y := startY + 3
	for _, line := range h.Lines() {
		if y >= startY+boxHeight-1 {
			break
		}
		screen.SetCell(startX, y, '│', borderStyle)
		screen.DrawStringLimited(startX+2, y, line, boxWidth-4, contentStyle)
		screen.SetCell(right, y, '│', borderStyle)
		y++
	}
	hline(y, '└', '┘')
}
