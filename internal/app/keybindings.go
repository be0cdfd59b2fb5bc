package app

import (
	"github.com/gdamore/tcell/v2"
)

// KeyBinding represents a key binding with its description and handler.
// A binding matches either a rune or a special key; Keys lists extra
// special keys that trigger the same handler.
type KeyBinding struct {
	Key         rune
	Keys        []tcell.Key
	Display     string
	Description string
	Handler     func(*App)
}

// GetKey returns the key label shown in the help overlay
func (kb *KeyBinding) GetKey() string {
	if kb.Display != "" {
		return kb.Display
	}
	return string(kb.Key)
}

// GetDescription returns the description of this keybinding
func (kb *KeyBinding) GetDescription() string {
	return kb.Description
}

// Matches reports whether ev triggers this binding
func (kb *KeyBinding) Matches(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyRune {
		return kb.Key != 0 && ev.Rune() == kb.Key
	}
	for _, k := range kb.Keys {
		if ev.Key() == k {
			return true
		}
	}
	return false
}

// InitializeKeybindings sets up all the key bindings
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{
			Key:         'j',
			Keys:        []tcell.Key{tcell.KeyDown},
			Display:     "j/↓",
			Description: "Move down",
			Handler: func(app *App) {
				app.tree.SelectNext()
			},
		},
		{
			Key:         'k',
			Keys:        []tcell.Key{tcell.KeyUp},
			Display:     "k/↑",
			Description: "Move up",
			Handler: func(app *App) {
				app.tree.SelectPrev()
			},
		},
		{
			Key:         'l',
			Keys:        []tcell.Key{tcell.KeyRight},
			Display:     "l/→",
			Description: "Expand node, or move to its first child",
			Handler: func(app *App) {
				app.tree.Expand()
			},
		},
		{
			Key:         'h',
			Keys:        []tcell.Key{tcell.KeyLeft},
			Display:     "h/←",
			Description: "Collapse node, or move to its parent",
			Handler: func(app *App) {
				app.tree.Collapse()
			},
		},
		{
			Key:         ' ',
			Display:     "space",
			Description: "Toggle checkbox",
			Handler: func(app *App) {
				if app.opts.ReadOnly {
					app.SetStatus("Read-only")
					return
				}
				app.tree.ToggleSelected()
			},
		},
		{
			Key:         'g',
			Keys:        []tcell.Key{tcell.KeyHome},
			Display:     "g",
			Description: "Go to first row",
			Handler: func(app *App) {
				app.tree.SelectFirst()
			},
		},
		{
			Key:         'G',
			Keys:        []tcell.Key{tcell.KeyEnd},
			Display:     "G",
			Description: "Go to last row",
			Handler: func(app *App) {
				app.tree.SelectLast()
			},
		},
		{
			Keys:        []tcell.Key{tcell.KeyCtrlD, tcell.KeyPgDn},
			Display:     "C-d/PgDn",
			Description: "Page down",
			Handler: func(app *App) {
				app.tree.PageDown(app.pageSize())
			},
		},
		{
			Keys:        []tcell.Key{tcell.KeyCtrlU, tcell.KeyPgUp},
			Display:     "C-u/PgUp",
			Description: "Page up",
			Handler: func(app *App) {
				app.tree.PageUp(app.pageSize())
			},
		},
		{
			Key:         '/',
			Description: "Filter nodes",
			Handler: func(app *App) {
				app.startFilter()
			},
		},
		{
			Keys:        []tcell.Key{tcell.KeyEscape},
			Display:     "Esc",
			Description: "Clear filter",
			Handler: func(app *App) {
				if app.tree.Keyword() != "" {
					app.applyKeyword("")
					app.SetStatus("Filter cleared")
				}
			},
		},
		{
			Key:         'E',
			Description: "Expand all",
			Handler: func(app *App) {
				app.tree.ExpandAll(true)
			},
		},
		{
			Key:         'C',
			Description: "Collapse all",
			Handler: func(app *App) {
				app.tree.ExpandAll(false)
			},
		},
		{
			Key:         'r',
			Description: "Reset to default selection",
			Handler: func(app *App) {
				app.Reset()
				app.SetStatus("Selection reset")
			},
		},
		{
			Key:         'R',
			Description: "Reload tree file",
			Handler: func(app *App) {
				app.handleCommand("reload")
			},
		},
		{
			Key:         ':',
			Description: "Command mode",
			Handler: func(app *App) {
				app.command.Start("")
				app.mode = CommandMode
			},
		},
		{
			Key:         '?',
			Description: "Toggle help",
			Handler: func(app *App) {
				app.help.Toggle()
			},
		},
		{
			Keys:        []tcell.Key{tcell.KeyEnter},
			Display:     "Enter",
			Description: "Accept selection and quit",
			Handler: func(app *App) {
				app.accept()
			},
		},
		{
			Key:         'q',
			Description: "Quit without selection",
			Handler: func(app *App) {
				app.Quit()
			},
		},
	}
}
