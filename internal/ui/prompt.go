package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-treeselect/internal/history"
)

const promptHistorySize = 50

// PromptResult tells the caller what a key press did to the prompt
type PromptResult int

const (
	PromptEditing PromptResult = iota
	PromptSubmitted
	PromptCancelled
)

// Prompt is a single line editor with history, used for the filter ("/")
// and command (":") lines
type Prompt struct {
	label    string
	input    []rune
	cursor   int
	active   bool
	history  *History
	onChange func(string)
}

// NewPrompt creates a prompt with in-memory history
func NewPrompt(label string) *Prompt {
	return &Prompt{label: label, history: NewHistory(promptHistorySize)}
}

// NewPromptWithHistory creates a prompt whose history is persisted in filename.
// A history that fails to load is replaced by an empty one and the error returned.
func NewPromptWithHistory(label string, manager *history.Manager, filename string) (*Prompt, error) {
	p := NewPrompt(label)
	if manager == nil {
		return p, nil
	}
	h, err := NewHistoryWithManager(promptHistorySize, manager, filename)
	p.history = h
	return p, err
}

// OnChange registers a callback invoked with the input after every edit
func (p *Prompt) OnChange(fn func(string)) {
	p.onChange = fn
}

// Start activates the prompt with initial text and the cursor at the end
func (p *Prompt) Start(initial string) {
	p.active = true
	p.input = []rune(initial)
	p.cursor = len(p.input)
	p.history.Reset()
}

// Stop deactivates the prompt
func (p *Prompt) Stop() {
	p.active = false
	p.history.Reset()
}

// IsActive reports whether the prompt has focus
func (p *Prompt) IsActive() bool {
	return p.active
}

// Input returns the current text
func (p *Prompt) Input() string {
	return string(p.input)
}

// History returns the prompt's entries, oldest first
func (p *Prompt) History() []string {
	return p.history.GetAll()
}

func (p *Prompt) set(text string) {
	p.input = []rune(text)
	p.cursor = len(p.input)
	p.changed()
}

func (p *Prompt) changed() {
	if p.onChange != nil {
		p.onChange(string(p.input))
	}
}

// HandleKey edits the input. Enter submits and records the trimmed input
// in history, Escape cancels, Backspace on an empty line cancels too.
func (p *Prompt) HandleKey(ev *tcell.EventKey) PromptResult {
	switch ev.Key() {
	case tcell.KeyEscape:
		p.Stop()
		return PromptCancelled
	case tcell.KeyEnter:
		p.history.Add(strings.TrimSpace(string(p.input)))
		p.Stop()
		return PromptSubmitted
	case tcell.KeyUp:
		if entry, ok := p.history.Previous(string(p.input)); ok {
			p.set(entry)
		}
	case tcell.KeyDown:
		if entry, ok := p.history.Next(); ok {
			p.set(entry)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.input) == 0 {
			p.Stop()
			return PromptCancelled
		}
		if p.cursor > 0 {
			p.input = append(p.input[:p.cursor-1], p.input[p.cursor:]...)
			p.cursor--
			p.changed()
		}
	case tcell.KeyDelete:
		if p.cursor < len(p.input) {
			p.input = append(p.input[:p.cursor], p.input[p.cursor+1:]...)
			p.changed()
		}
	case tcell.KeyLeft:
		if p.cursor > 0 {
			p.cursor--
		}
	case tcell.KeyRight:
		if p.cursor < len(p.input) {
			p.cursor++
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		p.cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		p.cursor = len(p.input)
	case tcell.KeyCtrlU:
		p.input = p.input[p.cursor:]
		p.cursor = 0
		p.changed()
	case tcell.KeyCtrlW:
		p.deleteWordBackwards()
	case tcell.KeyRune:
		r := ev.Rune()
		p.input = append(p.input[:p.cursor], append([]rune{r}, p.input[p.cursor:]...)...)
		p.cursor++
		p.changed()
	}
	return PromptEditing
}

func (p *Prompt) deleteWordBackwards() {
	pos := p.cursor
	for pos > 0 && p.input[pos-1] == ' ' {
		pos--
	}
	for pos > 0 && p.input[pos-1] != ' ' {
		pos--
	}
	if pos == p.cursor {
		return
	}
	p.input = append(p.input[:pos], p.input[p.cursor:]...)
	p.cursor = pos
	p.changed()
}

// Render draws the prompt on row y when it is active
func (p *Prompt) Render(screen *Screen, y int, labelStyle, textStyle tcell.Style) {
	if !p.active {
		return
	}

	x := screen.DrawString(0, y, p.label, labelStyle)
	text := string(p.input)
	avail := screen.GetWidth() - x - 1

	// keep the cursor in view by dropping runes from the left
	start := 0
	for start < p.cursor && ColumnOfRune(text, p.cursor)-ColumnOfRune(text, start) > avail {
		start++
	}
	visible := p.input[start:]

	cursorX := x
	for i, r := range visible {
		if start+i == p.cursor {
			cursorX = x
		}
		if x+RuneWidth(r) > screen.GetWidth() {
			break
		}
		x = screen.DrawString(x, y, string(r), textStyle)
	}
	if p.cursor >= len(p.input) {
		cursorX = x
	}

	screen.FillLine(x, y, textStyle)
	cursorRune := ' '
	if p.cursor < len(p.input) {
		cursorRune = p.input[p.cursor]
	}
	screen.SetCell(cursorX, y, cursorRune, screen.CursorStyle())
}
