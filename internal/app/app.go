package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-treeselect/internal/config"
	"github.com/pstuifzand/tui-treeselect/internal/history"
	"github.com/pstuifzand/tui-treeselect/internal/model"
	"github.com/pstuifzand/tui-treeselect/internal/storage"
	"github.com/pstuifzand/tui-treeselect/internal/theme"
	"github.com/pstuifzand/tui-treeselect/internal/treestate"
	"github.com/pstuifzand/tui-treeselect/internal/ui"
	"github.com/pstuifzand/tui-treeselect/internal/watcher"
)

// Mode is the input mode of the app
type Mode int

const (
	NormalMode Mode = iota
	FilterMode
	CommandMode
)

func (m Mode) String() string {
	switch m {
	case FilterMode:
		return "FILTER"
	case CommandMode:
		return "COMMAND"
	default:
		return "NORMAL"
	}
}

const statusTimeout = 3 * time.Second

// Options are the per-run settings that override the config file
type Options struct {
	// Path of the tree file; reloads and watching need it
	Path     string
	Title    string
	Keyword  string
	HideRoot bool
	// DefaultChecked replaces the config's default_checked list when set
	DefaultChecked []string
	ReadOnly       bool
	Watch          bool
	Debug          bool
}

// reloadRequest is posted by the watcher to the event loop
type reloadRequest struct{}

// watchError carries a watcher error to the event loop
type watchError struct{ err error }

// App is the main application controller
type App struct {
	screen  *ui.Screen
	cfg     *config.Config
	opts    Options
	doc     *storage.Document
	tree    *ui.TreeSelectView
	filter  *ui.Prompt
	command *ui.Prompt
	help    *ui.HelpScreen
	keys    []KeyBinding
	watcher *watcher.Watcher

	mode          Mode
	filterRestore string
	statusMsg     string
	statusTime    time.Time
	quit          bool
	confirmed     bool
	debugMode     bool
}

// NewApp loads the tree file named in opts and opens a terminal screen
func NewApp(cfg *config.Config, opts Options) (*App, error) {
	doc, err := storage.Load(opts.Path)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %s (%d nodes)", opts.Path, model.Count(doc.Nodes))

	screen, err := ui.NewScreenWithTheme(theme.LoadThemeOrDefault(cfg.Theme))
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	return New(screen, cfg, doc, opts), nil
}

// New creates an App on an existing screen for an already loaded document
func New(screen *ui.Screen, cfg *config.Config, doc *storage.Document, opts Options) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	if opts.HideRoot {
		cfg.HideRoot = true
	}
	if opts.DefaultChecked != nil {
		cfg.DefaultChecked = opts.DefaultChecked
	}
	if opts.Title == "" {
		opts.Title = doc.Title
	}

	a := &App{
		screen:    screen,
		cfg:       cfg,
		opts:      opts,
		doc:       doc,
		help:      ui.NewHelpScreen(),
		statusMsg: "Ready",
		debugMode: opts.Debug,
	}

	a.tree = ui.NewTreeSelectView(doc.Nodes,
		ui.WithTitle(opts.Title),
		ui.WithHideRoot(cfg.HideRoot),
		ui.WithIndentWidth(cfg.IndentWidth),
		ui.WithDefaultChecked(cfg.DefaultChecked),
		ui.WithKeyword(opts.Keyword),
		ui.WithDisabled(opts.ReadOnly),
		ui.WithStoreOptions(treestate.WithMatcher(treestate.MatcherByName(cfg.FilterMode))),
		ui.WithOnCheck(func(value string) {
			if a.debugMode {
				log.Printf("Checked %s, %d leaves selected", value, len(a.tree.AllCheckedLeaf()))
			}
		}),
	)
	if cfg.ExpandAll {
		a.tree.ExpandAll(true)
	}

	a.filter, a.command = newPrompts()
	a.filter.OnChange(a.applyKeyword)

	a.keys = a.InitializeKeybindings()
	bindings := make([]ui.KeyBindingInfo, len(a.keys))
	for i := range a.keys {
		bindings[i] = &a.keys[i]
	}
	a.help.SetKeybindings(bindings)
	a.help.SetCommands(commandHelp)

	return a
}

// newPrompts creates the filter and command prompts, with persistent
// history when the history directory is usable
func newPrompts() (*ui.Prompt, *ui.Prompt) {
	manager, err := history.NewManager()
	if err != nil {
		log.Printf("History disabled: %v", err)
		return ui.NewPrompt("Filter: "), ui.NewPrompt(":")
	}

	filter, err := ui.NewPromptWithHistory("Filter: ", manager, history.FilterFile)
	if err != nil {
		log.Printf("Failed to load filter history: %v", err)
	}
	command, err := ui.NewPromptWithHistory(":", manager, history.CommandFile)
	if err != nil {
		log.Printf("Failed to load command history: %v", err)
	}
	return filter, command
}

// Run starts watching the tree file when requested and runs the event
// loop until the user quits or ctx is cancelled
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if a.opts.Watch && a.opts.Path != "" {
		if err := a.startWatcher(ctx); err != nil {
			log.Printf("File watching disabled: %v", err)
			a.SetStatus("File watching disabled")
		}
	}

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	// redraws expire status messages
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	a.render()
	for !a.quit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			a.handleEvent(ev)
		case <-ticker.C:
		}
		a.render()
	}
	return nil
}

func (a *App) startWatcher(ctx context.Context) error {
	w, err := watcher.New(a.opts.Path,
		watcher.WithOnChange(func() {
			if err := a.screen.PostInterrupt(reloadRequest{}); err != nil {
				log.Printf("Failed to post reload: %v", err)
			}
		}),
		watcher.WithOnError(func(err error) {
			if err := a.screen.PostInterrupt(watchError{err: err}); err != nil {
				log.Printf("Failed to post watch error: %v", err)
			}
		}),
	)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	a.watcher = w
	log.Printf("Watching %s", w.Path())
	return nil
}

// Close stops the watcher and releases the terminal
func (a *App) Close() error {
	if a.watcher != nil {
		a.watcher.Stop()
		a.watcher = nil
	}
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

// Confirmed reports whether the user accepted the selection
func (a *App) Confirmed() bool {
	return a.confirmed
}

// Selection returns the checked leaves
func (a *App) Selection() []ui.CheckedLeaf {
	return a.tree.AllCheckedLeaf()
}

// Tree returns the tree view
func (a *App) Tree() *ui.TreeSelectView {
	return a.tree
}

// Mode returns the current input mode
func (a *App) Mode() Mode {
	return a.mode
}

// SetStatus sets the status message
func (a *App) SetStatus(msg string) {
	a.statusMsg = msg
	a.statusTime = time.Now()
}

// Status returns the current status message
func (a *App) Status() string {
	return a.statusMsg
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// SetDebugMode enables or disables debug mode
func (a *App) SetDebugMode(debug bool) {
	a.debugMode = debug
}

// render draws the tree, the prompt or status line and the help overlay
func (a *App) render() {
	width, height := a.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}

	a.tree.Render(a.screen, 0, height-1)

	bottom := height - 1
	switch a.mode {
	case FilterMode:
		a.filter.Render(a.screen, bottom, a.screen.FilterLabelStyle(), a.screen.FilterTextStyle())
	case CommandMode:
		a.command.Render(a.screen, bottom, a.screen.CommandPromptStyle(), a.screen.CommandTextStyle())
	default:
		a.renderStatus(bottom, width)
	}

	a.help.Render(a.screen)
	a.screen.Show()
}

func (a *App) renderStatus(y, width int) {
	x := a.screen.DrawString(0, y, " "+a.mode.String()+" ", a.screen.StatusModeStyle())

	parts := []string{fmt.Sprintf("%d selected", len(a.tree.AllCheckedLeaf()))}
	if k := a.tree.Keyword(); k != "" {
		parts = append(parts, "filter: "+k)
	}
	if a.opts.ReadOnly {
		parts = append(parts, "read-only")
	}
	if a.statusMsg != "Ready" && time.Since(a.statusTime) <= statusTimeout {
		parts = append(parts, a.statusMsg)
	}

	x = a.screen.DrawStringLimited(x+1, y, strings.Join(parts, " | "), width-x-1, a.screen.StatusMessageStyle())
	a.screen.FillLine(x, y, a.screen.BackgroundStyle())
}

// handleEvent dispatches one terminal event
func (a *App) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventInterrupt:
		a.handleInterrupt(ev)
	case *tcell.EventMouse:
		if a.mode == NormalMode && !a.help.IsVisible() {
			a.tree.HandleMouse(ev, 1)
		}
	case *tcell.EventKey:
		a.handleKey(ev)
	}
}

func (a *App) handleInterrupt(ev *tcell.EventInterrupt) {
	switch data := ev.Data().(type) {
	case reloadRequest:
		if err := a.Reload(); err != nil {
			log.Printf("Reload failed: %v", err)
			a.SetStatus("Reload failed: " + err.Error())
			return
		}
		a.SetStatus("Reloaded " + a.opts.Path)
	case watchError:
		log.Printf("Watcher: %v", data.err)
		if errors.Is(data.err, watcher.ErrFileRemoved) {
			a.SetStatus("Tree file was removed or replaced")
		} else {
			a.SetStatus("Watch error: " + data.err.Error())
		}
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		a.quit = true
		return
	}

	switch a.mode {
	case FilterMode:
		switch a.filter.HandleKey(ev) {
		case ui.PromptSubmitted:
			a.mode = NormalMode
			log.Printf("Filter set to %q", a.tree.Keyword())
		case ui.PromptCancelled:
			a.mode = NormalMode
			a.applyKeyword(a.filterRestore)
		}
		return
	case CommandMode:
		switch a.command.HandleKey(ev) {
		case ui.PromptSubmitted:
			a.mode = NormalMode
			a.handleCommand(a.command.Input())
		case ui.PromptCancelled:
			a.mode = NormalMode
		}
		return
	}

	if a.help.IsVisible() {
		if ev.Key() == tcell.KeyEscape || ev.Rune() == '?' || ev.Rune() == 'q' {
			a.help.Hide()
		}
		return
	}

	if a.debugMode {
		a.SetStatus(fmt.Sprintf("Key: %v | Rune: %q | Modifiers: %v", ev.Key(), ev.Rune(), ev.Modifiers()))
	}

	for i := range a.keys {
		if a.keys[i].Matches(ev) {
			a.keys[i].Handler(a)
			return
		}
	}
}

// startFilter opens the filter prompt with the active keyword
func (a *App) startFilter() {
	a.filterRestore = a.tree.Keyword()
	a.filter.Start(a.filterRestore)
	a.mode = FilterMode
}

// applyKeyword filters the tree while typing
func (a *App) applyKeyword(keyword string) {
	a.tree.SetKeyword(keyword)
}

// pageSize is the number of list rows on screen
func (a *App) pageSize() int {
	_, h := a.screen.Size()
	return max(h-2, 1)
}

// Reset restores the default selection from the loaded tree
func (a *App) Reset() {
	a.tree.ResetByDefaultCheckedList()
	if a.cfg.ExpandAll {
		a.tree.ExpandAll(true)
	}
	log.Printf("Reset to %d default checked values", len(a.cfg.DefaultChecked))
}

// Reload reads the tree file again and resets the selection
func (a *App) Reload() error {
	if a.opts.Path == "" {
		return errors.New("no tree file")
	}
	doc, err := storage.Load(a.opts.Path)
	if err != nil {
		return err
	}
	a.doc = doc
	a.tree.SetNodes(doc.Nodes)
	if a.cfg.ExpandAll {
		a.tree.ExpandAll(true)
	}
	log.Printf("Reloaded %s (%d nodes)", a.opts.Path, model.Count(doc.Nodes))
	return nil
}
