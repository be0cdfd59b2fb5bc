package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-treeselect/internal/config"
	"github.com/pstuifzand/tui-treeselect/internal/model"
	"github.com/pstuifzand/tui-treeselect/internal/storage"
	"github.com/pstuifzand/tui-treeselect/internal/theme"
	"github.com/pstuifzand/tui-treeselect/internal/ui"
	"github.com/pstuifzand/tui-treeselect/internal/watcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "simple command",
			input:    "accept",
			expected: []string{"accept"},
		},
		{
			name:     "command with arguments",
			input:    "export out.md",
			expected: []string{"export", "out.md"},
		},
		{
			name:     "double quoted string",
			input:    `export "my file.md"`,
			expected: []string{"export", "my file.md"},
		},
		{
			name:     "single quoted string",
			input:    "export 'my file.md'",
			expected: []string{"export", "my file.md"},
		},
		{
			name:     "mixed quotes",
			input:    `set title "Hello World" and more`,
			expected: []string{"set", "title", "Hello World", "and", "more"},
		},
		{
			name:     "escaped quotes",
			input:    `filter "value with \"quotes\""`,
			expected: []string{"filter", `value with "quotes"`},
		},
		{
			name:     "escaped backslash",
			input:    `export "C:\\Users\\test.md"`,
			expected: []string{"export", `C:\Users\test.md`},
		},
		{
			name:     "multiple spaces",
			input:    "command    with    spaces",
			expected: []string{"command", "with", "spaces"},
		},
		{
			name:     "tabs and spaces",
			input:    "command\twith\t  mixed",
			expected: []string{"command", "with", "mixed"},
		},
		{
			name:     "empty quoted string",
			input:    `filter ""`,
			expected: []string{"filter", ""},
		},
		{
			name:     "empty input",
			input:    "   ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseCommand(tt.input))
		})
	}
}

//	root "Animals"
//	  Potato
//	    Bird
//	    Cat
//	    Dog
//	      human-0
//	      human-1
//	  Apple
func animals() *storage.Document {
	open := model.Bool(true)
	dog := &model.Node{Value: "dog", Label: "Dog", Expanded: open}
	dog.AddChild(model.NewNode("human-0", "human-0"), model.NewNode("human-1", "human-1"))

	potato := &model.Node{Value: "potato", Label: "Potato", Expanded: open}
	potato.AddChild(model.NewNode("bird", "Bird"), model.NewNode("cat", "Cat"), dog)

	root := &model.Node{Value: model.Root, Label: "All"}
	root.AddChild(potato, model.NewNode("apple", "Apple"))
	return &storage.Document{Title: "Animals", Nodes: []*model.Node{root}}
}

func newTestApp(t *testing.T, doc *storage.Document, opts Options) (*App, tcell.SimulationScreen) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.NewScreenFrom(sim, theme.Default())
	require.NoError(t, err)
	sim.SetSize(50, 14)

	return New(screen, config.Default(), doc, opts), sim
}

func press(a *App, keys ...rune) {
	for _, r := range keys {
		a.handleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func pressKey(a *App, key tcell.Key) {
	a.handleEvent(tcell.NewEventKey(key, 0, tcell.ModNone))
}

func typeText(a *App, text string) {
	press(a, []rune(text)...)
}

func selectedValue(t *testing.T, a *App) string {
	t.Helper()
	row, ok := a.Tree().Selected()
	require.True(t, ok)
	return row.Node.Value
}

func selectionValues(a *App) []string {
	var values []string
	for _, leaf := range a.Selection() {
		values = append(values, leaf.Value)
	}
	return values
}

func lineAt(sim tcell.SimulationScreen, y int) string {
	width, _ := sim.Size()
	var sb strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := sim.GetContent(x, y)
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestNavigateAndToggle(t *testing.T) {
	a, _ := newTestApp(t, animals(), Options{})

	assert.Equal(t, model.Root, selectedValue(t, a))
	press(a, 'j')
	assert.Equal(t, "potato", selectedValue(t, a))

	press(a, ' ')
	assert.Equal(t, []string{"bird", "cat", "human-0", "human-1"}, selectionValues(a))

	press(a, ' ')
	assert.Empty(t, a.Selection())

	pressKey(a, tcell.KeyDown)
	assert.Equal(t, "bird", selectedValue(t, a))

	press(a, 'G')
	assert.Equal(t, "apple", selectedValue(t, a))
	press(a, 'g')
	assert.Equal(t, model.Root, selectedValue(t, a))
}

func TestCollapseAndExpandKeys(t *testing.T) {
	a, _ := newTestApp(t, animals(), Options{})

	press(a, 'j', 'h')
	assert.Len(t, a.Tree().Rows(), 3, "collapsing potato hides its subtree")

	press(a, 'l')
	assert.Len(t, a.Tree().Rows(), 8)
	press(a, 'l')
	assert.Equal(t, "bird", selectedValue(t, a))

	press(a, 'C')
	assert.Len(t, a.Tree().Rows(), 3)
	press(a, 'E')
	assert.Len(t, a.Tree().Rows(), 8)
}

func TestEnterAcceptsSelection(t *testing.T) {
	a, _ := newTestApp(t, animals(), Options{DefaultChecked: []string{"cat"}})

	pressKey(a, tcell.KeyEnter)

	assert.True(t, a.quit)
	assert.True(t, a.Confirmed())
	assert.Equal(t, []ui.CheckedLeaf{{Value: "cat", Label: "Cat"}}, a.Selection())
}

func TestQuitWithoutConfirm(t *testing.T) {
	a, _ := newTestApp(t, animals(), Options{})

	press(a, 'q')

	assert.True(t, a.quit)
	assert.False(t, a.Confirmed())
}

func TestReadOnlyIgnoresToggle(t *testing.T) {
	a, _ := newTestApp(t, animals(), Options{ReadOnly: true, DefaultChecked: []string{"bird"}})

	press(a, 'j', ' ')

	assert.Equal(t, []string{"bird"}, selectionValues(a))
	assert.Equal(t, "Read-only", a.Status())
}

func TestFilterPrompt(t *testing.T) {
	a, _ := newTestApp(t, animals(), Options{})

	press(a, '/')
	require.Equal(t, FilterMode, a.Mode())

	typeText(a, "cat")
	assert.Equal(t, "cat", a.Tree().Keyword(), "filter applies while typing")

	pressKey(a, tcell.KeyEnter)
	assert.Equal(t, NormalMode, a.Mode())
	assert.Equal(t, "cat", a.Tree().Keyword())

	var values []string
	for _, row := range a.Tree().Rows() {
		values = append(values, row.Node.Value)
	}
	assert.Equal(t, []string{model.Root, "potato", "cat"}, values)

	// cancelling restores the keyword the prompt was opened with
	press(a, '/')
	typeText(a, "xyz")
	assert.True(t, a.Tree().IsEmpty())
	pressKey(a, tcell.KeyEscape)
	assert.Equal(t, NormalMode, a.Mode())
	assert.Equal(t, "cat", a.Tree().Keyword())

	pressKey(a, tcell.KeyEscape)
	assert.Equal(t, "", a.Tree().Keyword())
	assert.Len(t, a.Tree().Rows(), 8)
}

func TestResetKey(t *testing.T) {
	a, _ := newTestApp(t, animals(), Options{DefaultChecked: []string{"apple"}})

	press(a, 'j', ' ')
	require.Len(t, a.Selection(), 5)

	press(a, 'r')
	assert.Equal(t, []string{"apple"}, selectionValues(a))
}

func TestHelpOverlayCapturesKeys(t *testing.T) {
	a, _ := newTestApp(t, animals(), Options{})

	press(a, '?')
	require.True(t, a.help.IsVisible())

	press(a, 'j')
	assert.Equal(t, model.Root, selectedValue(t, a), "keys do not reach the tree while help is open")

	pressKey(a, tcell.KeyEscape)
	assert.False(t, a.help.IsVisible())
}

func TestCommandMode(t *testing.T) {
	a, _ := newTestApp(t, animals(), Options{})

	press(a, ':')
	require.Equal(t, CommandMode, a.Mode())
	typeText(a, "filter dog")
	pressKey(a, tcell.KeyEnter)

	assert.Equal(t, NormalMode, a.Mode())
	assert.Equal(t, "dog", a.Tree().Keyword())

	a.handleCommand("nonsense")
	assert.Equal(t, "Unknown command: nonsense", a.Status())

	a.handleCommand("accept")
	assert.True(t, a.Confirmed())
}

func TestSetCommand(t *testing.T) {
	a, _ := newTestApp(t, animals(), Options{})

	a.handleCommand("set hide_root=true")
	assert.Equal(t, "potato", a.Tree().Rows()[0].Node.Value)

	a.handleCommand("set indent_width 4")
	for _, row := range a.Tree().Rows() {
		if row.Node.Value == "bird" {
			assert.Equal(t, 4, row.Indent)
		}
	}

	a.handleCommand("set filter_mode fuzzy")
	a.handleCommand("filter hmn")
	assert.Equal(t, "fuzzy", a.Tree().Store().Matcher().Name())
	assert.False(t, a.Tree().IsEmpty())

	a.handleCommand("set default_checked=bird,apple")
	a.handleCommand("reset")
	assert.Equal(t, []string{"bird", "apple"}, selectionValues(a))

	a.handleCommand("set hide_root")
	assert.Equal(t, "hide_root=true", a.Status())
}

func TestExportCommand(t *testing.T) {
	a, _ := newTestApp(t, animals(), Options{DefaultChecked: []string{"cat", "apple"}})
	path := filepath.Join(t.TempDir(), "selection.md")

	a.handleCommand("export " + path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "# Animals\n"))
	assert.Contains(t, content, "2 selected")
	assert.Contains(t, content, "- Cat (`cat`)\n")
	assert.Contains(t, content, "- Apple (`apple`)\n")
	assert.Equal(t, "Exported 2 items to "+path, a.Status())

	a.handleCommand("export")
	assert.Equal(t, "Usage: :export <file>", a.Status())
}

func TestReloadOnInterrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	require.NoError(t, storage.SaveJSON(path, animals()))

	doc, err := storage.Load(path)
	require.NoError(t, err)
	a, _ := newTestApp(t, doc, Options{Path: path})
	require.Len(t, a.Tree().Rows(), 8)

	smaller := &storage.Document{Title: "Fruit", Nodes: []*model.Node{
		model.NewNode("apple", "Apple"),
		model.NewNode("pear", "Pear"),
	}}
	require.NoError(t, storage.SaveJSON(path, smaller))

	a.handleEvent(tcell.NewEventInterrupt(reloadRequest{}))

	assert.Equal(t, "Reloaded "+path, a.Status())
	assert.Len(t, a.Tree().Rows(), 3)
}

func TestReloadFailureKeepsTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	require.NoError(t, storage.SaveJSON(path, animals()))
	doc, err := storage.Load(path)
	require.NoError(t, err)
	a, _ := newTestApp(t, doc, Options{Path: path})

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	a.handleCommand("reload")

	assert.True(t, strings.HasPrefix(a.Status(), "Reload failed"))
	assert.Len(t, a.Tree().Rows(), 8)
}

func TestWatchErrorInterrupt(t *testing.T) {
	a, _ := newTestApp(t, animals(), Options{})

	a.handleEvent(tcell.NewEventInterrupt(watchError{err: watcher.ErrFileRemoved}))
	assert.Equal(t, "Tree file was removed or replaced", a.Status())

	a.handleEvent(tcell.NewEventInterrupt(watchError{err: errors.New("boom")}))
	assert.Equal(t, "Watch error: boom", a.Status())
}

func TestRenderStatusLine(t *testing.T) {
	a, sim := newTestApp(t, animals(), Options{DefaultChecked: []string{"bird"}})

	a.render()

	assert.Equal(t, "Animals (5)", strings.TrimSpace(lineAt(sim, 0)))
	status := lineAt(sim, 13)
	assert.Contains(t, status, "NORMAL")
	assert.Contains(t, status, "1 selected")

	press(a, '/')
	typeText(a, "do")
	a.render()
	assert.Equal(t, "Filter: do", lineAt(sim, 13))
}

func TestRunExitsOnAccept(t *testing.T) {
	a, sim := newTestApp(t, animals(), Options{DefaultChecked: []string{"apple"}})

	sim.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	require.NoError(t, a.Run(context.Background()))

	assert.True(t, a.Confirmed())
	assert.Equal(t, []string{"apple"}, selectionValues(a))
}

func TestRunStopsOnCancel(t *testing.T) {
	a, _ := newTestApp(t, animals(), Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, a.Run(ctx), context.Canceled)
	assert.False(t, a.Confirmed())
}
