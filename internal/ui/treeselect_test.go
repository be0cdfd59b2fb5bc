package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-treeselect/internal/model"
	"github.com/pstuifzand/tui-treeselect/internal/theme"
	"github.com/pstuifzand/tui-treeselect/internal/treestate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//	root
//	  Potato
//	    Bird
//	    Cat
//	    Dog
//	      human-0
//	      human-1
//	  Apple
func animals() []*model.Node {
	open := model.Bool(true)
	dog := &model.Node{Value: "dog", Label: "Dog", Expanded: open}
	dog.AddChild(model.NewNode("human-0", "human-0"), model.NewNode("human-1", "human-1"))

	potato := &model.Node{Value: "potato", Label: "Potato", Expanded: open}
	potato.AddChild(model.NewNode("bird", "Bird"), model.NewNode("cat", "Cat"), dog)

	root := &model.Node{Value: model.Root, Label: "All"}
	root.AddChild(potato, model.NewNode("apple", "Apple"))
	return []*model.Node{root}
}

func rowValues(rows []Row) []string {
	result := make([]string, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.Node.Value)
	}
	return result
}

func rowByValue(t *testing.T, tv *TreeSelectView, value string) Row {
	t.Helper()
	for _, r := range tv.Rows() {
		if r.Node.Value == value {
			return r
		}
	}
	require.Failf(t, "row not found", "value %q", value)
	return Row{}
}

func leafValues(leaves []CheckedLeaf) []string {
	result := make([]string, 0, len(leaves))
	for _, l := range leaves {
		result = append(result, l.Value)
	}
	return result
}

func TestNewTreeSelectViewRows(t *testing.T) {
	tv := NewTreeSelectView(animals(), WithTitle("Animals"))

	assert.Equal(t,
		[]string{"root", "potato", "bird", "cat", "dog", "human-0", "human-1", "apple"},
		rowValues(tv.Rows()))
	assert.Equal(t, "Animals (5)", tv.Title())

	assert.Equal(t, 5, rowByValue(t, tv, model.Root).ChildCount)
	assert.Equal(t, 3, rowByValue(t, tv, "potato").ChildCount)
	assert.Equal(t, 2, rowByValue(t, tv, "dog").ChildCount)
	assert.Equal(t, 0, rowByValue(t, tv, "bird").ChildCount)

	dog := rowByValue(t, tv, "dog")
	assert.Equal(t, dog.Node.TreePath+"-dog", dog.Key)
	assert.Equal(t, 4, dog.Indent)
}

func TestHideRootShiftsIndentation(t *testing.T) {
	tv := NewTreeSelectView(animals(), WithHideRoot(true), WithIndentWidth(4))

	assert.Equal(t, "potato", tv.Rows()[0].Node.Value)
	assert.Equal(t, 0, rowByValue(t, tv, "potato").Indent)
	assert.Equal(t, 4, rowByValue(t, tv, "bird").Indent)
	assert.Equal(t, 8, rowByValue(t, tv, "human-0").Indent)
}

func TestResetByDefaultCheckedList(t *testing.T) {
	tv := NewTreeSelectView(animals(), WithDefaultChecked([]string{"cat", "missing"}))

	assert.Equal(t, []string{"cat"}, leafValues(tv.AllCheckedLeaf()))
	assert.Equal(t, model.Indeterminate, rowByValue(t, tv, "potato").Node.CheckState)
	assert.Equal(t, model.Indeterminate, rowByValue(t, tv, model.Root).Node.CheckState)

	tv.HandleCheck("apple")
	require.Len(t, tv.AllCheckedLeaf(), 2)

	tv.ResetByDefaultCheckedList()
	assert.Equal(t, []string{"cat"}, leafValues(tv.AllCheckedLeaf()))
}

func TestHandleCheckFlipsTriState(t *testing.T) {
	var checked []string
	tv := NewTreeSelectView(animals(),
		WithDefaultChecked([]string{"cat"}),
		WithOnCheck(func(v string) { checked = append(checked, v) }),
	)

	// indeterminate parent becomes fully checked
	tv.HandleCheck("potato")
	assert.Equal(t, []string{"bird", "cat", "human-0", "human-1"}, leafValues(tv.AllCheckedLeaf()))
	assert.Equal(t, model.Checked, rowByValue(t, tv, "potato").Node.CheckState)
	assert.Equal(t, model.Indeterminate, rowByValue(t, tv, model.Root).Node.CheckState)

	// checked parent becomes unchecked
	tv.HandleCheck("potato")
	assert.Empty(t, tv.AllCheckedLeaf())
	assert.Equal(t, model.Unchecked, rowByValue(t, tv, model.Root).Node.CheckState)

	// root checks every visible node
	tv.HandleCheck(model.Root)
	assert.Len(t, tv.AllCheckedLeaf(), 5)
	for _, row := range tv.Rows() {
		assert.Equalf(t, model.Checked, row.Node.CheckState, "row %s", row.Node.Value)
	}

	assert.Equal(t, []string{"potato", "potato", model.Root}, checked)

	tv.HandleCheck("does-not-exist")
	assert.Len(t, checked, 3)
}

func TestDisabledViewIgnoresChecks(t *testing.T) {
	tv := NewTreeSelectView(animals(), WithDisabled(true))
	tv.HandleCheck("bird")
	assert.Empty(t, tv.AllCheckedLeaf())
}

func TestHandleExpand(t *testing.T) {
	tv := NewTreeSelectView(animals())

	tv.HandleExpand("dog")
	assert.Equal(t, []string{"root", "potato", "bird", "cat", "dog", "apple"}, rowValues(tv.Rows()))
	assert.False(t, rowByValue(t, tv, "dog").Node.Expanded)

	tv.HandleExpand("dog")
	assert.Len(t, tv.Rows(), 8)

	// leaves and root are not toggled
	tv.HandleExpand("bird")
	tv.HandleExpand(model.Root)
	assert.Len(t, tv.Rows(), 8)
}

func TestSetKeyword(t *testing.T) {
	tv := NewTreeSelectView(animals(), WithTitle("Animals"))

	tv.SetKeyword("HUMAN")
	assert.Equal(t, []string{"root", "potato", "dog", "human-0", "human-1"}, rowValues(tv.Rows()))
	assert.Equal(t, "All results: Animals (2)", tv.Title())
	assert.Equal(t, 2, rowByValue(t, tv, "dog").ChildCount)
	assert.Equal(t, 1, rowByValue(t, tv, "potato").ChildCount)
	assert.False(t, tv.IsEmpty())

	// root only reaches visible leaves
	tv.HandleCheck(model.Root)
	assert.Equal(t, []string{"human-0", "human-1"}, leafValues(tv.AllCheckedLeaf()))

	tv.SetKeyword("zzz")
	assert.True(t, tv.IsEmpty())

	tv.SetKeyword("")
	assert.Len(t, tv.Rows(), 8)
	assert.Equal(t, "Animals (5)", tv.Title())
}

func TestResetReappliesKeyword(t *testing.T) {
	tv := NewTreeSelectView(animals(), WithKeyword("apple"))
	assert.Equal(t, []string{"root", "apple"}, rowValues(tv.Rows()))

	tv.ResetByDefaultCheckedList()
	assert.Equal(t, []string{"root", "apple"}, rowValues(tv.Rows()))
}

func TestFuzzyMatcherOption(t *testing.T) {
	tv := NewTreeSelectView(animals(), WithStoreOptions(treestate.WithMatcher(treestate.FuzzyMatcher{})))
	tv.SetKeyword("ptt")
	assert.Contains(t, rowValues(tv.Rows()), "potato")
}

func TestExpandAll(t *testing.T) {
	tv := NewTreeSelectView(animals())

	tv.ExpandAll(false)
	assert.Equal(t, []string{"root", "potato", "apple"}, rowValues(tv.Rows()))

	tv.ExpandAll(true)
	assert.Len(t, tv.Rows(), 8)
}

func TestSelectionFollowsNode(t *testing.T) {
	tv := NewTreeSelectView(animals())

	require.True(t, tv.SelectValue("apple"))
	tv.HandleExpand("dog")

	row, ok := tv.Selected()
	require.True(t, ok)
	assert.Equal(t, "apple", row.Node.Value)

	tv.SetKeyword("bird")
	row, ok = tv.Selected()
	require.True(t, ok)
	assert.Equal(t, len(tv.Rows())-1, tv.SelectedIndex(), "cursor clamps when its node disappears")
	assert.Equal(t, "bird", row.Node.Value)
}

func TestExpandCollapseNavigation(t *testing.T) {
	tv := NewTreeSelectView(animals())
	tv.SelectValue("dog")

	tv.Collapse()
	assert.False(t, rowByValue(t, tv, "dog").Node.Expanded)

	tv.Collapse()
	row, _ := tv.Selected()
	assert.Equal(t, "potato", row.Node.Value, "collapse on closed parent moves to its parent")

	tv.SelectValue("dog")
	tv.Expand()
	assert.True(t, rowByValue(t, tv, "dog").Node.Expanded)

	tv.Expand()
	row, _ = tv.Selected()
	assert.Equal(t, "human-0", row.Node.Value)

	tv.ToggleSelected()
	assert.Equal(t, []string{"human-0"}, leafValues(tv.AllCheckedLeaf()))
}

func TestSelectMovement(t *testing.T) {
	tv := NewTreeSelectView(animals())

	tv.SelectPrev()
	assert.Equal(t, 0, tv.SelectedIndex())

	tv.PageDown(3)
	assert.Equal(t, 3, tv.SelectedIndex())

	tv.SelectLast()
	tv.SelectNext()
	assert.Equal(t, 7, tv.SelectedIndex())

	tv.PageUp(100)
	assert.Equal(t, 0, tv.SelectedIndex())

	tv.SelectFirst()
	tv.SelectNext()
	assert.Equal(t, 1, tv.SelectedIndex())
}

func TestFormatRow(t *testing.T) {
	tv := NewTreeSelectView(animals(), WithDefaultChecked([]string{"cat", "human-0", "human-1"}))

	assert.Equal(t, "  [-] All (5)", FormatRow(rowByValue(t, tv, model.Root)))
	assert.Equal(t, "  ▼ [-] Potato (3)", FormatRow(rowByValue(t, tv, "potato")))
	assert.Equal(t, "    ▼ [x] Dog (2)", FormatRow(rowByValue(t, tv, "dog")))
	assert.Equal(t, "      [x] Cat", FormatRow(rowByValue(t, tv, "cat")))

	tv.HandleExpand("dog")
	assert.Equal(t, "    ▶ [x] Dog (2)", FormatRow(rowByValue(t, tv, "dog")))
}

func newTestScreen(t *testing.T, width, height int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenFrom(sim, theme.Default())
	require.NoError(t, err)
	sim.SetSize(width, height)
	screen.Size()
	t.Cleanup(func() { screen.Close() })
	return screen, sim
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

func TestRenderDrawsHeaderAndRows(t *testing.T) {
	screen, sim := newTestScreen(t, 40, 10)
	tv := NewTreeSelectView(animals(), WithTitle("Animals"), WithDefaultChecked([]string{"bird"}))

	tv.Render(screen, 0, 10)
	screen.Show()

	assert.Equal(t, "Animals (5)", lineAt(sim, 0))
	assert.Equal(t, "  [-] All (5)", lineAt(sim, 1))
	assert.Equal(t, "  ▼ [-] Potato (3)", lineAt(sim, 2))
	assert.Equal(t, "      [x] Bird", lineAt(sim, 3))
}

func TestRenderEmptyState(t *testing.T) {
	screen, sim := newTestScreen(t, 40, 6)
	tv := NewTreeSelectView(animals(), WithTitle("Animals"))
	tv.SetKeyword("nothing matches this")

	tv.Render(screen, 0, 6)
	screen.Show()

	assert.Equal(t, "All results: Animals (0)", lineAt(sim, 0))
	assert.Equal(t, EmptyStateText, lineAt(sim, 1))
}

func TestRenderIsVirtualised(t *testing.T) {
	root := &model.Node{Value: model.Root, Label: "All"}
	for i := 0; i < 200; i++ {
		v := fmt.Sprintf("item-%03d", i)
		root.AddChild(model.NewNode(v, v))
	}

	screen, sim := newTestScreen(t, 30, 6)
	tv := NewTreeSelectView([]*model.Node{root}, WithTitle("Items"))
	tv.SelectLast()

	tv.Render(screen, 0, 6)
	screen.Show()

	// header plus five list rows, the last of which is the cursor
	assert.Equal(t, 201-5, tv.ViewportOffset())
	assert.Equal(t, "    [ ] item-199", lineAt(sim, 5))
	assert.Equal(t, "    [ ] item-195", lineAt(sim, 1))
}

func TestRenderTruncatesLongLabels(t *testing.T) {
	screen, sim := newTestScreen(t, 16, 4)
	root := &model.Node{Value: model.Root, Label: "All"}
	root.AddChild(model.NewNode("long", "A very long label indeed"))
	tv := NewTreeSelectView([]*model.Node{root}, WithTitle("T"))

	tv.Render(screen, 0, 4)
	screen.Show()

	assert.Equal(t, "    [ ] A very …", lineAt(sim, 2))
}

func TestSetMatcherReappliesKeyword(t *testing.T) {
	tv := NewTreeSelectView(animals(), WithKeyword("apl"))
	assert.True(t, tv.IsEmpty())

	tv.SetMatcher(treestate.FuzzyMatcher{})
	assert.Equal(t, []string{"root", "apple"}, rowValues(tv.Rows()))
}
