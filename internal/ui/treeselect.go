package ui

import (
	"fmt"
	"log"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-treeselect/internal/model"
	"github.com/pstuifzand/tui-treeselect/internal/treestate"
)

// EmptyStateText is shown when every node is filtered out
const EmptyStateText = "No matching nodes"

// Row is one rendered line of the tree
type Row struct {
	Node model.FlatNode
	// Key is the stable render key, TreePath + "-" + Value
	Key string
	// Indent is the number of columns before the expand arrow
	Indent int
	// ChildCount is the visible leaf count for root, the visible direct
	// child count for other parents and zero for leaves
	ChildCount int
}

// CheckedLeaf is a harvested selection entry
type CheckedLeaf struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ViewOption configures a TreeSelectView
type ViewOption func(*TreeSelectView)

// WithTitle sets the header title
func WithTitle(title string) ViewOption {
	return func(tv *TreeSelectView) { tv.title = title }
}

// WithHideRoot hides the synthetic root row
func WithHideRoot(hide bool) ViewOption {
	return func(tv *TreeSelectView) { tv.hideRoot = hide }
}

// WithDefaultChecked sets the values checked on every reset
func WithDefaultChecked(values []string) ViewOption {
	return func(tv *TreeSelectView) { tv.defaultChecked = append([]string(nil), values...) }
}

// WithIndentWidth sets the number of columns per nesting level
func WithIndentWidth(width int) ViewOption {
	return func(tv *TreeSelectView) {
		if width > 0 {
			tv.indentWidth = width
		}
	}
}

// WithKeyword sets the initial filter keyword
func WithKeyword(keyword string) ViewOption {
	return func(tv *TreeSelectView) { tv.keyword = keyword }
}

// WithDisabled makes the checkboxes read-only
func WithDisabled(disabled bool) ViewOption {
	return func(tv *TreeSelectView) { tv.disabled = disabled }
}

// WithStoreOptions passes options to the underlying store
func WithStoreOptions(opts ...treestate.Option) ViewOption {
	return func(tv *TreeSelectView) { tv.storeOpts = append(tv.storeOpts, opts...) }
}

// WithOnCheck registers a callback run after a checkbox changed
func WithOnCheck(fn func(value string)) ViewOption {
	return func(tv *TreeSelectView) { tv.onCheck = fn }
}

// WithOnExpand registers a callback run after a node was expanded or collapsed
func WithOnExpand(fn func(value string)) ViewOption {
	return func(tv *TreeSelectView) { tv.onExpand = fn }
}

// TreeSelectView hosts a tree state store and renders its projection as a
// scrolling list of checkbox rows
type TreeSelectView struct {
	store     *treestate.Store
	storeOpts []treestate.Option
	nodes     []*model.Node

	title          string
	keyword        string
	hideRoot       bool
	disabled       bool
	defaultChecked []string
	indentWidth    int
	onCheck        func(string)
	onExpand       func(string)

	rows           []Row
	leafCount      int
	selectedIdx    int
	viewportOffset int
}

// NewTreeSelectView flattens nodes, applies the default checked list and
// the initial keyword, and projects the first set of rows
func NewTreeSelectView(nodes []*model.Node, opts ...ViewOption) *TreeSelectView {
	tv := &TreeSelectView{
		nodes:       nodes,
		indentWidth: 2,
	}
	for _, opt := range opts {
		opt(tv)
	}
	tv.store = treestate.New(tv.storeOpts...)
	tv.ResetByDefaultCheckedList()
	return tv
}

// Store exposes the underlying state store
func (tv *TreeSelectView) Store() *treestate.Store {
	return tv.store
}

// ResetByDefaultCheckedList discards all state, rebuilds it from the input
// nodes and checks every default value that exists, in list order. An
// active keyword is applied again afterwards.
func (tv *TreeSelectView) ResetByDefaultCheckedList() {
	tv.store.Reset(tv.nodes)
	for _, value := range tv.defaultChecked {
		if _, ok := tv.store.GetNode(value); !ok {
			log.Printf("default checked value %q not in tree", value)
			continue
		}
		tv.store.ToggleCheckForNode(value, true)
	}
	if tv.keyword != "" {
		tv.store.FilterNodesByKeyword(tv.keyword)
	}
	tv.refresh()
}

// SetNodes replaces the input tree and resets
func (tv *TreeSelectView) SetNodes(nodes []*model.Node) {
	tv.nodes = nodes
	tv.ResetByDefaultCheckedList()
}

// SetDefaultChecked replaces the default checked list without resetting
func (tv *TreeSelectView) SetDefaultChecked(values []string) {
	tv.defaultChecked = append([]string(nil), values...)
}

// HandleCheck flips the node's checkbox: unchecked and indeterminate
// become checked, checked becomes unchecked
func (tv *TreeSelectView) HandleCheck(value string) {
	if tv.disabled {
		return
	}
	node, ok := tv.store.GetNode(value)
	if !ok {
		return
	}

	tv.store.Check(value, node.CheckState != model.Checked)
	tv.refresh()
	if tv.onCheck != nil {
		tv.onCheck(value)
	}
}

// HandleExpand toggles the expanded flag of a parent node. Root cannot be
// collapsed.
func (tv *TreeSelectView) HandleExpand(value string) {
	node, ok := tv.store.GetNode(value)
	if !ok || !node.IsParent || node.IsRoot() {
		return
	}

	tv.store.SetNodeStatus(value, model.StatusExpanded, !node.Expanded)
	tv.refresh()
	if tv.onExpand != nil {
		tv.onExpand(value)
	}
}

// SetKeyword filters the tree; an empty keyword shows every node again
func (tv *TreeSelectView) SetKeyword(keyword string) {
	tv.keyword = keyword
	tv.store.FilterNodesByKeyword(keyword)
	tv.refresh()
}

// Keyword returns the active filter keyword
func (tv *TreeSelectView) Keyword() string {
	return tv.keyword
}

// SetMatcher switches the filter matcher and re-applies the keyword
func (tv *TreeSelectView) SetMatcher(m treestate.Matcher) {
	tv.store.SetMatcher(m)
	tv.SetKeyword(tv.keyword)
}

// ExpandAll expands or collapses every parent
func (tv *TreeSelectView) ExpandAll(expand bool) {
	tv.store.ExpandAllNodes(expand)
	tv.refresh()
}

// SetTitle changes the header title
func (tv *TreeSelectView) SetTitle(title string) {
	tv.title = title
}

// SetHideRoot changes whether the root row is shown
func (tv *TreeSelectView) SetHideRoot(hide bool) {
	tv.hideRoot = hide
	tv.refresh()
}

// SetIndentWidth changes the indentation per level
func (tv *TreeSelectView) SetIndentWidth(width int) {
	if width > 0 {
		tv.indentWidth = width
		tv.refresh()
	}
}

// refresh re-projects the store, keeping the cursor on the same node when
// it is still listed
func (tv *TreeSelectView) refresh() {
	selected := ""
	if row, ok := tv.Selected(); ok {
		selected = row.Node.Value
	}

	projected := tv.store.GenerateNodesArray(tv.hideRoot)
	rows := make([]Row, 0, len(projected))
	for _, node := range projected {
		indent := node.TreeDepth * tv.indentWidth
		if tv.hideRoot {
			indent = max(indent-tv.indentWidth, 0)
		}
		count := 0
		if node.IsParent {
			count = tv.store.ChildCount(node.Value)
		}
		rows = append(rows, Row{
			Node:       node,
			Key:        node.Key(),
			Indent:     indent,
			ChildCount: count,
		})
	}
	tv.rows = rows
	tv.leafCount = len(tv.store.GetAllLeafsNodes())

	if selected != "" && tv.SelectValue(selected) {
		return
	}
	tv.selectedIdx = min(tv.selectedIdx, max(len(tv.rows)-1, 0))
}

// Rows returns the projected rows
func (tv *TreeSelectView) Rows() []Row {
	return tv.rows
}

// AllCheckedLeaf returns the checked leaves in tree order
func (tv *TreeSelectView) AllCheckedLeaf() []CheckedLeaf {
	leaves := tv.store.GetCheckedLeafNodes()
	result := make([]CheckedLeaf, 0, len(leaves))
	for _, leaf := range leaves {
		result = append(result, CheckedLeaf{Value: leaf.Value, Label: leaf.Label})
	}
	return result
}

// Title returns the header line including the visible leaf count
func (tv *TreeSelectView) Title() string {
	if tv.keyword != "" {
		return fmt.Sprintf("All results: %s (%d)", tv.title, tv.leafCount)
	}
	return fmt.Sprintf("%s (%d)", tv.title, tv.leafCount)
}

// IsEmpty reports whether the empty state should be shown
func (tv *TreeSelectView) IsEmpty() bool {
	return tv.store.IsAllNodesHidden()
}

// Selection

// Selected returns the row under the cursor
func (tv *TreeSelectView) Selected() (Row, bool) {
	if tv.selectedIdx < 0 || tv.selectedIdx >= len(tv.rows) {
		return Row{}, false
	}
	return tv.rows[tv.selectedIdx], true
}

// SelectedIndex returns the cursor position
func (tv *TreeSelectView) SelectedIndex() int {
	return tv.selectedIdx
}

// SelectValue moves the cursor to the row of value
func (tv *TreeSelectView) SelectValue(value string) bool {
	for i, row := range tv.rows {
		if row.Node.Value == value {
			tv.selectedIdx = i
			return true
		}
	}
	return false
}

// SelectNext moves selection down
func (tv *TreeSelectView) SelectNext() {
	if tv.selectedIdx < len(tv.rows)-1 {
		tv.selectedIdx++
	}
}

// SelectPrev moves selection up
func (tv *TreeSelectView) SelectPrev() {
	if tv.selectedIdx > 0 {
		tv.selectedIdx--
	}
}

// SelectFirst moves selection to the first row
func (tv *TreeSelectView) SelectFirst() {
	tv.selectedIdx = 0
}

// SelectLast moves selection to the last row
func (tv *TreeSelectView) SelectLast() {
	tv.selectedIdx = max(len(tv.rows)-1, 0)
}

// PageDown moves selection down by pageSize rows
func (tv *TreeSelectView) PageDown(pageSize int) {
	tv.selectedIdx = min(tv.selectedIdx+max(pageSize, 1), max(len(tv.rows)-1, 0))
}

// PageUp moves selection up by pageSize rows
func (tv *TreeSelectView) PageUp(pageSize int) {
	tv.selectedIdx = max(tv.selectedIdx-max(pageSize, 1), 0)
}

// ToggleSelected flips the checkbox under the cursor
func (tv *TreeSelectView) ToggleSelected() {
	if row, ok := tv.Selected(); ok {
		tv.HandleCheck(row.Node.Value)
	}
}

// Expand opens the selected parent, or moves to its first child when it is
// already open
func (tv *TreeSelectView) Expand() {
	row, ok := tv.Selected()
	if !ok || !row.Node.IsParent {
		return
	}
	if !row.Node.Expanded {
		tv.HandleExpand(row.Node.Value)
		return
	}
	if next := tv.selectedIdx + 1; next < len(tv.rows) && tv.rows[next].Node.Parent == row.Node.Value {
		tv.selectedIdx = next
	}
}

// Collapse closes the selected parent; on a leaf or a closed parent it
// moves the cursor to the parent row instead
func (tv *TreeSelectView) Collapse() {
	row, ok := tv.Selected()
	if !ok {
		return
	}
	if row.Node.IsParent && row.Node.Expanded && !row.Node.IsRoot() {
		tv.HandleExpand(row.Node.Value)
		return
	}
	if row.Node.Parent != "" {
		tv.SelectValue(row.Node.Parent)
	}
}

// Rendering

// FormatRow returns the text of a row without styling:
// indentation, expand arrow, checkbox, label and child count for parents
func FormatRow(row Row) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", row.Indent))
	sb.WriteString(arrowFor(row.Node))
	sb.WriteString(" ")
	sb.WriteString(checkboxFor(row.Node.CheckState))
	sb.WriteString(" ")
	sb.WriteString(row.Node.Label)
	if row.Node.IsParent {
		fmt.Fprintf(&sb, " (%d)", row.ChildCount)
	}
	return sb.String()
}

func arrowFor(node model.FlatNode) string {
	switch {
	case !node.IsParent || node.IsRoot():
		return " "
	case node.Expanded:
		return "▼"
	default:
		return "▶"
	}
}

func checkboxFor(state model.CheckState) string {
	switch state {
	case model.Checked:
		return "[x]"
	case model.Indeterminate:
		return "[-]"
	default:
		return "[ ]"
	}
}

// Render draws the header line at startY and the rows below it, up to
// height lines in total. Only rows inside the viewport are drawn.
func (tv *TreeSelectView) Render(screen *Screen, startY, height int) {
	width, _ := screen.Size()
	bgStyle := screen.BackgroundStyle()
	if height <= 0 {
		return
	}

	x := screen.DrawStringLimited(0, startY, tv.Title(), width, screen.HeaderStyle())
	screen.FillLine(x, startY, bgStyle)

	viewportHeight := height - 1
	listY := startY + 1
	if viewportHeight <= 0 {
		return
	}

	if tv.IsEmpty() {
		x := screen.DrawStringLimited(0, listY, EmptyStateText, width, screen.EmptyStateStyle())
		screen.FillLine(x, listY, bgStyle)
		for y := listY + 1; y < listY+viewportHeight; y++ {
			screen.FillLine(0, y, bgStyle)
		}
		return
	}

	tv.scrollToSelection(viewportHeight)

	y := listY
	for i := tv.viewportOffset; i < len(tv.rows) && y < listY+viewportHeight; i++ {
		tv.renderRow(screen, tv.rows[i], i == tv.selectedIdx, y, width)
		y++
	}
	for ; y < listY+viewportHeight; y++ {
		screen.FillLine(0, y, bgStyle)
	}
}

// scrollToSelection keeps the cursor inside the viewport
func (tv *TreeSelectView) scrollToSelection(viewportHeight int) {
	if tv.selectedIdx < tv.viewportOffset {
		tv.viewportOffset = tv.selectedIdx
	} else if tv.selectedIdx >= tv.viewportOffset+viewportHeight {
		tv.viewportOffset = tv.selectedIdx - viewportHeight + 1
	}

	maxOffset := max(len(tv.rows)-viewportHeight, 0)
	tv.viewportOffset = min(max(tv.viewportOffset, 0), maxOffset)
}

// ViewportOffset returns the index of the first drawn row
func (tv *TreeSelectView) ViewportOffset() int {
	return tv.viewportOffset
}

func (tv *TreeSelectView) renderRow(screen *Screen, row Row, selected bool, y, width int) {
	textStyle := screen.TreeNormalStyle()
	arrowStyle := screen.TreeArrowStyle()
	boxStyle := screen.CheckboxStyle(row.Node.CheckState == model.Checked, row.Node.CheckState == model.Indeterminate)
	countStyle := screen.TreeChildCountStyle()
	fill := screen.BackgroundStyle()
	if selected {
		sel := screen.TreeSelectedStyle()
		textStyle, arrowStyle, fill = sel, sel, sel
		_, bg, _ := sel.Decompose()
		boxStyle = boxStyle.Background(bg)
		countStyle = countStyle.Background(bg)
	}
	if tv.disabled {
		boxStyle = boxStyle.Dim(true)
	}

	x := row.Indent
	for i := 0; i < x && i < width; i++ {
		screen.SetCell(i, y, ' ', fill)
	}
	x = screen.DrawString(x, y, arrowFor(row.Node)+" ", arrowStyle)
	x = screen.DrawString(x, y, checkboxFor(row.Node.CheckState), boxStyle)
	x = screen.DrawString(x, y, " ", fill)

	suffix := ""
	if row.Node.IsParent {
		suffix = fmt.Sprintf(" (%d)", row.ChildCount)
	}
	labelWidth := width - x - StringWidth(suffix)
	x = screen.DrawStringLimited(x, y, row.Node.Label, labelWidth, textStyle)
	x = screen.DrawString(x, y, suffix, countStyle)
	screen.FillLine(x, y, fill)
}

// HandleMouse maps a click on a row to a check or expand action. listY is
// the screen row of the first list line.
func (tv *TreeSelectView) HandleMouse(ev *tcell.EventMouse, listY int) bool {
	if ev.Buttons()&tcell.Button1 == 0 {
		return false
	}
	x, y := ev.Position()
	idx := tv.viewportOffset + y - listY
	if y < listY || idx < 0 || idx >= len(tv.rows) {
		return false
	}

	tv.selectedIdx = idx
	row := tv.rows[idx]
	if x >= row.Indent && x < row.Indent+2 {
		tv.HandleExpand(row.Node.Value)
	} else {
		tv.HandleCheck(row.Node.Value)
	}
	return true
}
