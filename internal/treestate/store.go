// Package treestate flattens a nested node tree into a map keyed by node
// value, owns the per-node checked/expanded/visible state, and projects the
// ordered list of displayable nodes.
//
// A Store is not safe for concurrent use. Callers serialise access, which
// the app does by touching the store only from its event loop.
package treestate

import (
	"fmt"
	"slices"

	"github.com/pstuifzand/tui-treeselect/internal/model"
)

// Store is the flattener and state store for one tree
type Store struct {
	nodes     map[string]*model.FlatNode
	nodeIndex int
	matcher   Matcher
}

// Option configures a Store
type Option func(*Store)

// WithMatcher sets the label matcher used by FilterNodesByKeyword
func WithMatcher(m Matcher) Option {
	return func(s *Store) {
		if m != nil {
			s.matcher = m
		}
	}
}

// New creates an empty store
func New(opts ...Option) *Store {
	s := &Store{
		nodes:   make(map[string]*model.FlatNode),
		matcher: SubstringMatcher{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetMatcher replaces the label matcher; the current visibility is kept
// until the next FilterNodesByKeyword call
func (s *Store) SetMatcher(m Matcher) {
	if m != nil {
		s.matcher = m
	}
}

// Matcher returns the active label matcher
func (s *Store) Matcher() Matcher {
	return s.matcher
}

// FlattenNodes walks nodes in pre-order and merges one flat node per input
// node into the store. Checked, Expanded, Loading and ChildLeafCount of an
// existing entry with the same value are retained.
func (s *Store) FlattenNodes(nodes []*model.Node) {
	s.flatten(nodes, nil, 0)
}

func (s *Store) flatten(nodes []*model.Node, parent *model.FlatNode, depth int) {
	for i, node := range nodes {
		if node == nil {
			continue
		}

		isParent := node.HasChildren()
		existing := s.nodes[node.Value]

		flatNode := &model.FlatNode{
			Label:     node.Label,
			Value:     node.Value,
			Children:  childValues(node),
			IsParent:  isParent,
			IsLeaf:    !isParent,
			IsChild:   parent != nil,
			TreeDepth: depth,
			Index:     s.nodeIndex,
			Visible:   true,
		}
		s.nodeIndex++

		if parent != nil {
			flatNode.Parent = parent.Value
			flatNode.TreePath = fmt.Sprintf("%s/%d.%s", parent.TreePath, i, node.Value)
		} else {
			flatNode.TreePath = fmt.Sprintf("/%d.%s", i, node.Value)
		}

		if existing != nil {
			flatNode.Checked = existing.Checked
			flatNode.Expanded = existing.Expanded
			flatNode.Loading = existing.Loading
			flatNode.ChildLeafCount = existing.ChildLeafCount
		} else {
			flatNode.Checked, _ = node.CheckedHint()
			flatNode.Expanded, _ = node.ExpandedHint()
		}
		if node.Value == model.Root {
			flatNode.Expanded = true
		}

		flatNode.CheckState = model.Unchecked
		if flatNode.Checked {
			flatNode.CheckState = model.Checked
		}

		s.nodes[node.Value] = flatNode
		s.flatten(node.Children, flatNode, depth+1)
	}
}

func childValues(node *model.Node) []string {
	if len(node.Children) == 0 {
		return nil
	}
	values := make([]string, 0, len(node.Children))
	for _, child := range node.Children {
		if child != nil {
			values = append(values, child.Value)
		}
	}
	return values
}

// Reset discards all state and flattens nodes from scratch
func (s *Store) Reset(nodes []*model.Node) {
	s.nodes = make(map[string]*model.FlatNode)
	s.FlattenNodes(nodes)
}

// Len returns the number of flat nodes
func (s *Store) Len() int {
	return len(s.nodes)
}

// GetNode returns a copy of the node with the given value
func (s *Store) GetNode(value string) (model.FlatNode, bool) {
	node, ok := s.nodes[value]
	if !ok {
		return model.FlatNode{}, false
	}
	return snapshot(node), true
}

// SetNodeStatus sets one status flag on a node. Unknown values are ignored.
func (s *Store) SetNodeStatus(value string, status model.NodeStatus, v bool) {
	node, ok := s.nodes[value]
	if !ok {
		return
	}
	switch status {
	case model.StatusChecked:
		node.Checked = v
	case model.StatusExpanded:
		node.Expanded = v
	case model.StatusVisible:
		node.Visible = v
	}
}

// ExpandAllNodes sets Expanded on every parent node
func (s *Store) ExpandAllNodes(expand bool) *Store {
	for _, node := range s.nodes {
		if node.IsParent {
			node.Expanded = expand
		}
	}
	return s
}

// ordered returns the live nodes sorted by traversal index
func (s *Store) ordered() []*model.FlatNode {
	nodes := make([]*model.FlatNode, 0, len(s.nodes))
	for _, node := range s.nodes {
		nodes = append(nodes, node)
	}
	slices.SortFunc(nodes, func(a, b *model.FlatNode) int {
		return a.Index - b.Index
	})
	return nodes
}

func snapshot(node *model.FlatNode) model.FlatNode {
	c := *node
	c.Children = slices.Clone(node.Children)
	return c
}

func snapshots(nodes []*model.FlatNode) []model.FlatNode {
	result := make([]model.FlatNode, 0, len(nodes))
	for _, node := range nodes {
		result = append(result, snapshot(node))
	}
	return result
}
