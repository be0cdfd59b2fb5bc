package treestate

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/pstuifzand/tui-treeselect/internal/model"
)

// GetAllLeafsNodes returns all visible leaves in traversal order
func (s *Store) GetAllLeafsNodes() []model.FlatNode {
	return s.collect(func(n *model.FlatNode) bool {
		return n.IsLeaf && n.Visible
	})
}

// GetCheckedLeafNodes returns every checked leaf regardless of depth
func (s *Store) GetCheckedLeafNodes() []model.FlatNode {
	return s.collect(func(n *model.FlatNode) bool {
		return n.IsLeaf && n.Checked
	})
}

// GetCheckedLeafNodesAtDepth returns the checked leaves whose TreeDepth
// equals depth exactly
func (s *Store) GetCheckedLeafNodesAtDepth(depth int) []model.FlatNode {
	return s.collect(func(n *model.FlatNode) bool {
		return n.IsLeaf && n.Checked && n.TreeDepth == depth
	})
}

// GetAllVisibleNodes returns every visible node, including collapsed ones
func (s *Store) GetAllVisibleNodes() []model.FlatNode {
	return s.collect(func(n *model.FlatNode) bool {
		return n.Visible
	})
}

// IsAllNodesHidden reports whether there is nothing to show: the store is
// empty, the root declares no children, or every non-root node is hidden.
func (s *Store) IsAllNodesHidden() bool {
	if len(s.nodes) == 0 {
		return true
	}
	if root, ok := s.nodes[model.Root]; ok && len(root.Children) == 0 {
		return true
	}
	for value, node := range s.nodes {
		if value != model.Root && node.Visible {
			return false
		}
	}
	return true
}

// ChildCount returns the count shown next to a parent: the number of
// visible leaves for the root, the number of visible direct children for
// any other node.
func (s *Store) ChildCount(value string) int {
	node, ok := s.nodes[value]
	if !ok {
		return 0
	}
	if value == model.Root {
		return len(s.GetAllLeafsNodes())
	}
	count := 0
	for _, childValue := range node.Children {
		if child, ok := s.nodes[childValue]; ok && child.Visible {
			count++
		}
	}
	return count
}

// GetAllNodes returns every node in traversal order
func (s *Store) GetAllNodes() []model.FlatNode {
	return snapshots(s.ordered())
}

// Dump returns a human readable dump of every node in traversal order
func (s *Store) Dump() string {
	cfg := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	return cfg.Sdump(snapshots(s.ordered()))
}

func (s *Store) collect(keep func(*model.FlatNode) bool) []model.FlatNode {
	result := []model.FlatNode{}
	for _, node := range s.ordered() {
		if keep(node) {
			result = append(result, snapshot(node))
		}
	}
	return result
}
