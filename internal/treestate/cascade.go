package treestate

import "github.com/pstuifzand/tui-treeselect/internal/model"

// cascadeDown applies fn to node and then to all of its descendants in
// pre-order. Children missing from the store are skipped, and a node is
// never visited twice even if duplicate values produced a cycle.
func (s *Store) cascadeDown(node *model.FlatNode, fn func(*model.FlatNode)) {
	seen := make(map[string]bool)
	var walk func(*model.FlatNode)
	walk = func(node *model.FlatNode) {
		if seen[node.Value] {
			return
		}
		seen[node.Value] = true
		fn(node)
		for _, value := range node.Children {
			if child, ok := s.nodes[value]; ok {
				walk(child)
			}
		}
	}
	walk(node)
}

// cascadeUp applies fn to node and then to each ancestor, stopping at a
// top-level node.
func (s *Store) cascadeUp(node *model.FlatNode, fn func(*model.FlatNode)) {
	for steps := 0; node != nil && steps <= len(s.nodes); steps++ {
		fn(node)
		if !node.IsChild {
			return
		}
		node = s.nodes[node.Parent]
	}
}

// hasCollapsedAncestor walks the parent chain of node. The walk succeeds
// (returns false) on reaching the root or a top-level node.
func (s *Store) hasCollapsedAncestor(node *model.FlatNode) bool {
	for steps := 0; node.IsChild && steps <= len(s.nodes); steps++ {
		if node.Parent == model.Root {
			return false
		}
		parent, ok := s.nodes[node.Parent]
		if !ok {
			return false
		}
		if !parent.Expanded {
			return true
		}
		node = parent
	}
	return false
}
