package treestate

import "github.com/pstuifzand/tui-treeselect/internal/model"

// shallowCheckState derives a node's tri-state from its own Checked flag
// (leaves) or from the CheckState of its visible direct children (parents).
// A parent with no visible children is unchecked.
func (s *Store) shallowCheckState(node *model.FlatNode) model.CheckState {
	if node.IsLeaf || len(node.Children) == 0 {
		if node.Checked {
			return model.Checked
		}
		return model.Unchecked
	}

	visible := 0
	checked := 0
	partial := false
	for _, value := range node.Children {
		child, ok := s.nodes[value]
		if !ok || !child.Visible {
			continue
		}
		visible++
		switch child.CheckState {
		case model.Checked:
			checked++
			partial = true
		case model.Indeterminate:
			partial = true
		}
	}

	switch {
	case visible == 0:
		return model.Unchecked
	case checked == visible:
		return model.Checked
	case partial:
		return model.Indeterminate
	default:
		return model.Unchecked
	}
}

// ToggleCheckForNode sets Checked on the node and every visible descendant,
// recomputing each one's shallow check state on the way down. Hidden nodes
// keep their previous value.
func (s *Store) ToggleCheckForNode(value string, checked bool) {
	node, ok := s.nodes[value]
	if !ok {
		return
	}
	s.cascadeDown(node, func(n *model.FlatNode) {
		if !n.Visible {
			return
		}
		n.Checked = checked
		n.CheckState = s.shallowCheckState(n)
	})
}

// ToggleCheckForAllVisibleNodes sets Checked on every visible node, then
// recomputes the root's check state. Nodes are visited deepest first so
// each parent sees its children's new state.
func (s *Store) ToggleCheckForAllVisibleNodes(checked bool) {
	nodes := s.ordered()
	for i := len(nodes) - 1; i >= 0; i-- {
		node := nodes[i]
		if !node.Visible {
			continue
		}
		node.Checked = checked
		node.CheckState = s.shallowCheckState(node)
	}
	if root, ok := s.nodes[model.Root]; ok {
		root.CheckState = s.shallowCheckState(root)
	}
}

// Check applies a checkbox change the way a host widget issues it: the root
// checkbox toggles every visible node, any other node cascades downward.
func (s *Store) Check(value string, checked bool) {
	if value == model.Root {
		s.ToggleCheckForAllVisibleNodes(checked)
		return
	}
	s.ToggleCheckForNode(value, checked)
}
