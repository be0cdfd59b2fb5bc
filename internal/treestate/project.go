package treestate

import "github.com/pstuifzand/tui-treeselect/internal/model"

// GenerateNodesArray projects the ordered list of displayable nodes.
//
// Nodes are emitted in traversal order. A node is displayed when it is
// visible and no ancestor below the root is collapsed; hideRoot drops the
// root entry. Check states are recomputed first, deepest node first, so
// every emitted parent reflects the current state of its children.
func (s *Store) GenerateNodesArray(hideRoot bool) []model.FlatNode {
	nodes := s.ordered()

	// Reverse pre-order visits every child before its parent
	for i := len(nodes) - 1; i >= 0; i-- {
		nodes[i].CheckState = s.shallowCheckState(nodes[i])
	}

	result := []model.FlatNode{}
	for _, node := range nodes {
		if hideRoot && node.IsRoot() {
			continue
		}
		if !node.Visible {
			continue
		}
		if !node.IsRoot() && s.hasCollapsedAncestor(node) {
			continue
		}
		result = append(result, snapshot(node))
	}
	return result
}
