// Package model contains the input tree and the derived flat node state
package model

import (
	"errors"
	"fmt"
)

// Root is the identifier of the synthetic top-level node
const Root = "root"

var (
	// ErrDuplicateValue is returned when two nodes share an identifier
	ErrDuplicateValue = errors.New("duplicate node value")
	// ErrEmptyValue is returned for a node without an identifier
	ErrEmptyValue = errors.New("empty node value")
	// ErrCycle is returned when a node is reachable from itself
	ErrCycle = errors.New("cycle in node tree")
)

// Node represents a single caller-supplied node of the input tree
type Node struct {
	Value    string  `json:"value" yaml:"value"`
	Label    string  `json:"label" yaml:"label"`
	Checked  *bool   `json:"checked,omitempty" yaml:"checked,omitempty"`
	Expanded *bool   `json:"expanded,omitempty" yaml:"expanded,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// NewNode creates a leaf node
func NewNode(value, label string) *Node {
	return &Node{Value: value, Label: label}
}

// AddChild appends a child and returns the receiver for chaining
func (n *Node) AddChild(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// HasChildren reports whether the node declares at least one child.
// An explicit empty children list counts as a leaf.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// CheckedHint returns the initial checked flag, false when unset
func (n *Node) CheckedHint() (bool, bool) {
	if n.Checked == nil {
		return false, false
	}
	return *n.Checked, true
}

// ExpandedHint returns the initial expanded flag, false when unset
func (n *Node) ExpandedHint() (bool, bool) {
	if n.Expanded == nil {
		return false, false
	}
	return *n.Expanded, true
}

// Bool returns a pointer to b, for building Checked/Expanded hints
func Bool(b bool) *bool {
	return &b
}

// Walk visits every node in pre-order
func Walk(nodes []*Node, fn func(node *Node, depth int)) {
	walk(nodes, 0, fn)
}

func walk(nodes []*Node, depth int, fn func(node *Node, depth int)) {
	for _, node := range nodes {
		if node == nil {
			continue
		}
		fn(node, depth)
		walk(node.Children, depth+1, fn)
	}
}

// Count returns the total number of nodes in the tree
func Count(nodes []*Node) int {
	count := 0
	Walk(nodes, func(*Node, int) { count++ })
	return count
}

// Validate checks that identifiers are non-empty and unique and that the
// tree contains no cycles.
func Validate(nodes []*Node) error {
	seen := make(map[string]bool)
	onPath := make(map[*Node]bool)

	var visit func(nodes []*Node) error
	visit = func(nodes []*Node) error {
		for _, node := range nodes {
			if node == nil {
				continue
			}
			if onPath[node] {
				return fmt.Errorf("%w: %q", ErrCycle, node.Value)
			}
			if node.Value == "" {
				return fmt.Errorf("%w (label %q)", ErrEmptyValue, node.Label)
			}
			if seen[node.Value] {
				return fmt.Errorf("%w: %q", ErrDuplicateValue, node.Value)
			}
			seen[node.Value] = true

			onPath[node] = true
			if err := visit(node.Children); err != nil {
				return err
			}
			delete(onPath, node)
		}
		return nil
	}

	return visit(nodes)
}
