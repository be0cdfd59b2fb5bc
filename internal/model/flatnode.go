package model

// CheckState is the tri-state checkbox value of a node
type CheckState string

const (
	Checked       CheckState = "checked"
	Unchecked     CheckState = "unchecked"
	Indeterminate CheckState = "indeterminate"
)

// NodeStatus names one of the boolean flags that can be set on a flat node
type NodeStatus string

const (
	StatusChecked  NodeStatus = "checked"
	StatusExpanded NodeStatus = "expanded"
	StatusVisible  NodeStatus = "visible"
)

// FlatNode is the derived, mutable state of one input node.
// Parent and Children hold identifiers, not pointers; resolve them through
// the owning store.
type FlatNode struct {
	Label     string   `json:"label"`
	Value     string   `json:"value"`
	Children  []string `json:"children,omitempty"`
	IsParent  bool     `json:"isParent"`
	IsLeaf    bool     `json:"isLeaf"`
	IsChild   bool     `json:"isChild"`
	Parent    string   `json:"parent,omitempty"`
	TreeDepth int      `json:"treeDepth"`
	TreePath  string   `json:"treePath"`
	Index     int      `json:"index"`

	Checked    bool       `json:"checked"`
	Expanded   bool       `json:"expanded"`
	Visible    bool       `json:"visible"`
	CheckState CheckState `json:"checkState"`

	// Reserved, carried across re-flattens
	Loading        bool `json:"loading"`
	ChildLeafCount int  `json:"childLeafCount"`
}

// IsRoot reports whether this is the synthetic root node
func (n FlatNode) IsRoot() bool {
	return n.Value == Root
}

// Key returns a stable render key for the node
func (n FlatNode) Key() string {
	return n.TreePath + "-" + n.Value
}
