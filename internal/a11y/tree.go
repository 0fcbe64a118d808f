package a11y

// Node is one node of an accessibility snapshot: the semantic role, name
// and description of a page region, independent of visual layout. An empty
// Role means the node carries no announceable semantics of its own, but its
// children may.
type Node struct {
	Role        string  `json:"role,omitempty"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Level       int     `json:"level,omitempty"` // heading depth, 0 when unset
	Children    []*Node `json:"children,omitempty"`
}
