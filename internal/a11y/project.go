package a11y

import (
	"fmt"
	"strings"
	"unicode"
)

// Project renders an accessibility snapshot as the screen-reader transcript
// shown to the model: one line per node with a role, indented two spaces per
// tree depth, parents before children, siblings in snapshot order. A nil
// tree projects to the empty string.
func Project(root *Node) string {
	var b strings.Builder
	project(&b, root, 0)
	return b.String()
}

func project(b *strings.Builder, n *Node, depth int) {
	if n == nil {
		return
	}
	// Nodes without a role contribute no line but are still traversed.
	if n.Role != "" {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(phrase(n))
		if n.Description != "" {
			b.WriteString(", ")
			b.WriteString(n.Description)
		}
		b.WriteByte('\n')
	}
	for _, child := range n.Children {
		project(b, child, depth+1)
	}
}

// phrase renders the role-specific announcement for a single node.
func phrase(n *Node) string {
	switch n.Role {
	case "heading":
		level := n.Level
		if level == 0 {
			level = 1
		}
		return fmt.Sprintf("Heading level %d, %s", level, or(n.Name, "Unnamed heading"))
	case "button":
		return "Button, " + or(n.Name, "Unnamed button")
	case "link":
		return "Link, " + or(n.Name, "Unnamed link")
	case "text":
		// Plain text carries no role label.
		return or(n.Name, n.Description)
	case "checkbox":
		return "Checkbox, " + or(n.Name, "Unnamed checkbox")
	case "radio":
		return "Radio button, " + or(n.Name, "Unnamed radio button")
	case "textbox":
		return "Textbox, " + or(n.Name, "Unnamed textbox")
	default:
		return capitalize(n.Role) + ", " + or(n.Name, "Unnamed")
	}
}

func or(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
