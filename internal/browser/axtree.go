package browser

import (
	"context"
	"fmt"

	"github.com/go-rod/rod/lib/proto"

	"github.com/v0xg/a11ypilot/internal/a11y"
)

// Snapshot captures the page's full accessibility tree via CDP and converts
// it into the snapshot form the projector consumes.
func (p *rodPage) Snapshot(ctx context.Context) (*a11y.Node, error) {
	res, err := proto.AccessibilityGetFullAXTree{}.Call(p.page.Context(ctx))
	if err != nil {
		return nil, fmt.Errorf("accessibility snapshot failed: %w", err)
	}
	return buildTree(res.Nodes), nil
}

// buildTree reassembles CDP's flat node list into a tree. CDP reports
// nodes with ids and child-id lists; the root is the node no other node
// claims as a child.
func buildTree(nodes []*proto.AccessibilityAXNode) *a11y.Node {
	if len(nodes) == 0 {
		return nil
	}

	byID := make(map[proto.AccessibilityAXNodeID]*proto.AccessibilityAXNode, len(nodes))
	isChild := make(map[proto.AccessibilityAXNodeID]bool)
	for _, n := range nodes {
		byID[n.NodeID] = n
		for _, id := range n.ChildIDs {
			isChild[id] = true
		}
	}

	root := nodes[0]
	for _, n := range nodes {
		if !isChild[n.NodeID] {
			root = n
			break
		}
	}
	return convert(root, byID)
}

func convert(n *proto.AccessibilityAXNode, byID map[proto.AccessibilityAXNodeID]*proto.AccessibilityAXNode) *a11y.Node {
	out := &a11y.Node{}
	if !n.Ignored {
		if n.Role != nil {
			out.Role = normalizeRole(n.Role.Value.String())
		}
		if n.Name != nil {
			out.Name = n.Name.Value.String()
		}
		if n.Description != nil {
			out.Description = n.Description.Value.String()
		}
		for _, prop := range n.Properties {
			if string(prop.Name) == "level" && prop.Value != nil {
				out.Level = prop.Value.Value.Int()
			}
		}
	}
	for _, id := range n.ChildIDs {
		child, ok := byID[id]
		if !ok {
			continue
		}
		out.Children = append(out.Children, convert(child, byID))
	}
	return out
}

// normalizeRole maps Chromium AX role spellings onto the vocabulary the
// projector phrases. Structural roles with nothing to announce become
// role-less nodes.
func normalizeRole(role string) string {
	switch role {
	case "StaticText":
		return "text"
	case "generic", "none", "Ignored", "InlineTextBox":
		return ""
	default:
		return role
	}
}
