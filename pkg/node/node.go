package node

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-docgen/pkg/style"
)

// Node is one element of the declarative layout tree. Trees are constructed
// externally (storage, editor) and handed to the pipeline read-only; the
// pipeline never mutates a Node.
//
// A node uses Child or Children, never both. When both are populated the
// renderer honours Child and validation reports Children as a warning.
type Node struct {
	ID         string            `json:"id,omitempty" yaml:"id,omitempty"`
	Type       Type              `json:"type" yaml:"type"`
	Properties map[string]any    `json:"properties,omitempty" yaml:"properties,omitempty"`
	Style      *style.Properties `json:"style,omitempty" yaml:"style,omitempty"`
	Child      *Node             `json:"child,omitempty" yaml:"child,omitempty"`
	Children   []*Node           `json:"children,omitempty" yaml:"children,omitempty"`
}

// Property returns the raw property value, which may be a literal or an
// expression string.
func (n *Node) Property(name string) (any, bool) {
	if n == nil || n.Properties == nil {
		return nil, false
	}
	v, ok := n.Properties[name]
	return v, ok
}

// ExplicitStyle returns the node's explicit style overrides, or the zero
// Properties when none were declared.
func (n *Node) ExplicitStyle() style.Properties {
	if n == nil || n.Style == nil {
		return style.Properties{}
	}
	return *n.Style
}

// Label identifies the node in diagnostics: its id when present, otherwise
// its type tag.
func (n *Node) Label() string {
	if n == nil {
		return ""
	}
	if n.ID != "" {
		return n.ID
	}
	return string(n.Type)
}

// Decode parses a template document into a node tree. JSON documents are
// detected by their first significant byte; everything else is decoded as
// YAML. Unknown type tags are kept so validation can report them in place.
func Decode(data []byte) (*Node, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("node: empty template document")
	}

	var root Node
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &root); err != nil {
			return nil, fmt.Errorf("node: decode json template: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(trimmed, &root); err != nil {
			return nil, fmt.Errorf("node: decode yaml template: %w", err)
		}
	}

	if root.Type == "" {
		return nil, fmt.Errorf("node: template root is missing a type tag")
	}
	return &root, nil
}

// DecodeStrict behaves like Decode but rejects trees containing tags outside
// the closed component set.
func DecodeStrict(data []byte) (*Node, error) {
	root, err := Decode(data)
	if err != nil {
		return nil, err
	}
	var bad error
	Walk(root, func(n *Node, path string) bool {
		if bad == nil && !n.Type.Known() {
			bad = fmt.Errorf("node: unknown component type %q at %s", n.Type, path)
		}
		return bad == nil
	})
	if bad != nil {
		return nil, bad
	}
	return root, nil
}

// Visitor receives each node with its tree path (e.g. "$.children[2].child").
// Returning false stops descent into that node's subtree.
type Visitor func(n *Node, path string) bool

// Walk traverses the tree depth first, visiting Child before Children to
// match render order.
func Walk(root *Node, visit Visitor) {
	if root == nil || visit == nil {
		return
	}
	walk(root, "$", visit)
}

func walk(n *Node, path string, visit Visitor) {
	if !visit(n, path) {
		return
	}
	if n.Child != nil {
		walk(n.Child, path+".child", visit)
	}
	for i, child := range n.Children {
		if child == nil {
			continue
		}
		walk(child, fmt.Sprintf("%s.children[%d]", path, i), visit)
	}
}
