package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-docgen/pkg/node"
)

// UnknownComponentTypeError is returned when the registry cannot produce a
// renderer for a type tag. There is no sensible default renderer, so this is
// fatal for the node being resolved. The error carries the tag's category
// and tier metadata plus the currently supported types in the same category
// to aid diagnosis of typos and missing registrations.
type UnknownComponentTypeError struct {
	Type     node.Type
	Category node.Category
	Tier     node.Tier
	// Supported lists the registered types sharing the tag's category. For
	// tags outside the closed set it lists nothing.
	Supported []node.Type
}

func (e *UnknownComponentTypeError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "render: no renderer registered for component type %q", e.Type)
	if e.Category != "" {
		fmt.Fprintf(&sb, " (category %s, tier %s)", e.Category, e.Tier)
	} else {
		sb.WriteString(" (not in the component set)")
	}
	if len(e.Supported) > 0 {
		names := make([]string, len(e.Supported))
		for i, t := range e.Supported {
			names[i] = string(t)
		}
		sort.Strings(names)
		fmt.Fprintf(&sb, "; supported in category: %s", strings.Join(names, ", "))
	}
	return sb.String()
}

// Severity ranks validation findings.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler so issues serialize with
// readable severities.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Issue is one structural finding for a node. Issues are collected, never
// thrown: validation and rendering are separate concerns, and a defect on
// one node must not abort traversal of its siblings.
type Issue struct {
	NodeID   string   `json:"nodeId,omitempty"`
	Path     string   `json:"path,omitempty"`
	Property string   `json:"propertyName,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

func (i Issue) String() string {
	loc := i.Path
	if i.NodeID != "" {
		loc = i.NodeID
	}
	if i.Property != "" {
		return fmt.Sprintf("%s: %s: %s: %s", i.Severity, loc, i.Property, i.Message)
	}
	return fmt.Sprintf("%s: %s: %s", i.Severity, loc, i.Message)
}
