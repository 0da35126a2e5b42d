package render

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docgen/pkg/engine"
	"github.com/goliatone/go-docgen/pkg/expr"
	"github.com/goliatone/go-docgen/pkg/node"
	"github.com/goliatone/go-docgen/pkg/style"
)

// Capabilities declares the behavioural flags of a component renderer. All
// variant behaviour in the pipeline is expressed through these four flags
// plus the type-specific schema and draw step; there is no renderer
// inheritance hierarchy.
type Capabilities struct {
	// SupportsChildren marks multi-child containers (column, row, grid...).
	SupportsChildren bool
	// IsWrapper marks single-child wrappers (padding, width, section...).
	IsWrapper bool
	// RequiresExpressionEvaluation enables the evaluate step for the
	// component's declared properties.
	RequiresExpressionEvaluation bool
	// InheritsStyle lets ancestor style cascade into this node and its
	// subtree. When false the cascade resets to the document base style.
	InheritsStyle bool
}

// PropertySpec declares one property of a component: its validation schema,
// the default applied when the value is absent, nil, or invalid for the
// property's domain, and whether expression bindings are meaningful for it.
type PropertySpec struct {
	Schema  *openapi3.Schema
	Default any
	Expr    bool
}

// Schema is a component's property contract. Required properties missing
// from a node produce Error-severity issues; rendering still proceeds with
// the declared default.
type Schema struct {
	Required   []string
	Properties map[string]PropertySpec
}

// Validate checks a node's raw properties against the schema. Expression
// strings are tolerated in any slot (structural validation needs no render
// context); literals are checked with the property's OpenAPI schema.
// Returned issues carry the property name; the caller annotates node id and
// path.
func (s *Schema) Validate(n *node.Node) []Issue {
	if s == nil {
		return nil
	}
	var issues []Issue

	for _, name := range s.Required {
		if _, ok := n.Property(name); !ok {
			issues = append(issues, Issue{
				Property: name,
				Message:  "required property is missing",
				Severity: SeverityError,
			})
		}
	}

	for name, raw := range n.Properties {
		spec, declared := s.Properties[name]
		if !declared {
			issues = append(issues, Issue{
				Property: name,
				Message:  fmt.Sprintf("property is not declared by component %q", n.Type),
				Severity: SeverityInfo,
			})
			continue
		}
		if expr.IsExpression(raw) || spec.Schema == nil {
			continue
		}
		if err := spec.Schema.VisitJSON(jsonValue(raw)); err != nil {
			issues = append(issues, Issue{
				Property: name,
				Message:  fmt.Sprintf("invalid value: %v", err),
				Severity: SeverityError,
			})
		}
	}

	return issues
}

// jsonValue maps Go-typed values onto the types openapi3 validation expects.
// YAML decoding yields int for whole numbers where JSON yields float64.
func jsonValue(value any) any {
	switch typed := value.(type) {
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case float32:
		return float64(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = jsonValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = jsonValue(item)
		}
		return out
	default:
		return value
	}
}

// Renderer is the per-type unit of work. Concrete renderers supply only
// their schema, capability flags, and draw step; the pass orchestrates
// validate, evaluate, style resolution, and recursion around them.
type Renderer interface {
	Type() node.Type
	Capabilities() Capabilities
	Schema() *Schema
	Draw(dc *DrawContext) (*DrawResult, error)
}

// DrawContext is everything a draw step may read: the node, its resolved
// property values (post evaluation and defaulting), its effective style, the
// engine container to draw into, and the render context.
type DrawContext struct {
	Node      *node.Node
	Props     map[string]any
	Style     style.Properties
	Container engine.Container
	Context   *Context

	children []*node.Node
}

// ChildNodes returns the nodes the pass will recurse into, honouring the
// child-over-children rule. Draw steps of containers use it to build one
// engine slot per child.
func (dc *DrawContext) ChildNodes() []*node.Node {
	return dc.children
}

// String reads a resolved property as a string.
func (dc *DrawContext) String(name string) string {
	return expr.CoerceString(dc.Props[name])
}

// Float reads a resolved property as a float64, zero when absent or
// non-numeric.
func (dc *DrawContext) Float(name string) float64 {
	f, _ := expr.CoerceNumber(dc.Props[name])
	return f
}

// Int reads a resolved property as an int.
func (dc *DrawContext) Int(name string) int {
	return int(dc.Float(name))
}

// Bool reads a resolved property's truthiness.
func (dc *DrawContext) Bool(name string) bool {
	return expr.CoerceBool(dc.Props[name])
}

// Has reports whether the property resolved to a non-nil value.
func (dc *DrawContext) Has(name string) bool {
	v, ok := dc.Props[name]
	return ok && v != nil
}

// DrawResult tells the pass where to recurse after the draw step.
type DrawResult struct {
	// Skip suppresses recursion entirely (show-if with a false condition).
	Skip bool
	// Child is the container the single wrapped child renders into. Nil
	// means draw the child into the node's own container.
	Child engine.Container
	// Children holds one slot per ChildNodes() entry for multi-child
	// containers. Nil means every child shares the node's container.
	Children []engine.Container
	// Iterations repeats the single wrapped child once per entry with a
	// scoped binding overlay (repeat components).
	Iterations []Iteration
}

// Iteration is one repeat cycle: the slot to render into and the bindings
// overlaid on the pass context.
type Iteration struct {
	Container engine.Container
	Scope     map[string]any
}
