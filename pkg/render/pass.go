package render

import (
	"fmt"

	"github.com/goliatone/go-docgen/pkg/engine"
	"github.com/goliatone/go-docgen/pkg/expr"
	"github.com/goliatone/go-docgen/pkg/node"
	"github.com/goliatone/go-docgen/pkg/style"
)

// Logger receives non-fatal pipeline events: expression misses and property
// defaults. Wire it to your logging stack; nil discards.
type Logger func(format string, args ...any)

// Option customises a render pass.
type Option func(*Pass)

// WithEvaluator shares a compiled-expression cache across passes. Without it
// each pass gets a private evaluator and loses cross-pass caching.
func WithEvaluator(evaluator *expr.Evaluator) Option {
	return func(p *Pass) {
		if evaluator != nil {
			p.evaluator = evaluator
		}
	}
}

// WithBaseStyle sets the document base style the cascade bottoms out at.
func WithBaseStyle(base style.Properties) Option {
	return func(p *Pass) {
		p.resolver = style.NewResolver(base)
	}
}

// WithLogger installs the warning logger.
func WithLogger(logger Logger) Option {
	return func(p *Pass) {
		p.logger = logger
	}
}

// Result aggregates the non-fatal findings of a render pass.
type Result struct {
	Issues []Issue
}

// HasErrors reports whether any Error-severity issue was collected.
func (r *Result) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Pass drives one render of a tree: synchronous, recursive, single
// goroutine. The registry and the evaluator's program cache are the only
// state shared with other passes; everything else is pass-local.
type Pass struct {
	registry  *Registry
	evaluator *expr.Evaluator
	resolver  *style.Resolver
	logger    Logger
	issues    []Issue
}

// RenderTree renders a node tree into the engine container. The registry is
// passed explicitly: it is the one intentionally shared object, never an
// implicit process global. Validation findings are collected into the
// Result; only renderer-resolution failures and engine layout conflicts
// abort the pass.
func RenderTree(registry *Registry, root *node.Node, bindings map[string]any, container engine.Container, options ...Option) (result *Result, err error) {
	if registry == nil {
		return nil, fmt.Errorf("render: registry is required")
	}
	if root == nil {
		return nil, fmt.Errorf("render: root node is required")
	}
	if container == nil {
		return nil, fmt.Errorf("render: engine container is required")
	}

	pass := &Pass{
		registry:  registry,
		evaluator: expr.New(),
		resolver:  style.NewResolver(style.Properties{}),
	}
	for _, opt := range options {
		if opt != nil {
			opt(pass)
		}
	}

	// Engine implementations raise impossible-constraint conditions by
	// panicking with *engine.LayoutError; convert that into the pass error.
	defer func() {
		if rec := recover(); rec != nil {
			layoutErr, ok := rec.(*engine.LayoutError)
			if !ok {
				panic(rec)
			}
			err = layoutErr
		}
	}()

	rctx := NewContext(bindings)
	if err := pass.renderNode(root, "$", container, style.Properties{}, rctx); err != nil {
		return nil, err
	}
	return &Result{Issues: pass.issues}, nil
}

// renderNode runs the per-node contract in strict order: validate, evaluate,
// resolve style, draw, recurse.
func (p *Pass) renderNode(n *node.Node, path string, container engine.Container, inherited style.Properties, rctx *Context) error {
	renderer, err := p.registry.Resolve(n.Type)
	if err != nil {
		return err
	}
	caps := renderer.Capabilities()

	// 1. Validate. Findings are collected, not thrown; callers wanting
	// fail-fast behaviour validate ahead of rendering.
	p.collect(n, path, renderer.Schema().Validate(n))
	p.collect(n, path, ShapeIssues(n, caps))

	// 2. Evaluate.
	props := p.evaluateProperties(n, path, renderer.Schema(), caps, rctx)

	// 3. Resolve style.
	var effective style.Properties
	if caps.InheritsStyle {
		effective = p.resolver.Effective(n.ExplicitStyle(), inherited)
	} else {
		effective = p.resolver.Rebase(n.ExplicitStyle())
	}

	// 4. Draw.
	children := childNodes(n, caps)
	dc := &DrawContext{
		Node:      n,
		Props:     props,
		Style:     effective,
		Container: container,
		Context:   rctx,
		children:  children,
	}
	outcome, err := renderer.Draw(dc)
	if err != nil {
		return fmt.Errorf("render: draw %q at %s: %w", n.Type, path, err)
	}
	if outcome == nil {
		outcome = &DrawResult{}
	}
	if outcome.Skip || len(children) == 0 {
		return nil
	}

	// 5. Recurse. Style propagates only through inheriting renderers;
	// everything below a non-inheriting node restarts from the base style.
	var downward style.Properties
	if caps.InheritsStyle {
		downward = effective
	}

	switch {
	case len(outcome.Iterations) > 0:
		child := children[0]
		iterPath := childPath(n, path, 0)
		for _, iteration := range outcome.Iterations {
			target := iteration.Container
			if target == nil {
				target = container
			}
			if err := p.renderNode(child, iterPath, target, downward, rctx.Scoped(iteration.Scope)); err != nil {
				return err
			}
		}
	case caps.IsWrapper:
		target := outcome.Child
		if target == nil {
			target = container
		}
		if err := p.renderNode(children[0], childPath(n, path, 0), target, downward, rctx); err != nil {
			return err
		}
	case caps.SupportsChildren:
		slots := outcome.Children
		for i, child := range children {
			target := container
			if i < len(slots) && slots[i] != nil {
				target = slots[i]
			}
			if err := p.renderNode(child, childPath(n, path, i), target, downward, rctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// evaluateProperties produces the resolved value for every declared
// property: expression results when evaluation is enabled for the type,
// literals otherwise, with the declared default substituted for absent, nil,
// or domain-invalid values. Misses are logged, never fatal.
func (p *Pass) evaluateProperties(n *node.Node, path string, schema *Schema, caps Capabilities, rctx *Context) map[string]any {
	if schema == nil || len(schema.Properties) == 0 {
		return nil
	}
	props := make(map[string]any, len(schema.Properties))

	for name, spec := range schema.Properties {
		raw, present := n.Property(name)

		value := raw
		fromExpr := false
		if present && caps.RequiresExpressionEvaluation {
			resolved, wasExpr, err := p.evaluator.Resolve(raw, rctx.Bindings())
			if err != nil {
				p.warnf("render: %s at %s: property %q: %v; using default", n.Type, path, name, err)
				resolved = nil
			} else if wasExpr && resolved == nil {
				p.warnf("render: %s at %s: property %q: binding %v resolved to null; using default", n.Type, path, name, raw)
			}
			value = resolved
			fromExpr = wasExpr
		}

		if !present || value == nil {
			props[name] = spec.Default
			continue
		}
		// Literals must satisfy the declared domain. Expression results skip
		// the check: the draw step coerces them, so a numeric binding may
		// legitimately flow into a string slot.
		if spec.Schema != nil && !fromExpr {
			if err := spec.Schema.VisitJSON(jsonValue(value)); err != nil {
				p.warnf("render: %s at %s: property %q: invalid value %v; using default", n.Type, path, name, value)
				props[name] = spec.Default
				continue
			}
		}
		props[name] = value
	}
	return props
}

func (p *Pass) collect(n *node.Node, path string, issues []Issue) {
	for _, issue := range issues {
		issue.NodeID = n.ID
		issue.Path = path
		p.issues = append(p.issues, issue)
	}
}

func (p *Pass) warnf(format string, args ...any) {
	if p.logger != nil {
		p.logger(format, args...)
	}
}

// ShapeIssues checks a node's child usage against the renderer's declared
// shape. Violations are warnings: the renderer still draws what it can.
func ShapeIssues(n *node.Node, caps Capabilities) []Issue {
	var issues []Issue
	if n.Child != nil && len(n.Children) > 0 {
		issues = append(issues, Issue{
			Property: "children",
			Message:  "node declares both child and children; only child is honoured",
			Severity: SeverityWarning,
		})
	}
	if !caps.IsWrapper && !caps.SupportsChildren && (n.Child != nil || len(n.Children) > 0) {
		issues = append(issues, Issue{
			Message:  fmt.Sprintf("component %q does not support children", n.Type),
			Severity: SeverityWarning,
		})
	}
	if caps.IsWrapper && n.Child == nil && len(n.Children) > 1 {
		issues = append(issues, Issue{
			Property: "children",
			Message:  fmt.Sprintf("wrapper %q renders only the first of %d children", n.Type, len(n.Children)),
			Severity: SeverityWarning,
		})
	}
	return issues
}

// childNodes returns the nodes recursion will visit, honouring the
// child-over-children rule and the renderer's declared shape.
func childNodes(n *node.Node, caps Capabilities) []*node.Node {
	if !caps.IsWrapper && !caps.SupportsChildren {
		return nil
	}
	if n.Child != nil {
		return []*node.Node{n.Child}
	}
	var out []*node.Node
	for _, child := range n.Children {
		if child != nil {
			out = append(out, child)
		}
	}
	if caps.IsWrapper && len(out) > 1 {
		out = out[:1]
	}
	return out
}

// childPath labels a child's position for diagnostics, matching node.Walk.
func childPath(n *node.Node, path string, index int) string {
	if n.Child != nil {
		return path + ".child"
	}
	return fmt.Sprintf("%s.children[%d]", path, index)
}
