// Package orchestrator coordinates the full pipeline from template document
// to rendered layout: load, decode, validate, resolve the theme, and run the
// render pass. It applies sensible defaults (built-in component catalog,
// shared expression cache) while remaining open to dependency injection for
// advanced callers.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-docgen/pkg/components"
	"github.com/goliatone/go-docgen/pkg/engine"
	"github.com/goliatone/go-docgen/pkg/expr"
	"github.com/goliatone/go-docgen/pkg/node"
	"github.com/goliatone/go-docgen/pkg/render"
	"github.com/goliatone/go-docgen/pkg/style"
	"github.com/goliatone/go-docgen/pkg/validation"
)

// ThemeSelector resolves a named theme and variant into a selection whose
// tokens seed the document base style.
type ThemeSelector interface {
	Select(name, variant string, options ...theme.QueryOption) (*theme.Selection, error)
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry. Without it the orchestrator uses
// the built-in catalog.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithEvaluator shares a compiled-expression cache across generate calls.
func WithEvaluator(evaluator *expr.Evaluator) Option {
	return func(o *Orchestrator) {
		o.evaluator = evaluator
	}
}

// WithBaseStyle sets the document base style used when a request selects no
// theme.
func WithBaseStyle(base style.Properties) Option {
	return func(o *Orchestrator) {
		o.baseStyle = base
		o.baseStyleSet = true
	}
}

// WithThemeSelector wires a theme provider. Requests naming a theme fail
// when no selector is configured.
func WithThemeSelector(selector ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.selector = selector
	}
}

// WithLoader injects a custom template loader, e.g. one backed by an
// embedded fs.FS.
func WithLoader(loader *node.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithLogger installs the warning logger handed to the render pass.
func WithLogger(logger render.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithFailFast aborts Generate before rendering when validation finds
// Error-severity issues. The default renders anyway and reports them.
func WithFailFast() Option {
	return func(o *Orchestrator) {
		o.failFast = true
	}
}

// Orchestrator runs the document pipeline. Safe for concurrent use: the
// registry and evaluator it shares are themselves concurrency safe, and all
// per-request state lives on the stack.
type Orchestrator struct {
	registry     *render.Registry
	evaluator    *expr.Evaluator
	loader       *node.Loader
	selector     ThemeSelector
	logger       render.Logger
	baseStyle    style.Properties
	baseStyleSet bool
	failFast     bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	if o.registry == nil {
		o.registry = components.NewRegistry()
	}
	if o.evaluator == nil {
		o.evaluator = expr.New()
	}
	if o.loader == nil {
		o.loader = node.NewLoader()
	}
	return o
}

// Request describes one document generation. Exactly one of Tree, Template,
// or Source must supply the layout; Tree wins over Template wins over
// Source.
type Request struct {
	// Source identifies where the template document lives.
	Source node.Source

	// Template carries an already loaded JSON or YAML document.
	Template []byte

	// Tree bypasses decoding when the caller already holds a node tree.
	Tree *node.Node

	// Bindings is the data scope expressions evaluate against.
	Bindings map[string]any

	// Theme and ThemeVariant select the token set seeding the base style.
	// Empty means the configured base style.
	Theme        string
	ThemeVariant string
}

// Result aggregates everything a generation produced besides the engine
// output itself.
type Result struct {
	// Validation holds the pre-render structural findings.
	Validation validation.Report

	// Render holds the findings collected during the render pass. Nil when
	// fail-fast aborted before rendering.
	Render *render.Result

	// MissingBindings lists expression roots the request's bindings do not
	// satisfy, sorted and deduplicated.
	MissingBindings []string
}

// ErrValidationFailed marks a fail-fast abort; the Result carries the
// report.
var ErrValidationFailed = errors.New("orchestrator: validation failed")

// Generate runs load, decode, validate, theme resolution, and the render
// pass against the supplied engine container.
func (o *Orchestrator) Generate(ctx context.Context, req Request, container engine.Container) (*Result, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if container == nil {
		return nil, errors.New("orchestrator: engine container is required")
	}

	tree, err := o.resolveTree(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Validation:      validation.NewEngine(o.registry).Validate(tree),
		MissingBindings: AuditBindings(tree, req.Bindings),
	}
	if o.failFast && result.Validation.HasErrors() {
		return result, ErrValidationFailed
	}

	base, err := o.resolveBaseStyle(req)
	if err != nil {
		return result, err
	}

	renderResult, err := render.RenderTree(o.registry, tree, req.Bindings, container,
		render.WithEvaluator(o.evaluator),
		render.WithBaseStyle(base),
		render.WithLogger(o.logger),
	)
	if err != nil {
		return result, err
	}
	result.Render = renderResult
	return result, nil
}

// Validate runs only the structural check, without touching an engine.
func (o *Orchestrator) Validate(ctx context.Context, req Request) (validation.Report, error) {
	if ctx == nil {
		return validation.Report{}, errors.New("orchestrator: context is required")
	}
	tree, err := o.resolveTree(ctx, req)
	if err != nil {
		return validation.Report{}, err
	}
	return validation.NewEngine(o.registry).Validate(tree), nil
}

func (o *Orchestrator) resolveTree(ctx context.Context, req Request) (*node.Node, error) {
	switch {
	case req.Tree != nil:
		return req.Tree, nil
	case len(req.Template) > 0:
		tree, err := node.Decode(req.Template)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: decode template: %w", err)
		}
		return tree, nil
	case req.Source != nil:
		tree, err := o.loader.Load(ctx, req.Source)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: load template: %w", err)
		}
		return tree, nil
	default:
		return nil, errors.New("orchestrator: tree, template, or source is required")
	}
}

// resolveBaseStyle derives the base style for one request. A named theme
// beats the configured base; no theme and no configuration means the
// resolver's built-in defaults.
func (o *Orchestrator) resolveBaseStyle(req Request) (style.Properties, error) {
	if req.Theme == "" {
		if o.baseStyleSet {
			return o.baseStyle, nil
		}
		return style.DefaultBase, nil
	}
	if o.selector == nil {
		return style.Properties{}, fmt.Errorf("orchestrator: request names theme %q but no theme selector is configured", req.Theme)
	}
	selection, err := o.selector.Select(req.Theme, req.ThemeVariant)
	if err != nil {
		return style.Properties{}, fmt.Errorf("orchestrator: select theme %q: %w", req.Theme, err)
	}
	base, err := style.FromTheme(selection)
	if err != nil {
		return style.Properties{}, fmt.Errorf("orchestrator: theme %q: %w", req.Theme, err)
	}
	return base, nil
}
