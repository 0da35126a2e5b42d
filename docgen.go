// Package docgen renders declarative document layouts. A layout is a tree of
// typed nodes decoded from JSON or YAML; each node resolves to a renderer
// from a shared registry, evaluates its {{ ... }} data bindings, folds its
// style into the cascade, and issues layout primitives against a document
// engine. The root package re-exports the pieces most callers need; the
// pkg/ packages hold the full surface.
package docgen

import (
	"context"

	"github.com/goliatone/go-docgen/pkg/components"
	"github.com/goliatone/go-docgen/pkg/engine"
	"github.com/goliatone/go-docgen/pkg/node"
	"github.com/goliatone/go-docgen/pkg/orchestrator"
	"github.com/goliatone/go-docgen/pkg/render"
	"github.com/goliatone/go-docgen/pkg/validation"
)

// Node is one element of a layout tree.
type Node = node.Node

// Request describes one document generation.
type Request = orchestrator.Request

// Result aggregates validation and render findings for one generation.
type Result = orchestrator.Result

// Issue is a single validation or render finding.
type Issue = validation.Issue

// Report is the aggregated outcome of validating one tree.
type Report = validation.Report

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module; it is the recommended entry point for applications.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewRegistry returns a renderer registry backed by the built-in component
// catalog. Applications extending the component set register their renderers
// on top of it.
func NewRegistry() *render.Registry {
	return components.NewRegistry()
}

// Render decodes a template document and renders it into the engine
// container with the built-in catalog. It is the simplest entry point for
// callers that hold the template bytes and an engine.
func Render(ctx context.Context, template []byte, bindings map[string]any, container engine.Container, options ...orchestrator.Option) (*Result, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, Request{
		Template: template,
		Bindings: bindings,
	}, container)
}

// Validate decodes a template document and reports its structural defects
// without touching an engine.
func Validate(ctx context.Context, template []byte, options ...orchestrator.Option) (Report, error) {
	gen := orchestrator.New(options...)
	return gen.Validate(ctx, Request{Template: template})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator
// so theme and variant choices resolve ahead of rendering.
func WithThemeSelector(selector orchestrator.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}
