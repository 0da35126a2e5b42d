// Package components ships the built-in renderer catalog for the closed
// component set. Each renderer is a schema plus a draw step; the render pass
// supplies validation, expression evaluation, style resolution, and
// recursion around them.
package components

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docgen/pkg/node"
	"github.com/goliatone/go-docgen/pkg/render"
)

// component is the shared shape of every built-in renderer: capability
// flags, a property schema, and a draw func. No deeper hierarchy is needed.
type component struct {
	typ    node.Type
	caps   render.Capabilities
	schema *render.Schema
	draw   func(dc *render.DrawContext) (*render.DrawResult, error)
}

func (c *component) Type() node.Type                  { return c.typ }
func (c *component) Capabilities() render.Capabilities { return c.caps }
func (c *component) Schema() *render.Schema            { return c.schema }

func (c *component) Draw(dc *render.DrawContext) (*render.DrawResult, error) {
	if c.draw == nil {
		return nil, nil
	}
	return c.draw(dc)
}

// Catalog returns one renderer instance per built-in component type.
// Instances are stateless and safe to share across passes.
func Catalog() []render.Renderer {
	var out []render.Renderer
	out = append(out, contentComponents()...)
	out = append(out, sizeComponents()...)
	out = append(out, positionComponents()...)
	out = append(out, decorationComponents()...)
	out = append(out, flowComponents()...)
	out = append(out, navigationComponents()...)
	out = append(out, containerComponents()...)
	return out
}

// catalogResolver adapts the catalog to the registry's DI collaborator
// contract.
type catalogResolver struct {
	byType map[node.Type]render.Renderer
	all    []render.Renderer
}

// Resolver returns a render.ServiceResolver over the built-in catalog.
func Resolver() render.ServiceResolver {
	all := Catalog()
	byType := make(map[node.Type]render.Renderer, len(all))
	for _, renderer := range all {
		byType[renderer.Type()] = renderer
	}
	return &catalogResolver{byType: byType, all: all}
}

func (r *catalogResolver) Resolve(t node.Type) (render.Renderer, bool) {
	renderer, ok := r.byType[t]
	return renderer, ok
}

func (r *catalogResolver) All() []render.Renderer {
	return r.all
}

// NewRegistry is the convenience constructor most callers want: a registry
// backed by the full built-in catalog.
func NewRegistry() *render.Registry {
	return render.NewRegistry(Resolver())
}

// Schema fragments shared across component definitions.

func positiveNumber() *openapi3.Schema {
	schema := openapi3.NewFloat64Schema().WithMin(0)
	schema.ExclusiveMin = true
	return schema
}

func nonNegativeNumber() *openapi3.Schema {
	return openapi3.NewFloat64Schema().WithMin(0)
}

func enumString(values ...any) *openapi3.Schema {
	return openapi3.NewStringSchema().WithEnum(values...)
}
