package components

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docgen/pkg/engine"
	"github.com/goliatone/go-docgen/pkg/node"
	"github.com/goliatone/go-docgen/pkg/render"
)

func navigationComponents() []render.Renderer {
	return []render.Renderer{
		anchorComponent(node.TypeSection, "name", false, func(c engine.Container, v string) engine.Container { return c.Section(v) }),
		anchorComponent(node.TypeSectionLink, "target", false, func(c engine.Container, v string) engine.Container { return c.SectionLink(v) }),
		anchorComponent(node.TypeHyperlink, "url", true, func(c engine.Container, v string) engine.Container { return c.Hyperlink(v) }),
	}
}

// anchorComponent covers the three navigation wrappers, which differ only in
// the property they read and the engine primitive they call.
func anchorComponent(t node.Type, prop string, expressions bool, wrap func(engine.Container, string) engine.Container) render.Renderer {
	return &component{
		typ: t,
		caps: render.Capabilities{
			IsWrapper:                    true,
			RequiresExpressionEvaluation: expressions,
			InheritsStyle:                true,
		},
		schema: &render.Schema{
			Required: []string{prop},
			Properties: map[string]render.PropertySpec{
				prop: {Schema: openapi3.NewStringSchema(), Default: "", Expr: expressions},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			value := dc.String(prop)
			if value == "" {
				return nil, nil
			}
			return &render.DrawResult{Child: wrap(dc.Container, value)}, nil
		},
	}
}
