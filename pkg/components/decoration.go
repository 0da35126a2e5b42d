package components

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docgen/pkg/node"
	"github.com/goliatone/go-docgen/pkg/render"
)

func decorationComponents() []render.Renderer {
	return []render.Renderer{
		backgroundComponent(),
		borderComponent(),
		defaultTextStyleComponent(),
		debugAreaComponent(),
	}
}

func backgroundComponent() render.Renderer {
	return &component{
		typ: node.TypeBackground,
		caps: render.Capabilities{
			IsWrapper:                    true,
			RequiresExpressionEvaluation: true,
			InheritsStyle:                true,
		},
		schema: &render.Schema{
			Required: []string{"color"},
			Properties: map[string]render.PropertySpec{
				"color": {Schema: openapi3.NewStringSchema(), Default: "", Expr: true},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			color := dc.String("color")
			if color == "" {
				return nil, nil
			}
			return &render.DrawResult{Child: dc.Container.Background(color)}, nil
		},
	}
}

func borderComponent() render.Renderer {
	return &component{
		typ: node.TypeBorder,
		caps: render.Capabilities{
			IsWrapper:     true,
			InheritsStyle: true,
		},
		schema: &render.Schema{
			Properties: map[string]render.PropertySpec{
				"thickness": {Schema: nonNegativeNumber(), Default: 1.0},
				"color":     {Schema: openapi3.NewStringSchema(), Default: "#000000"},
				"top":       {Schema: nonNegativeNumber(), Default: nil},
				"right":     {Schema: nonNegativeNumber(), Default: nil},
				"bottom":    {Schema: nonNegativeNumber(), Default: nil},
				"left":      {Schema: nonNegativeNumber(), Default: nil},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			edge := func(name string, fallback float64) float64 {
				if dc.Has(name) {
					return dc.Float(name)
				}
				return fallback
			}
			thickness := dc.Float("thickness")
			top, right := edge("top", thickness), edge("right", thickness)
			bottom, left := edge("bottom", thickness), edge("left", thickness)
			if top == 0 && right == 0 && bottom == 0 && left == 0 {
				return nil, nil
			}
			inner := dc.Container.Border(top, right, bottom, left, dc.String("color"))
			return &render.DrawResult{Child: inner}, nil
		},
	}
}

// defaultTextStyleComponent exists purely for the cascade: its explicit
// style merges into the inherited style the pass hands to its subtree, so
// the draw step has nothing to do.
func defaultTextStyleComponent() render.Renderer {
	return &component{
		typ: node.TypeDefaultTextStyle,
		caps: render.Capabilities{
			IsWrapper:     true,
			InheritsStyle: true,
		},
		schema: &render.Schema{},
	}
}

func debugAreaComponent() render.Renderer {
	return &component{
		typ: node.TypeDebugArea,
		caps: render.Capabilities{
			IsWrapper:     true,
			InheritsStyle: false,
		},
		schema: &render.Schema{
			Properties: map[string]render.PropertySpec{
				"label": {Schema: openapi3.NewStringSchema(), Default: ""},
				"color": {Schema: openapi3.NewStringSchema(), Default: "#FF00FF"},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			inner := dc.Container.DebugArea(dc.String("label"), dc.String("color"))
			return &render.DrawResult{Child: inner}, nil
		},
	}
}
