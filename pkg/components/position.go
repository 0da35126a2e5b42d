package components

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docgen/pkg/engine"
	"github.com/goliatone/go-docgen/pkg/node"
	"github.com/goliatone/go-docgen/pkg/render"
)

func positionComponents() []render.Renderer {
	return []render.Renderer{
		paddingComponent(),
		alignmentComponent(),
		rotateComponent(),
		scaleComponent(),
		translateComponent(),
		zIndexComponent(),
	}
}

func paddingComponent() render.Renderer {
	return &component{
		typ: node.TypePadding,
		caps: render.Capabilities{
			IsWrapper:                    true,
			RequiresExpressionEvaluation: true,
			InheritsStyle:                true,
		},
		schema: &render.Schema{
			Properties: map[string]render.PropertySpec{
				"all":    {Schema: nonNegativeNumber(), Default: nil, Expr: true},
				"top":    {Schema: nonNegativeNumber(), Default: nil, Expr: true},
				"right":  {Schema: nonNegativeNumber(), Default: nil, Expr: true},
				"bottom": {Schema: nonNegativeNumber(), Default: nil, Expr: true},
				"left":   {Schema: nonNegativeNumber(), Default: nil, Expr: true},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			edge := func(name string, fallback float64) float64 {
				if dc.Has(name) {
					return dc.Float(name)
				}
				return fallback
			}
			all := edge("all", 0)
			top, right := edge("top", all), edge("right", all)
			bottom, left := edge("bottom", all), edge("left", all)
			if top == 0 && right == 0 && bottom == 0 && left == 0 {
				return nil, nil
			}
			return &render.DrawResult{Child: dc.Container.Pad(top, right, bottom, left)}, nil
		},
	}
}

func alignmentComponent() render.Renderer {
	return &component{
		typ: node.TypeAlignment,
		caps: render.Capabilities{
			IsWrapper:     true,
			InheritsStyle: true,
		},
		schema: &render.Schema{
			Properties: map[string]render.PropertySpec{
				"horizontal": {Schema: enumString("left", "center", "right"), Default: ""},
				"vertical":   {Schema: enumString("top", "middle", "bottom"), Default: ""},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			horizontal, vertical := dc.String("horizontal"), dc.String("vertical")
			if horizontal == "" && vertical == "" {
				return nil, nil
			}
			inner := dc.Container.Align(engine.HAlign(horizontal), engine.VAlign(vertical))
			return &render.DrawResult{Child: inner}, nil
		},
	}
}

func rotateComponent() render.Renderer {
	return &component{
		typ: node.TypeRotate,
		caps: render.Capabilities{
			IsWrapper:     true,
			InheritsStyle: true,
		},
		schema: &render.Schema{
			Required: []string{"degrees"},
			Properties: map[string]render.PropertySpec{
				"degrees": {Schema: openapi3.NewFloat64Schema(), Default: 0.0},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			degrees := dc.Float("degrees")
			if degrees == 0 {
				return nil, nil
			}
			return &render.DrawResult{Child: dc.Container.Rotate(degrees)}, nil
		},
	}
}

func scaleComponent() render.Renderer {
	return &component{
		typ: node.TypeScale,
		caps: render.Capabilities{
			IsWrapper:     true,
			InheritsStyle: true,
		},
		schema: &render.Schema{
			Properties: map[string]render.PropertySpec{
				"x": {Schema: positiveNumber(), Default: 1.0},
				"y": {Schema: positiveNumber(), Default: 1.0},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			x, y := dc.Float("x"), dc.Float("y")
			if x == 1 && y == 1 {
				return nil, nil
			}
			return &render.DrawResult{Child: dc.Container.Scale(x, y)}, nil
		},
	}
}

func translateComponent() render.Renderer {
	return &component{
		typ: node.TypeTranslate,
		caps: render.Capabilities{
			IsWrapper:     true,
			InheritsStyle: true,
		},
		schema: &render.Schema{
			Properties: map[string]render.PropertySpec{
				"x": {Schema: openapi3.NewFloat64Schema(), Default: 0.0},
				"y": {Schema: openapi3.NewFloat64Schema(), Default: 0.0},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			x, y := dc.Float("x"), dc.Float("y")
			if x == 0 && y == 0 {
				return nil, nil
			}
			return &render.DrawResult{Child: dc.Container.Translate(x, y)}, nil
		},
	}
}

func zIndexComponent() render.Renderer {
	return &component{
		typ: node.TypeZIndex,
		caps: render.Capabilities{
			IsWrapper: true,
			// Stacking depth is pure layout; the cascade resets below it.
			InheritsStyle: false,
		},
		schema: &render.Schema{
			Properties: map[string]render.PropertySpec{
				"depth": {Schema: openapi3.NewIntegerSchema(), Default: 0},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			return &render.DrawResult{Child: dc.Container.ZIndex(dc.Int("depth"))}, nil
		},
	}
}
