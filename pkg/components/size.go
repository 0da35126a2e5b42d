package components

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docgen/pkg/engine"
	"github.com/goliatone/go-docgen/pkg/node"
	"github.com/goliatone/go-docgen/pkg/render"
)

func sizeComponents() []render.Renderer {
	return []render.Renderer{
		constraintComponent(node.TypeWidth, engine.AxisWidth, boundBoth),
		constraintComponent(node.TypeHeight, engine.AxisHeight, boundBoth),
		constraintComponent(node.TypeMinWidth, engine.AxisWidth, boundMin),
		constraintComponent(node.TypeMaxWidth, engine.AxisWidth, boundMax),
		constraintComponent(node.TypeMinHeight, engine.AxisHeight, boundMin),
		constraintComponent(node.TypeMaxHeight, engine.AxisHeight, boundMax),
		aspectRatioComponent(),
		growComponent(node.TypeExtend),
		growComponent(node.TypeShrink),
		unconstrainedComponent(),
	}
}

type bound int

const (
	boundBoth bound = iota
	boundMin
	boundMax
)

// constraintComponent covers the six fixed/min/max size wrappers, which
// differ only in axis and which bound the value pins. A zero max means
// unbounded at the engine level.
func constraintComponent(t node.Type, axis engine.Axis, b bound) render.Renderer {
	return &component{
		typ: t,
		caps: render.Capabilities{
			IsWrapper:                    true,
			RequiresExpressionEvaluation: true,
			InheritsStyle:                true,
		},
		schema: &render.Schema{
			Required: []string{"value"},
			Properties: map[string]render.PropertySpec{
				"value": {Schema: positiveNumber(), Default: 0.0, Expr: true},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			value := dc.Float("value")
			if value <= 0 {
				// Invalid or missing size already reported; render the
				// child unconstrained rather than dropping it.
				return nil, nil
			}
			var inner engine.Container
			switch b {
			case boundMin:
				inner = dc.Container.Constrain(axis, value, 0)
			case boundMax:
				inner = dc.Container.Constrain(axis, 0, value)
			default:
				inner = dc.Container.Constrain(axis, value, value)
			}
			return &render.DrawResult{Child: inner}, nil
		},
	}
}

func aspectRatioComponent() render.Renderer {
	return &component{
		typ: node.TypeAspectRatio,
		caps: render.Capabilities{
			IsWrapper:     true,
			InheritsStyle: true,
		},
		schema: &render.Schema{
			Required: []string{"ratio"},
			Properties: map[string]render.PropertySpec{
				"ratio":  {Schema: positiveNumber(), Default: 0.0},
				"option": {Schema: enumString("fit-width", "fit-height", "fit-area"), Default: "fit-width"},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			ratio := dc.Float("ratio")
			if ratio <= 0 {
				return nil, nil
			}
			inner := dc.Container.AspectRatio(ratio, engine.AspectOption(dc.String("option")))
			return &render.DrawResult{Child: inner}, nil
		},
	}
}

func growComponent(t node.Type) render.Renderer {
	return &component{
		typ: t,
		caps: render.Capabilities{
			IsWrapper:     true,
			InheritsStyle: true,
		},
		schema: &render.Schema{
			Properties: map[string]render.PropertySpec{
				"horizontal": {Schema: openapi3.NewBoolSchema(), Default: true},
				"vertical":   {Schema: openapi3.NewBoolSchema(), Default: true},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			horizontal, vertical := dc.Bool("horizontal"), dc.Bool("vertical")
			var inner engine.Container
			if t == node.TypeShrink {
				inner = dc.Container.Shrink(horizontal, vertical)
			} else {
				inner = dc.Container.Extend(horizontal, vertical)
			}
			return &render.DrawResult{Child: inner}, nil
		},
	}
}

func unconstrainedComponent() render.Renderer {
	return &component{
		typ: node.TypeUnconstrained,
		caps: render.Capabilities{
			IsWrapper: true,
			// A pure layout escape hatch; typographic style does not pass
			// through it.
			InheritsStyle: false,
		},
		schema: &render.Schema{},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			return &render.DrawResult{Child: dc.Container.Unconstrained()}, nil
		},
	}
}
