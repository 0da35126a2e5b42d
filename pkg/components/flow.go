package components

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docgen/pkg/engine"
	"github.com/goliatone/go-docgen/pkg/node"
	"github.com/goliatone/go-docgen/pkg/render"
)

func flowComponents() []render.Renderer {
	return []render.Renderer{
		pageBreakComponent(),
		showIfComponent(),
		showModeComponent(node.TypeShowOnce, engine.ShowOnce),
		showModeComponent(node.TypeShowEntire, engine.ShowEntire),
		showModeComponent(node.TypeSkipOnce, engine.SkipOnce),
		showModeComponent(node.TypeStopPaging, engine.StopPaging),
		repeatComponent(),
	}
}

func pageBreakComponent() render.Renderer {
	return &component{
		typ:    node.TypePageBreak,
		caps:   render.Capabilities{},
		schema: &render.Schema{},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			dc.Container.PageBreak()
			dc.Context.AdvancePage()
			return nil, nil
		},
	}
}

func showIfComponent() render.Renderer {
	return &component{
		typ: node.TypeShowIf,
		caps: render.Capabilities{
			IsWrapper:                    true,
			RequiresExpressionEvaluation: true,
			InheritsStyle:                true,
		},
		schema: &render.Schema{
			Required: []string{"condition"},
			Properties: map[string]render.PropertySpec{
				"condition": {Schema: openapi3.NewBoolSchema(), Default: false, Expr: true},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			if !dc.Bool("condition") {
				return &render.DrawResult{Skip: true}, nil
			}
			return nil, nil
		},
	}
}

func showModeComponent(t node.Type, mode engine.ShowMode) render.Renderer {
	return &component{
		typ: t,
		caps: render.Capabilities{
			IsWrapper:     true,
			InheritsStyle: true,
		},
		schema: &render.Schema{},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			return &render.DrawResult{Child: dc.Container.Show(mode)}, nil
		},
	}
}

func repeatComponent() render.Renderer {
	return &component{
		typ: node.TypeRepeat,
		caps: render.Capabilities{
			IsWrapper:                    true,
			RequiresExpressionEvaluation: true,
			InheritsStyle:                true,
		},
		schema: &render.Schema{
			Required: []string{"source"},
			Properties: map[string]render.PropertySpec{
				"source":  {Default: nil, Expr: true},
				"as":      {Schema: openapi3.NewStringSchema(), Default: "item"},
				"limit":   {Schema: openapi3.NewIntegerSchema().WithMin(0), Default: 0},
				"spacing": {Schema: nonNegativeNumber(), Default: 0.0},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			items := collection(dc.Props["source"])
			if limit := dc.Int("limit"); limit > 0 && limit < len(items) {
				items = items[:limit]
			}
			if len(items) == 0 {
				return &render.DrawResult{Skip: true}, nil
			}

			name := dc.String("as")
			slots := dc.Container.Stack(engine.StackColumn, dc.Float("spacing"), len(items))
			iterations := make([]render.Iteration, len(items))
			for i, item := range items {
				iterations[i] = render.Iteration{
					Container: slots[i],
					Scope: map[string]any{
						name:    item,
						"index": i,
					},
				}
			}
			return &render.DrawResult{Iterations: iterations}, nil
		},
	}
}

// collection normalises the evaluated repeat source into a slice.
func collection(value any) []any {
	switch typed := value.(type) {
	case []any:
		return typed
	case []map[string]any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = item
		}
		return out
	case []string:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = item
		}
		return out
	case nil:
		return nil
	default:
		return nil
	}
}
