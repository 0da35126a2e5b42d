package components

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docgen/pkg/engine"
	"github.com/goliatone/go-docgen/pkg/expr"
	"github.com/goliatone/go-docgen/pkg/node"
	"github.com/goliatone/go-docgen/pkg/render"
)

func containerComponents() []render.Renderer {
	return []render.Renderer{
		stackComponent(node.TypeColumn, engine.StackColumn),
		stackComponent(node.TypeRow, engine.StackRow),
		gridComponent(),
		tableComponent(),
		layersComponent(),
		inlinedComponent(),
		decorationBoxComponent(),
		listComponent(),
		scaleToFitComponent(),
		flipComponent(),
	}
}

func stackComponent(t node.Type, kind engine.StackKind) render.Renderer {
	return &component{
		typ: t,
		caps: render.Capabilities{
			SupportsChildren: true,
			InheritsStyle:    true,
		},
		schema: &render.Schema{
			Properties: map[string]render.PropertySpec{
				"spacing": {Schema: nonNegativeNumber(), Default: 0.0},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			children := dc.ChildNodes()
			if len(children) == 0 {
				return nil, nil
			}
			slots := dc.Container.Stack(kind, dc.Float("spacing"), len(children))
			return &render.DrawResult{Children: slots}, nil
		},
	}
}

func gridComponent() render.Renderer {
	return &component{
		typ: node.TypeGrid,
		caps: render.Capabilities{
			SupportsChildren: true,
			InheritsStyle:    true,
		},
		schema: &render.Schema{
			Properties: map[string]render.PropertySpec{
				"columns": {Schema: openapi3.NewIntegerSchema().WithMin(1), Default: 2},
				"spacing": {Schema: nonNegativeNumber(), Default: 0.0},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			children := dc.ChildNodes()
			if len(children) == 0 {
				return nil, nil
			}
			columns := dc.Int("columns")
			if columns < 1 {
				columns = 1
			}
			// Per-child span comes from the child's own raw properties so
			// templates keep span next to the content it applies to.
			spans := make([]int, len(children))
			for i, child := range children {
				spans[i] = 1
				if raw, ok := child.Property("span"); ok {
					if span, isNum := expr.CoerceNumber(raw); isNum && int(span) > 0 {
						spans[i] = int(span)
					}
				}
			}
			slots := dc.Container.Grid(columns, dc.Float("spacing"), spans)
			return &render.DrawResult{Children: slots}, nil
		},
	}
}

func tableComponent() render.Renderer {
	return &component{
		typ: node.TypeTable,
		caps: render.Capabilities{
			SupportsChildren: true,
			InheritsStyle:    true,
		},
		schema: &render.Schema{
			Required: []string{"columns"},
			Properties: map[string]render.PropertySpec{
				// Array of relative weights, or objects {weight} / {fixed}.
				"columns": {Schema: openapi3.NewArraySchema(), Default: nil},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			children := dc.ChildNodes()
			if len(children) == 0 {
				return nil, nil
			}
			columns := columnDefs(dc.Props["columns"])
			if len(columns) == 0 {
				columns = []engine.ColumnDef{{Weight: 1}}
			}

			// Cells flow row-major unless a child pins itself with
			// row/column properties.
			cells := make([]engine.CellDef, len(children))
			cursorRow, cursorCol := 1, 1
			for i, child := range children {
				cell := engine.CellDef{Row: cursorRow, Column: cursorCol, RowSpan: 1, ColumnSpan: 1}
				if raw, ok := child.Property("row"); ok {
					if v, isNum := expr.CoerceNumber(raw); isNum && int(v) > 0 {
						cell.Row = int(v)
					}
				}
				if raw, ok := child.Property("column"); ok {
					if v, isNum := expr.CoerceNumber(raw); isNum && int(v) > 0 {
						cell.Column = int(v)
					}
				}
				if raw, ok := child.Property("rowSpan"); ok {
					if v, isNum := expr.CoerceNumber(raw); isNum && int(v) > 0 {
						cell.RowSpan = int(v)
					}
				}
				if raw, ok := child.Property("colSpan"); ok {
					if v, isNum := expr.CoerceNumber(raw); isNum && int(v) > 0 {
						cell.ColumnSpan = int(v)
					}
				}
				cells[i] = cell

				cursorRow, cursorCol = cell.Row, cell.Column+cell.ColumnSpan
				if cursorCol > len(columns) {
					cursorRow, cursorCol = cursorRow+1, 1
				}
			}

			slots := dc.Container.Table(columns, cells)
			return &render.DrawResult{Children: slots}, nil
		},
	}
}

func columnDefs(raw any) []engine.ColumnDef {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]engine.ColumnDef, 0, len(list))
	for _, entry := range list {
		switch typed := entry.(type) {
		case map[string]any:
			var def engine.ColumnDef
			if w, ok := expr.CoerceNumber(typed["weight"]); ok {
				def.Weight = w
			}
			if f, ok := expr.CoerceNumber(typed["fixed"]); ok {
				def.Fixed = f
			}
			if def.Weight == 0 && def.Fixed == 0 {
				def.Weight = 1
			}
			out = append(out, def)
		default:
			if w, ok := expr.CoerceNumber(entry); ok && w > 0 {
				out = append(out, engine.ColumnDef{Weight: w})
			}
		}
	}
	return out
}

func layersComponent() render.Renderer {
	return &component{
		typ: node.TypeLayers,
		caps: render.Capabilities{
			SupportsChildren: true,
			// Layers overlay unrelated content; no cascade between them
			// and their ancestors.
			InheritsStyle: false,
		},
		schema: &render.Schema{},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			children := dc.ChildNodes()
			if len(children) == 0 {
				return nil, nil
			}
			slots := dc.Container.Stack(engine.StackLayers, 0, len(children))
			return &render.DrawResult{Children: slots}, nil
		},
	}
}

func inlinedComponent() render.Renderer {
	return &component{
		typ: node.TypeInlined,
		caps: render.Capabilities{
			SupportsChildren: true,
			InheritsStyle:    true,
		},
		schema: &render.Schema{
			Properties: map[string]render.PropertySpec{
				"spacing":   {Schema: nonNegativeNumber(), Default: 0.0},
				"alignment": {Schema: enumString("left", "center", "right"), Default: ""},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			children := dc.ChildNodes()
			if len(children) == 0 {
				return nil, nil
			}
			target := dc.Container
			if alignment := dc.String("alignment"); alignment != "" {
				target = target.Align(engine.HAlign(alignment), "")
			}
			slots := target.Stack(engine.StackInlined, dc.Float("spacing"), len(children))
			return &render.DrawResult{Children: slots}, nil
		},
	}
}

func decorationBoxComponent() render.Renderer {
	return &component{
		typ: node.TypeDecorationBox,
		caps: render.Capabilities{
			SupportsChildren: true,
			InheritsStyle:    true,
		},
		schema: &render.Schema{},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			children := dc.ChildNodes()
			if len(children) == 0 {
				return nil, nil
			}
			before, content, after := dc.Container.Decoration()
			slots := make([]engine.Container, len(children))
			for i, child := range children {
				slot, _ := child.Property("slot")
				switch expr.CoerceString(slot) {
				case "before":
					slots[i] = before
				case "after":
					slots[i] = after
				default:
					slots[i] = content
				}
			}
			return &render.DrawResult{Children: slots}, nil
		},
	}
}

func listComponent() render.Renderer {
	return &component{
		typ: node.TypeList,
		caps: render.Capabilities{
			SupportsChildren: true,
			InheritsStyle:    true,
		},
		schema: &render.Schema{
			Properties: map[string]render.PropertySpec{
				"marker":  {Schema: openapi3.NewStringSchema(), Default: "•"},
				"spacing": {Schema: nonNegativeNumber(), Default: 0.0},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			children := dc.ChildNodes()
			if len(children) == 0 {
				return nil, nil
			}
			marker := dc.String("marker")
			rows := dc.Container.Stack(engine.StackList, dc.Float("spacing"), len(children))
			slots := make([]engine.Container, len(children))
			for i, row := range rows {
				item := row.Stack(engine.StackRow, 4, 2)
				item[0].Text(marker, dc.Style)
				slots[i] = item[1]
			}
			return &render.DrawResult{Children: slots}, nil
		},
	}
}

func scaleToFitComponent() render.Renderer {
	return &component{
		typ: node.TypeScaleToFit,
		caps: render.Capabilities{
			IsWrapper:     true,
			InheritsStyle: true,
		},
		schema: &render.Schema{},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			return &render.DrawResult{Child: dc.Container.ScaleToFit()}, nil
		},
	}
}

func flipComponent() render.Renderer {
	return &component{
		typ: node.TypeFlip,
		caps: render.Capabilities{
			IsWrapper:     true,
			InheritsStyle: true,
		},
		schema: &render.Schema{
			Properties: map[string]render.PropertySpec{
				"mode": {Schema: enumString("horizontal", "vertical", "both"), Default: "horizontal"},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			inner := dc.Container.Flip(engine.FlipMode(dc.String("mode")))
			return &render.DrawResult{Child: inner}, nil
		},
	}
}
