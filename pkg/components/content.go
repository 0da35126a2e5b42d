package components

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docgen/pkg/engine"
	"github.com/goliatone/go-docgen/pkg/node"
	"github.com/goliatone/go-docgen/pkg/render"
)

func contentComponents() []render.Renderer {
	return []render.Renderer{
		textComponent(),
		imageComponent(),
		lineComponent(),
		barcodeComponent(),
		qrCodeComponent(),
		placeholderComponent(),
		pageNumberComponent(node.TypePageNumber, "{page}", false),
		pageNumberComponent(node.TypeTotalPages, "{pages}", true),
		markdownComponent(),
		spacerComponent(),
	}
}

func textComponent() render.Renderer {
	return &component{
		typ: node.TypeText,
		caps: render.Capabilities{
			RequiresExpressionEvaluation: true,
			InheritsStyle:                true,
		},
		schema: &render.Schema{
			Required: []string{"content"},
			Properties: map[string]render.PropertySpec{
				"content": {Schema: openapi3.NewStringSchema(), Default: "", Expr: true},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			dc.Container.Text(dc.String("content"), dc.Style)
			return nil, nil
		},
	}
}

func imageComponent() render.Renderer {
	return &component{
		typ: node.TypeImage,
		caps: render.Capabilities{
			RequiresExpressionEvaluation: true,
		},
		schema: &render.Schema{
			Required: []string{"source"},
			Properties: map[string]render.PropertySpec{
				"source": {Schema: openapi3.NewStringSchema(), Default: "", Expr: true},
				"fit":    {Schema: enumString("width", "height", "area", "unproportional"), Default: "width"},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			source := dc.String("source")
			if source == "" {
				// Missing source already produced an Error issue; keep the
				// layout stable with a placeholder.
				dc.Container.Placeholder("image")
				return nil, nil
			}
			dc.Container.Image(source, engine.ImageFit(dc.String("fit")))
			return nil, nil
		},
	}
}

func lineComponent() render.Renderer {
	return &component{
		typ:  node.TypeLine,
		caps: render.Capabilities{},
		schema: &render.Schema{
			Properties: map[string]render.PropertySpec{
				"orientation": {Schema: enumString("horizontal", "vertical"), Default: "horizontal"},
				"thickness":   {Schema: positiveNumber(), Default: 1.0},
				"color":       {Schema: openapi3.NewStringSchema(), Default: "#000000"},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			dc.Container.Line(engine.Orientation(dc.String("orientation")), dc.Float("thickness"), dc.String("color"))
			return nil, nil
		},
	}
}

func barcodeComponent() render.Renderer {
	return &component{
		typ: node.TypeBarcode,
		caps: render.Capabilities{
			RequiresExpressionEvaluation: true,
		},
		schema: &render.Schema{
			Required: []string{"value"},
			Properties: map[string]render.PropertySpec{
				"value":     {Schema: openapi3.NewStringSchema(), Default: "", Expr: true},
				"symbology": {Schema: enumString("code128", "code39", "ean13"), Default: "code128"},
				"showText":  {Schema: openapi3.NewBoolSchema(), Default: false},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			value := dc.String("value")
			if value == "" {
				dc.Container.Placeholder("barcode")
				return nil, nil
			}
			dc.Container.Barcode(dc.String("symbology"), value, dc.Bool("showText"))
			return nil, nil
		},
	}
}

func qrCodeComponent() render.Renderer {
	return &component{
		typ: node.TypeQRCode,
		caps: render.Capabilities{
			RequiresExpressionEvaluation: true,
		},
		schema: &render.Schema{
			Required: []string{"value"},
			Properties: map[string]render.PropertySpec{
				"value": {Schema: openapi3.NewStringSchema(), Default: "", Expr: true},
				"size":  {Schema: positiveNumber(), Default: 0.0},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			value := dc.String("value")
			if value == "" {
				dc.Container.Placeholder("qr-code")
				return nil, nil
			}
			target := dc.Container
			if size := dc.Float("size"); size > 0 {
				target = target.Constrain(engine.AxisWidth, size, size).Constrain(engine.AxisHeight, size, size)
			}
			target.Barcode("qr", value, false)
			return nil, nil
		},
	}
}

func placeholderComponent() render.Renderer {
	return &component{
		typ:  node.TypePlaceholder,
		caps: render.Capabilities{},
		schema: &render.Schema{
			Properties: map[string]render.PropertySpec{
				"label": {Schema: openapi3.NewStringSchema(), Default: ""},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			dc.Container.Placeholder(dc.String("label"))
			return nil, nil
		},
	}
}

func pageNumberComponent(t node.Type, format string, total bool) render.Renderer {
	return &component{
		typ: t,
		caps: render.Capabilities{
			InheritsStyle: true,
		},
		schema: &render.Schema{
			Properties: map[string]render.PropertySpec{
				"format": {Schema: openapi3.NewStringSchema(), Default: format},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			dc.Container.PageNumber(dc.String("format"), total, dc.Style)
			return nil, nil
		},
	}
}

func spacerComponent() render.Renderer {
	return &component{
		typ:  node.TypeSpacer,
		caps: render.Capabilities{},
		schema: &render.Schema{
			Properties: map[string]render.PropertySpec{
				"size": {Schema: nonNegativeNumber(), Default: 0.0},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			dc.Container.Spacer(dc.Float("size"))
			return nil, nil
		},
	}
}
