package render

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docgen/pkg/engine"
	"github.com/goliatone/go-docgen/pkg/engine/trace"
	"github.com/goliatone/go-docgen/pkg/node"
	"github.com/goliatone/go-docgen/pkg/style"
)

// passRenderer is a configurable renderer for pass tests.
type passRenderer struct {
	typ    node.Type
	caps   Capabilities
	schema *Schema
	draw   func(dc *DrawContext) (*DrawResult, error)
}

func (r *passRenderer) Type() node.Type            { return r.typ }
func (r *passRenderer) Capabilities() Capabilities { return r.caps }
func (r *passRenderer) Schema() *Schema            { return r.schema }
func (r *passRenderer) Draw(dc *DrawContext) (*DrawResult, error) {
	if r.draw == nil {
		return nil, nil
	}
	return r.draw(dc)
}

func passRegistry(t *testing.T, renderers ...*passRenderer) *Registry {
	t.Helper()
	registry := NewRegistry(nil)
	for _, r := range renderers {
		if r.schema == nil {
			r.schema = &Schema{}
		}
		registry.MustRegister(r.typ, r)
	}
	return registry
}

func textRenderer() *passRenderer {
	return &passRenderer{
		typ:  node.TypeText,
		caps: Capabilities{RequiresExpressionEvaluation: true, InheritsStyle: true},
		schema: &Schema{
			Required: []string{"content"},
			Properties: map[string]PropertySpec{
				"content": {Schema: openapi3.NewStringSchema(), Default: "", Expr: true},
			},
		},
		draw: func(dc *DrawContext) (*DrawResult, error) {
			dc.Container.Text(dc.String("content"), dc.Style)
			return nil, nil
		},
	}
}

func columnRenderer() *passRenderer {
	return &passRenderer{
		typ:  node.TypeColumn,
		caps: Capabilities{SupportsChildren: true, InheritsStyle: true},
		draw: func(dc *DrawContext) (*DrawResult, error) {
			children := dc.ChildNodes()
			if len(children) == 0 {
				return nil, nil
			}
			return &DrawResult{Children: dc.Container.Stack(engine.StackColumn, 0, len(children))}, nil
		},
	}
}

func paddingRenderer() *passRenderer {
	return &passRenderer{
		typ:  node.TypePadding,
		caps: Capabilities{IsWrapper: true, InheritsStyle: true},
		draw: func(dc *DrawContext) (*DrawResult, error) {
			return &DrawResult{Child: dc.Container.Pad(4, 4, 4, 4)}, nil
		},
	}
}

func TestRenderTree_ArgumentValidation(t *testing.T) {
	registry := passRegistry(t, textRenderer())
	root := &node.Node{Type: node.TypeText, Properties: map[string]any{"content": "x"}}

	if _, err := RenderTree(nil, root, nil, trace.NewRecorder()); err == nil {
		t.Fatalf("expected error for nil registry")
	}
	if _, err := RenderTree(registry, nil, nil, trace.NewRecorder()); err == nil {
		t.Fatalf("expected error for nil root")
	}
	if _, err := RenderTree(registry, root, nil, nil); err == nil {
		t.Fatalf("expected error for nil container")
	}
}

func TestRenderTree_EvaluatesExpressions(t *testing.T) {
	registry := passRegistry(t, textRenderer())
	recorder := trace.NewRecorder()

	root := &node.Node{
		Type:       node.TypeText,
		Properties: map[string]any{"content": "{{ data.name }}"},
	}
	bindings := map[string]any{"data": map[string]any{"name": "Acme"}}

	result, err := RenderTree(registry, root, bindings, recorder)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(result.Issues) != 0 {
		t.Fatalf("unexpected issues: %v", result.Issues)
	}

	text := recorder.Root().Find("text")
	if text == nil || text.Args["content"] != "Acme" {
		t.Fatalf("text op = %+v", text)
	}
}

func TestRenderTree_ExpressionMissFallsBackToDefault(t *testing.T) {
	registry := passRegistry(t, textRenderer())
	recorder := trace.NewRecorder()

	var logged []string
	logger := func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}

	root := &node.Node{
		Type:       node.TypeText,
		Properties: map[string]any{"content": "{{ data.missing }}"},
	}

	if _, err := RenderTree(registry, root, map[string]any{}, recorder, WithLogger(logger)); err != nil {
		t.Fatalf("render: %v", err)
	}

	text := recorder.Root().Find("text")
	if text == nil || text.Args["content"] != "" {
		t.Fatalf("miss should render the default, got %+v", text)
	}
	if len(logged) != 1 || !strings.Contains(logged[0], "resolved to null") {
		t.Fatalf("logged = %v", logged)
	}
}

func TestRenderTree_InvalidLiteralUsesDefaultAndWarns(t *testing.T) {
	sized := &passRenderer{
		typ:  node.TypeSpacer,
		caps: Capabilities{},
		schema: &Schema{
			Properties: map[string]PropertySpec{
				"size": {Schema: openapi3.NewFloat64Schema().WithMin(0), Default: 8.0},
			},
		},
		draw: func(dc *DrawContext) (*DrawResult, error) {
			dc.Container.Spacer(dc.Float("size"))
			return nil, nil
		},
	}
	registry := passRegistry(t, sized)
	recorder := trace.NewRecorder()

	var logged []string
	logger := func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}

	root := &node.Node{Type: node.TypeSpacer, Properties: map[string]any{"size": -3.0}}
	result, err := RenderTree(registry, root, nil, recorder, WithLogger(logger))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	// Validation reports the bad literal; evaluation substitutes the default.
	if len(result.Issues) != 1 || result.Issues[0].Severity != SeverityError {
		t.Fatalf("issues = %v", result.Issues)
	}
	spacer := recorder.Root().Find("spacer")
	if spacer == nil || spacer.Args["size"] != 8.0 {
		t.Fatalf("spacer op = %+v", spacer)
	}
	if len(logged) != 1 || !strings.Contains(logged[0], "using default") {
		t.Fatalf("logged = %v", logged)
	}
}

func TestRenderTree_StyleCascade(t *testing.T) {
	registry := passRegistry(t, textRenderer(), columnRenderer())
	recorder := trace.NewRecorder()

	root := &node.Node{
		Type:  node.TypeColumn,
		Style: &style.Properties{Bold: style.Bool(true), FontSize: 14},
		Children: []*node.Node{
			{Type: node.TypeText, Properties: map[string]any{"content": "inherits"}},
			{
				Type:       node.TypeText,
				Style:      &style.Properties{Bold: style.Bool(false)},
				Properties: map[string]any{"content": "overrides"},
			},
		},
	}

	if _, err := RenderTree(registry, root, nil, recorder, WithBaseStyle(style.Properties{FontFamily: "Inter", FontSize: 10})); err != nil {
		t.Fatalf("render: %v", err)
	}

	stack := recorder.Root().Find("stack")
	if stack == nil || len(stack.Children) != 2 {
		t.Fatalf("stack = %+v", stack)
	}

	first := stack.Children[0].Find("text")
	firstStyle := first.Args["style"].(map[string]any)
	if firstStyle["bold"] != true || firstStyle["fontSize"] != 14.0 || firstStyle["fontFamily"] != "Inter" {
		t.Fatalf("inherited style = %v", firstStyle)
	}

	second := stack.Children[1].Find("text")
	secondStyle := second.Args["style"].(map[string]any)
	if _, bold := secondStyle["bold"]; bold {
		t.Fatalf("explicit false should override inherited bold: %v", secondStyle)
	}
	if secondStyle["fontSize"] != 14.0 {
		t.Fatalf("other fields should keep cascading: %v", secondStyle)
	}
}

func TestRenderTree_NonInheritingNodeResetsCascade(t *testing.T) {
	rebase := &passRenderer{
		typ:  node.TypeUnconstrained,
		caps: Capabilities{IsWrapper: true, InheritsStyle: false},
		draw: func(dc *DrawContext) (*DrawResult, error) {
			return &DrawResult{Child: dc.Container.Unconstrained()}, nil
		},
	}
	registry := passRegistry(t, textRenderer(), rebase)
	recorder := trace.NewRecorder()

	root := &node.Node{
		Type:  node.TypeUnconstrained,
		Child: &node.Node{Type: node.TypeText, Properties: map[string]any{"content": "clean"}},
	}

	base := style.Properties{FontFamily: "Inter", FontSize: 10}
	if _, err := RenderTree(registry, root, nil, recorder, WithBaseStyle(base)); err != nil {
		t.Fatalf("render: %v", err)
	}

	text := recorder.Root().Find("text")
	gotStyle := text.Args["style"].(map[string]any)
	if gotStyle["fontFamily"] != "Inter" || gotStyle["fontSize"] != 10.0 {
		t.Fatalf("child below non-inheriting node should restart from base: %v", gotStyle)
	}
	if _, bold := gotStyle["bold"]; bold {
		t.Fatalf("no ancestor style should leak through: %v", gotStyle)
	}
}

func TestRenderTree_WrapperChain(t *testing.T) {
	registry := passRegistry(t, textRenderer(), paddingRenderer())
	recorder := trace.NewRecorder()

	root := &node.Node{
		Type: node.TypePadding,
		Child: &node.Node{
			Type:  node.TypePadding,
			Child: &node.Node{Type: node.TypeText, Properties: map[string]any{"content": "deep"}},
		},
	}

	if _, err := RenderTree(registry, root, nil, recorder); err != nil {
		t.Fatalf("render: %v", err)
	}

	outer := recorder.Root().Find("pad")
	if outer == nil {
		t.Fatalf("missing outer pad")
	}
	inner := outer.Children[0]
	if inner.Name != "pad" {
		t.Fatalf("inner op = %q, want pad", inner.Name)
	}
	if inner.Children[0].Name != "text" {
		t.Fatalf("text should render inside the inner pad, got %q", inner.Children[0].Name)
	}
}

func TestRenderTree_SkipSuppressesSubtree(t *testing.T) {
	skipper := &passRenderer{
		typ:  node.TypeShowIf,
		caps: Capabilities{IsWrapper: true, RequiresExpressionEvaluation: true, InheritsStyle: true},
		schema: &Schema{
			Required: []string{"condition"},
			Properties: map[string]PropertySpec{
				"condition": {Schema: openapi3.NewBoolSchema(), Default: false, Expr: true},
			},
		},
		draw: func(dc *DrawContext) (*DrawResult, error) {
			if !dc.Bool("condition") {
				return &DrawResult{Skip: true}, nil
			}
			return nil, nil
		},
	}
	registry := passRegistry(t, textRenderer(), skipper)
	recorder := trace.NewRecorder()

	root := &node.Node{
		Type:       node.TypeShowIf,
		Properties: map[string]any{"condition": "{{ flags.hidden }}"},
		Child:      &node.Node{Type: node.TypeText, Properties: map[string]any{"content": "never"}},
	}

	if _, err := RenderTree(registry, root, map[string]any{"flags": map[string]any{"hidden": false}}, recorder); err != nil {
		t.Fatalf("render: %v", err)
	}
	if op := recorder.Root().Find("text"); op != nil {
		t.Fatalf("skipped subtree must not draw, got %+v", op)
	}
}

func TestRenderTree_IterationsScopeBindings(t *testing.T) {
	repeat := &passRenderer{
		typ:  node.TypeRepeat,
		caps: Capabilities{IsWrapper: true, RequiresExpressionEvaluation: true, InheritsStyle: true},
		schema: &Schema{
			Required: []string{"source"},
			Properties: map[string]PropertySpec{
				"source": {Default: nil, Expr: true},
			},
		},
		draw: func(dc *DrawContext) (*DrawResult, error) {
			items, _ := dc.Props["source"].([]any)
			if len(items) == 0 {
				return &DrawResult{Skip: true}, nil
			}
			slots := dc.Container.Stack(engine.StackColumn, 0, len(items))
			iterations := make([]Iteration, len(items))
			for i, item := range items {
				iterations[i] = Iteration{Container: slots[i], Scope: map[string]any{"item": item}}
			}
			return &DrawResult{Iterations: iterations}, nil
		},
	}
	registry := passRegistry(t, textRenderer(), repeat)
	recorder := trace.NewRecorder()

	root := &node.Node{
		Type:       node.TypeRepeat,
		Properties: map[string]any{"source": "{{ names }}"},
		Child:      &node.Node{Type: node.TypeText, Properties: map[string]any{"content": "{{ item }}"}},
	}

	if _, err := RenderTree(registry, root, map[string]any{"names": []any{"ada", "grace"}}, recorder); err != nil {
		t.Fatalf("render: %v", err)
	}

	stack := recorder.Root().Find("stack")
	if stack == nil || len(stack.Children) != 2 {
		t.Fatalf("stack = %+v", stack)
	}
	for i, want := range []string{"ada", "grace"} {
		text := stack.Children[i].Find("text")
		if text == nil || text.Args["content"] != want {
			t.Fatalf("iteration %d text = %+v, want %q", i, text, want)
		}
	}
}

func TestRenderTree_CollectsIssuesWithLocation(t *testing.T) {
	registry := passRegistry(t, textRenderer(), columnRenderer())
	recorder := trace.NewRecorder()

	root := &node.Node{
		Type: node.TypeColumn,
		Children: []*node.Node{
			{ID: "title", Type: node.TypeText},
			{Type: node.TypeText, Properties: map[string]any{"content": "ok"}},
		},
	}

	result, err := RenderTree(registry, root, nil, recorder)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(result.Issues) != 1 {
		t.Fatalf("issues = %v", result.Issues)
	}
	issue := result.Issues[0]
	if issue.NodeID != "title" || issue.Path != "$.children[0]" || issue.Property != "content" {
		t.Fatalf("issue = %+v", issue)
	}
	if !result.HasErrors() {
		t.Fatalf("missing required property is an error")
	}
}

func TestRenderTree_UnknownTypeIsFatal(t *testing.T) {
	registry := passRegistry(t, columnRenderer())
	recorder := trace.NewRecorder()

	root := &node.Node{
		Type:     node.TypeColumn,
		Children: []*node.Node{{Type: node.Type("carousel")}},
	}

	_, err := RenderTree(registry, root, nil, recorder)
	var unknown *UnknownComponentTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want unknown-type error", err)
	}
}

func TestRenderTree_LayoutErrorAbortsPass(t *testing.T) {
	constrainer := &passRenderer{
		typ:  node.TypeWidth,
		caps: Capabilities{IsWrapper: true, InheritsStyle: true},
		draw: func(dc *DrawContext) (*DrawResult, error) {
			// min > max makes the recorder panic with a *engine.LayoutError.
			return &DrawResult{Child: dc.Container.Constrain(engine.AxisWidth, 100, 10)}, nil
		},
	}
	registry := passRegistry(t, textRenderer(), constrainer)
	recorder := trace.NewRecorder()

	root := &node.Node{
		Type:  node.TypeWidth,
		Child: &node.Node{Type: node.TypeText, Properties: map[string]any{"content": "x"}},
	}

	_, err := RenderTree(registry, root, nil, recorder)
	var layoutErr *engine.LayoutError
	if !errors.As(err, &layoutErr) {
		t.Fatalf("err = %v, want *engine.LayoutError", err)
	}
	if layoutErr.Op != "constrain" {
		t.Fatalf("layout error op = %q", layoutErr.Op)
	}
}

func TestRenderTree_ChildWinsOverChildren(t *testing.T) {
	registry := passRegistry(t, textRenderer(), paddingRenderer())
	recorder := trace.NewRecorder()

	root := &node.Node{
		Type:     node.TypePadding,
		Child:    &node.Node{Type: node.TypeText, Properties: map[string]any{"content": "kept"}},
		Children: []*node.Node{{Type: node.TypeText, Properties: map[string]any{"content": "dropped"}}},
	}

	result, err := RenderTree(registry, root, nil, recorder)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if got := recorder.Root().Count("text"); got != 1 {
		t.Fatalf("text ops = %d, want 1", got)
	}
	if text := recorder.Root().Find("text"); text.Args["content"] != "kept" {
		t.Fatalf("rendered wrong child: %+v", text)
	}

	warned := false
	for _, issue := range result.Issues {
		if issue.Severity == SeverityWarning && strings.Contains(issue.Message, "only child is honoured") {
			warned = true
		}
	}
	if !warned {
		t.Fatalf("expected child/children warning, issues = %v", result.Issues)
	}
}
