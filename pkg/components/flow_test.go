package components

import (
	"strconv"
	"testing"

	"github.com/goliatone/go-docgen/pkg/testsupport"
)

func TestPageBreak(t *testing.T) {
	ops, _ := renderDoc(t, `{
		"type": "column",
		"children": [
			{"type": "text", "properties": {"content": "page one"}},
			{"type": "page-break"},
			{"type": "text", "properties": {"content": "page two"}}
		]
	}`, nil)

	testsupport.AssertOpCount(t, ops, "page-break", 1)
	testsupport.AssertOpCount(t, ops, "text", 2)
}

func TestShowIf(t *testing.T) {
	document := `{
		"type": "show-if",
		"properties": {"condition": "{{ invoice.paid }}"},
		"child": {"type": "text", "properties": {"content": "PAID"}}
	}`

	ops, _ := renderDoc(t, document, map[string]any{"invoice": map[string]any{"paid": true}})
	testsupport.AssertOp(t, ops, "text")

	ops, _ = renderDoc(t, document, map[string]any{"invoice": map[string]any{"paid": false}})
	testsupport.AssertNoOp(t, ops, "text")
}

func TestShowModes(t *testing.T) {
	tests := []struct {
		typ  string
		mode string
	}{
		{"show-once", "once"},
		{"show-entire", "entire"},
		{"skip-once", "skip-once"},
		{"stop-paging", "stop-paging"},
	}

	for _, tc := range tests {
		t.Run(tc.typ, func(t *testing.T) {
			ops, _ := renderDoc(t, `{"type": "`+tc.typ+`", "child": {"type": "line"}}`, nil)
			show := testsupport.AssertOp(t, ops, "show")
			if show.Args["mode"] != tc.mode {
				t.Fatalf("mode = %v, want %q", show.Args["mode"], tc.mode)
			}
			if show.Find("line") == nil {
				t.Fatalf("child escaped the show wrapper:\n%s", testsupport.OpSummary(ops))
			}
		})
	}
}

func TestRepeat_IteratesWithScopedAlias(t *testing.T) {
	ops, result := renderDoc(t, `{
		"type": "repeat",
		"properties": {"source": "{{ invoice.lines }}", "as": "line", "spacing": 2},
		"child": {
			"type": "row",
			"children": [
				{"type": "text", "properties": {"content": "{{ index }}"}},
				{"type": "text", "properties": {"content": "{{ line.label }}"}}
			]
		}
	}`, map[string]any{
		"invoice": map[string]any{
			"lines": []any{
				map[string]any{"label": "Design"},
				map[string]any{"label": "Build"},
			},
		},
	})

	if len(result.Issues) != 0 {
		t.Fatalf("issues = %v", result.Issues)
	}

	outer := testsupport.AssertOp(t, ops, "stack")
	if outer.Args["kind"] != "column" || outer.Args["spacing"] != 2.0 || len(outer.Children) != 2 {
		t.Fatalf("repeat stack = %+v", outer)
	}

	wantLabels := []string{"Design", "Build"}
	for i, slot := range outer.Children {
		row := slot.Find("stack")
		if row == nil || row.Args["kind"] != "row" {
			t.Fatalf("iteration %d missing row:\n%s", i, testsupport.OpSummary(ops))
		}
		index := row.Children[0].Find("text")
		label := row.Children[1].Find("text")
		if index.Args["content"] != strconv.Itoa(i) {
			t.Fatalf("iteration %d index = %v", i, index.Args["content"])
		}
		if label.Args["content"] != wantLabels[i] {
			t.Fatalf("iteration %d label = %v", i, label.Args["content"])
		}
	}
}

func TestRepeat_LimitTruncates(t *testing.T) {
	ops, _ := renderDoc(t, `{
		"type": "repeat",
		"properties": {"source": "{{ names }}", "limit": 2},
		"child": {"type": "text", "properties": {"content": "{{ item }}"}}
	}`, map[string]any{"names": []any{"a", "b", "c", "d"}})

	testsupport.AssertOpCount(t, ops, "text", 2)
}

func TestRepeat_EmptySourceSkips(t *testing.T) {
	ops, result := renderDoc(t, `{
		"type": "repeat",
		"properties": {"source": "{{ names }}"},
		"child": {"type": "text", "properties": {"content": "{{ item }}"}}
	}`, map[string]any{"names": []any{}})

	testsupport.AssertNoOp(t, ops, "stack")
	testsupport.AssertNoOp(t, ops, "text")
	if result.HasErrors() {
		t.Fatalf("an empty collection is not an error: %v", result.Issues)
	}
}
