package expr

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSource(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want string
		ok   bool
	}{
		{name: "expression", raw: "{{ data.name }}", want: "data.name", ok: true},
		{name: "tight braces", raw: "{{data.name}}", want: "data.name", ok: true},
		{name: "padded value", raw: "  {{ data.name }}  ", want: "data.name", ok: true},
		{name: "literal string", raw: "hello", ok: false},
		{name: "number", raw: 42.0, ok: false},
		{name: "partial braces", raw: "{{ data.name", ok: false},
		{name: "embedded expression", raw: "total: {{ data.total }}", ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Source(tc.raw)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("Source(%v) = %q, %v; want %q, %v", tc.raw, got, ok, tc.want, tc.ok)
			}
			if IsExpression(tc.raw) != tc.ok {
				t.Fatalf("IsExpression(%v) = %v, want %v", tc.raw, !tc.ok, tc.ok)
			}
		})
	}
}

func TestEvaluator_Evaluate(t *testing.T) {
	data := map[string]any{
		"data": map[string]any{
			"name":  "Acme",
			"total": 1234.567,
			"date":  "2026-08-25T10:30:00Z",
			"empty": "",
			"customer": map[string]any{
				"contacts": []any{
					map[string]any{"email": "a@example.com"},
					map[string]any{"email": "b@example.com"},
				},
			},
		},
		"tags": []string{"red", "green"},
	}

	tests := []struct {
		name   string
		source string
		want   any
	}{
		{name: "member path", source: "data.name", want: "Acme"},
		{name: "missing path yields nil", source: "data.missing.deeper", want: nil},
		{name: "index into maps", source: "data.customer.contacts.1.email", want: "b@example.com"},
		{name: "index into strings", source: "tags.0", want: "red"},
		{name: "index out of range", source: "tags.9", want: nil},
		{name: "upper", source: "data.name.upper()", want: "ACME"},
		{name: "lower", source: "data.name.lower()", want: "acme"},
		{name: "round", source: "data.total.round(2)", want: 1234.57},
		{name: "round to integer", source: "data.total.round()", want: 1235.0},
		{name: "format date", source: "data.date.format('2006-01-02')", want: "2026-08-25"},
		{name: "default on missing", source: "data.missing.default('n/a')", want: "n/a"},
		{name: "default on empty string", source: "data.empty.default('n/a')", want: "n/a"},
		{name: "default passes value through", source: "data.name.default('n/a')", want: "Acme"},
		{name: "chained methods", source: "data.name.upper().trim()", want: "ACME"},
	}

	evaluator := New()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := evaluator.Evaluate(tc.source, data)
			if err != nil {
				t.Fatalf("evaluate %q: %v", tc.source, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEvaluator_CompileErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "empty", source: "   ", want: "empty expression"},
		{name: "unknown method", source: "data.name.reverse()", want: "unknown method"},
		{name: "trailing dot", source: "data.name.", want: "trailing"},
		{name: "invalid identifier", source: "data.na me", want: "invalid identifier"},
		{name: "leading call", source: "upper()", want: "binding path"},
		{name: "unterminated string", source: "data.x.format('abc", want: "unterminated"},
		{name: "missing paren", source: "data.x.round(2", want: "missing ')'"},
	}

	evaluator := New()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := evaluator.Compile(tc.source)
			if err == nil {
				t.Fatalf("expected compile error for %q", tc.source)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestEvaluator_CacheReturnsSameProgram(t *testing.T) {
	evaluator := New()

	first, err := evaluator.Compile("data.customer.name")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	second, err := evaluator.Compile(" data.customer.name ")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical program instance from the cache")
	}
	if got := evaluator.CachedPrograms(); got != 1 {
		t.Fatalf("CachedPrograms = %d, want 1", got)
	}
}

func TestEvaluator_ConcurrentCompile(t *testing.T) {
	evaluator := New()
	sources := []string{
		"data.name", "data.total.round(2)", "items.0.label",
		"data.name.upper()", "data.date.format('2006-01-02')",
	}

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				source := sources[i%len(sources)]
				if _, err := evaluator.Compile(source); err != nil {
					t.Errorf("compile %q: %v", source, err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := evaluator.CachedPrograms(); got != len(sources) {
		t.Fatalf("CachedPrograms = %d, want %d", got, len(sources))
	}
}

func TestEvaluator_Resolve(t *testing.T) {
	evaluator := New()
	data := map[string]any{"data": map[string]any{"name": "Acme"}}

	value, wasExpr, err := evaluator.Resolve("{{ data.name }}", data)
	if err != nil || !wasExpr || value != "Acme" {
		t.Fatalf("Resolve expression = %v, %v, %v", value, wasExpr, err)
	}

	value, wasExpr, err = evaluator.Resolve("plain text", data)
	if err != nil || wasExpr || value != "plain text" {
		t.Fatalf("Resolve literal = %v, %v, %v", value, wasExpr, err)
	}

	value, wasExpr, err = evaluator.Resolve("{{ data.missing }}", data)
	if err != nil || !wasExpr || value != nil {
		t.Fatalf("Resolve miss = %v, %v, %v", value, wasExpr, err)
	}
}

func TestEvaluator_Root(t *testing.T) {
	evaluator := New()

	tests := []struct {
		raw  any
		want string
		ok   bool
	}{
		{raw: "{{ data.customer.name }}", want: "data.customer.name", ok: true},
		{raw: "{{ data.customer.name.upper() }}", want: "data.customer.name", ok: true},
		{raw: "{{ items.0.label }}", want: "items", ok: true},
		{raw: "literal", ok: false},
		{raw: 12, ok: false},
	}
	for _, tc := range tests {
		got, ok := evaluator.Root(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Root(%v) = %q, %v; want %q, %v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCoercions(t *testing.T) {
	if got := CoerceString(12.5); got != "12.5" {
		t.Errorf("CoerceString(12.5) = %q", got)
	}
	if got := CoerceString(nil); got != "" {
		t.Errorf("CoerceString(nil) = %q", got)
	}
	if got, ok := CoerceNumber("  42 "); !ok || got != 42 {
		t.Errorf("CoerceNumber(string) = %v, %v", got, ok)
	}
	if _, ok := CoerceNumber("not a number"); ok {
		t.Errorf("CoerceNumber should reject non-numeric strings")
	}
	if CoerceBool("false") || !CoerceBool("true") || CoerceBool("") || !CoerceBool("yes?") {
		t.Errorf("CoerceBool string handling broken")
	}
	if CoerceBool(nil) || CoerceBool(0.0) || !CoerceBool(1) {
		t.Errorf("CoerceBool scalar handling broken")
	}
	if CoerceBool([]any{}) || !CoerceBool([]any{1}) {
		t.Errorf("CoerceBool slice handling broken")
	}
}
