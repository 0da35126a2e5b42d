package render

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/goliatone/go-docgen/pkg/node"
)

// stubRenderer is the minimal Renderer used by registry tests.
type stubRenderer struct {
	typ  node.Type
	caps Capabilities
}

func (s *stubRenderer) Type() node.Type            { return s.typ }
func (s *stubRenderer) Capabilities() Capabilities { return s.caps }
func (s *stubRenderer) Schema() *Schema            { return &Schema{} }
func (s *stubRenderer) Draw(dc *DrawContext) (*DrawResult, error) {
	return nil, nil
}

// stubResolver backs the registry with a fixed renderer set.
type stubResolver struct {
	renderers map[node.Type]Renderer
	resolves  int
}

func (s *stubResolver) Resolve(t node.Type) (Renderer, bool) {
	s.resolves++
	r, ok := s.renderers[t]
	return r, ok
}

func (s *stubResolver) All() []Renderer {
	out := make([]Renderer, 0, len(s.renderers))
	for _, r := range s.renderers {
		out = append(out, r)
	}
	return out
}

func newStubResolver(types ...node.Type) *stubResolver {
	renderers := make(map[node.Type]Renderer, len(types))
	for _, t := range types {
		renderers[t] = &stubRenderer{typ: t}
	}
	return &stubResolver{renderers: renderers}
}

func TestRegistry_ResolveCachesInstance(t *testing.T) {
	services := newStubResolver(node.TypeText)
	registry := NewRegistry(services)

	first, err := registry.Resolve(node.TypeText)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	second, err := registry.Resolve(node.TypeText)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if first != second {
		t.Fatalf("repeated resolve should return the cached instance")
	}
	if services.resolves != 1 {
		t.Fatalf("service resolver called %d times, want 1", services.resolves)
	}
}

func TestRegistry_RegisterLastWins(t *testing.T) {
	registry := NewRegistry(newStubResolver(node.TypeText))

	// Prime the cache with the service-provided renderer.
	original, err := registry.Resolve(node.TypeText)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	replacement := &stubRenderer{typ: node.TypeText}
	if err := registry.Register(node.TypeText, replacement); err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := registry.Resolve(node.TypeText)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got == original || got != Renderer(replacement) {
		t.Fatalf("registration should invalidate the cache and win")
	}
}

func TestRegistry_RegisterFactoryRunsOncePerRegistration(t *testing.T) {
	registry := NewRegistry(nil)

	calls := 0
	err := registry.RegisterFactory(node.TypeText, func() (Renderer, error) {
		calls++
		return &stubRenderer{typ: node.TypeText}, nil
	})
	if err != nil {
		t.Fatalf("register factory: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := registry.Resolve(node.TypeText); err != nil {
			t.Fatalf("resolve: %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("factory ran %d times, want 1", calls)
	}
}

func TestRegistry_FactoryFailure(t *testing.T) {
	registry := NewRegistry(nil)
	_ = registry.RegisterFactory(node.TypeText, func() (Renderer, error) {
		return nil, fmt.Errorf("boom")
	})

	if _, err := registry.Resolve(node.TypeText); err == nil {
		t.Fatalf("expected factory error")
	}
}

func TestRegistry_UnknownTypeError(t *testing.T) {
	// Only two content renderers are available; resolving a third content
	// type must name them as the supported siblings.
	registry := NewRegistry(newStubResolver(node.TypeText, node.TypeImage))

	_, err := registry.Resolve(node.TypeBarcode)
	if err == nil {
		t.Fatalf("expected unknown-type error")
	}

	var unknown *UnknownComponentTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("error type = %T, want *UnknownComponentTypeError", err)
	}
	if unknown.Type != node.TypeBarcode {
		t.Fatalf("Type = %q", unknown.Type)
	}
	if unknown.Category != node.CategoryContent || unknown.Tier != node.TierExtended {
		t.Fatalf("metadata not attached: %+v", unknown)
	}

	want := map[node.Type]bool{node.TypeText: true, node.TypeImage: true}
	if len(unknown.Supported) != len(want) {
		t.Fatalf("Supported = %v, want text and image", unknown.Supported)
	}
	for _, typ := range unknown.Supported {
		if !want[typ] {
			t.Fatalf("unexpected supported type %q", typ)
		}
	}
}

func TestRegistry_UnknownTagOutsideComponentSet(t *testing.T) {
	registry := NewRegistry(newStubResolver(node.TypeText))

	_, err := registry.Resolve(node.Type("carousel"))
	var unknown *UnknownComponentTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("error type = %T", err)
	}
	if unknown.Category != "" || len(unknown.Supported) != 0 {
		t.Fatalf("tag outside the set should carry no metadata: %+v", unknown)
	}
}

func TestRegistry_ConcurrentResolve(t *testing.T) {
	registry := NewRegistry(newStubResolver(node.TypeText, node.TypeImage, node.TypeColumn))
	types := []node.Type{node.TypeText, node.TypeImage, node.TypeColumn}

	results := make([][]Renderer, 8)
	var wg sync.WaitGroup
	for worker := 0; worker < len(results); worker++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			results[w] = make([]Renderer, len(types))
			for i, typ := range types {
				renderer, err := registry.Resolve(typ)
				if err != nil {
					t.Errorf("resolve %q: %v", typ, err)
					return
				}
				results[w][i] = renderer
			}
		}(worker)
	}
	wg.Wait()

	for w := 1; w < len(results); w++ {
		for i := range types {
			if results[w][i] != results[0][i] {
				t.Fatalf("worker %d got a different instance for %q", w, types[i])
			}
		}
	}
}

func TestRegistry_SupportedAndUnsupportedTypes(t *testing.T) {
	registry := NewRegistry(newStubResolver(node.TypeText, node.TypeColumn))

	if !registry.IsSupported(node.TypeText) {
		t.Fatalf("text should be supported")
	}
	if registry.IsSupported(node.TypeBarcode) {
		t.Fatalf("barcode should not be supported")
	}

	supported := registry.SupportedTypes()
	if len(supported) != 2 {
		t.Fatalf("SupportedTypes = %v", supported)
	}
	if got := len(registry.UnsupportedTypes()); got != len(node.AllTypes())-2 {
		t.Fatalf("UnsupportedTypes count = %d", got)
	}
}
