package render

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-docgen/pkg/node"
)

// ServiceResolver is the dependency-resolution collaborator the registry
// consumes: a targeted lookup plus an enumerate-everything fallback used for
// discovery. The built-in component catalog provides one; host applications
// can wrap their DI container instead.
type ServiceResolver interface {
	Resolve(t node.Type) (Renderer, bool)
	All() []Renderer
}

// Factory produces a renderer instance on demand. Registered factories take
// precedence over the service resolver.
type Factory func() (Renderer, error)

// Registry maps component type tags to renderer instances. It is shared
// across concurrent render passes: lookups take the shared lock, and a cache
// miss promotes to the exclusive lock with a second miss check before
// instantiating, so duplicate instantiation races are impossible and the
// common hit path never waits on a slow resolution call.
type Registry struct {
	mu        sync.RWMutex
	cache     map[node.Type]Renderer
	factories map[node.Type]Factory
	services  ServiceResolver
}

// NewRegistry constructs a registry backed by the given service resolver.
// A nil resolver is allowed; only explicitly registered renderers resolve.
func NewRegistry(services ServiceResolver) *Registry {
	return &Registry{
		cache:     make(map[node.Type]Renderer),
		factories: make(map[node.Type]Factory),
		services:  services,
	}
}

// Resolve returns the renderer for a type tag, caching the result for the
// process lifetime. Resolution order on a cache miss: explicitly registered
// factory, targeted service lookup, then a scan over every known renderer
// instance whose declared type matches. Failure returns an
// *UnknownComponentTypeError.
func (r *Registry) Resolve(t node.Type) (Renderer, error) {
	r.mu.RLock()
	renderer, ok := r.cache[t]
	r.mu.RUnlock()
	if ok {
		return renderer, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if renderer, ok := r.cache[t]; ok {
		return renderer, nil
	}

	renderer, err := r.lookupLocked(t)
	if err != nil {
		return nil, err
	}
	r.cache[t] = renderer
	return renderer, nil
}

func (r *Registry) lookupLocked(t node.Type) (Renderer, error) {
	if factory, ok := r.factories[t]; ok {
		renderer, err := factory()
		if err != nil {
			return nil, fmt.Errorf("render: instantiate renderer for %q: %w", t, err)
		}
		if renderer == nil {
			return nil, fmt.Errorf("render: factory for %q produced no renderer", t)
		}
		return renderer, nil
	}

	if r.services != nil {
		if renderer, ok := r.services.Resolve(t); ok && renderer != nil {
			return renderer, nil
		}
		for _, candidate := range r.services.All() {
			if candidate != nil && candidate.Type() == t {
				return candidate, nil
			}
		}
	}

	return nil, r.unknownLocked(t)
}

func (r *Registry) unknownLocked(t node.Type) error {
	unknown := &UnknownComponentTypeError{Type: t}
	meta, ok := node.Metadata(t)
	if !ok {
		return unknown
	}
	unknown.Category = meta.Category
	unknown.Tier = meta.Tier
	for _, sibling := range node.TypesInCategory(meta.Category) {
		if sibling == t {
			continue
		}
		if r.availableLocked(sibling) {
			unknown.Supported = append(unknown.Supported, sibling)
		}
	}
	return unknown
}

// availableLocked reports support without caching, used for diagnostics.
func (r *Registry) availableLocked(t node.Type) bool {
	if _, ok := r.cache[t]; ok {
		return true
	}
	if _, ok := r.factories[t]; ok {
		return true
	}
	if r.services != nil {
		if _, ok := r.services.Resolve(t); ok {
			return true
		}
	}
	return false
}

// Register installs or overrides the renderer for a type tag and invalidates
// any cached instance. Last registration wins.
func (r *Registry) Register(t node.Type, renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	if t == "" {
		t = renderer.Type()
	}
	if t == "" {
		return fmt.Errorf("render: renderer type is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[t] = func() (Renderer, error) { return renderer, nil }
	delete(r.cache, t)
	return nil
}

// RegisterFactory installs or overrides a renderer factory for a type tag,
// invalidating any cached instance. The factory runs at most once per
// registration thanks to the resolve cache.
func (r *Registry) RegisterFactory(t node.Type, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("render: factory is required")
	}
	if t == "" {
		return fmt.Errorf("render: renderer type is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[t] = factory
	delete(r.cache, t)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(t node.Type, renderer Renderer) {
	if err := r.Register(t, renderer); err != nil {
		panic(err)
	}
}

// IsSupported reports whether a renderer can be produced for the tag. The
// cache and mapping tables are checked without forcing instantiation, but
// the final fallback performs a full Resolve, so a first call for a
// service-provided type pays the lookup cost.
func (r *Registry) IsSupported(t node.Type) bool {
	r.mu.RLock()
	_, cached := r.cache[t]
	_, mapped := r.factories[t]
	r.mu.RUnlock()
	if cached || mapped {
		return true
	}

	_, err := r.Resolve(t)
	return err == nil
}

// SupportedTypes returns the tags of the closed component set a renderer can
// currently be produced for. Intended for startup-completeness reporting;
// it forces instantiation of every resolvable type.
func (r *Registry) SupportedTypes() []node.Type {
	var out []node.Type
	for _, t := range node.AllTypes() {
		if r.IsSupported(t) {
			out = append(out, t)
		}
	}
	return out
}

// UnsupportedTypes returns the set difference between the closed component
// set and SupportedTypes.
func (r *Registry) UnsupportedTypes() []node.Type {
	var out []node.Type
	for _, t := range node.AllTypes() {
		if !r.IsSupported(t) {
			out = append(out, t)
		}
	}
	return out
}
