package style

// DefaultBase is the document base style applied when callers do not supply
// their own.
var DefaultBase = Properties{
	FontFamily: "Helvetica",
	FontSize:   10,
	FontColor:  "#000000",
	LineHeight: 1.2,
}

// Resolver computes effective styles against a fixed document base. It holds
// no mutable state and is safe for concurrent use across render passes.
type Resolver struct {
	base Properties
}

// NewResolver constructs a Resolver. A zero base falls back to DefaultBase.
func NewResolver(base Properties) *Resolver {
	if base.IsZero() {
		base = DefaultBase
	}
	return &Resolver{base: base}
}

// Base returns the document base style.
func (r *Resolver) Base() Properties {
	return r.base
}

// Effective flattens the cascade for a style-inheriting node: document base,
// then the style accumulated from ancestors, then the node's own explicit
// overrides, each layer winning field by field.
func (r *Resolver) Effective(explicit, inherited Properties) Properties {
	return Merge(Merge(r.base, inherited), explicit)
}

// Rebase computes the style for a node that does not inherit: ancestor style
// is discarded and the cascade restarts from the document base plus the
// node's explicit values. Wrapper types that are pure layout constraints use
// this so typographic style cannot leak through them by accident.
func (r *Resolver) Rebase(explicit Properties) Properties {
	return Merge(r.base, explicit)
}
