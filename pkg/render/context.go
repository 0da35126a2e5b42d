package render

// Context is the per-pass snapshot of data bindings plus pass-scoped
// counters. The binding map is treated as immutable for the duration of the
// pass; repeat-style renderers derive scoped contexts instead of mutating
// it. Contexts are pass-local and need no synchronization.
type Context struct {
	bindings map[string]any
	counters *counters
}

type counters struct {
	page int
}

// NewContext snapshots the bindings for one render pass. A nil map is
// allowed; every lookup then misses and renderers fall back to their
// declared defaults.
func NewContext(bindings map[string]any) *Context {
	return &Context{
		bindings: bindings,
		counters: &counters{page: 1},
	}
}

// Bindings exposes the snapshot for expression evaluation. Callers must not
// mutate the returned map.
func (c *Context) Bindings() map[string]any {
	if c == nil {
		return nil
	}
	return c.bindings
}

// Page returns the current page counter, starting at 1.
func (c *Context) Page() int {
	if c == nil {
		return 0
	}
	return c.counters.page
}

// AdvancePage moves the page counter; the page-break renderer calls it after
// issuing the engine primitive.
func (c *Context) AdvancePage() {
	c.counters.page++
}

// Scoped derives a context overlaying extra bindings (e.g. the loop variable
// of a repeat iteration) on the snapshot. Counters are shared with the
// parent so page numbering stays pass-wide.
func (c *Context) Scoped(extra map[string]any) *Context {
	if len(extra) == 0 {
		return c
	}
	merged := make(map[string]any, len(c.bindings)+len(extra))
	for key, value := range c.bindings {
		merged[key] = value
	}
	for key, value := range extra {
		merged[key] = value
	}
	return &Context{bindings: merged, counters: c.counters}
}
