// Package expr implements the {{ ... }} data-binding mini-language embedded
// in node property values: dotted member access over the binding snapshot,
// numeric indexes into collections, and a small set of formatting calls such
// as format("2006-01-02") or upper().
//
// Expressions are compiled once per unique source text and cached; the same
// property is re-evaluated once per page or repeat iteration, so the cache
// is the hot path. Evaluation is forgiving: an absent path yields nil, not
// an error, so a broken binding on one node never aborts a document.
package expr

import (
	"regexp"
	"strings"
	"sync"
)

var expressionPattern = regexp.MustCompile(`^\{\{\s*(.*?)\s*\}\}$`)

// IsExpression reports whether a raw property value is an expression string.
func IsExpression(raw any) bool {
	_, ok := Source(raw)
	return ok
}

// Source unwraps the expression body from a {{ ... }} property value.
func Source(raw any) (string, bool) {
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	match := expressionPattern.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return "", false
	}
	return match[1], true
}

// Evaluator compiles and evaluates expressions with a process-wide program
// cache. It is shared across concurrent render passes: reads take the shared
// lock, and a cache miss promotes to the exclusive lock with a second miss
// check before compiling.
type Evaluator struct {
	mu       sync.RWMutex
	programs map[string]*Program
}

// New constructs an Evaluator with an empty cache.
func New() *Evaluator {
	return &Evaluator{
		programs: make(map[string]*Program),
	}
}

// Compile returns the cached program for an expression body, parsing it on
// first use.
func (e *Evaluator) Compile(source string) (*Program, error) {
	source = strings.TrimSpace(source)

	e.mu.RLock()
	program, ok := e.programs[source]
	e.mu.RUnlock()
	if ok {
		return program, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if program, ok := e.programs[source]; ok {
		return program, nil
	}

	program, err := parse(source)
	if err != nil {
		return nil, err
	}
	e.programs[source] = program
	return program, nil
}

// Evaluate compiles (cached) and runs an expression body against the binding
// snapshot. An unresolvable path yields (nil, nil); only malformed
// expressions or bad method arguments produce an error.
func (e *Evaluator) Evaluate(source string, data map[string]any) (any, error) {
	program, err := e.Compile(source)
	if err != nil {
		return nil, err
	}
	return program.run(data)
}

// Resolve handles a raw property value: literals pass through untouched,
// expression strings are evaluated. The second result reports whether the
// value was an expression.
func (e *Evaluator) Resolve(raw any, data map[string]any) (any, bool, error) {
	source, ok := Source(raw)
	if !ok {
		return raw, false, nil
	}
	value, err := e.Evaluate(source, data)
	return value, true, err
}

// CachedPrograms reports the number of compiled programs, for diagnostics.
func (e *Evaluator) CachedPrograms() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.programs)
}

// Root returns the leading binding path referenced by a raw property value,
// used for binding audits. Returns false for literals and for expressions
// without a member root (which the grammar forbids anyway).
func (e *Evaluator) Root(raw any) (string, bool) {
	source, ok := Source(raw)
	if !ok {
		return "", false
	}
	program, err := e.Compile(source)
	if err != nil {
		return "", false
	}
	return program.Root(), program.Root() != ""
}
