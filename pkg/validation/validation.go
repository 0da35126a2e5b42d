// Package validation walks a layout tree and aggregates the structural
// findings of every node's renderer into a single report, annotated with
// node ids and tree paths for editor navigation. It needs no render
// context: expressions in property slots are tolerated, never flagged as
// invalid literals.
package validation

import (
	"fmt"

	"github.com/goliatone/go-docgen/pkg/node"
	"github.com/goliatone/go-docgen/pkg/render"
)

// Issue and Severity re-export the renderer contract types; the engine only
// aggregates them.
type Issue = render.Issue

type Severity = render.Severity

const (
	SeverityInfo    = render.SeverityInfo
	SeverityWarning = render.SeverityWarning
	SeverityError   = render.SeverityError
)

// Report is the aggregated outcome of validating one tree.
type Report struct {
	Issues []Issue `json:"issues,omitempty"`
}

// HasErrors reports whether the tree has Error-severity defects.
func (r Report) HasErrors() bool {
	return r.Count(SeverityError) > 0
}

// Count returns the number of issues at a severity.
func (r Report) Count(severity Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			n++
		}
	}
	return n
}

// ByNode groups issues by the originating node's id (falling back to the
// tree path when the node has no id), preserving traversal order within
// each group.
func (r Report) ByNode() map[string][]Issue {
	if len(r.Issues) == 0 {
		return nil
	}
	grouped := make(map[string][]Issue)
	for _, issue := range r.Issues {
		key := issue.NodeID
		if key == "" {
			key = issue.Path
		}
		grouped[key] = append(grouped[key], issue)
	}
	return grouped
}

// Engine validates trees against a renderer registry.
type Engine struct {
	registry *render.Registry
}

// NewEngine constructs a validation engine sharing the render registry, so
// validation exercises exactly the renderers a render pass would resolve.
func NewEngine(registry *render.Registry) *Engine {
	return &Engine{registry: registry}
}

// Validate walks the tree depth first. An unresolvable type is recorded as
// an Error-severity issue and traversal continues with the node's siblings:
// rendering treats resolution failure as fatal, but validation exists to
// report every defect in one pass.
func (e *Engine) Validate(root *node.Node) Report {
	var report Report
	if e == nil || e.registry == nil || root == nil {
		return report
	}

	node.Walk(root, func(n *node.Node, path string) bool {
		renderer, err := e.registry.Resolve(n.Type)
		if err != nil {
			report.Issues = append(report.Issues, Issue{
				NodeID:   n.ID,
				Path:     path,
				Message:  fmt.Sprintf("unresolvable component: %v", err),
				Severity: SeverityError,
			})
			// No renderer, no schema: skip property checks but keep
			// walking so sibling defects still surface.
			return true
		}

		annotate(&report, n, path, renderer.Schema().Validate(n))
		annotate(&report, n, path, render.ShapeIssues(n, renderer.Capabilities()))
		return true
	})

	return report
}

func annotate(report *Report, n *node.Node, path string, issues []Issue) {
	for _, issue := range issues {
		issue.NodeID = n.ID
		issue.Path = path
		report.Issues = append(report.Issues, issue)
	}
}
