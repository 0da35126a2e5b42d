package orchestrator

import (
	"sort"
	"strings"

	"github.com/goliatone/go-docgen/pkg/expr"
	"github.com/goliatone/go-docgen/pkg/node"
)

// AuditBindings scans every expression in the tree and returns the binding
// roots the supplied data does not satisfy, sorted and deduplicated. Names
// introduced by enclosing repeat scopes (the "as" alias and "index") are not
// reported: they exist only at render time.
func AuditBindings(tree *node.Node, bindings map[string]any) []string {
	if tree == nil {
		return nil
	}
	missing := make(map[string]struct{})
	auditNode(tree, bindings, map[string]struct{}{"index": {}}, expr.New(), missing)
	if len(missing) == 0 {
		return nil
	}

	out := make([]string, 0, len(missing))
	for name := range missing {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func auditNode(n *node.Node, bindings map[string]any, scoped map[string]struct{}, evaluator *expr.Evaluator, missing map[string]struct{}) {
	for _, raw := range n.Properties {
		root, ok := evaluator.Root(raw)
		if !ok {
			continue
		}
		key := root
		if dot := strings.IndexByte(root, '.'); dot >= 0 {
			key = root[:dot]
		}
		if _, ok := scoped[key]; ok {
			continue
		}
		if _, ok := bindings[key]; ok {
			continue
		}
		missing[root] = struct{}{}
	}

	// A repeat introduces its alias for the subtree it iterates.
	if n.Type == node.TypeRepeat {
		alias := "item"
		if raw, ok := n.Property("as"); ok {
			if s, isString := raw.(string); isString && s != "" {
				alias = s
			}
		}
		if _, ok := scoped[alias]; !ok {
			extended := make(map[string]struct{}, len(scoped)+1)
			for name := range scoped {
				extended[name] = struct{}{}
			}
			extended[alias] = struct{}{}
			scoped = extended
		}
	}

	if n.Child != nil {
		auditNode(n.Child, bindings, scoped, evaluator, missing)
		return
	}
	for _, child := range n.Children {
		if child != nil {
			auditNode(child, bindings, scoped, evaluator, missing)
		}
	}
}
