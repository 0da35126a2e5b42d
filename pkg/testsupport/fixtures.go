// Package testsupport holds helpers shared by the package test suites:
// fixture loading, golden handling, and trace-tree assertions.
package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docgen/pkg/engine/trace"
	"github.com/goliatone/go-docgen/pkg/node"
)

// LoadTree reads a template fixture and decodes it into a node tree.
// Testing helpers fail the test on error to keep contract tests concise.
func LoadTree(t *testing.T, path string) *node.Node {
	t.Helper()

	tree, err := LoadTreeFromPath(path)
	if err != nil {
		t.Fatalf("load tree: %v", err)
	}
	return tree
}

// LoadTreeFromPath decodes a template fixture without requiring testing.T,
// allowing callers to wire fixtures in setup functions.
func LoadTreeFromPath(path string) (*node.Node, error) {
	if path == "" {
		return nil, errors.New("testsupport: tree path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read tree: %w", err)
	}
	tree, err := node.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("testsupport: decode tree: %w", err)
	}
	return tree, nil
}

// MustDecodeTree decodes an inline template document, for tests that keep
// small trees next to the assertions instead of in fixture files.
func MustDecodeTree(t *testing.T, document string) *node.Node {
	t.Helper()

	tree, err := node.Decode([]byte(document))
	if err != nil {
		t.Fatalf("decode tree: %v", err)
	}
	return tree
}

// MustLoadOps loads a JSON golden file into a trace op tree.
func MustLoadOps(t *testing.T, path string) *trace.Op {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load golden: %v", err)
	}
	var out trace.Op
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
	return &out
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is
// set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// AssertOp fails the test unless the recorded tree contains at least one op
// with the given name.
func AssertOp(t *testing.T, root *trace.Op, name string) *trace.Op {
	t.Helper()

	op := root.Find(name)
	if op == nil {
		t.Fatalf("expected op %q in trace:\n%s", name, OpSummary(root))
	}
	return op
}

// AssertNoOp fails the test if the recorded tree contains an op with the
// given name.
func AssertNoOp(t *testing.T, root *trace.Op, name string) {
	t.Helper()

	if op := root.Find(name); op != nil {
		t.Fatalf("unexpected op %q in trace:\n%s", name, OpSummary(root))
	}
}

// AssertOpCount fails the test unless the tree contains exactly want ops
// with the given name.
func AssertOpCount(t *testing.T, root *trace.Op, name string, want int) {
	t.Helper()

	if got := root.Count(name); got != want {
		t.Fatalf("op %q count = %d, want %d:\n%s", name, got, want, OpSummary(root))
	}
}

// OpSummary renders an op tree as indented JSON for failure messages.
func OpSummary(root *trace.Op) string {
	payload, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return fmt.Sprintf("(unprintable trace: %v)", err)
	}
	return string(payload)
}
