package trace

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// reportTemplate renders the flattened op tree as an indented text report.
// Keeping the layout in a template lets callers swap it via WithTemplate.
const reportTemplate = `{% for line in lines %}{{ line.indent }}{{ line.name }}{% if line.args %} {{ line.args }}{% endif %}
{% endfor %}`

// ReportOption customises report rendering.
type ReportOption func(*reportConfig)

type reportConfig struct {
	source string
	indent string
}

// WithTemplate replaces the built-in report template. The template receives
// a "lines" list of {indent, name, args} entries.
func WithTemplate(source string) ReportOption {
	return func(cfg *reportConfig) {
		cfg.source = source
	}
}

// WithIndent sets the per-level indent string. Default is two spaces.
func WithIndent(indent string) ReportOption {
	return func(cfg *reportConfig) {
		cfg.indent = indent
	}
}

type reportLine struct {
	Indent string
	Name   string
	Args   string
}

// Report writes a human-readable rendition of the op tree.
func (r *Recorder) Report(w io.Writer, options ...ReportOption) error {
	cfg := &reportConfig{source: reportTemplate, indent: "  "}
	for _, option := range options {
		option(cfg)
	}

	tpl, err := pongo2.FromString(cfg.source)
	if err != nil {
		return fmt.Errorf("trace: compile report template: %w", err)
	}

	r.mu.Lock()
	lines := flatten(r.op, 0, cfg.indent, nil)
	r.mu.Unlock()

	ctx := pongo2.Context{"lines": lineContexts(lines)}
	if err := tpl.ExecuteWriter(ctx, w); err != nil {
		return fmt.Errorf("trace: render report: %w", err)
	}
	return nil
}

func lineContexts(lines []reportLine) []pongo2.Context {
	out := make([]pongo2.Context, len(lines))
	for i, line := range lines {
		out[i] = pongo2.Context{
			"indent": line.Indent,
			"name":   line.Name,
			"args":   line.Args,
		}
	}
	return out
}

func flatten(op *Op, depth int, indent string, out []reportLine) []reportLine {
	out = append(out, reportLine{
		Indent: strings.Repeat(indent, depth),
		Name:   op.Name,
		Args:   formatArgs(op.Args),
	})
	for _, child := range op.Children {
		out = flatten(child, depth+1, indent, out)
	}
	return out
}

// formatArgs renders args deterministically, sorted by key.
func formatArgs(args map[string]any) string {
	if len(args) == 0 {
		return ""
	}
	keys := make([]string, 0, len(args))
	for key := range args {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := args[key]
		switch typed := value.(type) {
		case string:
			parts = append(parts, fmt.Sprintf("%s=%q", key, typed))
		case float64:
			parts = append(parts, fmt.Sprintf("%s=%g", key, typed))
		case map[string]any:
			if len(typed) == 0 {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s={%s}", key, formatArgs(typed)))
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", key, typed))
		}
	}
	return strings.Join(parts, " ")
}
