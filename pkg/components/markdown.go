package components

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/goliatone/go-docgen/pkg/node"
	"github.com/goliatone/go-docgen/pkg/render"
)

// markdownComponent renders markdown content as plain styled text. The
// markup is converted to HTML, stripped with a strict sanitizer, and the
// remaining text flows into the container. Block boundaries collapse to
// newlines.
func markdownComponent() render.Renderer {
	converter := goldmark.New()
	policy := bluemonday.StrictPolicy()

	return &component{
		typ: node.TypeMarkdown,
		caps: render.Capabilities{
			RequiresExpressionEvaluation: true,
			InheritsStyle:                true,
		},
		schema: &render.Schema{
			Required: []string{"content"},
			Properties: map[string]render.PropertySpec{
				"content": {Schema: openapi3.NewStringSchema(), Default: "", Expr: true},
			},
		},
		draw: func(dc *render.DrawContext) (*render.DrawResult, error) {
			content := dc.String("content")
			if content == "" {
				return nil, nil
			}

			var buf bytes.Buffer
			if err := converter.Convert([]byte(content), &buf); err != nil {
				return nil, fmt.Errorf("components: convert markdown: %w", err)
			}

			text := html.UnescapeString(policy.Sanitize(buf.String()))
			text = collapseBlankLines(text)
			if text == "" {
				return nil, nil
			}

			dc.Container.Text(text, dc.Style)
			return nil, nil
		},
	}
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
