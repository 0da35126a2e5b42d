package components

import (
	"testing"

	"github.com/goliatone/go-docgen/pkg/testsupport"
)

func TestSection(t *testing.T) {
	ops, _ := renderDoc(t, `{
		"type": "section",
		"properties": {"name": "terms"},
		"child": {"type": "text", "properties": {"content": "Terms"}}
	}`, nil)

	section := testsupport.AssertOp(t, ops, "section")
	if section.Args["name"] != "terms" {
		t.Fatalf("section args = %v", section.Args)
	}
	if section.Find("text") == nil {
		t.Fatalf("child escaped the section:\n%s", testsupport.OpSummary(ops))
	}
}

func TestSectionLink(t *testing.T) {
	ops, _ := renderDoc(t, `{
		"type": "section-link",
		"properties": {"target": "terms"},
		"child": {"type": "text", "properties": {"content": "See terms"}}
	}`, nil)

	link := testsupport.AssertOp(t, ops, "section-link")
	if link.Args["target"] != "terms" {
		t.Fatalf("section-link args = %v", link.Args)
	}
}

func TestHyperlink_URLFromBinding(t *testing.T) {
	ops, _ := renderDoc(t, `{
		"type": "hyperlink",
		"properties": {"url": "{{ invoice.portal }}"},
		"child": {"type": "text", "properties": {"content": "Pay online"}}
	}`, map[string]any{"invoice": map[string]any{"portal": "https://pay.example.com/i/42"}})

	link := testsupport.AssertOp(t, ops, "hyperlink")
	if link.Args["url"] != "https://pay.example.com/i/42" {
		t.Fatalf("hyperlink args = %v", link.Args)
	}
}

func TestHyperlink_MissingURLStillRendersChild(t *testing.T) {
	ops, result := renderDoc(t, `{
		"type": "hyperlink",
		"child": {"type": "text", "properties": {"content": "plain"}}
	}`, nil)

	testsupport.AssertNoOp(t, ops, "hyperlink")
	testsupport.AssertOp(t, ops, "text")
	if !result.HasErrors() {
		t.Fatalf("missing url must be reported: %v", result.Issues)
	}
}
