package parser

import (
	"strings"
	"testing"

	"github.com/bgriffith/docforge/internal/doctree"
)

func parseMarkdown(t *testing.T, input, filename string) *doctree.Document {
	t.Helper()
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), filename)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return doc
}

func TestMarkdownParser_Headings(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

### Subsection A1

Deep content.
`
	doc := parseMarkdown(t, input, "doc.md")

	if got := doc.Metadata["title"]; got != "doc" {
		t.Errorf("expected title %q, got %v", "doc", got)
	}
	if len(doc.Children) != 6 {
		t.Fatalf("expected 6 blocks, got %d", len(doc.Children))
	}

	wantLevels := map[int]int{0: 1, 2: 2, 4: 3}
	for idx, level := range wantLevels {
		h, ok := doc.Children[idx].(*doctree.Heading)
		if !ok {
			t.Fatalf("block %d: expected heading, got %s", idx, doc.Children[idx].Kind())
		}
		if h.Level != level {
			t.Errorf("block %d: expected level %d, got %d", idx, level, h.Level)
		}
	}
	if got := doctree.PlainText(doc.Children[0]); got != "Title" {
		t.Errorf("expected heading text %q, got %q", "Title", got)
	}
	if got := doctree.PlainText(doc.Children[1]); got != "Intro text." {
		t.Errorf("expected paragraph %q, got %q", "Intro text.", got)
	}
}

func TestMarkdownParser_InlineFormatting(t *testing.T) {
	doc := parseMarkdown(t, "Some *em* and **bold** and `code` and ~~gone~~ and [a link](https://example.com \"Example\").", "doc.md")

	if len(doc.Children) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Children))
	}
	para, ok := doc.Children[0].(*doctree.Paragraph)
	if !ok {
		t.Fatalf("expected paragraph, got %s", doc.Children[0].Kind())
	}

	kinds := make(map[doctree.Kind]doctree.Inline)
	for _, in := range para.Content {
		kinds[in.Kind()] = in
	}
	for _, want := range []doctree.Kind{
		doctree.KindEmphasis, doctree.KindStrong, doctree.KindCodeSpan,
		doctree.KindStrikethrough, doctree.KindLink,
	} {
		if kinds[want] == nil {
			t.Errorf("missing %s inline", want)
		}
	}
	if link, ok := kinds[doctree.KindLink].(*doctree.Link); ok {
		if link.Destination != "https://example.com" {
			t.Errorf("expected destination %q, got %q", "https://example.com", link.Destination)
		}
		if link.Title != "Example" {
			t.Errorf("expected title %q, got %q", "Example", link.Title)
		}
	}
	if cs, ok := kinds[doctree.KindCodeSpan].(*doctree.CodeSpan); ok && cs.Literal != "code" {
		t.Errorf("expected code span %q, got %q", "code", cs.Literal)
	}
}

func TestMarkdownParser_FencedCode(t *testing.T) {
	doc := parseMarkdown(t, "```go\nfunc main() {}\n```\n", "code.md")

	if len(doc.Children) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Children))
	}
	cb, ok := doc.Children[0].(*doctree.CodeBlock)
	if !ok {
		t.Fatalf("expected code block, got %s", doc.Children[0].Kind())
	}
	if cb.Language != "go" {
		t.Errorf("expected language %q, got %q", "go", cb.Language)
	}
	if cb.Literal != "func main() {}" {
		t.Errorf("expected literal %q, got %q", "func main() {}", cb.Literal)
	}
}

func TestMarkdownParser_GFMTable(t *testing.T) {
	input := `| Name | Count |
|:-----|------:|
| a    | 1     |
| b    | 2     |
`
	doc := parseMarkdown(t, input, "table.md")

	if len(doc.Children) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Children))
	}
	table, ok := doc.Children[0].(*doctree.Table)
	if !ok {
		t.Fatalf("expected table, got %s", doc.Children[0].Kind())
	}
	if table.Header == nil || len(table.Header.Cells) != 2 {
		t.Fatalf("expected 2 header cells, got %+v", table.Header)
	}
	if got := doctree.PlainText(table.Header.Cells[0]); got != "Name" {
		t.Errorf("expected header cell %q, got %q", "Name", got)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(table.Rows))
	}
	if table.Alignments[0] != doctree.AlignLeft || table.Alignments[1] != doctree.AlignRight {
		t.Errorf("unexpected alignments %v", table.Alignments)
	}
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			if cell.ColSpan != 1 || cell.RowSpan != 1 {
				t.Errorf("expected unit spans, got %d/%d", cell.ColSpan, cell.RowSpan)
			}
		}
	}
}

func TestMarkdownParser_TaskList(t *testing.T) {
	input := `- [x] done
- [ ] pending
- plain
`
	doc := parseMarkdown(t, input, "tasks.md")

	list, ok := doc.Children[0].(*doctree.List)
	if !ok {
		t.Fatalf("expected list, got %s", doc.Children[0].Kind())
	}
	if list.Ordered {
		t.Error("expected unordered list")
	}
	if len(list.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(list.Items))
	}
	want := []doctree.TaskStatus{doctree.TaskChecked, doctree.TaskUnchecked, doctree.TaskNone}
	for i, item := range list.Items {
		if item.Task != want[i] {
			t.Errorf("item %d: expected task %v, got %v", i, want[i], item.Task)
		}
	}
}

func TestMarkdownParser_Footnotes(t *testing.T) {
	input := `Body text[^note].

[^note]: The footnote body.
`
	doc := parseMarkdown(t, input, "fn.md")

	var ref *doctree.FootnoteReference
	var def *doctree.FootnoteDefinition
	err := doctree.Walk(doc, func(n doctree.Node) (doctree.WalkStatus, error) {
		switch node := n.(type) {
		case *doctree.FootnoteReference:
			ref = node
		case *doctree.FootnoteDefinition:
			def = node
		}
		return doctree.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if ref == nil || def == nil {
		t.Fatalf("expected a reference and a definition, got ref=%v def=%v", ref, def)
	}
	if ref.Identifier != def.Identifier {
		t.Errorf("identifiers differ: ref=%q def=%q", ref.Identifier, def.Identifier)
	}
	if ref.Identifier != "note" {
		t.Errorf("expected identifier %q, got %q", "note", ref.Identifier)
	}
	if got := doctree.PlainText(def); !strings.Contains(got, "The footnote body.") {
		t.Errorf("expected definition body, got %q", got)
	}
}

func TestMarkdownParser_FrontMatter(t *testing.T) {
	input := `---
title: Quarterly Report
author: R. Smith
---

# Intro

Body.
`
	doc := parseMarkdown(t, input, "report.md")

	if got := doc.Metadata["title"]; got != "Quarterly Report" {
		t.Errorf("expected title from front matter, got %v", got)
	}
	if got := doc.Metadata["author"]; got != "R. Smith" {
		t.Errorf("expected author %q, got %v", "R. Smith", got)
	}
	if len(doc.Children) == 0 || doc.Children[0].Kind() != doctree.KindHeading {
		t.Fatalf("expected heading after front matter, got %+v", doc.Children)
	}
}

func TestMarkdownParser_NoFrontMatter(t *testing.T) {
	doc := parseMarkdown(t, "plain body\n", "plain.md")
	if got := doc.Metadata["title"]; got != "plain" {
		t.Errorf("expected filename title, got %v", got)
	}
	if len(doc.Children) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Children))
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	doc := parseMarkdown(t, "", "empty.md")
	if len(doc.Children) != 0 {
		t.Errorf("expected 0 children for empty input, got %d", len(doc.Children))
	}
}

func TestMarkdownParser_ValidTree(t *testing.T) {
	input := `# Title

A [link](https://example.com) and a table:

| h |
|---|
| v |

> quoted

1. first
2. second
`
	doc := parseMarkdown(t, input, "doc.md")

	v := &doctree.Validator{Strict: true}
	if err := v.Validate(doc); err != nil {
		t.Errorf("parsed tree failed validation: %v", err)
	}
}
