package doctree

import (
	"errors"
	"strings"
	"testing"
)

func TestNewHeading_LevelBounds(t *testing.T) {
	for level := 1; level <= 6; level++ {
		h, err := NewHeading(level, &Text{Value: "ok"})
		if err != nil {
			t.Fatalf("level %d: unexpected error: %v", level, err)
		}
		if h.Level != level {
			t.Errorf("level %d: got %d", level, h.Level)
		}
	}

	for _, level := range []int{0, -1, 7, 100} {
		_, err := NewHeading(level)
		if err == nil {
			t.Fatalf("level %d: expected construction error", level)
		}
		var ce *ConstructionError
		if !errors.As(err, &ce) {
			t.Errorf("level %d: expected *ConstructionError, got %T", level, err)
		}
		if !strings.Contains(err.Error(), "between 1 and 6") {
			t.Errorf("level %d: error should name the bounds, got %q", level, err)
		}
	}
}

func TestPlainText_JoinsBlocksWithBlankLines(t *testing.T) {
	doc := NewDocument(
		&Paragraph{Content: []Inline{&Text{Value: "first"}}},
		&Paragraph{Content: []Inline{
			&Text{Value: "second"},
			&SoftBreak{},
			&Strong{Content: []Inline{&Text{Value: "bold"}}},
		}},
	)

	got := PlainText(doc)
	want := "first\n\nsecond bold"
	if got != want {
		t.Errorf("PlainText = %q, want %q", got, want)
	}
}

func TestWordCount_CoversNestedContent(t *testing.T) {
	item := &ListItem{Children: []Block{
		&Paragraph{Content: []Inline{&Text{Value: "three little words"}}},
	}}
	doc := NewDocument(
		&Paragraph{Content: []Inline{&Text{Value: "one two"}}},
		&List{Items: []*ListItem{item}},
	)

	if got := WordCount(doc); got != 5 {
		t.Errorf("WordCount = %d, want 5", got)
	}
}

func TestWalk_SkipChildren(t *testing.T) {
	h, _ := NewHeading(2, &Text{Value: "skipped"})
	doc := NewDocument(
		h,
		&Paragraph{Content: []Inline{&Text{Value: "visited"}}},
	)

	var visited []string
	err := Walk(doc, func(n Node) (WalkStatus, error) {
		if n.Kind() == KindHeading {
			return WalkSkipChildren, nil
		}
		if txt, ok := n.(*Text); ok {
			visited = append(visited, txt.Value)
		}
		return WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(visited) != 1 || visited[0] != "visited" {
		t.Errorf("expected only paragraph text visited, got %v", visited)
	}
}

func TestWalk_DeterministicPreOrder(t *testing.T) {
	h, _ := NewHeading(1, &Text{Value: "title"})
	doc := NewDocument(
		h,
		&Paragraph{Content: []Inline{&Text{Value: "a"}, &Text{Value: "b"}}},
	)

	var kinds []Kind
	Walk(doc, func(n Node) (WalkStatus, error) {
		kinds = append(kinds, n.Kind())
		return WalkContinue, nil
	})

	want := []Kind{KindDocument, KindHeading, KindText, KindParagraph, KindText, KindText}
	if len(kinds) != len(want) {
		t.Fatalf("visited %d nodes, want %d", len(kinds), len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("visit %d: got %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestCodec_RoundTripRichDocument(t *testing.T) {
	h1, _ := NewHeading(1, &Emphasis{Content: []Inline{&Text{Value: "Title"}}})
	doc := NewDocument(
		h1,
		&Paragraph{Content: []Inline{
			&Text{Value: "intro "},
			&Link{Destination: "https://example.com", Title: "ex", Content: []Inline{&Text{Value: "link"}}},
			&FootnoteReference{Identifier: "fn1"},
		}},
		&List{Ordered: true, Start: 3, Items: []*ListItem{
			{Task: TaskChecked, Children: []Block{
				&Paragraph{Content: []Inline{&Text{Value: "done"}}},
			}},
		}},
		&Table{
			Header:     &TableRow{Cells: []*TableCell{NewTableCell(&Text{Value: "h"})}},
			Rows:       []*TableRow{{Cells: []*TableCell{NewTableCell(&Text{Value: "d"})}}},
			Alignments: []Alignment{AlignCenter},
		},
		&FootnoteDefinition{Identifier: "fn1", Children: []Block{
			&Paragraph{Content: []Inline{&Text{Value: "note"}}},
		}},
		&DefinitionList{Items: []*DefinitionItem{
			{
				Term:         []Inline{&Text{Value: "term"}},
				Descriptions: [][]Block{{&Paragraph{Content: []Inline{&Text{Value: "desc"}}}}},
			},
		}},
		&CodeBlock{Language: "go", Literal: "x := 1\n"},
	)
	doc.SetMeta("source_file", "sample.md")

	first, err := Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := Unmarshal(first)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	second, err := Marshal(decoded)
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("round trip not stable:\nfirst:  %s\nsecond: %s", first, second)
	}
	if PlainText(decoded) != PlainText(doc) {
		t.Errorf("plain text changed across round trip")
	}
}

func TestCodec_RejectsInvalidHeadingLevel(t *testing.T) {
	_, err := Unmarshal([]byte(`{"kind":"document","children":[{"kind":"heading","level":9}]}`))
	if err == nil {
		t.Fatal("expected decode error for heading level 9")
	}
	if !strings.Contains(err.Error(), "between 1 and 6") {
		t.Errorf("error should name the level bounds, got %q", err)
	}
}

func TestCodec_RejectsInlineDocumentChild(t *testing.T) {
	_, err := Unmarshal([]byte(`{"kind":"document","children":[{"kind":"text","value":"x"}]}`))
	if err == nil {
		t.Fatal("expected decode error for inline document child")
	}
	if !strings.Contains(err.Error(), "not a block") {
		t.Errorf("error should name the violated invariant, got %q", err)
	}
}

func TestCodec_UnknownKind(t *testing.T) {
	_, err := Unmarshal([]byte(`{"kind":"hologram"}`))
	if err == nil || !strings.Contains(err.Error(), "hologram") {
		t.Errorf("expected error naming the unknown kind, got %v", err)
	}
}
