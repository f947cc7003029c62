package split

import (
	"strings"
	"testing"

	"github.com/bgriffith/docforge/internal/doctree"
)

func heading(t *testing.T, level int, title string) *doctree.Heading {
	t.Helper()
	h, err := doctree.NewHeading(level, &doctree.Text{Value: title})
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func para(text string) *doctree.Paragraph {
	return &doctree.Paragraph{Content: []doctree.Inline{&doctree.Text{Value: text}}}
}

// pre, H1 Intro, a, H1 Methods, b, H1 Results, c
func reportDoc(t *testing.T) *doctree.Document {
	t.Helper()
	return doctree.NewDocument(
		para("pre"),
		heading(t, 1, "Intro"),
		para("a"),
		heading(t, 1, "Methods"),
		para("b"),
		heading(t, 1, "Results"),
		para("c"),
	)
}

func TestByHeadingLevel_TitlesAndContent(t *testing.T) {
	doc := reportDoc(t)

	results, err := ByHeadingLevel(doc, 1, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 parts, got %d", len(results))
	}

	wantTitles := []string{"Preamble", "Intro", "Methods", "Results"}
	for i, r := range results {
		if r.Title != wantTitles[i] {
			t.Errorf("part %d title = %q, want %q", i, r.Title, wantTitles[i])
		}
		if r.Index != i+1 {
			t.Errorf("part %d index = %d, want %d", i, r.Index, i+1)
		}
		paragraphs := 0
		for _, b := range r.Document.Children {
			if b.Kind() == doctree.KindParagraph {
				paragraphs++
			}
		}
		if paragraphs != 1 {
			t.Errorf("part %q holds %d paragraphs, want 1", r.Title, paragraphs)
		}
	}
}

// Concatenating every part's children in order must reproduce the original
// child sequence exactly, with no gaps or overlaps.
func TestByHeadingLevel_Reassembly(t *testing.T) {
	doc := doctree.NewDocument(
		para("pre"),
		heading(t, 1, "A"),
		para("a"),
		heading(t, 2, "A sub"),
		para("sub content"),
		heading(t, 1, "B"),
		para("b"),
	)

	results, err := ByHeadingLevel(doc, 1, true)
	if err != nil {
		t.Fatal(err)
	}

	var all []doctree.Block
	for _, r := range results {
		all = append(all, r.Document.Children...)
	}
	if len(all) != len(doc.Children) {
		t.Fatalf("reassembled %d blocks, want %d", len(all), len(doc.Children))
	}
	for i := range all {
		if all[i] != doc.Children[i] {
			t.Errorf("block %d out of order after reassembly", i)
		}
	}
}

func TestByHeadingLevel_ExcludePreamble(t *testing.T) {
	doc := reportDoc(t)

	results, err := ByHeadingLevel(doc, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 parts without preamble, got %d", len(results))
	}
	if results[0].Title != "Intro" || results[0].Index != 1 {
		t.Errorf("first part = %q (index %d)", results[0].Title, results[0].Index)
	}
}

func TestByHeadingLevel_NoMatchingHeadings(t *testing.T) {
	doc := doctree.NewDocument(para("just text"), para("more text"))

	results, err := ByHeadingLevel(doc, 2, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected a single wrapping part, got %d", len(results))
	}
	r := results[0]
	if r.Metadata["reason"] != "no_headings_found" {
		t.Errorf("reason = %q, want no_headings_found", r.Metadata["reason"])
	}
	if len(r.Document.Children) != 2 {
		t.Errorf("wrapping part should hold the whole document")
	}
}

func TestByHeadingLevel_BadLevel(t *testing.T) {
	doc := reportDoc(t)
	if _, err := ByHeadingLevel(doc, 0, true); err == nil {
		t.Error("level 0 should fail")
	}
	if _, err := ByHeadingLevel(doc, 7, true); err == nil {
		t.Error("level 7 should fail")
	}
}

func TestByDelimiter_ThreeParts(t *testing.T) {
	doc := doctree.NewDocument(
		para("first block"),
		para("---"),
		para("second block"),
		para("---"),
		para("third block"),
	)

	results, err := ByDelimiter(doc, "---")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(results))
	}
	for i, r := range results {
		want := []string{"Part 1", "Part 2", "Part 3"}[i]
		if r.Title != want {
			t.Errorf("part %d title = %q, want %q", i, r.Title, want)
		}
		if len(r.Document.Children) != 1 {
			t.Errorf("part %d holds %d blocks, want 1", i, len(r.Document.Children))
		}
	}
}

func TestByDelimiter_EdgePlacement(t *testing.T) {
	doc := doctree.NewDocument(
		para("***"),
		para("content"),
		para("***"),
	)

	results, err := ByDelimiter(doc, "***")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("leading/trailing delimiters must not create empty parts, got %d parts", len(results))
	}
	if got := doctree.PlainText(results[0].Document); got != "content" {
		t.Errorf("part text = %q", got)
	}
}

func TestByDelimiter_NoMatch(t *testing.T) {
	doc := doctree.NewDocument(para("nothing here"))

	results, err := ByDelimiter(doc, "---")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Title != "Part 1" {
		t.Fatalf("expected single Part 1, got %+v", results)
	}
}

func TestByDelimiter_Empty(t *testing.T) {
	doc := doctree.NewDocument(para("x"))
	if _, err := ByDelimiter(doc, ""); err == nil || !strings.Contains(err.Error(), "empty") {
		t.Errorf("empty delimiter should fail, got %v", err)
	}
}

func TestByDelimiter_SurroundingWhitespaceIgnored(t *testing.T) {
	doc := doctree.NewDocument(
		para("a"),
		para("  --- "),
		para("b"),
	)
	results, err := ByDelimiter(doc, "---")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(results))
	}
}

func TestWhole_SingleUnsplitResult(t *testing.T) {
	doc := reportDoc(t)
	doc.Metadata = map[string]any{"title": "Annual Report"}

	r := Whole(doc)
	if r.Index != 1 {
		t.Errorf("index = %d, want 1", r.Index)
	}
	if r.Title != "Annual Report" {
		t.Errorf("title = %q", r.Title)
	}
	if len(r.Document.Children) != len(doc.Children) {
		t.Errorf("children = %d, want %d", len(r.Document.Children), len(doc.Children))
	}
	if r.Metadata["strategy"] != "none" {
		t.Errorf("strategy = %q, want none", r.Metadata["strategy"])
	}
	if r.WordCount != doctree.WordCountBlocks(doc.Children) {
		t.Errorf("word count = %d", r.WordCount)
	}
}

func TestRun_DispatchesSpec(t *testing.T) {
	doc := reportDoc(t)

	sp, err := ParseSpec("h1")
	if err != nil {
		t.Fatal(err)
	}
	results, err := Run(doc, sp)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Errorf("h1 run produced %d parts, want 4", len(results))
	}
	if results[1].Metadata["strategy"] != "h1" {
		t.Errorf("strategy = %q, want h1", results[1].Metadata["strategy"])
	}
}
