package doctree

import (
	"strings"
	"testing"
)

func TestValidator_EmptyFootnoteIdentifier(t *testing.T) {
	doc := NewDocument(
		&Paragraph{Content: []Inline{
			&Text{Value: "see"},
			&FootnoteReference{Identifier: ""},
		}},
	)

	v := &Validator{}
	if err := v.Validate(doc); err != nil {
		t.Fatalf("non-strict validation must not fail: %v", err)
	}
	if len(v.Findings) != 1 {
		t.Fatalf("expected exactly 1 finding, got %d: %v", len(v.Findings), v.Findings)
	}
	if !strings.Contains(v.Findings[0], "identifier") {
		t.Errorf("finding should mention the identifier, got %q", v.Findings[0])
	}
}

func TestValidator_StrictPromotesToError(t *testing.T) {
	doc := NewDocument(
		&Paragraph{Content: []Inline{&FootnoteReference{Identifier: ""}}},
	)

	v := &Validator{Strict: true}
	err := v.Validate(doc)
	if err == nil {
		t.Fatal("strict validation should fail on the first finding")
	}
	if !strings.Contains(err.Error(), "identifier") {
		t.Errorf("error should mention the identifier, got %q", err)
	}
}

func TestValidator_UncheckedConstructionPaths(t *testing.T) {
	// Struct literals bypass NewHeading and NewTableCell; the validator is
	// the second line of defense.
	doc := NewDocument(
		&Heading{Level: 0, Content: []Inline{&Text{Value: "bad"}}},
		&Table{
			Rows: []*TableRow{
				{Cells: []*TableCell{{Content: []Inline{&Text{Value: "x"}}}}},
			},
		},
	)

	v := &Validator{}
	if err := v.Validate(doc); err != nil {
		t.Fatalf("non-strict validation must not fail: %v", err)
	}
	if len(v.Findings) != 3 {
		t.Fatalf("expected 3 findings (level, colspan, rowspan), got %d: %v", len(v.Findings), v.Findings)
	}
	if !strings.Contains(v.Findings[0], "heading level 0") {
		t.Errorf("first finding should be the heading level, got %q", v.Findings[0])
	}
	if !strings.Contains(v.Findings[1], "colspan") || !strings.Contains(v.Findings[2], "rowspan") {
		t.Errorf("span findings missing: %v", v.Findings[1:])
	}
}

func TestValidator_CleanTreeHasNoFindings(t *testing.T) {
	h, _ := NewHeading(2, &Text{Value: "ok"})
	doc := NewDocument(
		h,
		&Paragraph{Content: []Inline{&FootnoteReference{Identifier: "n1"}}},
		&FootnoteDefinition{Identifier: "n1", Children: []Block{
			&Paragraph{Content: []Inline{&Text{Value: "note"}}},
		}},
	)

	v := &Validator{Strict: true}
	if err := v.Validate(doc); err != nil {
		t.Fatalf("clean tree failed strict validation: %v", err)
	}
	if len(v.Findings) != 0 {
		t.Errorf("unexpected findings: %v", v.Findings)
	}
}
