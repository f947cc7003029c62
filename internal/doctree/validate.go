package doctree

import "fmt"

// Validator is a read-only visitor that re-checks the invariants literal
// construction can bypass: out-of-range heading levels, empty footnote
// identifiers, non-positive table cell spans and unknown column alignments.
//
// Findings are soft by default and accumulate in order of discovery. With
// Strict set, the first finding aborts the traversal as an error.
type Validator struct {
	Strict   bool
	Findings []string
}

// Validate walks the tree rooted at n and collects findings. Under Strict the
// returned error is the first finding; otherwise the error is always nil and
// callers inspect Findings.
func (v *Validator) Validate(n Node) error {
	return n.Accept(v)
}

func (v *Validator) record(format string, args ...any) error {
	finding := fmt.Sprintf(format, args...)
	if v.Strict {
		return fmt.Errorf("validation: %s", finding)
	}
	v.Findings = append(v.Findings, finding)
	return nil
}

func (v *Validator) VisitDocument(n *Document) error { return WalkChildren(v, n) }

func (v *Validator) VisitParagraph(n *Paragraph) error { return WalkChildren(v, n) }

func (v *Validator) VisitHeading(n *Heading) error {
	if n.Level < 1 || n.Level > 6 {
		if err := v.record("heading level %d is out of range [1,6]", n.Level); err != nil {
			return err
		}
	}
	return WalkChildren(v, n)
}

func (v *Validator) VisitCodeBlock(*CodeBlock) error { return nil }

func (v *Validator) VisitBlockQuote(n *BlockQuote) error { return WalkChildren(v, n) }

func (v *Validator) VisitList(n *List) error { return WalkChildren(v, n) }

func (v *Validator) VisitListItem(n *ListItem) error { return WalkChildren(v, n) }

func (v *Validator) VisitTable(n *Table) error {
	for i, a := range n.Alignments {
		switch a {
		case AlignNone, AlignLeft, AlignCenter, AlignRight:
		default:
			if err := v.record("table alignment %d has unknown value %q", i, string(a)); err != nil {
				return err
			}
		}
	}
	return WalkChildren(v, n)
}

func (v *Validator) VisitTableRow(n *TableRow) error { return WalkChildren(v, n) }

func (v *Validator) VisitTableCell(n *TableCell) error {
	if n.ColSpan < 1 {
		if err := v.record("table cell colspan must be >= 1, got %d", n.ColSpan); err != nil {
			return err
		}
	}
	if n.RowSpan < 1 {
		if err := v.record("table cell rowspan must be >= 1, got %d", n.RowSpan); err != nil {
			return err
		}
	}
	return WalkChildren(v, n)
}

func (v *Validator) VisitThematicBreak(*ThematicBreak) error { return nil }

func (v *Validator) VisitFootnoteDefinition(n *FootnoteDefinition) error {
	if n.Identifier == "" {
		if err := v.record("footnote definition has an empty identifier"); err != nil {
			return err
		}
	}
	return WalkChildren(v, n)
}

func (v *Validator) VisitDefinitionList(n *DefinitionList) error { return WalkChildren(v, n) }

func (v *Validator) VisitDefinitionItem(n *DefinitionItem) error { return WalkChildren(v, n) }

func (v *Validator) VisitMathBlock(*MathBlock) error { return nil }

func (v *Validator) VisitRawBlock(*RawBlock) error { return nil }

func (v *Validator) VisitText(*Text) error { return nil }

func (v *Validator) VisitCodeSpan(*CodeSpan) error { return nil }

func (v *Validator) VisitEmphasis(n *Emphasis) error { return WalkChildren(v, n) }

func (v *Validator) VisitStrong(n *Strong) error { return WalkChildren(v, n) }

func (v *Validator) VisitStrikethrough(n *Strikethrough) error { return WalkChildren(v, n) }

func (v *Validator) VisitLink(n *Link) error { return WalkChildren(v, n) }

func (v *Validator) VisitImage(n *Image) error { return WalkChildren(v, n) }

func (v *Validator) VisitHardBreak(*HardBreak) error { return nil }

func (v *Validator) VisitSoftBreak(*SoftBreak) error { return nil }

func (v *Validator) VisitFootnoteReference(n *FootnoteReference) error {
	if n.Identifier == "" {
		return v.record("footnote reference has an empty identifier")
	}
	return nil
}

func (v *Validator) VisitMath(*Math) error { return nil }

func (v *Validator) VisitRawInline(*RawInline) error { return nil }
