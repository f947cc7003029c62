package section

import (
	"fmt"

	"github.com/bgriffith/docforge/internal/doctree"
)

// Position selects where InsertInto places new blocks within a section.
type Position string

const (
	// PositionStart inserts at the start of the section's content.
	PositionStart Position = "start"
	// PositionEnd inserts after the section's last content block.
	PositionEnd Position = "end"
	// PositionAfterHeading inserts immediately after the section heading.
	// For heading sections this is the same slot as PositionStart; both
	// names exist because editing callers think in either vocabulary.
	PositionAfterHeading Position = "after_heading"
)

// Extract returns the targeted section as a self-contained document: the
// heading followed by its content. The source document is not modified.
func Extract(doc *doctree.Document, target Target) (*doctree.Document, error) {
	s, err := resolveAll(doc, target)
	if err != nil {
		return nil, err
	}
	out := doctree.NewDocument(s.Blocks()...)
	out.Metadata = doc.Metadata
	return out, nil
}

// Replace returns a new document with the targeted section's span (heading
// and content) replaced by blocks.
func Replace(doc *doctree.Document, target Target, blocks []doctree.Block) (*doctree.Document, error) {
	s, err := resolveAll(doc, target)
	if err != nil {
		return nil, err
	}
	return spliceChildren(doc, s.Start, s.End, blocks), nil
}

// Remove returns a new document with the targeted section's span removed.
func Remove(doc *doctree.Document, target Target) (*doctree.Document, error) {
	s, err := resolveAll(doc, target)
	if err != nil {
		return nil, err
	}
	return spliceChildren(doc, s.Start, s.End, nil), nil
}

// InsertInto returns a new document with blocks inserted inside the targeted
// section at the given position.
func InsertInto(doc *doctree.Document, target Target, pos Position, blocks ...doctree.Block) (*doctree.Document, error) {
	s, err := resolveAll(doc, target)
	if err != nil {
		return nil, err
	}
	var at int
	switch pos {
	case PositionStart, PositionAfterHeading:
		at = s.Start + 1
	case PositionEnd:
		at = s.End
	default:
		return nil, fmt.Errorf("unknown insert position %q (want start, end or after_heading)", string(pos))
	}
	return spliceChildren(doc, at, at, blocks), nil
}

// AddBefore returns a new document with blocks inserted immediately before
// the targeted section's heading.
func AddBefore(doc *doctree.Document, target Target, blocks ...doctree.Block) (*doctree.Document, error) {
	s, err := resolveAll(doc, target)
	if err != nil {
		return nil, err
	}
	return spliceChildren(doc, s.Start, s.Start, blocks), nil
}

// AddAfter returns a new document with blocks inserted immediately after the
// targeted section's extent.
func AddAfter(doc *doctree.Document, target Target, blocks ...doctree.Block) (*doctree.Document, error) {
	s, err := resolveAll(doc, target)
	if err != nil {
		return nil, err
	}
	return spliceChildren(doc, s.End, s.End, blocks), nil
}

// SplitBySections returns one self-contained document per top-level section.
// A document with no headings yields a single copy of itself.
func SplitBySections(doc *doctree.Document, includePreamble bool) []*doctree.Document {
	sections := TopLevel(doc)
	if sections == nil {
		out := doctree.NewDocument(doc.Children...)
		out.Metadata = doc.Metadata
		return []*doctree.Document{out}
	}

	var docs []*doctree.Document
	for _, s := range sections {
		if s.Heading == nil && !includePreamble {
			continue
		}
		d := doctree.NewDocument(s.Blocks()...)
		d.Metadata = doc.Metadata
		docs = append(docs, d)
	}
	return docs
}

// spliceChildren rebuilds the child sequence with [from, to) replaced by
// insert, leaving the input document untouched.
func spliceChildren(doc *doctree.Document, from, to int, insert []doctree.Block) *doctree.Document {
	children := make([]doctree.Block, 0, len(doc.Children)-(to-from)+len(insert))
	children = append(children, doc.Children[:from]...)
	children = append(children, insert...)
	children = append(children, doc.Children[to:]...)
	out := doctree.NewDocument(children...)
	out.Metadata = doc.Metadata
	out.Source = doc.Source
	return out
}
