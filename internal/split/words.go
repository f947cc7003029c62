package split

import (
	"fmt"

	"github.com/bgriffith/docforge/internal/doctree"
	"github.com/bgriffith/docforge/internal/section"
)

// unit is one indivisible span the greedy accumulator works over: a whole
// section, or a single block when the document has no headings.
type unit struct {
	title  string
	blocks []doctree.Block
	words  int
}

// ByWordCount greedily accumulates whole top-level sections into parts,
// closing a part when the next section would push it past target. Sections
// are never split, so a single section larger than target becomes its own
// oversized part. A document with no headings yields one whole-document part
// tagged with reason=no_sections.
func ByWordCount(doc *doctree.Document, target int) ([]Result, error) {
	if target <= 0 {
		return nil, fmt.Errorf("target word count must be positive, got %d", target)
	}

	units := sectionUnits(doc)
	if units == nil {
		part := newResult(doc, doc.Children, 1, "", string(StrategyLength))
		part.Metadata["reason"] = "no_sections"
		return []Result{part}, nil
	}

	return accumulate(doc, units, target, string(StrategyLength)), nil
}

// ByParts computes total words divided by count as a per-part target and
// reuses the greedy word-count accumulation; balance is whatever greedy
// sequential packing produces, not an optimal weighted partition. A document
// with no headings is packed block by block so the part count stays
// meaningful; an empty document yields exactly one empty part.
func ByParts(doc *doctree.Document, count int) ([]Result, error) {
	if count <= 0 {
		return nil, fmt.Errorf("part count must be positive, got %d", count)
	}
	if len(doc.Children) == 0 {
		return []Result{newResult(doc, nil, 1, "Part 1", string(StrategyParts))}, nil
	}

	units := sectionUnits(doc)
	if units == nil {
		units = blockUnits(doc)
	}

	target := doctree.WordCount(doc) / count
	if target < 1 {
		target = 1
	}
	return accumulate(doc, units, target, string(StrategyParts)), nil
}

// accumulate packs units into parts in order, closing the open part whenever
// the next unit would overshoot the target. Word totals are conserved
// exactly: every block lands in exactly one part.
func accumulate(doc *doctree.Document, units []unit, target int, strategy string) []Result {
	var results []Result
	var blocks []doctree.Block
	var title string
	words := 0

	flush := func() {
		if len(blocks) == 0 {
			return
		}
		idx := len(results) + 1
		if title == "" {
			title = fmt.Sprintf("Part %d", idx)
		}
		results = append(results, newResult(doc, blocks, idx, title, strategy))
		blocks = nil
		title = ""
		words = 0
	}

	for _, u := range units {
		if words > 0 && words+u.words > target {
			flush()
		}
		if len(blocks) == 0 {
			title = u.title
		}
		blocks = append(blocks, u.blocks...)
		words += u.words
	}
	flush()

	if len(results) == 0 {
		results = append(results, newResult(doc, nil, 1, "Part 1", strategy))
	}
	return results
}

// sectionUnits partitions the document at its shallowest heading level, one
// unit per section. Nil means the document has no headings at all.
func sectionUnits(doc *doctree.Document) []unit {
	sections := section.TopLevel(doc)
	if sections == nil {
		return nil
	}
	units := make([]unit, 0, len(sections))
	for _, s := range sections {
		title := s.Title()
		if s.Heading == nil {
			title = "Preamble"
		}
		units = append(units, unit{title: title, blocks: s.Blocks(), words: s.Words()})
	}
	return units
}

// blockUnits treats every top-level block as its own unit.
func blockUnits(doc *doctree.Document) []unit {
	units := make([]unit, 0, len(doc.Children))
	for _, b := range doc.Children {
		units = append(units, unit{blocks: []doctree.Block{b}, words: doctree.WordCount(b)})
	}
	return units
}
