package split

import (
	"fmt"
	"strings"

	"github.com/bgriffith/docforge/internal/doctree"
	"github.com/bgriffith/docforge/internal/section"
)

// Result is one self-contained document produced by the splitter.
type Result struct {
	Document  *doctree.Document
	Index     int    // 1-based part number
	Title     string // joined heading text, "Preamble", "Part n", or ""
	WordCount int
	Metadata  map[string]string
}

// Run dispatches a parsed spec to its strategy.
func Run(doc *doctree.Document, sp Spec) ([]Result, error) {
	switch sp.Strategy {
	case StrategyHeading:
		return ByHeadingLevel(doc, sp.Level, true)
	case StrategyLength:
		return ByWordCount(doc, sp.Words)
	case StrategyParts:
		return ByParts(doc, sp.Parts)
	case StrategyDelimiter:
		return ByDelimiter(doc, sp.Delimiter)
	case StrategyAuto:
		target := sp.Words
		if target <= 0 {
			target = DefaultAutoTargetWords
		}
		return Auto(doc, target)
	}
	return nil, fmt.Errorf("unknown split strategy %q", string(sp.Strategy))
}

// Whole wraps an unsplit document as a single result. Callers use it for
// the "none" keyword, which disables splitting and is not a Spec.
func Whole(doc *doctree.Document) Result {
	title, _ := doc.Metadata["title"].(string)
	return newResult(doc, doc.Children, 1, title, "none")
}

// ByHeadingLevel splits at every heading of exactly the requested level.
// Each part carries its heading followed by everything up to the next
// same-level heading, so concatenating the parts in order reproduces the
// original child sequence. Content before the first heading becomes the
// "Preamble" part, dropped when includePreamble is false. A document with no
// matching headings yields a single whole-document part tagged with
// reason=no_headings_found.
func ByHeadingLevel(doc *doctree.Document, level int, includePreamble bool) ([]Result, error) {
	if level < 1 || level > 6 {
		return nil, fmt.Errorf("heading level must be between 1 and 6, got %d", level)
	}
	strategy := fmt.Sprintf("h%d", level)

	sections := section.AtLevel(doc, level)
	if !hasHeadings(sections) {
		part := newResult(doc, doc.Children, 1, "", strategy)
		part.Metadata["reason"] = "no_headings_found"
		return []Result{part}, nil
	}

	var results []Result
	for _, s := range sections {
		title := s.Title()
		if s.Heading == nil {
			if !includePreamble {
				continue
			}
			title = "Preamble"
		}
		results = append(results, newResult(doc, s.Blocks(), len(results)+1, title, strategy))
	}
	return results, nil
}

// ByDelimiter ends the current part at every block whose trimmed plain text
// equals the delimiter literal. Delimiter blocks themselves are dropped, and
// delimiters at the start or end (or back to back) never produce empty
// parts. Parts are titled "Part 1", "Part 2", ... in order.
func ByDelimiter(doc *doctree.Document, delimiter string) ([]Result, error) {
	if delimiter == "" {
		return nil, fmt.Errorf("delimiter must not be empty")
	}

	var results []Result
	var current []doctree.Block

	flush := func() {
		if len(current) == 0 {
			return
		}
		idx := len(results) + 1
		results = append(results, newResult(doc, current, idx, fmt.Sprintf("Part %d", idx), string(StrategyDelimiter)))
		current = nil
	}

	for _, child := range doc.Children {
		if strings.TrimSpace(doctree.PlainText(child)) == delimiter {
			flush()
			continue
		}
		current = append(current, child)
	}
	flush()

	if len(results) == 0 {
		// Empty document, or nothing but delimiter blocks.
		results = append(results, newResult(doc, nil, 1, "Part 1", string(StrategyDelimiter)))
	}
	return results, nil
}

func hasHeadings(sections []section.Section) bool {
	for _, s := range sections {
		if s.Heading != nil {
			return true
		}
	}
	return false
}

// newResult wraps a block span as a self-contained document, inheriting the
// source document's metadata.
func newResult(src *doctree.Document, blocks []doctree.Block, index int, title, strategy string) Result {
	d := doctree.NewDocument(blocks...)
	d.Metadata = cloneMeta(src.Metadata)
	return Result{
		Document:  d,
		Index:     index,
		Title:     title,
		WordCount: doctree.WordCountBlocks(blocks),
		Metadata:  map[string]string{"strategy": strategy},
	}
}

func cloneMeta(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
