package split

import (
	"fmt"

	"github.com/bgriffith/docforge/internal/doctree"
	"github.com/bgriffith/docforge/internal/section"
)

// Auto picks a strategy from the document shape: H1 sections when the
// largest stays within roughly twice the target, H2 sections when H1 parts
// would run oversized, and plain word-count packing otherwise. Every result
// records the chosen branch in metadata as strategy=auto:h1, auto:h2 or
// auto:word_count.
func Auto(doc *doctree.Document, targetWords int) ([]Result, error) {
	if targetWords <= 0 {
		return nil, fmt.Errorf("target word count must be positive, got %d", targetWords)
	}

	for _, level := range []int{1, 2} {
		if fitsAtLevel(doc, level, targetWords) {
			results, err := ByHeadingLevel(doc, level, true)
			if err != nil {
				return nil, err
			}
			return tagStrategy(results, fmt.Sprintf("auto:h%d", level)), nil
		}
	}

	results, err := ByWordCount(doc, targetWords)
	if err != nil {
		return nil, err
	}
	return tagStrategy(results, "auto:word_count"), nil
}

// fitsAtLevel reports whether headings of the given level exist and the
// largest section they bound stays within twice the target.
func fitsAtLevel(doc *doctree.Document, level, targetWords int) bool {
	sections := section.AtLevel(doc, level)
	found := false
	for _, s := range sections {
		if s.Heading == nil {
			continue
		}
		found = true
		if s.Words() > 2*targetWords {
			return false
		}
	}
	return found
}

func tagStrategy(results []Result, strategy string) []Result {
	for i := range results {
		results[i].Metadata["strategy"] = strategy
	}
	return results
}
