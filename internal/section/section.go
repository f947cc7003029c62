// Package section presents a Document's flat child sequence as
// heading-bounded sections. Sections are derived views: every call rescans
// Document.Children, nothing is cached, and callers may freely rebuild the
// tree between calls.
package section

import (
	"fmt"
	"strings"

	"github.com/bgriffith/docforge/internal/doctree"
)

// Section is a heading and the content that belongs to it. Start and End
// index into Document.Children ([Start, End)); Start is the heading's own
// index, or the first content index for a preamble section. All indexing is
// positional — structurally equal but distinct nodes never confuse it.
type Section struct {
	Heading *doctree.Heading // nil for the preamble
	Level   int              // 0 for the preamble
	Content []doctree.Block  // blocks strictly between the heading and the next boundary
	Start   int
	End     int
}

// Title returns the joined inline text of the section heading, or "" for the
// preamble.
func (s Section) Title() string {
	if s.Heading == nil {
		return ""
	}
	return doctree.PlainText(s.Heading)
}

// Words counts the words in the section, heading included.
func (s Section) Words() int {
	total := doctree.WordCountBlocks(s.Content)
	if s.Heading != nil {
		total += doctree.WordCount(s.Heading)
	}
	return total
}

// Blocks returns the section's span of the child sequence: heading first if
// present, then content.
func (s Section) Blocks() []doctree.Block {
	if s.Heading == nil {
		return s.Content
	}
	out := make([]doctree.Block, 0, len(s.Content)+1)
	out = append(out, s.Heading)
	return append(out, s.Content...)
}

// AtLevel partitions the document at every heading whose level equals level:
// a gapless, overlap-free cover of Children in original order. Content under
// deeper or shallower headings between two boundaries stays with the
// preceding boundary. A leading preamble section (nil Heading) is emitted
// when content precedes the first boundary.
func AtLevel(doc *doctree.Document, level int) []Section {
	var sections []Section
	var current *Section

	for i, child := range doc.Children {
		h, ok := child.(*doctree.Heading)
		if ok && h.Level == level {
			if current != nil {
				current.End = i
				sections = append(sections, *current)
			} else if i > 0 {
				sections = append(sections, Section{
					Content: doc.Children[:i],
					Start:   0,
					End:     i,
				})
			}
			current = &Section{Heading: h, Level: h.Level, Start: i}
			continue
		}
		if current != nil {
			current.Content = append(current.Content, child)
		}
	}

	if current != nil {
		current.End = len(doc.Children)
		sections = append(sections, *current)
	} else if len(doc.Children) > 0 {
		sections = append(sections, Section{
			Content: doc.Children,
			Start:   0,
			End:     len(doc.Children),
		})
	}

	return sections
}

// All returns one section per heading, at the heading's own level. A
// section's extent runs until the next heading of equal or shallower level,
// so content under deeper sub-headings belongs to the parent section and
// sections nest rather than tile.
func All(doc *doctree.Document) []Section {
	var sections []Section
	for i, child := range doc.Children {
		h, ok := child.(*doctree.Heading)
		if !ok {
			continue
		}
		end := len(doc.Children)
		for j := i + 1; j < len(doc.Children); j++ {
			if next, ok := doc.Children[j].(*doctree.Heading); ok && next.Level <= h.Level {
				end = j
				break
			}
		}
		sections = append(sections, Section{
			Heading: h,
			Level:   h.Level,
			Content: doc.Children[i+1 : end],
			Start:   i,
			End:     end,
		})
	}
	return sections
}

// TopLevel partitions the document at the shallowest heading level present.
// It returns nil when the document has no headings.
func TopLevel(doc *doctree.Document) []Section {
	min := 0
	for _, child := range doc.Children {
		if h, ok := child.(*doctree.Heading); ok {
			if min == 0 || h.Level < min {
				min = h.Level
			}
		}
	}
	if min == 0 {
		return nil
	}
	return AtLevel(doc, min)
}

// Target identifies one section, either by heading text or by 0-based index
// into the section list.
type Target struct {
	Title         string
	Index         int
	ByIndex       bool
	CaseSensitive bool
}

// ByTitle targets a section by heading text, case-insensitively.
func ByTitle(title string) Target { return Target{Title: title} }

// ByIndex targets a section by its 0-based position.
func ByIndex(i int) Target { return Target{Index: i, ByIndex: true} }

func (t Target) String() string {
	if t.ByIndex {
		return fmt.Sprintf("index %d", t.Index)
	}
	return fmt.Sprintf("%q", t.Title)
}

// Resolve finds the section a target names. Unknown, ambiguous and
// out-of-range targets fail with a descriptive error rather than silently
// acting on the wrong section.
func Resolve(sections []Section, target Target) (int, error) {
	if target.ByIndex {
		if target.Index < 0 || target.Index >= len(sections) {
			return 0, fmt.Errorf("section index %d out of range: document has %d sections", target.Index, len(sections))
		}
		return target.Index, nil
	}

	match := -1
	count := 0
	for i, s := range sections {
		title := s.Title()
		equal := title == target.Title
		if !target.CaseSensitive {
			equal = strings.EqualFold(title, target.Title)
		}
		if equal {
			count++
			if match < 0 {
				match = i
			}
		}
	}
	switch {
	case count == 0:
		return 0, fmt.Errorf("no section with heading %q", target.Title)
	case count > 1:
		return 0, fmt.Errorf("heading %q is ambiguous: %d sections match, target one by index", target.Title, count)
	}
	return match, nil
}

func resolveAll(doc *doctree.Document, target Target) (Section, error) {
	sections := All(doc)
	idx, err := Resolve(sections, target)
	if err != nil {
		return Section{}, err
	}
	return sections[idx], nil
}
