package section

import (
	"fmt"

	"github.com/bgriffith/docforge/internal/doctree"
)

// TOCStyle selects the list flavor GenerateTOC produces.
type TOCStyle string

const (
	TOCBullet   TOCStyle = "bullet"
	TOCNumbered TOCStyle = "numbered"
)

// GenerateTOC builds a nested table-of-contents list from every heading whose
// level is at most maxLevel, in document order. Nesting follows the heading
// outline: a deeper heading's entry lands in a sub-list under the previous
// shallower entry.
func GenerateTOC(doc *doctree.Document, maxLevel int, style TOCStyle) (*doctree.List, error) {
	if maxLevel < 1 || maxLevel > 6 {
		return nil, fmt.Errorf("toc max level must be between 1 and 6, got %d", maxLevel)
	}
	var ordered bool
	switch style {
	case TOCBullet:
	case TOCNumbered:
		ordered = true
	default:
		return nil, fmt.Errorf("unknown toc style %q (want bullet or numbered)", string(style))
	}

	root := &doctree.List{Ordered: ordered}

	// Stack of the list at each nesting depth; entries push and pop as the
	// heading level rises and falls.
	type frame struct {
		list  *doctree.List
		level int
	}
	stack := []frame{{list: root, level: 0}}

	for _, child := range doc.Children {
		h, ok := child.(*doctree.Heading)
		if !ok || h.Level > maxLevel {
			continue
		}

		for len(stack) > 1 && stack[len(stack)-1].level > h.Level {
			stack = stack[:len(stack)-1]
		}
		top := stack[len(stack)-1]

		if h.Level > top.level && len(top.list.Items) > 0 {
			// Deeper heading: open a sub-list under the last entry.
			sub := &doctree.List{Ordered: ordered}
			last := top.list.Items[len(top.list.Items)-1]
			last.Children = append(last.Children, sub)
			stack = append(stack, frame{list: sub, level: h.Level})
			top = stack[len(stack)-1]
		} else if top.level == 0 {
			// First entry fixes the depth of the root list.
			stack[len(stack)-1].level = h.Level
			top = stack[len(stack)-1]
		}

		entry := &doctree.ListItem{Children: []doctree.Block{
			&doctree.Paragraph{Content: []doctree.Inline{
				&doctree.Text{Value: doctree.PlainText(h)},
			}},
		}}
		top.list.Items = append(top.list.Items, entry)
	}

	return root, nil
}
