// Package doctree defines the in-memory document tree shared by every format
// reader and renderer: a closed set of block and inline node kinds, checked
// construction for the invariants that must never be deferred, and the
// visitor/transformer dispatch used for validation, rendering and rewriting.
//
// Nodes are treated as immutable once built. Rewriting happens by constructing
// new nodes (see Apply), never by mutating a tree another component may hold.
package doctree

import "fmt"

// Kind identifies one concrete node type.
type Kind int

const (
	KindDocument Kind = iota
	KindParagraph
	KindHeading
	KindCodeBlock
	KindBlockQuote
	KindList
	KindListItem
	KindTable
	KindTableRow
	KindTableCell
	KindThematicBreak
	KindFootnoteDefinition
	KindDefinitionList
	KindDefinitionItem
	KindMathBlock
	KindRawBlock
	KindText
	KindCodeSpan
	KindEmphasis
	KindStrong
	KindStrikethrough
	KindLink
	KindImage
	KindHardBreak
	KindSoftBreak
	KindFootnoteReference
	KindMath
	KindRawInline
)

var kindNames = [...]string{
	KindDocument:           "document",
	KindParagraph:          "paragraph",
	KindHeading:            "heading",
	KindCodeBlock:          "code_block",
	KindBlockQuote:         "block_quote",
	KindList:               "list",
	KindListItem:           "list_item",
	KindTable:              "table",
	KindTableRow:           "table_row",
	KindTableCell:          "table_cell",
	KindThematicBreak:      "thematic_break",
	KindFootnoteDefinition: "footnote_definition",
	KindDefinitionList:     "definition_list",
	KindDefinitionItem:     "definition_item",
	KindMathBlock:          "math_block",
	KindRawBlock:           "raw_block",
	KindText:               "text",
	KindCodeSpan:           "code_span",
	KindEmphasis:           "emphasis",
	KindStrong:             "strong",
	KindStrikethrough:      "strikethrough",
	KindLink:               "link",
	KindImage:              "image",
	KindHardBreak:          "hard_break",
	KindSoftBreak:          "soft_break",
	KindFootnoteReference:  "footnote_reference",
	KindMath:               "math",
	KindRawInline:          "raw_inline",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Node is one element of the document tree.
type Node interface {
	Kind() Kind
	// Accept dispatches to the Visit method for this node's concrete kind.
	Accept(v Visitor) error
	attrs() *Attrs
}

// Block is a node valid as a direct Document child.
type Block interface {
	Node
	block()
}

// Inline is a node valid only inside block content.
type Inline interface {
	Node
	inline()
}

// SourceLocation records where a node came from in its input format.
type SourceLocation struct {
	Format    string `json:"format"`
	Page      int    `json:"page,omitempty"`
	Line      int    `json:"line,omitempty"`
	Column    int    `json:"column,omitempty"`
	ElementID string `json:"element_id,omitempty"`
}

// Attrs carries the annotations shared by every node kind: free-form
// format-specific metadata and optional source traceability.
type Attrs struct {
	Metadata map[string]any  `json:"metadata,omitempty"`
	Source   *SourceLocation `json:"source,omitempty"`
}

func (a *Attrs) attrs() *Attrs { return a }

// SetMeta records a metadata entry, allocating the map on first use.
func (a *Attrs) SetMeta(key string, value any) {
	if a.Metadata == nil {
		a.Metadata = make(map[string]any)
	}
	a.Metadata[key] = value
}

// ConstructionError reports a structurally invalid node rejected at
// construction time.
type ConstructionError struct {
	Kind Kind
	Msg  string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Kind, e.Msg)
}

func constructionErrorf(kind Kind, format string, args ...any) error {
	return &ConstructionError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
