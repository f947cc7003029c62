package doctree

// Document is the root of a parsed document: an ordered sequence of blocks.
// The child slice is typed as []Block, so inline nodes can never appear
// directly under a Document.
type Document struct {
	Attrs
	Children []Block
}

// NewDocument builds a document root from block children.
func NewDocument(children ...Block) *Document {
	return &Document{Children: children}
}

func (*Document) Kind() Kind { return KindDocument }

// Paragraph is a run of inline content.
type Paragraph struct {
	Attrs
	Content []Inline
}

func (*Paragraph) Kind() Kind { return KindParagraph }
func (*Paragraph) block()     {}

// Heading is a section heading with level 1-6.
type Heading struct {
	Attrs
	Level   int
	Content []Inline
}

// NewHeading builds a heading, rejecting levels outside [1,6]. This is the
// checked construction path; a struct literal bypasses the check and is
// caught by the Validator instead.
func NewHeading(level int, content ...Inline) (*Heading, error) {
	if level < 1 || level > 6 {
		return nil, constructionErrorf(KindHeading, "level must be between 1 and 6, got %d", level)
	}
	return &Heading{Level: level, Content: content}, nil
}

func (*Heading) Kind() Kind { return KindHeading }
func (*Heading) block()     {}

// CodeBlock is a fenced or indented block of literal code.
type CodeBlock struct {
	Attrs
	Language string
	Literal  string
}

func (*CodeBlock) Kind() Kind { return KindCodeBlock }
func (*CodeBlock) block()     {}

// BlockQuote wraps nested block content.
type BlockQuote struct {
	Attrs
	Children []Block
}

func (*BlockQuote) Kind() Kind { return KindBlockQuote }
func (*BlockQuote) block()     {}

// TaskStatus marks a list item as a task checkbox.
type TaskStatus int

const (
	TaskNone TaskStatus = iota
	TaskUnchecked
	TaskChecked
)

// List is an ordered or unordered list.
type List struct {
	Attrs
	Ordered bool
	Start   int // first ordinal for ordered lists; 0 means 1
	Items   []*ListItem
}

func (*List) Kind() Kind { return KindList }
func (*List) block()     {}

// ListItem holds block children and an optional task checkbox state.
type ListItem struct {
	Attrs
	Children []Block
	Task     TaskStatus
}

func (*ListItem) Kind() Kind { return KindListItem }

// Alignment is a positional column alignment for tables.
type Alignment string

const (
	AlignNone   Alignment = "none"
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Table has an optional header row, data rows and positional column
// alignments.
type Table struct {
	Attrs
	Header     *TableRow
	Rows       []*TableRow
	Alignments []Alignment
}

func (*Table) Kind() Kind { return KindTable }
func (*Table) block()     {}

// TableRow is one row of cells.
type TableRow struct {
	Attrs
	Cells []*TableCell
}

func (*TableRow) Kind() Kind { return KindTableRow }

// TableCell holds inline content and span counts. Spans must be >= 1; a zero
// span from literal construction is a validation finding, not a panic.
type TableCell struct {
	Attrs
	Content []Inline
	ColSpan int
	RowSpan int
}

// NewTableCell builds a cell with unit spans.
func NewTableCell(content ...Inline) *TableCell {
	return &TableCell{Content: content, ColSpan: 1, RowSpan: 1}
}

func (*TableCell) Kind() Kind { return KindTableCell }

// ThematicBreak is a horizontal rule.
type ThematicBreak struct {
	Attrs
}

func (*ThematicBreak) Kind() Kind { return KindThematicBreak }
func (*ThematicBreak) block()     {}

// FootnoteDefinition is the body a FootnoteReference points at. An empty
// identifier is constructible to preserve malformed input through a
// round-trip; validation flags it.
type FootnoteDefinition struct {
	Attrs
	Identifier string
	Children   []Block
}

func (*FootnoteDefinition) Kind() Kind { return KindFootnoteDefinition }
func (*FootnoteDefinition) block()     {}

// DefinitionList is a sequence of term/descriptions pairs.
type DefinitionList struct {
	Attrs
	Items []*DefinitionItem
}

func (*DefinitionList) Kind() Kind { return KindDefinitionList }
func (*DefinitionList) block()     {}

// DefinitionItem pairs one term with its descriptions.
type DefinitionItem struct {
	Attrs
	Term         []Inline
	Descriptions [][]Block
}

func (*DefinitionItem) Kind() Kind { return KindDefinitionItem }

// MathBlock is display math.
type MathBlock struct {
	Attrs
	Literal string
}

func (*MathBlock) Kind() Kind { return KindMathBlock }
func (*MathBlock) block()     {}

// RawBlock is an opaque block passed through from a specific source format,
// e.g. an HTML fragment a markdown reader chose not to interpret.
type RawBlock struct {
	Attrs
	Format  string
	Literal string
}

func (*RawBlock) Kind() Kind { return KindRawBlock }
func (*RawBlock) block()     {}
