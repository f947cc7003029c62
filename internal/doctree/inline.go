package doctree

// Text is a literal run of text.
type Text struct {
	Attrs
	Value string
}

func (*Text) Kind() Kind { return KindText }
func (*Text) inline()    {}

// CodeSpan is inline literal code.
type CodeSpan struct {
	Attrs
	Literal string
}

func (*CodeSpan) Kind() Kind { return KindCodeSpan }
func (*CodeSpan) inline()    {}

// Emphasis is emphasized (italic) content.
type Emphasis struct {
	Attrs
	Content []Inline
}

func (*Emphasis) Kind() Kind { return KindEmphasis }
func (*Emphasis) inline()    {}

// Strong is strongly emphasized (bold) content.
type Strong struct {
	Attrs
	Content []Inline
}

func (*Strong) Kind() Kind { return KindStrong }
func (*Strong) inline()    {}

// Strikethrough is struck-through content.
type Strikethrough struct {
	Attrs
	Content []Inline
}

func (*Strikethrough) Kind() Kind { return KindStrikethrough }
func (*Strikethrough) inline()    {}

// Link is a hyperlink with inline content.
type Link struct {
	Attrs
	Destination string
	Title       string
	Content     []Inline
}

func (*Link) Kind() Kind { return KindLink }
func (*Link) inline()    {}

// Image is an embedded image; Content is its alt text.
type Image struct {
	Attrs
	Destination string
	Title       string
	Content     []Inline
}

func (*Image) Kind() Kind { return KindImage }
func (*Image) inline()    {}

// HardBreak is an explicit line break.
type HardBreak struct {
	Attrs
}

func (*HardBreak) Kind() Kind { return KindHardBreak }
func (*HardBreak) inline()    {}

// SoftBreak is a source line break that renders as a space.
type SoftBreak struct {
	Attrs
}

func (*SoftBreak) Kind() Kind { return KindSoftBreak }
func (*SoftBreak) inline()    {}

// FootnoteReference points at a FootnoteDefinition by identifier. An empty
// identifier is constructible; validation flags it.
type FootnoteReference struct {
	Attrs
	Identifier string
}

func (*FootnoteReference) Kind() Kind { return KindFootnoteReference }
func (*FootnoteReference) inline()    {}

// Math is inline math.
type Math struct {
	Attrs
	Literal string
}

func (*Math) Kind() Kind { return KindMath }
func (*Math) inline()    {}

// RawInline is an opaque inline fragment from a specific source format.
type RawInline struct {
	Attrs
	Format  string
	Literal string
}

func (*RawInline) Kind() Kind { return KindRawInline }
func (*RawInline) inline()    {}
