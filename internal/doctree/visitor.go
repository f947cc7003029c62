package doctree

// Visitor receives one callback per concrete node kind. Dispatch is by
// double dispatch: node.Accept(v) calls the Visit method for the node's kind.
//
// A visitor drives its own recursion. The framework never descends on its
// behalf, so any visitor can skip a subtree by simply not walking it; use
// WalkChildren for the common "visit every direct child" case.
type Visitor interface {
	VisitDocument(*Document) error
	VisitParagraph(*Paragraph) error
	VisitHeading(*Heading) error
	VisitCodeBlock(*CodeBlock) error
	VisitBlockQuote(*BlockQuote) error
	VisitList(*List) error
	VisitListItem(*ListItem) error
	VisitTable(*Table) error
	VisitTableRow(*TableRow) error
	VisitTableCell(*TableCell) error
	VisitThematicBreak(*ThematicBreak) error
	VisitFootnoteDefinition(*FootnoteDefinition) error
	VisitDefinitionList(*DefinitionList) error
	VisitDefinitionItem(*DefinitionItem) error
	VisitMathBlock(*MathBlock) error
	VisitRawBlock(*RawBlock) error
	VisitText(*Text) error
	VisitCodeSpan(*CodeSpan) error
	VisitEmphasis(*Emphasis) error
	VisitStrong(*Strong) error
	VisitStrikethrough(*Strikethrough) error
	VisitLink(*Link) error
	VisitImage(*Image) error
	VisitHardBreak(*HardBreak) error
	VisitSoftBreak(*SoftBreak) error
	VisitFootnoteReference(*FootnoteReference) error
	VisitMath(*Math) error
	VisitRawInline(*RawInline) error
}

func (n *Document) Accept(v Visitor) error           { return v.VisitDocument(n) }
func (n *Paragraph) Accept(v Visitor) error          { return v.VisitParagraph(n) }
func (n *Heading) Accept(v Visitor) error            { return v.VisitHeading(n) }
func (n *CodeBlock) Accept(v Visitor) error          { return v.VisitCodeBlock(n) }
func (n *BlockQuote) Accept(v Visitor) error         { return v.VisitBlockQuote(n) }
func (n *List) Accept(v Visitor) error               { return v.VisitList(n) }
func (n *ListItem) Accept(v Visitor) error           { return v.VisitListItem(n) }
func (n *Table) Accept(v Visitor) error              { return v.VisitTable(n) }
func (n *TableRow) Accept(v Visitor) error           { return v.VisitTableRow(n) }
func (n *TableCell) Accept(v Visitor) error          { return v.VisitTableCell(n) }
func (n *ThematicBreak) Accept(v Visitor) error      { return v.VisitThematicBreak(n) }
func (n *FootnoteDefinition) Accept(v Visitor) error { return v.VisitFootnoteDefinition(n) }
func (n *DefinitionList) Accept(v Visitor) error     { return v.VisitDefinitionList(n) }
func (n *DefinitionItem) Accept(v Visitor) error     { return v.VisitDefinitionItem(n) }
func (n *MathBlock) Accept(v Visitor) error          { return v.VisitMathBlock(n) }
func (n *RawBlock) Accept(v Visitor) error           { return v.VisitRawBlock(n) }
func (n *Text) Accept(v Visitor) error               { return v.VisitText(n) }
func (n *CodeSpan) Accept(v Visitor) error           { return v.VisitCodeSpan(n) }
func (n *Emphasis) Accept(v Visitor) error           { return v.VisitEmphasis(n) }
func (n *Strong) Accept(v Visitor) error             { return v.VisitStrong(n) }
func (n *Strikethrough) Accept(v Visitor) error      { return v.VisitStrikethrough(n) }
func (n *Link) Accept(v Visitor) error               { return v.VisitLink(n) }
func (n *Image) Accept(v Visitor) error              { return v.VisitImage(n) }
func (n *HardBreak) Accept(v Visitor) error          { return v.VisitHardBreak(n) }
func (n *SoftBreak) Accept(v Visitor) error          { return v.VisitSoftBreak(n) }
func (n *FootnoteReference) Accept(v Visitor) error  { return v.VisitFootnoteReference(n) }
func (n *Math) Accept(v Visitor) error               { return v.VisitMath(n) }
func (n *RawInline) Accept(v Visitor) error          { return v.VisitRawInline(n) }

// BaseVisitor is a no-op implementation of every Visit method. Embed it to
// write a partial visitor; the no-ops deliberately do not recurse.
type BaseVisitor struct{}

func (BaseVisitor) VisitDocument(*Document) error                     { return nil }
func (BaseVisitor) VisitParagraph(*Paragraph) error                   { return nil }
func (BaseVisitor) VisitHeading(*Heading) error                       { return nil }
func (BaseVisitor) VisitCodeBlock(*CodeBlock) error                   { return nil }
func (BaseVisitor) VisitBlockQuote(*BlockQuote) error                 { return nil }
func (BaseVisitor) VisitList(*List) error                             { return nil }
func (BaseVisitor) VisitListItem(*ListItem) error                     { return nil }
func (BaseVisitor) VisitTable(*Table) error                           { return nil }
func (BaseVisitor) VisitTableRow(*TableRow) error                     { return nil }
func (BaseVisitor) VisitTableCell(*TableCell) error                   { return nil }
func (BaseVisitor) VisitThematicBreak(*ThematicBreak) error           { return nil }
func (BaseVisitor) VisitFootnoteDefinition(*FootnoteDefinition) error { return nil }
func (BaseVisitor) VisitDefinitionList(*DefinitionList) error         { return nil }
func (BaseVisitor) VisitDefinitionItem(*DefinitionItem) error         { return nil }
func (BaseVisitor) VisitMathBlock(*MathBlock) error                   { return nil }
func (BaseVisitor) VisitRawBlock(*RawBlock) error                     { return nil }
func (BaseVisitor) VisitText(*Text) error                             { return nil }
func (BaseVisitor) VisitCodeSpan(*CodeSpan) error                     { return nil }
func (BaseVisitor) VisitEmphasis(*Emphasis) error                     { return nil }
func (BaseVisitor) VisitStrong(*Strong) error                         { return nil }
func (BaseVisitor) VisitStrikethrough(*Strikethrough) error           { return nil }
func (BaseVisitor) VisitLink(*Link) error                             { return nil }
func (BaseVisitor) VisitImage(*Image) error                           { return nil }
func (BaseVisitor) VisitHardBreak(*HardBreak) error                   { return nil }
func (BaseVisitor) VisitSoftBreak(*SoftBreak) error                   { return nil }
func (BaseVisitor) VisitFootnoteReference(*FootnoteReference) error   { return nil }
func (BaseVisitor) VisitMath(*Math) error                             { return nil }
func (BaseVisitor) VisitRawInline(*RawInline) error                   { return nil }

// Children returns the direct children of a node in document order. Leaf
// kinds return nil. This is the single place traversal order is defined.
func Children(n Node) []Node {
	switch t := n.(type) {
	case *Document:
		return blocksToNodes(t.Children)
	case *Paragraph:
		return inlinesToNodes(t.Content)
	case *Heading:
		return inlinesToNodes(t.Content)
	case *BlockQuote:
		return blocksToNodes(t.Children)
	case *List:
		out := make([]Node, len(t.Items))
		for i, item := range t.Items {
			out[i] = item
		}
		return out
	case *ListItem:
		return blocksToNodes(t.Children)
	case *Table:
		var out []Node
		if t.Header != nil {
			out = append(out, t.Header)
		}
		for _, row := range t.Rows {
			out = append(out, row)
		}
		return out
	case *TableRow:
		out := make([]Node, len(t.Cells))
		for i, c := range t.Cells {
			out[i] = c
		}
		return out
	case *TableCell:
		return inlinesToNodes(t.Content)
	case *FootnoteDefinition:
		return blocksToNodes(t.Children)
	case *DefinitionList:
		out := make([]Node, len(t.Items))
		for i, item := range t.Items {
			out[i] = item
		}
		return out
	case *DefinitionItem:
		out := inlinesToNodes(t.Term)
		for _, desc := range t.Descriptions {
			out = append(out, blocksToNodes(desc)...)
		}
		return out
	case *Emphasis:
		return inlinesToNodes(t.Content)
	case *Strong:
		return inlinesToNodes(t.Content)
	case *Strikethrough:
		return inlinesToNodes(t.Content)
	case *Link:
		return inlinesToNodes(t.Content)
	case *Image:
		return inlinesToNodes(t.Content)
	}
	return nil
}

func blocksToNodes(bs []Block) []Node {
	if len(bs) == 0 {
		return nil
	}
	out := make([]Node, len(bs))
	for i, b := range bs {
		out[i] = b
	}
	return out
}

func inlinesToNodes(is []Inline) []Node {
	if len(is) == 0 {
		return nil
	}
	out := make([]Node, len(is))
	for i, in := range is {
		out[i] = in
	}
	return out
}

// WalkChildren dispatches v to every direct child of n, in document order.
func WalkChildren(v Visitor, n Node) error {
	for _, c := range Children(n) {
		if err := c.Accept(v); err != nil {
			return err
		}
	}
	return nil
}

// WalkStatus controls traversal from a WalkFunc.
type WalkStatus int

const (
	// WalkContinue descends into the node's children.
	WalkContinue WalkStatus = iota
	// WalkSkipChildren moves to the next sibling.
	WalkSkipChildren
	// WalkStop ends the traversal.
	WalkStop
)

// WalkFunc is called for each node during Walk.
type WalkFunc func(n Node) (WalkStatus, error)

// Walk traverses the tree rooted at n in pre-order, left to right.
func Walk(n Node, fn WalkFunc) error {
	_, err := walk(n, fn)
	return err
}

func walk(n Node, fn WalkFunc) (WalkStatus, error) {
	status, err := fn(n)
	if err != nil || status == WalkStop {
		return WalkStop, err
	}
	if status == WalkSkipChildren {
		return WalkContinue, nil
	}
	for _, c := range Children(n) {
		st, err := walk(c, fn)
		if err != nil || st == WalkStop {
			return WalkStop, err
		}
	}
	return WalkContinue, nil
}
