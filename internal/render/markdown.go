// Package render turns document trees back into text. The markdown renderer
// handles every node kind, so any tree a reader or transform produces can be
// rendered.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bgriffith/docforge/internal/doctree"
)

// Markdown renders a document tree as GFM-flavored markdown.
type Markdown struct{}

func (Markdown) Render(doc *doctree.Document) (string, error) {
	r := &mdRenderer{}
	if err := doc.Accept(r); err != nil {
		return "", err
	}
	out := r.buf.String()
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

// mdRenderer writes the markdown for a single node. Child nodes render into
// fresh renderers so block joining and line prefixing stay local.
type mdRenderer struct {
	buf bytes.Buffer
}

func (r *mdRenderer) render(n doctree.Node) (string, error) {
	sub := &mdRenderer{}
	if err := n.Accept(sub); err != nil {
		return "", err
	}
	return sub.buf.String(), nil
}

func (r *mdRenderer) renderBlocks(blocks []doctree.Block) (string, error) {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		s, err := r.render(b)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n\n"), nil
}

func (r *mdRenderer) renderInlines(content []doctree.Inline) (string, error) {
	var sb strings.Builder
	for _, in := range content {
		s, err := r.render(in)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

func (r *mdRenderer) VisitDocument(n *doctree.Document) error {
	s, err := r.renderBlocks(n.Children)
	if err != nil {
		return err
	}
	r.buf.WriteString(s)
	return nil
}

func (r *mdRenderer) VisitParagraph(n *doctree.Paragraph) error {
	s, err := r.renderInlines(n.Content)
	if err != nil {
		return err
	}
	r.buf.WriteString(s)
	return nil
}

func (r *mdRenderer) VisitHeading(n *doctree.Heading) error {
	s, err := r.renderInlines(n.Content)
	if err != nil {
		return err
	}
	r.buf.WriteString(strings.Repeat("#", n.Level))
	r.buf.WriteByte(' ')
	r.buf.WriteString(s)
	return nil
}

func (r *mdRenderer) VisitCodeBlock(n *doctree.CodeBlock) error {
	fence := codeFence(n.Literal)
	r.buf.WriteString(fence)
	r.buf.WriteString(n.Language)
	r.buf.WriteByte('\n')
	if n.Literal != "" {
		r.buf.WriteString(n.Literal)
		r.buf.WriteByte('\n')
	}
	r.buf.WriteString(fence)
	return nil
}

func (r *mdRenderer) VisitBlockQuote(n *doctree.BlockQuote) error {
	s, err := r.renderBlocks(n.Children)
	if err != nil {
		return err
	}
	r.buf.WriteString(prefixLines(s, "> "))
	return nil
}

func (r *mdRenderer) VisitList(n *doctree.List) error {
	for i, item := range n.Items {
		if i > 0 {
			r.buf.WriteByte('\n')
		}
		marker := "- "
		if n.Ordered {
			start := n.Start
			if start == 0 {
				start = 1
			}
			marker = fmt.Sprintf("%d. ", start+i)
		}
		switch item.Task {
		case doctree.TaskChecked:
			marker += "[x] "
		case doctree.TaskUnchecked:
			marker += "[ ] "
		}
		body, err := r.renderBlocks(item.Children)
		if err != nil {
			return err
		}
		r.buf.WriteString(indentAfterFirst(marker+body, strings.Repeat(" ", len(marker))))
	}
	return nil
}

func (r *mdRenderer) VisitListItem(n *doctree.ListItem) error {
	s, err := r.renderBlocks(n.Children)
	if err != nil {
		return err
	}
	r.buf.WriteString(s)
	return nil
}

func (r *mdRenderer) VisitTable(n *doctree.Table) error {
	width := len(n.Alignments)
	if n.Header != nil && len(n.Header.Cells) > width {
		width = len(n.Header.Cells)
	}
	for _, row := range n.Rows {
		if len(row.Cells) > width {
			width = len(row.Cells)
		}
	}

	header := n.Header
	if header == nil {
		header = &doctree.TableRow{Cells: make([]*doctree.TableCell, 0, width)}
		for i := 0; i < width; i++ {
			header.Cells = append(header.Cells, doctree.NewTableCell())
		}
	}

	h, err := r.render(header)
	if err != nil {
		return err
	}
	r.buf.WriteString(h)
	r.buf.WriteByte('\n')
	r.buf.WriteString(alignmentRow(n.Alignments, width))
	for _, row := range n.Rows {
		s, err := r.render(row)
		if err != nil {
			return err
		}
		r.buf.WriteByte('\n')
		r.buf.WriteString(s)
	}
	return nil
}

func (r *mdRenderer) VisitTableRow(n *doctree.TableRow) error {
	r.buf.WriteString("|")
	for _, cell := range n.Cells {
		s, err := r.render(cell)
		if err != nil {
			return err
		}
		r.buf.WriteByte(' ')
		r.buf.WriteString(s)
		r.buf.WriteString(" |")
	}
	return nil
}

func (r *mdRenderer) VisitTableCell(n *doctree.TableCell) error {
	s, err := r.renderInlines(n.Content)
	if err != nil {
		return err
	}
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	r.buf.WriteString(s)
	return nil
}

func (r *mdRenderer) VisitThematicBreak(*doctree.ThematicBreak) error {
	r.buf.WriteString("---")
	return nil
}

func (r *mdRenderer) VisitFootnoteDefinition(n *doctree.FootnoteDefinition) error {
	s, err := r.renderBlocks(n.Children)
	if err != nil {
		return err
	}
	r.buf.WriteString(fmt.Sprintf("[^%s]: ", n.Identifier))
	r.buf.WriteString(indentAfterFirst(s, "    "))
	return nil
}

func (r *mdRenderer) VisitDefinitionList(n *doctree.DefinitionList) error {
	for i, item := range n.Items {
		if i > 0 {
			r.buf.WriteString("\n\n")
		}
		s, err := r.render(item)
		if err != nil {
			return err
		}
		r.buf.WriteString(s)
	}
	return nil
}

func (r *mdRenderer) VisitDefinitionItem(n *doctree.DefinitionItem) error {
	term, err := r.renderInlines(n.Term)
	if err != nil {
		return err
	}
	r.buf.WriteString(term)
	for _, desc := range n.Descriptions {
		s, err := r.renderBlocks(desc)
		if err != nil {
			return err
		}
		r.buf.WriteByte('\n')
		r.buf.WriteString(indentAfterFirst(": "+s, "  "))
	}
	return nil
}

func (r *mdRenderer) VisitMathBlock(n *doctree.MathBlock) error {
	r.buf.WriteString("$$\n")
	r.buf.WriteString(n.Literal)
	r.buf.WriteString("\n$$")
	return nil
}

func (r *mdRenderer) VisitRawBlock(n *doctree.RawBlock) error {
	r.buf.WriteString(n.Literal)
	return nil
}

func (r *mdRenderer) VisitText(n *doctree.Text) error {
	r.buf.WriteString(n.Value)
	return nil
}

func (r *mdRenderer) VisitCodeSpan(n *doctree.CodeSpan) error {
	delim := "`"
	for strings.Contains(n.Literal, delim) {
		delim += "`"
	}
	r.buf.WriteString(delim)
	if strings.HasPrefix(n.Literal, "`") || strings.HasSuffix(n.Literal, "`") {
		r.buf.WriteString(" " + n.Literal + " ")
	} else {
		r.buf.WriteString(n.Literal)
	}
	r.buf.WriteString(delim)
	return nil
}

func (r *mdRenderer) VisitEmphasis(n *doctree.Emphasis) error {
	return r.wrapInlines("*", n.Content)
}

func (r *mdRenderer) VisitStrong(n *doctree.Strong) error {
	return r.wrapInlines("**", n.Content)
}

func (r *mdRenderer) VisitStrikethrough(n *doctree.Strikethrough) error {
	return r.wrapInlines("~~", n.Content)
}

func (r *mdRenderer) wrapInlines(delim string, content []doctree.Inline) error {
	s, err := r.renderInlines(content)
	if err != nil {
		return err
	}
	r.buf.WriteString(delim)
	r.buf.WriteString(s)
	r.buf.WriteString(delim)
	return nil
}

func (r *mdRenderer) VisitLink(n *doctree.Link) error {
	s, err := r.renderInlines(n.Content)
	if err != nil {
		return err
	}
	r.buf.WriteString("[" + s + "](" + n.Destination + linkTitle(n.Title) + ")")
	return nil
}

func (r *mdRenderer) VisitImage(n *doctree.Image) error {
	s, err := r.renderInlines(n.Content)
	if err != nil {
		return err
	}
	r.buf.WriteString("![" + s + "](" + n.Destination + linkTitle(n.Title) + ")")
	return nil
}

func (r *mdRenderer) VisitHardBreak(*doctree.HardBreak) error {
	r.buf.WriteString("\\\n")
	return nil
}

func (r *mdRenderer) VisitSoftBreak(*doctree.SoftBreak) error {
	r.buf.WriteByte('\n')
	return nil
}

func (r *mdRenderer) VisitFootnoteReference(n *doctree.FootnoteReference) error {
	r.buf.WriteString("[^" + n.Identifier + "]")
	return nil
}

func (r *mdRenderer) VisitMath(n *doctree.Math) error {
	r.buf.WriteString("$" + n.Literal + "$")
	return nil
}

func (r *mdRenderer) VisitRawInline(n *doctree.RawInline) error {
	r.buf.WriteString(n.Literal)
	return nil
}

func linkTitle(title string) string {
	if title == "" {
		return ""
	}
	return ` "` + strings.ReplaceAll(title, `"`, `\"`) + `"`
}

// codeFence picks a backtick fence longer than any run in the literal.
func codeFence(literal string) string {
	fence := "```"
	for strings.Contains(literal, fence) {
		fence += "`"
	}
	return fence
}

func alignmentRow(alignments []doctree.Alignment, width int) string {
	cols := make([]string, width)
	for i := 0; i < width; i++ {
		a := doctree.AlignNone
		if i < len(alignments) {
			a = alignments[i]
		}
		switch a {
		case doctree.AlignLeft:
			cols[i] = ":---"
		case doctree.AlignCenter:
			cols[i] = ":---:"
		case doctree.AlignRight:
			cols[i] = "---:"
		default:
			cols[i] = "---"
		}
	}
	return "| " + strings.Join(cols, " | ") + " |"
}

func prefixLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = strings.TrimRight(prefix, " ")
		} else {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// indentAfterFirst indents every line but the first, for list items and
// footnote bodies whose marker carries the first line.
func indentAfterFirst(s, indent string) string {
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = indent + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
