package parser

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bgriffith/docforge/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// MarkdownParser handles Markdown files using goldmark with the GFM,
// footnote and definition list extensions.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	meta, src := splitFrontMatter(src)

	md := goldmark.New(goldmark.WithExtensions(
		extension.GFM,
		extension.Footnote,
		extension.DefinitionList,
	))
	root := md.Parser().Parse(text.NewReader(src))

	c := &mdConverter{src: src, footnotes: collectFootnoteRefs(root)}
	blocks, err := c.blocks(root)
	if err != nil {
		return nil, fmt.Errorf("parse markdown: %w", err)
	}

	doc := doctree.NewDocument(blocks...)
	doc.SetMeta("title", baseName(filename))
	for k, v := range meta {
		doc.SetMeta(k, v)
	}
	return doc, nil
}

// splitFrontMatter strips a leading YAML block fenced by "---" lines and
// returns its fields. A missing or malformed block leaves the source
// untouched.
func splitFrontMatter(src []byte) (map[string]any, []byte) {
	if !bytes.HasPrefix(src, []byte("---\n")) && !bytes.HasPrefix(src, []byte("---\r\n")) {
		return nil, src
	}
	lines := bytes.Split(src, []byte("\n"))
	closing := 0
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			closing = i
			break
		}
	}
	if closing == 0 {
		return nil, src
	}
	var meta map[string]any
	if err := yaml.Unmarshal(bytes.Join(lines[1:closing], []byte("\n")), &meta); err != nil {
		return nil, src
	}
	return meta, bytes.Join(lines[closing+1:], []byte("\n"))
}

type mdConverter struct {
	src       []byte
	footnotes map[int]string
}

// collectFootnoteRefs maps goldmark footnote indices back to their source
// labels so references and definitions share an identifier.
func collectFootnoteRefs(root ast.Node) map[int]string {
	refs := make(map[int]string)
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if fn, ok := n.(*east.Footnote); ok && entering {
			refs[fn.Index] = string(fn.Ref)
		}
		return ast.WalkContinue, nil
	})
	return refs
}

func (c *mdConverter) blocks(parent ast.Node) ([]doctree.Block, error) {
	var out []doctree.Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			content, err := c.inlines(node)
			if err != nil {
				return nil, err
			}
			h, err := doctree.NewHeading(node.Level, content...)
			if err != nil {
				return nil, err
			}
			out = append(out, h)
		case *ast.Paragraph:
			content, err := c.inlines(node)
			if err != nil {
				return nil, err
			}
			out = append(out, &doctree.Paragraph{Content: content})
		case *ast.TextBlock:
			content, err := c.inlines(node)
			if err != nil {
				return nil, err
			}
			out = append(out, &doctree.Paragraph{Content: content})
		case *ast.FencedCodeBlock:
			out = append(out, &doctree.CodeBlock{
				Language: string(node.Language(c.src)),
				Literal:  trimFinalNewline(c.lines(node)),
			})
		case *ast.CodeBlock:
			out = append(out, &doctree.CodeBlock{Literal: trimFinalNewline(c.lines(node))})
		case *ast.Blockquote:
			children, err := c.blocks(node)
			if err != nil {
				return nil, err
			}
			out = append(out, &doctree.BlockQuote{Children: children})
		case *ast.List:
			l, err := c.list(node)
			if err != nil {
				return nil, err
			}
			out = append(out, l)
		case *ast.ThematicBreak:
			out = append(out, &doctree.ThematicBreak{})
		case *ast.HTMLBlock:
			out = append(out, &doctree.RawBlock{Format: "html", Literal: c.htmlBlock(node)})
		case *east.Table:
			t, err := c.table(node)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		case *east.FootnoteList:
			defs, err := c.footnoteDefs(node)
			if err != nil {
				return nil, err
			}
			out = append(out, defs...)
		case *east.DefinitionList:
			dl, err := c.definitionList(node)
			if err != nil {
				return nil, err
			}
			out = append(out, dl)
		}
	}
	return out, nil
}

func (c *mdConverter) list(n *ast.List) (*doctree.List, error) {
	l := &doctree.List{Ordered: n.IsOrdered()}
	if n.IsOrdered() {
		l.Start = n.Start
	}
	for it := n.FirstChild(); it != nil; it = it.NextSibling() {
		li, ok := it.(*ast.ListItem)
		if !ok {
			continue
		}
		children, err := c.blocks(li)
		if err != nil {
			return nil, err
		}
		l.Items = append(l.Items, &doctree.ListItem{Children: children, Task: taskStatus(li)})
	}
	return l, nil
}

// taskStatus inspects the first inline of an item's first block for a GFM
// task checkbox.
func taskStatus(li *ast.ListItem) doctree.TaskStatus {
	fc := li.FirstChild()
	if fc == nil {
		return doctree.TaskNone
	}
	cb, ok := fc.FirstChild().(*east.TaskCheckBox)
	if !ok {
		return doctree.TaskNone
	}
	if cb.IsChecked {
		return doctree.TaskChecked
	}
	return doctree.TaskUnchecked
}

func (c *mdConverter) table(n *east.Table) (*doctree.Table, error) {
	t := &doctree.Table{}
	for _, a := range n.Alignments {
		t.Alignments = append(t.Alignments, tableAlignment(a))
	}
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		r, err := c.tableRow(row)
		if err != nil {
			return nil, err
		}
		if _, ok := row.(*east.TableHeader); ok {
			t.Header = r
		} else {
			t.Rows = append(t.Rows, r)
		}
	}
	return t, nil
}

func (c *mdConverter) tableRow(row ast.Node) (*doctree.TableRow, error) {
	r := &doctree.TableRow{}
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		content, err := c.inlines(cell)
		if err != nil {
			return nil, err
		}
		r.Cells = append(r.Cells, doctree.NewTableCell(content...))
	}
	return r, nil
}

func tableAlignment(a east.Alignment) doctree.Alignment {
	switch a {
	case east.AlignLeft:
		return doctree.AlignLeft
	case east.AlignCenter:
		return doctree.AlignCenter
	case east.AlignRight:
		return doctree.AlignRight
	}
	return doctree.AlignNone
}

func (c *mdConverter) footnoteDefs(list *east.FootnoteList) ([]doctree.Block, error) {
	var out []doctree.Block
	for n := list.FirstChild(); n != nil; n = n.NextSibling() {
		fn, ok := n.(*east.Footnote)
		if !ok {
			continue
		}
		children, err := c.blocks(fn)
		if err != nil {
			return nil, err
		}
		out = append(out, &doctree.FootnoteDefinition{
			Identifier: string(fn.Ref),
			Children:   children,
		})
	}
	return out, nil
}

func (c *mdConverter) definitionList(n *east.DefinitionList) (*doctree.DefinitionList, error) {
	dl := &doctree.DefinitionList{}
	var item *doctree.DefinitionItem
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		switch node := ch.(type) {
		case *east.DefinitionTerm:
			term, err := c.inlines(node)
			if err != nil {
				return nil, err
			}
			item = &doctree.DefinitionItem{Term: term}
			dl.Items = append(dl.Items, item)
		case *east.DefinitionDescription:
			if item == nil {
				continue
			}
			desc, err := c.blocks(node)
			if err != nil {
				return nil, err
			}
			item.Descriptions = append(item.Descriptions, desc)
		}
	}
	return dl, nil
}

func (c *mdConverter) inlines(parent ast.Node) ([]doctree.Inline, error) {
	var out []doctree.Inline
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		conv, err := c.inline(n)
		if err != nil {
			return nil, err
		}
		out = append(out, conv...)
	}
	return out, nil
}

func (c *mdConverter) inline(n ast.Node) ([]doctree.Inline, error) {
	switch node := n.(type) {
	case *ast.Text:
		out := []doctree.Inline{&doctree.Text{Value: string(node.Segment.Value(c.src))}}
		if node.HardLineBreak() {
			out = append(out, &doctree.HardBreak{})
		} else if node.SoftLineBreak() {
			out = append(out, &doctree.SoftBreak{})
		}
		return out, nil
	case *ast.String:
		return []doctree.Inline{&doctree.Text{Value: string(node.Value)}}, nil
	case *ast.CodeSpan:
		return []doctree.Inline{&doctree.CodeSpan{Literal: c.childText(node)}}, nil
	case *ast.Emphasis:
		content, err := c.inlines(node)
		if err != nil {
			return nil, err
		}
		if node.Level >= 2 {
			return []doctree.Inline{&doctree.Strong{Content: content}}, nil
		}
		return []doctree.Inline{&doctree.Emphasis{Content: content}}, nil
	case *east.Strikethrough:
		content, err := c.inlines(node)
		if err != nil {
			return nil, err
		}
		return []doctree.Inline{&doctree.Strikethrough{Content: content}}, nil
	case *ast.Link:
		content, err := c.inlines(node)
		if err != nil {
			return nil, err
		}
		return []doctree.Inline{&doctree.Link{
			Destination: string(node.Destination),
			Title:       string(node.Title),
			Content:     content,
		}}, nil
	case *ast.Image:
		content, err := c.inlines(node)
		if err != nil {
			return nil, err
		}
		return []doctree.Inline{&doctree.Image{
			Destination: string(node.Destination),
			Title:       string(node.Title),
			Content:     content,
		}}, nil
	case *ast.AutoLink:
		url := string(node.URL(c.src))
		label := string(node.Label(c.src))
		return []doctree.Inline{&doctree.Link{
			Destination: url,
			Content:     []doctree.Inline{&doctree.Text{Value: label}},
		}}, nil
	case *ast.RawHTML:
		return []doctree.Inline{&doctree.RawInline{Format: "html", Literal: c.rawHTML(node)}}, nil
	case *east.FootnoteLink:
		return []doctree.Inline{&doctree.FootnoteReference{Identifier: c.footnoteIdent(node.Index)}}, nil
	}
	// TaskCheckBox is recorded on the list item; FootnoteBacklink is a
	// rendering artifact. Everything else unknown is dropped.
	return nil, nil
}

func (c *mdConverter) footnoteIdent(index int) string {
	if ref, ok := c.footnotes[index]; ok && ref != "" {
		return ref
	}
	return strconv.Itoa(index)
}

// childText concatenates the text segments directly under a node, used for
// code spans whose children are raw text.
func (c *mdConverter) childText(n ast.Node) string {
	var buf bytes.Buffer
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		if t, ok := ch.(*ast.Text); ok {
			buf.Write(t.Segment.Value(c.src))
		}
	}
	return buf.String()
}

func (c *mdConverter) lines(n ast.Node) string {
	var buf bytes.Buffer
	l := n.Lines()
	for i := 0; i < l.Len(); i++ {
		seg := l.At(i)
		buf.Write(seg.Value(c.src))
	}
	return buf.String()
}

func (c *mdConverter) rawHTML(n *ast.RawHTML) string {
	var buf bytes.Buffer
	for i := 0; i < n.Segments.Len(); i++ {
		seg := n.Segments.At(i)
		buf.Write(seg.Value(c.src))
	}
	return buf.String()
}

func (c *mdConverter) htmlBlock(n *ast.HTMLBlock) string {
	s := c.lines(n)
	if n.HasClosure() {
		s += string(n.ClosureLine.Value(c.src))
	}
	return trimFinalNewline(s)
}

func trimFinalNewline(s string) string {
	return strings.TrimSuffix(s, "\n")
}
