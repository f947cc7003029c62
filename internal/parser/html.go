package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/bgriffith/docforge/internal/doctree"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := doctree.NewDocument()
	doc.SetMeta("title", baseName(filename))
	if title := findTitle(root); title != "" {
		doc.SetMeta("title", title)
	}

	body := findBody(root)
	if body == nil {
		body = root
	}

	c := &htmlConverter{}
	if err := c.walk(body); err != nil {
		return nil, err
	}
	c.flush()
	doc.Children = c.out
	return doc, nil
}

// htmlConverter accumulates loose inline content into paragraphs while
// mapping block-level elements directly.
type htmlConverter struct {
	out []doctree.Block
	run []doctree.Inline
}

func (c *htmlConverter) flush() {
	run := tidyInlines(c.run)
	c.run = nil
	if len(run) > 0 {
		c.out = append(c.out, &doctree.Paragraph{Content: run})
	}
}

func (c *htmlConverter) walk(n *html.Node) error {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if err := c.node(child); err != nil {
			return err
		}
	}
	return nil
}

func (c *htmlConverter) node(n *html.Node) error {
	if n.Type == html.TextNode {
		if t := collapseSpace(n.Data); strings.TrimSpace(t) != "" || len(c.run) > 0 {
			c.run = append(c.run, &doctree.Text{Value: t})
		}
		return nil
	}
	if n.Type != html.ElementNode {
		return nil
	}

	if level := headingLevel(n.Data); level > 0 {
		c.flush()
		h, err := doctree.NewHeading(level, htmlInlines(n)...)
		if err != nil {
			return err
		}
		c.out = append(c.out, h)
		return nil
	}

	switch n.Data {
	case "script", "style", "nav", "head", "noscript":
		return nil
	case "p":
		c.flush()
		if content := tidyInlines(htmlInlines(n)); len(content) > 0 {
			c.out = append(c.out, &doctree.Paragraph{Content: content})
		}
		return nil
	case "ul", "ol":
		c.flush()
		l, err := htmlList(n)
		if err != nil {
			return err
		}
		c.out = append(c.out, l)
		return nil
	case "table":
		c.flush()
		c.out = append(c.out, htmlTable(n))
		return nil
	case "blockquote":
		c.flush()
		inner := &htmlConverter{}
		if err := inner.walk(n); err != nil {
			return err
		}
		inner.flush()
		c.out = append(c.out, &doctree.BlockQuote{Children: inner.out})
		return nil
	case "pre":
		c.flush()
		c.out = append(c.out, &doctree.CodeBlock{
			Language: codeLanguage(n),
			Literal:  strings.Trim(rawTextContent(n), "\n"),
		})
		return nil
	case "hr":
		c.flush()
		c.out = append(c.out, &doctree.ThematicBreak{})
		return nil
	case "dl":
		c.flush()
		dl, err := htmlDefinitionList(n)
		if err != nil {
			return err
		}
		c.out = append(c.out, dl)
		return nil
	case "a", "strong", "b", "em", "i", "del", "s", "strike", "code", "br", "img", "span", "sub", "sup", "u":
		c.run = append(c.run, htmlInline(n)...)
		return nil
	}

	// div, section, article and any other container: transparent.
	return c.walk(n)
}

func htmlList(n *html.Node) (*doctree.List, error) {
	l := &doctree.List{Ordered: n.Data == "ol"}
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		item := &doctree.ListItem{Task: htmlTaskStatus(li)}
		inner := &htmlConverter{}
		if err := inner.walk(li); err != nil {
			return nil, err
		}
		inner.flush()
		item.Children = inner.out
		l.Items = append(l.Items, item)
	}
	return l, nil
}

// htmlTaskStatus reads a leading <input type="checkbox"> in a list item.
func htmlTaskStatus(li *html.Node) doctree.TaskStatus {
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) == "" {
			continue
		}
		if c.Type == html.ElementNode && c.Data == "input" && attr(c, "type") == "checkbox" {
			if hasAttr(c, "checked") {
				return doctree.TaskChecked
			}
			return doctree.TaskUnchecked
		}
		break
	}
	return doctree.TaskNone
}

func htmlTable(n *html.Node) *doctree.Table {
	t := &doctree.Table{}
	var rows func(*html.Node)
	rows = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if c.Data == "tr" {
				row := htmlTableRow(c)
				if t.Header == nil && len(t.Rows) == 0 && rowIsHeader(c) {
					t.Header = row
				} else {
					t.Rows = append(t.Rows, row)
				}
				continue
			}
			rows(c) // thead, tbody, tfoot
		}
	}
	rows(n)
	return t
}

func htmlTableRow(tr *html.Node) *doctree.TableRow {
	row := &doctree.TableRow{}
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		cell := doctree.NewTableCell(tidyInlines(htmlInlines(c))...)
		if span := intAttr(c, "colspan"); span > 1 {
			cell.ColSpan = span
		}
		if span := intAttr(c, "rowspan"); span > 1 {
			cell.RowSpan = span
		}
		row.Cells = append(row.Cells, cell)
	}
	return row
}

func rowIsHeader(tr *html.Node) bool {
	seen := false
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "th":
			seen = true
		case "td":
			return false
		}
	}
	return seen
}

func htmlDefinitionList(n *html.Node) (*doctree.DefinitionList, error) {
	dl := &doctree.DefinitionList{}
	var item *doctree.DefinitionItem
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "dt":
			item = &doctree.DefinitionItem{Term: tidyInlines(htmlInlines(c))}
			dl.Items = append(dl.Items, item)
		case "dd":
			if item == nil {
				continue
			}
			inner := &htmlConverter{}
			if err := inner.walk(c); err != nil {
				return nil, err
			}
			inner.flush()
			item.Descriptions = append(item.Descriptions, inner.out)
		}
	}
	return dl, nil
}

// htmlInlines converts an element's children as inline content.
func htmlInlines(n *html.Node) []doctree.Inline {
	var out []doctree.Inline
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, htmlInline(c)...)
	}
	return out
}

func htmlInline(n *html.Node) []doctree.Inline {
	if n.Type == html.TextNode {
		if t := collapseSpace(n.Data); t != "" {
			return []doctree.Inline{&doctree.Text{Value: t}}
		}
		return nil
	}
	if n.Type != html.ElementNode {
		return nil
	}
	switch n.Data {
	case "a":
		return []doctree.Inline{&doctree.Link{
			Destination: attr(n, "href"),
			Title:       attr(n, "title"),
			Content:     htmlInlines(n),
		}}
	case "strong", "b":
		return []doctree.Inline{&doctree.Strong{Content: htmlInlines(n)}}
	case "em", "i":
		return []doctree.Inline{&doctree.Emphasis{Content: htmlInlines(n)}}
	case "del", "s", "strike":
		return []doctree.Inline{&doctree.Strikethrough{Content: htmlInlines(n)}}
	case "code":
		return []doctree.Inline{&doctree.CodeSpan{Literal: rawTextContent(n)}}
	case "br":
		return []doctree.Inline{&doctree.HardBreak{}}
	case "img":
		var alt []doctree.Inline
		if a := attr(n, "alt"); a != "" {
			alt = []doctree.Inline{&doctree.Text{Value: a}}
		}
		return []doctree.Inline{&doctree.Image{
			Destination: attr(n, "src"),
			Title:       attr(n, "title"),
			Content:     alt,
		}}
	case "script", "style", "input":
		return nil
	}
	return htmlInlines(n)
}

// tidyInlines trims boundary whitespace and drops text runs that collapsed
// to nothing.
func tidyInlines(in []doctree.Inline) []doctree.Inline {
	out := in[:0]
	for _, n := range in {
		if t, ok := n.(*doctree.Text); ok && strings.TrimSpace(t.Value) == "" {
			continue
		}
		out = append(out, n)
	}
	if len(out) > 0 {
		if t, ok := out[0].(*doctree.Text); ok {
			t.Value = strings.TrimLeft(t.Value, " ")
		}
		if t, ok := out[len(out)-1].(*doctree.Text); ok {
			t.Value = strings.TrimRight(t.Value, " ")
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func collapseSpace(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			space = true
		default:
			if space && sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			space = false
			sb.WriteRune(r)
		}
	}
	if space && sb.Len() > 0 {
		sb.WriteByte(' ')
	}
	out := sb.String()
	if out == "" && strings.ContainsAny(s, " \t\n\r\f") {
		return " "
	}
	return out
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func codeLanguage(pre *html.Node) string {
	for c := pre.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "code" {
			for _, class := range strings.Fields(attr(c, "class")) {
				if lang, ok := strings.CutPrefix(class, "language-"); ok {
					return lang
				}
			}
		}
	}
	return ""
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func intAttr(n *html.Node, key string) int {
	v := attr(n, key)
	out := 0
	for _, r := range v {
		if r < '0' || r > '9' {
			return 0
		}
		out = out*10 + int(r-'0')
	}
	return out
}

// rawTextContent concatenates text descendants without collapsing
// whitespace, for code content.
func rawTextContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

func textContent(n *html.Node) string {
	return strings.TrimSpace(collapseSpace(rawTextContent(n)))
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
