package parser

import (
	"strings"
	"testing"

	"github.com/bgriffith/docforge/internal/doctree"
)

func parseHTML(t *testing.T, input, filename string) *doctree.Document {
	t.Helper()
	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), filename)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return doc
}

func TestHTMLParser_Structure(t *testing.T) {
	input := `<html>
<head><title>My Page</title><style>body{}</style></head>
<body>
<h1>Welcome</h1>
<p>Hello <strong>world</strong>, see <a href="https://example.com">the site</a>.</p>
<h2>Details</h2>
<ul><li>one</li><li>two</li></ul>
<hr>
<pre><code class="language-go">x := 1</code></pre>
</body>
</html>`
	doc := parseHTML(t, input, "page.html")

	if got := doc.Metadata["title"]; got != "My Page" {
		t.Errorf("expected title from <title>, got %v", got)
	}
	if len(doc.Children) != 6 {
		t.Fatalf("expected 6 blocks, got %d", len(doc.Children))
	}

	h1, ok := doc.Children[0].(*doctree.Heading)
	if !ok || h1.Level != 1 {
		t.Fatalf("expected h1 first, got %s", doc.Children[0].Kind())
	}
	if got := doctree.PlainText(h1); got != "Welcome" {
		t.Errorf("expected %q, got %q", "Welcome", got)
	}

	para, ok := doc.Children[1].(*doctree.Paragraph)
	if !ok {
		t.Fatalf("expected paragraph, got %s", doc.Children[1].Kind())
	}
	var link *doctree.Link
	var strong *doctree.Strong
	for _, in := range para.Content {
		switch n := in.(type) {
		case *doctree.Link:
			link = n
		case *doctree.Strong:
			strong = n
		}
	}
	if strong == nil {
		t.Error("expected a strong inline")
	}
	if link == nil || link.Destination != "https://example.com" {
		t.Errorf("expected link to example.com, got %+v", link)
	}

	list, ok := doc.Children[3].(*doctree.List)
	if !ok {
		t.Fatalf("expected list, got %s", doc.Children[3].Kind())
	}
	if list.Ordered || len(list.Items) != 2 {
		t.Errorf("expected 2-item unordered list, got %+v", list)
	}

	if doc.Children[4].Kind() != doctree.KindThematicBreak {
		t.Errorf("expected thematic break, got %s", doc.Children[4].Kind())
	}

	cb, ok := doc.Children[5].(*doctree.CodeBlock)
	if !ok {
		t.Fatalf("expected code block, got %s", doc.Children[5].Kind())
	}
	if cb.Language != "go" {
		t.Errorf("expected language %q, got %q", "go", cb.Language)
	}
	if cb.Literal != "x := 1" {
		t.Errorf("expected literal %q, got %q", "x := 1", cb.Literal)
	}
}

func TestHTMLParser_Table(t *testing.T) {
	input := `<table>
<thead><tr><th>Name</th><th>Count</th></tr></thead>
<tbody>
<tr><td>a</td><td>1</td></tr>
<tr><td colspan="2">wide</td></tr>
</tbody>
</table>`
	doc := parseHTML(t, input, "t.html")

	if len(doc.Children) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Children))
	}
	table, ok := doc.Children[0].(*doctree.Table)
	if !ok {
		t.Fatalf("expected table, got %s", doc.Children[0].Kind())
	}
	if table.Header == nil || len(table.Header.Cells) != 2 {
		t.Fatalf("expected 2 header cells, got %+v", table.Header)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if got := table.Rows[1].Cells[0].ColSpan; got != 2 {
		t.Errorf("expected colspan 2, got %d", got)
	}
}

func TestHTMLParser_LooseText(t *testing.T) {
	doc := parseHTML(t, "<div>bare text <em>styled</em> tail</div>", "loose.html")

	if len(doc.Children) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(doc.Children))
	}
	if got := doctree.PlainText(doc.Children[0]); got != "bare text styled tail" {
		t.Errorf("expected accumulated text, got %q", got)
	}
}

func TestHTMLParser_SkipsNonContent(t *testing.T) {
	doc := parseHTML(t, `<body><script>alert(1)</script><p>kept</p><nav>menu</nav></body>`, "s.html")

	if len(doc.Children) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Children))
	}
	if got := doctree.PlainText(doc.Children[0]); got != "kept" {
		t.Errorf("expected %q, got %q", "kept", got)
	}
}

func TestHTMLParser_ValidTree(t *testing.T) {
	input := `<h1>T</h1><table><tr><th>h</th></tr><tr><td>v</td></tr></table><dl><dt>term</dt><dd>desc</dd></dl>`
	doc := parseHTML(t, input, "v.html")

	v := &doctree.Validator{Strict: true}
	if err := v.Validate(doc); err != nil {
		t.Errorf("parsed tree failed validation: %v", err)
	}
}
