package section

import (
	"testing"

	"github.com/bgriffith/docforge/internal/doctree"
)

func TestGenerateTOC_NestedOutline(t *testing.T) {
	doc := doctree.NewDocument(
		heading(t, 1, "One"),
		para("..."),
		heading(t, 2, "One A"),
		heading(t, 2, "One B"),
		heading(t, 1, "Two"),
	)

	toc, err := GenerateTOC(doc, 6, TOCBullet)
	if err != nil {
		t.Fatal(err)
	}
	if toc.Ordered {
		t.Error("bullet style should be unordered")
	}
	if len(toc.Items) != 2 {
		t.Fatalf("expected 2 top entries, got %d", len(toc.Items))
	}

	one := toc.Items[0]
	if got := doctree.PlainText(one.Children[0]); got != "One" {
		t.Errorf("first entry = %q", got)
	}
	if len(one.Children) != 2 {
		t.Fatalf("entry One should carry a sub-list, children = %d", len(one.Children))
	}
	sub, ok := one.Children[1].(*doctree.List)
	if !ok {
		t.Fatalf("expected nested list, got %s", one.Children[1].Kind())
	}
	if len(sub.Items) != 2 {
		t.Errorf("expected 2 nested entries, got %d", len(sub.Items))
	}
	if got := doctree.PlainText(sub.Items[1]); got != "One B" {
		t.Errorf("nested entry = %q, want One B", got)
	}
}

func TestGenerateTOC_MaxLevelFiltersDepth(t *testing.T) {
	doc := doctree.NewDocument(
		heading(t, 1, "One"),
		heading(t, 2, "Deep"),
		heading(t, 3, "Deeper"),
	)

	toc, err := GenerateTOC(doc, 2, TOCNumbered)
	if err != nil {
		t.Fatal(err)
	}
	if !toc.Ordered {
		t.Error("numbered style should be ordered")
	}

	var titles []string
	doctree.Walk(toc, func(n doctree.Node) (doctree.WalkStatus, error) {
		if txt, ok := n.(*doctree.Text); ok {
			titles = append(titles, txt.Value)
		}
		return doctree.WalkContinue, nil
	})
	if len(titles) != 2 || titles[0] != "One" || titles[1] != "Deep" {
		t.Errorf("titles = %v, want [One Deep]", titles)
	}
}

func TestGenerateTOC_BadArguments(t *testing.T) {
	doc := doctree.NewDocument(heading(t, 1, "One"))

	if _, err := GenerateTOC(doc, 0, TOCBullet); err == nil {
		t.Error("max level 0 should fail")
	}
	if _, err := GenerateTOC(doc, 7, TOCBullet); err == nil {
		t.Error("max level 7 should fail")
	}
	if _, err := GenerateTOC(doc, 2, TOCStyle("fancy")); err == nil {
		t.Error("unknown style should fail")
	}
}
