package doctree

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func sampleDoc(t *testing.T) *Document {
	t.Helper()
	h1, err := NewHeading(1, &Text{Value: "Intro"})
	if err != nil {
		t.Fatal(err)
	}
	return NewDocument(
		h1,
		&Paragraph{Content: []Inline{
			&Text{Value: "hello "},
			&Emphasis{Content: []Inline{&Text{Value: "world"}}},
		}},
		&BlockQuote{Children: []Block{
			&Paragraph{Content: []Inline{&Text{Value: "quoted"}}},
		}},
		&List{Items: []*ListItem{
			{Children: []Block{&Paragraph{Content: []Inline{&Text{Value: "item"}}}}},
		}},
	)
}

// A transformer that recognizes nothing must be the identity transform.
func TestApply_IdentityTransform(t *testing.T) {
	doc := sampleDoc(t)
	identity := TransformerFunc(func(n Node) (Node, error) { return n, nil })

	out, err := Apply(doc, identity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out == doc {
		t.Fatal("expected a rebuilt document, got the input pointer")
	}
	if !reflect.DeepEqual(out, doc) {
		t.Errorf("identity transform changed the tree")
	}
}

func TestApply_DeletesNodes(t *testing.T) {
	doc := sampleDoc(t)
	dropQuotes := TransformerFunc(func(n Node) (Node, error) {
		if n.Kind() == KindBlockQuote {
			return nil, nil
		}
		return n, nil
	})

	out, err := Apply(doc, dropQuotes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Children) != len(doc.Children)-1 {
		t.Fatalf("expected %d children, got %d", len(doc.Children)-1, len(out.Children))
	}
	for _, c := range out.Children {
		if c.Kind() == KindBlockQuote {
			t.Error("block quote survived deletion")
		}
	}
	// Original untouched.
	if len(doc.Children) != 4 {
		t.Errorf("input tree was mutated: %d children", len(doc.Children))
	}
}

func TestApply_ReplacementIsSplicedVerbatim(t *testing.T) {
	doc := sampleDoc(t)
	replaceQuote := TransformerFunc(func(n Node) (Node, error) {
		if n.Kind() == KindBlockQuote {
			return &Paragraph{Content: []Inline{&Text{Value: "replaced"}}}, nil
		}
		if txt, ok := n.(*Text); ok {
			return &Text{Value: strings.ToUpper(txt.Value)}, nil
		}
		return n, nil
	})

	out, err := Apply(doc, replaceQuote)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The replacement is spliced verbatim: its own Text child is not
	// re-transformed, unlike every other Text in the tree.
	if got := PlainText(out.Children[2]); got != "replaced" {
		t.Errorf("expected untouched replacement paragraph, got %q", got)
	}
	if got := PlainText(out.Children[0]); got != "INTRO" {
		t.Errorf("expected transformed heading text, got %q", got)
	}
	if vals := textValues(out); contains(vals, "quoted") {
		t.Error("replaced subtree still present")
	}
}

func TestApply_ErrorLeavesOriginalIntact(t *testing.T) {
	doc := sampleDoc(t)
	boom := errors.New("boom")
	failing := TransformerFunc(func(n Node) (Node, error) {
		if n.Kind() == KindList {
			return nil, boom
		}
		return n, nil
	})

	out, err := Apply(doc, failing)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if out != nil {
		t.Error("failed transform must not return a partial tree")
	}
	if !reflect.DeepEqual(doc, sampleDoc(t)) {
		t.Error("input tree was mutated by a failed transform")
	}
}

func TestApply_DeletedRootIsAnError(t *testing.T) {
	doc := sampleDoc(t)
	dropAll := TransformerFunc(func(n Node) (Node, error) { return nil, nil })

	_, err := Apply(doc, dropAll)
	if err == nil || !strings.Contains(err.Error(), "root") {
		t.Errorf("expected root deletion error, got %v", err)
	}
}

func TestApply_InlineWhereBlockRequired(t *testing.T) {
	doc := sampleDoc(t)
	bad := TransformerFunc(func(n Node) (Node, error) {
		if n.Kind() == KindBlockQuote {
			return &Text{Value: "not a block"}, nil
		}
		return n, nil
	})

	_, err := Apply(doc, bad)
	if err == nil || !strings.Contains(err.Error(), "block") {
		t.Errorf("expected block type error, got %v", err)
	}
}

func contains(vals []string, want string) bool {
	for _, v := range vals {
		if v == want {
			return true
		}
	}
	return false
}

func textValues(n Node) []string {
	var out []string
	Walk(n, func(n Node) (WalkStatus, error) {
		if txt, ok := n.(*Text); ok {
			out = append(out, txt.Value)
		}
		return WalkContinue, nil
	})
	return out
}
