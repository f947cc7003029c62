package doctree

import "fmt"

// Transformer rewrites single nodes. Returning the input unchanged keeps it
// and lets the framework rebuild its children; returning nil deletes the node
// from its parent's sequence; returning a different node splices the
// replacement in verbatim, without descending into it.
type Transformer interface {
	Transform(n Node) (Node, error)
}

// TransformerFunc adapts a function to the Transformer interface.
type TransformerFunc func(n Node) (Node, error)

func (f TransformerFunc) Transform(n Node) (Node, error) { return f(n) }

// Apply runs t over the tree rooted at doc and returns a new Document. The
// input tree is never mutated: containers whose children change are rebuilt
// as copies, and on error the caller keeps the original tree intact.
//
// A transformer that returns every node unchanged is the identity transform
// on the whole tree.
func Apply(doc *Document, t Transformer) (*Document, error) {
	out, err := transformNode(t, doc)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("transform removed the document root")
	}
	result, ok := out.(*Document)
	if !ok {
		return nil, fmt.Errorf("transform replaced the document root with %s", out.Kind())
	}
	return result, nil
}

func transformNode(t Transformer, n Node) (Node, error) {
	out, err := t.Transform(n)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	if out != n {
		return out, nil
	}
	return rebuild(t, n)
}

// rebuild returns a copy of a container node with transformed children, or
// the node itself for leaf kinds.
func rebuild(t Transformer, n Node) (Node, error) {
	switch v := n.(type) {
	case *Document:
		children, err := transformBlocks(t, v.Children)
		if err != nil {
			return nil, err
		}
		c := *v
		c.Children = children
		return &c, nil
	case *Paragraph:
		content, err := transformInlines(t, v.Content)
		if err != nil {
			return nil, err
		}
		c := *v
		c.Content = content
		return &c, nil
	case *Heading:
		content, err := transformInlines(t, v.Content)
		if err != nil {
			return nil, err
		}
		c := *v
		c.Content = content
		return &c, nil
	case *BlockQuote:
		children, err := transformBlocks(t, v.Children)
		if err != nil {
			return nil, err
		}
		c := *v
		c.Children = children
		return &c, nil
	case *List:
		items, err := transformListItems(t, v.Items)
		if err != nil {
			return nil, err
		}
		c := *v
		c.Items = items
		return &c, nil
	case *ListItem:
		children, err := transformBlocks(t, v.Children)
		if err != nil {
			return nil, err
		}
		c := *v
		c.Children = children
		return &c, nil
	case *Table:
		c := *v
		if v.Header != nil {
			header, err := transformRow(t, v.Header)
			if err != nil {
				return nil, err
			}
			c.Header = header
		}
		rows := make([]*TableRow, 0, len(v.Rows))
		for _, row := range v.Rows {
			nr, err := transformRow(t, row)
			if err != nil {
				return nil, err
			}
			if nr != nil {
				rows = append(rows, nr)
			}
		}
		c.Rows = rows
		return &c, nil
	case *TableRow:
		cells := make([]*TableCell, 0, len(v.Cells))
		for _, cell := range v.Cells {
			out, err := transformNode(t, cell)
			if err != nil {
				return nil, err
			}
			if out == nil {
				continue
			}
			nc, ok := out.(*TableCell)
			if !ok {
				return nil, fmt.Errorf("transform returned %s where a table cell is required", out.Kind())
			}
			cells = append(cells, nc)
		}
		c := *v
		c.Cells = cells
		return &c, nil
	case *TableCell:
		content, err := transformInlines(t, v.Content)
		if err != nil {
			return nil, err
		}
		c := *v
		c.Content = content
		return &c, nil
	case *FootnoteDefinition:
		children, err := transformBlocks(t, v.Children)
		if err != nil {
			return nil, err
		}
		c := *v
		c.Children = children
		return &c, nil
	case *DefinitionList:
		items := make([]*DefinitionItem, 0, len(v.Items))
		for _, item := range v.Items {
			out, err := transformNode(t, item)
			if err != nil {
				return nil, err
			}
			if out == nil {
				continue
			}
			ni, ok := out.(*DefinitionItem)
			if !ok {
				return nil, fmt.Errorf("transform returned %s where a definition item is required", out.Kind())
			}
			items = append(items, ni)
		}
		c := *v
		c.Items = items
		return &c, nil
	case *DefinitionItem:
		term, err := transformInlines(t, v.Term)
		if err != nil {
			return nil, err
		}
		descs := make([][]Block, 0, len(v.Descriptions))
		for _, desc := range v.Descriptions {
			nd, err := transformBlocks(t, desc)
			if err != nil {
				return nil, err
			}
			descs = append(descs, nd)
		}
		c := *v
		c.Term = term
		c.Descriptions = descs
		return &c, nil
	case *Emphasis:
		content, err := transformInlines(t, v.Content)
		if err != nil {
			return nil, err
		}
		c := *v
		c.Content = content
		return &c, nil
	case *Strong:
		content, err := transformInlines(t, v.Content)
		if err != nil {
			return nil, err
		}
		c := *v
		c.Content = content
		return &c, nil
	case *Strikethrough:
		content, err := transformInlines(t, v.Content)
		if err != nil {
			return nil, err
		}
		c := *v
		c.Content = content
		return &c, nil
	case *Link:
		content, err := transformInlines(t, v.Content)
		if err != nil {
			return nil, err
		}
		c := *v
		c.Content = content
		return &c, nil
	case *Image:
		content, err := transformInlines(t, v.Content)
		if err != nil {
			return nil, err
		}
		c := *v
		c.Content = content
		return &c, nil
	}
	// Leaf kinds are returned as-is; they are immutable by convention.
	return n, nil
}

func transformBlocks(t Transformer, blocks []Block) ([]Block, error) {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		nn, err := transformNode(t, b)
		if err != nil {
			return nil, err
		}
		if nn == nil {
			continue
		}
		nb, ok := nn.(Block)
		if !ok {
			return nil, fmt.Errorf("transform returned inline %s where a block is required", nn.Kind())
		}
		out = append(out, nb)
	}
	return out, nil
}

func transformInlines(t Transformer, inlines []Inline) ([]Inline, error) {
	out := make([]Inline, 0, len(inlines))
	for _, in := range inlines {
		nn, err := transformNode(t, in)
		if err != nil {
			return nil, err
		}
		if nn == nil {
			continue
		}
		ni, ok := nn.(Inline)
		if !ok {
			return nil, fmt.Errorf("transform returned block %s where an inline is required", nn.Kind())
		}
		out = append(out, ni)
	}
	return out, nil
}

func transformListItems(t Transformer, items []*ListItem) ([]*ListItem, error) {
	out := make([]*ListItem, 0, len(items))
	for _, item := range items {
		nn, err := transformNode(t, item)
		if err != nil {
			return nil, err
		}
		if nn == nil {
			continue
		}
		ni, ok := nn.(*ListItem)
		if !ok {
			return nil, fmt.Errorf("transform returned %s where a list item is required", nn.Kind())
		}
		out = append(out, ni)
	}
	return out, nil
}

func transformRow(t Transformer, row *TableRow) (*TableRow, error) {
	out, err := transformNode(t, row)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	nr, ok := out.(*TableRow)
	if !ok {
		return nil, fmt.Errorf("transform returned %s where a table row is required", out.Kind())
	}
	return nr, nil
}
