package doctree

import (
	"encoding/json"
	"fmt"
)

// record is the kind-tagged flat form every node serializes to. Trees only,
// no cycles; downstream tooling persists these as structured text.
type record struct {
	Kind     string          `json:"kind"`
	Metadata map[string]any  `json:"metadata,omitempty"`
	Source   *SourceLocation `json:"source,omitempty"`

	Value       string   `json:"value,omitempty"`
	Literal     string   `json:"literal,omitempty"`
	Language    string   `json:"language,omitempty"`
	Format      string   `json:"format,omitempty"`
	Level       int      `json:"level,omitempty"`
	Ordered     bool     `json:"ordered,omitempty"`
	Start       int      `json:"start,omitempty"`
	Task        string   `json:"task,omitempty"`
	Identifier  string   `json:"identifier,omitempty"`
	Destination string   `json:"destination,omitempty"`
	Title       string   `json:"title,omitempty"`
	ColSpan     int      `json:"colspan,omitempty"`
	RowSpan     int      `json:"rowspan,omitempty"`
	Alignments  []string `json:"alignments,omitempty"`

	Children     []*record   `json:"children,omitempty"`
	Content      []*record   `json:"content,omitempty"`
	Items        []*record   `json:"items,omitempty"`
	Header       *record     `json:"header,omitempty"`
	Rows         []*record   `json:"rows,omitempty"`
	Cells        []*record   `json:"cells,omitempty"`
	Term         []*record   `json:"term,omitempty"`
	Descriptions [][]*record `json:"descriptions,omitempty"`
}

// Marshal serializes a node tree to its kind-tagged JSON record form.
func Marshal(n Node) ([]byte, error) {
	rec := encodeNode(n)
	return json.Marshal(rec)
}

// Unmarshal rebuilds a node tree from its record form. Construction
// invariants are re-checked: a record claiming an out-of-range heading level
// or a non-block Document child fails to decode.
func Unmarshal(data []byte) (Node, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode document record: %w", err)
	}
	return decodeNode(&rec)
}

func encodeNode(n Node) *record {
	a := n.attrs()
	rec := &record{
		Kind:     n.Kind().String(),
		Metadata: a.Metadata,
		Source:   a.Source,
	}
	switch t := n.(type) {
	case *Document:
		rec.Children = encodeBlocks(t.Children)
	case *Paragraph:
		rec.Content = encodeInlines(t.Content)
	case *Heading:
		rec.Level = t.Level
		rec.Content = encodeInlines(t.Content)
	case *CodeBlock:
		rec.Language = t.Language
		rec.Literal = t.Literal
	case *BlockQuote:
		rec.Children = encodeBlocks(t.Children)
	case *List:
		rec.Ordered = t.Ordered
		rec.Start = t.Start
		for _, item := range t.Items {
			rec.Items = append(rec.Items, encodeNode(item))
		}
	case *ListItem:
		rec.Task = taskString(t.Task)
		rec.Children = encodeBlocks(t.Children)
	case *Table:
		if t.Header != nil {
			rec.Header = encodeNode(t.Header)
		}
		for _, row := range t.Rows {
			rec.Rows = append(rec.Rows, encodeNode(row))
		}
		for _, al := range t.Alignments {
			rec.Alignments = append(rec.Alignments, string(al))
		}
	case *TableRow:
		for _, cell := range t.Cells {
			rec.Cells = append(rec.Cells, encodeNode(cell))
		}
	case *TableCell:
		rec.ColSpan = t.ColSpan
		rec.RowSpan = t.RowSpan
		rec.Content = encodeInlines(t.Content)
	case *ThematicBreak:
	case *FootnoteDefinition:
		rec.Identifier = t.Identifier
		rec.Children = encodeBlocks(t.Children)
	case *DefinitionList:
		for _, item := range t.Items {
			rec.Items = append(rec.Items, encodeNode(item))
		}
	case *DefinitionItem:
		rec.Term = encodeInlines(t.Term)
		for _, desc := range t.Descriptions {
			rec.Descriptions = append(rec.Descriptions, encodeBlocks(desc))
		}
	case *MathBlock:
		rec.Literal = t.Literal
	case *RawBlock:
		rec.Format = t.Format
		rec.Literal = t.Literal
	case *Text:
		rec.Value = t.Value
	case *CodeSpan:
		rec.Literal = t.Literal
	case *Emphasis:
		rec.Content = encodeInlines(t.Content)
	case *Strong:
		rec.Content = encodeInlines(t.Content)
	case *Strikethrough:
		rec.Content = encodeInlines(t.Content)
	case *Link:
		rec.Destination = t.Destination
		rec.Title = t.Title
		rec.Content = encodeInlines(t.Content)
	case *Image:
		rec.Destination = t.Destination
		rec.Title = t.Title
		rec.Content = encodeInlines(t.Content)
	case *HardBreak, *SoftBreak:
	case *FootnoteReference:
		rec.Identifier = t.Identifier
	case *Math:
		rec.Literal = t.Literal
	case *RawInline:
		rec.Format = t.Format
		rec.Literal = t.Literal
	}
	return rec
}

func encodeBlocks(blocks []Block) []*record {
	out := make([]*record, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, encodeNode(b))
	}
	return out
}

func encodeInlines(inlines []Inline) []*record {
	out := make([]*record, 0, len(inlines))
	for _, in := range inlines {
		out = append(out, encodeNode(in))
	}
	return out
}

func taskString(t TaskStatus) string {
	switch t {
	case TaskChecked:
		return "checked"
	case TaskUnchecked:
		return "unchecked"
	}
	return ""
}

func parseTask(s string) (TaskStatus, error) {
	switch s {
	case "":
		return TaskNone, nil
	case "checked":
		return TaskChecked, nil
	case "unchecked":
		return TaskUnchecked, nil
	}
	return TaskNone, fmt.Errorf("unknown task status %q", s)
}

func decodeNode(rec *record) (Node, error) {
	n, err := decodeKind(rec)
	if err != nil {
		return nil, err
	}
	a := n.attrs()
	a.Metadata = rec.Metadata
	a.Source = rec.Source
	return n, nil
}

func decodeKind(rec *record) (Node, error) {
	switch rec.Kind {
	case "document":
		children, err := decodeBlocks(rec.Children)
		if err != nil {
			return nil, fmt.Errorf("document: %w", err)
		}
		return &Document{Children: children}, nil
	case "paragraph":
		content, err := decodeInlines(rec.Content)
		if err != nil {
			return nil, fmt.Errorf("paragraph: %w", err)
		}
		return &Paragraph{Content: content}, nil
	case "heading":
		content, err := decodeInlines(rec.Content)
		if err != nil {
			return nil, fmt.Errorf("heading: %w", err)
		}
		return NewHeading(rec.Level, content...)
	case "code_block":
		return &CodeBlock{Language: rec.Language, Literal: rec.Literal}, nil
	case "block_quote":
		children, err := decodeBlocks(rec.Children)
		if err != nil {
			return nil, fmt.Errorf("block quote: %w", err)
		}
		return &BlockQuote{Children: children}, nil
	case "list":
		items := make([]*ListItem, 0, len(rec.Items))
		for i, ir := range rec.Items {
			n, err := decodeNode(ir)
			if err != nil {
				return nil, fmt.Errorf("list item %d: %w", i, err)
			}
			item, ok := n.(*ListItem)
			if !ok {
				return nil, fmt.Errorf("list item %d: got %s", i, n.Kind())
			}
			items = append(items, item)
		}
		return &List{Ordered: rec.Ordered, Start: rec.Start, Items: items}, nil
	case "list_item":
		task, err := parseTask(rec.Task)
		if err != nil {
			return nil, fmt.Errorf("list item: %w", err)
		}
		children, err := decodeBlocks(rec.Children)
		if err != nil {
			return nil, fmt.Errorf("list item: %w", err)
		}
		return &ListItem{Children: children, Task: task}, nil
	case "table":
		t := &Table{}
		if rec.Header != nil {
			row, err := decodeRow(rec.Header)
			if err != nil {
				return nil, fmt.Errorf("table header: %w", err)
			}
			t.Header = row
		}
		for i, rr := range rec.Rows {
			row, err := decodeRow(rr)
			if err != nil {
				return nil, fmt.Errorf("table row %d: %w", i, err)
			}
			t.Rows = append(t.Rows, row)
		}
		for _, al := range rec.Alignments {
			t.Alignments = append(t.Alignments, Alignment(al))
		}
		return t, nil
	case "table_row":
		return decodeRow(rec)
	case "table_cell":
		content, err := decodeInlines(rec.Content)
		if err != nil {
			return nil, fmt.Errorf("table cell: %w", err)
		}
		return &TableCell{Content: content, ColSpan: rec.ColSpan, RowSpan: rec.RowSpan}, nil
	case "thematic_break":
		return &ThematicBreak{}, nil
	case "footnote_definition":
		children, err := decodeBlocks(rec.Children)
		if err != nil {
			return nil, fmt.Errorf("footnote definition: %w", err)
		}
		return &FootnoteDefinition{Identifier: rec.Identifier, Children: children}, nil
	case "definition_list":
		items := make([]*DefinitionItem, 0, len(rec.Items))
		for i, ir := range rec.Items {
			n, err := decodeNode(ir)
			if err != nil {
				return nil, fmt.Errorf("definition item %d: %w", i, err)
			}
			item, ok := n.(*DefinitionItem)
			if !ok {
				return nil, fmt.Errorf("definition item %d: got %s", i, n.Kind())
			}
			items = append(items, item)
		}
		return &DefinitionList{Items: items}, nil
	case "definition_item":
		term, err := decodeInlines(rec.Term)
		if err != nil {
			return nil, fmt.Errorf("definition term: %w", err)
		}
		item := &DefinitionItem{Term: term}
		for i, dr := range rec.Descriptions {
			desc, err := decodeBlocks(dr)
			if err != nil {
				return nil, fmt.Errorf("definition description %d: %w", i, err)
			}
			item.Descriptions = append(item.Descriptions, desc)
		}
		return item, nil
	case "math_block":
		return &MathBlock{Literal: rec.Literal}, nil
	case "raw_block":
		return &RawBlock{Format: rec.Format, Literal: rec.Literal}, nil
	case "text":
		return &Text{Value: rec.Value}, nil
	case "code_span":
		return &CodeSpan{Literal: rec.Literal}, nil
	case "emphasis":
		content, err := decodeInlines(rec.Content)
		if err != nil {
			return nil, err
		}
		return &Emphasis{Content: content}, nil
	case "strong":
		content, err := decodeInlines(rec.Content)
		if err != nil {
			return nil, err
		}
		return &Strong{Content: content}, nil
	case "strikethrough":
		content, err := decodeInlines(rec.Content)
		if err != nil {
			return nil, err
		}
		return &Strikethrough{Content: content}, nil
	case "link":
		content, err := decodeInlines(rec.Content)
		if err != nil {
			return nil, err
		}
		return &Link{Destination: rec.Destination, Title: rec.Title, Content: content}, nil
	case "image":
		content, err := decodeInlines(rec.Content)
		if err != nil {
			return nil, err
		}
		return &Image{Destination: rec.Destination, Title: rec.Title, Content: content}, nil
	case "hard_break":
		return &HardBreak{}, nil
	case "soft_break":
		return &SoftBreak{}, nil
	case "footnote_reference":
		return &FootnoteReference{Identifier: rec.Identifier}, nil
	case "math":
		return &Math{Literal: rec.Literal}, nil
	case "raw_inline":
		return &RawInline{Format: rec.Format, Literal: rec.Literal}, nil
	}
	return nil, fmt.Errorf("unknown node kind %q", rec.Kind)
}

func decodeRow(rec *record) (*TableRow, error) {
	row := &TableRow{
		Attrs: Attrs{Metadata: rec.Metadata, Source: rec.Source},
	}
	for i, cr := range rec.Cells {
		n, err := decodeNode(cr)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		cell, ok := n.(*TableCell)
		if !ok {
			return nil, fmt.Errorf("cell %d: got %s", i, n.Kind())
		}
		row.Cells = append(row.Cells, cell)
	}
	return row, nil
}

func decodeBlocks(recs []*record) ([]Block, error) {
	out := make([]Block, 0, len(recs))
	for i, r := range recs {
		n, err := decodeNode(r)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		b, ok := n.(Block)
		if !ok {
			return nil, fmt.Errorf("child %d: %s is not a block", i, n.Kind())
		}
		out = append(out, b)
	}
	return out, nil
}

func decodeInlines(recs []*record) ([]Inline, error) {
	out := make([]Inline, 0, len(recs))
	for i, r := range recs {
		n, err := decodeNode(r)
		if err != nil {
			return nil, fmt.Errorf("inline %d: %w", i, err)
		}
		in, ok := n.(Inline)
		if !ok {
			return nil, fmt.Errorf("inline %d: %s is not an inline", i, n.Kind())
		}
		out = append(out, in)
	}
	return out, nil
}
