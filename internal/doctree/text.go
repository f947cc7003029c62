package doctree

import "strings"

// PlainText flattens the tree rooted at n into unstyled text, in document
// order. Block boundaries become blank lines, table cells are tab-separated,
// and raw passthrough fragments are omitted.
func PlainText(n Node) string {
	var sb strings.Builder
	writeText(&sb, n)
	return strings.TrimSpace(sb.String())
}

// WordCount counts whitespace-separated words in the plain text of n.
func WordCount(n Node) int {
	return len(strings.Fields(PlainText(n)))
}

// WordCountBlocks sums word counts over a block sequence.
func WordCountBlocks(blocks []Block) int {
	total := 0
	for _, b := range blocks {
		total += WordCount(b)
	}
	return total
}

func writeText(sb *strings.Builder, n Node) {
	switch t := n.(type) {
	case *Text:
		sb.WriteString(t.Value)
	case *CodeSpan:
		sb.WriteString(t.Literal)
	case *CodeBlock:
		sb.WriteString(t.Literal)
	case *Math:
		sb.WriteString(t.Literal)
	case *MathBlock:
		sb.WriteString(t.Literal)
	case *HardBreak:
		sb.WriteByte('\n')
	case *SoftBreak:
		sb.WriteByte(' ')
	case *RawBlock, *RawInline, *ThematicBreak:
		// Raw markup and rules carry no prose.
	case *Document:
		writeBlockSeq(sb, t.Children)
	case *BlockQuote:
		writeBlockSeq(sb, t.Children)
	case *ListItem:
		writeBlockSeq(sb, t.Children)
	case *FootnoteDefinition:
		writeBlockSeq(sb, t.Children)
	case *List:
		for i, item := range t.Items {
			if i > 0 {
				sb.WriteByte('\n')
			}
			writeText(sb, item)
		}
	case *Table:
		rows := t.Rows
		if t.Header != nil {
			rows = append([]*TableRow{t.Header}, rows...)
		}
		for i, row := range rows {
			if i > 0 {
				sb.WriteByte('\n')
			}
			writeText(sb, row)
		}
	case *TableRow:
		for i, cell := range t.Cells {
			if i > 0 {
				sb.WriteByte('\t')
			}
			writeText(sb, cell)
		}
	case *FootnoteReference:
		// Reference markers carry no prose.
	default:
		for _, c := range Children(n) {
			writeText(sb, c)
		}
	}
}

func writeBlockSeq(sb *strings.Builder, blocks []Block) {
	for i, b := range blocks {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		writeText(sb, b)
	}
}
