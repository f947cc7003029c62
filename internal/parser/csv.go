package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/bgriffith/docforge/internal/doctree"
)

// CSVParser handles CSV files. The whole file becomes one table: the first
// record is the header row, the rest are data rows.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	doc := doctree.NewDocument()
	doc.SetMeta("title", baseName(filename))

	if len(records) == 0 {
		return doc, nil
	}

	table := &doctree.Table{Header: csvRow(records[0])}
	for range records[0] {
		table.Alignments = append(table.Alignments, doctree.AlignNone)
	}
	for _, record := range records[1:] {
		table.Rows = append(table.Rows, csvRow(record))
	}
	doc.Children = []doctree.Block{table}

	return doc, nil
}

func csvRow(record []string) *doctree.TableRow {
	row := &doctree.TableRow{}
	for _, field := range record {
		row.Cells = append(row.Cells, doctree.NewTableCell(&doctree.Text{Value: field}))
	}
	return row
}
