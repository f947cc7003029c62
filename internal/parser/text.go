package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/bgriffith/docforge/internal/doctree"
)

// TextParser handles plain text files. Blank lines separate paragraphs;
// line breaks inside a paragraph become soft breaks.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs [][]string
	var current []string

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				paragraphs = append(paragraphs, current)
				current = nil
			}
		} else {
			current = append(current, line)
		}
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, current)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	doc := doctree.NewDocument()
	doc.SetMeta("title", baseName(filename))
	for _, lines := range paragraphs {
		var content []doctree.Inline
		for i, line := range lines {
			if i > 0 {
				content = append(content, &doctree.SoftBreak{})
			}
			content = append(content, &doctree.Text{Value: line})
		}
		doc.Children = append(doc.Children, &doctree.Paragraph{Content: content})
	}

	return doc, nil
}
