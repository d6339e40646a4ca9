package renderer

import (
	"bytes"
	"fmt"
	"strings"

	md "github.com/nao1215/markdown"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown renders the table as a GFM markdown document with a title.
func Markdown(title string, t *Table) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)
	if len(t.Rows) == 0 {
		doc.PlainText("No statement matches the criteria.")
		return doc.String()
	}

	table := md.TableSet{}
	for _, c := range t.Columns {
		header := c.Title
		if c.Active {
			header += " " + c.Marker(t.Direction)
		}
		table.Header = append(table.Header, header)
		if c.Numeric {
			table.Alignment = append(table.Alignment, md.AlignRight)
		} else {
			table.Alignment = append(table.Alignment, md.AlignLeft)
		}
	}
	table.Rows = t.Rows
	doc.Table(table)
	return doc.String()
}

// markdownToHTML converts GFM markdown to an HTML fragment.
var markdownToHTML = goldmark.New(goldmark.WithExtensions(extension.Table))

// HTML renders the table as a standalone HTML fragment, converted from its markdown rendition.
func HTML(title string, t *Table) (string, error) {
	var out strings.Builder
	if err := markdownToHTML.Convert([]byte(Markdown(title, t)), &out); err != nil {
		return "", fmt.Errorf("converting markdown to html: %w", err)
	}
	return out.String(), nil
}

// Title returns the document title for the statements of a symbol.
func Title(symbol string) string {
	if symbol == "" {
		return "Financial Data"
	}
	return fmt.Sprintf("%s Financial Data", symbol)
}
