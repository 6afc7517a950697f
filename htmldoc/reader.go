package htmldoc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/tablemd/model"
)

// Reader provides access to the tables of an HTML document.
type Reader struct {
	src      []byte
	tables   []*model.Table
	skipped  []model.Span
	unclosed int
}

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader reads HTML from an io.Reader, converting it to UTF-8 when it
// declares or is detected to use another charset.
func OpenReader(r io.Reader) (*Reader, error) {
	src, err := Decode(r, "")
	if err != nil {
		return nil, err
	}
	return NewReader(src), nil
}

// NewReader locates and parses the tables of a UTF-8 HTML document.
func NewReader(src []byte) *Reader {
	spans, unclosed := locate(src)
	reader := &Reader{
		src:      src,
		tables:   make([]*model.Table, 0),
		unclosed: unclosed,
	}

	for _, span := range spans {
		table, err := ParseTable(src[span.Start:span.End])
		if err != nil {
			reader.skipped = append(reader.skipped, span)
			continue
		}
		table.Span = span
		reader.tables = append(reader.tables, table)
	}

	return reader
}

// Source returns the UTF-8 document the tables were read from.
func (r *Reader) Source() []byte {
	return r.src
}

// Tables returns the parsed tables in document order.
func (r *Reader) Tables() []*model.Table {
	return r.tables
}

// Skipped returns the table ranges that could not be parsed. They are left
// untouched by Replace.
func (r *Reader) Skipped() []model.Span {
	return r.skipped
}

// Unclosed returns the byte offset of a <table> that is never closed, and
// whether there is one. Its content is left untouched.
func (r *Reader) Unclosed() (int, bool) {
	return r.unclosed, r.unclosed >= 0
}

// Replace returns the document with the i-th table replaced by
// replacements[i]. All other bytes are copied unchanged.
func (r *Reader) Replace(replacements []string, opts SpliceOptions) ([]byte, error) {
	spans := make([]model.Span, len(r.tables))
	for i, t := range r.tables {
		spans[i] = t.Span
	}
	return Splice(r.Source(), spans, replacements, opts)
}

// ParseTable parses an HTML fragment holding one <table> element.
func ParseTable(fragment []byte) (*model.Table, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}

	nodes, err := html.ParseFragment(bytes.NewReader(fragment), context)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	for _, n := range nodes {
		if tableNode := findElement(n, "table"); tableNode != nil {
			return parseTable(tableNode), nil
		}
	}

	return nil, ErrNoTable
}

// parseTable extracts the rows of an HTML table element.
func parseTable(tableNode *html.Node) *model.Table {
	table := &model.Table{
		Rows: make([]model.Row, 0),
	}

	// Find thead, tbody, tfoot, or direct tr children
	for c := tableNode.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "thead":
				parseTableRows(c, table, true)
			case "tbody", "tfoot":
				parseTableRows(c, table, false)
			case "tr":
				table.Rows = append(table.Rows, parseTableRow(c, false))
			}
		}
	}

	return table
}

// parseTableRows parses rows within thead, tbody or tfoot.
func parseTableRows(section *html.Node, table *model.Table, isHeader bool) {
	for c := section.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "tr" {
			table.Rows = append(table.Rows, parseTableRow(c, isHeader))
		}
	}
}

// parseTableRow parses a single table row. Rows without cells are kept so
// row spans from earlier rows still advance.
func parseTableRow(tr *html.Node, isHeader bool) model.Row {
	row := make(model.Row, 0)

	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cell := model.Cell{
				Text:     getTextContent(c),
				IsHeader: isHeader || c.Data == "th",
				RowSpan:  1,
				ColSpan:  1,
			}

			// Parse rowspan and colspan
			for _, attr := range c.Attr {
				switch attr.Key {
				case "rowspan":
					cell.RowSpan = parseSpan(attr.Val, MaxRowSpan)
				case "colspan":
					cell.ColSpan = parseSpan(attr.Val, MaxColSpan)
				}
			}

			row = append(row, cell)
		}
	}

	return row
}

// parseSpan reads the leading integer of a span attribute. Missing, invalid
// or non-positive values yield 1; large values are clamped to limit.
func parseSpan(val string, limit int) int {
	n := 0
	if _, err := fmt.Sscanf(strings.TrimSpace(val), "%d", &n); err != nil || n < 1 {
		return 1
	}
	if n > limit {
		return limit
	}
	return n
}

// shouldSkipElement returns true if the element has no readable text.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed":
		return true
	}
	return false
}

// isBlockElement returns true for elements that end a line of cell text.
func isBlockElement(tagName string) bool {
	switch tagName {
	case "p", "div", "li", "ul", "ol", "dl", "dt", "dd", "h1", "h2", "h3", "h4", "h5", "h6",
		"blockquote", "pre", "table", "tr", "caption", "hr", "section", "article":
		return true
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// getTextContent extracts the plain text of a cell. Markup is dropped, <br>
// and block boundaries become newlines, lines are trimmed with inner runs of
// spaces collapsed, and blank lines are removed. Nested tables contribute
// their text.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return cleanLines(result.String())
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "br" {
			result.WriteString("\n")
			return
		}
		if isBlockElement(n.Data) {
			result.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
	if n.Type == html.ElementNode {
		switch {
		case isBlockElement(n.Data):
			result.WriteString("\n")
		case n.Data == "td" || n.Data == "th":
			result.WriteString(" ")
		}
	}
}

// cleanLines trims every line, collapses spaces and tabs inside it and drops
// blank lines.
func cleanLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.FieldsFunc(line, isHorizontalSpace), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func isHorizontalSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\f' || r == '\r'
}
