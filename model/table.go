package model

import (
	"strings"
)

// Span is a half-open byte range [Start, End) in a source document.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// IsValid reports whether the span is non-negative and ordered.
func (s Span) IsValid() bool {
	return s.Start >= 0 && s.End >= s.Start
}

// Cell represents one <th> or <td> element as it appears in the source.
type Cell struct {
	Text     string
	IsHeader bool
	RowSpan  int
	ColSpan  int
}

// NewCell creates a cell with default spans of 1.
func NewCell(text string, isHeader bool) Cell {
	return Cell{
		Text:     text,
		IsHeader: isHeader,
		RowSpan:  1,
		ColSpan:  1,
	}
}

// Rows returns the effective row span (at least 1).
func (c Cell) Rows() int {
	if c.RowSpan < 1 {
		return 1
	}
	return c.RowSpan
}

// Cols returns the effective column span (at least 1).
func (c Cell) Cols() int {
	if c.ColSpan < 1 {
		return 1
	}
	return c.ColSpan
}

// Row is the ordered cell sequence of one <tr>.
type Row []Cell

// Width returns the sum of the effective column spans of the row.
func (r Row) Width() int {
	w := 0
	for _, c := range r {
		w += c.Cols()
	}
	return w
}

// AllHeader reports whether the row is non-empty and every cell is a header cell.
func (r Row) AllHeader() bool {
	if len(r) == 0 {
		return false
	}
	for _, c := range r {
		if !c.IsHeader {
			return false
		}
	}
	return true
}

// AnyHeader reports whether at least one cell of the row is a header cell.
func (r Row) AnyHeader() bool {
	for _, c := range r {
		if c.IsHeader {
			return true
		}
	}
	return false
}

// Table represents a raw HTML table: rows of cells in source order, plus the
// byte range of the <table> element in the document it came from.
type Table struct {
	Rows []Row
	Span Span
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the declared width of the first row
func (t *Table) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return t.Rows[0].Width()
}

// AddRow appends a row and returns the table for chaining.
func (t *Table) AddRow(cells ...Cell) *Table {
	row := make(Row, len(cells))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
	return t
}

// GetText returns the raw cell text, tab-separated per row.
func (t *Table) GetText() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row {
			sb.WriteString(cell.Text)
			if j < len(row)-1 {
				sb.WriteString("\t")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
