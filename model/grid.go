package model

import (
	"fmt"
	"strings"
)

// Repairs counts the recoveries made while resolving a malformed table.
type Repairs struct {
	Padded  int // empty cells added where a row ran out of own cells
	Dropped int // own cells that did not fit within the grid width
	Clipped int // column spans truncated by the grid edge or an active row span
}

// Any reports whether any repair was made.
func (r Repairs) Any() bool {
	return r.Padded > 0 || r.Dropped > 0 || r.Clipped > 0
}

// String returns a short human-readable summary.
func (r Repairs) String() string {
	if !r.Any() {
		return "none"
	}
	parts := make([]string, 0, 3)
	if r.Padded > 0 {
		parts = append(parts, fmt.Sprintf("%d padded", r.Padded))
	}
	if r.Dropped > 0 {
		parts = append(parts, fmt.Sprintf("%d dropped", r.Dropped))
	}
	if r.Clipped > 0 {
		parts = append(parts, fmt.Sprintf("%d clipped", r.Clipped))
	}
	return strings.Join(parts, ", ")
}

// Grid is the fully resolved rectangular form of a Table. Every position in
// [0,Rows) x [0,Cols) holds exactly one value, either from the cell that
// started there or propagated from a spanning cell.
type Grid struct {
	Rows   int
	Cols   int
	Values [][]string
	Header [][]bool

	// HeaderDepth is the number of leading rows treated as header rows.
	HeaderDepth int
	// Headers holds one flattened label per column.
	Headers []string

	Repairs Repairs
}

// NewGrid allocates an empty rows x cols grid.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{
		Rows:    rows,
		Cols:    cols,
		Values:  make([][]string, rows),
		Header:  make([][]bool, rows),
		Headers: make([]string, cols),
	}
	for i := 0; i < rows; i++ {
		g.Values[i] = make([]string, cols)
		g.Header[i] = make([]bool, cols)
	}
	return g
}

// At returns the value at (row, col), or "" when out of range.
func (g *Grid) At(row, col int) string {
	if row < 0 || row >= g.Rows || row >= len(g.Values) || col < 0 || col >= len(g.Values[row]) {
		return ""
	}
	return g.Values[row][col]
}

// IsHeaderAt reports the header flag at (row, col).
func (g *Grid) IsHeaderAt(row, col int) bool {
	if row < 0 || row >= g.Rows || row >= len(g.Header) || col < 0 || col >= len(g.Header[row]) {
		return false
	}
	return g.Header[row][col]
}

// DataRows returns the rows following the header prefix.
func (g *Grid) DataRows() [][]string {
	if g.HeaderDepth >= g.Rows {
		return nil
	}
	return g.Values[g.HeaderDepth:]
}

// IsEmpty reports whether the grid has no columns or no rows.
func (g *Grid) IsEmpty() bool {
	return g.Rows == 0 || g.Cols == 0
}

// IsRectangular reports whether every row has exactly Cols entries.
func (g *Grid) IsRectangular() bool {
	if len(g.Values) != g.Rows || len(g.Header) != g.Rows || len(g.Headers) != g.Cols {
		return false
	}
	for i := 0; i < g.Rows; i++ {
		if len(g.Values[i]) != g.Cols || len(g.Header[i]) != g.Cols {
			return false
		}
	}
	return true
}
