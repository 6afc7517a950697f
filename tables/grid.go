package tables

import (
	"github.com/tsawler/tablemd/model"
)

// spanEntry is one column slot of the active-span ledger: how many more rows
// a previously started cell covers, and the value and header flag it carries.
type spanEntry struct {
	remaining int
	value     string
	header    bool
}

// GridBuilder resolves raw tables into rectangular grids
type GridBuilder struct {
	config Config
}

// NewGridBuilder creates a new grid builder with default settings
func NewGridBuilder() *GridBuilder {
	return &GridBuilder{config: DefaultConfig()}
}

// NewGridBuilderWithConfig creates a grid builder with the given configuration
func NewGridBuilderWithConfig(config Config) *GridBuilder {
	gb := &GridBuilder{}
	gb.Configure(config)
	return gb
}

// Configure sets builder parameters. An empty separator falls back to
// DefaultSeparator.
func (gb *GridBuilder) Configure(config Config) {
	if config.Separator == "" {
		config.Separator = DefaultSeparator
	}
	gb.config = config
}

// Config returns the current configuration
func (gb *GridBuilder) Config() Config {
	return gb.config
}

// Build resolves a table with the default configuration.
func Build(table *model.Table) *model.Grid {
	return NewGridBuilder().Build(table)
}

// Build resolves every row and column span of table into a rectangular grid
// and derives the header prefix and flattened column labels.
//
// The width of the grid is fixed by the first row. Later rows are padded with
// empty non-header cells or have their excess cells dropped so that every row
// has exactly that width. Build never fails; the repairs it had to make are
// counted in Grid.Repairs.
func (gb *GridBuilder) Build(table *model.Table) *model.Grid {
	if table == nil || len(table.Rows) == 0 {
		return model.NewGrid(0, 0)
	}

	grid := model.NewGrid(len(table.Rows), table.Rows[0].Width())
	ledger := make([]spanEntry, grid.Cols)

	for r, row := range table.Rows {
		fillRow(grid, r, row, ledger)
	}

	grid.HeaderDepth = gb.headerDepth(grid, table.Rows)
	grid.Headers = gb.flattenHeaders(grid)

	return grid
}

// fillRow writes one source row into grid row r. Columns held by an active
// span are filled from the ledger first; own cells are consumed left to right
// into the remaining columns.
func fillRow(grid *model.Grid, r int, row model.Row, ledger []spanEntry) {
	next := 0

	for c := 0; c < grid.Cols; {
		if span := &ledger[c]; span.remaining > 0 {
			grid.Values[r][c] = span.value
			grid.Header[r][c] = span.header
			span.remaining--
			c++
			continue
		}

		if next >= len(row) {
			// Out of own cells; the zero value is an empty data cell.
			grid.Repairs.Padded++
			c++
			continue
		}

		cell := row[next]
		next++

		// The cell stops at the grid edge or at the first column still held
		// by a span from an earlier row.
		width := 0
		for width < cell.Cols() && c+width < grid.Cols && ledger[c+width].remaining == 0 {
			grid.Values[r][c+width] = cell.Text
			grid.Header[r][c+width] = cell.IsHeader
			if cell.Rows() > 1 {
				ledger[c+width] = spanEntry{
					remaining: cell.Rows() - 1,
					value:     cell.Text,
					header:    cell.IsHeader,
				}
			}
			width++
		}
		if width < cell.Cols() {
			grid.Repairs.Clipped++
		}
		c += width
	}

	if next < len(row) {
		grid.Repairs.Dropped += len(row) - next
	}
}
