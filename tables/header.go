package tables

import (
	"strings"

	"github.com/tsawler/tablemd/model"
)

// headerDepth counts the leading rows that qualify as header rows.
func (gb *GridBuilder) headerDepth(grid *model.Grid, rows []model.Row) int {
	depth := 0
	for r := 0; r < grid.Rows; r++ {
		if !gb.isHeaderRow(grid.Header[r], rows[r]) {
			break
		}
		depth++
	}
	return depth
}

// isHeaderRow applies the header mode. HeaderAnyCell looks only at the cells
// the row declares itself; a header cell spanning down from above does not
// make a row a header row.
func (gb *GridBuilder) isHeaderRow(flags []bool, own model.Row) bool {
	if gb.config.HeaderMode == HeaderAnyCell {
		return own.AnyHeader()
	}

	if len(flags) == 0 {
		return false
	}
	for _, h := range flags {
		if !h {
			return false
		}
	}
	return true
}

// flattenHeaders produces one label per column from the header rows.
func (gb *GridBuilder) flattenHeaders(grid *model.Grid) []string {
	headers := make([]string, grid.Cols)
	if grid.HeaderDepth == 0 {
		return headers
	}

	fragments := make([]string, grid.HeaderDepth)
	for c := 0; c < grid.Cols; c++ {
		for r := 0; r < grid.HeaderDepth; r++ {
			fragments[r] = grid.Values[r][c]
		}
		headers[c] = FlattenHeader(fragments, gb.config.Separator)
	}
	return headers
}

// FlattenHeader joins the header fragments of one column, top to bottom,
// with sep. Blank fragments are skipped and a fragment equal to the one
// before it is dropped, so a value repeated by a row span appears once.
//
//	FlattenHeader([]string{"Info", "Age"}, " > ")  // "Info > Age"
//	FlattenHeader([]string{"Name", "Name"}, " > ") // "Name"
func FlattenHeader(fragments []string, sep string) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if len(parts) > 0 && parts[len(parts)-1] == f {
			continue
		}
		parts = append(parts, f)
	}
	return strings.Join(parts, sep)
}
