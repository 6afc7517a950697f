// Package tables resolves raw HTML tables into rectangular logical grids.
//
// An HTML table is a sequence of rows whose cells may span several rows
// and/or columns. The [GridBuilder] expands those spans so that every
// (row, column) position of the result holds exactly one value.
//
// # Algorithm
//
// [GridBuilder.Build] works one row at a time, left to right:
//
//  1. The grid width is the sum of the column spans of the first row
//  2. An active-span ledger records, per column, how many more rows a
//     previously started cell covers and the value it carries
//  3. Columns held by an active span are filled from the ledger; the
//     remaining columns consume the row's own cells in order
//  4. Rows that run short are padded with empty cells; cells that would
//     overflow the width are dropped
//  5. The leading rows made up only of header cells form the header
//  6. Each column's header fragments are joined as "Parent > Child"
//
// Build never fails. Malformed span arithmetic is repaired locally and
// counted in the grid's [model.Repairs].
//
// # Configuration
//
// Builder behavior is controlled by [Config]:
//
//	config := tables.DefaultConfig()
//	config.Separator = " / "
//	config.HeaderMode = tables.HeaderAnyCell
//	grid := tables.NewGridBuilderWithConfig(config).Build(table)
//
// A GridBuilder holds no per-table state, so one builder may be shared by
// goroutines building different tables.
package tables
