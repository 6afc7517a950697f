// Package model provides the data structures shared by the table conversion
// pipeline.
//
// # Raw tables
//
// A [Table] is an HTML table as written in the source: an ordered list of
// [Row] values, each an ordered list of [Cell] values carrying the cell text,
// whether it came from a <th>, and its rowspan/colspan. The [Span] records
// where the <table> element sits in the original document so the rendered
// Markdown can be spliced back into place.
//
//	t := &model.Table{}
//	t.AddRow(model.NewCell("Name", true), model.NewCell("Age", true))
//	t.AddRow(model.NewCell("Alice", false), model.NewCell("30", false))
//
// # Grids
//
// A [Grid] is the rectangular result of resolving every span of a Table:
//
//   - Values and Header hold one entry per (row, column)
//   - HeaderDepth is the length of the all-header row prefix
//   - Headers holds one flattened "Parent > Child" label per column
//   - [Repairs] counts padding and clipping applied to malformed input
//
// Grids are produced by the tables package and consumed by the markdown
// package.
package model
