// Package export writes logical table grids in structured formats.
//
// It is the inspection counterpart of the Markdown renderer: where the
// renderer produces the text a reader sees, an export shows the rectangular
// grid that the renderer was given, including the header depth, the
// flattened column headers and any repairs applied to malformed tables.
//
// # Formats
//
//   - YAML: a sequence of table documents (default)
//   - JSON: a single array of tables
//   - JSON Lines: one table object per line
//   - CSV / TSV: one record per grid row, prefixed with the table index, the
//     row number and whether the row belongs to the header prefix
//
// # Usage
//
//	grid := tables.Build(table)
//	exp := export.NewExporterWithConfig(export.ExportConfig{Format: export.ExportFormatJSON})
//	out, err := exp.ExportToString([]export.ExportedTable{
//		export.NewExportedTable(0, table.Span, grid),
//	})
package export
