package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/tablemd/model"
)

// ExportFormat defines the available export formats
type ExportFormat int

const (
	// ExportFormatYAML exports as a YAML sequence of tables
	ExportFormatYAML ExportFormat = iota
	// ExportFormatJSON exports as a JSON array
	ExportFormatJSON
	// ExportFormatJSONL exports as JSON Lines (one table per line)
	ExportFormatJSONL
	// ExportFormatCSV exports grid rows as comma-separated values
	ExportFormatCSV
	// ExportFormatTSV exports grid rows as tab-separated values
	ExportFormatTSV
)

// String returns a human-readable representation of the export format
func (ef ExportFormat) String() string {
	switch ef {
	case ExportFormatYAML:
		return "yaml"
	case ExportFormatJSON:
		return "json"
	case ExportFormatJSONL:
		return "jsonl"
	case ExportFormatCSV:
		return "csv"
	case ExportFormatTSV:
		return "tsv"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format
func (ef ExportFormat) FileExtension() string {
	switch ef {
	case ExportFormatYAML:
		return ".yaml"
	case ExportFormatJSON:
		return ".json"
	case ExportFormatJSONL:
		return ".jsonl"
	case ExportFormatCSV:
		return ".csv"
	case ExportFormatTSV:
		return ".tsv"
	default:
		return ".txt"
	}
}

// ParseExportFormat maps a format name (case-insensitive, "yml" accepted)
// to an ExportFormat.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yaml", "yml":
		return ExportFormatYAML, nil
	case "json":
		return ExportFormatJSON, nil
	case "jsonl", "ndjson":
		return ExportFormatJSONL, nil
	case "csv":
		return ExportFormatCSV, nil
	case "tsv":
		return ExportFormatTSV, nil
	}
	return 0, fmt.Errorf("unsupported export format: %q", s)
}

// ExportConfig holds configuration options for export
type ExportConfig struct {
	// Format specifies the export format
	Format ExportFormat

	// IncludeFlags includes the per-cell header flags
	IncludeFlags bool

	// PrettyPrint enables indentation for the JSON formats
	PrettyPrint bool

	// IncludeHeader writes a header record in CSV/TSV exports
	IncludeHeader bool
}

// DefaultExportConfig returns sensible defaults for export configuration
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		Format:        ExportFormatYAML,
		IncludeFlags:  false,
		PrettyPrint:   false,
		IncludeHeader: true,
	}
}

// Exporter writes logical grids in a structured format
type Exporter struct {
	config ExportConfig
}

// NewExporter creates a new exporter with default configuration
func NewExporter() *Exporter {
	return &Exporter{
		config: DefaultExportConfig(),
	}
}

// NewExporterWithConfig creates an exporter with custom configuration
func NewExporterWithConfig(config ExportConfig) *Exporter {
	return &Exporter{
		config: config,
	}
}

// ExportedTable is a logical grid prepared for export.
type ExportedTable struct {
	Index       int        `json:"index" yaml:"index"`
	Start       int        `json:"start" yaml:"start"`
	End         int        `json:"end" yaml:"end"`
	Rows        int        `json:"rows" yaml:"rows"`
	Cols        int        `json:"cols" yaml:"cols"`
	HeaderDepth int        `json:"header_depth" yaml:"header_depth"`
	Headers     []string   `json:"headers" yaml:"headers"`
	Values      [][]string `json:"values" yaml:"values"`
	HeaderFlags [][]bool   `json:"header_flags,omitempty" yaml:"header_flags,omitempty"`
	Repairs     *Repairs   `json:"repairs,omitempty" yaml:"repairs,omitempty"`
}

// Repairs mirrors model.Repairs with serialization tags.
type Repairs struct {
	Padded  int `json:"padded" yaml:"padded"`
	Dropped int `json:"dropped" yaml:"dropped"`
	Clipped int `json:"clipped" yaml:"clipped"`
}

// NewExportedTable converts the grid of the index-th table, found at span in
// its source document.
func NewExportedTable(index int, span model.Span, grid *model.Grid) ExportedTable {
	exported := ExportedTable{
		Index: index,
		Start: span.Start,
		End:   span.End,
	}
	if grid == nil {
		return exported
	}

	exported.Rows = grid.Rows
	exported.Cols = grid.Cols
	exported.HeaderDepth = grid.HeaderDepth
	exported.Headers = grid.Headers
	exported.Values = grid.Values
	exported.HeaderFlags = grid.Header

	if grid.Repairs.Any() {
		exported.Repairs = &Repairs{
			Padded:  grid.Repairs.Padded,
			Dropped: grid.Repairs.Dropped,
			Clipped: grid.Repairs.Clipped,
		}
	}

	return exported
}

// Export writes tables to w in the configured format
func (e *Exporter) Export(tables []ExportedTable, w io.Writer) error {
	prepared := e.prepare(tables)

	switch e.config.Format {
	case ExportFormatYAML:
		return e.exportYAML(prepared, w)
	case ExportFormatJSON:
		return e.exportJSON(prepared, w)
	case ExportFormatJSONL:
		return e.exportJSONL(prepared, w)
	case ExportFormatCSV:
		return e.exportCSV(prepared, w, ',')
	case ExportFormatTSV:
		return e.exportCSV(prepared, w, '\t')
	default:
		return fmt.Errorf("unsupported export format: %v", e.config.Format)
	}
}

// ExportToFile writes tables to a file
func (e *Exporter) ExportToFile(tables []ExportedTable, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	return e.Export(tables, f)
}

// ExportToString writes tables to a string
func (e *Exporter) ExportToString(tables []ExportedTable) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(tables, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// prepare applies the field selection without modifying the caller's slice.
func (e *Exporter) prepare(tables []ExportedTable) []ExportedTable {
	prepared := make([]ExportedTable, len(tables))
	copy(prepared, tables)
	if !e.config.IncludeFlags {
		for i := range prepared {
			prepared[i].HeaderFlags = nil
		}
	}
	return prepared
}

// exportYAML writes tables as one YAML sequence
func (e *Exporter) exportYAML(tables []ExportedTable, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(tables); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return encoder.Close()
}

// exportJSON writes tables as a JSON array
func (e *Exporter) exportJSON(tables []ExportedTable, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if e.config.PrettyPrint {
		encoder.SetIndent("", "  ")
	}

	return encoder.Encode(tables)
}

// exportJSONL writes one JSON object per table
func (e *Exporter) exportJSONL(tables []ExportedTable, w io.Writer) error {
	encoder := json.NewEncoder(w)

	for i, table := range tables {
		if err := encoder.Encode(table); err != nil {
			return fmt.Errorf("encoding table %d: %w", i, err)
		}
	}

	return nil
}

// exportCSV writes one record per grid row, prefixed with the table index
// and row number. Rows inside the header prefix are marked in the "header"
// column.
func (e *Exporter) exportCSV(tables []ExportedTable, w io.Writer, delimiter rune) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter

	if e.config.IncludeHeader {
		if err := csvWriter.Write(csvColumns(tables)); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
	}

	for _, table := range tables {
		for r, values := range table.Values {
			record := make([]string, 0, len(values)+3)
			record = append(record,
				strconv.Itoa(table.Index),
				strconv.Itoa(r),
				strconv.FormatBool(r < table.HeaderDepth),
			)
			record = append(record, values...)
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("writing table %d row %d: %w", table.Index, r, err)
			}
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// csvColumns names the fixed columns followed by c0..cN-1 for the widest
// table.
func csvColumns(tables []ExportedTable) []string {
	width := 0
	for _, table := range tables {
		if table.Cols > width {
			width = table.Cols
		}
	}

	columns := []string{"table", "row", "header"}
	for c := 0; c < width; c++ {
		columns = append(columns, "c"+strconv.Itoa(c))
	}
	return columns
}
