package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/tablemd/model"
)

func createTestGrid() *model.Grid {
	grid := model.NewGrid(3, 2)
	grid.Values = [][]string{
		{"Name", "Age"},
		{"Alice", "30"},
		{"Bob", "a,b"},
	}
	grid.Header[0][0] = true
	grid.Header[0][1] = true
	grid.HeaderDepth = 1
	grid.Headers = []string{"Name", "Age"}
	return grid
}

func createTestTables() []ExportedTable {
	padded := model.NewGrid(1, 3)
	padded.Values = [][]string{{"x", "", ""}}
	padded.Headers = []string{"", "", ""}
	padded.Repairs = model.Repairs{Padded: 2}

	return []ExportedTable{
		NewExportedTable(0, model.Span{Start: 10, End: 90}, createTestGrid()),
		NewExportedTable(1, model.Span{Start: 120, End: 160}, padded),
	}
}

func TestExportFormat_String(t *testing.T) {
	tests := []struct {
		format ExportFormat
		want   string
		ext    string
	}{
		{ExportFormatYAML, "yaml", ".yaml"},
		{ExportFormatJSON, "json", ".json"},
		{ExportFormatJSONL, "jsonl", ".jsonl"},
		{ExportFormatCSV, "csv", ".csv"},
		{ExportFormatTSV, "tsv", ".tsv"},
		{ExportFormat(99), "unknown", ".txt"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("ExportFormat(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
		if got := tt.format.FileExtension(); got != tt.ext {
			t.Errorf("ExportFormat(%d).FileExtension() = %q, want %q", tt.format, got, tt.ext)
		}
	}
}

func TestParseExportFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ExportFormat
		wantErr bool
	}{
		{"", ExportFormatYAML, false},
		{"yaml", ExportFormatYAML, false},
		{"YML", ExportFormatYAML, false},
		{"json", ExportFormatJSON, false},
		{" jsonl ", ExportFormatJSONL, false},
		{"ndjson", ExportFormatJSONL, false},
		{"csv", ExportFormatCSV, false},
		{"tsv", ExportFormatTSV, false},
		{"xml", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseExportFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseExportFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseExportFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewExportedTable(t *testing.T) {
	tables := createTestTables()

	first := tables[0]
	if first.Start != 10 || first.End != 90 {
		t.Errorf("span = [%d,%d), want [10,90)", first.Start, first.End)
	}
	if first.Rows != 3 || first.Cols != 2 || first.HeaderDepth != 1 {
		t.Errorf("shape = %dx%d depth %d, want 3x2 depth 1", first.Rows, first.Cols, first.HeaderDepth)
	}
	if first.Repairs != nil {
		t.Errorf("Repairs = %+v, want nil for a well-formed table", first.Repairs)
	}

	if tables[1].Repairs == nil || tables[1].Repairs.Padded != 2 {
		t.Errorf("Repairs = %+v, want 2 padded", tables[1].Repairs)
	}

	empty := NewExportedTable(3, model.Span{}, nil)
	if empty.Index != 3 || empty.Rows != 0 || empty.Values != nil {
		t.Errorf("NewExportedTable(nil grid) = %+v", empty)
	}
}

func TestExporter_YAML(t *testing.T) {
	out, err := NewExporter().ExportToString(createTestTables())
	if err != nil {
		t.Fatalf("ExportToString() failed: %v", err)
	}

	var decoded []ExportedTable
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, out)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d tables, want 2", len(decoded))
	}
	if diff := cmp.Diff(createTestGrid().Values, decoded[0].Values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(out, "header_flags") {
		t.Error("header flags should be omitted by default")
	}
	if !strings.Contains(out, "padded: 2") {
		t.Errorf("repairs missing from YAML:\n%s", out)
	}
}

func TestExporter_JSON(t *testing.T) {
	config := DefaultExportConfig()
	config.Format = ExportFormatJSON
	config.IncludeFlags = true
	config.PrettyPrint = true

	out, err := NewExporterWithConfig(config).ExportToString(createTestTables())
	if err != nil {
		t.Fatalf("ExportToString() failed: %v", err)
	}

	var decoded []ExportedTable
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d tables, want 2", len(decoded))
	}
	if !decoded[0].HeaderFlags[0][0] || decoded[0].HeaderFlags[1][0] {
		t.Errorf("HeaderFlags = %v, want header row only", decoded[0].HeaderFlags)
	}
	if !strings.Contains(out, "\n  ") {
		t.Error("PrettyPrint should indent the output")
	}
}

func TestExporter_JSONL(t *testing.T) {
	exp := NewExporterWithConfig(ExportConfig{Format: ExportFormatJSONL})
	out, err := exp.ExportToString(createTestTables())
	if err != nil {
		t.Fatalf("ExportToString() failed: %v", err)
	}

	scanner := bufio.NewScanner(strings.NewReader(out))
	lines := 0
	for scanner.Scan() {
		var table ExportedTable
		if err := json.Unmarshal(scanner.Bytes(), &table); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", lines+1, err)
		}
		if table.Index != lines {
			t.Errorf("line %d index = %d", lines+1, table.Index)
		}
		lines++
	}
	if lines != 2 {
		t.Errorf("JSONL lines = %d, want 2", lines)
	}
}

func TestExporter_CSV(t *testing.T) {
	exp := NewExporterWithConfig(ExportConfig{Format: ExportFormatCSV, IncludeHeader: true})
	out, err := exp.ExportToString(createTestTables())
	if err != nil {
		t.Fatalf("ExportToString() failed: %v", err)
	}

	reader := csv.NewReader(strings.NewReader(out))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	want := [][]string{
		{"table", "row", "header", "c0", "c1", "c2"},
		{"0", "0", "true", "Name", "Age"},
		{"0", "1", "false", "Alice", "30"},
		{"0", "2", "false", "Bob", "a,b"},
		{"1", "0", "false", "x", "", ""},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestExporter_TSV(t *testing.T) {
	exp := NewExporterWithConfig(ExportConfig{Format: ExportFormatTSV})
	out, err := exp.ExportToString(createTestTables()[:1])
	if err != nil {
		t.Fatalf("ExportToString() failed: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("TSV lines = %d, want 3 (no header record)", len(lines))
	}
	if lines[0] != "0\t0\ttrue\tName\tAge" {
		t.Errorf("first record = %q", lines[0])
	}
}

func TestExporter_UnsupportedFormat(t *testing.T) {
	exp := NewExporterWithConfig(ExportConfig{Format: ExportFormat(42)})
	if _, err := exp.ExportToString(createTestTables()); err == nil {
		t.Error("Export() expected error for unknown format")
	}
}

func TestExporter_DoesNotModifyInput(t *testing.T) {
	tables := []ExportedTable{NewExportedTable(0, model.Span{}, createTestGrid())}
	if _, err := NewExporter().ExportToString(tables); err != nil {
		t.Fatalf("ExportToString() failed: %v", err)
	}
	if tables[0].HeaderFlags == nil {
		t.Error("Export() cleared header flags on the caller's slice")
	}
}

func TestExporter_ExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grids.yaml")

	if err := NewExporter().ExportToFile(createTestTables(), path); err != nil {
		t.Fatalf("ExportToFile() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.Contains(string(data), "header_depth: 1") {
		t.Errorf("unexpected file content:\n%s", data)
	}
}
