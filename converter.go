package tablemd

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/tsawler/tablemd/htmldoc"
	"github.com/tsawler/tablemd/markdown"
	"github.com/tsawler/tablemd/model"
	"github.com/tsawler/tablemd/tables"
)

// Result is one converted table.
type Result struct {
	// Index is the 0-based position of the table in the document.
	Index int

	// Span is the byte range of the <table> element in the UTF-8 source.
	Span model.Span

	// Table is the parsed source table.
	Table *model.Table

	// Grid is the resolved rectangular grid.
	Grid *model.Grid

	// Markdown is the rendered table, or "" for a table without cells.
	Markdown string
}

// Conversion is the outcome of converting one document.
type Conversion struct {
	// Markdown is the document with every table replaced.
	Markdown string

	// Tables holds the converted tables in document order.
	Tables []Result
}

// Converter provides a fluent interface for converting the tables of an
// HTML document to Markdown. Each configuration method returns a new
// Converter instance, making it safe for concurrent use and allowing method
// chaining.
type Converter struct {
	// Source
	filename string
	raw      []byte
	decoded  bool // raw is already UTF-8

	// Configuration
	options ConvertOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Converter with a copy of options.
// This ensures immutability - each chain method returns a new instance.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename: c.filename,
		raw:      c.raw,
		decoded:  c.decoded,
		options:  c.options.clone(),
		err:      c.err,
	}
}

// load returns the UTF-8 source document.
func (c *Converter) load() ([]byte, error) {
	if c.decoded {
		return c.raw, nil
	}

	if c.filename != "" {
		f, err := os.Open(c.filename)
		if err != nil {
			return nil, fmt.Errorf("opening file: %w", err)
		}
		defer f.Close()
		return htmldoc.Decode(f, c.options.contentType)
	}

	if c.raw == nil {
		return nil, fmt.Errorf("no input specified")
	}
	return htmldoc.DecodeBytes(c.raw, c.options.contentType)
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// Separator sets the string placed between the levels of a multi-row
// header. The default is " > ".
//
// Example:
//
//	md, _, err := tablemd.Open("page.html").Separator(" / ").Markdown()
func (c *Converter) Separator(sep string) *Converter {
	newConv := c.clone()
	if sep == "" {
		sep = tables.DefaultSeparator
	}
	newConv.options.separator = sep
	return newConv
}

// AnyHeaderRows counts a leading row as a header row when it contains at
// least one <th> cell, instead of requiring every cell to be a header cell.
func (c *Converter) AnyHeaderRows() *Converter {
	newConv := c.clone()
	newConv.options.headerMode = tables.HeaderAnyCell
	return newConv
}

// LabelEmptyHeaders labels columns whose header is blank. A "%d" verb in
// pattern receives the 1-based column number; any other verb is an error
// reported by the terminal operation.
//
// Example:
//
//	md, _, err := tablemd.Open("page.html").LabelEmptyHeaders("col_%d").Markdown()
func (c *Converter) LabelEmptyHeaders(pattern string) *Converter {
	newConv := c.clone()
	if err := markdown.ValidateLabel(pattern); err != nil && newConv.err == nil {
		newConv.err = err
	}
	newConv.options.emptyHeaderLabel = pattern
	return newConv
}

// InPlace replaces each table element exactly, without adding the blank
// lines that normally separate a Markdown table from surrounding content.
func (c *Converter) InPlace() *Converter {
	newConv := c.clone()
	newConv.options.blankLines = false
	return newConv
}

// Workers sets the number of tables converted concurrently. Zero or a
// negative value means runtime.NumCPU().
func (c *Converter) Workers(n int) *Converter {
	newConv := c.clone()
	newConv.options.workers = n
	return newConv
}

// ContentType supplies a Content-Type header value (such as
// "text/html; charset=shift_jis") used to detect the document charset.
// It has no effect on input given with FromString.
func (c *Converter) ContentType(contentType string) *Converter {
	newConv := c.clone()
	newConv.options.contentType = contentType
	return newConv
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Markdown returns the document with every table replaced by its Markdown
// rendering. All content outside tables is preserved byte for byte and
// tables keep their positions. Warnings report malformed tables that were
// repaired and table regions left unchanged.
//
// Example:
//
//	md, warnings, err := tablemd.Open("page.html").Markdown()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", tablemd.FormatWarnings(warnings))
//	}
func (c *Converter) Markdown() (string, []Warning, error) {
	conv, warnings, err := c.Convert()
	if err != nil {
		return "", warnings, err
	}
	return conv.Markdown, warnings, nil
}

// Convert returns both the rewritten document and the converted tables.
func (c *Converter) Convert() (*Conversion, []Warning, error) {
	doc, results, warnings, err := c.convert()
	if err != nil {
		return nil, nil, err
	}

	replacements := make([]string, len(results))
	for i, r := range results {
		replacements[i] = r.Markdown
	}

	out, err := doc.Replace(replacements, c.options.spliceOptions())
	if err != nil {
		return nil, warnings, fmt.Errorf("replacing tables: %w", err)
	}
	return &Conversion{Markdown: string(out), Tables: results}, warnings, nil
}

// Tables returns every table of the document converted, in document order,
// without rebuilding the document.
func (c *Converter) Tables() ([]Result, []Warning, error) {
	_, results, warnings, err := c.convert()
	if err != nil {
		return nil, nil, err
	}
	return results, warnings, nil
}

// convert loads the document and converts its tables.
func (c *Converter) convert() (*htmldoc.Reader, []Result, []Warning, error) {
	if c.err != nil {
		return nil, nil, nil, c.err
	}

	src, err := c.load()
	if err != nil {
		return nil, nil, nil, err
	}

	doc := htmldoc.NewReader(src)
	results := c.convertTables(doc.Tables())

	return doc, results, collectWarnings(doc, results), nil
}

// convertTables builds and renders tables on a bounded pool of workers.
// Each result slot is written by exactly one worker.
func (c *Converter) convertTables(tbls []*model.Table) []Result {
	results := make([]Result, len(tbls))
	if len(tbls) == 0 {
		return results
	}

	builder := tables.NewGridBuilderWithConfig(c.options.tablesConfig())
	mdOpts := c.options.markdownOptions()

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < c.options.workerCount(len(tbls)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				grid := builder.Build(tbls[i])
				results[i] = Result{
					Index:    i,
					Span:     tbls[i].Span,
					Table:    tbls[i],
					Grid:     grid,
					Markdown: markdown.RenderWithOptions(grid, mdOpts),
				}
			}
		}()
	}

	for i := range tbls {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// collectWarnings reports repairs and regions left unchanged, tables first
// in document order.
func collectWarnings(doc *htmldoc.Reader, results []Result) []Warning {
	var warnings []Warning

	for _, r := range results {
		switch {
		case r.Grid.Cols == 0:
			warnings = append(warnings, Warning{
				Table:   r.Index,
				Message: "table has no cells and was removed",
			})
		case r.Grid.Repairs.Any():
			warnings = append(warnings, Warning{
				Table:   r.Index,
				Message: "malformed structure repaired (" + r.Grid.Repairs.String() + ")",
			})
		}
	}

	for _, span := range doc.Skipped() {
		warnings = append(warnings, Warning{
			Table:   DocumentLevel,
			Message: fmt.Sprintf("table at byte %d could not be parsed and was left unchanged", span.Start),
		})
	}

	if at, ok := doc.Unclosed(); ok {
		warnings = append(warnings, Warning{
			Table:   DocumentLevel,
			Message: fmt.Sprintf("table at byte %d is never closed and was left unchanged", at),
		})
	}

	return warnings
}

// readAll reads r for FromReader, keeping the error for the terminal call.
func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}
