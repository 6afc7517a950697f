package tablemd

import (
	"runtime"

	"github.com/tsawler/tablemd/htmldoc"
	"github.com/tsawler/tablemd/markdown"
	"github.com/tsawler/tablemd/tables"
)

// ConvertOptions holds configuration for table conversion.
type ConvertOptions struct {
	// Grid building
	separator  string
	headerMode tables.HeaderMode

	// Rendering
	emptyHeaderLabel string

	// Splicing
	blankLines bool

	// Processing
	workers     int    // 0 means runtime.NumCPU()
	contentType string // charset hint for Open and FromReader
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		separator:        tables.DefaultSeparator,
		headerMode:       tables.HeaderAllCells,
		emptyHeaderLabel: "",
		blankLines:       true,
		workers:          0,
		contentType:      "",
	}
}

// clone creates a copy of ConvertOptions.
func (o ConvertOptions) clone() ConvertOptions {
	return ConvertOptions{
		separator:        o.separator,
		headerMode:       o.headerMode,
		emptyHeaderLabel: o.emptyHeaderLabel,
		blankLines:       o.blankLines,
		workers:          o.workers,
		contentType:      o.contentType,
	}
}

func (o ConvertOptions) tablesConfig() tables.Config {
	return tables.Config{
		Separator:  o.separator,
		HeaderMode: o.headerMode,
	}
}

func (o ConvertOptions) markdownOptions() markdown.Options {
	opts := markdown.DefaultOptions()
	opts.EmptyHeaderLabel = o.emptyHeaderLabel
	return opts
}

func (o ConvertOptions) spliceOptions() htmldoc.SpliceOptions {
	return htmldoc.SpliceOptions{BlankLines: o.blankLines}
}

// workerCount bounds the pool by the number of jobs.
func (o ConvertOptions) workerCount(jobs int) int {
	n := o.workers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > jobs {
		n = jobs
	}
	if n < 1 {
		n = 1
	}
	return n
}
