// Package htmldoc provides HTML document parsing: locating <table> elements
// in a document, parsing each into a model.Table, and splicing replacement
// text back over the original table markup.
package htmldoc

import (
	"errors"
)

// ErrNoTable is returned by ParseTable when the input holds no <table> element.
var ErrNoTable = errors.New("no table element found")

// Span limits applied while parsing rowspan and colspan attributes. They
// match the clamping browsers apply.
const (
	MaxRowSpan = 65534
	MaxColSpan = 1000
)

// SpliceOptions controls how rendered tables are written back into a document.
type SpliceOptions struct {
	// BlankLines pads each replacement with newlines so that it is separated
	// from the surrounding content by a blank line. Surrounding bytes are
	// never modified. When false, the table element is replaced exactly.
	BlankLines bool
}

// DefaultSpliceOptions returns the default splice options.
func DefaultSpliceOptions() SpliceOptions {
	return SpliceOptions{BlankLines: true}
}
