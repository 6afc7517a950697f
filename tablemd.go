// Package tablemd provides a fluent API for converting the tables of an HTML
// document to GitHub-Flavored-Markdown tables.
//
// Basic usage:
//
//	md, warnings, err := tablemd.Open("page.html").Markdown()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", tablemd.FormatWarnings(warnings))
//	}
//
// Every <table> element is replaced by a pipe table; everything else in the
// document is left exactly as it was. Row and column spans are resolved into
// a rectangular grid and multi-row headers are flattened into one header row
// ("Parent > Child").
//
// With options:
//
//	md, _, err := tablemd.FromString(html).
//	    Separator(" / ").
//	    LabelEmptyHeaders("col_%d").
//	    InPlace().
//	    Markdown()
//
// For lower-level access, the htmldoc, tables and markdown packages expose
// each stage of the pipeline.
package tablemd

import (
	"io"
)

// Open returns a Converter for an HTML file. The file is read, and decoded
// to UTF-8 when it uses another charset, by the terminal operation.
//
// Example:
//
//	md, warnings, err := tablemd.Open("page.html").Markdown()
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromString returns a Converter for an HTML document held in a string.
// The string is used as is; Go strings are expected to hold UTF-8.
func FromString(doc string) *Converter {
	return &Converter{
		raw:     []byte(doc),
		decoded: true,
		options: defaultOptions(),
	}
}

// FromReader returns a Converter for an HTML document read from r. The
// reader is consumed immediately; a read error is reported by the terminal
// operation.
//
// Example:
//
//	resp, err := http.Get(url)
//	...
//	md, _, err := tablemd.FromReader(resp.Body).
//	    ContentType(resp.Header.Get("Content-Type")).
//	    Markdown()
func FromReader(r io.Reader) *Converter {
	data, err := readAll(r)
	return &Converter{
		raw:     data,
		options: defaultOptions(),
		err:     err,
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to Markdown() or Tables() and
// panics if the error is non-nil. It discards warnings and returns just the
// value.
//
// Example:
//
//	md := tablemd.MustText(tablemd.Open("page.html").Markdown())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
