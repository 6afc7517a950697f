package htmldoc

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tsawler/tablemd/model"
)

// Splice returns doc with each spans[i] replaced by replacements[i]. Spans
// must be in document order and must not overlap. Bytes outside the spans
// are copied unchanged.
func Splice(doc []byte, spans []model.Span, replacements []string, opts SpliceOptions) ([]byte, error) {
	if len(spans) != len(replacements) {
		return nil, fmt.Errorf("splice: %d spans but %d replacements", len(spans), len(replacements))
	}

	var out bytes.Buffer
	out.Grow(len(doc))

	pos := 0
	for i, span := range spans {
		if !span.IsValid() || span.Start < pos || span.End > len(doc) {
			return nil, fmt.Errorf("splice: span %d [%d,%d) out of order or out of range", i, span.Start, span.End)
		}

		out.Write(doc[pos:span.Start])

		rep := replacements[i]
		if opts.BlankLines && rep != "" {
			if !strings.HasSuffix(rep, "\n") {
				rep += "\n"
			}
			out.WriteString(blankLineBefore(out.Bytes()))
			out.WriteString(rep)
			out.WriteString(blankLineAfter(doc[span.End:]))
		} else {
			out.WriteString(rep)
		}

		pos = span.End
	}
	out.Write(doc[pos:])

	return out.Bytes(), nil
}

// blankLineBefore returns the newlines needed so that a block written after
// written starts on a fresh line preceded by a blank line.
func blankLineBefore(written []byte) string {
	if len(written) == 0 {
		return ""
	}

	nl := bytes.LastIndexByte(written, '\n')
	last := written[nl+1:]
	if len(last) > 0 {
		// Mid-line: end it, then add a blank line unless it was already blank.
		if len(bytes.TrimSpace(last)) == 0 {
			return "\n"
		}
		return "\n\n"
	}

	// At the start of a line; check whether the previous line is blank.
	prev := written[:nl]
	pnl := bytes.LastIndexByte(prev, '\n')
	if len(bytes.TrimSpace(prev[pnl+1:])) == 0 {
		return ""
	}
	return "\n"
}

// blankLineAfter returns the newline needed so that rest, which follows a
// block ending in a newline, is separated from it by a blank line.
func blankLineAfter(rest []byte) string {
	if len(rest) == 0 {
		return ""
	}
	nl := bytes.IndexByte(rest, '\n')
	if nl >= 0 && len(bytes.TrimSpace(rest[:nl])) == 0 {
		return ""
	}
	return "\n"
}
