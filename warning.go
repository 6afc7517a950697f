package tablemd

import (
	"fmt"
	"strings"
)

// DocumentLevel is the Table index of warnings that concern the document
// rather than one converted table.
const DocumentLevel = -1

// Warning describes a non-fatal issue found during conversion. The affected
// output is still produced, but may not be what the author intended.
type Warning struct {
	// Table is the 0-based index of the table among the converted tables,
	// or DocumentLevel.
	Table int

	// Message describes the issue.
	Message string
}

// String returns the warning prefixed with the table it concerns.
func (w Warning) String() string {
	if w.Table == DocumentLevel {
		return w.Message
	}
	return fmt.Sprintf("table %d: %s", w.Table+1, w.Message)
}

// FormatWarnings joins warnings into a single human-readable string, one per
// line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
