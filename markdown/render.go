package markdown

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/tablemd/model"
)

// AlignLeft is the alignment marker emitted for every column.
const AlignLeft = ":---"

// DefaultLineBreak replaces in-cell newlines.
const DefaultLineBreak = "<br>"

// Options controls table rendering.
type Options struct {
	// LineBreak replaces each run of newlines inside a cell.
	LineBreak string

	// EmptyHeaderLabel, when set, labels columns whose flattened header is
	// blank. A "%d" verb receives the 1-based column number ("col_%d").
	EmptyHeaderLabel string
}

// DefaultOptions returns the default rendering options.
func DefaultOptions() Options {
	return Options{
		LineBreak:        DefaultLineBreak,
		EmptyHeaderLabel: "",
	}
}

var newlineRun = regexp.MustCompile(`[\r\n]+`)

// Render converts a grid to a GitHub-Flavored-Markdown pipe table using the
// default options.
func Render(grid *model.Grid) string {
	return RenderWithOptions(grid, DefaultOptions())
}

// RenderWithOptions converts a grid to a GitHub-Flavored-Markdown pipe table:
// a header row built from grid.Headers, a left-aligned separator row and one
// row per data row. The result ends with a single newline. A grid without
// columns renders as the empty string.
func RenderWithOptions(grid *model.Grid, opts Options) string {
	if grid == nil || grid.Cols == 0 {
		return ""
	}
	if opts.LineBreak == "" {
		opts.LineBreak = DefaultLineBreak
	}

	var sb strings.Builder
	cells := make([]string, grid.Cols)

	for c := range cells {
		label := ""
		if c < len(grid.Headers) {
			label = grid.Headers[c]
		}
		if strings.TrimSpace(label) == "" && opts.EmptyHeaderLabel != "" {
			label = emptyLabel(opts.EmptyHeaderLabel, c+1)
		}
		cells[c] = normalize(label, opts.LineBreak)
	}
	writeRow(&sb, cells)

	for c := range cells {
		cells[c] = AlignLeft
	}
	writeRow(&sb, cells)

	for r := grid.HeaderDepth; r < grid.Rows; r++ {
		for c := range cells {
			cells[c] = normalize(grid.At(r, c), opts.LineBreak)
		}
		writeRow(&sb, cells)
	}

	return sb.String()
}

// Normalize prepares text for a table cell with the default line break:
// newline runs collapse to one <br> and pipes are escaped.
func Normalize(text string) string {
	return normalize(text, DefaultLineBreak)
}

func normalize(text, lineBreak string) string {
	if strings.ContainsAny(text, "\r\n") {
		text = newlineRun.ReplaceAllLiteralString(text, lineBreak)
	}
	return strings.ReplaceAll(text, "|", `\|`)
}

// ErrInvalidLabel is returned by ValidateLabel for a pattern with a verb
// other than a single %d.
var ErrInvalidLabel = errors.New("empty header label may only use one %d verb")

// ValidateLabel checks an EmptyHeaderLabel pattern.
func ValidateLabel(pattern string) error {
	verbs := strings.Count(pattern, "%")
	if verbs > 1 || verbs != strings.Count(pattern, "%d") {
		return fmt.Errorf("%w: %q", ErrInvalidLabel, pattern)
	}
	return nil
}

func emptyLabel(pattern string, col int) string {
	return strings.Replace(pattern, "%d", strconv.Itoa(col), 1)
}

func writeRow(sb *strings.Builder, cells []string) {
	sb.WriteString("| ")
	sb.WriteString(strings.Join(cells, " | "))
	sb.WriteString(" |\n")
}
