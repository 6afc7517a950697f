package tables

// HeaderMode selects how leading header rows are recognised.
type HeaderMode int

const (
	// HeaderAllCells treats a row as a header row only when every resolved
	// cell in it, including cells propagated from row spans above, is a
	// header cell.
	HeaderAllCells HeaderMode = iota

	// HeaderAnyCell treats a row as a header row when at least one of its
	// resolved cells is a header cell.
	HeaderAnyCell
)

// String returns the config name of the mode.
func (m HeaderMode) String() string {
	switch m {
	case HeaderAllCells:
		return "all"
	case HeaderAnyCell:
		return "any"
	default:
		return "unknown"
	}
}

// ParseHeaderMode converts "all" or "any" to a HeaderMode. Unknown values
// return HeaderAllCells and false.
func ParseHeaderMode(s string) (HeaderMode, bool) {
	switch s {
	case "all", "":
		return HeaderAllCells, true
	case "any":
		return HeaderAnyCell, true
	default:
		return HeaderAllCells, false
	}
}

// DefaultSeparator joins the fragments of a multi-level column header.
const DefaultSeparator = " > "

// Config holds grid builder configuration
type Config struct {
	// Separator placed between header fragments of one column
	Separator string

	// How the header row prefix is detected
	HeaderMode HeaderMode
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Separator:  DefaultSeparator,
		HeaderMode: HeaderAllCells,
	}
}
