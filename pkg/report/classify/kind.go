// Package classify infers a semantic kind for each column of a tabular
// result set and provides the formatting that goes with it.
package classify

// Kind is the inferred semantic type of a column.
type Kind int

const (
	// Text is the default kind: verbatim string rendering.
	Text Kind = iota
	// Number renders as a numeric value with grouped-decimal formatting.
	Number
	// Date renders as a date with yyyy-mm-dd display.
	Date
	// Percent marks string values already carrying a trailing percent sign.
	Percent
	// Link renders as a clickable cell labeled with a fixed caption.
	Link
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Date:
		return "date"
	case Percent:
		return "percentage"
	case Link:
		return "hyperlink"
	default:
		return "text"
	}
}
