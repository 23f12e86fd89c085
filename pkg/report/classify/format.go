package classify

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hgadco/tabrex/pkg/report/models"
)

// DateDisplay is the canonical display layout for date cells.
const DateDisplay = "2006-01-02"

var groupedPrinter = message.NewPrinter(language.English)

// Grouped formats a number with thousands separators and two decimals,
// e.g. 1500.5 -> "1,500.50".
func Grouped(f float64) string {
	return groupedPrinter.Sprintf("%.2f", f)
}

// PlainNumber formats a number as plain digits without separators, for
// identifier-like columns where grouping would mislead.
func PlainNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatCell renders a value under a column kind for text-based output.
// Grouping is decided per value, not per column: a value already carrying a
// percent sign passes through verbatim even inside a numeric column, and a
// value that does not parse under the column's kind degrades to its string
// form rather than failing the cell.
func FormatCell(v models.Value, kind Kind, plainDigits bool) string {
	if v.IsNull() {
		return ""
	}
	switch kind {
	case Number:
		s := v.String()
		if strings.HasSuffix(strings.TrimSpace(s), "%") {
			return s
		}
		f, ok := numeric(v)
		if !ok {
			return s
		}
		if plainDigits {
			return PlainNumber(f)
		}
		return Grouped(f)
	case Date:
		if v.Kind() == models.KindDate {
			return v.Time().Format(DateDisplay)
		}
		if t, ok := ParseDate(v.String()); ok {
			return t.Format(DateDisplay)
		}
		return v.String()
	default:
		return v.String()
	}
}

func numeric(v models.Value) (float64, bool) {
	if v.Kind() == models.KindNumber {
		return v.Num(), true
	}
	return ParseNumber(v.String())
}
