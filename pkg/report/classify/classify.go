package classify

import (
	"strconv"
	"strings"
	"time"

	"github.com/hgadco/tabrex/pkg/report/models"
	"github.com/hgadco/tabrex/pkg/report/rtl"
)

// Name hints checked before value probing. Arabic hints come first because
// the upstream views label columns in Arabic.
var (
	linkHints  = []string{"رابط", "link"}
	dateHints  = []string{"تاريخ", "إصدار", "date"}
	plainHints = []string{"شيك", "مسلسل", "serial"}
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02/01/2006",
}

// Column infers the kind of a single column from its name and values.
// First match wins: link name hint, date (name hint or all values parse),
// all-numeric, all-percent-string, otherwise text.
func Column(name string, values []models.Value) Kind {
	if matchesHint(name, linkHints) {
		return Link
	}
	if matchesHint(name, dateHints) || allDates(values) {
		return Date
	}
	if allNumbers(values) {
		return Number
	}
	if allPercents(values) {
		return Percent
	}
	return Text
}

// Columns classifies every column of a table, in column order. Computed once
// per export and threaded through both renderers.
func Columns(t *models.Table) []Kind {
	kinds := make([]Kind, len(t.Columns))
	for i, name := range t.Columns {
		values := make([]models.Value, len(t.Rows))
		for j, row := range t.Rows {
			values[j] = row[i]
		}
		kinds[i] = Column(name, values)
	}
	return kinds
}

// Alignment returns the horizontal alignment convention for a column:
// "C" (center), "R" (right), or "L" (left). Dates and links center, numbers
// right-align, general text follows the script of the column header.
func Alignment(kind Kind, header string) string {
	switch kind {
	case Date, Link:
		return "C"
	case Number, Percent:
		return "R"
	default:
		if rtl.Contains(header) {
			return "R"
		}
		return "L"
	}
}

// PlainDigits reports whether the column name marks an identifier-like
// numeric column (check numbers, serials) that must render without
// thousands separators in the paginated document.
func PlainDigits(name string) bool {
	return matchesHint(name, plainHints)
}

// IsURL reports whether s is a well-formed http(s) URL for link rendering.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func matchesHint(name string, hints []string) bool {
	lower := strings.ToLower(name)
	for _, h := range hints {
		if strings.Contains(lower, h) {
			return true
		}
	}
	return false
}

// ParseDate parses a cell's text form against the accepted date layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseNumber parses a cell's text form as a number after stripping
// grouping separators and surrounding space.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func allDates(values []models.Value) bool {
	seen := false
	for _, v := range values {
		if v.IsNull() {
			continue
		}
		seen = true
		if v.Kind() == models.KindDate {
			continue
		}
		if _, ok := ParseDate(v.String()); !ok {
			return false
		}
	}
	return seen
}

func allNumbers(values []models.Value) bool {
	seen := false
	for _, v := range values {
		if v.IsNull() {
			continue
		}
		seen = true
		if v.Kind() == models.KindNumber {
			continue
		}
		if v.Kind() != models.KindText {
			return false
		}
		if _, ok := ParseNumber(v.String()); !ok {
			return false
		}
	}
	return seen
}

func allPercents(values []models.Value) bool {
	seen := false
	for _, v := range values {
		if v.IsNull() {
			continue
		}
		seen = true
		if v.Kind() != models.KindText || !strings.HasSuffix(strings.TrimSpace(v.String()), "%") {
			return false
		}
	}
	return seen
}
