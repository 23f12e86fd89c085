package classify

import (
	"testing"
	"time"

	"github.com/hgadco/tabrex/pkg/report/models"
)

func TestGrouped(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{1500.5, "1,500.50"},
		{0, "0.00"},
		{1234567.891, "1,234,567.89"},
		{-42, "-42.00"},
	}

	for _, tt := range tests {
		if got := Grouped(tt.input); got != tt.want {
			t.Errorf("Grouped(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatCell(t *testing.T) {
	date := models.Date(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name  string
		value models.Value
		kind  Kind
		plain bool
		want  string
	}{
		{"grouped number", models.Number(1500.5), Number, false, "1,500.50"},
		{"plain digits", models.Number(123456), Number, true, "123456"},
		{"number from string", models.Text("2,000"), Number, false, "2,000.00"},
		{"percent passes through per value", models.Text("75%"), Number, false, "75%"},
		{"malformed number degrades", models.Text("n/a"), Number, false, "n/a"},
		{"native date", date, Date, false, "2024-03-01"},
		{"date from string", models.Text("2024/03/01"), Date, false, "2024-03-01"},
		{"malformed date degrades", models.Text("soon"), Date, false, "soon"},
		{"null is empty", models.Null(), Number, false, ""},
		{"text verbatim", models.Text("أحمد"), Text, false, "أحمد"},
	}

	for _, tt := range tests {
		if got := FormatCell(tt.value, tt.kind, tt.plain); got != tt.want {
			t.Errorf("%s: FormatCell = %q, want %q", tt.name, got, tt.want)
		}
	}
}
