package models

import (
	"testing"
	"time"
)

func TestAppendRowLength(t *testing.T) {
	tbl := NewTable("a", "b")
	if err := tbl.AppendRow(Text("x"), Text("y")); err != nil {
		t.Fatalf("AppendRow failed: %v", err)
	}
	if err := tbl.AppendRow(Text("x")); err == nil {
		t.Errorf("expected error for short row")
	}
	if len(tbl.Rows) != 1 {
		t.Errorf("expected 1 row, got %d", len(tbl.Rows))
	}
}

func TestDrop(t *testing.T) {
	tbl := NewTable("companyid", "المشروع", "contractid", "القيمة")
	tbl.AppendRow(Number(1), Text("برج"), Number(9), Number(1500.5))

	got := tbl.Drop("companyid", "contractid", "missing")

	wantCols := []string{"المشروع", "القيمة"}
	if len(got.Columns) != len(wantCols) {
		t.Fatalf("got %d columns, want %d", len(got.Columns), len(wantCols))
	}
	for i, c := range wantCols {
		if got.Columns[i] != c {
			t.Errorf("column %d: got %q, want %q", i, got.Columns[i], c)
		}
	}
	if got.Rows[0][0].String() != "برج" || got.Rows[0][1].Num() != 1500.5 {
		t.Errorf("row values misaligned after drop: %v", got.Rows[0])
	}

	// The original table is untouched.
	if len(tbl.Columns) != 4 {
		t.Errorf("source table mutated: %v", tbl.Columns)
	}
}

func TestFilterContains(t *testing.T) {
	tbl := NewTable("الاسم")
	tbl.AppendRow(Text("أحمد علي"))
	tbl.AppendRow(Text("سارة"))
	tbl.AppendRow(Text("Ahmed"))

	got := tbl.FilterContains("الاسم", "أحمد")
	if len(got.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(got.Rows))
	}

	caseless := tbl.FilterContains("الاسم", "ahmed")
	if len(caseless.Rows) != 1 {
		t.Errorf("case-insensitive filter got %d rows, want 1", len(caseless.Rows))
	}

	unknown := tbl.FilterContains("nope", "x")
	if len(unknown.Rows) != 3 {
		t.Errorf("unknown column should pass through, got %d rows", len(unknown.Rows))
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{Null(), ""},
		{Text("أحمد"), "أحمد"},
		{Number(1500.5), "1500.5"},
		{Number(42), "42"},
		{Date(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)), "2024-03-01"},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
