package models

import (
	"fmt"
	"strings"
)

// Table is an ordered, schema-less tabular result set. Columns keep the
// order the data source supplied; every row holds one value (possibly null)
// per declared column, at matching positions.
type Table struct {
	// Columns lists the column names in display order.
	Columns []string
	// Rows holds the data rows, each aligned with Columns.
	Rows [][]Value
}

// Section is a titled table within an export document. Renderers emit
// sections in slice order.
type Section struct {
	// Title is the section heading ("ملخص", "دفتر_التدفق", ...).
	Title string
	// Table is the section's data.
	Table *Table
}

// NewTable creates an empty table with the given column order.
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

// AppendRow appends a row. The row length must match the declared columns.
func (t *Table) AppendRow(row ...Value) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(row), len(t.Columns))
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns all values of the named column in row order.
func (t *Table) Column(name string) []Value {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	out := make([]Value, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out
}

// Drop returns a copy of the table without the named columns. Unknown names
// are ignored. Used to strip technical/internal ID columns before export.
func (t *Table) Drop(names ...string) *Table {
	dropped := make(map[string]bool, len(names))
	for _, n := range names {
		dropped[n] = true
	}

	keep := make([]int, 0, len(t.Columns))
	out := &Table{}
	for i, c := range t.Columns {
		if !dropped[c] {
			keep = append(keep, i)
			out.Columns = append(out.Columns, c)
		}
	}
	for _, row := range t.Rows {
		newRow := make([]Value, len(keep))
		for j, idx := range keep {
			newRow[j] = row[idx]
		}
		out.Rows = append(out.Rows, newRow)
	}
	return out
}

// FilterContains returns a copy keeping only rows whose value in the named
// column contains term, case-insensitively. An unknown column or empty term
// returns the table unchanged.
func (t *Table) FilterContains(column, term string) *Table {
	idx := t.ColumnIndex(column)
	if idx < 0 || term == "" {
		return t
	}
	needle := strings.ToLower(term)
	out := &Table{Columns: t.Columns}
	for _, row := range t.Rows {
		if strings.Contains(strings.ToLower(row[idx].String()), needle) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}
