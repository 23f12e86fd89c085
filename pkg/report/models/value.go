// Package models defines the data structures exchanged between the data
// source and the export renderers.
package models

import (
	"strconv"
	"time"
)

// ValueKind discriminates the Value union.
type ValueKind int

const (
	// KindNull marks an absent value.
	KindNull ValueKind = iota
	// KindText marks a plain string value.
	KindText
	// KindNumber marks a float64 value.
	KindNumber
	// KindDate marks a time.Time value.
	KindDate
)

// Value is a single cell value: text, number, date, or null.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	date time.Time
}

// Null returns the null value.
func Null() Value { return Value{} }

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, str: s} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Date returns a date value.
func Date(t time.Time) Value { return Value{kind: KindDate, date: t} }

// Kind returns the value's kind.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Num returns the numeric payload. Valid only for KindNumber.
func (v Value) Num() float64 { return v.num }

// Time returns the date payload. Valid only for KindDate.
func (v Value) Time() time.Time { return v.date }

// String returns the verbatim display form of the value: the raw text for
// text values, the shortest decimal form for numbers, yyyy-mm-dd for dates,
// and the empty string for nulls.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindDate:
		return v.date.Format("2006-01-02")
	default:
		return ""
	}
}
