// Package rtl converts Arabic text into a visually-ordered, contextually
// joined form that left-to-right-only rendering engines display correctly.
package rtl

import (
	"strings"

	"github.com/01walid/goarabic"
	"golang.org/x/text/unicode/bidi"
)

// Contains reports whether s has any character in the Arabic Unicode block.
func Contains(s string) bool {
	for _, r := range s {
		if r >= 0x0600 && r <= 0x06FF {
			return true
		}
	}
	return false
}

// Shape returns a rendering of s ready for engines without native
// bidirectional support: Arabic letters are joined into their contextual
// presentation forms and the logical order is rewritten into visual order.
// Non-Arabic input is returned unchanged, as is any input the shaping or
// reordering step cannot handle.
func Shape(s string) string {
	if !Contains(s) {
		return s
	}
	joined := goarabic.ToGlyph(s)
	visual, ok := reorder(joined)
	if !ok {
		return s
	}
	return visual
}

// reorder rewrites logical-order text into visual order: runs are emitted
// left to right with the content of right-to-left runs reversed.
func reorder(s string) (string, bool) {
	var p bidi.Paragraph
	if _, err := p.SetString(s, bidi.DefaultDirection(bidi.RightToLeft)); err != nil {
		return "", false
	}
	ordering, err := p.Order()
	if err != nil {
		return "", false
	}

	var b strings.Builder
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		text := run.String()
		if run.Direction() == bidi.RightToLeft {
			text = reverseRunes(text)
		}
		b.WriteString(text)
	}
	return b.String(), true
}

func reverseRunes(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
