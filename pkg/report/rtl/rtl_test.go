package rtl

import (
	"strings"
	"testing"
)

func TestContains(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"hello", false},
		{"", false},
		{"مرحبا", true},
		{"total: القيمة", true},
		{"1500.50", false},
	}

	for _, tt := range tests {
		if got := Contains(tt.input); got != tt.want {
			t.Errorf("Contains(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestShapeLatinNoop(t *testing.T) {
	inputs := []string{"hello world", "1,500.50", "https://example.com/x", ""}
	for _, s := range inputs {
		if got := Shape(s); got != s {
			t.Errorf("Shape(%q) = %q, want unchanged", s, got)
		}
	}
}

// Shaping a pure-Latin string twice stays a no-op, and Arabic shaping is
// deterministic from the same unshaped original.
func TestShapeDeterministic(t *testing.T) {
	latin := "quarterly report"
	if Shape(Shape(latin)) != latin {
		t.Errorf("Shape is not a no-op for Latin input")
	}

	arabic := "قاعدة البيانات والتقارير المالية"
	first := Shape(arabic)
	second := Shape(arabic)
	if first != second {
		t.Errorf("Shape(%q) not deterministic: %q vs %q", arabic, first, second)
	}
	if first == "" {
		t.Errorf("Shape(%q) returned empty output", arabic)
	}
}

func TestShapeMixedKeepsLatinRun(t *testing.T) {
	mixed := "ملخص HGAD 2024"
	got := Shape(mixed)
	if got == "" {
		t.Fatalf("Shape(%q) returned empty output", mixed)
	}
	// The Latin run must survive reordering intact.
	if !strings.Contains(got, "HGAD") {
		t.Errorf("Shape(%q) = %q, Latin run mangled", mixed, got)
	}
}
