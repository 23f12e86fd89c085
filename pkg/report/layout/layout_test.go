package layout

import (
	"math"
	"testing"

	"github.com/hgadco/tabrex/pkg/report/classify"
	"github.com/hgadco/tabrex/pkg/report/models"
)

func TestFitUniformScale(t *testing.T) {
	// 20 columns of 100 units into a 1000-unit page: every column halves.
	desired := make([]float64, 20)
	for i := range desired {
		desired[i] = 100
	}

	got := Fit(desired, 1000, 5)

	sum := 0.0
	for i, w := range got {
		if math.Abs(w-50) > 1e-9 {
			t.Errorf("column %d: got width %v, want 50", i, w)
		}
		sum += w
	}
	if math.Abs(sum-1000) > 1e-9 {
		t.Errorf("widths sum to %v, want 1000", sum)
	}
}

func TestFitPassThrough(t *testing.T) {
	desired := []float64{10, 20, 30}
	got := Fit(desired, 100, 5)
	for i := range desired {
		if got[i] != desired[i] {
			t.Errorf("column %d: got %v, want %v unchanged", i, got[i], desired[i])
		}
	}
}

func TestFitFloor(t *testing.T) {
	// The narrow column would scale below the floor; it pins there and the
	// wide column absorbs the rest.
	got := Fit([]float64{100, 1}, 50, 5)

	if got[1] != 5 {
		t.Errorf("narrow column: got %v, want floor 5", got[1])
	}
	if math.Abs(got[0]-45) > 1e-9 {
		t.Errorf("wide column: got %v, want 45", got[0])
	}
	if got[0]+got[1] > 50+1e-9 {
		t.Errorf("widths sum to %v, exceeds available 50", got[0]+got[1])
	}
}

func TestFitPreservesOrdering(t *testing.T) {
	desired := []float64{80, 15, 200, 15, 40}
	got := Fit(desired, 120, 8)

	sum := 0.0
	for i, w := range got {
		if w < 8 {
			t.Errorf("column %d: width %v below floor", i, w)
		}
		sum += w
		for j := range desired {
			if desired[i] > desired[j] && got[i] < got[j] {
				t.Errorf("ordering broken: desired[%d]=%v > desired[%d]=%v but got %v < %v",
					i, desired[i], j, desired[j], got[i], got[j])
			}
		}
	}
	if sum > 120+1e-9 {
		t.Errorf("widths sum to %v, exceeds available 120", sum)
	}
}

func TestFitDegenerateBudget(t *testing.T) {
	// Floor for every column cannot fit: equal shares instead.
	got := Fit([]float64{50, 60, 70, 80}, 10, 5)
	for i, w := range got {
		if math.Abs(w-2.5) > 1e-9 {
			t.Errorf("column %d: got %v, want equal share 2.5", i, w)
		}
	}
}

func TestFitImage(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		target     float64
		wantW      float64
		wantH      float64
	}{
		{"aspect preserved", 600, 120, 300, 300, 60},
		{"unknown dims fall back", 0, 0, 300, 300, DefaultBannerHeight},
		{"height floor", 1000, 50, 300, 300, MinBannerHeight},
	}

	for _, tt := range tests {
		gotW, gotH := FitImage(tt.w, tt.h, tt.target)
		if gotW != tt.wantW || gotH != tt.wantH {
			t.Errorf("%s: FitImage(%d, %d, %v) = (%v, %v), want (%v, %v)",
				tt.name, tt.w, tt.h, tt.target, gotW, gotH, tt.wantW, tt.wantH)
		}
	}
}

func TestContentWidthsLinkCaption(t *testing.T) {
	tbl := models.NewTable("رابط")
	tbl.AppendRow(models.Text("https://example.com/very/long/path/that/should/not/drive/width"))

	kinds := []classify.Kind{classify.Link}
	widths := ContentWidths(tbl, kinds, "Open link")

	// Link columns measure the caption, not the raw URL.
	if widths[0] > 12 {
		t.Errorf("link column width %v, want caption-sized (<= 12)", widths[0])
	}
}

func TestContentWidthsHeaderMinimum(t *testing.T) {
	tbl := models.NewTable("a long header name")
	tbl.AppendRow(models.Text("x"))

	widths := ContentWidths(tbl, []classify.Kind{classify.Text}, "")
	if widths[0] != 18 {
		t.Errorf("got width %v, want header width 18", widths[0])
	}
}
