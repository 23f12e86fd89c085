// Package layout fits per-column widths into a fixed budget and reconciles
// image dimensions against a target display width.
package layout

import (
	"github.com/mattn/go-runewidth"

	"github.com/hgadco/tabrex/pkg/report/classify"
	"github.com/hgadco/tabrex/pkg/report/models"
)

const (
	// DefaultBannerHeight is the display height used when an image's
	// intrinsic dimensions are unavailable.
	DefaultBannerHeight = 50.0
	// MinBannerHeight keeps very wide banners from collapsing into a sliver.
	MinBannerHeight = 28.0
)

// ContentWidths computes the desired width of each column in character
// units: the display width of the widest cell or the header, whichever is
// larger. Link columns measure the fixed caption instead of raw URLs.
// Widths use terminal display width rather than rune count so that wide
// scripts are not undersized.
func ContentWidths(t *models.Table, kinds []classify.Kind, linkLabel string) []float64 {
	widths := make([]float64, len(t.Columns))
	for i, name := range t.Columns {
		maxLen := runewidth.StringWidth(name)
		if i < len(kinds) && kinds[i] == classify.Link {
			if w := runewidth.StringWidth(linkLabel); w > maxLen {
				maxLen = w
			}
		} else {
			for _, row := range t.Rows {
				if w := runewidth.StringWidth(row[i].String()); w > maxLen {
					maxLen = w
				}
			}
		}
		widths[i] = float64(maxLen)
	}
	return widths
}

// Fit scales desired widths into the available budget. When the sum already
// fits, widths pass through unchanged. Otherwise all widths scale by the
// same factor so proportions hold and the total exactly fits; columns the
// factor would push below floor are pinned there and the rest rescale into
// what remains. The result is deterministic and never zero for a column
// with content. If available cannot hold floor for every column, every
// column gets an equal share instead.
func Fit(desired []float64, available, floor float64) []float64 {
	out := make([]float64, len(desired))
	if len(desired) == 0 {
		return out
	}

	total := 0.0
	for _, w := range desired {
		total += w
	}
	if total <= available {
		copy(out, desired)
		return out
	}

	if floor*float64(len(desired)) >= available {
		share := available / float64(len(desired))
		for i := range out {
			out[i] = share
		}
		return out
	}

	pinned := make([]bool, len(desired))
	for {
		fixed, flex := 0.0, 0.0
		for i, w := range desired {
			if pinned[i] {
				fixed += floor
			} else {
				flex += w
			}
		}
		scale := (available - fixed) / flex

		changed := false
		for i, w := range desired {
			if !pinned[i] && w*scale < floor {
				pinned[i] = true
				changed = true
			}
		}
		if changed {
			continue
		}
		for i, w := range desired {
			if pinned[i] {
				out[i] = floor
			} else {
				out[i] = w * scale
			}
		}
		return out
	}
}

// FitImage reconciles an image's intrinsic pixel dimensions against a
// target display width, preserving aspect ratio. Unknown dimensions fall
// back to a fixed default height rather than failing.
func FitImage(intrinsicW, intrinsicH int, target float64) (width, height float64) {
	if intrinsicW <= 0 || intrinsicH <= 0 {
		return target, DefaultBannerHeight
	}
	height = target * float64(intrinsicH) / float64(intrinsicW)
	if height < MinBannerHeight {
		height = MinBannerHeight
	}
	return target, height
}

// CharToPixels converts a column width in character units to the
// approximate on-screen pixel width a spreadsheet gives that column.
func CharToPixels(chars float64) int {
	return int(chars*7 + 5)
}
