package pdf

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/hgadco/tabrex/pkg/report/assets"
	"github.com/hgadco/tabrex/pkg/report/models"
)

// noFonts forces the core-font fallback so tests do not depend on TTF files
// being present on the machine.
func noFonts() *assets.FontRegistry {
	return assets.NewFontRegistry("testdata/definitely-missing.ttf")
}

func TestRenderProducesPDF(t *testing.T) {
	tbl := models.NewTable("الاسم", "القيمة", "رابط")
	tbl.AppendRow(models.Text("أحمد"), models.Number(1500.5), models.Text("https://example.com/x"))

	data, err := Render([]models.Section{{Title: "البيانات", Table: tbl}}, "تقرير", nil, Options{Fonts: noFonts()})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output is not a PDF document")
	}
}

func TestRenderHeadersOnly(t *testing.T) {
	tbl := models.NewTable("الاسم", "القيمة")

	data, err := Render([]models.Section{{Table: tbl}}, "", nil, Options{Fonts: noFonts()})
	if err != nil {
		t.Fatalf("Render failed for headers-only table: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output is not a PDF document")
	}
}

func TestRenderMultiSectionPagination(t *testing.T) {
	summary := models.NewTable("البند", "القيمة")
	summary.AppendRow(models.Text("قيمة التعاقد"), models.Number(1000000))
	summary.AppendRow(models.Text("التحصيلات"), models.Number(250000))
	summary.AppendRow(models.Text("المستحق صرفه"), models.Number(75000))

	ledger := models.NewTable("التاريخ", "البيان", "القيمة")
	for i := 0; i < 500; i++ {
		ledger.AppendRow(
			models.Text("2024-01-02"),
			models.Text(fmt.Sprintf("حركة رقم %d", i+1)),
			models.Number(float64(i)*10.5),
		)
	}

	small, err := Render([]models.Section{{Title: "ملخص", Table: summary}}, "تقرير", nil, Options{Fonts: noFonts()})
	if err != nil {
		t.Fatalf("Render summary failed: %v", err)
	}

	both, err := Render([]models.Section{
		{Title: "ملخص", Table: summary},
		{Title: "دفتر", Table: ledger},
	}, "تقرير", nil, Options{Fonts: noFonts()})
	if err != nil {
		t.Fatalf("Render both failed: %v", err)
	}

	// The 500-row ledger spans many pages; the combined document must be
	// substantially larger than the summary alone.
	if len(both) <= len(small) {
		t.Errorf("multi-section document (%d bytes) not larger than summary alone (%d bytes)", len(both), len(small))
	}
}

func TestRenderNoGroupingColumn(t *testing.T) {
	tbl := models.NewTable("رقم الشيك", "القيمة")
	tbl.AppendRow(models.Number(1234567), models.Number(1234567))

	data, err := Render([]models.Section{{Table: tbl}}, "", nil, Options{Fonts: noFonts()})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("empty output")
	}
}

func TestRenderEmptySectionList(t *testing.T) {
	if _, err := Render(nil, "", nil, Options{Fonts: noFonts()}); err == nil {
		t.Errorf("expected error for empty section list")
	}
}

func TestRenderBadBannerSkipped(t *testing.T) {
	tbl := models.NewTable("a")
	tbl.AppendRow(models.Text("x"))

	banner := &models.Banner{Path: "x.bmp", Extension: ".bmp", Data: []byte{1, 2, 3}}
	data, err := Render([]models.Section{{Table: tbl}}, "", banner, Options{Fonts: noFonts()})
	if err != nil {
		t.Fatalf("Render must not fail over an unsupported banner: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output is not a PDF document")
	}
}
