// Package xlsx renders tabular sections into a styled workbook.
package xlsx

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/hgadco/tabrex/pkg/report/classify"
	"github.com/hgadco/tabrex/pkg/report/layout"
	"github.com/hgadco/tabrex/pkg/report/models"
)

const (
	// maxColumnChars caps a column's width in character units.
	maxColumnChars = 60
	// widthPadding widens content-derived widths for cell padding.
	widthPadding = 4
	// bannerRowHeight approximates one sheet row in pixels when reserving
	// rows under an inserted banner.
	bannerRowHeight = 20
)

// Options configures the workbook renderer.
type Options struct {
	// SheetName names the sheet in stacked mode. Defaults to "البيانات".
	SheetName string
	// SeparateSheets emits one sheet per section instead of stacking
	// sections vertically in a single sheet.
	SeparateSheets bool
	// LinkLabel is the fixed caption for clickable cells.
	// Defaults to "فتح الرابط".
	LinkLabel string
	// Logger receives per-section diagnostics. Defaults to a no-op logger.
	Logger zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.SheetName == "" {
		o.SheetName = "البيانات"
	}
	if o.LinkLabel == "" {
		o.LinkLabel = "فتح الرابط"
	}
	return o
}

// styleSet holds the style IDs registered once per workbook.
type styleSet struct {
	header int
	title  int
	text   int
	date   int
	number int
	link   int
}

// Render emits the sections as one workbook and returns its bytes. The
// banner, when present, is inserted above the first table scaled to span
// the summed column pixel extent exactly.
func Render(sections []models.Section, banner *models.Banner, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	if len(sections) == 0 {
		return nil, fmt.Errorf("no sections to render")
	}

	f := excelize.NewFile()
	defer f.Close()

	styles, err := newStyleSet(f)
	if err != nil {
		return nil, fmt.Errorf("register styles: %w", err)
	}

	if opts.SeparateSheets {
		err = renderSheets(f, sections, banner, styles, opts)
	} else {
		err = renderStacked(f, sections, banner, styles, opts)
	}
	if err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func newStyleSet(f *excelize.File) (styleSet, error) {
	var s styleSet
	var err error

	dateFmt := "yyyy-mm-dd"
	numFmt := "#,##0.00"

	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return s, err
	}
	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 13},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return s, err
	}
	if s.text, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return s, err
	}
	if s.date, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &dateFmt,
		Alignment:    &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return s, err
	}
	if s.number, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &numFmt,
		Alignment:    &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return s, err
	}
	if s.link, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Color: "1E3A8A", Underline: "single"},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return s, err
	}
	return s, nil
}

// renderStacked writes every section into one sheet: section title row,
// header, data rows, one blank separator row before the next section.
func renderStacked(f *excelize.File, sections []models.Section, banner *models.Banner, styles styleSet, opts Options) error {
	sheet := opts.SheetName
	f.SetSheetName(f.GetSheetName(0), sheet)

	widths := sharedWidths(sections, opts.LinkLabel)
	if err := applyColumnWidths(f, sheet, widths); err != nil {
		return err
	}

	row := 1
	if banner != nil {
		reserved, err := insertBanner(f, sheet, banner, widths, opts.Logger)
		if err == nil {
			row = reserved + 1
		}
	}

	for si, sec := range sections {
		if sec.Title != "" {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetCellValue(sheet, cell, sec.Title); err != nil {
				return fmt.Errorf("section title: %w", err)
			}
			f.SetCellStyle(sheet, cell, cell, styles.title)
			row++
		}
		var err error
		row, err = writeTable(f, sheet, row, sec.Table, styles, opts)
		if err != nil {
			return fmt.Errorf("section %q: %w", sec.Title, err)
		}
		if si < len(sections)-1 {
			row++ // separator row
		}
		opts.Logger.Debug().Str("section", sec.Title).Int("rows", len(sec.Table.Rows)).Msg("section written")
	}
	return nil
}

// renderSheets writes one sheet per section, named after the section title.
func renderSheets(f *excelize.File, sections []models.Section, banner *models.Banner, styles styleSet, opts Options) error {
	for si, sec := range sections {
		sheet := sec.Title
		if sheet == "" {
			sheet = fmt.Sprintf("Sheet%d", si+1)
		}
		if si == 0 {
			f.SetSheetName(f.GetSheetName(0), sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("new sheet %q: %w", sheet, err)
			}
		}

		kinds := classify.Columns(sec.Table)
		widths := paddedWidths(layout.ContentWidths(sec.Table, kinds, opts.LinkLabel))
		if err := applyColumnWidths(f, sheet, widths); err != nil {
			return err
		}

		row := 1
		if banner != nil {
			reserved, err := insertBanner(f, sheet, banner, widths, opts.Logger)
			if err == nil {
				row = reserved + 1
			}
		}
		if _, err := writeTable(f, sheet, row, sec.Table, styles, opts); err != nil {
			return fmt.Errorf("sheet %q: %w", sheet, err)
		}
	}
	return nil
}

// writeTable emits a header row and data rows starting at startRow and
// returns the next free row.
func writeTable(f *excelize.File, sheet string, startRow int, t *models.Table, styles styleSet, opts Options) (int, error) {
	kinds := classify.Columns(t)

	for ci, name := range t.Columns {
		cell, _ := excelize.CoordinatesToCellName(ci+1, startRow)
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return startRow, fmt.Errorf("header %q: %w", name, err)
		}
		f.SetCellStyle(sheet, cell, cell, styles.header)
	}

	row := startRow + 1
	for _, dataRow := range t.Rows {
		for ci := range t.Columns {
			cell, _ := excelize.CoordinatesToCellName(ci+1, row)
			if err := writeCell(f, sheet, cell, dataRow[ci], kinds[ci], styles, opts); err != nil {
				return row, err
			}
		}
		row++
	}
	return row, nil
}

// writeCell picks the cell writer for the column kind. Malformed values
// degrade to plain text; only workbook-level write errors propagate.
func writeCell(f *excelize.File, sheet, cell string, v models.Value, kind classify.Kind, styles styleSet, opts Options) error {
	if v.IsNull() {
		f.SetCellStyle(sheet, cell, cell, styles.text)
		return nil
	}

	switch kind {
	case classify.Link:
		target := v.String()
		if classify.IsURL(target) {
			if err := f.SetCellValue(sheet, cell, opts.LinkLabel); err != nil {
				return err
			}
			if err := f.SetCellHyperLink(sheet, cell, target, "External"); err != nil {
				return err
			}
			f.SetCellStyle(sheet, cell, cell, styles.link)
			return nil
		}
		f.SetCellStyle(sheet, cell, cell, styles.text)
		return f.SetCellValue(sheet, cell, target)

	case classify.Date:
		if v.Kind() == models.KindDate {
			f.SetCellStyle(sheet, cell, cell, styles.date)
			return f.SetCellValue(sheet, cell, v.Time())
		}
		if t, ok := classify.ParseDate(v.String()); ok {
			f.SetCellStyle(sheet, cell, cell, styles.date)
			return f.SetCellValue(sheet, cell, t)
		}
		f.SetCellStyle(sheet, cell, cell, styles.text)
		return f.SetCellValue(sheet, cell, v.String())

	case classify.Number:
		if v.Kind() == models.KindNumber {
			f.SetCellStyle(sheet, cell, cell, styles.number)
			return f.SetCellValue(sheet, cell, v.Num())
		}
		if n, ok := classify.ParseNumber(v.String()); ok {
			f.SetCellStyle(sheet, cell, cell, styles.number)
			return f.SetCellValue(sheet, cell, n)
		}
		// Percent-looking or otherwise malformed values stay verbatim.
		f.SetCellStyle(sheet, cell, cell, styles.text)
		return f.SetCellValue(sheet, cell, v.String())

	default:
		f.SetCellStyle(sheet, cell, cell, styles.text)
		return f.SetCellValue(sheet, cell, v.String())
	}
}

// sharedWidths computes per-position column widths across all sections so
// stacked tables line up.
func sharedWidths(sections []models.Section, linkLabel string) []float64 {
	var widths []float64
	for _, sec := range sections {
		kinds := classify.Columns(sec.Table)
		w := layout.ContentWidths(sec.Table, kinds, linkLabel)
		for i, cw := range w {
			if i >= len(widths) {
				widths = append(widths, cw)
			} else if cw > widths[i] {
				widths[i] = cw
			}
		}
	}
	return paddedWidths(widths)
}

func paddedWidths(widths []float64) []float64 {
	out := make([]float64, len(widths))
	for i, w := range widths {
		w += widthPadding
		if w > maxColumnChars {
			w = maxColumnChars
		}
		out[i] = w
	}
	return out
}

func applyColumnWidths(f *excelize.File, sheet string, widths []float64) error {
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("column width %s: %w", col, err)
		}
	}
	return nil
}

// insertBanner places the banner at A1 scaled so its displayed width equals
// the summed pixel width of the table columns, and returns the number of
// rows it occupies. Failures degrade to "no banner".
func insertBanner(f *excelize.File, sheet string, banner *models.Banner, widths []float64, logger zerolog.Logger) (int, error) {
	totalPixels := 0
	for _, w := range widths {
		totalPixels += layout.CharToPixels(w)
	}

	targetW, targetH := layout.FitImage(banner.Width, banner.Height, float64(totalPixels))
	scaleX := 1.0
	scaleY := 1.0
	if banner.Width > 0 {
		scaleX = targetW / float64(banner.Width)
		scaleY = scaleX
	}

	err := f.AddPictureFromBytes(sheet, "A1", &excelize.Picture{
		Extension: banner.Extension,
		File:      banner.Data,
		Format: &excelize.GraphicOptions{
			ScaleX:      scaleX,
			ScaleY:      scaleY,
			Positioning: "oneCell",
		},
	})
	if err != nil {
		logger.Warn().Err(err).Str("banner", banner.Path).Msg("banner skipped")
		return 0, err
	}

	reserved := int(targetH/bannerRowHeight) + 1
	if banner.Width <= 0 {
		reserved = 2
	}
	return reserved, nil
}
