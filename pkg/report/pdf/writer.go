// Package pdf renders tabular sections into a fixed-page-size landscape
// document with bidirectional Arabic text support.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"

	"github.com/hgadco/tabrex/pkg/report/assets"
	"github.com/hgadco/tabrex/pkg/report/classify"
	"github.com/hgadco/tabrex/pkg/report/layout"
	"github.com/hgadco/tabrex/pkg/report/models"
	"github.com/hgadco/tabrex/pkg/report/rtl"
)

// Page geometry and type metrics, in points.
const (
	marginLeft   = 20.0
	marginRight  = 20.0
	marginTop    = 28.0
	marginBottom = 20.0

	titleSize   = 15.0
	sectionSize = 13.0
	headerSize  = 10.0
	cellSize    = 9.0

	rowHeight    = 16.0
	headerHeight = 18.0

	// charWidthPt converts character-unit column widths to points.
	charWidthPt = 7.0
	// maxColWidth caps any single column's desired width.
	maxColWidth = 120.0
	// minColWidth is the floor applied when page fitting scales columns down.
	minColWidth = 20.0
)

// Options configures the document renderer.
type Options struct {
	// Fonts resolves the Arabic-capable font. Defaults to the package
	// default candidate list.
	Fonts *assets.FontRegistry
	// LinkLabel overrides the clickable-cell caption. When empty the label
	// follows the resolved font: Arabic when an Arabic-capable font loaded,
	// English otherwise.
	LinkLabel string
	// Logger receives per-section diagnostics. Defaults to a no-op logger.
	Logger zerolog.Logger
}

// builder carries the state of one document build.
type builder struct {
	pdf       *gofpdf.Fpdf
	font      string
	arabicOK  bool
	linkLabel string
	logger    zerolog.Logger

	pageW, pageH float64
	availW       float64
}

// Render emits the sections as one landscape document: banner and title
// once, then each titled table starting on a fresh page, with the header
// row repeating across page breaks.
func Render(sections []models.Section, titleLine string, banner *models.Banner, opts Options) ([]byte, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("no sections to render")
	}
	if opts.Fonts == nil {
		opts.Fonts = assets.NewFontRegistry()
	}

	b := &builder{logger: opts.Logger}
	b.pdf = gofpdf.New("L", "pt", "A4", "")
	b.pageW, b.pageH = b.pdf.GetPageSize()
	b.availW = b.pageW - marginLeft - marginRight
	b.pdf.SetMargins(marginLeft, marginTop, marginRight)
	b.pdf.SetAutoPageBreak(true, marginBottom)

	family, path, ok := opts.Fonts.Resolve()
	if ok {
		b.pdf.AddUTF8Font(family, "", path)
		b.pdf.AddUTF8Font(family, "B", path)
		b.font = family
		b.arabicOK = true
	} else {
		b.font = "Helvetica"
		b.logger.Warn().Msg("no arabic-capable font found, falling back to core font")
	}

	b.linkLabel = opts.LinkLabel
	if b.linkLabel == "" {
		if b.arabicOK {
			b.linkLabel = "فتح الرابط"
		} else {
			b.linkLabel = "Open link"
		}
	}

	b.pdf.AddPage()
	b.writeBanner(banner)
	b.writeTitle(titleLine)

	for i, sec := range sections {
		if i > 0 {
			b.pdf.AddPage()
		}
		if err := b.writeSection(sec); err != nil {
			return nil, fmt.Errorf("section %q: %w", sec.Title, err)
		}
	}

	var buf bytes.Buffer
	if err := b.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// writeBanner draws the banner across the full available width on the first
// page. Any failure skips the banner.
func (b *builder) writeBanner(banner *models.Banner) {
	if banner == nil || len(banner.Data) == 0 {
		return
	}
	imageType := bannerImageType(banner.Extension)
	if imageType == "" {
		b.logger.Warn().Str("ext", banner.Extension).Msg("unsupported banner format, skipped")
		return
	}

	w, h := layout.FitImage(banner.Width, banner.Height, b.availW)
	opt := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: false}
	b.pdf.RegisterImageOptionsReader("banner", opt, bytes.NewReader(banner.Data))
	if b.pdf.Err() {
		b.logger.Warn().Str("banner", banner.Path).Msg("banner unreadable, skipped")
		b.pdf.ClearError()
		return
	}
	b.pdf.ImageOptions("banner", marginLeft, b.pdf.GetY(), w, h, true, opt, 0, "")
	b.pdf.Ln(6)
}

func (b *builder) writeTitle(title string) {
	if title == "" {
		return
	}
	b.pdf.SetFont(b.font, "B", titleSize)
	b.pdf.CellFormat(0, headerHeight, b.shape(title), "", 1, "C", false, 0, "")
	b.pdf.Ln(8)
}

func (b *builder) writeSection(sec models.Section) error {
	t := sec.Table
	kinds := classify.Columns(t)

	aligns := make([]string, len(t.Columns))
	plain := make([]bool, len(t.Columns))
	for i, name := range t.Columns {
		aligns[i] = classify.Alignment(kinds[i], name)
		plain[i] = classify.PlainDigits(name)
	}

	widths := b.fitWidths(t, kinds)

	if sec.Title != "" {
		align := "L"
		if rtl.Contains(sec.Title) {
			align = "R"
		}
		b.pdf.SetFont(b.font, "B", sectionSize)
		b.pdf.CellFormat(0, headerHeight, b.shape(sec.Title), "", 1, align, false, 0, "")
		b.pdf.Ln(4)
	}

	b.writeHeader(t, widths)
	for _, row := range t.Rows {
		if b.pdf.GetY() > b.pageH-marginBottom-rowHeight {
			b.pdf.AddPage()
			b.writeHeader(t, widths)
		}
		b.writeRow(row, kinds, aligns, plain, widths)
	}

	b.logger.Debug().Str("section", sec.Title).Int("rows", len(t.Rows)).Msg("section rendered")
	return nil
}

// fitWidths derives content-based desired widths, caps them, and fits the
// total into the available page width.
func (b *builder) fitWidths(t *models.Table, kinds []classify.Kind) []float64 {
	desired := layout.ContentWidths(t, kinds, b.linkLabel)
	for i, w := range desired {
		w *= charWidthPt
		if w > maxColWidth {
			w = maxColWidth
		}
		desired[i] = w
	}
	return layout.Fit(desired, b.availW, minColWidth)
}

func (b *builder) writeHeader(t *models.Table, widths []float64) {
	b.pdf.SetFont(b.font, "B", headerSize)
	b.pdf.SetFillColor(30, 58, 138)
	b.pdf.SetTextColor(245, 245, 245)
	for i, name := range t.Columns {
		b.pdf.CellFormat(widths[i], headerHeight, b.fit(b.shape(name), widths[i]), "1", 0, "C", true, 0, "")
	}
	b.pdf.Ln(-1)
	b.pdf.SetTextColor(0, 0, 0)
	b.pdf.SetFillColor(255, 255, 255)
}

func (b *builder) writeRow(row []models.Value, kinds []classify.Kind, aligns []string, plain []bool, widths []float64) {
	b.pdf.SetFont(b.font, "", cellSize)
	for i, v := range row {
		if kinds[i] == classify.Link {
			target := strings.TrimSpace(v.String())
			if classify.IsURL(target) {
				b.pdf.SetTextColor(30, 58, 138)
				b.pdf.CellFormat(widths[i], rowHeight, b.shape(b.linkLabel), "1", 0, "C", false, 0, target)
				b.pdf.SetTextColor(0, 0, 0)
				continue
			}
		}
		text := classify.FormatCell(v, kinds[i], plain[i])
		b.pdf.CellFormat(widths[i], rowHeight, b.fit(b.shape(text), widths[i]), "1", 0, aligns[i], false, 0, "")
	}
	b.pdf.Ln(-1)
}

// shape runs the text shaper for Arabic input; non-Arabic text and shaping
// failures pass through unchanged.
func (b *builder) shape(s string) string {
	return rtl.Shape(s)
}

// fit truncates text to the cell width with an ellipsis, using actual font
// metrics. Roughly 2pt of internal cell padding is reserved.
func (b *builder) fit(s string, width float64) string {
	avail := width - 2.0
	if b.pdf.GetStringWidth(s) <= avail {
		return s
	}
	const suffix = "..."
	suffixW := b.pdf.GetStringWidth(suffix)
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		if b.pdf.GetStringWidth(string(runes))+suffixW <= avail {
			return string(runes) + suffix
		}
	}
	return suffix
}

func bannerImageType(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "PNG"
	case ".jpg", ".jpeg":
		return "JPG"
	default:
		return ""
	}
}
