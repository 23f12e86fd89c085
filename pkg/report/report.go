// Package report turns tabular result sets into downloadable export
// documents: styled workbooks, paginated PDF documents with Arabic support,
// and flat delimited text.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hgadco/tabrex/pkg/report/assets"
	"github.com/hgadco/tabrex/pkg/report/models"
	"github.com/hgadco/tabrex/pkg/report/pdf"
	"github.com/hgadco/tabrex/pkg/report/xlsx"
)

// MIME types of the export artifacts.
const (
	MIMEExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMEPDF   = "application/pdf"
	MIMECSV   = "text/csv"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Exporter renders export documents against a shared set of optional
// assets. The zero value works: no banner, default font candidates, no-op
// logger. An Exporter is cheap and request-scoped; renders are one-shot.
type Exporter struct {
	// Banner is the optional wide image placed above exported tables.
	Banner *models.Banner
	// Fonts resolves the Arabic-capable font for the PDF path.
	Fonts *assets.FontRegistry
	// LinkLabel overrides the fixed caption of clickable cells.
	LinkLabel string
	// Logger receives render diagnostics.
	Logger zerolog.Logger
}

// Excel renders the sections as one workbook, stacked in a single sheet.
func (e *Exporter) Excel(name string, sections ...models.Section) (*models.ExportDocument, error) {
	data, err := xlsx.Render(sections, e.Banner, xlsx.Options{
		LinkLabel: e.LinkLabel,
		Logger:    e.Logger,
	})
	if err != nil {
		return nil, &RenderError{Document: name, Component: "xlsx", Err: err}
	}
	return &models.ExportDocument{
		Data:     data,
		Filename: SafeFilename(name) + ".xlsx",
		MIME:     MIMEExcel,
	}, nil
}

// ExcelSheets renders the sections as one workbook with a sheet per section.
func (e *Exporter) ExcelSheets(name string, sections ...models.Section) (*models.ExportDocument, error) {
	data, err := xlsx.Render(sections, e.Banner, xlsx.Options{
		SeparateSheets: true,
		LinkLabel:      e.LinkLabel,
		Logger:         e.Logger,
	})
	if err != nil {
		return nil, &RenderError{Document: name, Component: "xlsx", Err: err}
	}
	return &models.ExportDocument{
		Data:     data,
		Filename: SafeFilename(name) + ".xlsx",
		MIME:     MIMEExcel,
	}, nil
}

// PDF renders the sections as one paginated landscape document. Each
// section starts on a fresh page; titleLine heads the first page.
func (e *Exporter) PDF(name, titleLine string, sections ...models.Section) (*models.ExportDocument, error) {
	data, err := pdf.Render(sections, titleLine, e.Banner, pdf.Options{
		Fonts:     e.Fonts,
		LinkLabel: e.LinkLabel,
		Logger:    e.Logger,
	})
	if err != nil {
		return nil, &RenderError{Document: name, Component: "pdf", Err: err}
	}
	return &models.ExportDocument{
		Data:     data,
		Filename: SafeFilename(name) + ".pdf",
		MIME:     MIMEPDF,
	}, nil
}

// CSV renders one table as UTF-8 comma-separated text with a byte-order
// mark, the lossless fallback path that needs no layout engine.
func (e *Exporter) CSV(name string, t *models.Table) (*models.ExportDocument, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(t.Columns); err != nil {
		return nil, &RenderError{Document: name, Component: "csv", Err: err}
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, v := range row {
			record[i] = v.String()
		}
		if err := w.Write(record); err != nil {
			return nil, &RenderError{Document: name, Component: "csv", Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, &RenderError{Document: name, Component: "csv", Err: err}
	}

	return &models.ExportDocument{
		Data:     buf.Bytes(),
		Filename: SafeFilename(name) + ".csv",
		MIME:     MIMECSV,
	}, nil
}

// ExportName joins filename parts (record type, company, project) with
// underscores and sanitizes the result.
func ExportName(parts ...string) string {
	name := ""
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i > 0 && name != "" {
			name += "_"
		}
		name += p
	}
	return SafeFilename(name)
}

// RenderError reports a failed export build.
type RenderError struct {
	Document  string
	Component string // "xlsx", "pdf", "csv"
	Err       error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error in document %q (%s): %v", e.Document, e.Component, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
