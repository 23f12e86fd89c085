// Package source materializes tables from the formats the data-source
// collaborator hands over: delimited text, JSON, and workbook sheets.
package source

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/hgadco/tabrex/pkg/report/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV parses comma-separated input into a table. A leading UTF-8
// byte-order mark is stripped; the first record supplies the column names.
// All values load as text so the input round-trips losslessly — kind
// inference is the classifier's job.
func ReadCSV(r io.Reader) (*models.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv input has no header record")
	}

	t := models.NewTable(records[0]...)
	for _, rec := range records[1:] {
		row := make([]models.Value, len(t.Columns))
		for i := range row {
			if i < len(rec) {
				row[i] = models.Text(rec[i])
			} else {
				row[i] = models.Null()
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

type jsonTable struct {
	Columns []string            `json:"columns"`
	Rows    [][]json.RawMessage `json:"rows"`
}

// ReadJSON parses a {"columns": [...], "rows": [[...]]} document. Numbers
// load as numeric values, strings as text, null as null.
func ReadJSON(r io.Reader) (*models.Table, error) {
	var doc jsonTable
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse json table: %w", err)
	}
	if len(doc.Columns) == 0 {
		return nil, fmt.Errorf("json table has no columns")
	}

	t := models.NewTable(doc.Columns...)
	for ri, raw := range doc.Rows {
		if len(raw) != len(doc.Columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d", ri+1, len(raw), len(doc.Columns))
		}
		row := make([]models.Value, len(raw))
		for i, cell := range raw {
			v, err := decodeJSONValue(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", ri+1, doc.Columns[i], err)
			}
			row[i] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func decodeJSONValue(raw json.RawMessage) (models.Value, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return models.Null(), err
	}
	switch x := v.(type) {
	case nil:
		return models.Null(), nil
	case float64:
		return models.Number(x), nil
	case string:
		return models.Text(x), nil
	case bool:
		return models.Text(strconv.FormatBool(x)), nil
	default:
		return models.Null(), fmt.Errorf("unsupported value type %T", v)
	}
}

// ReadXLSX loads one sheet of a workbook as a table. An empty sheet name
// selects the first sheet. The first row supplies the column names; short
// rows pad with nulls, and numeric-looking strings coerce to numbers.
func ReadXLSX(path, sheet string) (*models.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = list[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	t := models.NewTable(rows[0]...)
	for _, rec := range rows[1:] {
		row := make([]models.Value, len(t.Columns))
		for i := range row {
			if i < len(rec) {
				row[i] = coerce(rec[i])
			} else {
				row[i] = models.Null()
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// coerce turns a sheet cell string into a typed value: empty cells become
// null, numeric strings become numbers, everything else stays text.
func coerce(s string) models.Value {
	if s == "" {
		return models.Null()
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return models.Number(float64(i))
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return models.Number(f)
	}
	return models.Text(s)
}
