package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/pennywise-app/pennywise/internal/model"
)

// XLSXParser parses bank reports saved as Excel workbooks. The first sheet
// must carry the same headers as the CSV export.
type XLSXParser struct{}

// Format returns the parser name.
func (p *XLSXParser) Format() string { return "xlsx" }

// Source returns the default source tag for parsed rows.
func (p *XLSXParser) Source() model.Source { return model.SourceXLSX }

// Parse reads the first worksheet of an XLSX workbook. Cells are read as
// stored, not as displayed, so number formats cannot change amounts; date
// columns holding Excel serials are converted to ISO dates.
func (p *XLSXParser) Parse(r io.Reader) ([]model.Transaction, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ci, err := newColumnIndex(rows[0])
	if err != nil {
		return nil, err
	}
	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}
	for _, col := range []string{ColPostingDate, ColPaymentDate} {
		i, ok := ci[col]
		if !ok {
			continue
		}
		for _, row := range rows[1:] {
			if i >= len(row) {
				continue
			}
			if iso, ok := serialDate(row[i], date1904); ok {
				row[i] = iso
			}
		}
	}

	return parseRecords(rows)
}

// serialDate converts an Excel date serial such as "45352" to "2024-03-01".
func serialDate(raw string, date1904 bool) (string, bool) {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil || serial <= 0 || serial > 2958465 {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}
