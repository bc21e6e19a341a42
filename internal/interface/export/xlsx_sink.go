package export

import (
	"fmt"
	"io"

	"qtholidays-service/internal/usecase/aggregation"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// XLSXSink writes rows into a single-sheet Excel workbook
type XLSXSink struct{}

// NewXLSXSink creates an XLSX export sink
func NewXLSXSink() *XLSXSink {
	return &XLSXSink{}
}

// Format returns the file extension
func (s *XLSXSink) Format() string {
	return "xlsx"
}

// ContentType returns the MIME type of the output
func (s *XLSXSink) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Write renders a header row followed by one row per record on sheet
func (s *XLSXSink) Write(w io.Writer, sheet string, headers []string, rows []aggregation.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to open sheet writer: %w", err)
	}

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := sw.SetRow("A1", headerRow); err != nil {
		return err
	}

	for r, row := range rows {
		values := make([]interface{}, len(headers))
		for i, h := range headers {
			if v, ok := row.Get(h); ok && v != nil {
				values[i] = v
			} else {
				values[i] = ""
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, values); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}
	return f.Write(w)
}
