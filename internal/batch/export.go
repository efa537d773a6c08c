package batch

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/datamart/bulkorder/internal/domain"
)

var exportHeaders = []string{
	"Row #", "Phone Number", "Capacity", "Product", "Price", "Status", "Errors",
}

// ExportXLSX renders candidates into a spreadsheet, one row per candidate in
// original row order. Pure transformation; no validation or network side
// effects.
func ExportXLSX(cands []domain.OrderCandidate) ([]byte, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	if err := writeRow(f, sheet, 1, headerValues()); err != nil {
		return nil, err
	}

	for i := range cands {
		c := &cands[i]
		values := []any{
			c.RowIndex + 1,
			c.Phone,
			c.CapacityLabel(),
			c.ProductName,
			fmt.Sprintf("%.2f", c.Price),
			string(c.Status),
			strings.Join(c.Errors, "; "),
		}
		if c.Phone == "" {
			values[1] = c.RawPhone
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportTemplateXLSX builds the two-column upload template with sample rows
// covering representative capacity tiers.
func ExportTemplateXLSX() ([]byte, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	rows := [][]any{
		{"number", "capacity"},
		{"0241234567", "1"},
		{"0551234567", "2"},
		{"0261234567", "5"},
		{"0501234567", "10"},
		{"0271234567", "500MB"},
	}
	for i, row := range rows {
		if err := writeRow(f, sheet, i+1, row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func headerValues() []any {
	values := make([]any, len(exportHeaders))
	for i, h := range exportHeaders {
		values[i] = h
	}
	return values
}

func writeRow(f *excelize.File, sheet string, rowIdx int, values []any) error {
	for c, v := range values {
		cell, err := excelize.CoordinatesToCellName(c+1, rowIdx)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
