package ingestion

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads the first sheet of an in-memory workbook into raw rows.
// Cell values come back as displayed strings; all typing happens downstream
// in normalization.
func ParseXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}
