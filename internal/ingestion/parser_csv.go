package ingestion

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// ParseCSV reads a CSV file into raw rows. Ragged rows are allowed; column
// detection and resolution handle short rows themselves.
func ParseCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}
