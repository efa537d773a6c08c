// Package resolve turns raw table rows into order candidates: phone and
// capacity normalization, catalog lookup and per-row error accumulation.
// Row-level problems never abort a batch; the row is marked invalid instead.
package resolve

import (
	"fmt"
	"strings"

	"github.com/datamart/bulkorder/internal/catalog"
	"github.com/datamart/bulkorder/internal/detect"
	"github.com/datamart/bulkorder/internal/domain"
	"github.com/datamart/bulkorder/internal/normalize"
)

// MaxRows caps how many data rows one input contributes. Inputs beyond the
// cap produce a diagnostic note, not an error.
const MaxRows = 100

// Result is the outcome of resolving one input (file or manual text).
type Result struct {
	Candidates []domain.OrderCandidate
	Notes      []string
}

type Resolver struct {
	catalog *catalog.Catalog
}

func New(c *catalog.Catalog) *Resolver {
	return &Resolver{catalog: c}
}

// ResolveTable resolves tabular data using the detected column indices,
// starting at startRow (0 when row 0 is data, 1 when it is a header). Rows
// that are empty across all columns are skipped entirely.
func (r *Resolver) ResolveTable(rows [][]string, cols detect.Columns, startRow int) Result {
	var res Result

	processed := 0
	for i := startRow; i < len(rows); i++ {
		if emptyRow(rows[i]) {
			continue
		}
		if processed >= MaxRows {
			skipped := countNonEmpty(rows[i:])
			res.Notes = append(res.Notes,
				fmt.Sprintf("row limit reached: %d rows beyond the first %d were skipped", skipped, MaxRows))
			break
		}

		rawPhone := cellAt(rows[i], cols.Phone)
		rawCap := cellAt(rows[i], cols.Capacity)
		res.Candidates = append(res.Candidates, r.ResolveRow(i, rawPhone, rawCap))
		processed++
	}

	return res
}

// ResolveText resolves manual free-text input: one candidate per non-empty
// line, first whitespace-delimited token is the phone, second the capacity.
func (r *Resolver) ResolveText(text string) Result {
	var res Result

	processed := 0
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if processed >= MaxRows {
			skipped := countNonEmptyLines(lines[i:])
			res.Notes = append(res.Notes,
				fmt.Sprintf("row limit reached: %d rows beyond the first %d were skipped", skipped, MaxRows))
			break
		}

		rawPhone := fields[0]
		rawCap := ""
		if len(fields) > 1 {
			rawCap = fields[1]
		}
		res.Candidates = append(res.Candidates, r.ResolveRow(i, rawPhone, rawCap))
		processed++
	}

	return res
}

// ResolveRow builds one candidate from raw phone and capacity tokens. Error
// messages are user-facing and ordered: phone problems first, then capacity,
// then catalog match. A candidate is valid iff the phone normalized and a
// product matched.
func (r *Resolver) ResolveRow(rowIndex int, rawPhone, rawCapacity string) domain.OrderCandidate {
	cand := domain.OrderCandidate{
		RowIndex:    rowIndex,
		RawPhone:    rawPhone,
		RawCapacity: rawCapacity,
		Status:      domain.StatusPending,
	}

	phoneOK := false
	if strings.TrimSpace(rawPhone) == "" {
		cand.Errors = append(cand.Errors, "Missing phone number")
	} else if phone, ok := normalize.Phone(rawPhone); ok {
		cand.Phone = phone
		phoneOK = true
	} else {
		cand.Errors = append(cand.Errors, fmt.Sprintf("Invalid phone: %s", strings.TrimSpace(rawPhone)))
	}

	var product *domain.Product
	if strings.TrimSpace(rawCapacity) == "" {
		cand.Errors = append(cand.Errors, "Missing capacity")
	} else if capVal := normalize.Capacity(rawCapacity); capVal == nil {
		cand.Errors = append(cand.Errors, fmt.Sprintf("Invalid capacity: %s", strings.TrimSpace(rawCapacity)))
	} else {
		cand.Capacity = capVal
		product = r.catalog.Match(*capVal)
		if product == nil {
			cand.Errors = append(cand.Errors, fmt.Sprintf("No product for %s", capVal.Label()))
		}
	}

	if product != nil {
		cand.ProductID = product.ID
		cand.ProductName = product.Name
		cand.Price = product.Price
	}

	cand.Valid = phoneOK && product != nil
	return cand
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func countNonEmpty(rows [][]string) int {
	n := 0
	for _, row := range rows {
		if !emptyRow(row) {
			n++
		}
	}
	return n
}

func countNonEmptyLines(lines []string) int {
	n := 0
	for _, line := range lines {
		if len(strings.Fields(line)) > 0 {
			n++
		}
	}
	return n
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
