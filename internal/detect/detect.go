// Package detect infers which columns of an untyped table hold the phone
// number and the data capacity. Detection runs in three passes: header
// keywords, heuristic scoring over sample rows, and a last-resort positional
// guess.
package detect

import (
	"errors"
	"strings"

	"github.com/datamart/bulkorder/internal/normalize"
)

var (
	// ErrNoColumns means neither column could be determined and the
	// positional fallback was inapplicable.
	ErrNoColumns = errors.New("cannot detect phone and capacity columns")

	// ErrIncompleteData means exactly one of the two columns was
	// determined. Guessing the other side is deliberately not attempted.
	ErrIncompleteData = errors.New("incomplete data: found only one of the phone/capacity columns")
)

// Columns holds the detected column indices.
type Columns struct {
	Phone    int
	Capacity int
}

var phoneHeaderKeywords = []string{"number", "phone", "beneficiary", "mobile", "msisdn", "contact"}

var capacityHeaderKeywords = []string{"capacity", "data", "gb", "bundle", "size", "megabyte", "mb"}

// capacityTiers are the bundle sizes sold on the platform. A sampled cell
// counts toward a column's capacity score only when its cleaned numeric value
// is one of these.
var capacityTiers = map[float64]bool{
	0.5: true, 1: true, 2: true, 3: true, 4: true, 5: true,
	10: true, 15: true, 20: true, 25: true, 30: true, 50: true,
	100: true, 200: true, 500: true, 1000: true,
}

// heuristicSampleRows caps how many data rows the scoring pass inspects.
const heuristicSampleRows = 5

// Columns detects the phone and capacity column indices for the given table.
// Row 0 may or may not be a header; use DataStartRow afterwards to decide
// where iteration begins.
func DetectColumns(rows [][]string) (Columns, error) {
	phoneCol, capCol := headerPass(rows)

	if phoneCol < 0 || capCol < 0 {
		hp, hc := heuristicPass(rows, phoneCol)
		if phoneCol < 0 {
			phoneCol = hp
		}
		if capCol < 0 {
			capCol = hc
		}
	}

	switch {
	case phoneCol >= 0 && capCol >= 0:
		return Columns{Phone: phoneCol, Capacity: capCol}, nil
	case phoneCol < 0 && capCol < 0:
		return positionalFallback(rows)
	default:
		return Columns{}, ErrIncompleteData
	}
}

// headerPass scans row 0 for known keywords, returning -1 for any column it
// could not determine. The phone search runs first and the capacity search
// skips its pick, so a header matching both keyword sets (e.g. "Number"
// contains "mb") becomes the phone column.
func headerPass(rows [][]string) (phoneCol, capCol int) {
	phoneCol, capCol = -1, -1
	if len(rows) == 0 {
		return
	}

	for i, cell := range rows[0] {
		if containsAny(strings.ToLower(cell), phoneHeaderKeywords) {
			phoneCol = i
			break
		}
	}
	for i, cell := range rows[0] {
		if i == phoneCol {
			continue
		}
		if containsAny(strings.ToLower(cell), capacityHeaderKeywords) {
			capCol = i
			break
		}
	}
	return
}

// heuristicPass scores up to heuristicSampleRows rows per column, starting
// at the first row: headerless tables keep their first data row in the
// sample, and when row 0 is a keyword header its cells score zero on both
// counts, so including it cannot skew the result. Ties resolve to the lowest
// column index. A column is only chosen when its score is positive. The
// capacity pick skips the phone column (already detected or chosen here).
func heuristicPass(rows [][]string, knownPhoneCol int) (phoneCol, capCol int) {
	phoneCol, capCol = -1, -1
	if len(rows) == 0 {
		return
	}

	sample := rows
	if len(sample) > heuristicSampleRows {
		sample = sample[:heuristicSampleRows]
	}

	cols := 0
	for _, row := range sample {
		if len(row) > cols {
			cols = len(row)
		}
	}

	phoneScores := make([]int, cols)
	capScores := make([]int, cols)
	for _, row := range sample {
		for i, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			if normalize.LooksLikePhone(cell) {
				phoneScores[i]++
			}
			if v, ok := normalize.CleanNumber(cell); ok && capacityTiers[v] {
				capScores[i]++
			}
		}
	}

	phoneCol = argmax(phoneScores)
	chosenPhone := knownPhoneCol
	if chosenPhone < 0 {
		chosenPhone = phoneCol
	}

	best := 0
	for i, s := range capScores {
		if i == chosenPhone {
			continue
		}
		if s > best {
			best = s
			capCol = i
		}
	}
	return
}

// positionalFallback inspects the first row's columns 0 and 1 when both
// columns are undetermined. Defaults to (0,1) when the cells are
// inconclusive.
func positionalFallback(rows [][]string) (Columns, error) {
	if len(rows) == 0 || len(rows[0]) < 2 {
		return Columns{}, ErrNoColumns
	}

	c0Phone := normalize.LooksLikePhone(rows[0][0])
	c1Phone := normalize.LooksLikePhone(rows[0][1])

	if c1Phone && !c0Phone {
		return Columns{Phone: 1, Capacity: 0}, nil
	}
	return Columns{Phone: 0, Capacity: 1}, nil
}

// DataStartRow decides whether row 0 is data or a header. Row 0 is treated as
// a header only when neither its phone cell nor its capacity cell looks
// plausible for its column.
func DataStartRow(rows [][]string, cols Columns) int {
	if len(rows) == 0 {
		return 0
	}

	phonePlausible := normalize.LooksLikePhone(cellAt(rows[0], cols.Phone))
	capPlausible := normalize.Capacity(cellAt(rows[0], cols.Capacity)) != nil
	if phonePlausible || capPlausible {
		return 0
	}
	return 1
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// argmax returns the index of the highest positive score, lowest index on
// ties, -1 when every score is zero.
func argmax(scores []int) int {
	best, idx := 0, -1
	for i, s := range scores {
		if s > best {
			best = s
			idx = i
		}
	}
	return idx
}
