package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/datamart/bulkorder/internal/domain"
)

var (
	mbMarker   = regexp.MustCompile(`megabytes?|megs?|mb`)
	gbMarker   = regexp.MustCompile(`gigabytes?|gigs?|gb`)
	unitMarker = regexp.MustCompile(`\s*(gigabytes?|gigs?|gb|megabytes?|megs?|mb)\s*`)
)

// MaxGB bounds GB-denominated capacities. MB-denominated inputs carry no
// upper bound, matching the platform's historical behavior.
const MaxGB = 1000

// Capacity parses a raw capacity token such as "2", "2GB", "500mb" or
// "1 gig". The unit is GB unless the token carries an MB marker; a bare 500
// is treated as the 500MB tier unless the token is explicitly GB. Returns nil
// when no usable capacity is present, which callers must distinguish from a
// missing token.
func Capacity(raw string) *domain.Capacity {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return nil
	}

	hasMB := mbMarker.MatchString(s)
	hasGB := gbMarker.MatchString(s)

	num := strings.TrimSpace(unitMarker.ReplaceAllString(s, ""))
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(v) {
		return nil
	}

	if hasMB {
		if v <= 0 {
			return nil
		}
		return &domain.Capacity{Value: v, Unit: domain.UnitMB}
	}

	if v <= 0 || v > MaxGB {
		return nil
	}

	unit := domain.UnitGB
	if v == 500 && !hasGB {
		// A bare 500 means the 500MB tier; a literal 500GB bundle does
		// not exist on the platform.
		unit = domain.UnitMB
	}
	return &domain.Capacity{Value: v, Unit: unit}
}

// CleanNumber strips unit markers from a cell and parses the remainder as a
// float. Used by column detection to score capacity-looking cells.
func CleanNumber(cell string) (float64, bool) {
	s := strings.TrimSpace(unitMarker.ReplaceAllString(strings.ToLower(cell), ""))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
