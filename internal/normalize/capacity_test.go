package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datamart/bulkorder/internal/domain"
)

func TestCapacity(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *domain.Capacity
	}{
		{name: "bare number is GB", raw: "2", want: &domain.Capacity{Value: 2, Unit: domain.UnitGB}},
		{name: "decimal GB", raw: "0.5", want: &domain.Capacity{Value: 0.5, Unit: domain.UnitGB}},
		{name: "gb marker", raw: "10GB", want: &domain.Capacity{Value: 10, Unit: domain.UnitGB}},
		{name: "gig marker", raw: "2 gig", want: &domain.Capacity{Value: 2, Unit: domain.UnitGB}},
		{name: "gigabyte marker", raw: "1 gigabyte", want: &domain.Capacity{Value: 1, Unit: domain.UnitGB}},
		{name: "mb marker", raw: "500MB", want: &domain.Capacity{Value: 500, Unit: domain.UnitMB}},
		{name: "megabyte marker", raw: "250 megabytes", want: &domain.Capacity{Value: 250, Unit: domain.UnitMB}},
		{name: "bare 500 is the MB tier", raw: "500", want: &domain.Capacity{Value: 500, Unit: domain.UnitMB}},
		{name: "explicit 500GB stays GB", raw: "500GB", want: &domain.Capacity{Value: 500, Unit: domain.UnitGB}},
		{name: "upper bound inclusive", raw: "1000", want: &domain.Capacity{Value: 1000, Unit: domain.UnitGB}},
		{name: "whitespace tolerated", raw: "  5 GB ", want: &domain.Capacity{Value: 5, Unit: domain.UnitGB}},
		{name: "zero rejected", raw: "0"},
		{name: "negative rejected", raw: "-3"},
		{name: "GB above bound rejected", raw: "1001"},
		{name: "not a number", raw: "lots"},
		{name: "unit only", raw: "GB"},
		{name: "empty", raw: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Capacity(tt.raw)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

// MB-denominated inputs have no upper bound; GB inputs are capped at 1000.
// The asymmetry is long-standing platform behavior and is preserved on
// purpose.
func TestCapacity_MBHasNoUpperBound(t *testing.T) {
	got := Capacity("50000MB")
	require.NotNil(t, got)
	assert.Equal(t, domain.Capacity{Value: 50000, Unit: domain.UnitMB}, *got)

	assert.Nil(t, Capacity("50000"))
}

func TestCleanNumber(t *testing.T) {
	v, ok := CleanNumber("5GB")
	require.True(t, ok)
	assert.Equal(t, 5.0, v)

	v, ok = CleanNumber(" 500 mb ")
	require.True(t, ok)
	assert.Equal(t, 500.0, v)

	_, ok = CleanNumber("beneficiary")
	assert.False(t, ok)
}
