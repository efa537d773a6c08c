package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() PriceTable {
	return New([]Tier{
		{Capacity: 10, Price: 44},
		{Capacity: 1, Price: 5},
		{Capacity: 5, Price: 23},
	})
}

func TestPriceFor_ExactMatch(t *testing.T) {
	p, err := testTable().PriceFor(5)
	require.NoError(t, err)
	assert.Equal(t, 23.0, p)
}

func TestPriceFor_RoundsDownToNearestTier(t *testing.T) {
	table := testTable()

	p, err := table.PriceFor(7)
	require.NoError(t, err)
	assert.Equal(t, 23.0, p)

	p, err = table.PriceFor(999)
	require.NoError(t, err)
	assert.Equal(t, 44.0, p)
}

// A capacity below every tier floors at the smallest tier instead of
// failing or pricing at zero.
func TestPriceFor_FloorsAtSmallestTier(t *testing.T) {
	p, err := testTable().PriceFor(0.3)
	require.NoError(t, err)
	assert.Equal(t, 5.0, p)
}

func TestPriceFor_EmptyTable(t *testing.T) {
	_, err := New(nil).PriceFor(1)
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestNew_SortsTiers(t *testing.T) {
	tiers := testTable().Tiers()
	require.Len(t, tiers, 3)
	assert.Equal(t, 1.0, tiers[0].Capacity)
	assert.Equal(t, 10.0, tiers[2].Capacity)
}
