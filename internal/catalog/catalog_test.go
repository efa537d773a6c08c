package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datamart/bulkorder/internal/domain"
)

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: "p-500mb", Name: "500MB", CapacityValue: 500, CapacityUnit: domain.UnitMB, Price: 2.8},
		{ID: "p-1gb", Name: "1GB", CapacityValue: 1, CapacityUnit: domain.UnitGB, Price: 5},
		{ID: "p-2gb", Name: "2GB", CapacityValue: 2, CapacityUnit: domain.UnitGB, Price: 9.5},
	}
}

func TestMatch(t *testing.T) {
	c := New(testProducts())

	p := c.Match(domain.Capacity{Value: 2, Unit: domain.UnitGB})
	require.NotNil(t, p)
	assert.Equal(t, "p-2gb", p.ID)

	assert.Nil(t, c.Match(domain.Capacity{Value: 7, Unit: domain.UnitGB}))
}

func TestMatch_500PrefersMBProduct(t *testing.T) {
	c := New(testProducts())

	p := c.Match(domain.Capacity{Value: 500, Unit: domain.UnitMB})
	require.NotNil(t, p)
	assert.Equal(t, "p-500mb", p.ID)
}

func TestMatch_500ByRawValueWhenNoMBProduct(t *testing.T) {
	// Without the MB product, a 500 falls through to plain numeric
	// matching and misses.
	c := New([]domain.Product{
		{ID: "p-1gb", CapacityValue: 1, CapacityUnit: domain.UnitGB, Price: 5},
	})
	assert.Nil(t, c.Match(domain.Capacity{Value: 500, Unit: domain.UnitMB}))
}
