// Package pricing implements the editable tiered price table used by the
// cost calculator. The table is a plain value object; loading and saving it
// is boundary I/O owned by the repository layer.
package pricing

import (
	"errors"
	"sort"
)

var ErrEmptyTable = errors.New("price table has no tiers")

// Tier is one capacity level with its price in GHS.
type Tier struct {
	Capacity float64 `json:"capacity"`
	Price    float64 `json:"price"`
}

// PriceTable holds tiers sorted ascending by capacity.
type PriceTable struct {
	tiers []Tier
}

func New(tiers []Tier) PriceTable {
	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Capacity < sorted[j].Capacity })
	return PriceTable{tiers: sorted}
}

func (t PriceTable) Tiers() []Tier {
	return t.tiers
}

// PriceFor returns the price for a capacity. Exact tier match first; on a
// miss the capacity rounds down to the nearest lower tier, flooring at the
// smallest tier so the lookup never silently returns zero.
func (t PriceTable) PriceFor(capacity float64) (float64, error) {
	if len(t.tiers) == 0 {
		return 0, ErrEmptyTable
	}

	for _, tier := range t.tiers {
		if tier.Capacity == capacity {
			return tier.Price, nil
		}
	}

	for i := len(t.tiers) - 1; i >= 0; i-- {
		if t.tiers[i].Capacity <= capacity {
			return t.tiers[i].Price, nil
		}
	}
	return t.tiers[0].Price, nil
}

// DefaultTiers is the factory price table seeded on first boot; admins edit
// it afterwards through the pricing endpoints.
func DefaultTiers() []Tier {
	return []Tier{
		{Capacity: 0.5, Price: 2.80},
		{Capacity: 1, Price: 5.00},
		{Capacity: 2, Price: 9.50},
		{Capacity: 3, Price: 14.00},
		{Capacity: 4, Price: 18.50},
		{Capacity: 5, Price: 23.00},
		{Capacity: 10, Price: 44.00},
		{Capacity: 15, Price: 64.50},
		{Capacity: 20, Price: 84.00},
		{Capacity: 25, Price: 104.00},
		{Capacity: 30, Price: 122.00},
		{Capacity: 50, Price: 199.00},
		{Capacity: 100, Price: 390.00},
	}
}
