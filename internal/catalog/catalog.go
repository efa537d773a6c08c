// Package catalog holds the read-only product lookup table supplied by the
// remote platform. The core never fetches or refreshes it itself.
package catalog

import "github.com/datamart/bulkorder/internal/domain"

type Catalog struct {
	products []domain.Product
}

func New(products []domain.Product) *Catalog {
	return &Catalog{products: products}
}

func (c *Catalog) Products() []domain.Product {
	return c.products
}

// Match resolves a parsed capacity to a catalog product. Matching is by
// numeric capacity value, with one disambiguation: a capacity of 500 that is
// not explicitly GB prefers the 500MB product over any literal 500 tier.
func (c *Catalog) Match(cap domain.Capacity) *domain.Product {
	if cap.Value == 500 && cap.Unit != domain.UnitGB {
		for i := range c.products {
			p := &c.products[i]
			if p.CapacityValue == 500 && p.CapacityUnit == domain.UnitMB {
				return p
			}
		}
	}

	for i := range c.products {
		p := &c.products[i]
		if p.CapacityValue == cap.Value {
			return p
		}
	}
	return nil
}
