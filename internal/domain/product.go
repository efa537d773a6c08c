package domain

// CapacityUnit denominates a data bundle size.
type CapacityUnit string

const (
	UnitGB CapacityUnit = "GB"
	UnitMB CapacityUnit = "MB"
)

// Product is one purchasable data bundle from the externally owned catalog.
type Product struct {
	ID            string       `json:"id"`
	ProductCode   string       `json:"productCode"`
	Name          string       `json:"name"`
	CapacityValue float64      `json:"capacityValue"`
	CapacityUnit  CapacityUnit `json:"capacityUnit"`
	Capacity      string       `json:"capacity"`
	Price         float64      `json:"price"`
}

// Capacity is a parsed data quantity. Value is in the denominated unit, so
// "500MB" is {500, MB}, not {0.5, GB}.
type Capacity struct {
	Value float64      `json:"value"`
	Unit  CapacityUnit `json:"unit"`
}

// Label renders the capacity the way it appears in user-facing messages,
// e.g. "2GB" or "500MB".
func (c Capacity) Label() string {
	return trimFloat(c.Value) + string(c.Unit)
}
