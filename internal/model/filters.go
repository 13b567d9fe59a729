package model

import "github.com/shopspring/decimal"

// FilterSet is the structured search intent extracted from a chat message.
// The shape is fixed: every dimension is always present, nil meaning
// unconstrained. Instances are built once per request and never mutated
// afterwards.
//
// JSON tags deliberately omit omitempty so serialized filters always carry
// the full key set, with null for unset dimensions. Price serializes as a
// decimal string, the year range as [low, high].
type FilterSet struct {
	BodyType     *string          `json:"body_type"`
	Transmission *string          `json:"transmission"`
	Fuel         *string          `json:"fuel"`
	PriceMax     *decimal.Decimal `json:"price_max"`
	YearMin      *int             `json:"year_min"`
	YearRange    *[2]int          `json:"year_range"`
	Doors        *int             `json:"doors"`
}

// IsEmpty reports whether no dimension is constrained.
func (f *FilterSet) IsEmpty() bool {
	if f == nil {
		return true
	}
	return f.BodyType == nil && f.Transmission == nil && f.Fuel == nil &&
		f.PriceMax == nil && f.YearMin == nil && f.YearRange == nil && f.Doors == nil
}
