package domain

import "fmt"

// Pattern and wear bounds accepted by the API.
const (
	MinPattern = 0
	MaxPattern = 1000

	// WearEpsilon is the smallest wear value treated as valid. Real items
	// never have a wear of exactly zero.
	WearEpsilon = 0.0000000000001
	MaxWear     = 1.0
)

// ValidPattern reports whether p is absent or within [MinPattern, MaxPattern].
func ValidPattern(p *int) bool {
	if p == nil {
		return true
	}
	return *p >= MinPattern && *p <= MaxPattern
}

// ValidPriceCheckPattern reports whether p is acceptable for a price check.
// The bound currently matches ValidPattern.
func ValidPriceCheckPattern(p int) bool {
	return p >= MinPattern && p <= MaxPattern
}

// ValidWear reports whether w lies in [WearEpsilon, MaxWear].
func ValidWear(w float64) bool {
	return w >= WearEpsilon && w <= MaxWear
}

// Filter constrains a coverage statistic to a (Min, Max) percentage range.
type Filter struct {
	Type FilterType `json:"type"`
	Min  float64    `json:"min"`
	Max  float64    `json:"max"`
}

// Valid reports whether the range satisfies 0 <= Min < 100, 0 < Max <= 100
// and Max > Min.
func (f Filter) Valid() bool {
	return f.Min >= 0 && f.Min < 100 &&
		f.Max > 0 && f.Max <= 100 &&
		f.Max > f.Min
}

func (f Filter) String() string {
	return fmt.Sprintf("Filter(type=%s, min=%g, max=%g)", f.Type, f.Min, f.Max)
}
