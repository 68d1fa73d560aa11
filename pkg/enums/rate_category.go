package enums

import "fmt"

// RateCategory maps a repair operation to one of the configured hourly rates.
type RateCategory string

const (
	RatePaint      RateCategory = "paint"
	RateBodywork   RateCategory = "bodywork"
	RateMechanical RateCategory = "mechanical"
	RateMisc       RateCategory = "misc"
)

var validRateCategories = []RateCategory{
	RatePaint,
	RateBodywork,
	RateMechanical,
	RateMisc,
}

// String implements fmt.Stringer.
func (r RateCategory) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RateCategory.
func (r RateCategory) IsValid() bool {
	for _, candidate := range validRateCategories {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRateCategory converts raw input into a RateCategory.
func ParseRateCategory(value string) (RateCategory, error) {
	for _, candidate := range validRateCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rate category %q", value)
}
