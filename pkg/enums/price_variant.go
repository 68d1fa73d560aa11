package enums

import "fmt"

// PriceVariant selects which replacement-part price column feeds the totals.
type PriceVariant string

const (
	VariantOriginal    PriceVariant = "original"
	VariantAftermarket PriceVariant = "aftermarket"
)

var validPriceVariants = []PriceVariant{
	VariantOriginal,
	VariantAftermarket,
}

// String implements fmt.Stringer.
func (v PriceVariant) String() string {
	return string(v)
}

// IsValid reports whether the value is a known PriceVariant.
func (v PriceVariant) IsValid() bool {
	for _, candidate := range validPriceVariants {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParsePriceVariant converts raw input into a PriceVariant.
func ParsePriceVariant(value string) (PriceVariant, error) {
	for _, candidate := range validPriceVariants {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid price variant %q", value)
}
