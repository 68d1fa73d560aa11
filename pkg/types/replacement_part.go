package types

import (
	"github.com/google/uuid"
	"github.com/quotewerk/quotewerk-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// ReplacementPart is one part to be ordered for the repair, priced in two
// variants (manufacturer original vs aftermarket).
type ReplacementPart struct {
	ID               uuid.UUID         `json:"id"`
	Name             string            `json:"name"`
	PartNumber       string            `json:"part_number,omitempty"`
	Supplier         string            `json:"supplier,omitempty"`
	Quantity         int               `json:"quantity"`
	PriceOriginal    decimal.Decimal   `json:"price_original"`
	PriceAftermarket decimal.Decimal   `json:"price_aftermarket"`
	ServiceType      enums.ServiceType `json:"service_type,omitempty"`
}

// Normalize applies the pricing defaults: a missing aftermarket price falls
// back to the original price so the aftermarket variant never undercounts.
func (p ReplacementPart) Normalize() ReplacementPart {
	if p.PriceAftermarket.IsZero() && p.PriceOriginal.IsPositive() {
		p.PriceAftermarket = p.PriceOriginal
	}
	if p.Quantity < 1 {
		p.Quantity = 1
	}
	return p
}

// PriceFor returns the unit price for the requested variant.
func (p ReplacementPart) PriceFor(variant enums.PriceVariant) decimal.Decimal {
	if variant == enums.VariantAftermarket {
		return p.PriceAftermarket
	}
	return p.PriceOriginal
}
