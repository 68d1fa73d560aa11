package types

import (
	"github.com/shopspring/decimal"
)

// VariantTotals is one complete cost breakdown. Labor, material and the
// replacement vehicle sum are identical across variants; only the parts sum
// and everything downstream of it differ.
type VariantTotals struct {
	LaborSum              decimal.Decimal `json:"labor_sum"`
	MaterialSum           decimal.Decimal `json:"material_sum"`
	PartsSum              decimal.Decimal `json:"parts_sum"`
	ReplacementVehicleSum decimal.Decimal `json:"replacement_vehicle_sum"`
	NetSum                decimal.Decimal `json:"net_sum"`
	VATAmount             decimal.Decimal `json:"vat_amount"`
	GrossSum              decimal.Decimal `json:"gross_sum"`
}

// Totals carries both pricing variants plus the VAT rate they were computed with.
type Totals struct {
	Original    VariantTotals   `json:"original"`
	Aftermarket VariantTotals   `json:"aftermarket"`
	VATPercent  decimal.Decimal `json:"vat_percent"`
}

// LineItem is the priced instance of one (work item, operation) pair.
// Price is always Hours * HourlyRate, recomputed, never stored on its own.
type LineItem struct {
	Part       string          `json:"part"`
	Operation  string          `json:"operation"`
	Hours      decimal.Decimal `json:"hours"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Price      decimal.Decimal `json:"price"`
}

// MaterialConsumption aggregates material use by name across all line items.
type MaterialConsumption struct {
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}
