// Package pricing computes quote totals. The engine is pure: it takes the
// current work items, replacement parts and rate settings and rebuilds every
// line item, material consumption and total from scratch. Nothing is cached
// between runs, so callers recompute after every mutation.
package pricing

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/quotewerk/quotewerk-backend/pkg/enums"
	"github.com/quotewerk/quotewerk-backend/pkg/types"
)

// Rates are the hourly rates and VAT percentage a computation runs with.
// They come from rate_settings in the database, falling back to config.
type Rates struct {
	Paint      decimal.Decimal
	Bodywork   decimal.Decimal
	Mechanical decimal.Decimal
	Misc       decimal.Decimal
	VATPercent decimal.Decimal
}

// RateFor resolves the hourly rate for a rate category.
func (r Rates) RateFor(category enums.RateCategory) decimal.Decimal {
	switch category {
	case enums.RatePaint:
		return r.Paint
	case enums.RateBodywork:
		return r.Bodywork
	case enums.RateMechanical:
		return r.Mechanical
	default:
		return r.Misc
	}
}

// Input is everything the engine prices.
type Input struct {
	WorkItems              []types.WorkItem
	ReplacementParts       []types.ReplacementPart
	ReplacementVehicleCost decimal.Decimal
}

// Result is one full computation. Totals carry both price variants; Labor and
// Materials are the itemized breakdown behind the labor and material sums.
type Result struct {
	Totals    types.Totals
	Labor     []types.LineItem
	Materials []types.MaterialConsumption
}

// Compute prices the input in full. Sums stay at full decimal precision;
// rounding to two places happens only when values leave the engine through
// Rounded or the response layer.
func Compute(in Input, rates Rates) Result {
	var result Result

	laborSum := decimal.Zero
	consumed := map[string]*types.MaterialConsumption{}
	var materialOrder []string

	for _, item := range in.WorkItems {
		for _, op := range item.Operations {
			hours := resolveHours(op, item.Part)
			rate := rates.RateFor(categoryFor(op))
			line := types.LineItem{
				Part:       item.Part,
				Operation:  op.String(),
				Hours:      hours,
				HourlyRate: rate,
				Price:      hours.Mul(rate),
			}
			result.Labor = append(result.Labor, line)
			laborSum = laborSum.Add(line.Price)

			for _, material := range impliedMaterials[op] {
				existing, ok := consumed[material.Name]
				if !ok {
					copied := material
					consumed[material.Name] = &copied
					materialOrder = append(materialOrder, material.Name)
					continue
				}
				existing.Quantity = existing.Quantity.Add(material.Quantity)
			}
		}
	}

	materialSum := decimal.Zero
	for _, name := range materialOrder {
		material := consumed[name]
		material.TotalPrice = material.Quantity.Mul(material.UnitPrice)
		materialSum = materialSum.Add(material.TotalPrice)
		result.Materials = append(result.Materials, *material)
	}

	result.Totals = types.Totals{
		Original:    variantTotals(in, enums.VariantOriginal, laborSum, materialSum, rates),
		Aftermarket: variantTotals(in, enums.VariantAftermarket, laborSum, materialSum, rates),
		VATPercent:  rates.VATPercent,
	}
	return result
}

func variantTotals(in Input, variant enums.PriceVariant, laborSum, materialSum decimal.Decimal, rates Rates) types.VariantTotals {
	partsSum := decimal.Zero
	for _, part := range in.ReplacementParts {
		normalized := part.Normalize()
		quantity := decimal.NewFromInt(int64(normalized.Quantity))
		partsSum = partsSum.Add(normalized.PriceFor(variant).Mul(quantity))
	}

	net := laborSum.Add(materialSum).Add(partsSum).Add(in.ReplacementVehicleCost)
	vat := net.Mul(rates.VATPercent).Div(decimal.NewFromInt(100))

	return types.VariantTotals{
		LaborSum:              laborSum,
		MaterialSum:           materialSum,
		PartsSum:              partsSum,
		ReplacementVehicleSum: in.ReplacementVehicleCost,
		NetSum:                net,
		VATAmount:             vat,
		GrossSum:              net.Add(vat),
	}
}

// resolveHours runs the two-level lookup: operation-specific keyword table
// first (first matching keyword wins, matched by part-name substring), then
// the operation default, then the global conservative default of 1.0h.
func resolveHours(op enums.RepairOperation, part string) decimal.Decimal {
	needle := strings.ToLower(part)
	for _, entry := range keywordHours[op] {
		if strings.Contains(needle, entry.keyword) {
			return entry.hours
		}
	}
	if hours, ok := defaultHours[op]; ok {
		return hours
	}
	return decimal.NewFromInt(1)
}

func categoryFor(op enums.RepairOperation) enums.RateCategory {
	if category, ok := rateCategories[op]; ok {
		return category
	}
	return enums.RateMisc
}

// Rounded returns a copy with every monetary and hour value rounded to two
// decimal places. Only presentation and persistence use it.
func (r Result) Rounded() Result {
	rounded := Result{
		Totals: types.Totals{
			Original:    roundVariant(r.Totals.Original),
			Aftermarket: roundVariant(r.Totals.Aftermarket),
			VATPercent:  r.Totals.VATPercent,
		},
	}
	for _, line := range r.Labor {
		line.Hours = line.Hours.Round(2)
		line.Price = line.Price.Round(2)
		rounded.Labor = append(rounded.Labor, line)
	}
	for _, material := range r.Materials {
		material.Quantity = material.Quantity.Round(2)
		material.TotalPrice = material.TotalPrice.Round(2)
		rounded.Materials = append(rounded.Materials, material)
	}
	return rounded
}

func roundVariant(v types.VariantTotals) types.VariantTotals {
	v.LaborSum = v.LaborSum.Round(2)
	v.MaterialSum = v.MaterialSum.Round(2)
	v.PartsSum = v.PartsSum.Round(2)
	v.ReplacementVehicleSum = v.ReplacementVehicleSum.Round(2)
	v.NetSum = v.NetSum.Round(2)
	v.VATAmount = v.VATAmount.Round(2)
	v.GrossSum = v.GrossSum.Round(2)
	return v
}

// SortedMaterials returns the materials ordered by name, for stable reports.
func (r Result) SortedMaterials() []types.MaterialConsumption {
	out := make([]types.MaterialConsumption, len(r.Materials))
	copy(out, r.Materials)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
