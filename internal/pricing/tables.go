package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/quotewerk/quotewerk-backend/pkg/enums"
	"github.com/quotewerk/quotewerk-backend/pkg/types"
)

type keywordEntry struct {
	keyword string
	hours   decimal.Decimal
}

func h(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// keywordHours maps operations to ordered part-name keyword tables. Keywords
// are matched as lowercase substrings of the part name; put the more specific
// keyword first.
var keywordHours = map[enums.RepairOperation][]keywordEntry{
	enums.OpPaint: {
		{"stoßstange", h("3.0")},
		{"stossstange", h("3.0")},
		{"bumper", h("3.0")},
		{"motorhaube", h("3.5")},
		{"dach", h("4.0")},
		{"tür", h("2.5")},
		{"tuer", h("2.5")},
		{"kotflügel", h("2.0")},
		{"kotfluegel", h("2.0")},
		{"spiegel", h("0.8")},
		{"heckklappe", h("3.0")},
		{"schweller", h("2.2")},
	},
	enums.OpReplace: {
		{"frontscheibe", h("2.5")},
		{"scheinwerfer", h("1.2")},
		{"stoßstange", h("1.8")},
		{"stossstange", h("1.8")},
		{"tür", h("3.0")},
		{"tuer", h("3.0")},
		{"spiegel", h("0.6")},
		{"reifen", h("0.3")},
	},
	enums.OpDentPull: {
		{"dach", h("3.0")},
		{"motorhaube", h("2.5")},
		{"tür", h("1.5")},
		{"tuer", h("1.5")},
		{"kotflügel", h("1.2")},
		{"kotfluegel", h("1.2")},
	},
	enums.OpPolish: {
		{"scheinwerfer", h("0.5")},
	},
	enums.OpSmartRepair: {
		{"stoßstange", h("1.0")},
		{"stossstange", h("1.0")},
	},
}

// defaultHours is the per-operation fallback when no keyword matches.
// Operations absent here fall through to the global 1.0h default.
var defaultHours = map[enums.RepairOperation]decimal.Decimal{
	enums.OpPaint:       h("2.0"),
	enums.OpReplace:     h("1.5"),
	enums.OpDentPull:    h("1.5"),
	enums.OpWeld:        h("2.0"),
	enums.OpPolish:      h("1.0"),
	enums.OpGlue:        h("0.8"),
	enums.OpCalibrate:   h("1.0"),
	enums.OpBalance:     h("0.5"),
	enums.OpMount:       h("0.5"),
	enums.OpSmartRepair: h("1.2"),
}

var rateCategories = map[enums.RepairOperation]enums.RateCategory{
	enums.OpPaint:       enums.RatePaint,
	enums.OpSmartRepair: enums.RatePaint,
	enums.OpPolish:      enums.RatePaint,
	enums.OpReplace:     enums.RateBodywork,
	enums.OpDentPull:    enums.RateBodywork,
	enums.OpWeld:        enums.RateBodywork,
	enums.OpGlue:        enums.RateBodywork,
	enums.OpCalibrate:   enums.RateMechanical,
	enums.OpBalance:     enums.RateMechanical,
	enums.OpMount:       enums.RateMechanical,
}

// impliedMaterials maps each operation to the material lines it consumes.
// TotalPrice is left zero here; the engine fills it after quantity summing.
var impliedMaterials = map[enums.RepairOperation][]types.MaterialConsumption{
	enums.OpPaint: {
		{Name: "basislack", Quantity: h("0.4"), Unit: "l", UnitPrice: h("89.00")},
		{Name: "klarlack", Quantity: h("0.3"), Unit: "l", UnitPrice: h("64.00")},
		{Name: "härter", Quantity: h("0.15"), Unit: "l", UnitPrice: h("42.00")},
		{Name: "verdünnung", Quantity: h("0.2"), Unit: "l", UnitPrice: h("18.50")},
	},
	enums.OpSmartRepair: {
		{Name: "basislack", Quantity: h("0.1"), Unit: "l", UnitPrice: h("89.00")},
		{Name: "klarlack", Quantity: h("0.1"), Unit: "l", UnitPrice: h("64.00")},
	},
	enums.OpWeld: {
		{Name: "schweißdraht", Quantity: h("0.5"), Unit: "kg", UnitPrice: h("12.00")},
		{Name: "schutzgas", Quantity: h("0.3"), Unit: "m3", UnitPrice: h("9.80")},
	},
	enums.OpGlue: {
		{Name: "karosseriekleber", Quantity: h("1"), Unit: "kartusche", UnitPrice: h("24.90")},
	},
	enums.OpPolish: {
		{Name: "politurpaste", Quantity: h("0.1"), Unit: "kg", UnitPrice: h("31.00")},
	},
	enums.OpBalance: {
		{Name: "wuchtgewichte", Quantity: h("1"), Unit: "satz", UnitPrice: h("6.50")},
	},
	enums.OpMount: {
		{Name: "ventil", Quantity: h("1"), Unit: "stk", UnitPrice: h("3.20")},
	},
}
