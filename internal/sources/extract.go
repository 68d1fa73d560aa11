package sources

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/quotewerk/quotewerk-backend/pkg/enums"
	"github.com/quotewerk/quotewerk-backend/pkg/types"
)

// Vehicle pulls the vehicle snapshot out of a raw payload. Intake drafts nest
// the vehicle under "fahrzeug" with German keys; partner submissions use flat
// "vehicle_*" keys. Both shapes are tried; missing fields stay zero.
func Vehicle(payload map[string]any) types.Vehicle {
	var vehicle types.Vehicle

	if nested, ok := payload["fahrzeug"].(map[string]any); ok {
		vehicle.Make = str(nested, "hersteller", "marke")
		vehicle.Model = str(nested, "modell")
		vehicle.Plate = str(nested, "kennzeichen")
		vehicle.ColorCode = str(nested, "farbcode", "farbe")
		vehicle.CustomerName = str(nested, "kunde", "kundenname")
		vehicle.Year = intPtr(nested, "baujahr")
		vehicle.Mileage = intPtr(nested, "kilometerstand", "km")
		vehicle.DeliveryDate = strPtr(nested, "abgabedatum")
		vehicle.PickupDate = strPtr(nested, "abholdatum")
		vehicle.LoanerVehicle = boolPtr(nested, "leihwagen")
		return vehicle
	}

	vehicle.Make = str(payload, "vehicle_make", "make")
	vehicle.Model = str(payload, "vehicle_model", "model")
	vehicle.Plate = str(payload, "license_plate", "plate")
	vehicle.ColorCode = str(payload, "color_code")
	vehicle.CustomerName = str(payload, "customer", "customer_name")
	vehicle.Year = intPtr(payload, "year", "vehicle_year")
	vehicle.Mileage = intPtr(payload, "mileage")
	vehicle.DeliveryDate = strPtr(payload, "delivery_date")
	vehicle.PickupDate = strPtr(payload, "pickup_date")
	vehicle.LoanerVehicle = boolPtr(payload, "loaner_vehicle")
	return vehicle
}

// ServiceSections pulls the per-service raw detail maps out of a payload.
// Intake drafts keep a "leistungen" object keyed by service type; partner
// submissions carry a "services" array of {type, details} objects. Entries
// with an unknown service type are skipped rather than failing the load.
func ServiceSections(payload map[string]any) map[enums.ServiceType]map[string]any {
	sections := map[enums.ServiceType]map[string]any{}

	if nested, ok := payload["leistungen"].(map[string]any); ok {
		for key, value := range nested {
			serviceType, err := enums.ParseServiceType(strings.ToLower(key))
			if err != nil {
				continue
			}
			if fields, ok := value.(map[string]any); ok {
				sections[serviceType] = fields
			}
		}
		return sections
	}

	if list, ok := payload["services"].([]any); ok {
		for _, raw := range list {
			entry, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			serviceType, err := enums.ParseServiceType(strings.ToLower(str(entry, "type")))
			if err != nil {
				continue
			}
			fields, _ := entry["details"].(map[string]any)
			if fields == nil {
				fields = map[string]any{}
			}
			sections[serviceType] = fields
		}
	}
	return sections
}

// ReplacementVehicleCost pulls the loaner vehicle cost out of a payload,
// trying both upstream key spellings. Unparseable values count as zero.
func ReplacementVehicleCost(payload map[string]any) decimal.Decimal {
	for _, key := range []string{"ersatzwagen_kosten", "replacement_vehicle_cost"} {
		switch value := payload[key].(type) {
		case float64:
			return decimal.NewFromFloat(value)
		case string:
			if parsed, err := decimal.NewFromString(strings.TrimSpace(value)); err == nil {
				return parsed
			}
		}
	}
	return decimal.Zero
}

// Summary builds the fields LinkQuote writes back onto the source record.
func Summary(quoteID string, totals types.Totals, services []enums.ServiceType) map[string]any {
	names := make([]string, 0, len(services))
	for _, service := range services {
		names = append(names, service.String())
	}
	return map[string]any{
		"quote_id":       quoteID,
		"services":       names,
		"net_original":   totals.Original.NetSum.Round(2).String(),
		"gross_original": totals.Original.GrossSum.Round(2).String(),
	}
}

func str(payload map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := payload[key].(string); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func strPtr(payload map[string]any, keys ...string) *string {
	if value := str(payload, keys...); value != "" {
		return &value
	}
	return nil
}

func intPtr(payload map[string]any, keys ...string) *int {
	for _, key := range keys {
		switch value := payload[key].(type) {
		case float64:
			n := int(value)
			return &n
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
				return &n
			}
		}
	}
	return nil
}

func boolPtr(payload map[string]any, keys ...string) *bool {
	for _, key := range keys {
		switch value := payload[key].(type) {
		case bool:
			b := value
			return &b
		case string:
			switch strings.ToLower(strings.TrimSpace(value)) {
			case "ja", "true", "yes":
				b := true
				return &b
			case "nein", "false", "no":
				b := false
				return &b
			}
		}
	}
	return nil
}
