package enums

import "fmt"

// ServiceType identifies one category of repair work a quote can cover.
type ServiceType string

const (
	ServicePaint          ServiceType = "lack"
	ServiceBodywork       ServiceType = "karosserie"
	ServiceTires          ServiceType = "reifen"
	ServiceGlass          ServiceType = "glas"
	ServiceMechanical     ServiceType = "mechanik"
	ServiceCosmetic       ServiceType = "pflege"
	ServiceInspection     ServiceType = "inspektion"
	ServiceClimate        ServiceType = "klima"
	ServiceWrap           ServiceType = "folierung"
	ServiceProtectiveFilm ServiceType = "steinschlagschutz"
	ServiceAdWrap         ServiceType = "werbebeklebung"
	ServiceInsuranceClaim ServiceType = "versicherung"
)

var validServiceTypes = []ServiceType{
	ServicePaint,
	ServiceBodywork,
	ServiceTires,
	ServiceGlass,
	ServiceMechanical,
	ServiceCosmetic,
	ServiceInspection,
	ServiceClimate,
	ServiceWrap,
	ServiceProtectiveFilm,
	ServiceAdWrap,
	ServiceInsuranceClaim,
}

// String implements fmt.Stringer.
func (s ServiceType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ServiceType.
func (s ServiceType) IsValid() bool {
	for _, candidate := range validServiceTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseServiceType converts raw input into a ServiceType.
func ParseServiceType(value string) (ServiceType, error) {
	for _, candidate := range validServiceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid service type %q", value)
}

// ServiceTypes returns all known service types in catalog order.
func ServiceTypes() []ServiceType {
	out := make([]ServiceType, len(validServiceTypes))
	copy(out, validServiceTypes)
	return out
}
