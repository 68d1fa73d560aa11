package enums

import "fmt"

// FieldType describes how a service-detail field is rendered and validated.
type FieldType string

const (
	FieldText    FieldType = "text"
	FieldSelect  FieldType = "select"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
	FieldFile    FieldType = "file"
)

var validFieldTypes = []FieldType{
	FieldText,
	FieldSelect,
	FieldNumber,
	FieldBoolean,
	FieldFile,
}

// String implements fmt.Stringer.
func (f FieldType) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FieldType.
func (f FieldType) IsValid() bool {
	for _, candidate := range validFieldTypes {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFieldType converts raw input into a FieldType.
func ParseFieldType(value string) (FieldType, error) {
	for _, candidate := range validFieldTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid field type %q", value)
}
