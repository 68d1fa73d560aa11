package enums

import "fmt"

// SourceKind tells which upstream shape a loaded vehicle record came from.
type SourceKind string

const (
	SourceIntakeDraft       SourceKind = "intake_draft"
	SourcePartnerSubmission SourceKind = "partner_submission"
	SourceManual            SourceKind = "manual"
)

var validSourceKinds = []SourceKind{
	SourceIntakeDraft,
	SourcePartnerSubmission,
	SourceManual,
}

// String implements fmt.Stringer.
func (s SourceKind) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SourceKind.
func (s SourceKind) IsValid() bool {
	for _, candidate := range validSourceKinds {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSourceKind converts raw input into a SourceKind.
func ParseSourceKind(value string) (SourceKind, error) {
	for _, candidate := range validSourceKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid source kind %q", value)
}
