package enums

import "fmt"

// WizardStep names one stage of the quotation flow.
type WizardStep string

const (
	StepVehicle          WizardStep = "vehicle"
	StepServices         WizardStep = "services"
	StepServiceDetails   WizardStep = "details"
	StepParts            WizardStep = "parts"
	StepOperations       WizardStep = "operations"
	StepReplacementParts WizardStep = "replacement_parts"
	StepSummary          WizardStep = "summary"
)

// orderedWizardSteps is the canonical forward order of the flow.
var orderedWizardSteps = []WizardStep{
	StepVehicle,
	StepServices,
	StepServiceDetails,
	StepParts,
	StepOperations,
	StepReplacementParts,
	StepSummary,
}

// String implements fmt.Stringer.
func (s WizardStep) String() string {
	return string(s)
}

// IsValid reports whether the value is a known WizardStep.
func (s WizardStep) IsValid() bool {
	return s.Index() >= 0
}

// Index returns the position of the step in the flow, or -1 when unknown.
func (s WizardStep) Index() int {
	for i, candidate := range orderedWizardSteps {
		if candidate == s {
			return i
		}
	}
	return -1
}

// ParseWizardStep converts raw input into a WizardStep.
func ParseWizardStep(value string) (WizardStep, error) {
	for _, candidate := range orderedWizardSteps {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid wizard step %q", value)
}

// WizardSteps returns the flow steps in forward order.
func WizardSteps() []WizardStep {
	out := make([]WizardStep, len(orderedWizardSteps))
	copy(out, orderedWizardSteps)
	return out
}
