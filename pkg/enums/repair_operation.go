package enums

import "fmt"

// RepairOperation is an atomic action performed on a selected part.
type RepairOperation string

const (
	OpPaint       RepairOperation = "lackieren"
	OpReplace     RepairOperation = "austauschen"
	OpDentPull    RepairOperation = "ausbeulen"
	OpWeld        RepairOperation = "schweissen"
	OpPolish      RepairOperation = "polieren"
	OpGlue        RepairOperation = "kleben"
	OpCalibrate   RepairOperation = "kalibrieren"
	OpBalance     RepairOperation = "wuchten"
	OpMount       RepairOperation = "montieren"
	OpSmartRepair RepairOperation = "smart_repair"
)

var validRepairOperations = []RepairOperation{
	OpPaint,
	OpReplace,
	OpDentPull,
	OpWeld,
	OpPolish,
	OpGlue,
	OpCalibrate,
	OpBalance,
	OpMount,
	OpSmartRepair,
}

// String implements fmt.Stringer.
func (o RepairOperation) String() string {
	return string(o)
}

// IsValid reports whether the value is a known RepairOperation.
func (o RepairOperation) IsValid() bool {
	for _, candidate := range validRepairOperations {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseRepairOperation converts raw input into a RepairOperation.
func ParseRepairOperation(value string) (RepairOperation, error) {
	for _, candidate := range validRepairOperations {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid repair operation %q", value)
}
