package valueobject

import "fmt"

// RiskOutcome is the binary classifier decision rendered to the applicant.
type RiskOutcome struct {
	value string
}

var (
	// RiskOutcomeFullyPaid corresponds to class label 0.
	RiskOutcomeFullyPaid = RiskOutcome{value: "LIKELY_TO_FULLY_PAY"}
	// RiskOutcomeHighRisk corresponds to class label 1.
	RiskOutcomeHighRisk = RiskOutcome{value: "HIGH_RISK"}
)

// RiskOutcomeFromLabel maps a classifier label in {0,1} to an outcome.
func RiskOutcomeFromLabel(label int) (RiskOutcome, error) {
	switch label {
	case 0:
		return RiskOutcomeFullyPaid, nil
	case 1:
		return RiskOutcomeHighRisk, nil
	default:
		return RiskOutcome{}, fmt.Errorf("invalid class label: %d", label)
	}
}

// RiskOutcomeFromString reconstructs a RiskOutcome from its string representation.
func RiskOutcomeFromString(s string) (RiskOutcome, error) {
	switch s {
	case RiskOutcomeFullyPaid.value:
		return RiskOutcomeFullyPaid, nil
	case RiskOutcomeHighRisk.value:
		return RiskOutcomeHighRisk, nil
	default:
		return RiskOutcome{}, fmt.Errorf("invalid risk outcome: %s", s)
	}
}

// String returns the string representation.
func (r RiskOutcome) String() string {
	return r.value
}

// Label returns the classifier label (0 or 1), or -1 when unset.
func (r RiskOutcome) Label() int {
	switch r {
	case RiskOutcomeFullyPaid:
		return 0
	case RiskOutcomeHighRisk:
		return 1
	default:
		return -1
	}
}

// Headline is the message shown to the applicant.
func (r RiskOutcome) Headline() string {
	switch r {
	case RiskOutcomeHighRisk:
		return "High Risk of Not Fully Paying"
	case RiskOutcomeFullyPaid:
		return "Likely to Fully Pay"
	default:
		return ""
	}
}

// IsHighRisk reports whether the outcome is label 1.
func (r RiskOutcome) IsHighRisk() bool {
	return r == RiskOutcomeHighRisk
}

// IsZero returns true if the RiskOutcome has not been set.
func (r RiskOutcome) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskOutcome.
func (r RiskOutcome) Equal(other RiskOutcome) bool {
	return r.value == other.value
}
