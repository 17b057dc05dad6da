package valueobject

import "fmt"

// PurposeColumnPrefix marks the one-hot purpose columns of a reference feature list.
const PurposeColumnPrefix = "purpose_"

// Purpose is an immutable value object for the loan purpose category.
type Purpose struct {
	value string
}

var (
	// PurposeAllOther is the baseline category. It was dropped during
	// training and has no column of its own.
	PurposeAllOther          = Purpose{value: "all_other"}
	PurposeCreditCard        = Purpose{value: "credit_card"}
	PurposeDebtConsolidation = Purpose{value: "debt_consolidation"}
	PurposeEducational       = Purpose{value: "educational"}
	PurposeMajorPurchase     = Purpose{value: "major_purchase"}
	PurposeSmallBusiness     = Purpose{value: "small_business"}
)

// Purposes returns the closed set of purposes in form order.
func Purposes() []Purpose {
	return []Purpose{
		PurposeAllOther,
		PurposeCreditCard,
		PurposeDebtConsolidation,
		PurposeEducational,
		PurposeMajorPurchase,
		PurposeSmallBusiness,
	}
}

// PurposeFromString reconstructs a Purpose from its string representation.
func PurposeFromString(s string) (Purpose, error) {
	for _, p := range Purposes() {
		if p.value == s {
			return p, nil
		}
	}
	return Purpose{}, fmt.Errorf("invalid loan purpose: %q", s)
}

// String returns the string representation.
func (p Purpose) String() string {
	return p.value
}

// IsBaseline reports whether p is the category represented by all-zero purpose columns.
func (p Purpose) IsBaseline() bool {
	return p == PurposeAllOther
}

// Column returns the one-hot column name derived from the purpose, e.g. "purpose_credit_card".
// The baseline purpose still yields a name, but no reference list carries it.
func (p Purpose) Column() string {
	return PurposeColumnPrefix + p.value
}

// Label returns a human readable label for form rendering.
func (p Purpose) Label() string {
	switch p {
	case PurposeAllOther:
		return "All other"
	case PurposeCreditCard:
		return "Credit card"
	case PurposeDebtConsolidation:
		return "Debt consolidation"
	case PurposeEducational:
		return "Educational"
	case PurposeMajorPurchase:
		return "Major purchase"
	case PurposeSmallBusiness:
		return "Small business"
	default:
		return p.value
	}
}

// IsZero returns true if the Purpose has not been set.
func (p Purpose) IsZero() bool {
	return p.value == ""
}

// Equal checks equality with another Purpose.
func (p Purpose) Equal(other Purpose) bool {
	return p.value == other.value
}
