package service

import (
	"fmt"

	"github.com/bibbank/loanrisk/internal/domain/model"
)

// FeatureAssembler is a stateless domain service that reconstructs the
// feature vector a classifier was trained on from a raw applicant record.
type FeatureAssembler struct{}

// NewFeatureAssembler creates a new FeatureAssembler.
func NewFeatureAssembler() *FeatureAssembler {
	return &FeatureAssembler{}
}

// Columns builds the named-value mapping for an applicant: the numeric fields
// under their reference names plus the one-hot purpose block. Every purpose
// column of the reference list is present, set to 0 unless it is the
// applicant's non-baseline purpose. A derived purpose column the reference
// list does not carry is dropped without error.
func (a *FeatureAssembler) Columns(applicant model.LoanApplicant, features model.FeatureList) map[string]float64 {
	columns := applicant.NumericFeatures()

	for _, name := range features.CategoryColumns() {
		columns[name] = 0
	}

	if !applicant.Purpose.IsBaseline() {
		if col := applicant.Purpose.Column(); features.Contains(col) {
			columns[col] = 1
		}
	}

	return columns
}

// Assemble projects the applicant onto the reference feature list. The
// result has features.Len() entries and its i-th entry is the value of
// features.At(i). Numeric fields the list does not name are dropped; a
// list name that is neither a known numeric field nor a purpose column
// yields a *model.SchemaMismatchError.
func (a *FeatureAssembler) Assemble(applicant model.LoanApplicant, features model.FeatureList) (model.FeatureVector, error) {
	if features.Len() == 0 {
		return nil, fmt.Errorf("%w: reference feature list is empty", model.ErrSchemaMismatch)
	}

	columns := a.Columns(applicant, features)

	vector := make(model.FeatureVector, features.Len())
	var missing []string
	for i := 0; i < features.Len(); i++ {
		name := features.At(i)
		v, ok := columns[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		vector[i] = v
	}

	if len(missing) > 0 {
		return nil, &model.SchemaMismatchError{Missing: missing}
	}
	return vector, nil
}

// Dropped returns the numeric fields the reference list does not use.
func (a *FeatureAssembler) Dropped(features model.FeatureList) []string {
	var dropped []string
	for _, spec := range model.Fields() {
		if !features.Contains(spec.Name) {
			dropped = append(dropped, spec.Name)
		}
	}
	return dropped
}

// PurposeColumnMissing reports whether the applicant's non-baseline purpose
// has no column in the reference list and is therefore encoded as baseline.
func (a *FeatureAssembler) PurposeColumnMissing(applicant model.LoanApplicant, features model.FeatureList) bool {
	return !applicant.Purpose.IsBaseline() && !features.Contains(applicant.Purpose.Column())
}
