package artifact

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/bibbank/loanrisk/internal/domain/model"
)

// ScalerKindStandard identifies a mean/variance scaler.
const ScalerKindStandard = "standard"

// scalerDocument is the on-disk form of a fitted scaler.
type scalerDocument struct {
	Kind         string    `json:"kind"`
	Mean         []float64 `json:"mean"`
	Scale        []float64 `json:"scale"`
	FeatureNames []string  `json:"feature_names,omitempty"`
}

// StandardScaler implements port.Scaler as (x - mean) / scale.
type StandardScaler struct {
	mean         *mat.VecDense
	scale        *mat.VecDense
	featureNames []string
}

// NewStandardScaler builds a scaler from fitted statistics. A zero scale
// entry (constant training column) is treated as 1.
func NewStandardScaler(mean, scale []float64, featureNames []string) (*StandardScaler, error) {
	if len(mean) == 0 {
		return nil, fmt.Errorf("scaler: mean must not be empty")
	}
	if len(mean) != len(scale) {
		return nil, fmt.Errorf("scaler: mean has %d entries but scale has %d", len(mean), len(scale))
	}
	if len(featureNames) > 0 && len(featureNames) != len(mean) {
		return nil, fmt.Errorf("scaler: %d feature names for %d statistics", len(featureNames), len(mean))
	}

	s := make([]float64, len(scale))
	for i, v := range scale {
		if v == 0 {
			v = 1
		}
		s[i] = v
	}
	m := make([]float64, len(mean))
	copy(m, mean)

	var names []string
	if len(featureNames) > 0 {
		names = make([]string, len(featureNames))
		copy(names, featureNames)
	}

	return &StandardScaler{
		mean:         mat.NewVecDense(len(m), m),
		scale:        mat.NewVecDense(len(s), s),
		featureNames: names,
	}, nil
}

// LoadScaler reads a scaler document from path.
func LoadScaler(path string) (*StandardScaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scaler: read %s: %w", path, err)
	}

	var doc scalerDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("scaler: decode %s: %w", path, err)
	}
	if doc.Kind != "" && doc.Kind != ScalerKindStandard {
		return nil, fmt.Errorf("scaler: unsupported kind %q", doc.Kind)
	}

	return NewStandardScaler(doc.Mean, doc.Scale, doc.FeatureNames)
}

// Width returns the number of columns the scaler was fit with.
func (s *StandardScaler) Width() int {
	return s.mean.Len()
}

// FeatureNames returns the column names recorded at fit time, if any.
func (s *StandardScaler) FeatureNames() []string {
	return s.featureNames
}

// Transform standardizes vector. The input is not modified.
func (s *StandardScaler) Transform(vector model.FeatureVector) (model.FeatureVector, error) {
	if vector.Width() != s.Width() {
		return nil, fmt.Errorf("%w: scaler expects %d columns, got %d", model.ErrWidthMismatch, s.Width(), vector.Width())
	}

	out := mat.NewVecDense(vector.Width(), []float64(vector.Clone()))
	out.SubVec(out, s.mean)
	out.DivElemVec(out, s.scale)

	return model.FeatureVector(out.RawVector().Data), nil
}
