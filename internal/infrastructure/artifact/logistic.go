package artifact

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/bibbank/loanrisk/internal/domain/model"
)

// ModelKindLogisticRegression identifies a binary logistic regression.
const ModelKindLogisticRegression = "logistic_regression"

// defaultThreshold matches predicting the class with the larger probability.
const defaultThreshold = 0.5

// modelDocument is the on-disk form of a fitted classifier.
type modelDocument struct {
	Threshold *float64  `json:"threshold,omitempty"`
	Kind      string    `json:"kind"`
	Coef      []float64 `json:"coef"`
	Classes   []int     `json:"classes,omitempty"`
	Intercept float64   `json:"intercept"`
}

// LogisticModel implements port.Classifier for a fitted binary logistic
// regression: p1 = sigmoid(coef . x + intercept).
type LogisticModel struct {
	coef      *mat.VecDense
	intercept float64
	threshold float64
}

// NewLogisticModel builds a classifier from fitted coefficients.
func NewLogisticModel(coef []float64, intercept, threshold float64) (*LogisticModel, error) {
	if len(coef) == 0 {
		return nil, fmt.Errorf("model: coefficients must not be empty")
	}
	if threshold <= 0 || threshold >= 1 {
		return nil, fmt.Errorf("model: threshold must be in (0,1), got %v", threshold)
	}
	for i, c := range coef {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("model: coefficient %d is not finite", i)
		}
	}

	c := make([]float64, len(coef))
	copy(c, coef)

	return &LogisticModel{
		coef:      mat.NewVecDense(len(c), c),
		intercept: intercept,
		threshold: threshold,
	}, nil
}

// LoadLogisticModel reads a model document from path.
func LoadLogisticModel(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model: read %s: %w", path, err)
	}

	var doc modelDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("model: decode %s: %w", path, err)
	}
	if doc.Kind != ModelKindLogisticRegression {
		return nil, fmt.Errorf("model: unsupported kind %q", doc.Kind)
	}
	if len(doc.Classes) > 0 && (len(doc.Classes) != 2 || doc.Classes[0] != 0 || doc.Classes[1] != 1) {
		return nil, fmt.Errorf("model: classes must be [0 1], got %v", doc.Classes)
	}

	threshold := defaultThreshold
	if doc.Threshold != nil {
		threshold = *doc.Threshold
	}

	return NewLogisticModel(doc.Coef, doc.Intercept, threshold)
}

// Width returns the number of input columns.
func (m *LogisticModel) Width() int {
	return m.coef.Len()
}

// Predict returns 1 when p(class 1) reaches the threshold, else 0.
func (m *LogisticModel) Predict(vector model.FeatureVector) (int, error) {
	p, err := m.positive(vector)
	if err != nil {
		return 0, err
	}
	if p >= m.threshold {
		return 1, nil
	}
	return 0, nil
}

// PredictProba returns [p(class 0), p(class 1)].
func (m *LogisticModel) PredictProba(vector model.FeatureVector) ([]float64, error) {
	p, err := m.positive(vector)
	if err != nil {
		return nil, err
	}
	return []float64{1 - p, p}, nil
}

func (m *LogisticModel) positive(vector model.FeatureVector) (float64, error) {
	if vector.Width() != m.Width() {
		return 0, fmt.Errorf("%w: model expects %d columns, got %d", model.ErrWidthMismatch, m.Width(), vector.Width())
	}
	x := mat.NewVecDense(vector.Width(), []float64(vector.Clone()))
	return sigmoid(mat.Dot(m.coef, x) + m.intercept), nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
