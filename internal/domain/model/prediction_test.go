package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/loanrisk/internal/domain/event"
	"github.com/bibbank/loanrisk/internal/domain/model"
	"github.com/bibbank/loanrisk/internal/domain/valueobject"
)

func TestNewPrediction_LowRisk(t *testing.T) {
	p, err := model.NewPrediction(model.DefaultLoanApplicant(), 0, []float64{0.8766, 0.1234}, 18)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, p.ID())
	assert.Equal(t, valueobject.RiskOutcomeFullyPaid, p.Outcome())
	assert.Equal(t, 0, p.Label())
	assert.Equal(t, 0.1234, p.Probability())
	assert.Equal(t, 18, p.FeatureCount())
	assert.False(t, p.PredictedAt().IsZero())
	assert.Equal(t, "12.34%", p.ProbabilityPercent())
	assert.Equal(t, "Likely to Fully Pay (Probability: 12.34%)", p.Message())

	evts := p.DomainEvents()
	require.Len(t, evts, 1)
	assert.Equal(t, event.EventTypePredictionCompleted, evts[0].EventType())
	assert.Equal(t, p.ID(), evts[0].AggregateID())
	assert.Empty(t, p.DomainEvents())
}

func TestNewPrediction_HighRisk(t *testing.T) {
	applicant := model.DefaultLoanApplicant()
	applicant.Purpose = valueobject.PurposeSmallBusiness

	p, err := model.NewPrediction(applicant, 1, []float64{0.3, 0.7}, 18)
	require.NoError(t, err)

	assert.Equal(t, "High Risk of Not Fully Paying (Probability: 70.00%)", p.Message())

	evts := p.DomainEvents()
	require.Len(t, evts, 2)
	assert.Equal(t, event.EventTypePredictionCompleted, evts[0].EventType())
	assert.Equal(t, event.EventTypeHighRiskDetected, evts[1].EventType())

	var payload event.HighRiskDetected
	require.NoError(t, json.Unmarshal(evts[1].Payload(), &payload))
	assert.Equal(t, p.ID(), payload.PredictionID)
	assert.Equal(t, "small_business", payload.Purpose)
	assert.Equal(t, 0.7, payload.Probability)
}

func TestNewPrediction_Validation(t *testing.T) {
	tests := []struct {
		name          string
		wantErr       string
		probabilities []float64
		label         int
		featureCount  int
	}{
		{name: "invalid label", label: 2, probabilities: []float64{0.5, 0.5}, featureCount: 3, wantErr: "invalid class label: 2"},
		{name: "single probability", label: 0, probabilities: []float64{1}, featureCount: 3, wantErr: "expected 2 class probabilities"},
		{name: "probability above one", label: 1, probabilities: []float64{-0.1, 1.1}, featureCount: 3, wantErr: "class 0 probability out of range"},
		{name: "zero feature count", label: 0, probabilities: []float64{0.9, 0.1}, featureCount: 0, wantErr: "feature count must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.NewPrediction(model.DefaultLoanApplicant(), tt.label, tt.probabilities, tt.featureCount)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReconstructPrediction_HasNoEvents(t *testing.T) {
	id := uuid.New()
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	p := model.ReconstructPrediction(id, model.DefaultLoanApplicant(), valueobject.RiskOutcomeHighRisk, 0.51234, 18, at)

	assert.Equal(t, id, p.ID())
	assert.Equal(t, 1, p.Label())
	assert.Equal(t, at, p.PredictedAt())
	assert.Equal(t, "51.23%", p.ProbabilityPercent())
	assert.Empty(t, p.DomainEvents())
}
