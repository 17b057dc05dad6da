package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/loanrisk/internal/domain/event"
	"github.com/bibbank/loanrisk/internal/domain/valueobject"
	"github.com/bibbank/loanrisk/pkg/events"
)

// Prediction is the aggregate root recording one assemble -> scale ->
// classify cycle and its outcome.
type Prediction struct {
	events.EventCollector
	predictedAt  time.Time
	outcome      valueobject.RiskOutcome
	applicant    LoanApplicant
	probability  float64
	featureCount int
	id           uuid.UUID
}

// NewPrediction records a classifier result for an applicant.
// probabilities is the predict_proba row [p(class 0), p(class 1)].
func NewPrediction(applicant LoanApplicant, label int, probabilities []float64, featureCount int) (*Prediction, error) {
	outcome, err := valueobject.RiskOutcomeFromLabel(label)
	if err != nil {
		return nil, err
	}
	if len(probabilities) != 2 {
		return nil, fmt.Errorf("expected 2 class probabilities, got %d", len(probabilities))
	}
	for i, p := range probabilities {
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("class %d probability out of range: %v", i, p)
		}
	}
	if featureCount <= 0 {
		return nil, fmt.Errorf("feature count must be positive, got %d", featureCount)
	}

	p := &Prediction{
		id:           uuid.New(),
		applicant:    applicant,
		outcome:      outcome,
		probability:  probabilities[1],
		featureCount: featureCount,
		predictedAt:  time.Now().UTC(),
	}

	p.Record(event.NewPredictionCompleted(event.PredictionCompleted{
		PredictionID: p.id,
		Outcome:      outcome.String(),
		Label:        label,
		Probability:  p.probability,
		FeatureCount: featureCount,
		Purpose:      applicant.Purpose.String(),
		FICO:         applicant.FICO,
		PredictedAt:  p.predictedAt,
	}))

	if outcome.IsHighRisk() {
		p.Record(event.NewHighRiskDetected(event.HighRiskDetected{
			PredictionID: p.id,
			Probability:  p.probability,
			Purpose:      applicant.Purpose.String(),
			FICO:         applicant.FICO,
			DetectedAt:   p.predictedAt,
		}))
	}

	return p, nil
}

// ReconstructPrediction rebuilds a Prediction from persisted data (no validation, no events).
func ReconstructPrediction(
	id uuid.UUID,
	applicant LoanApplicant,
	outcome valueobject.RiskOutcome,
	probability float64,
	featureCount int,
	predictedAt time.Time,
) *Prediction {
	return &Prediction{
		id:           id,
		applicant:    applicant,
		outcome:      outcome,
		probability:  probability,
		featureCount: featureCount,
		predictedAt:  predictedAt,
	}
}

// --- Accessors ---

func (p *Prediction) ID() uuid.UUID                    { return p.id }
func (p *Prediction) Applicant() LoanApplicant         { return p.applicant }
func (p *Prediction) Outcome() valueobject.RiskOutcome { return p.outcome }
func (p *Prediction) Label() int                       { return p.outcome.Label() }
func (p *Prediction) FeatureCount() int                { return p.featureCount }
func (p *Prediction) PredictedAt() time.Time           { return p.predictedAt }

// Probability returns p(class 1), the probability of not fully paying.
func (p *Prediction) Probability() float64 { return p.probability }

// ProbabilityPercent formats Probability as a percentage with two decimals, e.g. "12.34%".
func (p *Prediction) ProbabilityPercent() string {
	return decimal.NewFromFloat(p.probability).Shift(2).StringFixed(2) + "%"
}

// Message is the line rendered to the applicant.
func (p *Prediction) Message() string {
	return fmt.Sprintf("%s (Probability: %s)", p.outcome.Headline(), p.ProbabilityPercent())
}

// DomainEvents returns all accumulated domain events and clears them.
func (p *Prediction) DomainEvents() []events.DomainEvent {
	return p.Drain()
}
