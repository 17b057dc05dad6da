package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/loanrisk/pkg/events"
)

const (
	// AggregateTypePrediction is the aggregate type of every loanrisk event.
	AggregateTypePrediction = "Prediction"

	// EventTypePredictionCompleted is emitted for every successful prediction.
	EventTypePredictionCompleted = "loanrisk.prediction.completed"

	// EventTypeHighRiskDetected is emitted when the classifier returns label 1.
	EventTypeHighRiskDetected = "loanrisk.high_risk.detected"
)

// PredictionCompleted is the payload of EventTypePredictionCompleted.
type PredictionCompleted struct {
	PredictedAt  time.Time `json:"predicted_at"`
	Outcome      string    `json:"outcome"`
	Purpose      string    `json:"purpose"`
	Probability  float64   `json:"probability"`
	Label        int       `json:"label"`
	FeatureCount int       `json:"feature_count"`
	FICO         int       `json:"fico"`
	PredictionID uuid.UUID `json:"prediction_id"`
}

// NewPredictionCompleted builds the domain event for a finished prediction.
func NewPredictionCompleted(p PredictionCompleted) events.DomainEvent {
	return events.NewBaseEvent(EventTypePredictionCompleted, p.PredictionID, AggregateTypePrediction, p)
}

// HighRiskDetected is the payload of EventTypeHighRiskDetected.
type HighRiskDetected struct {
	DetectedAt   time.Time `json:"detected_at"`
	Purpose      string    `json:"purpose"`
	Probability  float64   `json:"probability"`
	FICO         int       `json:"fico"`
	PredictionID uuid.UUID `json:"prediction_id"`
}

// NewHighRiskDetected builds the domain event for a label-1 prediction.
func NewHighRiskDetected(h HighRiskDetected) events.DomainEvent {
	return events.NewBaseEvent(EventTypeHighRiskDetected, h.PredictionID, AggregateTypePrediction, h)
}
