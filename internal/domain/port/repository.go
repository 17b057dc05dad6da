package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/bibbank/loanrisk/internal/domain/model"
	"github.com/bibbank/loanrisk/pkg/events"
)

// Scaler normalizes an assembled vector. It is fit by the external training
// process and must receive a vector of the exact width it was fit with.
type Scaler interface {
	Transform(vector model.FeatureVector) (model.FeatureVector, error)
}

// Classifier is the pre-trained binary risk model.
type Classifier interface {
	// Predict returns the class label in {0,1}.
	Predict(vector model.FeatureVector) (int, error)

	// PredictProba returns [p(class 0), p(class 1)].
	PredictProba(vector model.FeatureVector) ([]float64, error)
}

// PredictionRepository defines the persistence port for prediction history.
type PredictionRepository interface {
	// Save persists a new prediction.
	Save(ctx context.Context, prediction *model.Prediction) error

	// FindByID retrieves a prediction; it returns model.ErrPredictionNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Prediction, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	Publish(ctx context.Context, events ...events.DomainEvent) error
}
