// Package memory provides an in-process prediction repository used when no
// database is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/bibbank/loanrisk/internal/domain/model"
)

// PredictionRepo implements port.PredictionRepository on a map.
type PredictionRepo struct {
	predictions map[uuid.UUID]*model.Prediction
	mu          sync.RWMutex
}

// NewPredictionRepo creates an empty repository.
func NewPredictionRepo() *PredictionRepo {
	return &PredictionRepo{predictions: make(map[uuid.UUID]*model.Prediction)}
}

// Save stores a snapshot of the prediction. Saving an existing ID is an error.
func (r *PredictionRepo) Save(_ context.Context, p *model.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.predictions[p.ID()]; exists {
		return fmt.Errorf("save prediction: duplicate id %s", p.ID())
	}
	r.predictions[p.ID()] = snapshot(p)
	return nil
}

// FindByID returns a copy of the stored prediction.
func (r *PredictionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.predictions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrPredictionNotFound, id)
	}
	return snapshot(p), nil
}

// Len returns the number of stored predictions.
func (r *PredictionRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.predictions)
}

func snapshot(p *model.Prediction) *model.Prediction {
	return model.ReconstructPrediction(p.ID(), p.Applicant(), p.Outcome(), p.Probability(), p.FeatureCount(), p.PredictedAt())
}
