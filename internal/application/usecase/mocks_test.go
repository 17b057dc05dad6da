package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/loanrisk/internal/domain/model"
	"github.com/bibbank/loanrisk/pkg/events"
)

// --- Mock implementations ---

type mockScaler struct {
	err      error
	received model.FeatureVector
}

func (m *mockScaler) Transform(v model.FeatureVector) (model.FeatureVector, error) {
	m.received = v.Clone()
	if m.err != nil {
		return nil, m.err
	}
	return v.Clone(), nil
}

type mockClassifier struct {
	predictErr error
	probaErr   error
	proba      []float64
	label      int
}

func (m *mockClassifier) Predict(_ model.FeatureVector) (int, error) {
	if m.predictErr != nil {
		return 0, m.predictErr
	}
	return m.label, nil
}

func (m *mockClassifier) PredictProba(_ model.FeatureVector) ([]float64, error) {
	if m.probaErr != nil {
		return nil, m.probaErr
	}
	return m.proba, nil
}

type mockPredictionRepository struct {
	saveErr error
	saved   map[uuid.UUID]*model.Prediction
}

func newMockRepository() *mockPredictionRepository {
	return &mockPredictionRepository{saved: make(map[uuid.UUID]*model.Prediction)}
}

func (m *mockPredictionRepository) Save(_ context.Context, p *model.Prediction) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved[p.ID()] = p
	return nil
}

func (m *mockPredictionRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Prediction, error) {
	p, ok := m.saved[id]
	if !ok {
		return nil, model.ErrPredictionNotFound
	}
	return p, nil
}

type mockEventPublisher struct {
	publishErr      error
	publishedEvents []events.DomainEvent
}

func (m *mockEventPublisher) Publish(_ context.Context, evts ...events.DomainEvent) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockMetrics struct {
	mu          sync.Mutex
	predictions []string
	failures    []string
}

func (m *mockMetrics) RecordPrediction(_ context.Context, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.predictions = append(m.predictions, outcome)
}

func (m *mockMetrics) RecordFailure(_ context.Context, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, reason)
}
