package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bibbank/loanrisk/internal/application/dto"
	"github.com/bibbank/loanrisk/internal/domain/model"
	"github.com/bibbank/loanrisk/internal/domain/port"
)

// GetPredictionUseCase retrieves a stored prediction by ID.
type GetPredictionUseCase struct {
	repo port.PredictionRepository
}

// NewGetPredictionUseCase wires dependencies.
func NewGetPredictionUseCase(repo port.PredictionRepository) *GetPredictionUseCase {
	return &GetPredictionUseCase{repo: repo}
}

// Execute returns the prediction for the given ID. A malformed ID is
// reported as not found.
func (uc *GetPredictionUseCase) Execute(ctx context.Context, req dto.GetPredictionRequest) (dto.PredictionResponse, error) {
	id, err := uuid.Parse(req.PredictionID)
	if err != nil {
		return dto.PredictionResponse{}, fmt.Errorf("%w: invalid id %q", model.ErrPredictionNotFound, req.PredictionID)
	}

	prediction, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return dto.PredictionResponse{}, fmt.Errorf("find prediction: %w", err)
	}
	return dto.FromModel(prediction), nil
}
