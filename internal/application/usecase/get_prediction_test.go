package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/loanrisk/internal/application/dto"
	"github.com/bibbank/loanrisk/internal/application/usecase"
	"github.com/bibbank/loanrisk/internal/domain/model"
)

func TestGetPrediction_Execute(t *testing.T) {
	t.Run("returns a stored prediction", func(t *testing.T) {
		repo := newMockRepository()
		p, err := model.NewPrediction(model.DefaultLoanApplicant(), 0, []float64{0.9, 0.1}, 18)
		require.NoError(t, err)
		require.NoError(t, repo.Save(context.Background(), p))

		uc := usecase.NewGetPredictionUseCase(repo)
		resp, err := uc.Execute(context.Background(), dto.GetPredictionRequest{PredictionID: p.ID().String()})
		require.NoError(t, err)

		assert.Equal(t, p.ID().String(), resp.ID)
		assert.Equal(t, "10.00%", resp.ProbabilityPercent)
	})

	t.Run("unknown id", func(t *testing.T) {
		uc := usecase.NewGetPredictionUseCase(newMockRepository())

		_, err := uc.Execute(context.Background(), dto.GetPredictionRequest{PredictionID: uuid.NewString()})
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrPredictionNotFound))
	})

	t.Run("malformed id", func(t *testing.T) {
		uc := usecase.NewGetPredictionUseCase(newMockRepository())

		_, err := uc.Execute(context.Background(), dto.GetPredictionRequest{PredictionID: "not-a-uuid"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrPredictionNotFound))
	})
}
