package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/loanrisk/internal/domain/model"
	"github.com/bibbank/loanrisk/internal/infrastructure/persistence/memory"
	"github.com/bibbank/loanrisk/pkg/testutil"
)

func newPrediction(t *testing.T) *model.Prediction {
	t.Helper()
	p, err := model.NewPrediction(model.DefaultLoanApplicant(), 1, []float64{0.2, 0.8}, 18)
	require.NoError(t, err)
	return p
}

func TestPredictionRepo_SaveAndFind(t *testing.T) {
	repo := memory.NewPredictionRepo()
	p := newPrediction(t)

	require.NoError(t, repo.Save(context.Background(), p))

	found, err := repo.FindByID(context.Background(), p.ID())
	require.NoError(t, err)
	assert.Equal(t, p.ID(), found.ID())
	assert.Equal(t, p.Message(), found.Message())
	assert.Empty(t, found.DomainEvents(), "stored copies carry no pending events")
}

func TestPredictionRepo_DuplicateSave(t *testing.T) {
	repo := memory.NewPredictionRepo()
	p := newPrediction(t)

	require.NoError(t, repo.Save(context.Background(), p))
	assert.Error(t, repo.Save(context.Background(), p))
}

func TestPredictionRepo_NotFound(t *testing.T) {
	repo := memory.NewPredictionRepo()

	_, err := repo.FindByID(context.Background(), testutil.TestUnknownID)
	testutil.AssertErrorIs(t, err, model.ErrPredictionNotFound, testutil.TestUnknownID.String())
}

func TestPredictionRepo_ConcurrentAccess(t *testing.T) {
	repo := memory.NewPredictionRepo()
	const n = 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := model.NewPrediction(model.DefaultLoanApplicant(), 0, []float64{0.7, 0.3}, 18)
			if !assert.NoError(t, err) {
				return
			}
			assert.NoError(t, repo.Save(context.Background(), p))
			_, err = repo.FindByID(context.Background(), p.ID())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, n, repo.Len())
}
