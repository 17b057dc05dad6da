package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bibbank/loanrisk/internal/domain/model"
	"github.com/bibbank/loanrisk/internal/domain/valueobject"
)

// PredictionRepo implements port.PredictionRepository.
type PredictionRepo struct {
	pool *pgxpool.Pool
}

// NewPredictionRepo creates a new repository backed by PostgreSQL.
func NewPredictionRepo(pool *pgxpool.Pool) *PredictionRepo {
	return &PredictionRepo{pool: pool}
}

// Save inserts a prediction. Predictions are immutable, so a second save of
// the same ID is an error.
func (r *PredictionRepo) Save(ctx context.Context, p *model.Prediction) error {
	a := p.Applicant()
	query := `
		INSERT INTO predictions (
			id, outcome, probability, feature_count, purpose,
			credit_policy, int_rate, installment, log_annual_inc, dti,
			fico, days_with_cr_line, revol_bal, revol_util, inq_last_6mths,
			delinq_2yrs, pub_rec, predicted_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
	`
	_, err := r.pool.Exec(ctx, query,
		p.ID(), p.Outcome().String(), p.Probability(), p.FeatureCount(), a.Purpose.String(),
		a.CreditPolicy, a.IntRate, a.Installment, a.LogAnnualInc, a.DTI,
		a.FICO, a.DaysWithCrLine, a.RevolBal, a.RevolUtil, a.InqLast6Mths,
		a.Delinq2Yrs, a.PubRec, p.PredictedAt(),
	)
	if err != nil {
		return fmt.Errorf("save prediction: %w", err)
	}
	return nil
}

// FindByID retrieves a single prediction.
func (r *PredictionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Prediction, error) {
	query := `
		SELECT id, outcome, probability, feature_count, purpose,
		       credit_policy, int_rate, installment, log_annual_inc, dti,
		       fico, days_with_cr_line, revol_bal, revol_util, inq_last_6mths,
		       delinq_2yrs, pub_rec, predicted_at
		FROM predictions
		WHERE id = $1
	`
	p, err := scanPrediction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", model.ErrPredictionNotFound, id)
		}
		return nil, fmt.Errorf("find prediction: %w", err)
	}
	return p, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanPrediction(s scannable) (*model.Prediction, error) {
	var (
		id                     uuid.UUID
		outcomeStr, purposeStr string
		probability            float64
		featureCount           int
		predictedAt            time.Time
		a                      model.LoanApplicant
	)

	err := s.Scan(
		&id, &outcomeStr, &probability, &featureCount, &purposeStr,
		&a.CreditPolicy, &a.IntRate, &a.Installment, &a.LogAnnualInc, &a.DTI,
		&a.FICO, &a.DaysWithCrLine, &a.RevolBal, &a.RevolUtil, &a.InqLast6Mths,
		&a.Delinq2Yrs, &a.PubRec, &predictedAt,
	)
	if err != nil {
		return nil, err
	}

	outcome, err := valueobject.RiskOutcomeFromString(outcomeStr)
	if err != nil {
		return nil, fmt.Errorf("scan prediction %s: %w", id, err)
	}
	a.Purpose, err = valueobject.PurposeFromString(purposeStr)
	if err != nil {
		return nil, fmt.Errorf("scan prediction %s: %w", id, err)
	}

	return model.ReconstructPrediction(id, a, outcome, probability, featureCount, predictedAt.UTC()), nil
}
