package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/loanrisk/internal/domain/model"
	"github.com/bibbank/loanrisk/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// PredictRiskRequest carries one raw applicant record.
type PredictRiskRequest struct {
	Installment    decimal.Decimal `json:"installment"`
	RevolBal       decimal.Decimal `json:"revol_bal"`
	Purpose        string          `json:"purpose"`
	IntRate        float64         `json:"int_rate"`
	LogAnnualInc   float64         `json:"log_annual_inc"`
	DTI            float64         `json:"dti"`
	DaysWithCrLine float64         `json:"days_with_cr_line"`
	RevolUtil      float64         `json:"revol_util"`
	CreditPolicy   int             `json:"credit_policy"`
	FICO           int             `json:"fico"`
	InqLast6Mths   int             `json:"inq_last_6mths"`
	Delinq2Yrs     int             `json:"delinq_2yrs"`
	PubRec         int             `json:"pub_rec"`
}

// DefaultPredictRiskRequest returns the request matching the form defaults.
// JSON bodies are decoded over it so omitted fields keep their defaults.
func DefaultPredictRiskRequest() PredictRiskRequest {
	return RequestFromApplicant(model.DefaultLoanApplicant())
}

// RequestFromApplicant converts a domain applicant back into a request.
func RequestFromApplicant(a model.LoanApplicant) PredictRiskRequest {
	return PredictRiskRequest{
		CreditPolicy:   a.CreditPolicy,
		Purpose:        a.Purpose.String(),
		IntRate:        a.IntRate,
		Installment:    a.Installment,
		LogAnnualInc:   a.LogAnnualInc,
		DTI:            a.DTI,
		FICO:           a.FICO,
		DaysWithCrLine: a.DaysWithCrLine,
		RevolBal:       a.RevolBal,
		RevolUtil:      a.RevolUtil,
		InqLast6Mths:   a.InqLast6Mths,
		Delinq2Yrs:     a.Delinq2Yrs,
		PubRec:         a.PubRec,
	}
}

// ToApplicant parses and validates the request. Errors match
// model.ErrInvalidApplicant.
func (r PredictRiskRequest) ToApplicant() (model.LoanApplicant, error) {
	var purpose valueobject.Purpose
	if r.Purpose != "" {
		p, err := valueobject.PurposeFromString(r.Purpose)
		if err != nil {
			return model.LoanApplicant{}, &model.InvalidApplicantError{Fields: []model.FieldError{
				{Field: model.FieldPurpose, Reason: fmt.Sprintf("unknown value %q", r.Purpose)},
			}}
		}
		purpose = p
	}

	a := model.LoanApplicant{
		CreditPolicy:   r.CreditPolicy,
		Purpose:        purpose,
		IntRate:        r.IntRate,
		Installment:    r.Installment,
		LogAnnualInc:   r.LogAnnualInc,
		DTI:            r.DTI,
		FICO:           r.FICO,
		DaysWithCrLine: r.DaysWithCrLine,
		RevolBal:       r.RevolBal,
		RevolUtil:      r.RevolUtil,
		InqLast6Mths:   r.InqLast6Mths,
		Delinq2Yrs:     r.Delinq2Yrs,
		PubRec:         r.PubRec,
	}
	if err := a.Validate(); err != nil {
		return model.LoanApplicant{}, err
	}
	return a, nil
}

// GetPredictionRequest identifies a stored prediction.
type GetPredictionRequest struct {
	PredictionID string `json:"prediction_id"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// PredictionResponse is the external representation of a prediction.
type PredictionResponse struct {
	PredictedAt        time.Time `json:"predicted_at"`
	ID                 string    `json:"id"`
	Outcome            string    `json:"outcome"`
	ProbabilityPercent string    `json:"probability_percent"`
	Message            string    `json:"message"`
	Purpose            string    `json:"purpose"`
	Probability        float64   `json:"probability"`
	Label              int       `json:"label"`
	FeatureCount       int       `json:"feature_count"`
}

// FromModel maps a Prediction aggregate to its response.
func FromModel(p *model.Prediction) PredictionResponse {
	return PredictionResponse{
		ID:                 p.ID().String(),
		Label:              p.Label(),
		Outcome:            p.Outcome().String(),
		Probability:        p.Probability(),
		ProbabilityPercent: p.ProbabilityPercent(),
		Message:            p.Message(),
		FeatureCount:       p.FeatureCount(),
		Purpose:            p.Applicant().Purpose.String(),
		PredictedAt:        p.PredictedAt(),
	}
}
