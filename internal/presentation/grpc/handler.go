package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/loanrisk/internal/application/dto"
	"github.com/bibbank/loanrisk/internal/domain/model"
)

// PredictRiskExecutor runs a prediction cycle.
type PredictRiskExecutor interface {
	Execute(ctx context.Context, req dto.PredictRiskRequest) (dto.PredictionResponse, error)
}

// GetPredictionExecutor looks up a stored prediction.
type GetPredictionExecutor interface {
	Execute(ctx context.Context, req dto.GetPredictionRequest) (dto.PredictionResponse, error)
}

// PredictRiskRequest is the wire form of an applicant record. Omitted
// fields take the form defaults; amounts are decimal strings.
type PredictRiskRequest struct {
	CreditPolicy   *int     `json:"credit_policy,omitempty"`
	Purpose        string   `json:"purpose,omitempty"`
	IntRate        *float64 `json:"int_rate,omitempty"`
	Installment    string   `json:"installment,omitempty"`
	LogAnnualInc   *float64 `json:"log_annual_inc,omitempty"`
	DTI            *float64 `json:"dti,omitempty"`
	FICO           *int     `json:"fico,omitempty"`
	DaysWithCrLine *float64 `json:"days_with_cr_line,omitempty"`
	RevolBal       string   `json:"revol_bal,omitempty"`
	RevolUtil      *float64 `json:"revol_util,omitempty"`
	InqLast6Mths   *int     `json:"inq_last_6mths,omitempty"`
	Delinq2Yrs     *int     `json:"delinq_2yrs,omitempty"`
	PubRec         *int     `json:"pub_rec,omitempty"`
}

// GetPredictionRequest identifies a stored prediction.
type GetPredictionRequest struct {
	PredictionID string `json:"prediction_id"`
}

// PredictionReply is the wire form of a prediction.
type PredictionReply struct {
	PredictionID       string  `json:"prediction_id"`
	Outcome            string  `json:"outcome"`
	ProbabilityPercent string  `json:"probability_percent"`
	Message            string  `json:"message"`
	Purpose            string  `json:"purpose"`
	PredictedAt        string  `json:"predicted_at"`
	Probability        float64 `json:"probability"`
	Label              int32   `json:"label"`
	FeatureCount       int32   `json:"feature_count"`
}

// LoanRiskHandler implements LoanRiskServiceServer.
type LoanRiskHandler struct {
	UnimplementedLoanRiskServiceServer
	predict PredictRiskExecutor
	get     GetPredictionExecutor
}

// NewLoanRiskHandler creates a new gRPC handler.
func NewLoanRiskHandler(predict PredictRiskExecutor, get GetPredictionExecutor) *LoanRiskHandler {
	return &LoanRiskHandler{predict: predict, get: get}
}

// PredictRisk handles the gRPC PredictRisk request.
func (h *LoanRiskHandler) PredictRisk(ctx context.Context, req *PredictRiskRequest) (*PredictionReply, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	in, err := req.toDTO()
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result, err := h.predict.Execute(ctx, in)
	if err != nil {
		return nil, toStatus(err)
	}
	return toReply(result), nil
}

// GetPrediction handles the gRPC GetPrediction request.
func (h *LoanRiskHandler) GetPrediction(ctx context.Context, req *GetPredictionRequest) (*PredictionReply, error) {
	if req == nil || req.PredictionID == "" {
		return nil, status.Error(codes.InvalidArgument, "prediction_id is required")
	}

	result, err := h.get.Execute(ctx, dto.GetPredictionRequest{PredictionID: req.PredictionID})
	if err != nil {
		return nil, toStatus(err)
	}
	return toReply(result), nil
}

func (r *PredictRiskRequest) toDTO() (dto.PredictRiskRequest, error) {
	out := dto.DefaultPredictRiskRequest()

	if r.Purpose != "" {
		out.Purpose = r.Purpose
	}
	if r.Installment != "" {
		v, err := decimal.NewFromString(r.Installment)
		if err != nil {
			return dto.PredictRiskRequest{}, errors.New("invalid installment: not a decimal")
		}
		out.Installment = v
	}
	if r.RevolBal != "" {
		v, err := decimal.NewFromString(r.RevolBal)
		if err != nil {
			return dto.PredictRiskRequest{}, errors.New("invalid revol_bal: not a decimal")
		}
		out.RevolBal = v
	}

	setInt(&out.CreditPolicy, r.CreditPolicy)
	setInt(&out.FICO, r.FICO)
	setInt(&out.InqLast6Mths, r.InqLast6Mths)
	setInt(&out.Delinq2Yrs, r.Delinq2Yrs)
	setInt(&out.PubRec, r.PubRec)
	setFloat(&out.IntRate, r.IntRate)
	setFloat(&out.LogAnnualInc, r.LogAnnualInc)
	setFloat(&out.DTI, r.DTI)
	setFloat(&out.DaysWithCrLine, r.DaysWithCrLine)
	setFloat(&out.RevolUtil, r.RevolUtil)

	return out, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func toReply(r dto.PredictionResponse) *PredictionReply {
	return &PredictionReply{
		PredictionID:       r.ID,
		Label:              int32(r.Label), //nolint:gosec // label is 0 or 1
		Outcome:            r.Outcome,
		Probability:        r.Probability,
		ProbabilityPercent: r.ProbabilityPercent,
		Message:            r.Message,
		FeatureCount:       int32(r.FeatureCount), //nolint:gosec // bounded by the feature list
		Purpose:            r.Purpose,
		PredictedAt:        r.PredictedAt.Format(time.RFC3339Nano),
	}
}

// toStatus maps domain errors onto gRPC status codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidApplicant):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrPredictionNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
