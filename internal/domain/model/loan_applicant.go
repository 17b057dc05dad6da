package model

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/bibbank/loanrisk/internal/domain/valueobject"
)

// Reference feature names produced from the numeric applicant fields.
const (
	FeatureCreditPolicy   = "credit.policy"
	FeatureIntRate        = "int.rate"
	FeatureInstallment    = "installment"
	FeatureLogAnnualInc   = "log.annual.inc"
	FeatureDTI            = "dti"
	FeatureFICO           = "fico"
	FeatureDaysWithCrLine = "days.with.cr.line"
	FeatureRevolBal       = "revol.bal"
	FeatureRevolUtil      = "revol.util"
	FeatureInqLast6Mths   = "inq.last.6mths"
	FeatureDelinq2Yrs     = "delinq.2yrs"
	FeaturePubRec         = "pub.rec"
)

// FieldPurpose is the form name of the categorical purpose field.
const FieldPurpose = "purpose"

// LoanApplicant is the raw input record collected on every interaction.
// It is a plain value and is never persisted across interactions.
type LoanApplicant struct {
	Installment    decimal.Decimal
	RevolBal       decimal.Decimal
	Purpose        valueobject.Purpose
	IntRate        float64
	LogAnnualInc   float64
	DTI            float64
	DaysWithCrLine float64
	RevolUtil      float64
	CreditPolicy   int
	FICO           int
	InqLast6Mths   int
	Delinq2Yrs     int
	PubRec         int
}

// DefaultLoanApplicant returns the record the form starts with.
func DefaultLoanApplicant() LoanApplicant {
	return LoanApplicant{
		CreditPolicy:   1,
		Purpose:        valueobject.PurposeAllOther,
		IntRate:        10.5,
		Installment:    decimal.NewFromFloat(300.0),
		LogAnnualInc:   10.5,
		DTI:            18.0,
		FICO:           720,
		DaysWithCrLine: 5000,
		RevolBal:       decimal.NewFromInt(10000),
		RevolUtil:      50.0,
		InqLast6Mths:   1,
		Delinq2Yrs:     0,
		PubRec:         0,
	}
}

// NumericFeatures returns the numeric fields keyed by their reference names.
// The returned map is fresh on every call.
func (a LoanApplicant) NumericFeatures() map[string]float64 {
	return map[string]float64{
		FeatureCreditPolicy:   float64(a.CreditPolicy),
		FeatureIntRate:        a.IntRate,
		FeatureInstallment:    a.Installment.InexactFloat64(),
		FeatureLogAnnualInc:   a.LogAnnualInc,
		FeatureDTI:            a.DTI,
		FeatureFICO:           float64(a.FICO),
		FeatureDaysWithCrLine: a.DaysWithCrLine,
		FeatureRevolBal:       a.RevolBal.InexactFloat64(),
		FeatureRevolUtil:      a.RevolUtil,
		FeatureInqLast6Mths:   float64(a.InqLast6Mths),
		FeatureDelinq2Yrs:     float64(a.Delinq2Yrs),
		FeaturePubRec:         float64(a.PubRec),
	}
}

// Validate checks every field against the field catalogue.
// It returns an *InvalidApplicantError listing all offending fields.
func (a LoanApplicant) Validate() error {
	var fields []FieldError

	if a.Purpose.IsZero() {
		fields = append(fields, FieldError{Field: FieldPurpose, Reason: "is required"})
	}

	values := a.NumericFeatures()
	for _, spec := range Fields() {
		v := values[spec.Name]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			fields = append(fields, FieldError{Field: spec.Name, Reason: "must be a finite number"})
			continue
		}
		if len(spec.Options) > 0 {
			if !spec.allows(v) {
				fields = append(fields, FieldError{Field: spec.Name, Reason: fmt.Sprintf("must be one of %s", spec.optionList())})
			}
			continue
		}
		if v < spec.Min {
			fields = append(fields, FieldError{Field: spec.Name, Reason: "must be at least " + formatBound(spec.Min)})
			continue
		}
		if spec.HasMax && v > spec.Max {
			fields = append(fields, FieldError{Field: spec.Name, Reason: "must be at most " + formatBound(spec.Max)})
		}
	}

	if len(fields) > 0 {
		return &InvalidApplicantError{Fields: fields}
	}
	return nil
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
