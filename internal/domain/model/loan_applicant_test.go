package model_test

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/loanrisk/internal/domain/model"
	"github.com/bibbank/loanrisk/internal/domain/valueobject"
)

func TestDefaultLoanApplicant_IsValid(t *testing.T) {
	a := model.DefaultLoanApplicant()

	require.NoError(t, a.Validate())
	assert.Equal(t, valueobject.PurposeAllOther, a.Purpose)
	assert.Equal(t, 720, a.FICO)
	assert.True(t, a.Installment.Equal(decimal.NewFromInt(300)))
}

func TestLoanApplicant_NumericFeatures(t *testing.T) {
	a := model.DefaultLoanApplicant()
	a.Installment = decimal.RequireFromString("829.10")
	a.RevolBal = decimal.NewFromInt(28854)

	values := a.NumericFeatures()

	assert.Len(t, values, len(model.Fields()))
	assert.Equal(t, 1.0, values[model.FeatureCreditPolicy])
	assert.Equal(t, 829.1, values[model.FeatureInstallment])
	assert.Equal(t, 28854.0, values[model.FeatureRevolBal])
	assert.Equal(t, 720.0, values[model.FeatureFICO])
	assert.Equal(t, 5000.0, values[model.FeatureDaysWithCrLine])

	values[model.FeatureFICO] = 0
	assert.Equal(t, 720.0, a.NumericFeatures()[model.FeatureFICO])
}

func TestLoanApplicant_Validate(t *testing.T) {
	tests := []struct {
		mutate func(a *model.LoanApplicant)
		name   string
		field  string
		reason string
	}{
		{
			name:   "missing purpose",
			mutate: func(a *model.LoanApplicant) { a.Purpose = valueobject.Purpose{} },
			field:  model.FieldPurpose,
			reason: "is required",
		},
		{
			name:   "credit policy outside options",
			mutate: func(a *model.LoanApplicant) { a.CreditPolicy = 2 },
			field:  model.FeatureCreditPolicy,
			reason: "must be one of {1, 0}",
		},
		{
			name:   "interest rate below slider",
			mutate: func(a *model.LoanApplicant) { a.IntRate = 4.99 },
			field:  model.FeatureIntRate,
			reason: "must be at least 5",
		},
		{
			name:   "fico above slider",
			mutate: func(a *model.LoanApplicant) { a.FICO = 851 },
			field:  model.FeatureFICO,
			reason: "must be at most 850",
		},
		{
			name:   "negative installment",
			mutate: func(a *model.LoanApplicant) { a.Installment = decimal.NewFromInt(-1) },
			field:  model.FeatureInstallment,
			reason: "must be at least 0",
		},
		{
			name:   "nan log income",
			mutate: func(a *model.LoanApplicant) { a.LogAnnualInc = math.NaN() },
			field:  model.FeatureLogAnnualInc,
			reason: "must be a finite number",
		},
		{
			name:   "public records above slider",
			mutate: func(a *model.LoanApplicant) { a.PubRec = 6 },
			field:  model.FeaturePubRec,
			reason: "must be at most 5",
		},
		{
			name:   "revolving utilization above slider",
			mutate: func(a *model.LoanApplicant) { a.RevolUtil = 150.1 },
			field:  model.FeatureRevolUtil,
			reason: "must be at most 150",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := model.DefaultLoanApplicant()
			tt.mutate(&a)

			err := a.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrInvalidApplicant))

			var invalid *model.InvalidApplicantError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.reason, invalid.Reason(tt.field))
		})
	}
}

func TestLoanApplicant_ValidateCollectsAllFields(t *testing.T) {
	a := model.DefaultLoanApplicant()
	a.FICO = 100
	a.DTI = 75

	err := a.Validate()

	var invalid *model.InvalidApplicantError
	require.True(t, errors.As(err, &invalid))
	assert.Len(t, invalid.Fields, 2)
	assert.Contains(t, err.Error(), "fico must be at least 300")
	assert.Contains(t, err.Error(), "dti must be at most 50")
}

func TestLoanApplicant_SliderBoundsInclusive(t *testing.T) {
	a := model.DefaultLoanApplicant()
	a.FICO = 300
	a.IntRate = 30
	a.CreditPolicy = 0
	a.InqLast6Mths = 10

	assert.NoError(t, a.Validate())
}

func TestFields_Catalogue(t *testing.T) {
	fields := model.Fields()
	require.Len(t, fields, 12)

	defaults := model.DefaultLoanApplicant().NumericFeatures()
	seen := make(map[string]bool)
	for _, f := range fields {
		assert.False(t, seen[f.Name], "duplicate field %s", f.Name)
		seen[f.Name] = true
		assert.NotEmpty(t, f.Label)
		assert.Equal(t, defaults[f.Name], f.Default, f.Name)
		if f.HasMax {
			assert.LessOrEqual(t, f.Min, f.Max, f.Name)
		}
	}

	fico, ok := model.FieldByName(model.FeatureFICO)
	require.True(t, ok)
	assert.Equal(t, model.WidgetSlider, fico.Widget)
	assert.True(t, fico.Integer)

	_, ok = model.FieldByName("purpose_credit_card")
	assert.False(t, ok)
}
