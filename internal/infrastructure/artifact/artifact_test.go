package artifact_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/loanrisk/internal/domain/model"
	"github.com/bibbank/loanrisk/internal/domain/service"
	"github.com/bibbank/loanrisk/internal/domain/valueobject"
	"github.com/bibbank/loanrisk/internal/infrastructure/artifact"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Testdata(t *testing.T) {
	bundle, err := artifact.Load(artifact.DefaultPaths("testdata"))
	require.NoError(t, err)

	assert.Equal(t, 18, bundle.Features.Len())
	assert.Equal(t, 18, bundle.Scaler.Width())
	assert.Equal(t, 18, bundle.Model.Width())
	assert.True(t, bundle.Features.Contains("purpose_home_improvement"))
}

func TestLoad_EndToEndCycle(t *testing.T) {
	bundle, err := artifact.Load(artifact.DefaultPaths("testdata"))
	require.NoError(t, err)

	applicant := model.DefaultLoanApplicant()
	applicant.Purpose = valueobject.PurposeSmallBusiness

	vector, err := service.NewFeatureAssembler().Assemble(applicant, bundle.Features)
	require.NoError(t, err)
	scaled, err := bundle.Scaler.Transform(vector)
	require.NoError(t, err)

	label, err := bundle.Model.Predict(scaled)
	require.NoError(t, err)
	proba, err := bundle.Model.PredictProba(scaled)
	require.NoError(t, err)

	require.Len(t, proba, 2)
	assert.InDelta(t, 1.0, proba[0]+proba[1], 1e-12)
	assert.Contains(t, []int{0, 1}, label)
	assert.Equal(t, label == 1, proba[1] >= 0.5)
}

func TestLoad_MissingFile(t *testing.T) {
	paths := artifact.DefaultPaths(t.TempDir())

	_, err := artifact.Load(paths)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadFeatureList_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "credit.policy,fico"},
		{name: "empty", content: "[]"},
		{name: "duplicate", content: `["fico", "dti", "fico"]`},
		{name: "blank", content: `["fico", " "]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "features.json", tt.content)
			_, err := artifact.LoadFeatureList(path)
			assert.Error(t, err)
		})
	}
}

func TestValidate_WidthMismatch(t *testing.T) {
	dir := t.TempDir()
	paths := artifact.Paths{
		FeatureNames: writeFile(t, dir, "feature_names.json", `["fico", "dti", "purpose_credit_card"]`),
		Scaler:       writeFile(t, dir, "scaler.json", `{"kind":"standard","mean":[700,15],"scale":[30,5]}`),
		Model:        writeFile(t, dir, "model.json", `{"kind":"logistic_regression","coef":[0.1,0.2,0.3],"intercept":0}`),
	}

	_, err := artifact.Load(paths)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrWidthMismatch))
	assert.Contains(t, err.Error(), "scaler fit on 2 columns")
}

func TestValidate_ScalerNamesDiffer(t *testing.T) {
	dir := t.TempDir()
	paths := artifact.Paths{
		FeatureNames: writeFile(t, dir, "feature_names.json", `["fico", "dti"]`),
		Scaler:       writeFile(t, dir, "scaler.json", `{"kind":"standard","mean":[15,700],"scale":[5,30],"feature_names":["dti","fico"]}`),
		Model:        writeFile(t, dir, "model.json", `{"kind":"logistic_regression","coef":[0.1,0.2],"intercept":0}`),
	}

	_, err := artifact.Load(paths)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrSchemaMismatch))
}

func TestValidate_UnknownColumn(t *testing.T) {
	dir := t.TempDir()
	paths := artifact.Paths{
		FeatureNames: writeFile(t, dir, "feature_names.json", `["fico", "loan.term"]`),
		Scaler:       writeFile(t, dir, "scaler.json", `{"kind":"standard","mean":[700,36],"scale":[30,12]}`),
		Model:        writeFile(t, dir, "model.json", `{"kind":"logistic_regression","coef":[0.1,0.2],"intercept":0}`),
	}

	_, err := artifact.Load(paths)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrSchemaMismatch))
	assert.Contains(t, err.Error(), "loan.term")
}

func TestStandardScaler_Transform(t *testing.T) {
	scaler, err := artifact.NewStandardScaler([]float64{10, 0, 5}, []float64{2, 0, 0.5}, nil)
	require.NoError(t, err)

	input := model.FeatureVector{14, 3, 4}
	out, err := scaler.Transform(input)
	require.NoError(t, err)

	assert.Equal(t, model.FeatureVector{2, 3, -2}, out)
	assert.Equal(t, model.FeatureVector{14, 3, 4}, input, "input must not be modified")
}

func TestStandardScaler_WidthMismatch(t *testing.T) {
	scaler, err := artifact.NewStandardScaler([]float64{0, 0}, []float64{1, 1}, nil)
	require.NoError(t, err)

	_, err = scaler.Transform(model.FeatureVector{1, 2, 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrWidthMismatch))
}

func TestNewStandardScaler_Invalid(t *testing.T) {
	_, err := artifact.NewStandardScaler(nil, nil, nil)
	assert.Error(t, err)

	_, err = artifact.NewStandardScaler([]float64{1, 2}, []float64{1}, nil)
	assert.Error(t, err)

	_, err = artifact.NewStandardScaler([]float64{1, 2}, []float64{1, 1}, []string{"a"})
	assert.Error(t, err)
}

func TestLogisticModel_Probabilities(t *testing.T) {
	clf, err := artifact.NewLogisticModel([]float64{1, -1}, 0, 0.5)
	require.NoError(t, err)

	proba, err := clf.PredictProba(model.FeatureVector{0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, proba[0], 1e-12)
	assert.InDelta(t, 0.5, proba[1], 1e-12)

	label, err := clf.Predict(model.FeatureVector{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, label)

	proba, err = clf.PredictProba(model.FeatureVector{2, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.Exp(-2)), proba[1], 1e-12)

	label, err = clf.Predict(model.FeatureVector{0, 3})
	require.NoError(t, err)
	assert.Equal(t, 0, label)
}

func TestLogisticModel_ExtremeScoresStayInRange(t *testing.T) {
	clf, err := artifact.NewLogisticModel([]float64{1}, 0, 0.5)
	require.NoError(t, err)

	for _, x := range []float64{-1000, 1000} {
		proba, err := clf.PredictProba(model.FeatureVector{x})
		require.NoError(t, err)
		assert.False(t, math.IsNaN(proba[1]))
		assert.GreaterOrEqual(t, proba[1], 0.0)
		assert.LessOrEqual(t, proba[1], 1.0)
	}
}

func TestLogisticModel_WidthMismatch(t *testing.T) {
	clf, err := artifact.NewLogisticModel([]float64{1, 2}, 0, 0.5)
	require.NoError(t, err)

	_, err = clf.Predict(model.FeatureVector{1})
	assert.True(t, errors.Is(err, model.ErrWidthMismatch))
	_, err = clf.PredictProba(model.FeatureVector{1, 2, 3})
	assert.True(t, errors.Is(err, model.ErrWidthMismatch))
}

func TestLoadLogisticModel_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{name: "wrong kind", content: `{"kind":"random_forest","coef":[1]}`},
		{name: "wrong classes", content: `{"kind":"logistic_regression","coef":[1],"classes":[1,2]}`},
		{name: "empty coef", content: `{"kind":"logistic_regression","coef":[]}`},
		{name: "bad threshold", content: `{"kind":"logistic_regression","coef":[1],"threshold":1.5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "model.json", tt.content)
			_, err := artifact.LoadLogisticModel(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadLogisticModel_CustomThreshold(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "model.json", `{"kind":"logistic_regression","coef":[1],"intercept":0,"threshold":0.8}`)

	clf, err := artifact.LoadLogisticModel(path)
	require.NoError(t, err)

	label, err := clf.Predict(model.FeatureVector{1})
	require.NoError(t, err)
	assert.Equal(t, 0, label, "p=0.73 is below the 0.8 threshold")
}
