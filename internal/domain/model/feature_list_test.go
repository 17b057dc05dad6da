package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/loanrisk/internal/domain/model"
)

func TestNewFeatureList(t *testing.T) {
	names := []string{"fico", "dti", "purpose_credit_card", "purpose_small_business"}

	features, err := model.NewFeatureList(names)
	require.NoError(t, err)

	assert.Equal(t, 4, features.Len())
	assert.Equal(t, "dti", features.At(1))
	assert.True(t, features.Contains("purpose_credit_card"))
	assert.False(t, features.Contains("purpose_all_other"))
	assert.Equal(t, []string{"purpose_credit_card", "purpose_small_business"}, features.CategoryColumns())

	i, ok := features.Index("purpose_small_business")
	assert.True(t, ok)
	assert.Equal(t, 3, i)
	assert.True(t, features.Equal(names))
	assert.False(t, features.Equal([]string{"dti", "fico", "purpose_credit_card", "purpose_small_business"}))
}

func TestNewFeatureList_IsImmutable(t *testing.T) {
	names := []string{"fico", "dti"}
	features, err := model.NewFeatureList(names)
	require.NoError(t, err)

	names[0] = "changed"
	assert.Equal(t, "fico", features.At(0))

	out := features.Names()
	out[1] = "changed"
	assert.Equal(t, "dti", features.At(1))
}

func TestNewFeatureList_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		wantErr string
		names   []string
	}{
		{name: "empty", names: nil, wantErr: "must not be empty"},
		{name: "blank name", names: []string{"fico", " "}, wantErr: "position 1 is blank"},
		{name: "duplicate", names: []string{"fico", "dti", "fico"}, wantErr: `duplicate feature name "fico" at positions 0 and 2`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.NewFeatureList(tt.names)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFeatureVector_Clone(t *testing.T) {
	v := model.FeatureVector{1, 2, 3}
	c := v.Clone()
	c[0] = 9

	assert.Equal(t, 3, v.Width())
	assert.Equal(t, 1.0, v[0])
}
