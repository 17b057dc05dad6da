package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertErrorIs checks that err wraps target and mentions expected.
func AssertErrorIs(t *testing.T, err, target error, expected string) {
	t.Helper()
	if !assert.Error(t, err) {
		return
	}
	assert.True(t, errors.Is(err, target), "expected %v in chain of %v", target, err)
	if expected != "" {
		assert.Contains(t, err.Error(), expected)
	}
}
