package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestScreenError_Categories tests fatality and warning classification per
// category
func TestScreenError_Categories(t *testing.T) {
	config := NewConfigError("config", "bad")
	sample := NewInsufficientSampleError("validator", 3, 5)
	warn := NewDataUnavailableWarning("costs", "daily volume data")

	assert.True(t, config.IsFatal())
	assert.False(t, sample.IsFatal())
	assert.False(t, config.IsWarning())
	assert.True(t, warn.IsWarning())
	assert.Contains(t, sample.Error(), "sample size 3 below minimum 5")
}

// TestWrapError_Unwrap tests that wrapped errors stay reachable through the
// chain
func TestWrapError_Unwrap(t *testing.T) {
	underlying := stderrors.New("disk on fire")
	wrapped := WrapError(underlying, ErrorCategoryConfig, "config", "read config file")

	assert.ErrorIs(t, wrapped, underlying)
	assert.Contains(t, wrapped.Error(), "disk on fire")
	assert.Equal(t, underlying, wrapped.Unwrap())
}

// TestCategoryOf_Extraction tests category extraction from plain and wrapped
// chains
func TestCategoryOf_Extraction(t *testing.T) {
	hard := NewHardLimitError("limits", "stop cap", "stop 7.00% exceeds absolute cap 6.00%")

	assert.Equal(t, ErrorCategoryHardLimit, CategoryOf(hard))
	assert.Equal(t, ErrorCategory(""), CategoryOf(stderrors.New("plain")))
	assert.Equal(t, ErrorCategory(""), CategoryOf(nil))
}
