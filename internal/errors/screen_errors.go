package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the kinds of failures a screening run can see.
type ErrorCategory string

const (
	// Fatal: configuration is malformed, the run must not start.
	ErrorCategoryConfig ErrorCategory = "CONFIG"

	// Per-candidate: handled locally, attached to the candidate's Decision.
	ErrorCategoryInsufficientSample ErrorCategory = "INSUFFICIENT_SAMPLE"
	ErrorCategoryNonPositiveEdge    ErrorCategory = "NON_POSITIVE_EDGE"
	ErrorCategoryHardLimit          ErrorCategory = "HARD_LIMIT"

	// Warning: a conservative substitute was used, the candidate continues.
	ErrorCategoryDataUnavailable ErrorCategory = "DATA_UNAVAILABLE"
)

// ScreenError is a categorized error with component context. Per-candidate
// categories are never fatal; they become REJECT reasons or warnings on the
// candidate's Decision.
type ScreenError struct {
	Category   ErrorCategory
	Component  string
	Message    string
	Underlying error
}

// Error implements the error interface.
func (e *ScreenError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Component, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Component, e.Message)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ScreenError) Unwrap() error {
	return e.Underlying
}

// IsFatal returns whether this error should abort the whole run.
func (e *ScreenError) IsFatal() bool {
	return e.Category == ErrorCategoryConfig
}

// IsWarning returns whether this error only degrades the estimate.
func (e *ScreenError) IsWarning() bool {
	return e.Category == ErrorCategoryDataUnavailable
}

// NewScreenError creates a new categorized screening error.
func NewScreenError(category ErrorCategory, component, message string) *ScreenError {
	return &ScreenError{
		Category:  category,
		Component: component,
		Message:   message,
	}
}

// WrapError wraps an existing error with screening context.
func WrapError(err error, category ErrorCategory, component, message string) *ScreenError {
	return &ScreenError{
		Category:   category,
		Component:  component,
		Message:    message,
		Underlying: err,
	}
}

// NewConfigError creates a fatal configuration error.
func NewConfigError(component, message string) *ScreenError {
	return NewScreenError(ErrorCategoryConfig, component, message)
}

// NewInsufficientSampleError flags a sample below the minimum size.
func NewInsufficientSampleError(component string, got, min int) *ScreenError {
	return NewScreenError(ErrorCategoryInsufficientSample, component,
		fmt.Sprintf("sample size %d below minimum %d", got, min))
}

// NewNonPositiveEdgeError flags a gross edge at or below zero.
func NewNonPositiveEdgeError(component string, edge float64) *ScreenError {
	return NewScreenError(ErrorCategoryNonPositiveEdge, component,
		fmt.Sprintf("gross edge %.4f%% is not positive", edge))
}

// NewHardLimitError flags a non-waivable limit violation, naming the limit.
func NewHardLimitError(component, limit, detail string) *ScreenError {
	return NewScreenError(ErrorCategoryHardLimit, component,
		fmt.Sprintf("%s: %s", limit, detail))
}

// NewDataUnavailableWarning flags a missing upstream numeric input.
func NewDataUnavailableWarning(component, what string) *ScreenError {
	return NewScreenError(ErrorCategoryDataUnavailable, component,
		fmt.Sprintf("%s unavailable, using conservative estimate", what))
}

// CategoryOf extracts the category from an error chain, or "" if the chain
// contains no ScreenError.
func CategoryOf(err error) ErrorCategory {
	var se *ScreenError
	if errors.As(err, &se) {
		return se.Category
	}
	return ""
}
