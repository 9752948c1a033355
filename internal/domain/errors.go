package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every payout validation failure
	ErrValidation = errors.New("payout validation failed")

	// ErrRateNotFound is returned by rate sources that have no rate for the requested pair and date
	ErrRateNotFound = errors.New("fx rate not found")
)

// ValidationError describes the first payout invariant a record violated.
// Rule is a stable label (e.g. "required", "currency") used for metrics.
type ValidationError struct {
	Rule    string
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a ValidationError with a formatted message
func NewValidationError(rule, field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Rule:    rule,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}
