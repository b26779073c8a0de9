package models

import (
	"errors"
	"fmt"
)

// ErrScorerUnavailable is returned (usually wrapped) by predictive scorers
// that have no model loaded or cannot reach one.
var ErrScorerUnavailable = errors.New("predictive scorer unavailable")

// InvalidInputError reports a caller-supplied value that is outside the
// domain of an operation. It is returned before any computation starts.
type InvalidInputError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

// NewInvalidInput builds an InvalidInputError.
func NewInvalidInput(field string, value any, reason string) *InvalidInputError {
	return &InvalidInputError{Field: field, Value: value, Reason: reason}
}
