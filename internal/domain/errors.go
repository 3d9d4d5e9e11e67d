package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrNoTurns       = errors.New("no turns found")
	ErrUpstream      = errors.New("upstream model failure")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// ParseError reports model output that could not be turned into structured data.
// A ParseError for dialogue text is retryable: the caller should ask the model again.
type ParseError struct {
	Reason string
	Lines  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse: %s (%d lines scanned)", e.Reason, e.Lines)
}

// Unwrap lets callers match with errors.Is(err, ErrNoTurns).
func (e *ParseError) Unwrap() error { return ErrNoTurns }
