package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")

	// ErrInvalidAction is a programming error: the filter reducer received an
	// action it does not recognize or whose payload breaks a state invariant.
	ErrInvalidAction = errors.New("invalid action")

	// ErrScopedFilter is returned when a user filter targets a key that the
	// hosting screen fixed at construction.
	ErrScopedFilter = errors.New("filter is fixed by the screen")

	ErrUnknownScreen = errors.New("unknown screen")
	ErrNotSupported  = errors.New("operation not supported")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError contains a list of field-level validation errors.
// It is user-correctable and never fatal.
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

// FetchError reports a failed list fetch for a screen. Status is the HTTP
// status returned by the backend, or 0 for transport failures.
type FetchError struct {
	Screen string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.Screen, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Screen, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
