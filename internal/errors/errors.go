// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrNoSnapshot indicates no cached snapshot exists for a dataset.
	ErrNoSnapshot = errors.New("no snapshot available")

	// ErrRateLimitExceeded indicates rate limit has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrInvalidInput indicates user provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTimeout indicates an operation timed out.
	ErrTimeout = errors.New("operation timed out")

	// ErrGenerationExhausted indicates all generation providers failed.
	ErrGenerationExhausted = errors.New("generation providers exhausted")

	// ErrUnknownDataset indicates a dataset key has not been registered.
	ErrUnknownDataset = errors.New("unknown dataset")
)

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// SheetError represents spreadsheet fetch failures with context.
type SheetError struct {
	Sheet      string
	StatusCode int
	Err        error
}

func (e *SheetError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("sheet error (sheet=%s, status=%d): %v", e.Sheet, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("sheet error (sheet=%s): %v", e.Sheet, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new sheet error.
func NewSheetError(sheet string, statusCode int, err error) *SheetError {
	return &SheetError{
		Sheet:      sheet,
		StatusCode: statusCode,
		Err:        err,
	}
}
