// Package errors provides error code definitions shared across the backend.
package errors

import "fmt"

// ErrorCode represents a unique error code surfaced to API clients.
type ErrorCode string

const (
	// General errors
	ErrInternal   ErrorCode = "INTERNAL_ERROR"
	ErrInvalid    ErrorCode = "INVALID_INPUT"
	ErrNotFound   ErrorCode = "NOT_FOUND"
	ErrValidation ErrorCode = "VALIDATION_ERROR"

	// Database errors
	ErrDatabase   ErrorCode = "DATABASE_ERROR"
	ErrConstraint ErrorCode = "CONSTRAINT_VIOLATION"

	// Contact errors
	ErrContactNotFound ErrorCode = "CONTACT_NOT_FOUND"
	ErrDuplicateEmail  ErrorCode = "DUPLICATE_EMAIL"
)

// AppError represents an application error with code and message. Fields
// optionally carries per-field validation details keyed by field name.
type AppError struct {
	Code    ErrorCode
	Message string
	Fields  map[string]string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an error code.
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation creates a VALIDATION_ERROR carrying per-field details.
func Validation(fields map[string]string) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: "validation failed",
		Fields:  fields,
	}
}

// DuplicateEmail creates the error returned when an email collides with a
// different live contact. The field detail mirrors validation errors so API
// clients can attribute the problem to the email field.
func DuplicateEmail(email string) *AppError {
	return &AppError{
		Code:    ErrDuplicateEmail,
		Message: fmt.Sprintf("email already in use: %s", email),
		Fields:  map[string]string{"email": "Email must be unique."},
	}
}

// Is checks if an error is of a specific code.
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}
