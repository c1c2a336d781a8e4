package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeConflict indicates a conflict with in-flight or superseded work
	ErrorTypeConflict ErrorType = "CONFLICT"

	// ErrorTypeInvalidState indicates an operation attempted before the
	// session reached the required state (no target, empty query)
	ErrorTypeInvalidState ErrorType = "INVALID_STATE"

	// ErrorTypeInvalidGuess indicates a guess that could not be parsed
	ErrorTypeInvalidGuess ErrorType = "INVALID_GUESS"

	// ErrorTypeDivisionUndefined indicates a zero actual price reached the
	// scoring engine, which the data contract forbids
	ErrorTypeDivisionUndefined ErrorType = "DIVISION_UNDEFINED"

	// ErrorTypeAlreadyScored indicates a second guess on a scored target
	ErrorTypeAlreadyScored ErrorType = "ALREADY_SCORED"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"

	// ErrorTypeExternal indicates an error from an external service
	ErrorTypeExternal ErrorType = "EXTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// TypeOf returns the ErrorType of err, or ErrorTypeInternal for plain errors
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// IsType reports whether err carries the given ErrorType
func IsType(err error, t ErrorType) bool {
	return TypeOf(err) == t
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: message,
	}
}

// NewInvalidStateError creates a new invalid state error
func NewInvalidStateError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidState,
		Message: message,
	}
}

// NewInvalidGuessError creates a new invalid guess error
func NewInvalidGuessError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidGuess,
		Message: message,
	}
}

// NewDivisionUndefinedError creates a new division undefined error
func NewDivisionUndefinedError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeDivisionUndefined,
		Message: message,
	}
}

// NewAlreadyScoredError creates a new already scored error
func NewAlreadyScoredError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeAlreadyScored,
		Message: message,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// NewExternalError creates a new external service error
func NewExternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: message,
		Err:     err,
	}
}
