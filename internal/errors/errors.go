package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeInvalidRating      = "INVALID_RATING"
	ErrCodeScheduling         = "SCHEDULING_ERROR"
	ErrCodePersistenceFailure = "PERSISTENCE_FAILURE"
	ErrCodeBusy               = "BUSY"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "VALIDATION_ERROR")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  http.StatusNotFound,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  http.StatusBadRequest,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewInvalidRatingError creates a new INVALID_RATING error
func NewInvalidRatingError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidRating,
		Message: "rating must be one of again, hard, good, easy",
		Status:  http.StatusUnprocessableEntity,
		Err:     err,
	}
}

// NewSchedulingError creates a new SCHEDULING_ERROR. The card was left
// unchanged and the same rating may be retried.
func NewSchedulingError(cardID string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeScheduling,
		Message: fmt.Sprintf("could not schedule card %s", cardID),
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewPersistenceError creates a new PERSISTENCE_FAILURE error
func NewPersistenceError(err error) *AppError {
	return &AppError{
		Code:    ErrCodePersistenceFailure,
		Message: "storage unavailable, nothing was saved",
		Status:  http.StatusServiceUnavailable,
		Err:     err,
	}
}

// As reports whether err wraps an *AppError and returns it.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
