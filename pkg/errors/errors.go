package errors

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeInternal     ErrorType = "internal"
	ErrorTypeDependency   ErrorType = "dependency"
)

// APIError represents a structured API error
type APIError struct {
	Type        ErrorType `json:"type"`
	Code        string    `json:"code"`
	Message     string    `json:"message"`
	Details     string    `json:"details,omitempty"`
	HTTPStatus  int       `json:"-"`
	InternalErr error     `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Message, e.Details, e.Code)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.InternalErr
}

// NewAPIError creates a new API error
func NewAPIError(errorType ErrorType, code, message string, httpStatus int) *APIError {
	return &APIError{
		Type:       errorType,
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// ValidationError creates a validation error (422)
func ValidationError(code, message string) *APIError {
	return NewAPIError(ErrorTypeValidation, code, message, http.StatusUnprocessableEntity)
}

// ValidationErrorWithDetails creates a validation error with field-level details
func ValidationErrorWithDetails(code, message, details string) *APIError {
	err := ValidationError(code, message)
	err.Details = details
	return err
}

// NotFoundError creates a not found error (404)
func NotFoundError(resource string) *APIError {
	return NewAPIError(ErrorTypeNotFound, "RESOURCE_NOT_FOUND", fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// ConflictError creates a conflict error. The public API surfaces moderation
// and duplicate conflicts as 400, so we keep that status.
func ConflictError(message string) *APIError {
	return NewAPIError(ErrorTypeConflict, "RESOURCE_CONFLICT", message, http.StatusBadRequest)
}

// UnauthorizedError creates an unauthorized error (401)
func UnauthorizedError(message string) *APIError {
	return NewAPIError(ErrorTypeUnauthorized, "UNAUTHORIZED", message, http.StatusUnauthorized)
}

// InternalError creates an internal server error (500)
func InternalError(message string) *APIError {
	return NewAPIError(ErrorTypeInternal, "INTERNAL_ERROR", message, http.StatusInternalServerError)
}

// InternalErrorWithCause creates an internal server error wrapping the cause
func InternalErrorWithCause(message string, cause error) *APIError {
	err := InternalError(message)
	err.InternalErr = cause
	return err
}

// DependencyError records a failed outbound call (translator, blob store,
// notifier). Callers recover from these locally; the type exists so the
// failure can still be inspected and logged with context.
func DependencyError(operation string, cause error) *APIError {
	err := NewAPIError(ErrorTypeDependency, "DEPENDENCY_ERROR",
		fmt.Sprintf("dependency call failed: %s", operation), http.StatusServiceUnavailable)
	err.InternalErr = cause
	return err
}

// GetAPIError extracts an APIError from an error chain
func GetAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// HandleDatabaseError maps GORM errors onto the API taxonomy
func HandleDatabaseError(err error, resource string) *APIError {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFoundError(resource)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ConflictError(fmt.Sprintf("%s already exists", resource))
	}
	return InternalErrorWithCause(fmt.Sprintf("database operation on %s failed", resource), err)
}
