package utils

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrorCodeValidationError ErrorCode = "VALIDATION_ERROR"
	ErrorCodeAgentError      ErrorCode = "AGENT_ERROR"
	ErrorCodeInternalError   ErrorCode = "INTERNAL_ERROR"
)

// AppError is an error raised at the service boundary. StatusCode is the
// HTTP status the boundary should answer with.
type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func NewError(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

func NewErrorWithDetails(code ErrorCode, message string, statusCode int, details map[string]interface{}) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

func NewValidationError(message string, details map[string]interface{}) *AppError {
	return NewErrorWithDetails(ErrorCodeValidationError, message, http.StatusBadRequest, details)
}

func NewInvalidVideoIDError(videoID string, err error) *AppError {
	return NewValidationError(fmt.Sprintf("Invalid video id: %v", err), map[string]interface{}{
		"provided": videoID,
	})
}

// NewForbiddenError is returned when the caller's agent key does not match.
func NewForbiddenError() *AppError {
	return NewError(
		ErrorCodeUnauthorized,
		"Forbidden: Invalid Agent Key",
		http.StatusForbidden,
	)
}

// NewAgentError reports a donor that broke its never-fail contract.
func NewAgentError(donor string, cause interface{}) *AppError {
	return NewErrorWithDetails(
		ErrorCodeAgentError,
		fmt.Sprintf("Agent Error (%s): %v", donor, cause),
		http.StatusInternalServerError,
		map[string]interface{}{
			"donor": donor,
		},
	)
}

func NewInternalError() *AppError {
	return NewError(
		ErrorCodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)
}
