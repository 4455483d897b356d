package errors

import (
	"errors"
	"fmt"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewNetworkError creates a new network error for a failed request
func NewNetworkError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeNetwork,
		Message: fmt.Sprintf("request failed: %s", operation),
		Code:    "NETWORK_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewUnauthorizedError creates a new unauthorized error for a server rejection
func NewUnauthorizedError(operation string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthorized,
		Message: fmt.Sprintf("request rejected by server: %s", operation),
		Code:    "UNAUTHORIZED",
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewUnauthenticatedError creates a new unauthenticated error for a client-side guard
func NewUnauthenticatedError(operation string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthenticated,
		Message: fmt.Sprintf("not signed in: %s", operation),
		Code:    "UNAUTHENTICATED",
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewServerError creates a new server error for an unexpected response
func NewServerError(operation string, statusCode int) *AppError {
	return &AppError{
		Type:    ErrorTypeServer,
		Message: fmt.Sprintf("server error during %s (status %d)", operation, statusCode),
		Code:    "SERVER_ERROR",
		Context: map[string]interface{}{
			"operation":   operation,
			"status_code": statusCode,
		},
	}
}

// NewStorageError creates a new storage error for the local session store
func NewStorageError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeStorage,
		Message: fmt.Sprintf("storage operation failed: %s", operation),
		Code:    "STORAGE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation:
			return appErr.Message
		case ErrorTypeNotFound:
			return "Task not found. It may have been deleted. Refresh and try again."
		case ErrorTypeNetwork:
			return "Network error: please make sure the backend server is running and the server URL is correct."
		case ErrorTypeUnauthorized:
			return "Unauthorized: please log in again."
		case ErrorTypeUnauthenticated:
			return "You must be logged in to do that."
		case ErrorTypeServer:
			return "The server reported an error. Please try again."
		case ErrorTypeStorage:
			return "A local storage error occurred. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeUnauthenticated:
			return false // These are user errors, not system errors
		case ErrorTypeNetwork, ErrorTypeUnauthorized, ErrorTypeServer, ErrorTypeStorage:
			return true // These are system errors that should be logged
		default:
			return true
		}
	}
	return true // Unknown errors should be logged
}
