package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType classifies an application error
type ErrorType string

const (
	// ErrTypeConnection represents network/connection failures (retryable)
	ErrTypeConnection ErrorType = "connection"
	// ErrTypeTimeout represents operation timeouts (retryable)
	ErrTypeTimeout ErrorType = "timeout"
	// ErrTypeRateLimit represents rate limit denials, local or provider-issued
	ErrTypeRateLimit ErrorType = "rate_limit"
	// ErrTypeAuth represents credential rejection by the provider
	ErrTypeAuth ErrorType = "authentication"
	// ErrTypeRefresh represents a transient token refresh failure
	ErrTypeRefresh ErrorType = "refresh"
	// ErrTypeRevoked represents a permanently revoked grant; manual re-auth required
	ErrTypeRevoked ErrorType = "grant_revoked"
	// ErrTypeValidation represents malformed or incomplete requests
	ErrTypeValidation ErrorType = "validation"
	// ErrTypeNotFound represents missing resources
	ErrTypeNotFound ErrorType = "not_found"
	// ErrTypeConfig represents configuration errors
	ErrTypeConfig ErrorType = "config"
	// ErrTypeUnavailable represents a dependency that is down or circuit-broken
	ErrTypeUnavailable ErrorType = "unavailable"
	// ErrTypeInternal represents internal system errors
	ErrTypeInternal ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType              `json:"type"`
	Message string                 `json:"message"`
	Code    string                 `json:"code,omitempty"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	parts := []string{string(e.Type), e.Message}

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("code=%s", e.Code))
	}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%v", e.Cause))
	}

	if len(e.Context) > 0 {
		contextParts := make([]string, 0, len(e.Context))
		for k, v := range e.Context {
			contextParts = append(contextParts, fmt.Sprintf("%s=%v", k, v))
		}
		parts = append(parts, fmt.Sprintf("context={%s}", strings.Join(contextParts, ", ")))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithCode adds an error code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// ConnectionError creates a new connection error
func ConnectionError(msg string, cause error) *AppError {
	return &AppError{
		Type:    ErrTypeConnection,
		Message: msg,
		Cause:   cause,
	}
}

// TimeoutError creates a new timeout error
func TimeoutError(operation string) *AppError {
	return &AppError{
		Type:    ErrTypeTimeout,
		Message: fmt.Sprintf("timeout during %s", operation),
	}
}

// RateLimitError creates a new rate limit error
func RateLimitError(resource string) *AppError {
	return &AppError{
		Type:    ErrTypeRateLimit,
		Message: fmt.Sprintf("rate limit exceeded for %s", resource),
	}
}

// AuthError creates a new authentication error
func AuthError(msg string) *AppError {
	return &AppError{
		Type:    ErrTypeAuth,
		Message: msg,
	}
}

// RefreshError creates a transient token refresh error
func RefreshError(msg string, cause error) *AppError {
	return &AppError{
		Type:    ErrTypeRefresh,
		Message: msg,
		Cause:   cause,
	}
}

// RevokedError creates a permanent grant revocation error
func RevokedError(msg string) *AppError {
	return &AppError{
		Type:    ErrTypeRevoked,
		Message: msg,
	}
}

// ValidationError creates a new validation error
func ValidationError(msg string) *AppError {
	return &AppError{
		Type:    ErrTypeValidation,
		Message: msg,
	}
}

// NotFoundError creates a new not found error
func NotFoundError(resource string) *AppError {
	return &AppError{
		Type:    ErrTypeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// ConfigError creates a new configuration error
func ConfigError(msg string) *AppError {
	return &AppError{
		Type:    ErrTypeConfig,
		Message: msg,
	}
}

// UnavailableError creates an error for a dependency that is down or circuit-broken
func UnavailableError(resource string, cause error) *AppError {
	return &AppError{
		Type:    ErrTypeUnavailable,
		Message: fmt.Sprintf("%s unavailable", resource),
		Cause:   cause,
	}
}

// InternalError creates a new internal error
func InternalError(msg string, cause error) *AppError {
	return &AppError{
		Type:    ErrTypeInternal,
		Message: msg,
		Cause:   cause,
	}
}

// IsType checks if an error (or any error it wraps) is of a specific type
func IsType(err error, errType ErrorType) bool {
	if err == nil {
		return false
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}

	return appErr.Type == errType
}

// GetType returns the error type, unwrapping as needed; non-AppErrors
// report as internal
func GetType(err error) ErrorType {
	if err == nil {
		return ""
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		return ErrTypeInternal
	}

	return appErr.Type
}

// IsTransient reports whether an error belongs to a class the retry
// executor is allowed to retry
func IsTransient(err error) bool {
	t := GetType(err)
	return t == ErrTypeConnection || t == ErrTypeTimeout
}
