package types

import "fmt"

// ErrorCode represents a unified error code across the service.
type ErrorCode string

// Request error codes
const (
	ErrInvalidRequest      ErrorCode = "INVALID_REQUEST"
	ErrInvalidQualityLevel ErrorCode = "INVALID_QUALITY_LEVEL"
	ErrUnauthorized        ErrorCode = "UNAUTHORIZED"
	ErrForbidden           ErrorCode = "FORBIDDEN"
	ErrRateLimited         ErrorCode = "RATE_LIMITED"
)

// Generation error codes
const (
	ErrGenerationFailed ErrorCode = "GENERATION_FAILED"
	ErrSceneNotFound    ErrorCode = "SCENE_NOT_FOUND"
	ErrAssetUnavailable ErrorCode = "ASSET_UNAVAILABLE"
)

// Template error codes
const (
	ErrTemplateNotFound  ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrMalformedTemplate ErrorCode = "MALFORMED_TEMPLATE"
	ErrTemplateCycle     ErrorCode = "TEMPLATE_CYCLE"
)

// Infrastructure error codes
const (
	ErrTimeout            ErrorCode = "TIMEOUT"
	ErrInternalError      ErrorCode = "INTERNAL_ERROR"
	ErrServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// Error represents a structured error with code, message, and metadata.
type Error struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"http_status,omitempty"`
	Retryable  bool      `json:"retryable"`
	Component  string    `json:"component,omitempty"`
	Cause      error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithHTTPStatus sets the HTTP status code.
func (e *Error) WithHTTPStatus(status int) *Error {
	e.HTTPStatus = status
	return e
}

// WithRetryable marks the error as retryable.
func (e *Error) WithRetryable(retryable bool) *Error {
	e.Retryable = retryable
	return e
}

// WithComponent sets the originating component name.
func (e *Error) WithComponent(component string) *Error {
	e.Component = component
	return e
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Retryable
	}
	return false
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) ErrorCode {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ""
}
