package errs

import (
	"fmt"
	"net/http"
	"time"
)

// Code is a machine-readable error code exposed to callers.
type Code string

// error codes with fixed HTTP status mapping
const (
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeNotFound           Code = "NOT_FOUND"
	CodeRateLimitExceeded  Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal           Code = "INTERNAL_SERVER_ERROR"
	CodeBadGateway         Code = "BAD_GATEWAY"
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
)

// HTTPStatus returns the status associated with the code,
// 500 for anything unknown
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case CodeBadGateway:
		return http.StatusBadGateway
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Error is a classified error. Constructed once, immutable by convention,
// flows to the transport boundary unchanged.
type Error struct {
	Code      Code      `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`

	// optional structured extensions
	Field      string `json:"field,omitempty"`
	Resource   string `json:"resource,omitempty"`
	Identifier string `json:"identifier,omitempty"`
	RetryAfter int    `json:"retryAfter,omitempty"` // seconds
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HTTPStatus returns the status for the error's code
func (e *Error) HTTPStatus() int { return e.Code.HTTPStatus() }

// Extensions returns the optional structured fields set on the error,
// nil when none are present
func (e *Error) Extensions() map[string]any {
	ext := map[string]any{}
	if e.Field != "" {
		ext["field"] = e.Field
	}
	if e.Resource != "" {
		ext["resource"] = e.Resource
	}
	if e.Identifier != "" {
		ext["identifier"] = e.Identifier
	}
	if e.RetryAfter > 0 {
		ext["retryAfter"] = e.RetryAfter
	}
	if len(ext) == 0 {
		return nil
	}
	return ext
}

// New creates a classified error with the given code and message
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message, Timestamp: time.Now().UTC()}
}

// NewValidation creates a VALIDATION_ERROR, field may be empty
func NewValidation(message, field string) *Error {
	e := New(CodeValidation, message)
	e.Field = field
	return e
}

// NewUnauthorized creates an UNAUTHORIZED error with a default message
// when none given
func NewUnauthorized(message string) *Error {
	if message == "" {
		message = "authentication required"
	}
	return New(CodeUnauthorized, message)
}

// NewForbidden creates a FORBIDDEN error with a default message when none given
func NewForbidden(message string) *Error {
	if message == "" {
		message = "insufficient permissions"
	}
	return New(CodeForbidden, message)
}

// NewNotFound creates a NOT_FOUND error for a resource, identifier may be empty
func NewNotFound(resource, identifier string) *Error {
	msg := fmt.Sprintf("%s not found", resource)
	if identifier != "" {
		msg = fmt.Sprintf("%s with identifier %q not found", resource, identifier)
	}
	e := New(CodeNotFound, msg)
	e.Resource = resource
	e.Identifier = identifier
	return e
}

// NewRateLimit creates a RATE_LIMIT_EXCEEDED error carrying retryAfter seconds
func NewRateLimit(retryAfter int) *Error {
	e := New(CodeRateLimitExceeded, "rate limit exceeded")
	e.RetryAfter = retryAfter
	return e
}

// NewInternal creates an INTERNAL_SERVER_ERROR
func NewInternal(message string) *Error {
	if message == "" {
		message = "an unexpected error occurred"
	}
	return New(CodeInternal, message)
}

// NewServiceUnavailable creates a SERVICE_UNAVAILABLE error
func NewServiceUnavailable(message string) *Error {
	if message == "" {
		message = "service temporarily unavailable"
	}
	return New(CodeServiceUnavailable, message)
}

// NewBadGateway creates a BAD_GATEWAY error
func NewBadGateway(message string) *Error {
	if message == "" {
		message = "bad gateway"
	}
	return New(CodeBadGateway, message)
}
