package errors

import (
	"net/http"
	"strings"
)

// ValidationError aggregates every violated rule from a single request so the
// caller sees the full list, not just the first failure.
type ValidationError struct {
	messages []string
}

// NewValidationError creates a validation error from one or more rule messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{messages: messages}
}

// Append returns a ValidationError extended with additional messages.
// A nil receiver is allowed so callers can collect violations lazily.
func (e *ValidationError) Append(messages ...string) *ValidationError {
	if e == nil {
		return NewValidationError(messages...)
	}
	e.messages = append(e.messages, messages...)

	return e
}

// HasViolations reports whether any rule message was collected.
func (e *ValidationError) HasViolations() bool {
	return e != nil && len(e.messages) > 0
}

// Messages returns every collected rule message.
func (e *ValidationError) Messages() []string {
	if e == nil {
		return nil
	}

	return e.messages
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message()
}

// HTTPCode returns the HTTP status code
func (e *ValidationError) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the business error code
func (e *ValidationError) ErrorCode() string {
	return "VALIDATION_FAILED"
}

// Message joins all rule messages into one user-facing string.
func (e *ValidationError) Message() string {
	return strings.Join(e.messages, "\n")
}

// Details returns detailed error information
func (e *ValidationError) Details() string {
	return ""
}
