package aviary

import (
	"errors"
	"fmt"
)

// ErrEmptyUserInput is returned when an interaction is started with an empty
// user message. It is raised before any remote call is made.
var ErrEmptyUserInput = NewUserInputError("user input must not be empty", 0, nil)

// ErrorCategory classifies errors by how they should be handled.
type ErrorCategory string

const (
	// ErrorTransient indicates the error is temporary and the operation can
	// be retried. Examples: rate limits, server overload, network timeouts.
	ErrorTransient ErrorCategory = "transient"

	// ErrorPermanent indicates the error is not recoverable through retry.
	// Examples: invalid API key, unknown agent or thread, protocol faults.
	ErrorPermanent ErrorCategory = "permanent"

	// ErrorUserInput indicates the caller provided invalid input that must
	// be corrected. Examples: empty user message, malformed request.
	ErrorUserInput ErrorCategory = "user_input"
)

// CategorizedError is an error that carries handling metadata.
type CategorizedError interface {
	error
	Category() ErrorCategory
	StatusCode() int // HTTP status code if applicable, 0 otherwise
}

// Error is a categorized error with metadata for error handling decisions.
type Error struct {
	Msg   string
	Cat   ErrorCategory
	Code  int   // HTTP status code, 0 if not applicable
	Cause error // underlying error
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Category returns the error category.
func (e *Error) Category() ErrorCategory {
	return e.Cat
}

// StatusCode returns the HTTP status code, or 0 if not applicable.
func (e *Error) StatusCode() int {
	return e.Code
}

// NewTransientError creates a transient error that can be retried.
func NewTransientError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorTransient, Code: statusCode, Cause: cause}
}

// NewPermanentError creates a permanent error that should not be retried.
func NewPermanentError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorPermanent, Code: statusCode, Cause: cause}
}

// NewUserInputError creates an error indicating invalid caller input.
func NewUserInputError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorUserInput, Code: statusCode, Cause: cause}
}

// IsTransient returns true if the error or any wrapped error is transient.
func IsTransient(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ErrorTransient
	}
	return false
}

// IsPermanent returns true if the error or any wrapped error is permanent.
func IsPermanent(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ErrorPermanent
	}
	return false
}

// IsUserInput returns true if the error or any wrapped error is a user input error.
func IsUserInput(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ErrorUserInput
	}
	return false
}

// StatusCodeOf returns the HTTP status code from a categorized error, or 0.
func StatusCodeOf(err error) int {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.StatusCode()
	}
	return 0
}
