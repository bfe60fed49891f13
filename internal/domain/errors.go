package domain

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was hit.
	ErrAlreadyExists = errors.New("already exists")
	// ErrUnauthorized indicates a missing or invalid credential.
	ErrUnauthorized = errors.New("unauthorized")

	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrProductUnavailable = errors.New("product is not available")
	ErrEmptyCart          = errors.New("cart is empty")
)

// ValidationError reports rejected input. Fields carries one message per
// offending field when they are known.
type ValidationError struct {
	Message string
	Fields  []string
	cause   error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Fields, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}

// Invalid builds a ValidationError with optional field messages.
func Invalid(msg string, fields ...string) *ValidationError {
	return &ValidationError{Message: msg, Fields: fields}
}

// InvalidBecause wraps a sentinel so callers can still match it with errors.Is.
func InvalidBecause(cause error) *ValidationError {
	return &ValidationError{Message: capitalize(cause.Error()), cause: cause}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// NotFoundError names the missing resource. It matches ErrNotFound.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound reports a missing resource by name, e.g. NotFound("Cart").
func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}
