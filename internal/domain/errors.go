package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that carry their own HTTP status code.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - match with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// FieldError reports invalid input on named request fields.
// It matches ErrValidation so handlers can map it to 400.
type FieldError struct {
	Fields map[string]string
}

// NewFieldError builds a FieldError from an error map such as ozzo-validation's Errors.
func NewFieldError(fields map[string]error) *FieldError {
	out := make(map[string]string, len(fields))
	for name, err := range fields {
		if err != nil {
			out[name] = err.Error()
		}
	}
	return &FieldError{Fields: out}
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// StatusCode implements HTTPError
func (e *FieldError) StatusCode() int {
	return http.StatusBadRequest
}

// Is allows errors.Is() to match against ErrValidation
func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string
	ResourceType string
	ResourceID   string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements HTTPError
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
