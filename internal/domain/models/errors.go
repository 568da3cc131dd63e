package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by every NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrConflict is matched by every ConflictError.
	ErrConflict = errors.New("conflict")
)

// FieldError locates one invalid input field by its JSON path, e.g. items[0].quantity.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError reports malformed input or a broken domain rule.
type ValidationError struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s %s", e.Message, e.Errors[0].Path, e.Errors[0].Message)
}

// NewFieldValidationError builds a ValidationError for a single field.
func NewFieldValidationError(path, message string) *ValidationError {
	return &ValidationError{
		Message: message,
		Errors:  []FieldError{{Path: path, Message: message}},
	}
}

// NotFoundError is returned when an operation targets a missing id.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConflictError is returned when a unique attribute is already taken.
type ConflictError struct {
	Entity string
	Field  string
	Value  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }
