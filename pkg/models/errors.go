package models

import (
	"errors"
	"strings"
)

// ErrInvalidInput marks malformed or out-of-range input. It is never
// corrected silently.
var ErrInvalidInput = errors.New("invalid input")

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	if err == nil {
		err = ErrInvalidInput
	}
	return &ValidationError{Err: err, Fields: flds}
}

func (err *ValidationError) Error() string {
	if len(err.Fields) == 0 {
		return err.Err.Error()
	}
	parts := make([]string, 0, len(err.Fields))
	for _, f := range err.Fields {
		parts = append(parts, f.Field+": "+f.Error)
	}
	return err.Err.Error() + ": " + strings.Join(parts, "; ")
}

func (err *ValidationError) Unwrap() error {
	return err.Err
}

// FieldMap flattens the field errors for JSON responses.
func (err *ValidationError) FieldMap() map[string]string {
	m := make(map[string]string, len(err.Fields))
	for _, f := range err.Fields {
		m[f.Field] = f.Error
	}
	return m
}
