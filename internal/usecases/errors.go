package usecases

import (
	"errors"
	"fmt"
)

var ErrInvalidInput = errors.New("invalid input")

// InputError names the form field that failed validation.
// It matches ErrInvalidInput under errors.Is.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, e.Field, e.Message)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, msg string) error {
	return &InputError{Field: field, Message: msg}
}
