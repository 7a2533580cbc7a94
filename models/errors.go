package models

import "errors"

var (
	ErrInvalidID = errors.New("invalid id format")
	ErrNotFound  = errors.New("record not found")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidationError(msg string) error { return &ValidationError{Msg: msg} }

// IsValidation reports whether err originates from input validation.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
