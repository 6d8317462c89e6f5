package services

import "errors"

// ValidationError marks client-correctable input problems so handlers can map them
// to 400 while everything else unexpected becomes a generic 500.
type ValidationError struct {
	msg string
}

func (e ValidationError) Error() string {
	return e.msg
}

func Validation(msg string) error {
	return ValidationError{msg: msg}
}

func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}
