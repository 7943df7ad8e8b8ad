// models/errors.go
package models

import (
	"errors"
	"strings"
)

// ValidationError is returned by Validate and by the BeforeSave hooks when a
// record breaks a field rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err carries a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
