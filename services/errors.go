// services/errors.go
package services

import (
	"errors"
	"fmt"

	"clubhouse/models"
	"clubhouse/repository"
)

// Error kinds. Handlers map these to HTTP status codes with errors.Is.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrInvalid         = errors.New("invalid request")
	ErrConflict        = errors.New("conflict")
)

// Error carries a caller-facing message for one of the kinds above.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// storeError turns repository and model failures into service errors.
// Anything else is passed through as an internal failure.
func storeError(err error, format string, args ...interface{}) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return newError(ErrNotFound, format, args...)
	case errors.Is(err, repository.ErrDuplicate):
		return newError(ErrConflict, format, args...)
	case models.IsValidationError(err):
		return &Error{Kind: ErrInvalid, Msg: err.Error()}
	}
	return err
}
