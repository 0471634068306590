package common

import "errors"

var (
	// request-shape errors
	ErrValidation = errors.New("validation error")

	// repository specific errors
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// auth-specific errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidToken = errors.New("invalid token")
)

// Error is a failure carrying one of the sentinel kinds above together with a
// message that is safe to return to API clients.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newError(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func Validation(message string) error { return newError(ErrValidation, message, nil) }

func NotFound(message string) error { return newError(ErrNotFound, message, nil) }

func Conflict(message string) error { return newError(ErrConflict, message, nil) }

func Forbidden(message string) error { return newError(ErrForbidden, message, nil) }

func Unauthorized(message string, cause error) error {
	return newError(ErrUnauthorized, message, cause)
}

// Message returns the client-facing message of err. Errors that are not an
// *Error fall back to err.Error().
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
