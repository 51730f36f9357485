// Package apierror defines the error kinds the exception-translation
// middleware understands. Handlers and lower layers attach a kind by
// constructing errors through the helpers here; the middleware recovers
// the error and classifies it with errors.Is.
//
// Kinds map to HTTP statuses as follows:
//
//	ErrInvalidArgument → 400 (the error's own text is returned)
//	ErrUnauthorized    → 401
//	ErrNotFound        → 404
//	anything else      → 500
package apierror

import "errors"

// Sentinel kinds. Compare with errors.Is, never by string.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthorized    = errors.New("unauthorized access")
	ErrNotFound        = errors.New("resource not found")
)

// kindError carries a human-readable message while unwrapping to its
// sentinel kind, so err.Error() stays clean for client responses and
// errors.Is(err, kind) still classifies it.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// InvalidArgument returns a 400-classified error with the given message.
func InvalidArgument(msg string) error {
	return &kindError{kind: ErrInvalidArgument, msg: msg}
}

// Unauthorized returns a 401-classified error with the given message.
func Unauthorized(msg string) error {
	return &kindError{kind: ErrUnauthorized, msg: msg}
}

// NotFound returns a 404-classified error with the given message.
func NotFound(msg string) error {
	return &kindError{kind: ErrNotFound, msg: msg}
}

// IsInvalidArgument reports whether err is classified as a bad request.
func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }

// IsUnauthorized reports whether err is classified as unauthorized.
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }

// IsNotFound reports whether err is classified as a missing resource.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
