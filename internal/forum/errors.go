package forum

import "github.com/example/forum-api/internal/store"

// Error tags a use-case failure with one of the store error kinds and a
// client-facing message. The HTTP layer maps Kind to a status code and
// writes Message verbatim.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func notFound(msg string) *Error {
	return &Error{Kind: store.ErrNotFound, Message: msg}
}

func forbidden(msg string) *Error {
	return &Error{Kind: store.ErrForbidden, Message: msg}
}
