package apperror

import (
	"errors"
)

// Kind classifies an error for callers. Kinds are stable and safe to expose.
type Kind string

const (
	KindValidation     Kind = "VALIDATION_ERROR"
	KindAuthorization  Kind = "AUTHORIZATION_ERROR"
	KindNotFound       Kind = "NOT_FOUND"
	KindExpired        Kind = "EXPIRED"
	KindAlreadyClaimed Kind = "ALREADY_CLAIMED"
	KindConflict       Kind = "CONFLICT"
	KindNotClaimable   Kind = "NOT_CLAIMABLE"
	KindInternal       Kind = "INTERNAL_SERVER_ERROR"
)

// Error is a domain error carrying a Kind. Sentinel values are declared with New
// in the domain packages and compared with errors.Is.
type Error struct {
	kind    Kind
	message string
}

func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Kind() Kind {
	return e.kind
}

// Kinded is implemented by any error that reports its own Kind,
// e.g. validator.ValidationErrors.
type Kinded interface {
	error
	Kind() Kind
}

// KindOf walks the wrap chain and returns the first Kind found.
// Errors without one are KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var k Kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
