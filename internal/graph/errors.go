package graph

import (
	"errors"

	"github.com/sakif/employee-graphql/internal/apperror"
)

// Machine-readable error codes exposed in the GraphQL error extensions.
// Clients branch on extensions.code, not on message text.
const (
	codeValidation      = "VALIDATION_ERROR"
	codeConflict        = "CONFLICT"
	codeUnauthenticated = "UNAUTHENTICATED"
	codeNotFound        = "NOT_FOUND"
	codeInternal        = "INTERNAL"
)

// resolverError adapts a domain error to the library's ExtendedError
// interface so the error kind travels in extensions.code.
//
// This is the GraphQL equivalent of the HTTP layer's kind→status mapping:
// the services return tagged kinds, the transport decides the wire shape.
type resolverError struct {
	message    string
	extensions map[string]interface{}
}

func (e *resolverError) Error() string {
	return e.message
}

func (e *resolverError) Extensions() map[string]interface{} {
	return e.extensions
}

// wrapErr maps a service error onto a resolverError.
//
// Unknown errors (including dependency failures) are reported as a generic
// INTERNAL error — the raw message might contain connection strings or
// other details that don't belong in a client response.
func wrapErr(err error) error {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return &resolverError{
			message:    "an internal error occurred",
			extensions: map[string]interface{}{"code": codeInternal},
		}
	}

	code := codeInternal
	message := appErr.Message

	switch {
	case errors.Is(err, apperror.ErrValidation):
		code = codeValidation
	case errors.Is(err, apperror.ErrConflict):
		code = codeConflict
	case errors.Is(err, apperror.ErrAuth):
		code = codeUnauthenticated
	case errors.Is(err, apperror.ErrNotFound):
		code = codeNotFound
	default:
		message = "an internal error occurred"
	}

	extensions := map[string]interface{}{"code": code}
	if appErr.Field != "" {
		extensions["field"] = appErr.Field
	}

	return &resolverError{message: message, extensions: extensions}
}
