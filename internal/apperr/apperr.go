// Package apperr defines the client-facing error taxonomy. Handlers turn an
// *Error into a JSON body and the status code that matches its Kind.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for the HTTP layer.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindAuth
	KindNotFound
)

// Error is a failure whose message is safe to show to the client.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Status returns the HTTP status code for the error's kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// Validation reports a missing or malformed field (400).
func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

// Conflict reports a uniqueness violation (409).
func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

// Auth reports bad credentials or a missing/invalid token (401).
func Auth(msg string) *Error { return &Error{Kind: KindAuth, Message: msg} }

// NotFound reports a missing row or a failed ownership check (404).
// The two cases are deliberately indistinguishable to the client.
func NotFound() *Error { return &Error{Kind: KindNotFound, Message: "Not found"} }

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
