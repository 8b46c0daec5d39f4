// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// Every failure the query engine, credential store and session manager can surface
// carries a machine-readable Kind so callers can branch on the category without
// matching message text.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// UnknownTable indicates a table that is not part of the schema.
	UnknownTable Kind = "unknown_table"
	// InvalidColumn indicates a column or aggregate expression not valid for its table.
	InvalidColumn Kind = "invalid_column"
	// InvalidOrder indicates an order direction other than ASC or DESC.
	InvalidOrder Kind = "invalid_order"
	// CredentialFailed indicates the credential record could not be stored or decrypted.
	CredentialFailed Kind = "credential_failed"
	// AuthenticationFailed indicates the service rejected the login.
	AuthenticationFailed Kind = "authentication_failed"
	// RequestFailed indicates a non-success response from a data retrieval call.
	RequestFailed Kind = "request_failed"
	// TransportFailed indicates the request never produced a status code.
	TransportFailed Kind = "transport_failed"
	// SessionClosed indicates a request through a session that was already closed.
	SessionClosed Kind = "session_closed"
	// UnexpectedResponse indicates a success body that does not have the expected shape.
	UnexpectedResponse Kind = "unexpected_response"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// Newf is New with a formatted message.
func Newf(kind Kind, format string, args ...any) *E {
	return &E{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the outermost E in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether any E in err's chain has the given kind.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		var e *E
		if !stderrors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}

// RequestError carries the status and body of a rejected retrieval.
type RequestError struct {
	StatusCode int
	Body       string
}

func (r *RequestError) Error() string {
	return fmt.Sprintf("status %d: %s", r.StatusCode, r.Body)
}

// AsRequestError extracts the RequestError from err's chain.
func AsRequestError(err error) (*RequestError, bool) {
	var r *RequestError
	ok := stderrors.As(err, &r)
	return r, ok
}
