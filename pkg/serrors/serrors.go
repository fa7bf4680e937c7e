// Package serrors carries the error categories the API exposes. Services
// return them wrapped with a client facing message and the HTTP layer turns
// the kind into a status code and the "code" field of the error body.
package serrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a semantic error category. Only NewKind creates kinds.
type Kind interface {
	error
	// Status is the HTTP status the kind is reported with.
	Status() int
	// DefaultMessage is shown when no message was attached, and always for
	// server side kinds.
	DefaultMessage() string
	isKind()
}

type kind struct {
	code    string
	status  int
	message string
}

func (k kind) Error() string          { return k.code }
func (k kind) Status() int            { return k.status }
func (k kind) DefaultMessage() string { return k.message }
func (k kind) isKind()                {}

// NewKind creates a kind. Kinds compare by value, so two kinds with the same
// code, status and message are equal.
func NewKind(code string, status int, message string) Kind {
	return kind{code: code, status: status, message: message}
}

var (
	ErrBadRequest    = NewKind("BAD_REQUEST", http.StatusBadRequest, "bad request")
	ErrUnauthorized  = NewKind("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrForbidden     = NewKind("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrNotFound      = NewKind("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConflict      = NewKind("CONFLICT", http.StatusConflict, "conflict")
	ErrUnprocessable = NewKind("UNPROCESSABLE", http.StatusUnprocessableEntity, "unprocessable entity")
	// ErrRateLimited is also returned by providers; delivery jobs that hit it
	// are snoozed instead of retried.
	ErrRateLimited = NewKind("RATE_LIMITED", http.StatusTooManyRequests, "too many requests")
	ErrTimeout     = NewKind("TIMEOUT", http.StatusGatewayTimeout, "request timed out")
	// ErrUnavailable marks failures of WhatsApp, SMS, mail or the broker.
	ErrUnavailable = NewKind("UNAVAILABLE", http.StatusServiceUnavailable, "service unavailable")
	ErrInternal    = NewKind("INTERNAL", http.StatusInternalServerError, "internal error")
)

// ServerSide reports whether k is a 5xx kind.
func ServerSide(k Kind) bool {
	return k.Status() >= http.StatusInternalServerError
}

// Error attaches a kind and a client facing message to an optional cause.
// errors.Is and errors.As match both the kind and anything in the cause
// chain.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With returns an error of kind k with a formatted message and no cause.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap is With plus a cause. The cause is logged but never sent to clients
// unless the server runs in debug mode.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly returns an error that renders as the kind's default message.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	case e.kind != nil:
		return e.kind.Error()
	default:
		return "unknown error"
	}
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}

	return (e.kind != nil && errors.Is(e.kind, target)) || (e.err != nil && errors.Is(e.err, target))
}

func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}

	return (e.kind != nil && errors.As(e.kind, target)) || (e.err != nil && errors.As(e.err, target))
}

func (e *Error) Kind() Kind      { return e.kind }
func (e *Error) Message() string { return e.msg }
func (e *Error) Cause() error    { return e.err }

// KindOf returns the kind of the first *Error in err's chain, or a bare kind
// wrapped directly. It returns nil when err carries no kind.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) && se.kind != nil {
		return se.kind
	}

	var k Kind
	if errors.As(err, &k) {
		return k
	}

	return nil
}

// MessageOf returns the message of the first *Error in err's chain.
func MessageOf(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.msg
	}

	return ""
}
