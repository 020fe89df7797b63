package keep

import (
	"errors"
	"fmt"
)

// Kind classifies an API failure so callers can branch on the class of
// problem without parsing server messages.
type Kind string

const (
	// KindValidation means the request was rejected before or by the server
	// for malformed input. Locally detected validation failures never issue
	// a request.
	KindValidation Kind = "validation"
	// KindUnauthenticated means no token was held or the server rejected it.
	KindUnauthenticated Kind = "unauthenticated"
	// KindNotFound means the record is absent or not owned by the caller.
	KindNotFound Kind = "not_found"
	// KindProviderRejected means the OAuth provider token exchange was refused.
	KindProviderRejected Kind = "provider_rejected"
	// KindNetwork means the request could not complete at the transport level.
	KindNetwork Kind = "network"
	// KindServer means the server answered with a non-2xx status not covered
	// by a more specific kind.
	KindServer Kind = "server"
)

// Sentinels for errors.Is matching. Every *Error returned by this package
// matches exactly one of these.
var (
	ErrValidation       = &Error{Kind: KindValidation}
	ErrUnauthenticated  = &Error{Kind: KindUnauthenticated}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrProviderRejected = &Error{Kind: KindProviderRejected}
	ErrNetwork          = &Error{Kind: KindNetwork}
	ErrServer           = &Error{Kind: KindServer}
)

// Error is the typed failure surfaced by every client call. Message carries
// the server-supplied text when the response body had one.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.cause != nil {
		msg = e.cause.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("keep: %s (status %d): %s", e.Kind, e.Status, msg)
	}
	return fmt.Sprintf("keep: %s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error carrying the same Kind, so that
// errors.Is(err, keep.ErrNotFound) works for wrapped errors too.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func validationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: "request failed", cause: err}
}

// statusError maps a non-2xx response to a typed error. providerExchange
// marks the google token exchange, where a 400 means the provider refused
// the token rather than a malformed request.
func statusError(status int, message string, providerExchange bool) *Error {
	if message == "" {
		message = "request rejected by server"
	}
	kind := KindServer
	switch {
	case status == 401:
		kind = KindUnauthenticated
	case status == 404:
		kind = KindNotFound
	case status == 400 && providerExchange:
		kind = KindProviderRejected
	case status == 400:
		kind = KindValidation
	}
	return &Error{Kind: kind, Status: status, Message: message}
}

// AsError extracts the typed error from err, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
