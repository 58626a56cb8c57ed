package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed remote call. Consumers map each kind to its
// own user-facing message; the client never wordsmiths for the user.
type ErrorKind uint8

const (
	ErrorNetworkUnavailable ErrorKind = iota
	ErrorRateLimited
	ErrorAuthInvalid
	ErrorForbidden
	ErrorNotFound
	ErrorUpstreamServer
	ErrorUnexpectedStatus
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorNetworkUnavailable:
		return "network unavailable"
	case ErrorRateLimited:
		return "rate limited"
	case ErrorAuthInvalid:
		return "auth invalid"
	case ErrorForbidden:
		return "forbidden"
	case ErrorNotFound:
		return "not found"
	case ErrorUpstreamServer:
		return "upstream server error"
	default:
		return "unexpected status"
	}
}

// ErrUnsupportedKind marks operations that have no meaning for a catalog
// kind, e.g. detail pages for persons.
var ErrUnsupportedKind = errors.New("unsupported catalog kind")

// Error is the failure type surfaced by every remote catalog call.
type Error struct {
	Kind   ErrorKind
	Op     string
	Status int
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("%s: %s (http %d)", e.Op, e.Kind, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the ErrorKind from err when it is (or wraps) a *Error.
func KindOf(err error) (ErrorKind, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return 0, false
}

// retryable reports whether the error represents a transient condition worth
// another attempt.
func retryable(err error) bool {
	kind, ok := KindOf(err)
	if !ok {
		return false
	}
	switch kind {
	case ErrorNetworkUnavailable, ErrorRateLimited, ErrorUpstreamServer:
		return true
	default:
		return false
	}
}

// statusErrorKind maps a non-200 HTTP status to its taxonomy kind.
func statusErrorKind(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized:
		return ErrorAuthInvalid
	case status == http.StatusForbidden:
		return ErrorForbidden
	case status == http.StatusNotFound:
		return ErrorNotFound
	case status == http.StatusTooManyRequests:
		return ErrorRateLimited
	case status >= http.StatusInternalServerError:
		return ErrorUpstreamServer
	default:
		return ErrorUnexpectedStatus
	}
}
