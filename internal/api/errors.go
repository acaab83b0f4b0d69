package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrorKind classifies a request failure. Callers branch on the kind, never
// on error strings.
type ErrorKind int

const (
	// KindAPI covers non-success statuses outside the named taxonomy.
	KindAPI ErrorKind = iota

	// KindAuthentication: 401 after exhausting the single refresh-retry,
	// or a failed refresh. Terminal for the call; re-authenticate.
	KindAuthentication

	// KindValidation: the request content was rejected (400).
	KindValidation

	// KindNotFound: the target resource is absent (404).
	KindNotFound

	// KindServer: a remote-side error (5xx). Not retried by this layer.
	KindServer

	// KindTransport: a network-level failure before any status code was
	// obtained (connection refused, DNS failure, timeout).
	KindTransport
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindServer:
		return "server"
	case KindTransport:
		return "transport"
	default:
		return "api"
	}
}

// Error is a typed request failure.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Detail     string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s error (HTTP %d): %s", e.Kind, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// newStatusError maps a non-success response onto the error taxonomy,
// pulling the service's "detail" field out of JSON error bodies when
// present.
func newStatusError(status int, body []byte) *Error {
	kind := KindAPI
	switch {
	case status == http.StatusUnauthorized:
		kind = KindAuthentication
	case status == http.StatusBadRequest:
		kind = KindValidation
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status >= 500:
		kind = KindServer
	}

	return &Error{
		Kind:       kind,
		StatusCode: status,
		Detail:     errorDetail(status, body),
	}
}

func errorDetail(status int, body []byte) string {
	if gjson.ValidBytes(body) {
		if d := gjson.GetBytes(body, "detail"); d.Exists() {
			return d.String()
		}
	}
	if detail := strings.TrimSpace(string(body)); detail != "" {
		return detail
	}
	return fmt.Sprintf("HTTP %d", status)
}

// transportError wraps a network-level failure that produced no status code.
func transportError(err error) *Error {
	return &Error{
		Kind:   KindTransport,
		Detail: fmt.Sprintf("request failed: %v", err),
		Err:    err,
	}
}

// validationError reports a request rejected client-side, before any HTTP
// round-trip.
func validationError(format string, args ...any) *Error {
	return &Error{
		Kind:   KindValidation,
		Detail: fmt.Sprintf(format, args...),
	}
}
