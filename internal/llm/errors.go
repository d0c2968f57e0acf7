package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Failure categories. Every error returned by a Provider matches exactly one
// of these with errors.Is.
var (
	ErrAuthentication    = errors.New("authentication failed")
	ErrRateLimit         = errors.New("rate limit exceeded")
	ErrNetwork           = errors.New("network error")
	ErrMalformedResponse = errors.New("malformed response")
	ErrServer            = errors.New("service error")
)

// Error is a classified provider failure.
type Error struct {
	Provider   string
	Kind       error // one of the Err* categories
	StatusCode int   // 0 when no HTTP response was received
	Err        error
}

func (e *Error) Error() string {
	msg := e.Provider + ": " + e.Kind.Error()
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(provider string, kind error, status int, err error) *Error {
	return &Error{Provider: provider, Kind: kind, StatusCode: status, Err: err}
}

// kindForStatus maps an HTTP status code to a failure category.
func kindForStatus(code int) error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrAuthentication
	case code == http.StatusTooManyRequests:
		return ErrRateLimit
	default:
		return ErrServer
	}
}

var categories = []error{ErrAuthentication, ErrRateLimit, ErrNetwork, ErrMalformedResponse, ErrServer}

// Classify returns the failure category of err. Errors that did not come
// from a Provider are categorized by shape: transport errors are network
// failures, JSON decoding errors are malformed responses, and anything else
// is a service error. Classify(nil) returns nil.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range categories {
		if errors.Is(err, kind) {
			return kind
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return ErrNetwork
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return ErrMalformedResponse
	}

	return ErrServer
}
