package bluegem

import (
	"errors"
	"fmt"

	domain "github.com/donaldgifford/bluegem/pkg/types"
)

// Error classes. Every error returned by a Client operation matches exactly
// one of ErrBadArgument, ErrTransport, ErrHTTP, ErrDecode or ErrClosed with
// errors.Is. Remote failures additionally match their specific class, and
// transport failures also match their cause, such as context.Canceled.
var (
	// ErrBadArgument marks a local validation failure. No request was sent.
	ErrBadArgument = errors.New("bad argument")

	// ErrTransport means no usable response was received: the request could
	// not be sent, or the connection failed while reading the body.
	ErrTransport = errors.New("transport error")

	// ErrHTTP matches every failure reported by the remote API.
	ErrHTTP = errors.New("http exception")

	// ErrInvalidRequest means the API rejected the request with a message,
	// regardless of the HTTP status it used.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound means the API answered 404.
	ErrNotFound = errors.New("not found")

	// ErrServerError means the API answered with a 5xx status.
	ErrServerError = errors.New("server error")

	// ErrDecode means a successful response did not match the expected schema.
	ErrDecode = errors.New("decode error")

	// ErrIntegrity means a decoded payload broke one of the API's own
	// guarantees, such as a sale without any inspect link.
	ErrIntegrity = domain.ErrIntegrity

	// ErrClosed is returned by operations on a closed Client.
	ErrClosed = errors.New("client is closed")
)

// ArgumentError describes an invalid argument caught before any I/O.
type ArgumentError struct {
	Argument string
	Reason   string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("bad argument %s: %s", e.Argument, e.Reason)
}

// Unwrap lets errors.Is match ErrBadArgument.
func (e *ArgumentError) Unwrap() error {
	return ErrBadArgument
}

func badArgument(arg, format string, args ...any) error {
	return &ArgumentError{Argument: arg, Reason: fmt.Sprintf(format, args...)}
}

// APIError is a failure reported by the remote API. Kind is one of
// ErrInvalidRequest, ErrNotFound, ErrServerError or ErrHTTP.
type APIError struct {
	Kind       error
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s (HTTP %d)", e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
}

// Unwrap returns both the specific kind and ErrHTTP.
func (e *APIError) Unwrap() []error {
	if e.Kind == nil || e.Kind == ErrHTTP {
		return []error{ErrHTTP}
	}
	return []error{e.Kind, ErrHTTP}
}

// TransportError is a failure to exchange a request and response with the
// API. Op names the step that failed.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns ErrTransport and the underlying cause.
func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// DecodeError reports a payload that does not match the expected schema.
// Field is the JSON path of the offending value, e.g. "sales[0].epoch".
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Field == "":
		return fmt.Sprintf("decoding response: %v", e.Err)
	case e.Err == nil:
		return fmt.Sprintf("decoding response: missing required field %q", e.Field)
	default:
		return fmt.Sprintf("decoding response: field %q: %v", e.Field, e.Err)
	}
}

// Unwrap returns ErrDecode and the underlying cause, if any.
func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDecode}
	}
	return []error{ErrDecode, e.Err}
}
