package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies fetch and decode failures.
type ErrorKind int

const (
	// InvalidURL means the endpoint could not be assembled.
	InvalidURL ErrorKind = iota + 1
	// Transport covers connectivity, timeouts and TLS failures.
	Transport
	// InvalidResponse means an empty body, an error status or undecodable image bytes.
	InvalidResponse
	// DataParsing means the body did not decode into the requested shape.
	DataParsing
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidURL:
		return "invalid_url"
	case Transport:
		return "network_error"
	case InvalidResponse:
		return "invalid_response"
	case DataParsing:
		return "data_parsing_error"
	default:
		return fmt.Sprintf("error_kind(%d)", int(k))
	}
}

// NetworkError is the only error type returned by the fetch helpers.
type NetworkError struct {
	Kind ErrorKind
	Err  error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is matches any NetworkError of the same kind, so the sentinels below work
// with errors.Is regardless of the wrapped cause.
func (e *NetworkError) Is(target error) bool {
	t, ok := target.(*NetworkError)
	return ok && t.Err == nil && t.Kind == e.Kind
}

var (
	ErrInvalidURL      = &NetworkError{Kind: InvalidURL}
	ErrTransport       = &NetworkError{Kind: Transport}
	ErrInvalidResponse = &NetworkError{Kind: InvalidResponse}
	ErrDataParsing     = &NetworkError{Kind: DataParsing}
)

func newError(kind ErrorKind, err error) *NetworkError {
	return &NetworkError{Kind: kind, Err: err}
}

// KindOf reports the kind of a NetworkError anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Kind, true
	}
	return 0, false
}
