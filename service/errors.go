package services

import (
	"errors"

	"eventize/api"
)

// FetchErrorKind is the two-way failure taxonomy exposed to clients.
type FetchErrorKind int

const (
	NetworkFailure FetchErrorKind = iota
	DataParsingFailure
)

func (k FetchErrorKind) String() string {
	if k == DataParsingFailure {
		return "data_parsing_failure"
	}
	return "network_failure"
}

// EventFetchError collapses an api.NetworkError for callers. The original
// error stays reachable through Unwrap.
type EventFetchError struct {
	Kind FetchErrorKind
	Err  error
}

func (e *EventFetchError) Error() string {
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *EventFetchError) Unwrap() error {
	return e.Err
}

// NewEventFetchError maps invalid URL and transport failures to
// NetworkFailure, invalid responses and decode failures to DataParsingFailure.
func NewEventFetchError(err error) *EventFetchError {
	kind := NetworkFailure
	if k, ok := api.KindOf(err); ok && (k == api.InvalidResponse || k == api.DataParsing) {
		kind = DataParsingFailure
	}
	return &EventFetchError{Kind: kind, Err: err}
}

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrTicketAlreadyInvalid = errors.New("ticket already invalid")
)
