package news

import (
	"errors"
	"fmt"
)

// The closed failure taxonomy of the transport. Every error leaving this
// package is one of these (possibly wrapped); callers branch with errors.Is
// and errors.As, never by string matching.
var (
	ErrNotFound          = errors.New("no digest available for this date")
	ErrRateLimited       = errors.New("too many requests, please try again later")
	ErrMalformedResponse = errors.New("malformed response from server")
)

// ServerError is a non-200 status outside the named cases. Detail carries the
// server's error envelope message when one was present.
type ServerError struct {
	Status int
	Detail string
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("server error (HTTP %d)", e.Status)
}

// TransportError is a failure below HTTP: connection refused, reset, timeout,
// or an unreadable response stream. The raw error is normalized behind a
// displayable message so "response unreadable" never reaches a user verbatim.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("network problem while fetching %s", e.Op)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Message turns any transport error into a string fit for the status bar.
func Message(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return ErrNotFound.Error()
	case errors.Is(err, ErrRateLimited):
		return ErrRateLimited.Error()
	case errors.Is(err, ErrMalformedResponse):
		return ErrMalformedResponse.Error()
	}
	var srvErr *ServerError
	if errors.As(err, &srvErr) {
		return srvErr.Error()
	}
	var trErr *TransportError
	if errors.As(err, &trErr) {
		return trErr.Error()
	}
	return err.Error()
}
