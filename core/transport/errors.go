package transport

import (
	"errors"
	"fmt"
)

// ErrRetryExhausted is returned when every attempt has failed. It is wrapped
// together with the last attempt's error so callers can inspect either:
//
//	var terr *transport.TransportError
//	if errors.Is(err, transport.ErrRetryExhausted) && errors.As(err, &terr) {
//	    // terr.Status, terr.Body
//	}
var ErrRetryExhausted = errors.New("transport: all attempts exhausted")

// TransportError is a completed HTTP exchange with a non-2xx status.
type TransportError struct {
	Status int
	Body   string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}

// NetworkError is a failure to complete the HTTP exchange at all
// (DNS, connection, TLS, read, context cancellation).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
