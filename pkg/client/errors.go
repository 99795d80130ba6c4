package client

import (
	"errors"
	"fmt"
)

// ErrMaxRetriesExceeded is the terminal error after exhausting the
// configured retry attempts. It wraps the last underlying cause.
var ErrMaxRetriesExceeded = errors.New("max retries exceeded")

// TransportError wraps a network-level failure raised by the transport call
// itself. It is retried internally.
type TransportError struct {
	Address string
	Err     error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure for %s: %v", e.Address, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// RetryableStatusError marks a non-ok response whose status is a member of
// the configured retryOnErrors set. It is retried internally; a non-ok
// response whose status is NOT in the set is never an error and passes
// through as a successful result.
type RetryableStatusError struct {
	StatusCode int
	Address    string
}

// Error implements the error interface.
func (e *RetryableStatusError) Error() string {
	return fmt.Sprintf("retryable status %d from %s", e.StatusCode, e.Address)
}

// ResponseFormatError indicates the response body could not be decoded as
// the requested (or sniffed) format. It is never retried.
type ResponseFormatError struct {
	ContentType string
	Err         error
}

// Error implements the error interface.
func (e *ResponseFormatError) Error() string {
	return fmt.Sprintf("response decode failed (content-type %q): %v", e.ContentType, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ResponseFormatError) Unwrap() error {
	return e.Err
}
