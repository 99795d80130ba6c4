package client

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestTransportError(t *testing.T) {
	cause := errors.New("connection reset")
	err := &TransportError{Address: "https://example.com", Err: cause}

	if !strings.Contains(err.Error(), "https://example.com") {
		t.Errorf("message missing address: %s", err)
	}
	if !errors.Is(err, cause) {
		t.Error("TransportError does not unwrap to its cause")
	}
}

func TestRetryableStatusError(t *testing.T) {
	err := &RetryableStatusError{StatusCode: 500, Address: "https://example.com"}

	if !strings.Contains(err.Error(), "500") {
		t.Errorf("message missing status: %s", err)
	}

	var target *RetryableStatusError
	if !errors.As(error(err), &target) {
		t.Error("errors.As failed for RetryableStatusError")
	}
}

func TestResponseFormatError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := &ResponseFormatError{ContentType: "application/json", Err: cause}

	if !strings.Contains(err.Error(), "application/json") {
		t.Errorf("message missing content type: %s", err)
	}
	if !errors.Is(err, cause) {
		t.Error("ResponseFormatError does not unwrap to its cause")
	}
}

func TestMaxRetriesWrapping(t *testing.T) {
	cause := &RetryableStatusError{StatusCode: 500, Address: "a"}
	err := fmt.Errorf("%w after %d attempts: %w", ErrMaxRetriesExceeded, 3, cause)

	if !errors.Is(err, ErrMaxRetriesExceeded) {
		t.Error("terminal error does not match ErrMaxRetriesExceeded")
	}
	var status *RetryableStatusError
	if !errors.As(err, &status) {
		t.Error("terminal error does not expose the last cause")
	}
	if status.StatusCode != 500 {
		t.Errorf("wrapped status = %d, want 500", status.StatusCode)
	}
}
