package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPTransport_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Test") != "yes" {
			t.Errorf("request header X-Test = %q, want yes", r.Header.Get("X-Test"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	tr := NewHTTPTransport(5 * time.Second)
	resp, err := tr.Send(context.Background(), server.URL, RequestOptions{
		Headers: map[string]string{"X-Test": "yes"},
	})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if resp.Status != http.StatusCreated {
		t.Errorf("Status = %d, want 201", resp.Status)
	}
	if !resp.OK() {
		t.Error("OK() = false for 201")
	}
	if resp.Header("content-type") != "application/json" {
		t.Errorf("Content-Type = %q", resp.Header("content-type"))
	}
	if resp.Text() != `{"ok":true}` {
		t.Errorf("body = %q", resp.Text())
	}
}

func TestHTTPTransport_SendBody(t *testing.T) {
	var received []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tr := NewHTTPTransport(5 * time.Second)
	_, err := tr.Send(context.Background(), server.URL, RequestOptions{
		Method: http.MethodPost,
		Body:   []byte(`{"q":"test"}`),
	})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if string(received) != `{"q":"test"}` {
		t.Errorf("server received %q", received)
	}
}

func TestHTTPTransport_NetworkError(t *testing.T) {
	tr := NewHTTPTransport(time.Second)

	// Port 1 is reliably closed.
	_, err := tr.Send(context.Background(), "http://127.0.0.1:1/", RequestOptions{})
	if err == nil {
		t.Fatal("Send succeeded against a closed port")
	}

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Errorf("err type = %T, want TransportError", err)
	}
}

func TestResponse_OK(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{200, true},
		{204, true},
		{299, true},
		{301, false},
		{404, false},
		{500, false},
	}

	for _, tt := range tests {
		r := &Response{Status: tt.status}
		if r.OK() != tt.want {
			t.Errorf("OK() for %d = %v, want %v", tt.status, r.OK(), tt.want)
		}
	}
}

func TestRequestOptions_DefaultMethod(t *testing.T) {
	if (RequestOptions{}).method() != http.MethodGet {
		t.Error("zero RequestOptions method != GET")
	}
	if (RequestOptions{Method: "PUT"}).method() != "PUT" {
		t.Error("explicit method not preserved")
	}
}
