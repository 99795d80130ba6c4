// Package testutil provides testing utilities for the resilient fetch client.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock origin endpoint response.
type MockResponse struct {
	StatusCode  int
	Body        string
	ContentType string
	Headers     map[string]string
	Delay       time.Duration
}

// MockOrigin is a configurable mock origin server for testing. Endpoints can
// return a fixed response or a scripted sequence of responses (one per
// request, last one repeating), which is how retry behavior is exercised.
type MockOrigin struct {
	server   *httptest.Server
	mu       sync.Mutex
	fixed    map[string]MockResponse
	scripted map[string][]MockResponse
	served   map[string]int

	// RequestCount is the total number of requests received.
	RequestCount int

	// LastRequestHeader holds the headers of the most recent request.
	LastRequestHeader http.Header
}

// NewMockOrigin creates a new mock origin server.
func NewMockOrigin() *MockOrigin {
	mock := &MockOrigin{
		fixed:    make(map[string]MockResponse),
		scripted: make(map[string][]MockResponse),
		served:   make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastRequestHeader = r.Header.Clone()
		resp, ok := mock.nextLocked(r.URL.Path)
		mock.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		if resp.ContentType != "" {
			w.Header().Set("Content-Type", resp.ContentType)
		}
		for name, value := range resp.Headers {
			w.Header().Set(name, value)
		}
		status := resp.StatusCode
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(resp.Body))
	}))

	return mock
}

// nextLocked resolves the response for path; the caller holds mu.
func (m *MockOrigin) nextLocked(path string) (MockResponse, bool) {
	if script, ok := m.scripted[path]; ok {
		i := m.served[path]
		m.served[path]++
		if i >= len(script) {
			i = len(script) - 1
		}
		return script[i], true
	}
	resp, ok := m.fixed[path]
	return resp, ok
}

// Handle sets a fixed response for path.
func (m *MockOrigin) Handle(path string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fixed[path] = resp
}

// HandleJSON sets a fixed JSON response for path.
func (m *MockOrigin) HandleJSON(path, body string) {
	m.Handle(path, MockResponse{
		StatusCode:  http.StatusOK,
		Body:        body,
		ContentType: "application/json",
	})
}

// Script sets a sequence of responses for path, served in order; the last
// response repeats once the sequence is exhausted.
func (m *MockOrigin) Script(path string, responses ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scripted[path] = responses
	m.served[path] = 0
}

// Requests returns the total request count.
func (m *MockOrigin) Requests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.RequestCount
}

// URL returns the mock server URL.
func (m *MockOrigin) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockOrigin) Close() {
	m.server.Close()
}

// Reset clears all tracking counters and scripted progress.
func (m *MockOrigin) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastRequestHeader = nil
	for path := range m.served {
		m.served[path] = 0
	}
}
