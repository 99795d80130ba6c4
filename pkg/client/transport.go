package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RequestOptions describes one outbound request. The zero value is a GET
// with no headers and no body.
type RequestOptions struct {
	Method  string
	Headers map[string]string
	Body    []byte
}

func (o RequestOptions) method() string {
	if o.Method == "" {
		return http.MethodGet
	}
	return o.Method
}

// Response is the transport's status/headers/body triple.
type Response struct {
	Status  int
	Headers map[string]string
	Body    []byte
}

// OK reports whether the status is in the 2xx range.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// JSON decodes the body as JSON.
func (r *Response) JSON() (any, error) {
	var v any
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Header returns the named response header, using canonical MIME form.
func (r *Response) Header(name string) string {
	return r.Headers[http.CanonicalHeaderKey(name)]
}

// Transport is the underlying primitive that actually sends one request.
// It must be safely callable repeatedly for retries. This layer only decides
// whether and when to call it.
type Transport interface {
	Send(ctx context.Context, address string, opts RequestOptions) (*Response, error)
}

// HTTPTransport is the default Transport on top of net/http.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport creates a Transport with the given request timeout.
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		client: &http.Client{Timeout: timeout},
	}
}

// Send issues the request and reads the full body. Network-level failures
// are returned as TransportError; any received response, whatever its
// status, is returned without error.
func (t *HTTPTransport) Send(ctx context.Context, address string, opts RequestOptions) (*Response, error) {
	var body io.Reader
	if len(opts.Body) > 0 {
		body = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, opts.method(), address, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for name, value := range opts.Headers {
		req.Header.Set(name, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &TransportError{Address: address, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Address: address, Err: err}
	}

	headers := make(map[string]string, len(resp.Header))
	for name := range resp.Header {
		headers[http.CanonicalHeaderKey(name)] = resp.Header.Get(name)
	}

	return &Response{
		Status:  resp.StatusCode,
		Headers: headers,
		Body:    data,
	}, nil
}
