package client

import "context"

// Hooks observes and optionally steers a call's lifecycle. Embed BaseHooks
// and override the methods you need; BaseHooks is the no-op variant used
// when no hooks are configured.
type Hooks interface {
	// OnRetry runs before each retry attempt (never before the first
	// attempt). A non-empty address or non-nil options replace the
	// request's address/options for that attempt only.
	OnRetry(ctx context.Context, attempt int, address string, opts RequestOptions) (string, *RequestOptions)

	// OnHTTPResponse observes every raw response, ok or not. It has no
	// effect on control flow.
	OnHTTPResponse(ctx context.Context, resp *Response)

	// OnSuccess observes the decoded value before it is cached and
	// returned. Returning (v, true) substitutes v for the result.
	OnSuccess(ctx context.Context, value any, resp *Response) (any, bool)

	// OnError runs after each failed attempt with the error and the new
	// attempt count. Returning a non-nil error replaces the failure and
	// terminates the retry loop immediately, even if attempts remain.
	OnError(ctx context.Context, err error, attempt int) error
}

// BaseHooks is the no-op Hooks implementation.
type BaseHooks struct{}

var _ Hooks = BaseHooks{}

func (BaseHooks) OnRetry(ctx context.Context, attempt int, address string, opts RequestOptions) (string, *RequestOptions) {
	return "", nil
}

func (BaseHooks) OnHTTPResponse(ctx context.Context, resp *Response) {}

func (BaseHooks) OnSuccess(ctx context.Context, value any, resp *Response) (any, bool) {
	return nil, false
}

func (BaseHooks) OnError(ctx context.Context, err error, attempt int) error {
	return nil
}
