package tooling

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
	"github.com/custodia-labs/apexspec-cli/internal/core/ports/driven"
	"github.com/custodia-labs/apexspec-cli/internal/logger"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Ensure HTTPTransport implements the interface.
var _ driven.Transport = (*HTTPTransport)(nil)

// HTTPTransport sends domain.Request descriptors over HTTP.
type HTTPTransport struct {
	client      *http.Client
	scheme      string
	rateLimiter *RateLimiter
	retry       RetryConfig
}

// TransportOption configures an HTTPTransport.
type TransportOption func(*HTTPTransport)

// WithScheme overrides the URL scheme (default "https").
func WithScheme(scheme string) TransportOption {
	return func(t *HTTPTransport) {
		t.scheme = scheme
	}
}

// WithRateLimiter replaces the default rate limiter.
func WithRateLimiter(r *RateLimiter) TransportOption {
	return func(t *HTTPTransport) {
		t.rateLimiter = r
	}
}

// WithRetryConfig replaces the default retry policy.
func WithRetryConfig(c RetryConfig) TransportOption {
	return func(t *HTTPTransport) {
		t.retry = c
	}
}

// NewHTTPTransport creates a transport whose client authorises every
// request with the token from provider. A base *http.Client may be
// supplied through ctx under oauth2.HTTPClient.
func NewHTTPTransport(ctx context.Context, provider driven.TokenProvider, opts ...TransportOption) *HTTPTransport {
	ts := oauth2.ReuseTokenSource(nil, NewTokenSource(ctx, provider))
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout
	return NewHTTPTransportWithClient(tc, opts...)
}

// NewHTTPTransportWithClient creates a transport over an existing client.
// Request descriptors carry their own Authorization header.
func NewHTTPTransportWithClient(client *http.Client, opts ...TransportOption) *HTTPTransport {
	t := &HTTPTransport{
		client:      client,
		scheme:      "https",
		rateLimiter: NewRateLimiter(),
		retry:       DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RateLimiter returns the limiter tracking the org allowance.
func (t *HTTPTransport) RateLimiter() *RateLimiter {
	return t.rateLimiter
}

// Do sends the request, retrying transient failures. Requests that are
// not idempotent are only retried when the server rejected them.
func (t *HTTPTransport) Do(ctx context.Context, req domain.Request, body []byte) ([]byte, error) {
	retryable := IsRetryable
	if !isIdempotent(req.Method) {
		retryable = IsRejected
	}
	return retryWithBackoff(ctx, t.retry, retryable, func() ([]byte, error) {
		return t.do(ctx, req, body)
	})
}

func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

func (t *HTTPTransport) do(ctx context.Context, req domain.Request, body []byte) ([]byte, error) {
	if err := t.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := req.URL(t.scheme)
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := t.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &transportError{err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &transportError{err: fmt.Errorf("read response: %w", err)}
	}

	logger.Debug("%s %s -> %d (%d bytes, %s)", req.Method, req.Path, resp.StatusCode, len(data), time.Since(start).Round(time.Millisecond))

	if err := t.rateLimiter.CheckRateLimit(resp, data); err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, data, url)
	}

	return data, nil
}
