package tooling

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// ProactiveRate is the steady request rate towards one org.
	ProactiveRate = 5.0

	// ProactiveBurst allows short bursts above ProactiveRate.
	ProactiveBurst = 5

	// HeaderLimitInfo reports org API usage, e.g. "api-usage=18/15000".
	HeaderLimitInfo = "Sforce-Limit-Info"

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter combines a token bucket with the org allowance reported
// in Sforce-Limit-Info.
type RateLimiter struct {
	mu     sync.Mutex
	used   int           // From API header
	limit  int           // From API header, zero until first response
	bucket *rate.Limiter // Proactive throttling
}

// NewRateLimiter creates a new rate limiter with proactive throttling.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithRate(ProactiveRate, ProactiveBurst)
}

// NewRateLimiterWithRate creates a rate limiter with a custom token bucket.
func NewRateLimiterWithRate(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Wait blocks until it's safe to make a request.
// Returns a RateLimitError at once if the org allowance is exhausted.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	used, limit := r.used, r.limit
	r.mu.Unlock()

	if limit > 0 && used >= limit {
		return &RateLimitError{Used: used, Limit: limit, Exhausted: true}
	}

	return r.bucket.Wait(ctx)
}

// UpdateFromResponse updates usage from the Sforce-Limit-Info header.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}
	used, limit, ok := parseLimitInfo(resp.Header.Get(HeaderLimitInfo))
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.used = used
	r.limit = limit
}

// CheckRateLimit checks if the response indicates rate limiting.
// Returns a RateLimitError if rate limited, nil otherwise.
func (r *RateLimiter) CheckRateLimit(resp *http.Response, body []byte) error {
	if resp == nil {
		return nil
	}

	r.UpdateFromResponse(resp)

	limited := resp.StatusCode == http.StatusTooManyRequests
	if resp.StatusCode == http.StatusForbidden {
		apiErr := newAPIError(resp.StatusCode, body, "")
		limited = apiErr.ErrorCode == errorCodeRequestLimit
	}
	if !limited {
		return nil
	}

	r.mu.Lock()
	rlErr := &RateLimitError{Used: r.used, Limit: r.limit}
	r.mu.Unlock()

	if retryAfter := resp.Header.Get(HeaderRetryAfter); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			rlErr.ResetAt = time.Now().Add(time.Duration(seconds) * time.Second)
		}
	}
	return rlErr
}

// Used returns the API calls used so far, as last reported.
func (r *RateLimiter) Used() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.used
}

// Limit returns the org allowance, as last reported.
func (r *RateLimiter) Limit() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.limit
}

// parseLimitInfo parses "api-usage=18/15000". Other comma separated
// entries in the header are ignored.
func parseLimitInfo(header string) (used, limit int, ok bool) {
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found || key != "api-usage" {
			continue
		}
		u, l, found := strings.Cut(value, "/")
		if !found {
			return 0, 0, false
		}
		var err error
		if used, err = strconv.Atoi(u); err != nil {
			return 0, 0, false
		}
		if limit, err = strconv.Atoi(l); err != nil {
			return 0, 0, false
		}
		return used, limit, true
	}
	return 0, 0, false
}
