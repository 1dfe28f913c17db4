package tooling

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

// Tooling-specific errors.
var (
	// ErrTooManyOperations indicates a composite request above domain.CompositeLimit.
	ErrTooManyOperations = errors.New("tooling: too many composite operations")

	// ErrNoTransport indicates an API was built without a transport.
	ErrNoTransport = errors.New("tooling: transport not configured")
)

// Salesforce error codes with special handling.
const (
	errorCodeRequestLimit = "REQUEST_LIMIT_EXCEEDED"
	errorCodeSession      = "INVALID_SESSION_ID"
	errorCodeNotFound     = "NOT_FOUND"
)

// RateLimitError represents an exhausted API allowance.
type RateLimitError struct {
	ResetAt time.Time
	Used    int
	Limit   int

	// Exhausted is set when the org allowance is used up and retrying
	// before the allowance window rolls over cannot succeed.
	Exhausted bool
}

func (e *RateLimitError) Error() string {
	if e.ResetAt.IsZero() {
		return fmt.Sprintf("tooling: rate limit exceeded (%d/%d)", e.Used, e.Limit)
	}
	return fmt.Sprintf("tooling: rate limit exceeded, retry at %s", e.ResetAt.Format(time.RFC3339))
}

// Unwrap allows errors.Is(err, domain.ErrRateLimited).
func (e *RateLimitError) Unwrap() error {
	return domain.ErrRateLimited
}

// APIError represents a non-2xx Tooling API response.
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("tooling: API error %d %s: %s (URL: %s)", e.StatusCode, e.ErrorCode, e.Message, e.URL)
	}
	return fmt.Sprintf("tooling: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// newAPIError decodes the Salesforce error array, falling back to the raw body.
func newAPIError(status int, body []byte, url string) *APIError {
	apiErr := &APIError{StatusCode: status, URL: url}

	var details []domain.APIErrorDetail
	if err := json.Unmarshal(body, &details); err == nil && len(details) > 0 {
		apiErr.ErrorCode = details[0].ErrorCode
		apiErr.Message = details[0].Message
		return apiErr
	}

	var single domain.APIErrorDetail
	if err := json.Unmarshal(body, &single); err == nil && single.Message != "" {
		apiErr.ErrorCode = single.ErrorCode
		apiErr.Message = single.Message
		return apiErr
	}

	apiErr.Message = string(body)
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound || apiErr.ErrorCode == errorCodeNotFound
	}
	return errors.Is(err, domain.ErrNotFound)
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized checks if the error indicates an expired or invalid session.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.ErrorCode == errorCodeSession
	}
	return false
}

// IsRetryable checks if the error is transient.
func IsRetryable(err error) bool {
	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return !rateLimitErr.Exhausted
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}
	var netErr *transportError
	return errors.As(err, &netErr)
}

// IsRejected checks if the server refused the request without applying it,
// so that even a POST can be sent again.
func IsRejected(err error) bool {
	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return !rateLimitErr.Exhausted
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}

// transportError wraps a failure to get any HTTP response.
type transportError struct {
	err error
}

func (e *transportError) Error() string {
	return "tooling: " + e.err.Error()
}

func (e *transportError) Unwrap() error {
	return e.err
}
