package tooling

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

func TestNewAPIError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		code    string
		message string
	}{
		{
			name:    "error array",
			status:  400,
			body:    `[{"message":"Session expired or invalid","errorCode":"INVALID_SESSION_ID"}]`,
			code:    "INVALID_SESSION_ID",
			message: "Session expired or invalid",
		},
		{
			name:    "single object",
			status:  400,
			body:    `{"message":"bad field","errorCode":"INVALID_FIELD"}`,
			code:    "INVALID_FIELD",
			message: "bad field",
		},
		{
			name:    "plain text",
			status:  502,
			body:    "upstream down",
			message: "upstream down",
		},
		{
			name:    "empty body",
			status:  404,
			message: "Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newAPIError(tt.status, []byte(tt.body), "https://x/y")
			assert.Equal(t, tt.status, err.StatusCode)
			assert.Equal(t, tt.code, err.ErrorCode)
			assert.Equal(t, tt.message, err.Message)
			assert.Contains(t, err.Error(), "https://x/y")
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	notFound := fmt.Errorf("get profile: %w", &APIError{StatusCode: http.StatusNotFound})
	unauthorized := &APIError{StatusCode: http.StatusUnauthorized}
	session := &APIError{StatusCode: http.StatusBadRequest, ErrorCode: "INVALID_SESSION_ID"}
	limited := &RateLimitError{ResetAt: time.Now()}

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(unauthorized))
	assert.True(t, IsNotFound(domain.ErrNotFound))

	assert.True(t, IsUnauthorized(unauthorized))
	assert.True(t, IsUnauthorized(session))
	assert.False(t, IsUnauthorized(notFound))

	assert.True(t, IsRateLimited(limited))
	assert.True(t, errors.Is(limited, domain.ErrRateLimited))
	assert.False(t, IsRateLimited(notFound))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&APIError{StatusCode: http.StatusServiceUnavailable}))
	assert.True(t, IsRetryable(&APIError{StatusCode: http.StatusTooManyRequests}))
	assert.True(t, IsRetryable(&RateLimitError{}))
	assert.True(t, IsRetryable(&transportError{err: errors.New("connection reset")}))

	assert.False(t, IsRetryable(&APIError{StatusCode: http.StatusBadRequest}))
	assert.False(t, IsRetryable(&RateLimitError{Exhausted: true}))
	assert.False(t, IsRetryable(errors.New("decode")))
}

func TestIsRejected(t *testing.T) {
	assert.True(t, IsRejected(&RateLimitError{}))
	assert.True(t, IsRejected(&APIError{StatusCode: http.StatusTooManyRequests}))

	assert.False(t, IsRejected(&RateLimitError{Exhausted: true}))
	assert.False(t, IsRejected(&APIError{StatusCode: http.StatusServiceUnavailable}))
	assert.False(t, IsRejected(&APIError{StatusCode: http.StatusBadGateway}))
	assert.False(t, IsRejected(&transportError{err: errors.New("connection reset")}))
}
