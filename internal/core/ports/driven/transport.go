package driven

import (
	"context"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

// Transport performs a single HTTP request.
// Non-2xx responses are returned as errors; the body is returned as is.
type Transport interface {
	// Do sends the request with an optional JSON body and returns the response body.
	Do(ctx context.Context, req domain.Request, body []byte) ([]byte, error)
}
