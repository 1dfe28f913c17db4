package driving

import (
	"context"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

// QueryService exposes read-only Tooling API lookups.
// Results are raw JSON bodies.
type QueryService interface {
	// Records lists ApexClass or ApexTrigger records.
	Records(ctx context.Context, kind domain.ApexKind) ([]byte, error)

	// Containers lists MetadataContainers.
	Containers(ctx context.Context) ([]byte, error)

	// AsyncRequest reads one ContainerAsyncRequest.
	AsyncRequest(ctx context.Context, id string) ([]byte, error)

	// Profile reads one Profile.
	Profile(ctx context.Context, id string) ([]byte, error)

	// Execute sends a request below the versioned data root.
	Execute(ctx context.Context, method, path string, body []byte) ([]byte, error)
}
