package driven

import (
	"context"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

// ToolingAPI maps one-to-one to Salesforce Tooling API resources.
// Every method returns the raw response body so callers can archive it.
type ToolingAPI interface {
	// QueryApex retrieves ApexClass or ApexTrigger records.
	QueryApex(ctx context.Context, kind domain.ApexKind, limit int) ([]byte, error)

	// QueryMetadataContainers lists existing containers.
	QueryMetadataContainers(ctx context.Context, limit int) ([]byte, error)

	// CreateMetadataContainer creates a container with the given name.
	CreateMetadataContainer(ctx context.Context, name string) ([]byte, error)

	// Composite sends a composite request of at most domain.CompositeLimit operations.
	Composite(ctx context.Context, req domain.CompositeRequest) ([]byte, error)

	// CreateContainerAsyncRequest starts a compile of the container.
	CreateContainerAsyncRequest(ctx context.Context, containerID string, checkOnly bool) ([]byte, error)

	// QueryContainerAsyncRequest reads the state of a compile.
	QueryContainerAsyncRequest(ctx context.Context, id string) ([]byte, error)

	// GetProfile reads one Profile record.
	GetProfile(ctx context.Context, id string) ([]byte, error)

	// Execute sends an arbitrary request below the versioned data root.
	Execute(ctx context.Context, method, path string, body []byte) ([]byte, error)

	// MemberURL returns the composite sub-request URL that creates members of kind.
	MemberURL(kind domain.ApexKind) string
}
