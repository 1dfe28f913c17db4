package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
	"github.com/custodia-labs/apexspec-cli/internal/core/ports/driven"
	"github.com/custodia-labs/apexspec-cli/internal/core/ports/driving"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService passes read-only lookups through to the Tooling API.
type QueryService struct {
	api   driven.ToolingAPI
	limit int
}

// NewQueryService creates a query service. limit bounds list queries.
func NewQueryService(api driven.ToolingAPI, limit int) *QueryService {
	return &QueryService{api: api, limit: limit}
}

// Records lists ApexClass or ApexTrigger records.
func (s *QueryService) Records(ctx context.Context, kind domain.ApexKind) ([]byte, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedKind, kind)
	}
	return s.api.QueryApex(ctx, kind, s.limit)
}

// Containers lists MetadataContainers.
func (s *QueryService) Containers(ctx context.Context) ([]byte, error) {
	return s.api.QueryMetadataContainers(ctx, s.limit)
}

// AsyncRequest reads one ContainerAsyncRequest.
func (s *QueryService) AsyncRequest(ctx context.Context, id string) ([]byte, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.api.QueryContainerAsyncRequest(ctx, id)
}

// Profile reads one Profile.
func (s *QueryService) Profile(ctx context.Context, id string) ([]byte, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.api.GetProfile(ctx, id)
}

// Execute sends GET or POST below the versioned data root.
func (s *QueryService) Execute(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	switch strings.ToUpper(method) {
	case "GET", "POST":
	default:
		return nil, fmt.Errorf("%w: method %q", domain.ErrInvalidInput, method)
	}
	return s.api.Execute(ctx, method, path, body)
}

// requireID rejects empty ids and ids that would escape the query.
func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}
	if strings.ContainsAny(id, "'/?&# ") {
		return fmt.Errorf("%w: id %q", domain.ErrInvalidInput, id)
	}
	return nil
}
