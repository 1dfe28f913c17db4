package tooling

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
	"github.com/custodia-labs/apexspec-cli/internal/core/ports/driven"
)

// Ensure API implements the interface.
var _ driven.ToolingAPI = (*API)(nil)

// API binds an authorization to a transport.
type API struct {
	auth      domain.Authorization
	transport driven.Transport
}

// NewAPI creates a Tooling API client.
func NewAPI(auth domain.Authorization, transport driven.Transport) *API {
	return &API{
		auth:      auth,
		transport: transport,
	}
}

// Authorization returns the session the API was built with.
func (a *API) Authorization() domain.Authorization {
	return a.auth
}

func (a *API) send(ctx context.Context, req domain.Request, payload any, op string) ([]byte, error) {
	if a.transport == nil {
		return nil, ErrNoTransport
	}

	var body []byte
	if payload != nil {
		var err error
		if body, err = json.Marshal(payload); err != nil {
			return nil, fmt.Errorf("%s: encode body: %w", op, err)
		}
	}

	data, err := a.transport.Do(ctx, req, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

// QueryApex retrieves records of kind with the kind's documentation fields.
func (a *API) QueryApex(ctx context.Context, kind domain.ApexKind, limit int) ([]byte, error) {
	switch kind {
	case domain.ApexKindClass:
		return a.QueryApexClasses(ctx, kind.Fields(), limit)
	case domain.ApexKindTrigger:
		return a.QueryApexTriggers(ctx, kind.Fields(), limit)
	default:
		return nil, fmt.Errorf("query apex: %w", domain.ErrUnsupportedKind)
	}
}

// QueryApexClasses retrieves ApexClass records.
func (a *API) QueryApexClasses(ctx context.Context, fields []string, limit int) ([]byte, error) {
	return a.send(ctx, ApexClassQueryEndpoint(a.auth, fields, limit), nil, "query apex classes")
}

// QueryApexTriggers retrieves ApexTrigger records.
func (a *API) QueryApexTriggers(ctx context.Context, fields []string, limit int) ([]byte, error) {
	return a.send(ctx, ApexTriggerQueryEndpoint(a.auth, fields, limit), nil, "query apex triggers")
}

// QueryMetadataContainers lists containers by name.
func (a *API) QueryMetadataContainers(ctx context.Context, limit int) ([]byte, error) {
	return a.send(ctx, MetadataContainerQueryEndpoint(a.auth, limit), nil, "query metadata containers")
}

// CreateMetadataContainer creates a container.
func (a *API) CreateMetadataContainer(ctx context.Context, name string) ([]byte, error) {
	payload := map[string]string{"Name": name}
	return a.send(ctx, MetadataContainerCreateEndpoint(a.auth), payload, "create metadata container")
}

// Composite sends a composite request.
func (a *API) Composite(ctx context.Context, req domain.CompositeRequest) ([]byte, error) {
	if n := len(req.CompositeRequest); n > domain.CompositeLimit {
		return nil, fmt.Errorf("composite: %w: %d > %d", ErrTooManyOperations, n, domain.CompositeLimit)
	}
	return a.send(ctx, CompositeEndpoint(a.auth), req, "composite")
}

// CreateContainerAsyncRequest starts a compile of the container.
func (a *API) CreateContainerAsyncRequest(ctx context.Context, containerID string, checkOnly bool) ([]byte, error) {
	payload := struct {
		MetadataContainerID string `json:"MetadataContainerId"`
		IsCheckOnly         bool   `json:"IsCheckOnly"`
	}{containerID, checkOnly}
	return a.send(ctx, ContainerAsyncRequestCreateEndpoint(a.auth), payload, "create container async request")
}

// QueryContainerAsyncRequest reads the state of one compile.
func (a *API) QueryContainerAsyncRequest(ctx context.Context, id string) ([]byte, error) {
	req := ContainerAsyncRequestQueryEndpoint(a.auth, id, domain.ContainerAsyncRequestFields)
	return a.send(ctx, req, nil, "query container async request")
}

// GetProfile reads one Profile record.
func (a *API) GetProfile(ctx context.Context, id string) ([]byte, error) {
	return a.send(ctx, ProfileEndpoint(a.auth, id), nil, "get profile")
}

// Execute sends method to /services/data/vXX.X followed by path.
// body is sent verbatim when not nil.
func (a *API) Execute(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	if a.transport == nil {
		return nil, ErrNoTransport
	}
	data, err := a.transport.Do(ctx, ExecuteEndpoint(a.auth, method, path), body)
	if err != nil {
		return nil, fmt.Errorf("execute %s %s: %w", method, path, err)
	}
	return data, nil
}

// MemberURL returns the composite sub-request URL creating members of kind.
func (a *API) MemberURL(kind domain.ApexKind) string {
	return MemberURL(a.auth, kind)
}
