package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/apexspec-cli/internal/connectors/tooling"
	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

// recordingTransport returns body for every request.
type recordingTransport struct {
	requests []domain.Request
	bodies   [][]byte
	body     []byte
}

func (r *recordingTransport) Do(_ context.Context, req domain.Request, body []byte) ([]byte, error) {
	r.requests = append(r.requests, req)
	r.bodies = append(r.bodies, body)
	return r.body, nil
}

func newQueryService(limit int) (*QueryService, *recordingTransport) {
	rt := &recordingTransport{body: []byte(`{"records":[]}`)}
	return NewQueryService(tooling.NewAPI(testAuth(), rt), limit), rt
}

func TestQueryService_Records(t *testing.T) {
	service, rt := newQueryService(10)

	body, err := service.Records(context.Background(), domain.ApexKindTrigger)

	require.NoError(t, err)
	assert.JSONEq(t, `{"records":[]}`, string(body))
	require.Len(t, rt.requests, 1)
	assert.Contains(t, rt.requests[0].Path, "+from+ApexTrigger+order+by+Name+limit+10")
}

func TestQueryService_RecordsUnsupportedKind(t *testing.T) {
	service, rt := newQueryService(10)

	_, err := service.Records(context.Background(), domain.ApexKind(0))

	assert.ErrorIs(t, err, domain.ErrUnsupportedKind)
	assert.Empty(t, rt.requests)
}

func TestQueryService_Containers(t *testing.T) {
	service, rt := newQueryService(0)

	_, err := service.Containers(context.Background())

	require.NoError(t, err)
	assert.Contains(t, rt.requests[0].Path, "from+MetadataContainer+order+by+Name+limit+50000")
}

func TestQueryService_AsyncRequestAndProfile(t *testing.T) {
	service, rt := newQueryService(0)

	_, err := service.AsyncRequest(context.Background(), "1dr000000000001")
	require.NoError(t, err)
	_, err = service.Profile(context.Background(), "00e000000000001")
	require.NoError(t, err)

	require.Len(t, rt.requests, 2)
	assert.Contains(t, rt.requests[0].Path, "where+Id+=+'1dr000000000001'")
	assert.Equal(t, "/services/data/v52.0/tooling/sobjects/Profile/00e000000000001", rt.requests[1].Path)
}

func TestQueryService_RejectsBadIDs(t *testing.T) {
	service, rt := newQueryService(0)

	for _, id := range []string{"", "  ", "1dr'+or+Id+!=+'", "a/b"} {
		_, err := service.AsyncRequest(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, id)
	}
	_, err := service.Profile(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, rt.requests)
}

func TestQueryService_Execute(t *testing.T) {
	service, rt := newQueryService(0)

	_, err := service.Execute(context.Background(), "post", "/sobjects/Account", []byte(`{"Name":"Acme"}`))
	require.NoError(t, err)

	require.Len(t, rt.requests, 1)
	assert.Equal(t, http.MethodPost, rt.requests[0].Method)
	assert.Equal(t, "/services/data/v52.0/sobjects/Account", rt.requests[0].Path)
	assert.Equal(t, `{"Name":"Acme"}`, string(rt.bodies[0]))

	_, err = service.Execute(context.Background(), "DELETE", "/sobjects/Account/1", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
