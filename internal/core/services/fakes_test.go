package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/custodia-labs/apexspec-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/apexspec-cli/internal/connectors/tooling"
	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

// fakeOrg answers Tooling API requests the way an org does for the
// container compile flow.
type fakeOrg struct {
	t *testing.T

	mu          sync.Mutex
	records     []domain.ApexRecord
	states      []domain.AsyncState
	errorMsg    string
	failMembers map[string]bool
	calls       []domain.Request
	polls       int
	containers  int
	composites  []domain.CompositeRequest
}

func newFakeOrg(t *testing.T, records []domain.ApexRecord, states ...domain.AsyncState) *fakeOrg {
	if len(states) == 0 {
		states = []domain.AsyncState{domain.AsyncStateCompleted}
	}
	return &fakeOrg{t: t, records: records, states: states, failMembers: map[string]bool{}}
}

func (o *fakeOrg) Do(_ context.Context, req domain.Request, body []byte) ([]byte, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, req)

	switch {
	case req.Method == http.MethodGet && (strings.Contains(req.Path, "+from+ApexClass+") || strings.Contains(req.Path, "+from+ApexTrigger+")):
		return json.Marshal(domain.QueryResult[domain.ApexRecord]{TotalSize: len(o.records), Done: true, Records: o.records})

	case req.Method == http.MethodPost && strings.HasSuffix(req.Path, "/sobjects/MetadataContainer"):
		o.containers++
		return []byte(fmt.Sprintf(`{"id":"1dc%03d","success":true,"errors":[]}`, o.containers)), nil

	case req.Method == http.MethodPost && strings.HasSuffix(req.Path, "/sobjects/ContainerAsyncRequest"):
		return []byte(`{"id":"1dr001","success":true,"errors":[]}`), nil

	case req.Method == http.MethodGet && strings.Contains(req.Path, "+from+ContainerAsyncRequest+"):
		state := o.states[min(o.polls, len(o.states)-1)]
		o.polls++
		return json.Marshal(domain.QueryResult[domain.ContainerAsyncRequest]{
			TotalSize: 1,
			Done:      true,
			Records: []domain.ContainerAsyncRequest{{
				ID:       "1dr001",
				State:    state,
				ErrorMsg: o.errorMsg,
			}},
		})

	case req.Method == http.MethodPost && strings.HasSuffix(req.Path, "/composite"):
		var composite domain.CompositeRequest
		if err := json.Unmarshal(body, &composite); err != nil {
			return nil, err
		}
		o.composites = append(o.composites, composite)
		return o.compositeResponse(composite)
	}

	o.t.Errorf("unexpected request %s %s", req.Method, req.Path)
	return nil, fmt.Errorf("unexpected request")
}

func (o *fakeOrg) compositeResponse(composite domain.CompositeRequest) ([]byte, error) {
	var resp domain.CompositeResponse
	for _, sub := range composite.CompositeRequest {
		switch sub.Method {
		case http.MethodPost:
			if o.failMembers[sub.ReferenceID] {
				resp.CompositeResponse = append(resp.CompositeResponse, domain.SubResponse{
					Body:           json.RawMessage(`[{"message":"bad body","errorCode":"INVALID_FIELD"}]`),
					HTTPStatusCode: http.StatusBadRequest,
					ReferenceID:    sub.ReferenceID,
				})
				continue
			}
			resp.CompositeResponse = append(resp.CompositeResponse, domain.SubResponse{
				Body:           json.RawMessage(`{"id":"401` + sub.ReferenceID + `","success":true,"errors":[]}`),
				HTTPHeaders:    domain.HTTPHeaders{Location: sub.URL + "m-" + sub.ReferenceID},
				HTTPStatusCode: http.StatusCreated,
				ReferenceID:    sub.ReferenceID,
			})
		case http.MethodGet:
			record := o.record(strings.TrimPrefix(path.Base(sub.URL), "m-"))
			member, err := json.Marshal(map[string]any{
				"Id":       "401" + record.ID,
				"FullName": record.Name,
				"SymbolTable": map[string]any{
					"name":      record.Name,
					"namespace": "",
					"methods":   []any{},
				},
			})
			if err != nil {
				return nil, err
			}
			resp.CompositeResponse = append(resp.CompositeResponse, domain.SubResponse{
				Body:           member,
				HTTPStatusCode: http.StatusOK,
				ReferenceID:    sub.ReferenceID,
			})
		}
	}
	return json.Marshal(resp)
}

func (o *fakeOrg) record(id string) domain.ApexRecord {
	for _, r := range o.records {
		if r.ID == id {
			return r
		}
	}
	o.t.Errorf("unknown record %s", id)
	return domain.ApexRecord{}
}

// pollCount is the number of ContainerAsyncRequest GETs.
func (o *fakeOrg) pollCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	for _, c := range o.calls {
		if c.Method == http.MethodGet && strings.Contains(c.Path, "ContainerAsyncRequest") {
			n++
		}
	}
	return n
}

func apexClasses(n int) []domain.ApexRecord {
	records := make([]domain.ApexRecord, n)
	for i := range records {
		name := fmt.Sprintf("Class%03d", i)
		records[i] = domain.ApexRecord{
			ID:              fmt.Sprintf("01p%03d", i),
			Name:            name,
			APIVersion:      52,
			Body:            "public class " + name + " {}",
			ManageableState: "unmanaged",
		}
	}
	return records
}

func testAuth() domain.Authorization {
	return domain.Authorization{
		AccessToken: "00Dtoken",
		InstanceURL: "https://example.my.salesforce.com",
		APIVersion:  "52.0",
	}
}

// testBuild bundles a builder with its in-memory collaborators.
type testBuild struct {
	builder *SpecBuilder
	archive *memory.Archive
	output  *memory.Archive
	runs    *memory.RunStore
	waits   []time.Duration
	clock   time.Time
}

func newTestBuild(org *fakeOrg, settings domain.AppSettings) *testBuild {
	tb := &testBuild{
		archive: memory.NewArchive(),
		output:  memory.NewArchive(),
		runs:    memory.NewRunStore(),
		clock:   time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	api := tooling.NewAPI(testAuth(), org)
	renderer := NewRenderer(tb.archive, tb.output, settings)

	tb.builder = NewSpecBuilder(api, tb.archive, tb.runs, renderer, settings)
	tb.builder.newName = func() string { return "0123456789abcdef0123456789abcdef" }
	tb.builder.wait = func(ctx context.Context, d time.Duration) error {
		tb.waits = append(tb.waits, d)
		tb.clock = tb.clock.Add(d)
		return ctx.Err()
	}
	tb.builder.now = func() time.Time { return tb.clock }
	return tb
}

func (tb *testBuild) symbolTableNames(kind domain.ApexKind) []string {
	files, _ := tb.archive.List(symbolTablesPath(kind))
	return files
}
