package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
	"github.com/custodia-labs/apexspec-cli/internal/core/ports/driving"
)

type mockSpecService struct {
	report *domain.BuildReport
	err    error
	kinds  []domain.ApexKind
}

func (m *mockSpecService) Build(_ context.Context, kind domain.ApexKind) (*domain.BuildReport, error) {
	m.kinds = append(m.kinds, kind)
	return m.report, m.err
}

type renderCall struct {
	kind  domain.ApexKind
	names []string
}

type mockRenderService struct {
	paths []string
	err   error
	dir   string
	calls []renderCall
	done  chan struct{}
}

func (m *mockRenderService) Render(_ context.Context, kind domain.ApexKind, names []string) ([]string, error) {
	m.calls = append(m.calls, renderCall{kind: kind, names: names})
	if m.done != nil {
		m.done <- struct{}{}
	}
	return m.paths, m.err
}

func (m *mockRenderService) SymbolTableDir(domain.ApexKind) string {
	return m.dir
}

type mockQueryService struct {
	body   []byte
	err    error
	called string
	args   []string
}

func (m *mockQueryService) Records(_ context.Context, kind domain.ApexKind) ([]byte, error) {
	m.called = "records"
	m.args = []string{kind.String()}
	return m.body, m.err
}

func (m *mockQueryService) Containers(context.Context) ([]byte, error) {
	m.called = "containers"
	return m.body, m.err
}

func (m *mockQueryService) AsyncRequest(_ context.Context, id string) ([]byte, error) {
	m.called = "async"
	m.args = []string{id}
	return m.body, m.err
}

func (m *mockQueryService) Profile(_ context.Context, id string) ([]byte, error) {
	m.called = "profile"
	m.args = []string{id}
	return m.body, m.err
}

func (m *mockQueryService) Execute(_ context.Context, method, path string, body []byte) ([]byte, error) {
	m.called = "execute"
	m.args = []string{method, path, string(body)}
	return m.body, m.err
}

type mockRunService struct {
	runs  []domain.BatchRun
	err   error
	kind  domain.ApexKind
	limit int
}

func (m *mockRunService) Recent(_ context.Context, kind domain.ApexKind, limit int) ([]domain.BatchRun, error) {
	m.kind = kind
	m.limit = limit
	return m.runs, m.err
}

type mockSettingsService struct {
	settings domain.AppSettings
	setErr   error
	set      map[string]string
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.set == nil {
		m.set = make(map[string]string)
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"paths.output", "salesforce.instance_url"}
}

// withServices swaps in the given services and disables wiring for the test.
func withServices(
	t *testing.T,
	spec driving.SpecService,
	render driving.RenderService,
	query driving.QueryService,
	runs driving.RunService,
	settings driving.SettingsService,
) {
	t.Helper()
	oldConfigure := configure
	oldSpec, oldRender, oldQuery, oldRuns, oldSettings := specService, renderService, queryService, runService, settingsService
	oldAPIErr := apiErr

	configure = func(*cobra.Command) error { return nil }
	specService, renderService, queryService, runService, settingsService = spec, render, query, runs, settings
	apiErr = nil

	t.Cleanup(func() {
		configure = oldConfigure
		specService, renderService, queryService, runService, settingsService = oldSpec, oldRender, oldQuery, oldRuns, oldSettings
		apiErr = oldAPIErr
	})
}

// executeCommand runs rootCmd with args and returns the combined output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	renderWatch = false
	executeMethod = "GET"
	executeData = ""
	runsKind = ""
	runsLimit = 0

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
