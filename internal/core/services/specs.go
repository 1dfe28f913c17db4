package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
	"github.com/custodia-labs/apexspec-cli/internal/core/ports/driven"
	"github.com/custodia-labs/apexspec-cli/internal/core/ports/driving"
	"github.com/custodia-labs/apexspec-cli/internal/logger"
)

// Ensure SpecBuilder implements the interface.
var _ driving.SpecService = (*SpecBuilder)(nil)

// SpecBuilder takes Apex members through MetadataContainer compiles to
// obtain their symbol tables and renders a document per member.
//
// Members are processed in chunks of domain.MemberBatchSize. Each chunk
// runs the stages creating container, creating members, awaiting compile,
// retrieving symbols and rendering, and finishes before the next starts.
type SpecBuilder struct {
	api      driven.ToolingAPI
	archive  driven.Archive
	runs     driven.RunStore
	renderer driving.RenderService
	settings domain.AppSettings

	newName func() string
	newID   func() string
	wait    func(ctx context.Context, d time.Duration) error
	now     func() time.Time
}

// NewSpecBuilder creates a spec builder.
// The run store is optional - if nil, batches are not recorded.
func NewSpecBuilder(
	api driven.ToolingAPI,
	archive driven.Archive,
	runs driven.RunStore,
	renderer driving.RenderService,
	settings domain.AppSettings,
) *SpecBuilder {
	return &SpecBuilder{
		api:      api,
		archive:  archive,
		runs:     runs,
		renderer: renderer,
		settings: settings,
		newName:  containerName,
		newID:    uuid.NewString,
		wait:     sleep,
		now:      time.Now,
	}
}

// containerName is 32 hex characters, the MetadataContainer name limit.
func containerName() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Stage inputs. Each stage receives the previous stage's value and
// returns a new one.
type (
	batchInput struct {
		kind    domain.ApexKind
		index   int
		records []domain.ApexRecord
	}

	containerReady struct {
		batchInput
		containerID   string
		containerName string
	}

	membersStaged struct {
		containerReady
		members []domain.StagedMember
	}

	compileDone struct {
		membersStaged
		request domain.ContainerAsyncRequest
	}

	symbolsRetrieved struct {
		compileDone
		names []string
	}
)

// Build retrieves every record of kind, skips managed ones and runs the
// remaining records through container compiles in batches.
func (b *SpecBuilder) Build(ctx context.Context, kind domain.ApexKind) (*domain.BuildReport, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedKind, kind)
	}

	logger.Section(fmt.Sprintf("Building %s specs", kind))

	// 1. Retrieve and archive records
	all, err := b.retrieveRecords(ctx, kind)
	if err != nil {
		return nil, err
	}
	records := domain.FilterUnmanaged(all)

	report := &domain.BuildReport{
		Kind:      kind,
		Retrieved: len(all),
		Skipped:   len(all) - len(records),
	}
	logger.Info("Retrieved %d %s records, %d managed skipped", report.Retrieved, kind, report.Skipped)

	// 2. Compile and render each chunk in turn
	for i, chunk := range chunkRecords(records, domain.MemberBatchSize) {
		run, docs, err := b.runBatch(ctx, batchInput{kind: kind, index: i, records: chunk})
		report.Batches = append(report.Batches, run)
		report.Documents = append(report.Documents, docs...)
		if err != nil {
			return report, fmt.Errorf("batch %d: %w", i, err)
		}
	}

	return report, nil
}

func (b *SpecBuilder) retrieveRecords(ctx context.Context, kind domain.ApexKind) ([]domain.ApexRecord, error) {
	body, err := b.api.QueryApex(ctx, kind, b.settings.Query.Limit)
	if err != nil {
		return nil, fmt.Errorf("retrieve records: %w", err)
	}
	if err := b.archive.WriteText(recordsPath(kind), prettyJSON(body)); err != nil {
		return nil, fmt.Errorf("archive records: %w", err)
	}
	result, err := decodeQuery[domain.ApexRecord](body, false)
	if err != nil {
		return nil, fmt.Errorf("retrieve records: %w", err)
	}
	return result.Records, nil
}

func (b *SpecBuilder) runBatch(ctx context.Context, in batchInput) (domain.BatchRun, []string, error) {
	logger.Section(fmt.Sprintf("Batch %d: %d members", in.index, len(in.records)))

	run := domain.BatchRun{
		ID:        b.newID(),
		Kind:      in.kind,
		Batch:     in.index,
		Members:   len(in.records),
		Stage:     domain.StageCreatingContainer,
		StartedAt: b.now(),
	}
	b.record(ctx, run)

	fail := func(err error) (domain.BatchRun, []string, error) {
		logger.Warn("Batch %d failed while %s: %v", in.index, run.Stage, err)
		run.ErrorMsg = fmt.Sprintf("%s: %v", run.Stage, err)
		run.Stage = domain.StageError
		run.FinishedAt = b.now()
		b.record(context.WithoutCancel(ctx), run)
		return run, nil, err
	}

	container, err := b.createContainer(ctx, in)
	if err != nil {
		return fail(err)
	}
	run.ContainerID = container.containerID
	run.ContainerName = container.containerName
	run.Stage = domain.StageCreatingMembers
	b.record(ctx, run)

	staged, err := b.createMembers(ctx, container)
	if err != nil {
		return fail(err)
	}
	run.Stage = domain.StageAwaitingCompile
	b.record(ctx, run)

	compiled, err := b.awaitCompile(ctx, staged, func(req domain.ContainerAsyncRequest) {
		run.AsyncRequestID = req.ID
		run.State = req.State
	})
	if err != nil {
		return fail(err)
	}
	run.Stage = domain.StageRetrievingSymbols
	b.record(ctx, run)

	symbols, err := b.retrieveSymbols(ctx, compiled)
	if err != nil {
		return fail(err)
	}
	run.Stage = domain.StageRendering
	b.record(ctx, run)

	docs, err := b.render(ctx, symbols)
	if err != nil {
		return fail(err)
	}

	run.Documents = len(docs)
	run.Stage = domain.StageDone
	run.FinishedAt = b.now()
	b.record(ctx, run)
	logger.Info("Batch %d done: %d documents", in.index, len(docs))

	return run, docs, nil
}

// createContainer creates a uniquely named MetadataContainer.
func (b *SpecBuilder) createContainer(ctx context.Context, in batchInput) (containerReady, error) {
	name := b.newName()
	body, err := b.api.CreateMetadataContainer(ctx, name)
	if err != nil {
		return containerReady{}, fmt.Errorf("create container: %w", err)
	}
	if err := b.archiveLog(in, "container", body); err != nil {
		return containerReady{}, err
	}

	id, err := decodeCreateResult(body)
	if err != nil {
		return containerReady{}, fmt.Errorf("create container: %w", err)
	}
	logger.Debug("Created container %s (%s)", name, id)

	return containerReady{batchInput: in, containerID: id, containerName: name}, nil
}

// createMembers stages every record of the batch in one composite call.
// Failed sub-requests are logged and skipped.
func (b *SpecBuilder) createMembers(ctx context.Context, in containerReady) (membersStaged, error) {
	memberURL := b.api.MemberURL(in.kind)

	req := domain.CompositeRequest{CompositeRequest: make([]domain.SubRequest, 0, len(in.records))}
	for _, r := range in.records {
		req.CompositeRequest = append(req.CompositeRequest, domain.SubRequest{
			Method:      http.MethodPost,
			URL:         memberURL,
			ReferenceID: r.ID,
			Body: domain.MemberBody{
				Body:                r.Body,
				MetadataContainerID: in.containerID,
				ContentEntityID:     r.ID,
			},
		})
	}

	body, err := b.api.Composite(ctx, req)
	if err != nil {
		return membersStaged{}, fmt.Errorf("create members: %w", err)
	}
	if err := b.archiveLog(in.batchInput, "members", body); err != nil {
		return membersStaged{}, err
	}

	resp, err := decodeComposite(body)
	if err != nil {
		return membersStaged{}, fmt.Errorf("create members: %w", err)
	}

	staged := make([]domain.StagedMember, 0, len(resp.CompositeResponse))
	for _, sub := range resp.CompositeResponse {
		if !sub.OK() {
			logger.Warn("Skipping member %s: status %d: %s", sub.ReferenceID, sub.HTTPStatusCode, string(sub.Body))
			continue
		}
		location := sub.HTTPHeaders.Location
		if location == "" {
			id, err := decodeCreateResult(sub.Body)
			if err != nil {
				logger.Warn("Skipping member %s: %v", sub.ReferenceID, err)
				continue
			}
			location = memberURL + id
		}
		staged = append(staged, domain.StagedMember{RecordID: sub.ReferenceID, Location: location})
	}
	if len(staged) == 0 {
		return membersStaged{}, fmt.Errorf("create members: %w: no member was created", domain.ErrUnexpectedResponse)
	}
	logger.Debug("Staged %d of %d members", len(staged), len(in.records))

	return membersStaged{containerReady: in, members: staged}, nil
}

// awaitCompile starts a check-only compile and polls it until Completed.
// observe is called with every polled state.
func (b *SpecBuilder) awaitCompile(ctx context.Context, in membersStaged, observe func(domain.ContainerAsyncRequest)) (compileDone, error) {
	body, err := b.api.CreateContainerAsyncRequest(ctx, in.containerID, true)
	if err != nil {
		return compileDone{}, fmt.Errorf("create async request: %w", err)
	}
	if err := b.archiveLog(in.batchInput, "async-request", body); err != nil {
		return compileDone{}, err
	}
	id, err := decodeCreateResult(body)
	if err != nil {
		return compileDone{}, fmt.Errorf("create async request: %w", err)
	}

	poll := b.settings.Poll
	var deadline time.Time
	if poll.Timeout > 0 {
		deadline = b.now().Add(poll.Timeout)
	}

	for attempt := 1; ; attempt++ {
		body, err := b.api.QueryContainerAsyncRequest(ctx, id)
		if err != nil {
			return compileDone{}, fmt.Errorf("poll async request: %w", err)
		}
		if err := b.archiveLog(in.batchInput, fmt.Sprintf("poll-%03d", attempt), body); err != nil {
			return compileDone{}, err
		}
		req, err := decodeAsyncRequest(body)
		if err != nil {
			return compileDone{}, fmt.Errorf("poll async request: %w", err)
		}
		observe(*req)
		logger.Info("Compile %s: %s", id, req.State)

		if req.ErrorMsg != "" || req.State.IsFailure() {
			compileErr := &domain.CompileError{RequestID: id, State: req.State, Message: req.ErrorMsg}
			if !poll.ContinueOnError || req.State.IsFailure() {
				return compileDone{}, compileErr
			}
			logger.Warn("%v", compileErr)
		}
		if req.State == domain.AsyncStateCompleted {
			return compileDone{membersStaged: in, request: *req}, nil
		}

		if !deadline.IsZero() && !b.now().Before(deadline) {
			return compileDone{}, fmt.Errorf("%w: async request %s still %s after %s", domain.ErrPollTimeout, id, req.State, poll.Timeout)
		}
		if err := b.wait(ctx, poll.Interval); err != nil {
			return compileDone{}, fmt.Errorf("poll async request: %w", err)
		}
	}
}

// retrieveSymbols reads every staged member in one composite call and
// archives its symbol table under the member's full name.
func (b *SpecBuilder) retrieveSymbols(ctx context.Context, in compileDone) (symbolsRetrieved, error) {
	req := domain.CompositeRequest{CompositeRequest: make([]domain.SubRequest, 0, len(in.members))}
	for _, m := range in.members {
		req.CompositeRequest = append(req.CompositeRequest, domain.SubRequest{
			Method:      http.MethodGet,
			URL:         m.Location,
			ReferenceID: m.RecordID,
		})
	}

	body, err := b.api.Composite(ctx, req)
	if err != nil {
		return symbolsRetrieved{}, fmt.Errorf("retrieve symbols: %w", err)
	}
	if err := b.archiveLog(in.batchInput, "symbols", body); err != nil {
		return symbolsRetrieved{}, err
	}
	resp, err := decodeComposite(body)
	if err != nil {
		return symbolsRetrieved{}, fmt.Errorf("retrieve symbols: %w", err)
	}

	names := make([]string, 0, len(resp.CompositeResponse))
	for _, sub := range resp.CompositeResponse {
		if !sub.OK() {
			logger.Warn("Skipping symbols of %s: status %d: %s", sub.ReferenceID, sub.HTTPStatusCode, string(sub.Body))
			continue
		}
		member, err := decodeMemberSymbols(sub.Body)
		if err != nil {
			logger.Warn("Skipping symbols of %s: %v", sub.ReferenceID, err)
			continue
		}
		if err := b.archive.WriteText(symbolTablePath(in.kind, member.FullName), prettyJSON(member.SymbolTable)); err != nil {
			return symbolsRetrieved{}, fmt.Errorf("archive symbol table %s: %w", member.FullName, err)
		}
		names = append(names, member.FullName)
	}
	logger.Debug("Retrieved %d symbol tables", len(names))

	return symbolsRetrieved{compileDone: in, names: names}, nil
}

func (b *SpecBuilder) render(ctx context.Context, in symbolsRetrieved) ([]string, error) {
	if len(in.names) == 0 {
		return nil, nil
	}
	docs, err := b.renderer.Render(ctx, in.kind, in.names)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return docs, nil
}

func (b *SpecBuilder) archiveLog(in batchInput, step string, body []byte) error {
	if err := b.archive.WriteText(logPath(in.kind, in.index, step), prettyJSON(body)); err != nil {
		return fmt.Errorf("archive %s: %w", step, err)
	}
	return nil
}

// record saves the run. Ledger failures never stop a build.
func (b *SpecBuilder) record(ctx context.Context, run domain.BatchRun) {
	if b.runs == nil {
		return
	}
	if err := b.runs.Save(ctx, run); err != nil {
		logger.Warn("Failed to record batch %d: %v", run.Batch, err)
	}
}

func chunkRecords(records []domain.ApexRecord, size int) [][]domain.ApexRecord {
	var chunks [][]domain.ApexRecord
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		chunks = append(chunks, records[start:end])
	}
	return chunks
}
