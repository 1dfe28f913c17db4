package domain

import "time"

// BuildStage is a step of one container/compile cycle.
type BuildStage string

// Stages of a batch, in order.
const (
	StageCreatingContainer BuildStage = "creating_container"
	StageCreatingMembers   BuildStage = "creating_members"
	StageAwaitingCompile   BuildStage = "awaiting_compile"
	StageRetrievingSymbols BuildStage = "retrieving_symbols"
	StageRendering         BuildStage = "rendering"
	StageDone              BuildStage = "done"
	StageError             BuildStage = "error"
)

// BatchRun records one chunk of members taken through a container compile.
type BatchRun struct {
	// ID is the unique identifier for the run.
	ID string

	// Kind is the Apex kind of every member in the batch.
	Kind ApexKind

	// Batch is the zero-based chunk index within the build.
	Batch int

	// ContainerID is the MetadataContainer Id.
	ContainerID string

	// ContainerName is the generated container name.
	ContainerName string

	// AsyncRequestID is the ContainerAsyncRequest Id.
	AsyncRequestID string

	// Stage is the last stage reached.
	Stage BuildStage

	// State is the last observed compile state.
	State AsyncState

	// ErrorMsg holds the failure, if any.
	ErrorMsg string

	// Members is the number of records submitted.
	Members int

	// Documents is the number of documents rendered.
	Documents int

	// StartedAt is when the batch started.
	StartedAt time.Time

	// FinishedAt is when the batch ended, zero while running.
	FinishedAt time.Time
}

// Succeeded returns true if the batch reached StageDone.
func (r BatchRun) Succeeded() bool {
	return r.Stage == StageDone
}

// Duration returns how long the batch took, zero while running.
func (r BatchRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// BuildReport summarises a build over all batches of one kind.
type BuildReport struct {
	Kind      ApexKind
	Retrieved int
	Skipped   int
	Batches   []BatchRun
	Documents []string
}

// Failed returns the batches that did not finish.
func (r BuildReport) Failed() []BatchRun {
	var out []BatchRun
	for _, b := range r.Batches {
		if !b.Succeeded() {
			out = append(out, b)
		}
	}
	return out
}
