package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBatchRun_Duration(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	run := BatchRun{StartedAt: start}
	assert.Zero(t, run.Duration())

	run.FinishedAt = start.Add(9 * time.Second)
	assert.Equal(t, 9*time.Second, run.Duration())
}

func TestBuildReport_Failed(t *testing.T) {
	report := BuildReport{Batches: []BatchRun{
		{ID: "a", Stage: StageDone},
		{ID: "b", Stage: StageError},
		{ID: "c", Stage: StageAwaitingCompile},
	}}

	failed := report.Failed()

	assert.Len(t, failed, 2)
	assert.Equal(t, "b", failed[0].ID)
	assert.True(t, report.Batches[0].Succeeded())
}
