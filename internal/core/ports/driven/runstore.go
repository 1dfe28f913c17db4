package driven

import (
	"context"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

// RunStore persists batch runs.
type RunStore interface {
	// Save creates or updates a run.
	Save(ctx context.Context, run domain.BatchRun) error

	// Get retrieves a run by ID.
	// Returns domain.ErrNotFound if the run does not exist.
	Get(ctx context.Context, id string) (*domain.BatchRun, error)

	// List returns the most recent runs first, at most limit.
	List(ctx context.Context, limit int) ([]domain.BatchRun, error)

	// ListByKind returns the most recent runs of one kind.
	ListByKind(ctx context.Context, kind domain.ApexKind, limit int) ([]domain.BatchRun, error)
}
