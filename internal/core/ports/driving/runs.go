package driving

import (
	"context"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

// RunService reads the batch history.
type RunService interface {
	// Recent returns the latest runs, optionally filtered by kind.
	// A zero kind returns runs of every kind.
	Recent(ctx context.Context, kind domain.ApexKind, limit int) ([]domain.BatchRun, error)
}
