package services

import (
	"context"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
	"github.com/custodia-labs/apexspec-cli/internal/core/ports/driven"
	"github.com/custodia-labs/apexspec-cli/internal/core/ports/driving"
)

// Ensure RunService implements the interface.
var _ driving.RunService = (*RunService)(nil)

// DefaultRunLimit is used when no positive limit is given.
const DefaultRunLimit = 20

// RunService reads the batch ledger.
type RunService struct {
	store driven.RunStore
}

// NewRunService creates a run service.
func NewRunService(store driven.RunStore) *RunService {
	return &RunService{store: store}
}

// Recent returns the latest runs, newest first.
func (s *RunService) Recent(ctx context.Context, kind domain.ApexKind, limit int) ([]domain.BatchRun, error) {
	if limit <= 0 {
		limit = DefaultRunLimit
	}
	if kind == 0 {
		return s.store.List(ctx, limit)
	}
	if !kind.IsValid() {
		return nil, domain.ErrUnsupportedKind
	}
	return s.store.ListByKind(ctx, kind, limit)
}
