package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
	"github.com/custodia-labs/apexspec-cli/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
type RunStore struct {
	mu    sync.RWMutex
	runs  map[string]domain.BatchRun
	saves int
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs: make(map[string]domain.BatchRun),
	}
}

// Save stores or updates a run.
func (s *RunStore) Save(_ context.Context, run domain.BatchRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	s.saves++
	return nil
}

// Get retrieves a run by ID.
func (s *RunStore) Get(_ context.Context, id string) (*domain.BatchRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

// List returns the most recent runs first.
func (s *RunStore) List(ctx context.Context, limit int) ([]domain.BatchRun, error) {
	return s.ListByKind(ctx, 0, limit)
}

// ListByKind returns the most recent runs of kind first.
// A zero kind matches every run.
func (s *RunStore) ListByKind(_ context.Context, kind domain.ApexKind, limit int) ([]domain.BatchRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.BatchRun, 0, len(s.runs))
	for _, run := range s.runs {
		if kind == 0 || run.Kind == kind {
			result = append(result, run)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartedAt.Equal(result[j].StartedAt) {
			return result[i].StartedAt.After(result[j].StartedAt)
		}
		return result[i].Batch > result[j].Batch
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Saves returns how many times Save was called.
func (s *RunStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
