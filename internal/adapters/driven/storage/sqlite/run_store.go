package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
	"github.com/custodia-labs/apexspec-cli/internal/core/ports/driven"
)

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const runColumns = `id, kind, batch, container_id, container_name, async_request_id,
	stage, state, error_msg, members, documents, started_at, finished_at`

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// Save creates or updates a run.
func (s *runStore) Save(ctx context.Context, run domain.BatchRun) error {
	if run.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO batch_runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			batch = excluded.batch,
			container_id = excluded.container_id,
			container_name = excluded.container_name,
			async_request_id = excluded.async_request_id,
			stage = excluded.stage,
			state = excluded.state,
			error_msg = excluded.error_msg,
			members = excluded.members,
			documents = excluded.documents,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at
	`, run.ID, int(run.Kind), run.Batch,
		nullString(run.ContainerID), nullString(run.ContainerName), nullString(run.AsyncRequestID),
		string(run.Stage), nullString(string(run.State)), nullString(run.ErrorMsg),
		run.Members, run.Documents,
		formatTime(run.StartedAt), formatNullableTime(run.FinishedAt))

	if err != nil {
		return fmt.Errorf("saving batch run: %w", err)
	}
	return nil
}

// Get retrieves a run by ID.
func (s *runStore) Get(ctx context.Context, id string) (*domain.BatchRun, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM batch_runs WHERE id = ?`, id)
	return scanRun(row)
}

// List returns the most recent runs first.
func (s *runStore) List(ctx context.Context, limit int) ([]domain.BatchRun, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+runColumns+` FROM batch_runs
		ORDER BY started_at DESC, batch DESC
		LIMIT ?
	`, sqlLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("querying batch runs: %w", err)
	}
	return scanRuns(rows)
}

// ListByKind returns the most recent runs of kind first.
func (s *runStore) ListByKind(ctx context.Context, kind domain.ApexKind, limit int) ([]domain.BatchRun, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+runColumns+` FROM batch_runs
		WHERE kind = ?
		ORDER BY started_at DESC, batch DESC
		LIMIT ?
	`, int(kind), sqlLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("querying batch runs: %w", err)
	}
	return scanRuns(rows)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.BatchRun, error) {
	var run domain.BatchRun
	var kind int
	var containerID, containerName, requestID, state, errMsg, finishedAt sql.NullString
	var stage, startedAt string

	err := row.Scan(&run.ID, &kind, &run.Batch, &containerID, &containerName, &requestID,
		&stage, &state, &errMsg, &run.Members, &run.Documents, &startedAt, &finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning batch run: %w", err)
	}

	run.Kind = domain.ApexKind(kind)
	run.ContainerID = containerID.String
	run.ContainerName = containerName.String
	run.AsyncRequestID = requestID.String
	run.Stage = domain.BuildStage(stage)
	run.State = domain.AsyncState(state.String)
	run.ErrorMsg = errMsg.String
	run.StartedAt = parseTime(startedAt)
	run.FinishedAt = parseNullableTime(finishedAt)

	return &run, nil
}

func scanRuns(rows *sql.Rows) ([]domain.BatchRun, error) {
	defer rows.Close()

	runs := make([]domain.BatchRun, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating batch runs: %w", err)
	}

	return runs, nil
}

// sqlLimit maps a non-positive limit to SQLite's "no limit".
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// formatNullableTime formats a time, or returns nil for zero time.
func formatNullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return formatTime(t)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// parseNullableTime returns zero time if the string is null or invalid.
func parseNullableTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	return parseTime(s.String)
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
