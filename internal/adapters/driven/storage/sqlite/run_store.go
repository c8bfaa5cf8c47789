package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
	"github.com/weft-labs/sigscout-cli/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// RecordRun persists one fetch run record.
func (s *runStore) RecordRun(ctx context.Context, run *domain.FetchRun) error {
	if run == nil {
		return domain.ErrInvalidInput
	}

	perSource := run.PerSource
	if perSource == nil {
		perSource = map[string]int{}
	}
	encoded, err := json.Marshal(perSource)
	if err != nil {
		return fmt.Errorf("encoding per-source counts: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO fetch_runs (id, started_at, ended_at, per_source,
			total_fetched, total_saved, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt, run.EndedAt, string(encoded),
		run.TotalFetched, run.TotalSaved, run.Error)
	if err != nil {
		return fmt.Errorf("inserting fetch run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *runStore) ListRuns(ctx context.Context, limit int) ([]domain.FetchRun, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, started_at, ended_at, per_source, total_fetched, total_saved, error
		FROM fetch_runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying fetch runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.FetchRun
	for rows.Next() {
		var run domain.FetchRun
		var perSource string
		err := rows.Scan(&run.ID, &run.StartedAt, &run.EndedAt, &perSource,
			&run.TotalFetched, &run.TotalSaved, &run.Error)
		if err != nil {
			return nil, fmt.Errorf("scanning fetch run: %w", err)
		}
		if err := json.Unmarshal([]byte(perSource), &run.PerSource); err != nil {
			return nil, fmt.Errorf("decoding per-source counts: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating fetch runs: %w", err)
	}
	return runs, nil
}

// PruneRuns deletes all but the most recent keep records.
func (s *runStore) PruneRuns(ctx context.Context, keep int) error {
	if keep <= 0 {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM fetch_runs
		WHERE id NOT IN (
			SELECT id FROM fetch_runs ORDER BY started_at DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning fetch runs: %w", err)
	}
	return nil
}
