package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
	"github.com/weft-labs/sigscout-cli/internal/core/ports/driven"
)

// pipelineStore implements driven.PipelineStore.
type pipelineStore struct {
	store *Store
}

var _ driven.PipelineStore = (*pipelineStore)(nil)

const pipelineColumns = `id, raw_title, raw_source, raw_description,
	fetch_date, approved, signal_id, source`

// Insert persists a candidate and returns the materialized row. No
// dedup against existing rows: repeated fetches of the same upstream
// item create distinct rows.
func (s *pipelineStore) Insert(
	ctx context.Context, item domain.PipelineItem,
) (*domain.PipelineItem, error) {
	fetchDate := item.FetchDate
	if fetchDate.IsZero() {
		fetchDate = time.Now().UTC()
	}

	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO pipeline_items (raw_title, raw_source, raw_description,
			fetch_date, approved, signal_id, source)
		VALUES (?, ?, ?, ?, 0, NULL, ?)
	`, item.RawTitle, item.RawSource, item.RawDescription, fetchDate, item.Source)
	if err != nil {
		return nil, fmt.Errorf("inserting pipeline item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading inserted item id: %w", err)
	}

	return &domain.PipelineItem{
		ID:             id,
		RawTitle:       item.RawTitle,
		RawSource:      item.RawSource,
		RawDescription: item.RawDescription,
		FetchDate:      fetchDate,
		Approved:       false,
		SignalID:       nil,
		Source:         item.Source,
	}, nil
}

// ListPending returns unapproved items, newest first.
func (s *pipelineStore) ListPending(ctx context.Context) ([]domain.PipelineItem, error) {
	return s.queryItems(ctx, `
		SELECT `+pipelineColumns+` FROM pipeline_items
		WHERE approved = 0
		ORDER BY fetch_date DESC, id DESC
	`)
}

// ListPendingBySource is ListPending restricted to one source.
func (s *pipelineStore) ListPendingBySource(
	ctx context.Context, source string,
) ([]domain.PipelineItem, error) {
	return s.queryItems(ctx, `
		SELECT `+pipelineColumns+` FROM pipeline_items
		WHERE approved = 0 AND source = ?
		ORDER BY fetch_date DESC, id DESC
	`, source)
}

// Get returns one item by id.
func (s *pipelineStore) Get(ctx context.Context, id int64) (*domain.PipelineItem, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+pipelineColumns+` FROM pipeline_items WHERE id = ?
	`, id)

	var item domain.PipelineItem
	var signalID sql.NullInt64
	err := row.Scan(&item.ID, &item.RawTitle, &item.RawSource, &item.RawDescription,
		&item.FetchDate, &item.Approved, &signalID, &item.Source)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning pipeline item: %w", err)
	}
	if signalID.Valid {
		item.SignalID = &signalID.Int64
	}
	return &item, nil
}

// MarkApproved sets the approval flag and back-reference together.
func (s *pipelineStore) MarkApproved(ctx context.Context, id, signalID int64) error {
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE pipeline_items SET approved = 1, signal_id = ? WHERE id = ?
	`, signalID, id)
	if err != nil {
		return fmt.Errorf("approving pipeline item %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking approval of item %d: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an item regardless of approval state.
func (s *pipelineStore) Delete(ctx context.Context, id int64) error {
	res, err := s.store.db.ExecContext(ctx, `DELETE FROM pipeline_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting pipeline item %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete of item %d: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// queryItems runs a query and scans all rows.
func (s *pipelineStore) queryItems(
	ctx context.Context, query string, args ...any,
) ([]domain.PipelineItem, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying pipeline items: %w", err)
	}
	defer rows.Close()

	var items []domain.PipelineItem
	for rows.Next() {
		var item domain.PipelineItem
		var signalID sql.NullInt64
		err := rows.Scan(&item.ID, &item.RawTitle, &item.RawSource, &item.RawDescription,
			&item.FetchDate, &item.Approved, &signalID, &item.Source)
		if err != nil {
			return nil, fmt.Errorf("scanning pipeline item: %w", err)
		}
		if signalID.Valid {
			item.SignalID = &signalID.Int64
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pipeline items: %w", err)
	}
	return items, nil
}
