package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
	"github.com/weft-labs/sigscout-cli/internal/core/ports/driven"
)

// signalStore implements driven.SignalStore.
type signalStore struct {
	store *Store
}

var _ driven.SignalStore = (*signalStore)(nil)

const signalColumns = `id, title, source_context, why_it_matters, date_created,
	follow_up_needed, notes, category_tags`

// Create inserts a signal and returns the materialized row without a
// follow-up read.
func (s *signalStore) Create(ctx context.Context, draft domain.SignalDraft) (*domain.Signal, error) {
	tags, err := marshalTags(draft.CategoryTags)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO signals (title, source_context, why_it_matters, date_created,
			follow_up_needed, notes, category_tags)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, draft.Title, draft.SourceContext, draft.WhyItMatters, now,
		draft.FollowUpNeeded, draft.Notes, tags)
	if err != nil {
		return nil, fmt.Errorf("inserting signal: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading inserted signal id: %w", err)
	}

	return &domain.Signal{
		ID:             id,
		Title:          draft.Title,
		SourceContext:  draft.SourceContext,
		WhyItMatters:   draft.WhyItMatters,
		DateCreated:    now,
		FollowUpNeeded: draft.FollowUpNeeded,
		Notes:          draft.Notes,
		CategoryTags:   append([]string(nil), draft.CategoryTags...),
	}, nil
}

// List returns all signals, newest first.
func (s *signalStore) List(ctx context.Context) ([]domain.Signal, error) {
	return s.querySignals(ctx, `
		SELECT `+signalColumns+` FROM signals
		ORDER BY date_created DESC, id DESC
	`)
}

// Get returns one signal by id.
func (s *signalStore) Get(ctx context.Context, id int64) (*domain.Signal, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+signalColumns+` FROM signals WHERE id = ?
	`, id)

	signal, err := scanSignal(row)
	if err != nil {
		return nil, err
	}
	return signal, nil
}

// Update replaces the mutable fields; date_created is never written.
func (s *signalStore) Update(
	ctx context.Context, id int64, draft domain.SignalDraft,
) (*domain.Signal, error) {
	tags, err := marshalTags(draft.CategoryTags)
	if err != nil {
		return nil, err
	}

	res, err := s.store.db.ExecContext(ctx, `
		UPDATE signals
		SET title = ?, source_context = ?, why_it_matters = ?,
			category_tags = ?, follow_up_needed = ?, notes = ?
		WHERE id = ?
	`, draft.Title, draft.SourceContext, draft.WhyItMatters,
		tags, draft.FollowUpNeeded, draft.Notes, id)
	if err != nil {
		return nil, fmt.Errorf("updating signal %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking update of signal %d: %w", id, err)
	}
	if affected == 0 {
		return nil, domain.ErrNotFound
	}

	return s.Get(ctx, id)
}

// Delete removes a signal. Approved pipeline items keep their weak
// back-reference; nothing cascades.
func (s *signalStore) Delete(ctx context.Context, id int64) error {
	res, err := s.store.db.ExecContext(ctx, `DELETE FROM signals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting signal %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete of signal %d: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search matches the query against title, source context and rationale.
// SQLite LIKE is case-insensitive for ASCII, matching the intended
// semantics.
func (s *signalStore) Search(ctx context.Context, query string) ([]domain.Signal, error) {
	pattern := "%" + query + "%"
	return s.querySignals(ctx, `
		SELECT `+signalColumns+` FROM signals
		WHERE title LIKE ? OR source_context LIKE ? OR why_it_matters LIKE ?
		ORDER BY date_created DESC, id DESC
	`, pattern, pattern, pattern)
}

// FilterByTag returns signals whose tag set contains the exact tag.
// Tags live in a JSON text column, so the filter runs over the decoded
// rows rather than in SQL.
func (s *signalStore) FilterByTag(ctx context.Context, tag string) ([]domain.Signal, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var out []domain.Signal
	for i := range all {
		if all[i].HasTag(tag) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

// ListTags returns the deduplicated union of every signal's tags.
func (s *signalStore) ListTags(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, `SELECT category_tags FROM signals`)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	var tags []string
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning tags: %w", err)
		}
		var rowTags []string
		if err := json.Unmarshal([]byte(raw), &rowTags); err != nil {
			return nil, fmt.Errorf("decoding tags: %w", err)
		}
		for _, tag := range rowTags {
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				tags = append(tags, tag)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	return tags, nil
}

// querySignals runs a query and scans all rows.
func (s *signalStore) querySignals(
	ctx context.Context, query string, args ...any,
) ([]domain.Signal, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying signals: %w", err)
	}
	defer rows.Close()

	var signals []domain.Signal
	for rows.Next() {
		signal, err := scanSignalRows(rows)
		if err != nil {
			return nil, err
		}
		signals = append(signals, *signal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating signals: %w", err)
	}
	return signals, nil
}

// scanSignal scans a single-row query result.
func scanSignal(row *sql.Row) (*domain.Signal, error) {
	var s domain.Signal
	var rawTags string
	err := row.Scan(&s.ID, &s.Title, &s.SourceContext, &s.WhyItMatters,
		&s.DateCreated, &s.FollowUpNeeded, &s.Notes, &rawTags)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning signal: %w", err)
	}
	if err := json.Unmarshal([]byte(rawTags), &s.CategoryTags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}
	return &s, nil
}

// scanSignalRows scans the current row of a multi-row result.
func scanSignalRows(rows *sql.Rows) (*domain.Signal, error) {
	var s domain.Signal
	var rawTags string
	err := rows.Scan(&s.ID, &s.Title, &s.SourceContext, &s.WhyItMatters,
		&s.DateCreated, &s.FollowUpNeeded, &s.Notes, &rawTags)
	if err != nil {
		return nil, fmt.Errorf("scanning signal: %w", err)
	}
	if err := json.Unmarshal([]byte(rawTags), &s.CategoryTags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}
	return &s, nil
}

// marshalTags encodes the tag set for the JSON text column. A nil
// slice is stored as an empty array.
func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encoding tags: %w", err)
	}
	return string(data), nil
}
