package driven

import (
	"context"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
)

// PipelineStore persists pending candidate items and their approval
// state. It performs no deduplication: repeated fetches of the same
// upstream item create distinct rows.
type PipelineStore interface {
	// Insert persists a candidate and returns the materialized row.
	// The item's ID and Approved fields are ignored on input; a zero
	// FetchDate defaults to the current time.
	Insert(ctx context.Context, item domain.PipelineItem) (*domain.PipelineItem, error)

	// ListPending returns unapproved items ordered by FetchDate
	// descending.
	ListPending(ctx context.Context) ([]domain.PipelineItem, error)

	// ListPendingBySource is ListPending restricted to one source.
	ListPendingBySource(ctx context.Context, source string) ([]domain.PipelineItem, error)

	// Get returns the item with the given id.
	// Returns domain.ErrNotFound if no row matches.
	Get(ctx context.Context, id int64) (*domain.PipelineItem, error)

	// MarkApproved sets Approved and the signal back-reference
	// together. Returns domain.ErrNotFound if no row matches; the
	// store is left unchanged in that case.
	MarkApproved(ctx context.Context, id, signalID int64) error

	// Delete removes the item regardless of approval state.
	// Returns domain.ErrNotFound if no row matches.
	Delete(ctx context.Context, id int64) error
}
