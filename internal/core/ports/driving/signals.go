package driving

import (
	"context"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
)

// SignalService manages the curated signal record set.
type SignalService interface {
	// Create validates the draft and persists a new signal.
	// Returns domain.ErrValidation before any store write when the
	// draft is invalid.
	Create(ctx context.Context, draft domain.SignalDraft) (*domain.Signal, error)

	// List returns all signals, newest first.
	List(ctx context.Context) ([]domain.Signal, error)

	// Get returns one signal by id.
	Get(ctx context.Context, id int64) (*domain.Signal, error)

	// Update validates the draft and replaces the signal's mutable
	// fields.
	Update(ctx context.Context, id int64, draft domain.SignalDraft) (*domain.Signal, error)

	// Delete removes a signal. Approved pipeline items referencing it
	// keep their back-reference; resolving a deleted id yields
	// domain.ErrNotFound.
	Delete(ctx context.Context, id int64) error

	// Search matches the query against title, source context and
	// rationale.
	Search(ctx context.Context, query string) ([]domain.Signal, error)

	// FilterByTag returns the signals carrying the exact tag.
	FilterByTag(ctx context.Context, tag string) ([]domain.Signal, error)

	// Tags returns the tag vocabulary across all signals.
	Tags(ctx context.Context) ([]string, error)
}
