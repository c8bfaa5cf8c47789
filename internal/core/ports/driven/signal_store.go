package driven

import (
	"context"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
)

// SignalStore persists curated signals and owns tag vocabulary
// derivation. Writes are serialized by the implementation.
type SignalStore interface {
	// Create inserts a signal from the draft, stamps DateCreated and
	// returns the fully materialized row in a single operation.
	// Draft validation is the caller's concern, not the store's.
	Create(ctx context.Context, draft domain.SignalDraft) (*domain.Signal, error)

	// List returns all signals ordered by DateCreated descending.
	List(ctx context.Context) ([]domain.Signal, error)

	// Get returns the signal with the given id.
	// Returns domain.ErrNotFound if no row matches.
	Get(ctx context.Context, id int64) (*domain.Signal, error)

	// Update replaces the mutable fields (title, source context,
	// rationale, tags, follow-up flag, notes) and returns the updated
	// row. DateCreated is never touched.
	// Returns domain.ErrNotFound if no row matches.
	Update(ctx context.Context, id int64, draft domain.SignalDraft) (*domain.Signal, error)

	// Delete removes the signal.
	// Returns domain.ErrNotFound if no row matches.
	Delete(ctx context.Context, id int64) error

	// Search returns signals whose title, source context or rationale
	// contains the query (case-insensitive substring, OR semantics),
	// ordered by DateCreated descending.
	Search(ctx context.Context, query string) ([]domain.Signal, error)

	// FilterByTag returns signals whose tag set contains the exact
	// tag, ordered by DateCreated descending.
	FilterByTag(ctx context.Context, tag string) ([]domain.Signal, error)

	// ListTags returns the deduplicated union of every signal's tags.
	// Order is unspecified.
	ListTags(ctx context.Context) ([]string, error)
}
