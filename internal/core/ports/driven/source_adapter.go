package driven

import (
	"context"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
)

// SourceAdapter fetches candidate items from one external source.
// Each source type (hackernews, github, apple) implements this
// interface and maps its bespoke response shape into RawItem.
type SourceAdapter interface {
	// Source returns the source identifier the adapter serves.
	Source() string

	// Fetch returns at most limit items in upstream response order.
	// A limit of zero or less returns an empty slice without any
	// network call. Implementations enforce a bounded timeout on
	// every request; transport, parse and rate-limit failures are
	// returned as ordinary errors for the orchestrator to absorb.
	Fetch(ctx context.Context, limit int) ([]domain.RawItem, error)
}

// AdapterRegistry resolves source identifiers to adapters. Adding a
// source registers a new adapter; orchestration code never names a
// concrete source.
type AdapterRegistry interface {
	// Adapter returns the adapter for the source identifier.
	// Returns domain.ErrUnknownSource if none is registered.
	Adapter(source string) (SourceAdapter, error)

	// Sources returns the registered source identifiers in sorted
	// order.
	Sources() []string
}
