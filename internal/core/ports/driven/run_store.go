package driven

import (
	"context"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
)

// RunStore records the history of executed fetch runs for
// observability.
type RunStore interface {
	// RecordRun persists one run record.
	RecordRun(ctx context.Context, run *domain.FetchRun) error

	// ListRuns returns the most recent runs, newest first, at most
	// limit entries.
	ListRuns(ctx context.Context, limit int) ([]domain.FetchRun, error)

	// PruneRuns deletes all but the most recent keep records.
	PruneRuns(ctx context.Context, keep int) error
}
