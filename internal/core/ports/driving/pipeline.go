package driving

import (
	"context"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
)

// FetchRunner executes one ingestion run against an explicit
// configuration value. Implemented by the fetch orchestrator.
type FetchRunner interface {
	// RunAll fans out to every enabled source adapter, persists the
	// combined results and returns the run summary. It fails only on
	// a structural error, never on a per-source failure. Runs are
	// serialized: a call blocks until any in-flight run completes.
	RunAll(ctx context.Context, cfg domain.PipelineConfig) (*domain.FetchSummary, error)
}

// PipelineService is the review surface over pending candidates plus
// the configuration entry points exposed to the UI layer.
type PipelineService interface {
	// Items returns pending candidates, newest first.
	Items(ctx context.Context) ([]domain.PipelineItem, error)

	// ItemsBySource restricts Items to one source identifier.
	ItemsBySource(ctx context.Context, source string) ([]domain.PipelineItem, error)

	// Approve promotes a pending item into a curated signal and links
	// the two. An empty draft title defaults to the item's raw title,
	// an empty source context to the item URL. Returns
	// domain.ErrValidation for an invalid draft and domain.ErrNotFound
	// for a missing item.
	Approve(ctx context.Context, itemID int64, draft domain.SignalDraft) (*domain.Signal, error)

	// Discard deletes a pending item without touching the signal
	// store. Returns domain.ErrNotFound for a missing item.
	Discard(ctx context.Context, itemID int64) error

	// Config returns the current pipeline configuration.
	Config(ctx context.Context) (domain.PipelineConfig, error)

	// SaveConfig persists the configuration and reschedules the
	// recurring jobs to match it.
	SaveConfig(ctx context.Context, cfg domain.PipelineConfig) error

	// FetchNow triggers an immediate ingestion run outside the
	// scheduled cadence.
	FetchNow(ctx context.Context) (*domain.FetchSummary, error)

	// Runs returns the most recent fetch run history, newest first.
	Runs(ctx context.Context, limit int) ([]domain.FetchRun, error)
}
