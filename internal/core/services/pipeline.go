package services

import (
	"context"
	"fmt"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
	"github.com/weft-labs/sigscout-cli/internal/core/ports/driven"
	"github.com/weft-labs/sigscout-cli/internal/core/ports/driving"
	"github.com/weft-labs/sigscout-cli/internal/logger"
)

// Ensure PipelineService implements the interface.
var _ driving.PipelineService = (*PipelineService)(nil)

// PipelineService is the review surface over pending candidates: the
// approval workflow, configuration entry points and the manual fetch
// trigger.
type PipelineService struct {
	items       driven.PipelineStore
	signals     driven.SignalStore
	runs        driven.RunStore
	configStore driven.ConfigStore
	scheduler   driving.SchedulerService
}

// NewPipelineService creates a pipeline service. The run store is
// optional; the scheduler may be nil in contexts that never save
// configuration or trigger fetches (pure review tooling).
func NewPipelineService(
	items driven.PipelineStore,
	signals driven.SignalStore,
	runs driven.RunStore,
	configStore driven.ConfigStore,
	scheduler driving.SchedulerService,
) *PipelineService {
	return &PipelineService{
		items:       items,
		signals:     signals,
		runs:        runs,
		configStore: configStore,
		scheduler:   scheduler,
	}
}

// Items returns pending candidates, newest first.
func (p *PipelineService) Items(ctx context.Context) ([]domain.PipelineItem, error) {
	return p.items.ListPending(ctx)
}

// ItemsBySource restricts Items to one source identifier.
func (p *PipelineService) ItemsBySource(
	ctx context.Context, source string,
) ([]domain.PipelineItem, error) {
	return p.items.ListPendingBySource(ctx, source)
}

// Approve promotes a pending item into a curated signal. An empty
// draft title falls back to the item's raw title and an empty source
// context to the item URL, then the draft is validated and the signal
// created and linked. The two store writes are not one transaction; if
// the link step fails the just-created signal is deleted again so no
// orphan survives.
func (p *PipelineService) Approve(
	ctx context.Context, itemID int64, draft domain.SignalDraft,
) (*domain.Signal, error) {
	// Resolving the item up front also rejects before the signal
	// write when it is already gone, shrinking the compensation
	// window to a concurrent discard.
	item, err := p.items.Get(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("approve item %d: %w", itemID, err)
	}

	if draft.Title == "" {
		draft.Title = item.RawTitle
	}
	if draft.SourceContext == "" {
		draft.SourceContext = item.RawSource
	}

	if err := draft.Validate(); err != nil {
		return nil, err
	}

	signal, err := p.signals.Create(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("create signal: %w", err)
	}

	if err := p.items.MarkApproved(ctx, itemID, signal.ID); err != nil {
		// Compensating rollback: remove the signal created above.
		if delErr := p.signals.Delete(ctx, signal.ID); delErr != nil {
			logger.Error("rollback of signal %d failed: %v", signal.ID, delErr)
		}
		return nil, fmt.Errorf("approve item %d: %w", itemID, err)
	}

	logger.Info("approved pipeline item %d as signal %d", itemID, signal.ID)
	return signal, nil
}

// Discard deletes a pending item. It never touches the signal store.
func (p *PipelineService) Discard(ctx context.Context, itemID int64) error {
	if err := p.items.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("discard item %d: %w", itemID, err)
	}
	logger.Debug("discarded pipeline item %d", itemID)
	return nil
}

// Config returns the current pipeline configuration.
func (p *PipelineService) Config(ctx context.Context) (domain.PipelineConfig, error) {
	return p.configStore.Load(ctx)
}

// SaveConfig persists the configuration and reschedules the recurring
// jobs so the active job set matches it.
func (p *PipelineService) SaveConfig(ctx context.Context, cfg domain.PipelineConfig) error {
	if err := p.configStore.Save(ctx, cfg); err != nil {
		return fmt.Errorf("save pipeline config: %w", err)
	}
	if p.scheduler != nil {
		if err := p.scheduler.Reschedule(ctx, cfg); err != nil {
			return fmt.Errorf("reschedule: %w", err)
		}
	}
	return nil
}

// FetchNow triggers an immediate ingestion run. The pipeline-enabled
// gate is applied by the orchestrator against the freshly loaded
// configuration, so a disabled pipeline yields a zero summary rather
// than an error.
func (p *PipelineService) FetchNow(ctx context.Context) (*domain.FetchSummary, error) {
	if p.scheduler == nil {
		return nil, fmt.Errorf("manual fetch: scheduler not configured")
	}
	return p.scheduler.TriggerNow(ctx)
}

// Runs returns recent fetch run history, newest first.
func (p *PipelineService) Runs(ctx context.Context, limit int) ([]domain.FetchRun, error) {
	if p.runs == nil {
		return nil, fmt.Errorf("run history: run store not configured")
	}
	return p.runs.ListRuns(ctx, limit)
}
