package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
	"github.com/weft-labs/sigscout-cli/internal/core/ports/driven"
	"github.com/weft-labs/sigscout-cli/internal/core/ports/driving"
	"github.com/weft-labs/sigscout-cli/internal/logger"
)

// runHistoryKeep is the number of fetch run records retained.
const runHistoryKeep = 50

// Ensure FetchOrchestrator implements the interface.
var _ driving.FetchRunner = (*FetchOrchestrator)(nil)

// FetchOrchestrator runs every enabled source adapter concurrently,
// merges the results and persists them as pending candidates. One
// slow or broken source never blocks or fails the others; wall-clock
// cost is bounded by the slowest enabled source.
type FetchOrchestrator struct {
	registry driven.AdapterRegistry
	store    driven.PipelineStore
	runs     driven.RunStore
	notifier driven.Notifier

	// runMu serializes runs; overlapping persistence phases would
	// compound duplicate accumulation since the store has no dedup key.
	runMu sync.Mutex
}

// NewFetchOrchestrator creates an orchestrator. The run store and
// notifier are optional; nil disables run history and push events.
func NewFetchOrchestrator(
	registry driven.AdapterRegistry,
	store driven.PipelineStore,
	runs driven.RunStore,
	notifier driven.Notifier,
) *FetchOrchestrator {
	return &FetchOrchestrator{
		registry: registry,
		store:    store,
		runs:     runs,
		notifier: notifier,
	}
}

// RunAll executes one ingestion run against the given configuration.
// Per-source fetch failures and individual persistence failures are
// logged and absorbed; only a structural error (missing collaborators)
// is returned. Successive calls are serialized.
func (o *FetchOrchestrator) RunAll(
	ctx context.Context, cfg domain.PipelineConfig,
) (*domain.FetchSummary, error) {
	if o.registry == nil || o.store == nil {
		return nil, errors.New("fetch orchestrator not fully configured")
	}

	summary := domain.NewFetchSummary()

	enabled := cfg.EnabledSources()
	if !cfg.PipelineEnabled || len(enabled) == 0 {
		logger.Debug("fetch skipped: pipeline disabled or no source enabled")
		return summary, nil
	}

	o.runMu.Lock()
	defer o.runMu.Unlock()

	run := &domain.FetchRun{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	logger.Info("fetch run %s: sources %v", run.ID, enabled)

	// Fan out one goroutine per enabled source. Results stay in
	// per-source slices so upstream order is preserved within a
	// source; no order is guaranteed across sources.
	results := make([][]domain.RawItem, len(enabled))
	g, gctx := errgroup.WithContext(ctx)
	for i, source := range enabled {
		adapter, err := o.registry.Adapter(source)
		if err != nil {
			logger.Warn("source %s enabled but has no adapter: %v", source, err)
			continue
		}
		limit := cfg.SourceLimit(source)
		g.Go(func() error {
			items, err := adapter.Fetch(gctx, limit)
			if err != nil {
				// Absorbed: degraded to an empty result.
				logger.Warn("fetch from %s failed: %v", source, err)
				return nil
			}
			results[i] = items
			return nil
		})
	}
	// Goroutines never return errors; Wait only joins them.
	_ = g.Wait()

	for i, source := range enabled {
		items := results[i]
		summary.PerSource[source] = len(items)
		summary.TotalFetched += len(items)

		for _, raw := range items {
			item := domain.PipelineItem{
				RawTitle:       raw.Title,
				RawSource:      raw.URL,
				RawDescription: raw.Description,
				Source:         source,
			}
			if _, err := o.store.Insert(ctx, item); err != nil {
				// Skipped, not fatal to the batch.
				logger.Warn("persist item from %s: %v", source, err)
				continue
			}
			summary.TotalSaved++
		}
	}

	run.EndedAt = time.Now().UTC()
	run.PerSource = summary.PerSource
	run.TotalFetched = summary.TotalFetched
	run.TotalSaved = summary.TotalSaved
	o.recordRun(ctx, run)

	if o.notifier != nil {
		o.notifier.PipelineItemsUpdated(summary.TotalSaved)
	}

	logger.Info("fetch run %s complete: %d fetched, %d saved",
		run.ID, summary.TotalFetched, summary.TotalSaved)
	return summary, nil
}

// recordRun appends the run to history and prunes old records.
// History is best-effort observability; failures only warn.
func (o *FetchOrchestrator) recordRun(ctx context.Context, run *domain.FetchRun) {
	if o.runs == nil {
		return
	}
	if err := o.runs.RecordRun(ctx, run); err != nil {
		logger.Warn("record fetch run %s: %v", run.ID, err)
		return
	}
	if err := o.runs.PruneRuns(ctx, runHistoryKeep); err != nil {
		logger.Warn("prune fetch run history: %v", err)
	}
}
