package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
)

func enabledConfig(sources map[string]domain.SourceConfig) domain.PipelineConfig {
	return domain.PipelineConfig{
		PipelineEnabled: true,
		Sources:         sources,
		FetchIntervals:  map[string]bool{},
	}
}

func TestRunAll_PipelineDisabled(t *testing.T) {
	adapter := &mockAdapter{source: domain.SourceHackerNews, items: []domain.RawItem{{Title: "a"}}}
	store := newMockPipelineStore()
	orch := NewFetchOrchestrator(newMockRegistry(adapter), store, nil, nil)

	cfg := enabledConfig(map[string]domain.SourceConfig{
		domain.SourceHackerNews: {Enabled: true, Limit: 5},
	})
	cfg.PipelineEnabled = false

	summary, err := orch.RunAll(context.Background(), cfg)
	require.NoError(t, err)

	assert.Zero(t, summary.TotalFetched)
	assert.Zero(t, summary.TotalSaved)
	assert.Empty(t, summary.PerSource)
	assert.Zero(t, adapter.callCount(), "no adapter may be touched")
	assert.Zero(t, store.count(), "no store writes on the no-op path")
}

func TestRunAll_NoSourceEnabled(t *testing.T) {
	adapter := &mockAdapter{source: domain.SourceHackerNews, items: []domain.RawItem{{Title: "a"}}}
	store := newMockPipelineStore()
	orch := NewFetchOrchestrator(newMockRegistry(adapter), store, nil, nil)

	cfg := enabledConfig(map[string]domain.SourceConfig{
		domain.SourceHackerNews: {Enabled: false, Limit: 5},
	})

	summary, err := orch.RunAll(context.Background(), cfg)
	require.NoError(t, err)

	assert.Zero(t, summary.TotalFetched)
	assert.Zero(t, adapter.callCount())
	assert.Zero(t, store.count())
}

// The concrete scenario from the design review: hackernews enabled with
// limit 2 and a stub returning 2 items must report 2 fetched, 2 saved,
// and leave 2 pending items ordered by fetch date descending.
func TestRunAll_SingleSource(t *testing.T) {
	adapter := &mockAdapter{
		source: domain.SourceHackerNews,
		items: []domain.RawItem{
			{Title: "first", URL: "https://example.com/1", Description: "one"},
			{Title: "second", URL: "https://example.com/2", Description: "two"},
		},
	}
	store := newMockPipelineStore()
	orch := NewFetchOrchestrator(newMockRegistry(adapter), store, nil, nil)

	cfg := enabledConfig(map[string]domain.SourceConfig{
		domain.SourceHackerNews: {Enabled: true, Limit: 2},
	})

	summary, err := orch.RunAll(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalFetched)
	assert.Equal(t, 2, summary.TotalSaved)
	assert.Equal(t, map[string]int{domain.SourceHackerNews: 2}, summary.PerSource)

	pending, err := store.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 2)
	for _, item := range pending {
		assert.Equal(t, domain.SourceHackerNews, item.Source)
		assert.False(t, item.Approved)
		assert.Nil(t, item.SignalID)
		assert.False(t, item.FetchDate.IsZero())
	}
	assert.False(t, pending[0].FetchDate.Before(pending[1].FetchDate),
		"pending items are newest first")
}

func TestRunAll_LimitForwarded(t *testing.T) {
	adapter := &mockAdapter{source: domain.SourceGitHub, items: []domain.RawItem{{Title: "r"}}}
	orch := NewFetchOrchestrator(newMockRegistry(adapter), newMockPipelineStore(), nil, nil)

	cfg := enabledConfig(map[string]domain.SourceConfig{
		domain.SourceGitHub: {Enabled: true, Limit: 7},
	})

	_, err := orch.RunAll(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 7, adapter.lastLimit)
}

func TestRunAll_FailureIsolation(t *testing.T) {
	broken := &mockAdapter{source: domain.SourceGitHub, err: errors.New("upstream 503")}
	healthy := &mockAdapter{
		source: domain.SourceHackerNews,
		items:  []domain.RawItem{{Title: "survives", URL: "https://example.com"}},
	}
	store := newMockPipelineStore()
	orch := NewFetchOrchestrator(newMockRegistry(broken, healthy), store, nil, nil)

	cfg := enabledConfig(map[string]domain.SourceConfig{
		domain.SourceGitHub:     {Enabled: true, Limit: 5},
		domain.SourceHackerNews: {Enabled: true, Limit: 5},
	})

	summary, err := orch.RunAll(context.Background(), cfg)
	require.NoError(t, err, "a per-source failure must not fail the run")

	assert.Equal(t, 1, summary.TotalFetched)
	assert.Equal(t, 1, summary.TotalSaved)
	assert.Equal(t, 0, summary.PerSource[domain.SourceGitHub])
	assert.Equal(t, 1, summary.PerSource[domain.SourceHackerNews])

	pending, err := store.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "survives", pending[0].RawTitle)
}

func TestRunAll_InsertFailureSkipped(t *testing.T) {
	adapter := &mockAdapter{
		source: domain.SourceApple,
		items: []domain.RawItem{
			{Title: "a"}, {Title: "b"}, {Title: "c"},
		},
	}
	store := newMockPipelineStore()
	store.failInsertAt = 2
	orch := NewFetchOrchestrator(newMockRegistry(adapter), store, nil, nil)

	cfg := enabledConfig(map[string]domain.SourceConfig{
		domain.SourceApple: {Enabled: true, Limit: 10},
	})

	summary, err := orch.RunAll(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalFetched)
	assert.Equal(t, 2, summary.TotalSaved, "one failed insert is skipped, not fatal")
	assert.Equal(t, 2, store.count())
}

func TestRunAll_UnknownSourceAbsorbed(t *testing.T) {
	store := newMockPipelineStore()
	orch := NewFetchOrchestrator(newMockRegistry(), store, nil, nil)

	cfg := enabledConfig(map[string]domain.SourceConfig{
		"mystery": {Enabled: true, Limit: 5},
	})

	summary, err := orch.RunAll(context.Background(), cfg)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalFetched)
	assert.Equal(t, 0, summary.PerSource["mystery"])
}

func TestRunAll_RecordsRunAndNotifies(t *testing.T) {
	adapter := &mockAdapter{
		source: domain.SourceHackerNews,
		items:  []domain.RawItem{{Title: "x", URL: "https://example.com"}},
	}
	runs := &mockRunStore{}
	notifier := &mockNotifier{}
	orch := NewFetchOrchestrator(newMockRegistry(adapter), newMockPipelineStore(), runs, notifier)

	cfg := enabledConfig(map[string]domain.SourceConfig{
		domain.SourceHackerNews: {Enabled: true, Limit: 5},
	})

	_, err := orch.RunAll(context.Background(), cfg)
	require.NoError(t, err)

	history, err := runs.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.NotEmpty(t, history[0].ID)
	assert.Equal(t, 1, history[0].TotalFetched)
	assert.Equal(t, 1, history[0].TotalSaved)
	assert.False(t, history[0].EndedAt.Before(history[0].StartedAt))

	assert.Equal(t, 1, notifier.eventCount(), "event emitted after the persistence phase")
}

func TestRunAll_NoEventOnNoopPath(t *testing.T) {
	notifier := &mockNotifier{}
	orch := NewFetchOrchestrator(newMockRegistry(), newMockPipelineStore(), nil, notifier)

	summary, err := orch.RunAll(context.Background(), domain.DefaultPipelineConfig())
	require.NoError(t, err)
	assert.Zero(t, summary.TotalFetched)
	assert.Zero(t, notifier.eventCount())
}

func TestRunAll_MissingCollaborators(t *testing.T) {
	orch := NewFetchOrchestrator(nil, nil, nil, nil)
	_, err := orch.RunAll(context.Background(), domain.DefaultPipelineConfig())
	assert.Error(t, err)
}
