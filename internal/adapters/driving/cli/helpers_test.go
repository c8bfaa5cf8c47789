package cli

import (
	"context"
	"time"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
)

var testCreated = time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)

// mockSignalService is a mock implementation of driving.SignalService
// returning canned data.
type mockSignalService struct {
	signals []domain.Signal
	signal  *domain.Signal
	tags    []string
	err     error

	lastDraft domain.SignalDraft
}

func (m *mockSignalService) Create(_ context.Context, draft domain.SignalDraft) (*domain.Signal, error) {
	m.lastDraft = draft
	return m.signal, m.err
}

func (m *mockSignalService) List(_ context.Context) ([]domain.Signal, error) {
	return m.signals, m.err
}

func (m *mockSignalService) Get(_ context.Context, _ int64) (*domain.Signal, error) {
	return m.signal, m.err
}

func (m *mockSignalService) Update(_ context.Context, _ int64, draft domain.SignalDraft) (*domain.Signal, error) {
	m.lastDraft = draft
	return m.signal, m.err
}

func (m *mockSignalService) Delete(_ context.Context, _ int64) error {
	return m.err
}

func (m *mockSignalService) Search(_ context.Context, _ string) ([]domain.Signal, error) {
	return m.signals, m.err
}

func (m *mockSignalService) FilterByTag(_ context.Context, _ string) ([]domain.Signal, error) {
	return m.signals, m.err
}

func (m *mockSignalService) Tags(_ context.Context) ([]string, error) {
	return m.tags, m.err
}

// mockPipelineService is a mock implementation of driving.PipelineService.
type mockPipelineService struct {
	items    []domain.PipelineItem
	signal   *domain.Signal
	cfg      domain.PipelineConfig
	summary  *domain.FetchSummary
	runs     []domain.FetchRun
	err      error
	saveErr  error
	savedCfg *domain.PipelineConfig
}

func (m *mockPipelineService) Items(_ context.Context) ([]domain.PipelineItem, error) {
	return m.items, m.err
}

func (m *mockPipelineService) ItemsBySource(_ context.Context, _ string) ([]domain.PipelineItem, error) {
	return m.items, m.err
}

func (m *mockPipelineService) Approve(_ context.Context, _ int64, _ domain.SignalDraft) (*domain.Signal, error) {
	return m.signal, m.err
}

func (m *mockPipelineService) Discard(_ context.Context, _ int64) error {
	return m.err
}

func (m *mockPipelineService) Config(_ context.Context) (domain.PipelineConfig, error) {
	return m.cfg, m.err
}

func (m *mockPipelineService) SaveConfig(_ context.Context, cfg domain.PipelineConfig) error {
	m.savedCfg = &cfg
	return m.saveErr
}

func (m *mockPipelineService) FetchNow(_ context.Context) (*domain.FetchSummary, error) {
	return m.summary, m.err
}

func (m *mockPipelineService) Runs(_ context.Context, _ int) ([]domain.FetchRun, error) {
	return m.runs, m.err
}

// setupTestServices swaps the package-level services for mocks with
// canned data and returns a cleanup restoring the previous state.
func setupTestServices() func() {
	oldSignal := signalService
	oldPipeline := pipelineService

	signalService = &mockSignalService{
		signals: []domain.Signal{
			{
				ID:           1,
				Title:        "WASM components in prod",
				WhyItMatters: "Early adopter reports",
				DateCreated:  testCreated,
				CategoryTags: []string{"infra", "wasm"},
			},
		},
		signal: &domain.Signal{
			ID:           1,
			Title:        "WASM components in prod",
			WhyItMatters: "Early adopter reports",
			DateCreated:  testCreated,
			CategoryTags: []string{"infra", "wasm"},
		},
		tags: []string{"infra", "wasm"},
	}
	pipelineService = &mockPipelineService{
		items: []domain.PipelineItem{
			{
				ID:             11,
				RawTitle:       "Show HN: tiny tracer",
				RawSource:      "https://example.com/tracer",
				RawDescription: "A tracing toy",
				FetchDate:      testCreated,
				Source:         domain.SourceHackerNews,
			},
		},
		signal: &domain.Signal{
			ID:           2,
			Title:        "Promoted item",
			WhyItMatters: "It matters",
			DateCreated:  testCreated,
			CategoryTags: []string{"tooling"},
		},
		cfg: domain.DefaultPipelineConfig(),
		summary: &domain.FetchSummary{
			PerSource:    map[string]int{domain.SourceHackerNews: 18},
			TotalFetched: 18,
			TotalSaved:   18,
		},
		runs: []domain.FetchRun{
			{
				ID:           "run-1",
				StartedAt:    testCreated,
				EndedAt:      testCreated.Add(2 * time.Second),
				PerSource:    map[string]int{domain.SourceHackerNews: 18},
				TotalFetched: 18,
				TotalSaved:   18,
			},
		},
	}

	return func() {
		signalService = oldSignal
		pipelineService = oldPipeline
	}
}
