package mcp

import (
	"context"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
)

// mockSignalService is a mock implementation of driving.SignalService.
type mockSignalService struct {
	signals     []domain.Signal
	signal      *domain.Signal
	tags        []string
	err         error
	createdWith domain.SignalDraft
}

func (m *mockSignalService) Create(_ context.Context, draft domain.SignalDraft) (*domain.Signal, error) {
	m.createdWith = draft
	return m.signal, m.err
}

func (m *mockSignalService) List(_ context.Context) ([]domain.Signal, error) {
	return m.signals, m.err
}

func (m *mockSignalService) Get(_ context.Context, _ int64) (*domain.Signal, error) {
	return m.signal, m.err
}

func (m *mockSignalService) Update(_ context.Context, _ int64, _ domain.SignalDraft) (*domain.Signal, error) {
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
	items         []domain.PipelineItem
	signal        *domain.Signal
	cfg           domain.PipelineConfig
	summary       *domain.FetchSummary
	runs          []domain.FetchRun
	err           error
	approvedWith  domain.SignalDraft
	filteredBy    string
	discardedID   int64
}

func (m *mockPipelineService) Items(_ context.Context) ([]domain.PipelineItem, error) {
	return m.items, m.err
}

func (m *mockPipelineService) ItemsBySource(_ context.Context, source string) ([]domain.PipelineItem, error) {
	m.filteredBy = source
	return m.items, m.err
}

func (m *mockPipelineService) Approve(_ context.Context, _ int64, draft domain.SignalDraft) (*domain.Signal, error) {
	m.approvedWith = draft
	return m.signal, m.err
}

func (m *mockPipelineService) Discard(_ context.Context, itemID int64) error {
	m.discardedID = itemID
	return m.err
}

func (m *mockPipelineService) Config(_ context.Context) (domain.PipelineConfig, error) {
	return m.cfg, m.err
}

func (m *mockPipelineService) SaveConfig(_ context.Context, cfg domain.PipelineConfig) error {
	m.cfg = cfg
	return m.err
}

func (m *mockPipelineService) FetchNow(_ context.Context) (*domain.FetchSummary, error) {
	return m.summary, m.err
}

func (m *mockPipelineService) Runs(_ context.Context, _ int) ([]domain.FetchRun, error) {
	return m.runs, m.err
}
