package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
	"github.com/weft-labs/sigscout-cli/internal/core/ports/driven"
)

// --- Mock stores and adapters shared by the service tests ---

// mockSignalStore implements driven.SignalStore in memory.
type mockSignalStore struct {
	mu      sync.Mutex
	nextID  int64
	signals map[int64]domain.Signal

	createErr error
	deleteErr error
}

func newMockSignalStore() *mockSignalStore {
	return &mockSignalStore{signals: make(map[int64]domain.Signal)}
}

func (m *mockSignalStore) Create(_ context.Context, draft domain.SignalDraft) (*domain.Signal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	s := domain.Signal{
		ID:             m.nextID,
		Title:          draft.Title,
		SourceContext:  draft.SourceContext,
		WhyItMatters:   draft.WhyItMatters,
		DateCreated:    time.Now().UTC(),
		FollowUpNeeded: draft.FollowUpNeeded,
		Notes:          draft.Notes,
		CategoryTags:   append([]string(nil), draft.CategoryTags...),
	}
	m.signals[s.ID] = s
	return &s, nil
}

func (m *mockSignalStore) List(_ context.Context) ([]domain.Signal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Signal, 0, len(m.signals))
	for _, s := range m.signals {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockSignalStore) Get(_ context.Context, id int64) (*domain.Signal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.signals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (m *mockSignalStore) Update(_ context.Context, id int64, draft domain.SignalDraft) (*domain.Signal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.signals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	s.Title = draft.Title
	s.SourceContext = draft.SourceContext
	s.WhyItMatters = draft.WhyItMatters
	s.CategoryTags = append([]string(nil), draft.CategoryTags...)
	s.FollowUpNeeded = draft.FollowUpNeeded
	s.Notes = draft.Notes
	m.signals[id] = s
	return &s, nil
}

func (m *mockSignalStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.signals[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.signals, id)
	return nil
}

func (m *mockSignalStore) Search(_ context.Context, _ string) ([]domain.Signal, error) {
	return m.List(context.Background())
}

func (m *mockSignalStore) FilterByTag(ctx context.Context, tag string) ([]domain.Signal, error) {
	all, _ := m.List(ctx)
	var out []domain.Signal
	for i := range all {
		if all[i].HasTag(tag) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (m *mockSignalStore) ListTags(ctx context.Context) ([]string, error) {
	all, _ := m.List(ctx)
	seen := make(map[string]struct{})
	var tags []string
	for i := range all {
		for _, tag := range all[i].CategoryTags {
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				tags = append(tags, tag)
			}
		}
	}
	return tags, nil
}

func (m *mockSignalStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.signals)
}

// mockPipelineStore implements driven.PipelineStore in memory.
type mockPipelineStore struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]domain.PipelineItem

	insertErr    error
	approveErr   error
	failInsertAt int // fail the nth insert (1-based), 0 disables
	inserts      int
}

func newMockPipelineStore() *mockPipelineStore {
	return &mockPipelineStore{items: make(map[int64]domain.PipelineItem)}
}

func (m *mockPipelineStore) Insert(_ context.Context, item domain.PipelineItem) (*domain.PipelineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserts++
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	if m.failInsertAt > 0 && m.inserts == m.failInsertAt {
		return nil, fmt.Errorf("storage failure")
	}
	m.nextID++
	item.ID = m.nextID
	item.Approved = false
	item.SignalID = nil
	if item.FetchDate.IsZero() {
		item.FetchDate = time.Now().UTC()
	}
	m.items[item.ID] = item
	return &item, nil
}

func (m *mockPipelineStore) ListPending(_ context.Context) ([]domain.PipelineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.PipelineItem
	for _, it := range m.items {
		if !it.Approved {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FetchDate.Equal(out[j].FetchDate) {
			return out[i].ID > out[j].ID
		}
		return out[i].FetchDate.After(out[j].FetchDate)
	})
	return out, nil
}

func (m *mockPipelineStore) ListPendingBySource(ctx context.Context, source string) ([]domain.PipelineItem, error) {
	all, _ := m.ListPending(ctx)
	var out []domain.PipelineItem
	for _, it := range all {
		if it.Source == source {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *mockPipelineStore) Get(_ context.Context, id int64) (*domain.PipelineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &it, nil
}

func (m *mockPipelineStore) MarkApproved(_ context.Context, id, signalID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.approveErr != nil {
		return m.approveErr
	}
	it, ok := m.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Approved = true
	it.SignalID = &signalID
	m.items[id] = it
	return nil
}

func (m *mockPipelineStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockPipelineStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// mockRunStore implements driven.RunStore in memory.
type mockRunStore struct {
	mu   sync.Mutex
	runs []domain.FetchRun
}

func (m *mockRunStore) RecordRun(_ context.Context, run *domain.FetchRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, *run)
	return nil
}

func (m *mockRunStore) ListRuns(_ context.Context, limit int) ([]domain.FetchRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]domain.FetchRun(nil), m.runs...)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockRunStore) PruneRuns(_ context.Context, keep int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.runs) > keep {
		m.runs = m.runs[len(m.runs)-keep:]
	}
	return nil
}

// mockConfigStore implements driven.ConfigStore around a value.
type mockConfigStore struct {
	mu      sync.Mutex
	cfg     domain.PipelineConfig
	loadErr error
	saveErr error
	saves   int
}

func newMockConfigStore(cfg domain.PipelineConfig) *mockConfigStore {
	return &mockConfigStore{cfg: cfg}
}

func (m *mockConfigStore) Load(_ context.Context) (domain.PipelineConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return domain.PipelineConfig{}, m.loadErr
	}
	return m.cfg, nil
}

func (m *mockConfigStore) Save(_ context.Context, cfg domain.PipelineConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.cfg = cfg
	m.saves++
	return nil
}

// mockAdapter implements driven.SourceAdapter with canned items.
type mockAdapter struct {
	source string
	items  []domain.RawItem
	err    error

	mu        sync.Mutex
	calls     int
	lastLimit int
}

func (a *mockAdapter) Source() string { return a.source }

func (a *mockAdapter) Fetch(_ context.Context, limit int) ([]domain.RawItem, error) {
	a.mu.Lock()
	a.calls++
	a.lastLimit = limit
	a.mu.Unlock()

	if limit <= 0 {
		return nil, nil
	}
	if a.err != nil {
		return nil, a.err
	}
	if len(a.items) > limit {
		return a.items[:limit], nil
	}
	return a.items, nil
}

func (a *mockAdapter) callCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

// mockRegistry implements driven.AdapterRegistry.
type mockRegistry struct {
	adapters map[string]driven.SourceAdapter
}

func newMockRegistry(adapters ...driven.SourceAdapter) *mockRegistry {
	r := &mockRegistry{adapters: make(map[string]driven.SourceAdapter)}
	for _, a := range adapters {
		r.adapters[a.Source()] = a
	}
	return r
}

func (r *mockRegistry) Adapter(source string) (driven.SourceAdapter, error) {
	a, ok := r.adapters[source]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSource, source)
	}
	return a, nil
}

func (r *mockRegistry) Sources() []string {
	var out []string
	for id := range r.adapters {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// mockNotifier records pipeline-items-updated events.
type mockNotifier struct {
	mu     sync.Mutex
	events []int
}

func (n *mockNotifier) PipelineItemsUpdated(saved int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, saved)
}

func (n *mockNotifier) eventCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

// mockScheduler records reschedules and delegates TriggerNow.
type mockScheduler struct {
	mu          sync.Mutex
	rescheduled []domain.PipelineConfig
	triggers    int
	summary     *domain.FetchSummary
	triggerErr  error
}

func (m *mockScheduler) Reschedule(_ context.Context, cfg domain.PipelineConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rescheduled = append(m.rescheduled, cfg)
	return nil
}

func (m *mockScheduler) TriggerNow(_ context.Context) (*domain.FetchSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.triggers++
	if m.triggerErr != nil {
		return nil, m.triggerErr
	}
	if m.summary != nil {
		return m.summary, nil
	}
	return domain.NewFetchSummary(), nil
}

func (m *mockScheduler) ActiveJobs() []string { return nil }

func (m *mockScheduler) Stop() {}
