package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
	"github.com/weft-labs/sigscout-cli/internal/core/ports/driven"
)

// Ensure PipelineStore implements the interface.
var _ driven.PipelineStore = (*PipelineStore)(nil)

// PipelineStore is an in-memory implementation of driven.PipelineStore.
type PipelineStore struct {
	mu     sync.RWMutex
	items  map[int64]domain.PipelineItem
	nextID int64
}

// NewPipelineStore creates a new in-memory pipeline store.
func NewPipelineStore() *PipelineStore {
	return &PipelineStore{
		items:  make(map[int64]domain.PipelineItem),
		nextID: 1,
	}
}

// Insert persists a candidate and returns the materialized row.
func (s *PipelineStore) Insert(
	_ context.Context, item domain.PipelineItem,
) (*domain.PipelineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.nextID
	item.Approved = false
	item.SignalID = nil
	if item.FetchDate.IsZero() {
		item.FetchDate = time.Now().UTC()
	}
	s.items[item.ID] = item
	s.nextID++

	out := item
	return &out, nil
}

// ListPending returns unapproved items, newest first.
func (s *PipelineStore) ListPending(_ context.Context) ([]domain.PipelineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pendingLocked(""), nil
}

// ListPendingBySource is ListPending restricted to one source.
func (s *PipelineStore) ListPendingBySource(
	_ context.Context, source string,
) ([]domain.PipelineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pendingLocked(source), nil
}

// Get retrieves an item by ID.
func (s *PipelineStore) Get(_ context.Context, id int64) (*domain.PipelineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

// MarkApproved sets the approval flag and back-reference together.
func (s *PipelineStore) MarkApproved(_ context.Context, id, signalID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.Approved = true
	item.SignalID = &signalID
	s.items[id] = item
	return nil
}

// Delete removes an item regardless of approval state.
func (s *PipelineStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// pendingLocked returns unapproved items newest first, optionally
// restricted to one source. Callers hold the lock.
func (s *PipelineStore) pendingLocked(source string) []domain.PipelineItem {
	var out []domain.PipelineItem
	for _, item := range s.items {
		if item.Approved {
			continue
		}
		if source != "" && item.Source != source {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].FetchDate.Equal(out[j].FetchDate) {
			return out[i].FetchDate.After(out[j].FetchDate)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
