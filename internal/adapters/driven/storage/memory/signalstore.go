// Package memory provides in-memory store implementations used by
// tests and ephemeral setups where durability is not required.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
	"github.com/weft-labs/sigscout-cli/internal/core/ports/driven"
)

// Ensure SignalStore implements the interface.
var _ driven.SignalStore = (*SignalStore)(nil)

// SignalStore is an in-memory implementation of driven.SignalStore.
type SignalStore struct {
	mu      sync.RWMutex
	signals map[int64]domain.Signal
	nextID  int64
}

// NewSignalStore creates a new in-memory signal store.
func NewSignalStore() *SignalStore {
	return &SignalStore{
		signals: make(map[int64]domain.Signal),
		nextID:  1,
	}
}

// Create inserts a signal and returns the materialized row.
func (s *SignalStore) Create(_ context.Context, draft domain.SignalDraft) (*domain.Signal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	signal := domain.Signal{
		ID:             s.nextID,
		Title:          draft.Title,
		SourceContext:  draft.SourceContext,
		WhyItMatters:   draft.WhyItMatters,
		DateCreated:    time.Now().UTC(),
		FollowUpNeeded: draft.FollowUpNeeded,
		Notes:          draft.Notes,
		CategoryTags:   append([]string(nil), draft.CategoryTags...),
	}
	s.signals[signal.ID] = signal
	s.nextID++

	out := signal
	return &out, nil
}

// List returns all signals, newest first.
func (s *SignalStore) List(_ context.Context) ([]domain.Signal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(func(domain.Signal) bool { return true }), nil
}

// Get retrieves a signal by ID.
func (s *SignalStore) Get(_ context.Context, id int64) (*domain.Signal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	signal, ok := s.signals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &signal, nil
}

// Update replaces the mutable fields; DateCreated is preserved.
func (s *SignalStore) Update(
	_ context.Context, id int64, draft domain.SignalDraft,
) (*domain.Signal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.signals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	existing.Title = draft.Title
	existing.SourceContext = draft.SourceContext
	existing.WhyItMatters = draft.WhyItMatters
	existing.CategoryTags = append([]string(nil), draft.CategoryTags...)
	existing.FollowUpNeeded = draft.FollowUpNeeded
	existing.Notes = draft.Notes
	s.signals[id] = existing

	out := existing
	return &out, nil
}

// Delete removes a signal.
func (s *SignalStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.signals[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.signals, id)
	return nil
}

// Search matches the query against title, source context and
// rationale, case-insensitively.
func (s *SignalStore) Search(_ context.Context, query string) ([]domain.Signal, error) {
	needle := strings.ToLower(query)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(func(sig domain.Signal) bool {
		return strings.Contains(strings.ToLower(sig.Title), needle) ||
			strings.Contains(strings.ToLower(sig.SourceContext), needle) ||
			strings.Contains(strings.ToLower(sig.WhyItMatters), needle)
	}), nil
}

// FilterByTag returns signals carrying the exact tag.
func (s *SignalStore) FilterByTag(_ context.Context, tag string) ([]domain.Signal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(func(sig domain.Signal) bool {
		return sig.HasTag(tag)
	}), nil
}

// ListTags returns the deduplicated union of every signal's tags.
func (s *SignalStore) ListTags(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var tags []string
	for _, signal := range s.signals {
		for _, tag := range signal.CategoryTags {
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				tags = append(tags, tag)
			}
		}
	}
	return tags, nil
}

// sortedLocked returns matching signals newest first. Callers hold the
// lock.
func (s *SignalStore) sortedLocked(match func(domain.Signal) bool) []domain.Signal {
	var out []domain.Signal
	for _, signal := range s.signals {
		if match(signal) {
			out = append(out, signal)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DateCreated.Equal(out[j].DateCreated) {
			return out[i].DateCreated.After(out[j].DateCreated)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
