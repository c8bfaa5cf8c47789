package services

import (
	"context"
	"fmt"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
	"github.com/weft-labs/sigscout-cli/internal/core/ports/driven"
	"github.com/weft-labs/sigscout-cli/internal/core/ports/driving"
	"github.com/weft-labs/sigscout-cli/internal/logger"
)

// Ensure SignalService implements the interface.
var _ driving.SignalService = (*SignalService)(nil)

// SignalService manages curated signals. Validation happens here,
// before any store write; the store itself does not enforce the tag
// invariant.
type SignalService struct {
	store driven.SignalStore
}

// NewSignalService creates a signal service backed by the store.
func NewSignalService(store driven.SignalStore) *SignalService {
	return &SignalService{store: store}
}

// Create validates the draft and inserts a new signal.
func (s *SignalService) Create(
	ctx context.Context, draft domain.SignalDraft,
) (*domain.Signal, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	signal, err := s.store.Create(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("create signal: %w", err)
	}

	logger.Debug("created signal %d: %s", signal.ID, signal.Title)
	return signal, nil
}

// List returns all signals, newest first.
func (s *SignalService) List(ctx context.Context) ([]domain.Signal, error) {
	return s.store.List(ctx)
}

// Get returns one signal by id.
func (s *SignalService) Get(ctx context.Context, id int64) (*domain.Signal, error) {
	return s.store.Get(ctx, id)
}

// Update validates the draft and replaces the signal's mutable fields.
// DateCreated is immutable and survives the update.
func (s *SignalService) Update(
	ctx context.Context, id int64, draft domain.SignalDraft,
) (*domain.Signal, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	return s.store.Update(ctx, id, draft)
}

// Delete removes a signal. Pipeline items that reference it keep their
// back-reference; the link is resolved by explicit lookup, never
// cascaded.
func (s *SignalService) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// Search matches the query case-insensitively against title, source
// context and rationale.
func (s *SignalService) Search(ctx context.Context, query string) ([]domain.Signal, error) {
	return s.store.Search(ctx, query)
}

// FilterByTag returns the signals whose tag set contains the exact tag.
func (s *SignalService) FilterByTag(ctx context.Context, tag string) ([]domain.Signal, error) {
	return s.store.FilterByTag(ctx, tag)
}

// Tags returns the deduplicated tag vocabulary.
func (s *SignalService) Tags(ctx context.Context) ([]string, error) {
	return s.store.ListTags(ctx)
}
