package connectors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
)

type stubAdapter struct {
	source string
}

func (s *stubAdapter) Source() string { return s.source }

func (s *stubAdapter) Fetch(context.Context, int) ([]domain.RawItem, error) {
	return nil, nil
}

func TestRegistry_Lookup(t *testing.T) {
	registry := NewRegistry(
		&stubAdapter{source: domain.SourceHackerNews},
		&stubAdapter{source: domain.SourceGitHub},
	)

	adapter, err := registry.Adapter(domain.SourceHackerNews)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceHackerNews, adapter.Source())

	_, err = registry.Adapter("reddit")
	assert.ErrorIs(t, err, domain.ErrUnknownSource)
	assert.Contains(t, err.Error(), "reddit")
}

func TestRegistry_SourcesSorted(t *testing.T) {
	registry := NewRegistry(
		&stubAdapter{source: domain.SourceHackerNews},
		&stubAdapter{source: domain.SourceApple},
		&stubAdapter{source: domain.SourceGitHub},
	)

	assert.Equal(t,
		[]string{domain.SourceApple, domain.SourceGitHub, domain.SourceHackerNews},
		registry.Sources())
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	first := &stubAdapter{source: domain.SourceApple}
	second := &stubAdapter{source: domain.SourceApple}

	registry := NewRegistry(first)
	registry.Register(second)

	adapter, err := registry.Adapter(domain.SourceApple)
	require.NoError(t, err)
	assert.Same(t, second, adapter.(*stubAdapter))
	assert.Len(t, registry.Sources(), 1)
}
