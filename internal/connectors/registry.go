// Package connectors hosts the source adapters and their registry.
// Each subpackage implements driven.SourceAdapter for one external
// source; the registry maps source identifiers onto them.
package connectors

import (
	"fmt"
	"sort"
	"sync"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
	"github.com/weft-labs/sigscout-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.AdapterRegistry = (*Registry)(nil)

// Registry is the source adapter registry. Registration happens at
// startup; lookups are concurrency-safe.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]driven.SourceAdapter
}

// NewRegistry creates a registry holding the given adapters.
func NewRegistry(adapters ...driven.SourceAdapter) *Registry {
	r := &Registry{adapters: make(map[string]driven.SourceAdapter)}
	for _, adapter := range adapters {
		r.Register(adapter)
	}
	return r
}

// Register adds an adapter, replacing any previous one for the same
// source identifier.
func (r *Registry) Register(adapter driven.SourceAdapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[adapter.Source()] = adapter
}

// Adapter returns the adapter for the source identifier.
func (r *Registry) Adapter(source string) (driven.SourceAdapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	adapter, ok := r.adapters[source]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSource, source)
	}
	return adapter, nil
}

// Sources returns the registered source identifiers, sorted.
func (r *Registry) Sources() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sources := make([]string, 0, len(r.adapters))
	for source := range r.adapters {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	return sources
}
