package driven

import (
	"context"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
)

// ConfigStore loads and saves the pipeline configuration. The
// configuration is a value: callers load it fresh on every run rather
// than caching it, so saved edits take effect immediately.
type ConfigStore interface {
	// Load returns the persisted configuration, or the defaults when
	// none has been saved yet.
	Load(ctx context.Context) (domain.PipelineConfig, error)

	// Save persists the configuration, replacing any previous value.
	Save(ctx context.Context, cfg domain.PipelineConfig) error
}
