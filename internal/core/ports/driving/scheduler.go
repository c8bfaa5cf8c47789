package driving

import (
	"context"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
)

// SchedulerService manages the recurring fetch jobs and the manual
// trigger.
type SchedulerService interface {
	// Reschedule cancels every active job, then recreates one job per
	// cadence enabled in the configuration, provided the pipeline is
	// enabled. It is idempotent: the active job set always equals the
	// configuration it was last called with.
	Reschedule(ctx context.Context, cfg domain.PipelineConfig) error

	// TriggerNow runs the orchestrator immediately, independent of
	// job state. The enabled gate is applied by the orchestrator
	// against a freshly loaded configuration.
	TriggerNow(ctx context.Context) (*domain.FetchSummary, error)

	// ActiveJobs returns the cadence names with a scheduled job, in
	// canonical order.
	ActiveJobs() []string

	// Stop cancels all jobs and waits for their goroutines to exit.
	Stop()
}
