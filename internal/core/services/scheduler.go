package services

import (
	"context"
	"sync"
	"time"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
	"github.com/weft-labs/sigscout-cli/internal/core/ports/driven"
	"github.com/weft-labs/sigscout-cli/internal/core/ports/driving"
	"github.com/weft-labs/sigscout-cli/internal/logger"
)

const (
	// fireHour is the local time-of-day at which scheduled fetches run.
	fireHour = 9

	// fireWeekday is the day the weekly cadence fires on.
	fireWeekday = time.Monday
)

// Ensure Scheduler implements the interface.
var _ driving.SchedulerService = (*Scheduler)(nil)

// Scheduler maintains one recurring job per enabled cadence and the
// manual trigger. Reschedule always performs a full cancel-then-
// recreate, so the active job set trivially equals the current
// configuration.
type Scheduler struct {
	configStore driven.ConfigStore
	runner      driving.FetchRunner

	// now is the clock; overridable in tests.
	now func() time.Time

	mu   sync.Mutex
	jobs map[string]chan struct{}
	wg   sync.WaitGroup
}

// NewScheduler creates a scheduler with no active jobs.
func NewScheduler(configStore driven.ConfigStore, runner driving.FetchRunner) *Scheduler {
	return &Scheduler{
		configStore: configStore,
		runner:      runner,
		now:         time.Now,
		jobs:        make(map[string]chan struct{}),
	}
}

// Reschedule cancels every active job, then — only when the pipeline
// is enabled — creates one job per cadence enabled in the
// configuration. Cancellation of future firings is synchronous; an
// in-flight run is left to finish.
func (s *Scheduler) Reschedule(_ context.Context, cfg domain.PipelineConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelAllLocked()

	if !cfg.PipelineEnabled {
		logger.Info("scheduler: pipeline disabled, no jobs scheduled")
		return nil
	}

	for _, cadence := range cfg.EnabledCadences() {
		s.startJobLocked(cadence)
	}
	return nil
}

// TriggerNow runs the orchestrator immediately against a freshly
// loaded configuration, independent of job state. The enabled gate is
// the orchestrator's.
func (s *Scheduler) TriggerNow(ctx context.Context) (*domain.FetchSummary, error) {
	cfg, err := s.configStore.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.runner.RunAll(ctx, cfg)
}

// ActiveJobs returns the scheduled cadence names in canonical order.
func (s *Scheduler) ActiveJobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var names []string
	for _, cadence := range domain.Cadences {
		if _, ok := s.jobs[cadence]; ok {
			names = append(names, cadence)
		}
	}
	return names
}

// Stop cancels all jobs and waits for their goroutines to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.cancelAllLocked()
	s.mu.Unlock()

	s.wg.Wait()
}

// cancelAllLocked closes every job's cancel channel. Callers hold mu.
func (s *Scheduler) cancelAllLocked() {
	for cadence, cancel := range s.jobs {
		close(cancel)
		delete(s.jobs, cadence)
	}
}

// startJobLocked registers a cadence job and starts its loop. Callers
// hold mu.
func (s *Scheduler) startJobLocked(cadence string) {
	cancel := make(chan struct{})
	s.jobs[cadence] = cancel

	s.wg.Add(1)
	go s.runJob(cadence, cancel)

	logger.Info("scheduler: %s job scheduled, next fire %s",
		cadence, nextFireTime(cadence, s.now()).Format(time.RFC3339))
}

// runJob sleeps until each next fire time and triggers a run.
func (s *Scheduler) runJob(cadence string, cancel chan struct{}) {
	defer s.wg.Done()

	for {
		next := nextFireTime(cadence, s.now())
		timer := time.NewTimer(next.Sub(s.now()))

		select {
		case <-cancel:
			timer.Stop()
			return
		case <-timer.C:
		}

		s.fire(cadence)

		// A cancellation during the run stops the job before the
		// next firing is armed.
		select {
		case <-cancel:
			return
		default:
		}
	}
}

// fire reloads the configuration and runs the orchestrator. Scheduled
// firings honour the pipeline-enabled gate even when the job predates
// a disabling edit.
func (s *Scheduler) fire(cadence string) {
	ctx := context.Background()

	cfg, err := s.configStore.Load(ctx)
	if err != nil {
		logger.Error("scheduler: load config for %s fire: %v", cadence, err)
		return
	}
	if !cfg.PipelineEnabled {
		logger.Debug("scheduler: %s fire skipped, pipeline disabled", cadence)
		return
	}

	if _, err := s.runner.RunAll(ctx, cfg); err != nil {
		logger.Error("scheduler: %s run failed: %v", cadence, err)
	}
}

// nextFireTime computes the next firing after now: daily at fireHour,
// weekly on fireWeekday at fireHour.
func nextFireTime(cadence string, now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), fireHour, 0, 0, 0, now.Location())

	if cadence == domain.CadenceWeekly {
		for next.Weekday() != fireWeekday || !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}
		return next
	}

	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
