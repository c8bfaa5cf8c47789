// Package cli implements the cobra command tree driving the core
// services.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/weft-labs/sigscout-cli/internal/adapters/driven/config/file"
	"github.com/weft-labs/sigscout-cli/internal/adapters/driven/notify"
	"github.com/weft-labs/sigscout-cli/internal/core/ports/driving"
	"github.com/weft-labs/sigscout-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services wired in by main before Execute.
var (
	signalService    driving.SignalService
	pipelineService  driving.PipelineService
	schedulerService driving.SchedulerService
	configStore      *file.ConfigStore
	eventHub         *notify.Hub
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "sigscout",
	Short: "Curate weak signals from a personal watchlist of sources",
	Long: `sigscout keeps a local log of weak signals: early, easily-missed
observations worth tracking. An ingestion pipeline pulls candidate
items from Hacker News, GitHub and Apple Newsroom on a configurable
cadence; you review the pending queue and promote the interesting ones
into curated signals.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"enable verbose logging")
}

// Services bundles everything the command tree depends on.
type Services struct {
	Signals   driving.SignalService
	Pipeline  driving.PipelineService
	Scheduler driving.SchedulerService
	Config    *file.ConfigStore
	Events    *notify.Hub
}

// SetServices injects the service implementations. Called by main
// before Execute, and by tests to swap in mocks.
func SetServices(s Services) {
	signalService = s.Signals
	pipelineService = s.Pipeline
	schedulerService = s.Scheduler
	configStore = s.Config
	eventHub = s.Events
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
