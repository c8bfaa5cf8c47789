package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/weft-labs/sigscout-cli/internal/adapters/driving/httpapi"
	"github.com/weft-labs/sigscout-cli/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scheduler and HTTP API",
	Long: `Runs the ingestion scheduler and the JSON HTTP API until
interrupted. Recurring fetch jobs follow the pipeline configuration;
edits to the config file are picked up live, whether made through the
API, the CLI or a text editor.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8440",
		"listen address for the HTTP API")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if pipelineService == nil || schedulerService == nil || configStore == nil {
		return errors.New("services not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Schedule jobs from the current configuration
	cfg, err := configStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := schedulerService.Reschedule(ctx, cfg); err != nil {
		return fmt.Errorf("scheduling jobs: %w", err)
	}
	defer schedulerService.Stop()

	logActiveJobs(cmd)

	// Follow config file edits, including external ones
	err = configStore.Watch(ctx, func() {
		cfg, err := configStore.Load(context.Background())
		if err != nil {
			logger.Warn("Reloading config: %v", err)
			return
		}
		if err := schedulerService.Reschedule(context.Background(), cfg); err != nil {
			logger.Warn("Rescheduling: %v", err)
			return
		}
		logger.Info("Config reloaded, active jobs: %s",
			strings.Join(schedulerService.ActiveJobs(), ", "))
	})
	if err != nil {
		return fmt.Errorf("watching config: %w", err)
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Signals:  signalService,
		Pipeline: pipelineService,
		Events:   eventHub,
	})
	if err != nil {
		return err
	}

	cmd.Printf("sigscout serving on http://%s\n", serveAddr)
	return server.Run(ctx, serveAddr)
}

func logActiveJobs(cmd *cobra.Command) {
	jobs := schedulerService.ActiveJobs()
	if len(jobs) == 0 {
		cmd.Println("No recurring jobs scheduled (pipeline disabled or no cadence enabled)")
		return
	}
	cmd.Printf("Scheduled jobs: %s\n", strings.Join(jobs, ", "))
}
