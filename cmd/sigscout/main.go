package main

import (
	"fmt"
	"os"

	"github.com/weft-labs/sigscout-cli/internal/adapters/driven/config/file"
	"github.com/weft-labs/sigscout-cli/internal/adapters/driven/notify"
	"github.com/weft-labs/sigscout-cli/internal/adapters/driven/storage/sqlite"
	"github.com/weft-labs/sigscout-cli/internal/adapters/driving/cli"
	"github.com/weft-labs/sigscout-cli/internal/connectors"
	"github.com/weft-labs/sigscout-cli/internal/connectors/applefeed"
	"github.com/weft-labs/sigscout-cli/internal/connectors/github"
	"github.com/weft-labs/sigscout-cli/internal/connectors/hackernews"
	"github.com/weft-labs/sigscout-cli/internal/core/services"
)

// version is overridden at build time via
// -ldflags "-X main.version=v1.2.3".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	registry := connectors.NewRegistry(
		hackernews.NewAdapter(),
		github.NewAdapter(),
		applefeed.NewAdapter(),
	)

	hub := notify.NewHub()
	orchestrator := services.NewFetchOrchestrator(
		registry, store.PipelineStore(), store.RunStore(), hub)
	scheduler := services.NewScheduler(configStore, orchestrator)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Signals: services.NewSignalService(store.SignalStore()),
		Pipeline: services.NewPipelineService(
			store.PipelineStore(),
			store.SignalStore(),
			store.RunStore(),
			configStore,
			scheduler,
		),
		Scheduler: scheduler,
		Config:    configStore,
		Events:    hub,
	})

	return cli.Execute()
}
