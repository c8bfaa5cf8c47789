package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
)

var (
	itemsSource string
	itemsJSON   bool

	approveTitle    string
	approveContext  string
	approveWhy      string
	approveTags     []string
	approveFollowUp bool
	approveNotes    string

	configEnable         bool
	configDisable        bool
	configEnableSources  []string
	configDisableSources []string
	configLimits         []string
	configDaily          string
	configWeekly         string

	runsLimit int
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Manage the ingestion pipeline",
	Long: `Inspect pending candidate items, approve or discard them, trigger
fetches and configure sources and cadences.`,
}

var pipelineItemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List pending candidate items",
	RunE:  runPipelineItems,
}

var pipelineFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run an ingestion fetch now",
	Long: `Triggers an immediate fetch across all enabled sources. The pipeline
must be enabled; individual source failures are tolerated and reported
in the per-source counts.`,
	RunE: runPipelineFetch,
}

var pipelineApproveCmd = &cobra.Command{
	Use:   "approve [item-id]",
	Short: "Promote a pending item into a signal",
	Long: `Promotes a pending item into a curated signal. The rationale and at
least one tag are required; the title defaults to the item's raw
title.`,
	Args: cobra.ExactArgs(1),
	RunE: runPipelineApprove,
}

var pipelineDiscardCmd = &cobra.Command{
	Use:   "discard [item-id]",
	Short: "Discard a pending item",
	Args:  cobra.ExactArgs(1),
	RunE:  runPipelineDiscard,
}

var pipelineConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the pipeline configuration",
	Long: `Without flags, prints the current configuration. With flags, applies
the changes, persists them and reschedules the recurring jobs.

Examples:
  sigscout pipeline config
  sigscout pipeline config --enable --enable-source hackernews --daily on
  sigscout pipeline config --limit github=10 --weekly off`,
	RunE: runPipelineConfig,
}

var pipelineRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent fetch run history",
	RunE:  runPipelineRuns,
}

func init() {
	pipelineItemsCmd.Flags().StringVar(&itemsSource, "source", "", "only items from this source")
	pipelineItemsCmd.Flags().BoolVar(&itemsJSON, "json", false, "output as JSON")

	pipelineApproveCmd.Flags().StringVarP(&approveTitle, "title", "t", "", "signal title (defaults to the raw title)")
	pipelineApproveCmd.Flags().StringVarP(&approveContext, "context", "c", "", "source context (defaults to the item URL)")
	pipelineApproveCmd.Flags().StringVarP(&approveWhy, "why", "w", "", "why it matters (required)")
	pipelineApproveCmd.Flags().StringSliceVar(&approveTags, "tags", nil, "category tags (required, comma-separated)")
	pipelineApproveCmd.Flags().BoolVar(&approveFollowUp, "follow-up", false, "mark for follow-up")
	pipelineApproveCmd.Flags().StringVar(&approveNotes, "notes", "", "free-form notes")

	pipelineConfigCmd.Flags().BoolVar(&configEnable, "enable", false, "enable the pipeline")
	pipelineConfigCmd.Flags().BoolVar(&configDisable, "disable", false, "disable the pipeline")
	pipelineConfigCmd.Flags().StringSliceVar(&configEnableSources, "enable-source", nil, "enable a source")
	pipelineConfigCmd.Flags().StringSliceVar(&configDisableSources, "disable-source", nil, "disable a source")
	pipelineConfigCmd.Flags().StringSliceVar(&configLimits, "limit", nil, "per-source limit, source=n")
	pipelineConfigCmd.Flags().StringVar(&configDaily, "daily", "", "daily cadence: on or off")
	pipelineConfigCmd.Flags().StringVar(&configWeekly, "weekly", "", "weekly cadence: on or off")

	pipelineRunsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 10, "maximum number of runs")

	pipelineCmd.AddCommand(pipelineItemsCmd)
	pipelineCmd.AddCommand(pipelineFetchCmd)
	pipelineCmd.AddCommand(pipelineApproveCmd)
	pipelineCmd.AddCommand(pipelineDiscardCmd)
	pipelineCmd.AddCommand(pipelineConfigCmd)
	pipelineCmd.AddCommand(pipelineRunsCmd)
	rootCmd.AddCommand(pipelineCmd)
}

func runPipelineItems(cmd *cobra.Command, _ []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	ctx := cmd.Context()
	var (
		items []domain.PipelineItem
		err   error
	)
	if itemsSource != "" {
		items, err = pipelineService.ItemsBySource(ctx, itemsSource)
	} else {
		items, err = pipelineService.Items(ctx)
	}
	if err != nil {
		return fmt.Errorf("listing pending items: %w", err)
	}

	if itemsJSON {
		return outputJSON(cmd, items)
	}

	if len(items) == 0 {
		cmd.Println("No pending items.")
		return nil
	}
	for i := range items {
		item := &items[i]
		cmd.Printf("[%d] %s\n", item.ID, item.RawTitle)
		cmd.Printf("    %s | %s | %s\n",
			item.Source,
			item.FetchDate.Format("2006-01-02 15:04"),
			item.RawSource)
	}
	return nil
}

func runPipelineFetch(cmd *cobra.Command, _ []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	summary, err := pipelineService.FetchNow(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	printSummary(cmd, summary)
	return nil
}

func printSummary(cmd *cobra.Command, summary *domain.FetchSummary) {
	cmd.Printf("Fetched %d items, saved %d as pending\n",
		summary.TotalFetched, summary.TotalSaved)

	sources := make([]string, 0, len(summary.PerSource))
	for source := range summary.PerSource {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	for _, source := range sources {
		cmd.Printf("  %s: %d\n", source, summary.PerSource[source])
	}
}

func runPipelineApprove(cmd *cobra.Command, args []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	signal, err := pipelineService.Approve(cmd.Context(), id, domain.SignalDraft{
		Title:          approveTitle,
		SourceContext:  approveContext,
		WhyItMatters:   approveWhy,
		CategoryTags:   approveTags,
		FollowUpNeeded: approveFollowUp,
		Notes:          approveNotes,
	})
	if err != nil {
		return fmt.Errorf("approving item %d: %w", id, err)
	}

	cmd.Printf("Approved item %d as signal %d: %s\n", id, signal.ID, signal.Title)
	return nil
}

func runPipelineDiscard(cmd *cobra.Command, args []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := pipelineService.Discard(cmd.Context(), id); err != nil {
		return fmt.Errorf("discarding item %d: %w", id, err)
	}

	cmd.Printf("Discarded item %d\n", id)
	return nil
}

func runPipelineConfig(cmd *cobra.Command, _ []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}
	if configEnable && configDisable {
		return errors.New("--enable and --disable are mutually exclusive")
	}

	ctx := cmd.Context()
	cfg, err := pipelineService.Config(ctx)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	changed, err := applyConfigFlags(cmd, &cfg)
	if err != nil {
		return err
	}

	if changed {
		if err := pipelineService.SaveConfig(ctx, cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		cmd.Println("Configuration saved.")
	}

	printConfig(cmd, cfg)
	return nil
}

// applyConfigFlags mutates cfg per the provided flags and reports
// whether anything changed.
func applyConfigFlags(cmd *cobra.Command, cfg *domain.PipelineConfig) (bool, error) {
	changed := false

	if configEnable {
		cfg.PipelineEnabled = true
		changed = true
	}
	if configDisable {
		cfg.PipelineEnabled = false
		changed = true
	}

	for _, source := range configEnableSources {
		sc := cfg.Sources[source]
		sc.Enabled = true
		if sc.Limit == 0 && !cmd.Flags().Changed("limit") {
			sc.Limit = domain.DefaultSourceLimit
		}
		cfg.Sources[source] = sc
		changed = true
	}
	for _, source := range configDisableSources {
		sc := cfg.Sources[source]
		sc.Enabled = false
		cfg.Sources[source] = sc
		changed = true
	}

	for _, spec := range configLimits {
		source, value, ok := strings.Cut(spec, "=")
		if !ok {
			return false, fmt.Errorf("invalid limit %q, expected source=n", spec)
		}
		var limit int
		if _, err := fmt.Sscanf(value, "%d", &limit); err != nil || limit < 0 {
			return false, fmt.Errorf("invalid limit %q, expected source=n", spec)
		}
		sc := cfg.Sources[source]
		sc.Limit = limit
		cfg.Sources[source] = sc
		changed = true
	}

	for cadence, value := range map[string]string{
		domain.CadenceDaily:  configDaily,
		domain.CadenceWeekly: configWeekly,
	} {
		if value == "" {
			continue
		}
		switch value {
		case "on":
			cfg.FetchIntervals[cadence] = true
		case "off":
			cfg.FetchIntervals[cadence] = false
		default:
			return false, fmt.Errorf("invalid %s value %q, expected on or off", cadence, value)
		}
		changed = true
	}

	return changed, nil
}

func printConfig(cmd *cobra.Command, cfg domain.PipelineConfig) {
	state := "disabled"
	if cfg.PipelineEnabled {
		state = "enabled"
	}
	cmd.Printf("Pipeline: %s\n", state)

	sources := make([]string, 0, len(cfg.Sources))
	for source := range cfg.Sources {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	cmd.Println("Sources:")
	for _, source := range sources {
		sc := cfg.Sources[source]
		state := "off"
		if sc.Enabled {
			state = "on"
		}
		cmd.Printf("  %-12s %-3s limit %d\n", source, state, cfg.SourceLimit(source))
	}

	cmd.Println("Cadences:")
	for _, cadence := range domain.Cadences {
		state := "off"
		if cfg.FetchIntervals[cadence] {
			state = "on"
		}
		cmd.Printf("  %-12s %s\n", cadence, state)
	}
}

func runPipelineRuns(cmd *cobra.Command, _ []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	runs, err := pipelineService.Runs(cmd.Context(), runsLimit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}
	for i := range runs {
		run := &runs[i]
		cmd.Printf("%s  fetched %d saved %d  (%s)\n",
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.TotalFetched, run.TotalSaved,
			run.EndedAt.Sub(run.StartedAt).Round(10*time.Millisecond))
		if run.Error != "" {
			cmd.Printf("  error: %s\n", run.Error)
		}
	}
	return nil
}
