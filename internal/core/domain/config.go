package domain

import "sort"

// Cadence names for recurring fetch jobs.
const (
	CadenceDaily  = "daily"
	CadenceWeekly = "weekly"
)

// Cadences lists the supported cadence names.
var Cadences = []string{CadenceDaily, CadenceWeekly}

// DefaultSourceLimit is the per-source fetch limit used when none is
// configured.
const DefaultSourceLimit = 20

// SourceConfig holds per-source pipeline configuration.
type SourceConfig struct {
	// Enabled indicates whether the source participates in runs.
	Enabled bool `json:"enabled" toml:"enabled"`

	// Limit bounds the number of items fetched per run.
	Limit int `json:"limit" toml:"limit"`
}

// PipelineConfig is the process-wide ingestion configuration. It is
// loaded at startup, mutated only through an explicit save, and re-read
// by the scheduler and orchestrator on every run so edits take effect
// immediately.
type PipelineConfig struct {
	// PipelineEnabled gates all scheduled and manual fetching.
	PipelineEnabled bool `json:"pipelineEnabled" toml:"pipeline_enabled"`

	// Sources maps source identifier to its configuration.
	Sources map[string]SourceConfig `json:"sources" toml:"sources"`

	// FetchIntervals maps cadence name to whether a recurring job
	// should be scheduled for it.
	FetchIntervals map[string]bool `json:"fetchIntervals" toml:"fetch_intervals"`
}

// DefaultPipelineConfig returns the initial configuration: everything
// disabled, every known source present with the default limit.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		PipelineEnabled: false,
		Sources: map[string]SourceConfig{
			SourceHackerNews: {Enabled: false, Limit: DefaultSourceLimit},
			SourceGitHub:     {Enabled: false, Limit: DefaultSourceLimit},
			SourceApple:      {Enabled: false, Limit: DefaultSourceLimit},
		},
		FetchIntervals: map[string]bool{
			CadenceDaily:  false,
			CadenceWeekly: false,
		},
	}
}

// EnabledSources returns the identifiers of enabled sources in sorted
// order.
func (c PipelineConfig) EnabledSources() []string {
	var ids []string
	for id, sc := range c.Sources {
		if sc.Enabled {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// EnabledCadences returns the cadence names with an active interval, in
// the canonical order of Cadences.
func (c PipelineConfig) EnabledCadences() []string {
	var names []string
	for _, name := range Cadences {
		if c.FetchIntervals[name] {
			names = append(names, name)
		}
	}
	return names
}

// SourceLimit returns the configured limit for a source, falling back
// to the default when unset or negative.
func (c PipelineConfig) SourceLimit(source string) int {
	sc, ok := c.Sources[source]
	if !ok || sc.Limit < 0 {
		return DefaultSourceLimit
	}
	return sc.Limit
}
