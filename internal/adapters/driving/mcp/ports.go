package mcp

import (
	"github.com/weft-labs/sigscout-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP
// server. This provides a single injection point.
type Ports struct {
	// Signals manages the curated signal log.
	Signals driving.SignalService

	// Pipeline is the review surface over pending candidates.
	Pipeline driving.PipelineService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Signals == nil {
		return ErrMissingSignalService
	}
	if p.Pipeline == nil {
		return ErrMissingPipelineService
	}
	return nil
}
