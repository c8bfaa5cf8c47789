// Package mcp provides an MCP (Model Context Protocol) server adapter
// for sigscout. It lets AI assistants browse the signal log and drive
// the ingestion pipeline.
package mcp

import "errors"

// ErrMissingSignalService is returned when the signal service is not provided.
var ErrMissingSignalService = errors.New("mcp: signal service is required")

// ErrMissingPipelineService is returned when the pipeline service is not provided.
var ErrMissingPipelineService = errors.New("mcp: pipeline service is required")
