// Package driving defines the interfaces through which outer adapters
// (CLI, HTTP API, MCP) invoke the core services.
package driving
