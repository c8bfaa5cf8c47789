// Package driven defines the interfaces the core services depend on:
// stores, source adapters, configuration and notification. Adapters
// under internal/adapters/driven and internal/connectors implement
// these interfaces.
package driven
