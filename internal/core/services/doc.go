// Package services contains the core business logic: the signal
// record service, the fetch orchestrator, the approval workflow over
// pending pipeline items, and the cadence scheduler. Services depend
// only on domain types and ports.
package services
