// Package domain contains the core business entities for sigscout:
// curated signals, pending pipeline items, pipeline configuration and
// fetch run summaries. It has no dependencies on adapters or services.
package domain
