package domain

import "time"

// Source identifiers for the built-in adapters.
const (
	SourceHackerNews = "hackernews"
	SourceGitHub     = "github"
	SourceApple      = "apple"
)

// NoDescription is the deterministic placeholder substituted when an
// upstream item carries no description.
const NoDescription = "No description provided."

// RawItem is the uniform candidate shape every source adapter maps its
// bespoke response into.
type RawItem struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// PipelineItem is an unreviewed candidate fetched from an external
// source, pending approval or discard.
type PipelineItem struct {
	// ID is the store-assigned identifier.
	ID int64 `json:"itemId"`

	// RawTitle is the upstream item title.
	RawTitle string `json:"rawTitle"`

	// RawSource is the upstream URL.
	RawSource string `json:"rawSource"`

	// RawDescription is the upstream description, or the
	// NoDescription placeholder when the upstream field was absent.
	RawDescription string `json:"rawDescription"`

	// FetchDate is set at ingestion.
	FetchDate time.Time `json:"fetchDate"`

	// Approved is true once the item has been promoted to a Signal.
	// Approved items are immutable apart from this field pair.
	Approved bool `json:"isApproved"`

	// SignalID is the weak back-reference to the promoted Signal.
	// It is non-nil iff Approved is true. Resolving it is an explicit
	// lookup; deleting the Signal never touches this row.
	SignalID *int64 `json:"associatedSignalId"`

	// Source is the identifier of the adapter that produced the item.
	Source string `json:"source"`
}

// FetchSummary reports the outcome of one orchestrator run.
type FetchSummary struct {
	// PerSource maps source identifier to the number of items fetched.
	PerSource map[string]int `json:"perSourceCounts"`

	// TotalFetched is the combined item count across sources.
	TotalFetched int `json:"totalFetched"`

	// TotalSaved is the number of items persisted as pending candidates.
	TotalSaved int `json:"totalSaved"`
}

// NewFetchSummary returns an empty summary with an initialised map.
func NewFetchSummary() *FetchSummary {
	return &FetchSummary{PerSource: make(map[string]int)}
}

// FetchRun is the persisted history record of one executed run.
type FetchRun struct {
	// ID is a uuid assigned when the run starts.
	ID string

	StartedAt time.Time
	EndedAt   time.Time

	PerSource    map[string]int
	TotalFetched int
	TotalSaved   int

	// Error holds the structural failure message, empty on success.
	// Per-source failures never appear here; they are absorbed by the
	// orchestrator.
	Error string
}
