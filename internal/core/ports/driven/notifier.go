package driven

// Notifier pushes pipeline events to the UI layer. The orchestrator
// calls it after every executed persistence phase so pending-item views
// can refresh.
type Notifier interface {
	// PipelineItemsUpdated announces that the pending item set may
	// have changed; saved is the number of items persisted by the run
	// that triggered the event.
	PipelineItemsUpdated(saved int)
}
