package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
)

// SignalOutput is the wire shape of one curated signal.
type SignalOutput struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	SourceContext  string   `json:"source_context,omitempty"`
	WhyItMatters   string   `json:"why_it_matters"`
	DateCreated    string   `json:"date_created"`
	FollowUpNeeded bool     `json:"follow_up_needed"`
	Notes          string   `json:"notes,omitempty"`
	CategoryTags   []string `json:"category_tags"`
}

// ItemOutput is the wire shape of one pending pipeline item.
type ItemOutput struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Source      string `json:"source"`
	FetchDate   string `json:"fetch_date"`
}

// ListSignalsInput is the input schema for the list_signals tool.
type ListSignalsInput struct {
	Tag string `json:"tag,omitempty" jsonschema:"only return signals carrying this exact category tag"`
}

// ListSignalsOutput is the output schema for the list_signals tool.
type ListSignalsOutput struct {
	Signals []SignalOutput `json:"signals"`
	Count   int            `json:"count"`
}

// SearchSignalsInput is the input schema for the search_signals tool.
type SearchSignalsInput struct {
	Query string `json:"query" jsonschema:"text to match against title, source context and rationale"`
}

// CreateSignalInput is the input schema for the create_signal tool.
type CreateSignalInput struct {
	Title          string   `json:"title" jsonschema:"short headline for the observation"`
	SourceContext  string   `json:"source_context,omitempty" jsonschema:"where the signal was observed, typically a URL"`
	WhyItMatters   string   `json:"why_it_matters" jsonschema:"why this observation is worth tracking"`
	CategoryTags   []string `json:"category_tags" jsonschema:"at least one classification tag"`
	FollowUpNeeded bool     `json:"follow_up_needed,omitempty" jsonschema:"mark the signal for later review"`
	Notes          string   `json:"notes,omitempty" jsonschema:"free-form notes"`
}

// CreateSignalOutput is the output schema for the create_signal tool.
type CreateSignalOutput struct {
	Signal SignalOutput `json:"signal"`
}

// ListPendingItemsInput is the input schema for the list_pending_items tool.
type ListPendingItemsInput struct {
	Source string `json:"source,omitempty" jsonschema:"only items fetched from this source (hackernews, github or apple)"`
}

// ListPendingItemsOutput is the output schema for the list_pending_items tool.
type ListPendingItemsOutput struct {
	Items []ItemOutput `json:"items"`
	Count int          `json:"count"`
}

// ApproveItemInput is the input schema for the approve_item tool.
type ApproveItemInput struct {
	ItemID         int64    `json:"item_id" jsonschema:"id of the pending item to promote"`
	Title          string   `json:"title,omitempty" jsonschema:"signal title, defaults to the item's raw title"`
	SourceContext  string   `json:"source_context,omitempty" jsonschema:"source context, defaults to the item URL"`
	WhyItMatters   string   `json:"why_it_matters" jsonschema:"why this item is worth keeping"`
	CategoryTags   []string `json:"category_tags" jsonschema:"at least one classification tag"`
	FollowUpNeeded bool     `json:"follow_up_needed,omitempty" jsonschema:"mark the signal for later review"`
	Notes          string   `json:"notes,omitempty" jsonschema:"free-form notes"`
}

// ApproveItemOutput is the output schema for the approve_item tool.
type ApproveItemOutput struct {
	Signal SignalOutput `json:"signal"`
}

// DiscardItemInput is the input schema for the discard_item tool.
type DiscardItemInput struct {
	ItemID int64 `json:"item_id" jsonschema:"id of the pending item to discard"`
}

// DiscardItemOutput is the output schema for the discard_item tool.
type DiscardItemOutput struct {
	Discarded bool `json:"discarded"`
}

// FetchNowInput is the input schema for the fetch_now tool.
type FetchNowInput struct{}

// FetchNowOutput is the output schema for the fetch_now tool.
type FetchNowOutput struct {
	PerSource    map[string]int `json:"per_source"`
	TotalFetched int            `json:"total_fetched"`
	TotalSaved   int            `json:"total_saved"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_signals",
		Description: "List curated signals, newest first, optionally filtered by tag",
	}, s.handleListSignals)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_signals",
		Description: "Search signals by title, source context or rationale",
	}, s.handleSearchSignals)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_signal",
		Description: "Record a new curated signal",
	}, s.handleCreateSignal)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_pending_items",
		Description: "List pending pipeline items awaiting review",
	}, s.handleListPendingItems)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "approve_item",
		Description: "Promote a pending pipeline item into a curated signal",
	}, s.handleApproveItem)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "discard_item",
		Description: "Discard a pending pipeline item",
	}, s.handleDiscardItem)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "fetch_now",
		Description: "Trigger an immediate fetch across all enabled sources",
	}, s.handleFetchNow)
}

func (s *Server) handleListSignals(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListSignalsInput,
) (*mcp.CallToolResult, ListSignalsOutput, error) {
	var (
		signals []domain.Signal
		err     error
	)
	if input.Tag != "" {
		signals, err = s.ports.Signals.FilterByTag(ctx, input.Tag)
	} else {
		signals, err = s.ports.Signals.List(ctx)
	}
	if err != nil {
		return nil, ListSignalsOutput{}, err
	}

	return nil, ListSignalsOutput{
		Signals: mapSignals(signals),
		Count:   len(signals),
	}, nil
}

func (s *Server) handleSearchSignals(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchSignalsInput,
) (*mcp.CallToolResult, ListSignalsOutput, error) {
	signals, err := s.ports.Signals.Search(ctx, input.Query)
	if err != nil {
		return nil, ListSignalsOutput{}, err
	}

	return nil, ListSignalsOutput{
		Signals: mapSignals(signals),
		Count:   len(signals),
	}, nil
}

func (s *Server) handleCreateSignal(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateSignalInput,
) (*mcp.CallToolResult, CreateSignalOutput, error) {
	signal, err := s.ports.Signals.Create(ctx, domain.SignalDraft{
		Title:          input.Title,
		SourceContext:  input.SourceContext,
		WhyItMatters:   input.WhyItMatters,
		CategoryTags:   input.CategoryTags,
		FollowUpNeeded: input.FollowUpNeeded,
		Notes:          input.Notes,
	})
	if err != nil {
		return nil, CreateSignalOutput{}, err
	}

	return nil, CreateSignalOutput{Signal: mapSignal(signal)}, nil
}

func (s *Server) handleListPendingItems(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListPendingItemsInput,
) (*mcp.CallToolResult, ListPendingItemsOutput, error) {
	var (
		items []domain.PipelineItem
		err   error
	)
	if input.Source != "" {
		items, err = s.ports.Pipeline.ItemsBySource(ctx, input.Source)
	} else {
		items, err = s.ports.Pipeline.Items(ctx)
	}
	if err != nil {
		return nil, ListPendingItemsOutput{}, err
	}

	output := ListPendingItemsOutput{
		Items: make([]ItemOutput, len(items)),
		Count: len(items),
	}
	for i := range items {
		output.Items[i] = ItemOutput{
			ID:          items[i].ID,
			Title:       items[i].RawTitle,
			URL:         items[i].RawSource,
			Description: items[i].RawDescription,
			Source:      items[i].Source,
			FetchDate:   items[i].FetchDate.Format(time.RFC3339),
		}
	}
	return nil, output, nil
}

func (s *Server) handleApproveItem(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ApproveItemInput,
) (*mcp.CallToolResult, ApproveItemOutput, error) {
	signal, err := s.ports.Pipeline.Approve(ctx, input.ItemID, domain.SignalDraft{
		Title:          input.Title,
		SourceContext:  input.SourceContext,
		WhyItMatters:   input.WhyItMatters,
		CategoryTags:   input.CategoryTags,
		FollowUpNeeded: input.FollowUpNeeded,
		Notes:          input.Notes,
	})
	if err != nil {
		return nil, ApproveItemOutput{}, err
	}

	return nil, ApproveItemOutput{Signal: mapSignal(signal)}, nil
}

func (s *Server) handleDiscardItem(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DiscardItemInput,
) (*mcp.CallToolResult, DiscardItemOutput, error) {
	if err := s.ports.Pipeline.Discard(ctx, input.ItemID); err != nil {
		return nil, DiscardItemOutput{}, err
	}
	return nil, DiscardItemOutput{Discarded: true}, nil
}

func (s *Server) handleFetchNow(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ FetchNowInput,
) (*mcp.CallToolResult, FetchNowOutput, error) {
	summary, err := s.ports.Pipeline.FetchNow(ctx)
	if err != nil {
		return nil, FetchNowOutput{}, err
	}

	return nil, FetchNowOutput{
		PerSource:    summary.PerSource,
		TotalFetched: summary.TotalFetched,
		TotalSaved:   summary.TotalSaved,
	}, nil
}

func mapSignal(signal *domain.Signal) SignalOutput {
	return SignalOutput{
		ID:             signal.ID,
		Title:          signal.Title,
		SourceContext:  signal.SourceContext,
		WhyItMatters:   signal.WhyItMatters,
		DateCreated:    signal.DateCreated.Format(time.RFC3339),
		FollowUpNeeded: signal.FollowUpNeeded,
		Notes:          signal.Notes,
		CategoryTags:   signal.CategoryTags,
	}
}

func mapSignals(signals []domain.Signal) []SignalOutput {
	out := make([]SignalOutput, len(signals))
	for i := range signals {
		out[i] = mapSignal(&signals[i])
	}
	return out
}
