// Package applefeed fetches Apple Newsroom announcements from the
// public RSS feed.
package applefeed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
	"github.com/weft-labs/sigscout-cli/internal/core/ports/driven"
)

const (
	// DefaultFeedURL is the Apple Newsroom RSS feed.
	DefaultFeedURL = "https://www.apple.com/newsroom/rss-feed.rss"

	// DefaultTimeout bounds the feed request.
	DefaultTimeout = 15 * time.Second
)

// Ensure Adapter implements the interface.
var _ driven.SourceAdapter = (*Adapter)(nil)

// Adapter fetches newsroom announcements from the RSS feed.
type Adapter struct {
	feedURL string
	parser  *gofeed.Parser
	timeout time.Duration
}

// Option configures the adapter.
type Option func(*Adapter)

// WithFeedURL overrides the feed location. Used by tests.
func WithFeedURL(feedURL string) Option {
	return func(a *Adapter) { a.feedURL = feedURL }
}

// NewAdapter creates an Apple Newsroom adapter.
func NewAdapter(opts ...Option) *Adapter {
	a := &Adapter{
		feedURL: DefaultFeedURL,
		parser:  gofeed.NewParser(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Source returns the source identifier.
func (a *Adapter) Source() string {
	return domain.SourceApple
}

// Fetch returns up to limit feed entries in feed order.
func (a *Adapter) Fetch(ctx context.Context, limit int) ([]domain.RawItem, error) {
	if limit <= 0 {
		return []domain.RawItem{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	feed, err := a.parser.ParseURLWithContext(a.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching apple newsroom feed: %w", err)
	}

	items := make([]domain.RawItem, 0, limit)
	for _, entry := range feed.Items {
		if len(items) >= limit {
			break
		}
		items = append(items, mapEntry(entry))
	}
	return items, nil
}

// mapEntry converts one feed entry into the uniform candidate shape.
func mapEntry(entry *gofeed.Item) domain.RawItem {
	description := strings.TrimSpace(entry.Description)
	if description == "" {
		description = strings.TrimSpace(entry.Content)
	}
	if description == "" {
		description = domain.NoDescription
	}

	return domain.RawItem{
		Title:       entry.Title,
		URL:         entry.Link,
		Description: description,
	}
}
