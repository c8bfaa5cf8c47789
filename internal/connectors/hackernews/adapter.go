// Package hackernews fetches front-page stories from the Algolia
// Hacker News search API.
package hackernews

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
	"github.com/weft-labs/sigscout-cli/internal/core/ports/driven"
)

const (
	// DefaultBaseURL is the Algolia HN search endpoint.
	DefaultBaseURL = "https://hn.algolia.com/api/v1"

	// DefaultTimeout is the HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	// requestRate is the proactive throttle. The Algolia API allows
	// far more, but one fetch per run never needs it.
	requestRate = 1.0
)

// Ensure Adapter implements the interface.
var _ driven.SourceAdapter = (*Adapter)(nil)

// Adapter fetches front-page stories via the Algolia search API.
type Adapter struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// Option configures the adapter.
type Option func(*Adapter)

// WithBaseURL overrides the API endpoint. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(a *Adapter) { a.baseURL = baseURL }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(a *Adapter) { a.client = client }
}

// NewAdapter creates a Hacker News adapter.
func NewAdapter(opts ...Option) *Adapter {
	a := &Adapter{
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(requestRate), 1),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Source returns the source identifier.
func (a *Adapter) Source() string {
	return domain.SourceHackerNews
}

// searchResponse is the subset of the Algolia response we consume.
type searchResponse struct {
	Hits []hit `json:"hits"`
}

type hit struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	StoryText string `json:"story_text"`
	ObjectID  string `json:"objectID"`
	Points    int    `json:"points"`
	Author    string `json:"author"`
}

// Fetch returns up to limit front-page stories in ranking order.
func (a *Adapter) Fetch(ctx context.Context, limit int) ([]domain.RawItem, error) {
	if limit <= 0 {
		return []domain.RawItem{}, nil
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	endpoint := fmt.Sprintf("%s/search?tags=front_page&hitsPerPage=%s",
		a.baseURL, url.QueryEscape(strconv.Itoa(limit)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching hackernews front page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hackernews API returned status %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding hackernews response: %w", err)
	}

	items := make([]domain.RawItem, 0, len(decoded.Hits))
	for _, h := range decoded.Hits {
		if len(items) >= limit {
			break
		}
		items = append(items, mapHit(h))
	}
	return items, nil
}

// mapHit converts one Algolia hit into the uniform candidate shape.
// Ask/Show HN stories carry no external URL; those fall back to the
// discussion page.
func mapHit(h hit) domain.RawItem {
	itemURL := h.URL
	if itemURL == "" {
		itemURL = "https://news.ycombinator.com/item?id=" + h.ObjectID
	}

	description := h.StoryText
	if description == "" {
		if h.Points > 0 || h.Author != "" {
			description = fmt.Sprintf("%d points by %s on Hacker News", h.Points, h.Author)
		} else {
			description = domain.NoDescription
		}
	}

	return domain.RawItem{
		Title:       h.Title,
		URL:         itemURL,
		Description: description,
	}
}
