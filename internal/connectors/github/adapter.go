// Package github fetches trending repositories via the GitHub search
// API: repositories created in the last week, ordered by stars.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
	"github.com/weft-labs/sigscout-cli/internal/core/ports/driven"
	"github.com/weft-labs/sigscout-cli/internal/logger"
)

const (
	// DefaultTimeout is the HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// trendingWindow is how far back repository creation dates reach.
	trendingWindow = 7 * 24 * time.Hour

	// EnvToken is the primary token environment variable. The
	// generic GITHUB_TOKEN is honoured as a fallback.
	EnvToken = "SIGSCOUT_GITHUB_TOKEN"

	envTokenFallback = "GITHUB_TOKEN"
)

// Ensure Adapter implements the interface.
var _ driven.SourceAdapter = (*Adapter)(nil)

// Adapter fetches trending repositories. Unauthenticated requests
// work within GitHub's low anonymous search quota; setting a token
// raises it.
type Adapter struct {
	gh  *gh.Client
	now func() time.Time
}

// Option configures the adapter.
type Option func(*Adapter)

// WithClient overrides the go-github client. Used by tests.
func WithClient(client *gh.Client) Option {
	return func(a *Adapter) { a.gh = client }
}

// WithNow overrides the clock. Used by tests.
func WithNow(now func() time.Time) Option {
	return func(a *Adapter) { a.now = now }
}

// NewAdapter creates a GitHub adapter, authenticating when a token is
// present in the environment.
func NewAdapter(opts ...Option) *Adapter {
	a := &Adapter{now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	if a.gh == nil {
		a.gh = newClient(context.Background())
	}
	return a
}

// newClient builds the go-github client, with oauth2 transport when a
// token is configured.
func newClient(ctx context.Context) *gh.Client {
	token := os.Getenv(EnvToken)
	if token == "" {
		token = os.Getenv(envTokenFallback)
	}

	if token == "" {
		logger.Debug("No GitHub token configured, using anonymous client")
		return gh.NewClient(&http.Client{Timeout: DefaultTimeout})
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout
	return gh.NewClient(tc)
}

// Source returns the source identifier.
func (a *Adapter) Source() string {
	return domain.SourceGitHub
}

// Fetch returns up to limit repositories created within the trending
// window, most starred first.
func (a *Adapter) Fetch(ctx context.Context, limit int) ([]domain.RawItem, error) {
	if limit <= 0 {
		return []domain.RawItem{}, nil
	}

	since := a.now().UTC().Add(-trendingWindow).Format("2006-01-02")
	query := fmt.Sprintf("created:>%s", since)

	opts := &gh.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: gh.ListOptions{PerPage: limit},
	}

	result, _, err := a.gh.Search.Repositories(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("searching github repositories: %w", err)
	}

	items := make([]domain.RawItem, 0, len(result.Repositories))
	for _, repo := range result.Repositories {
		if len(items) >= limit {
			break
		}
		items = append(items, mapRepository(repo))
	}
	return items, nil
}

// mapRepository converts one repository into the uniform candidate
// shape.
func mapRepository(repo *gh.Repository) domain.RawItem {
	title := repo.GetFullName()
	if title == "" {
		title = repo.GetName()
	}

	repoURL := repo.GetHTMLURL()
	if repoURL == "" {
		repoURL = "https://github.com/" + url.PathEscape(title)
	}

	description := repo.GetDescription()
	if description == "" {
		description = domain.NoDescription
	}
	if stars := repo.GetStargazersCount(); stars > 0 {
		description = fmt.Sprintf("%s (%d stars)", description, stars)
	}

	return domain.RawItem{
		Title:       title,
		URL:         repoURL,
		Description: description,
	}
}
