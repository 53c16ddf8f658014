package search

import (
	"context"
	"errors"
	"fmt"

	"compass/compass/config"
	"compass/compass/utils/types"
)

const (
	// MaxCompanyResults caps organic results per company search.
	MaxCompanyResults = 4
	// MaxNewsResults caps news items per company.
	MaxNewsResults = 5
)

// ErrSearchUnavailable marks a failed search call, as opposed to a search
// that found nothing.
var ErrSearchUnavailable = errors.New("search unavailable")

// CompanySearcher finds overview pages for a company.
type CompanySearcher interface {
	SearchCompany(ctx context.Context, name string) ([]types.SearchResult, error)
}

// NewsSearcher finds recent news for a company.
type NewsSearcher interface {
	SearchNews(ctx context.Context, name string) ([]types.NewsItem, error)
}

// CompanyQuery is the organic query for name.
func CompanyQuery(name string) string {
	return fmt.Sprintf("%s company overview OR about OR wiki OR products and services", name)
}

// NewsQuery is the news query for name.
func NewsQuery(name string) string {
	return fmt.Sprintf("%s latest news", name)
}

// NewFromConfig returns the company searcher and news source picked by cfg.
func NewFromConfig(cfg config.Config) (CompanySearcher, NewsSearcher) {
	serp := NewSerpAPIClient(cfg.SearchBaseURL, cfg.SerpAPIKey, cfg.SearchTimeout)

	var company CompanySearcher = serp
	if cfg.SearchProvider == "duckduckgo" {
		company = NewDuckDuckGoClient("", cfg.SearchTimeout)
	}

	var news NewsSearcher = serp
	if cfg.NewsSource == "rss" {
		news = NewFeedClient(cfg.NewsFeedURL, cfg.SearchTimeout)
	}
	return company, news
}
