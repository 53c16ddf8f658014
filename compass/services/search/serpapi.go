package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	httputils "compass/compass/utils/http"
	"compass/compass/utils/logging"
	"compass/compass/utils/types"

	"go.uber.org/zap"
)

// SerpAPIClient queries SerpAPI's Google engine for organic and news results.
type SerpAPIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewSerpAPIClient(baseURL, apiKey string, timeout time.Duration) *SerpAPIClient {
	if baseURL == "" {
		baseURL = "https://serpapi.com"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SerpAPIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type serpResult struct {
	Link    string `json:"link"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
	Date    string `json:"date"`
}

type serpResponse struct {
	OrganicResults []serpResult `json:"organic_results"`
	NewsResults    []serpResult `json:"news_results"`
}

func (c *SerpAPIClient) query(ctx context.Context, q string, news bool) (*serpResponse, error) {
	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", q)
	params.Set("api_key", c.apiKey)
	if news {
		params.Set("tbm", "nws")
	}

	var resp serpResponse
	if err := httputils.GetJSON(ctx, c.httpClient, c.baseURL+"/search", params, &resp); err != nil {
		var se *httputils.StatusError
		if errors.As(err, &se) {
			logging.ErrorLogger.Error("Request failed with status code",
				zap.Int("status", se.Code),
				zap.String("query", q),
			)
		} else {
			logging.ErrorLogger.Error("search request failed", zap.String("query", q), zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}
	return &resp, nil
}

// SearchCompany returns up to MaxCompanyResults organic hits. A failed call
// returns a nil slice and an error wrapping ErrSearchUnavailable.
func (c *SerpAPIClient) SearchCompany(ctx context.Context, name string) ([]types.SearchResult, error) {
	defer logging.LogDuration(ctx, "serpapi_search_company")()

	resp, err := c.query(ctx, CompanyQuery(name), false)
	if err != nil {
		return nil, err
	}
	results := make([]types.SearchResult, 0, MaxCompanyResults)
	for _, r := range resp.OrganicResults {
		if len(results) == MaxCompanyResults {
			break
		}
		results = append(results, types.SearchResult{URL: r.Link, Snippet: r.Snippet})
	}
	return results, nil
}

// SearchNews returns up to MaxNewsResults news items.
func (c *SerpAPIClient) SearchNews(ctx context.Context, name string) ([]types.NewsItem, error) {
	defer logging.LogDuration(ctx, "serpapi_search_news")()

	resp, err := c.query(ctx, NewsQuery(name), true)
	if err != nil {
		return nil, err
	}
	items := make([]types.NewsItem, 0, MaxNewsResults)
	for _, r := range resp.NewsResults {
		if len(items) == MaxNewsResults {
			break
		}
		items = append(items, types.NewsItem{
			URL:     r.Link,
			Title:   r.Title,
			Snippet: r.Snippet,
			Source:  r.Source,
			Date:    r.Date,
		})
	}
	return items, nil
}
