package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"compass/compass/services/scraper"
	"compass/compass/utils/logging"
	"compass/compass/utils/types"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

var httpURL = regexp.MustCompile(`^https?://`)

// DuckDuckGoClient scrapes organic results from DuckDuckGo's HTML endpoint.
// It needs no API key and has no news vertical.
type DuckDuckGoClient struct {
	searchURL  string
	httpClient *http.Client
}

func NewDuckDuckGoClient(searchURL string, timeout time.Duration) *DuckDuckGoClient {
	if searchURL == "" {
		searchURL = "https://html.duckduckgo.com/html/"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &DuckDuckGoClient{searchURL: searchURL, httpClient: &http.Client{Timeout: timeout}}
}

func (c *DuckDuckGoClient) SearchCompany(ctx context.Context, name string) ([]types.SearchResult, error) {
	defer logging.LogDuration(ctx, "duckduckgo_search_company")()

	params := url.Values{}
	params.Add("q", CompanyQuery(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", scraper.DesktopUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.ErrorLogger.Error("duckduckgo request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		logging.ErrorLogger.Error("Request failed with status code", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrSearchUnavailable, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}

	results := make([]types.SearchResult, 0, MaxCompanyResults)
	doc.Find(".result__body").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if len(results) >= MaxCompanyResults {
			return false
		}
		href, exists := s.Find(".result__title a").First().Attr("href")
		if !exists {
			return true
		}
		actualURL := resolveResultURL(href)
		if actualURL == "" {
			return true
		}
		results = append(results, types.SearchResult{
			URL:     actualURL,
			Snippet: strings.TrimSpace(s.Find(".result__snippet").First().Text()),
		})
		return true
	})
	return results, nil
}

// resolveResultURL unwraps DuckDuckGo's redirect links (…/l/?uddg=<target>).
func resolveResultURL(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		href = target
	}
	if !httpURL.MatchString(href) {
		return ""
	}
	return href
}
