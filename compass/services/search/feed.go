package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"compass/compass/services/scraper"
	"compass/compass/utils/logging"
	"compass/compass/utils/types"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"
)

// FeedClient reads news from an RSS search feed such as Google News.
type FeedClient struct {
	feedURL    string
	httpClient *http.Client
}

func NewFeedClient(feedURL string, timeout time.Duration) *FeedClient {
	if feedURL == "" {
		feedURL = "https://news.google.com/rss/search"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FeedClient{feedURL: feedURL, httpClient: &http.Client{Timeout: timeout}}
}

func (c *FeedClient) SearchNews(ctx context.Context, name string) ([]types.NewsItem, error) {
	defer logging.LogDuration(ctx, "feed_search_news")()

	params := url.Values{}
	params.Set("q", NewsQuery(name))
	params.Set("hl", "en-US")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", scraper.DesktopUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.ErrorLogger.Error("news feed request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		logging.ErrorLogger.Error("Request failed with status code", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrSearchUnavailable, resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse feed: %v", ErrSearchUnavailable, err)
	}

	count := min(len(feed.Items), MaxNewsResults)
	items := make([]types.NewsItem, 0, count)
	for _, item := range feed.Items[:count] {
		news := types.NewsItem{
			URL:     item.Link,
			Title:   item.Title,
			Snippet: plainText(item.Description),
			Date:    item.Published,
		}
		if item.Author != nil {
			news.Source = item.Author.Name
		}
		items = append(items, news)
	}
	return items, nil
}

// plainText strips markup that feeds embed in descriptions.
func plainText(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
