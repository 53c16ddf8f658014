package scraper

import (
	"context"
	"io"

	"compass/compass/config"
	"compass/compass/utils/logging"
	"compass/compass/utils/types"

	"go.uber.org/zap"
)

// Scraper fetches a page and extracts its title, description and body text.
type Scraper struct {
	fetcher Fetcher
	mode    BodyMode
}

// NewScraper wraps fetcher. An empty mode means BodyParagraphs.
func NewScraper(fetcher Fetcher, mode BodyMode) *Scraper {
	if mode == "" {
		mode = BodyParagraphs
	}
	return &Scraper{fetcher: fetcher, mode: mode}
}

// NewFromConfig builds the fetcher selected by cfg.ScrapeFetcher.
func NewFromConfig(cfg config.Config) (*Scraper, error) {
	var fetcher Fetcher
	switch cfg.ScrapeFetcher {
	case "browser":
		bf, err := NewBrowserFetcher(cfg.ScrapeTimeout)
		if err != nil {
			return nil, err
		}
		fetcher = bf
	default:
		fetcher = NewHTTPFetcher(cfg.ScrapeTimeout)
	}
	return NewScraper(fetcher, BodyMode(cfg.ScrapeBodyMode)), nil
}

// Close releases the fetcher if it holds resources.
func (s *Scraper) Close() error {
	if c, ok := s.fetcher.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Fetch downloads and parses targetURL, reporting any failure.
func (s *Scraper) Fetch(ctx context.Context, targetURL string) (types.ScrapedPage, error) {
	defer logging.LogDuration(ctx, "scraper_fetch")()

	html, err := s.fetcher.FetchHTML(ctx, targetURL)
	if err != nil {
		return types.ScrapedPage{}, err
	}
	return ExtractPage(html, targetURL, s.mode)
}

// Extract is the best-effort form of Fetch: failures are logged and yield
// an empty page with only the URL set.
func (s *Scraper) Extract(ctx context.Context, targetURL string) types.ScrapedPage {
	page, err := s.Fetch(ctx, targetURL)
	if err != nil {
		logging.ErrorLogger.Error("Error scraping page",
			zap.String("url", targetURL),
			zap.String("trace_id", logging.TraceID(ctx)),
			zap.Error(err),
		)
		return types.ScrapedPage{URL: targetURL}
	}
	return page
}
