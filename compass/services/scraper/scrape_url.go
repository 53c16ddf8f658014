package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/playwright-community/playwright-go"
	"golang.org/x/net/html/charset"
)

// DesktopUserAgent is sent with every page fetch; many sites reject script user agents.
const DesktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

const (
	defaultTimeout = 15 * time.Second
	maxPageBytes   = 5 << 20
)

// Fetcher returns the raw HTML of a page.
type Fetcher interface {
	FetchHTML(ctx context.Context, targetURL string) (string, error)
}

// HTTPFetcher fetches pages with a plain HTTP GET.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher returns a fetcher whose requests give up after timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		userAgent: DesktopUserAgent,
	}
}

func (f *HTTPFetcher) FetchHTML(ctx context.Context, targetURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, maxPageBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("failed to decode page: %w", err)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read page: %w", err)
	}
	return string(data), nil
}

// BrowserFetcher renders pages in headless Chromium, for sites that build
// their content with JavaScript.
type BrowserFetcher struct {
	pw      *playwright.Playwright
	timeout time.Duration
}

// NewBrowserFetcher starts Playwright. The browser driver must be installed.
func NewBrowserFetcher(timeout time.Duration) (*BrowserFetcher, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &BrowserFetcher{pw: pw, timeout: timeout}, nil
}

// Close stops Playwright
func (f *BrowserFetcher) Close() error {
	if f.pw != nil {
		return f.pw.Stop()
	}
	return nil
}

func (f *BrowserFetcher) FetchHTML(ctx context.Context, targetURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	browser, err := f.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{Headless: playwright.Bool(true)})
	if err != nil {
		return "", err
	}
	defer browser.Close()

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(DesktopUserAgent),
	})
	if err != nil {
		return "", err
	}
	defer bctx.Close()

	page, err := bctx.NewPage()
	if err != nil {
		return "", err
	}

	resp, err := page.Goto(targetURL, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(f.timeout.Milliseconds())),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return "", err
	}
	if resp != nil && (resp.Status() < 200 || resp.Status() > 299) {
		return "", fmt.Errorf("page returned status %d", resp.Status())
	}

	return page.Content()
}
