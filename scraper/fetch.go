package scraper

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/chromedp/chromedp"

	"fight-picks-system/utils"
)

const (
	fetchTimeout     = 45 * time.Second
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
)

// Fetcher retrieves the rendered HTML at a URL. Implementations must be
// safe for concurrent use; the scraper fetches both corner profiles of a
// fight at the same time.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// BrowserFetcher renders pages in a headless browser first, so script
// rendered content and JS redirects come through, and falls back to a
// plain GET when the browser path fails. It fails with ErrFetchFailed
// only when both paths fail.
type BrowserFetcher struct {
	client *http.Client
}

// NewBrowserFetcher creates a fetcher with a shared HTTP client for the
// fallback path. Browser processes are transient: one per call, torn
// down on every exit path.
func NewBrowserFetcher() *BrowserFetcher {
	return &BrowserFetcher{
		client: &http.Client{Timeout: fetchTimeout},
	}
}

func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	html, browserErr := f.fetchWithBrowser(ctx, url)
	if browserErr == nil {
		utils.ArchiveHTML(url, html)
		return html, nil
	}
	log.Printf("⚠️  [Fetcher] Browser render failed for %s, falling back to plain GET: %v", url, browserErr)

	html, httpErr := f.fetchWithHTTP(ctx, url)
	if httpErr != nil {
		return "", fmt.Errorf("%w: %s (browser: %v; http: %v)", ErrFetchFailed, url, browserErr, httpErr)
	}
	utils.ArchiveHTML(url, html)
	return html, nil
}

func (f *BrowserFetcher) fetchWithBrowser(parent context.Context, url string) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(parent, fetchTimeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(timeoutCtx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp run: %w", err)
	}
	return html, nil
}

func (f *BrowserFetcher) fetchWithHTTP(parent context.Context, url string) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(parent, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Cache-Control", "no-store")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received non-200 status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	return string(body), nil
}
