package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/plainspeak/internal/model"
	"github.com/ppiankov/plainspeak/internal/util"
)

const fetchMaxRetries = 3

// fetchSleepFunc is the sleep function used between retries (injectable for tests)
var fetchSleepFunc = time.Sleep

// RateLimiter paces requests per host; extra is an additional crawl delay
type RateLimiter interface {
	Wait(ctx context.Context, rawURL string, extra time.Duration) error
}

// RobotsPolicy decides whether a page may be fetched
type RobotsPolicy interface {
	CanFetch(ctx context.Context, rawURL string) (bool, time.Duration, error)
}

// Page is the readable text of a fetched URL
type Page struct {
	URL        string
	FinalURL   string
	Title      string
	Text       string
	StatusCode int
}

// Fetcher downloads pages and reduces them to readable text
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	workers    int
	robots     RobotsPolicy
	limiter    RateLimiter
	logger     *slog.Logger
}

// FetcherOption configures a Fetcher
type FetcherOption func(*Fetcher)

// WithRobots makes the fetcher honour robots.txt
func WithRobots(r RobotsPolicy) FetcherOption {
	return func(f *Fetcher) { f.robots = r }
}

// WithRateLimiter paces fetches per host
func WithRateLimiter(l RateLimiter) FetcherOption {
	return func(f *Fetcher) { f.limiter = l }
}

// WithFetchWorkers bounds FetchAll concurrency
func WithFetchWorkers(n int) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.workers = n
		}
	}
}

// WithFetchLogger sets the logger
func WithFetchLogger(l *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFetcher creates a fetcher from the HTTP config section
func NewFetcher(cfg model.HTTPConfig, opts ...FetcherOption) *Fetcher {
	client := util.NewHTTPClient(cfg.Timeout, cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy)
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= 3 {
			return fmt.Errorf("stopped after 3 redirects")
		}
		return nil
	}

	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 2_000_000
	}

	f := &Fetcher{
		httpClient: client,
		userAgent:  cfg.UserAgent,
		maxBytes:   maxBytes,
		workers:    4,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// HTTPClient returns the client used for page requests
func (f *Fetcher) HTTPClient() *http.Client {
	return f.httpClient
}

// Fetch downloads rawURL once and extracts its text
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("create request: invalid URL %q", rawURL)
	}

	var crawlDelay time.Duration
	if f.robots != nil {
		allowed, delay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("robots: %w", err)
		}
		if !allowed {
			return nil, util.ErrDisallowed
		}
		crawlDelay = delay
	}
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, rawURL, crawlDelay); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	finalURL := resp.Request.URL
	page := &Page{
		URL:        rawURL,
		FinalURL:   finalURL.String(),
		StatusCode: resp.StatusCode,
	}

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain") {
		page.Text = strings.TrimSpace(string(body))
		return page, nil
	}

	page.Title, page.Text = readableText(body, finalURL)
	return page, nil
}

// FetchWithRetry retries transient failures (5xx, 429, refused or reset connections)
// with exponential backoff
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*Page, error) {
	var lastErr error
	for attempt := 0; attempt < fetchMaxRetries; attempt++ {
		page, err := f.Fetch(ctx, rawURL)
		if err == nil {
			return page, nil
		}
		lastErr = err
		if !isRetryableFetchError(err) {
			return nil, err
		}
		if attempt < fetchMaxRetries-1 {
			f.logger.Debug("retrying fetch", "url", rawURL, "attempt", attempt+1, "error", err)
			fetchSleepFunc(time.Duration(1<<uint(attempt)) * time.Second)
		}
	}
	return nil, lastErr
}

// FetchResult pairs a URL with its page or error
type FetchResult struct {
	URL  string
	Page *Page
	Err  error
}

// FetchAll fetches urls concurrently and returns results in input order.
// Individual failures are reported per result; only ctx cancellation aborts the batch.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) ([]FetchResult, error) {
	results := make([]FetchResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)

	for i, u := range urls {
		g.Go(func() error {
			page, err := f.FetchWithRetry(gctx, u)
			results[i] = FetchResult{URL: u, Page: page, Err: err}
			if err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// isRetryableFetchError returns true for transient fetch failures
func isRetryableFetchError(err error) bool {
	if err == nil || errors.Is(err, util.ErrDisallowed) {
		return false
	}
	s := err.Error()
	if strings.HasPrefix(s, "unexpected status: 5") || strings.HasPrefix(s, "unexpected status: 429") {
		return true
	}
	s = strings.ToLower(s)
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}

// readableText extracts the article text with readability, falling back to a
// paragraph walk over the whole document when readability finds nothing
func readableText(body []byte, pageURL *url.URL) (string, string) {
	if pageURL == nil {
		pageURL = &url.URL{}
	}
	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(body), pageURL)
	if err == nil {
		if text := collapseSpace(article.TextContent); text != "" {
			return collapseSpace(article.Title), text
		}
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return "", ""
	}
	return nodeTitle(doc), strings.Join(blockTexts(doc), "\n")
}

// skipped elements never contribute text
var skipped = map[string]bool{
	"script": true, "style": true, "noscript": true, "nav": true,
	"header": true, "footer": true, "aside": true, "form": true, "template": true,
}

// blocks are the elements whose text becomes one output line
var blocks = map[string]bool{
	"p": true, "li": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"blockquote": true, "td": true, "dd": true, "pre": true,
}

func blockTexts(n *html.Node) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skipped[n.Data] {
				return
			}
			if blocks[n.Data] {
				if text := collapseSpace(nodeText(n)); text != "" {
					out = append(out, text)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipped[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func nodeTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return collapseSpace(nodeText(n))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := nodeTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
