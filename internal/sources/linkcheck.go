package sources

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/plainspeak/internal/model"
	"github.com/ppiankov/plainspeak/internal/util"
)

const checkMaxRetries = 3

// checkSleepFunc is the sleep function used between retries (injectable for tests)
var checkSleepFunc = time.Sleep

// LinkStatus is the reachability of a single source URL
type LinkStatus struct {
	URL         string              `json:"url"`
	StatusCode  int                 `json:"status_code,omitempty"`
	Reachable   bool                `json:"reachable"`
	Dead        bool                `json:"dead"`
	RedirectURL string              `json:"redirect_url,omitempty"`
	Authority   model.AuthorityTier `json:"authority"`
	Error       string              `json:"error,omitempty"`
}

// Checker issues HEAD requests against source URLs with bounded concurrency
type Checker struct {
	httpClient *http.Client
	maxWorkers int
	userAgent  string
	authority  *AuthorityClassifier
}

// NewChecker creates a link checker from the HTTP and authority settings
func NewChecker(httpCfg model.HTTPConfig, maxWorkers int, authority *AuthorityClassifier) *Checker {
	if maxWorkers <= 0 {
		maxWorkers = 8
	}
	if authority == nil {
		authority = NewAuthorityClassifier(nil)
	}
	timeout := httpCfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := util.NewHTTPClient(timeout, httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy)
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= 3 {
			return fmt.Errorf("stopped after 3 redirects")
		}
		return nil
	}

	return &Checker{
		httpClient: client,
		maxWorkers: maxWorkers,
		userAgent:  httpCfg.UserAgent,
		authority:  authority,
	}
}

// Check probes every URL and returns statuses in input order. A cancelled
// context marks the remaining URLs as unreachable rather than failing the batch.
func (c *Checker) Check(ctx context.Context, urls []string) []LinkStatus {
	results := make([]LinkStatus, len(urls))
	if len(urls) == 0 {
		return results
	}

	g := new(errgroup.Group)
	g.SetLimit(c.maxWorkers)

	for i, u := range urls {
		g.Go(func() error {
			if ctx.Err() != nil {
				results[i] = LinkStatus{
					URL:       u,
					Authority: c.authority.Classify(u),
					Error:     "context cancelled",
				}
				return nil
			}
			results[i] = c.checkWithRetry(ctx, u)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (c *Checker) checkOne(ctx context.Context, rawURL string) LinkStatus {
	status := LinkStatus{
		URL:       rawURL,
		Authority: c.authority.Classify(rawURL),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		status.Error = fmt.Sprintf("create request: %v", err)
		status.Dead = true
		return status
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		status.Error = fmt.Sprintf("request failed: %v", err)
		status.Dead = true
		return status
	}
	defer func() { _ = resp.Body.Close() }()

	status.StatusCode = resp.StatusCode
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		status.Reachable = true
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		status.Dead = true
	}

	if final := resp.Request.URL.String(); final != rawURL {
		status.RedirectURL = final
	}

	return status
}

// checkWithRetry retries transient failures with exponential backoff
func (c *Checker) checkWithRetry(ctx context.Context, rawURL string) LinkStatus {
	var status LinkStatus
	for attempt := 0; attempt < checkMaxRetries; attempt++ {
		status = c.checkOne(ctx, rawURL)
		if !isRetryable(status) {
			return status
		}
		if attempt < checkMaxRetries-1 {
			checkSleepFunc(time.Duration(1<<uint(attempt)) * time.Second)
		}
	}
	return status
}

// isRetryable reports 5xx, 429 and transient network errors
func isRetryable(status LinkStatus) bool {
	if status.StatusCode >= 500 && status.StatusCode < 600 {
		return true
	}
	if status.StatusCode == http.StatusTooManyRequests {
		return true
	}
	if status.Error == "" {
		return false
	}
	s := strings.ToLower(status.Error)
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}
