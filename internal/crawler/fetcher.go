package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/lexica-cli/internal/core/domain"
)

// DefaultTimeout bounds a single page fetch.
const DefaultTimeout = 10 * time.Second

// DefaultRequestsPerSecond is the politeness rate applied per host.
const DefaultRequestsPerSecond = 4

// maxPageBytes caps how much of a response body is read.
const maxPageBytes = 8 << 20

// Fetcher downloads pages with a per-host politeness rate limit.
// Only text/html responses are accepted. Safe for concurrent use.
type Fetcher struct {
	client *http.Client
	perSec rate.Limit

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// FetcherOption configures the fetcher.
type FetcherOption func(*Fetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if d > 0 {
			f.client.Timeout = d
		}
	}
}

// WithRequestsPerSecond sets the per-host politeness rate.
func WithRequestsPerSecond(n int) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.perSec = rate.Limit(n)
		}
	}
}

// NewFetcher creates a fetcher with the given options.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:   &http.Client{Timeout: DefaultTimeout},
		perSec:   DefaultRequestsPerSecond,
		limiters: make(map[string]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads one page. Returns domain.ErrNotHTML when the response
// is not an HTML document; the URL still counts as visited in that case.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := f.limiter(Host(rawURL)).Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "lexica-crawler/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		return nil, domain.ErrNotHTML
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}
	return body, nil
}

// limiter returns the politeness limiter for a host, creating it on
// first use.
func (f *Fetcher) limiter(host string) *rate.Limiter {
	f.mu.Lock()
	defer f.mu.Unlock()

	l, ok := f.limiters[host]
	if !ok {
		l = rate.NewLimiter(f.perSec, 1)
		f.limiters[host] = l
	}
	return l
}
