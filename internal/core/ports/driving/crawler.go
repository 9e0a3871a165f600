package driving

import "context"

// CrawlOrchestrator coordinates fetching pages into the raw corpus.
type CrawlOrchestrator interface {
	// Crawl fetches pages starting from the frontier until the page
	// budget is reached or the frontier drains. Seed URLs are added to
	// the frontier before crawling begins.
	Crawl(ctx context.Context, seeds []string, pageBudget int) error

	// Status returns the state of a running crawl.
	Status(ctx context.Context) (*CrawlStatus, error)
}

// CrawlStatus represents the current state of a crawl operation.
type CrawlStatus struct {
	// Running indicates if a crawl is currently in progress.
	Running bool

	// PagesFetched is the count of pages stored so far.
	PagesFetched int

	// PagesSkipped is the count of pages rejected (non-HTML or
	// near-duplicate).
	PagesSkipped int

	// ErrorCount is the number of failed fetches.
	ErrorCount int
}
