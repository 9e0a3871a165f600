package domain

import "time"

// URLStatus tracks where a URL is in its crawl lifecycle.
type URLStatus int

const (
	// URLPending means the URL is queued and not yet fetched.
	URLPending URLStatus = iota

	// URLInFlight means a worker is currently fetching the URL.
	URLInFlight

	// URLVisited means the URL was fetched successfully.
	URLVisited

	// URLFailed means the fetch failed; eligible for retry on the next run.
	URLFailed
)

// String returns the status name for logging and storage.
func (s URLStatus) String() string {
	switch s {
	case URLPending:
		return "pending"
	case URLInFlight:
		return "in_flight"
	case URLVisited:
		return "visited"
	case URLFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ParseURLStatus converts a stored status name back to a URLStatus.
func ParseURLStatus(s string) (URLStatus, error) {
	switch s {
	case "pending":
		return URLPending, nil
	case "in_flight":
		return URLInFlight, nil
	case "visited":
		return URLVisited, nil
	case "failed":
		return URLFailed, nil
	default:
		return URLPending, ErrInvalidInput
	}
}

// URLRecord is a frontier entry.
type URLRecord struct {
	// URL is the absolute URL.
	URL string

	// Domain is the URL's host, used for domain-affinity scheduling.
	Domain string

	// Status is the crawl lifecycle state.
	Status URLStatus

	// DiscoveredAt is when the URL first entered the frontier.
	DiscoveredAt time.Time
}

// CrawlRun records one crawler invocation.
type CrawlRun struct {
	// ID is the unique run identifier.
	ID string

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run completed, zero while running.
	FinishedAt time.Time

	// PagesFetched counts pages stored during the run.
	PagesFetched int

	// PagesSkipped counts pages rejected as near-duplicates or non-HTML.
	PagesSkipped int

	// Failures counts fetch errors during the run.
	Failures int
}
