package driven

import (
	"context"

	"github.com/custodia-labs/lexica-cli/internal/core/domain"
)

// FrontierStore persists URL frontier state between crawl runs.
// Backed by SQLite for metadata storage.
type FrontierStore interface {
	// Upsert stores or updates a URL record.
	Upsert(ctx context.Context, rec domain.URLRecord) error

	// SetStatus updates the crawl status of a URL.
	// Returns domain.ErrNotFound for unknown URLs.
	SetStatus(ctx context.Context, url string, status domain.URLStatus) error

	// Get retrieves a URL record.
	Get(ctx context.Context, url string) (*domain.URLRecord, error)

	// List returns all URL records.
	List(ctx context.Context) ([]domain.URLRecord, error)

	// ListByStatus returns URL records with the given status.
	ListByStatus(ctx context.Context, status domain.URLStatus) ([]domain.URLRecord, error)
}

// SimhashStore persists page fingerprints for near-duplicate detection.
type SimhashStore interface {
	// Add stores the fingerprint for a page.
	Add(ctx context.Context, pageID string, hash uint64) error

	// All returns every stored fingerprint keyed by page ID.
	All(ctx context.Context) (map[string]uint64, error)
}

// CrawlRunStore records crawl run bookkeeping.
type CrawlRunStore interface {
	// SaveRun stores or updates a crawl run record.
	SaveRun(ctx context.Context, run domain.CrawlRun) error

	// ListRuns returns all recorded runs, newest first.
	ListRuns(ctx context.Context) ([]domain.CrawlRun, error)
}
