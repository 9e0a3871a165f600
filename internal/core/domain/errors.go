package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown page source type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrBuildInProgress indicates a lexicon build is already running.
	ErrBuildInProgress = errors.New("build in progress")

	// ErrCrawlInProgress indicates a crawl is already running.
	ErrCrawlInProgress = errors.New("crawl in progress")

	// ErrFrontierEmpty indicates the crawler has no pending URLs.
	ErrFrontierEmpty = errors.New("frontier empty")

	// ErrSourceClosed indicates the page source has been closed.
	ErrSourceClosed = errors.New("page source closed")

	// ErrNotHTML indicates a fetched page was not an HTML document.
	ErrNotHTML = errors.New("not an HTML document")

	// ErrNearDuplicate indicates a fetched page is a near-duplicate of an
	// already stored page.
	ErrNearDuplicate = errors.New("near-duplicate page")
)
