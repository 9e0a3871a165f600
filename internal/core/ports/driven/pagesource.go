package driven

import (
	"context"

	"github.com/custodia-labs/lexica-cli/internal/core/domain"
)

// PageSource streams raw HTML pages from a corpus.
// The filesystem source reads a directory of .html files; other source
// types can be added behind the same interface.
type PageSource interface {
	// Type returns the source type identifier.
	Type() string

	// SourceID returns the configured source ID.
	SourceID() string

	// Capabilities returns what this source supports.
	Capabilities() SourceCapabilities

	// Validate checks if the source is properly configured.
	// For the filesystem source, this checks the path exists and is
	// readable. Returns nil if ready, an error describing the problem
	// otherwise.
	Validate(ctx context.Context) error

	// FullSync streams every page in the corpus.
	// Returns channels for pages and errors; both are closed when the
	// stream ends. Per-page read failures go to the error channel and
	// do not stop the stream.
	FullSync(ctx context.Context) (<-chan domain.RawPage, <-chan error)

	// Watch listens for pages added or changed after the initial sync.
	// Only available if SupportsWatch is true.
	Watch(ctx context.Context) (<-chan domain.RawPageChange, error)

	// Close releases resources.
	Close() error
}

// SourceCapabilities describes what a page source supports.
type SourceCapabilities struct {
	// SupportsWatch indicates the source can push change events.
	SupportsWatch bool

	// SupportsValidation indicates Validate() performs a real check.
	SupportsValidation bool
}
