package driving

import "context"

// LexiconBuilder produces the final word set for one run.
type LexiconBuilder interface {
	// Build scans the whole corpus, merges accepted words with the seed
	// set, and persists the result through the lexicon store.
	Build(ctx context.Context) (*BuildResult, error)

	// Watch performs a Build and then keeps extending the lexicon as
	// pages are added to the corpus, persisting after each change.
	// Blocks until the context is cancelled.
	Watch(ctx context.Context) error

	// Status returns the state of a running build.
	Status(ctx context.Context) (*BuildStatus, error)
}

// BuildResult summarises a completed build.
type BuildResult struct {
	// PagesScanned is the number of pages tokenised.
	PagesScanned int

	// CandidateWords is the total number of tokens seen.
	CandidateWords int

	// AcceptedWords is the number of tokens that passed the filter,
	// counting duplicates.
	AcceptedWords int

	// LexiconSize is the number of unique words written out,
	// seed words included.
	LexiconSize int
}

// BuildStatus represents the current state of a build operation.
type BuildStatus struct {
	// Running indicates if a build is currently in progress.
	Running bool

	// PagesScanned is the count of pages processed so far.
	PagesScanned int

	// ErrorCount is the number of unreadable pages skipped.
	ErrorCount int
}
