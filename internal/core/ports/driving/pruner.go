package driving

import "context"

// CorpusPruner removes low-value pages from the raw corpus before a
// lexicon build: pages that declare a non-English language or contain
// too little text to be worth tokenising.
type CorpusPruner interface {
	// Prune inspects every page in the corpus directory and deletes the
	// ones that fail the checks. With dryRun set, nothing is deleted and
	// the report lists what would have been removed.
	Prune(ctx context.Context, dryRun bool) (*PruneReport, error)
}

// PruneReport summarises a prune pass.
type PruneReport struct {
	// PagesChecked is the number of pages inspected.
	PagesChecked int

	// Removed lists the file paths that were (or would be) deleted.
	Removed []string

	// ErrorCount is the number of pages that could not be read.
	// Unreadable pages are treated as removable.
	ErrorCount int
}
