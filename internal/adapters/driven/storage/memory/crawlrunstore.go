package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/lexica-cli/internal/core/domain"
	"github.com/custodia-labs/lexica-cli/internal/core/ports/driven"
)

// Ensure CrawlRunStore implements the interface.
var _ driven.CrawlRunStore = (*CrawlRunStore)(nil)

// CrawlRunStore is an in-memory implementation of driven.CrawlRunStore.
type CrawlRunStore struct {
	mu   sync.RWMutex
	runs map[string]domain.CrawlRun
}

// NewCrawlRunStore creates a new in-memory run store.
func NewCrawlRunStore() *CrawlRunStore {
	return &CrawlRunStore{
		runs: make(map[string]domain.CrawlRun),
	}
}

// SaveRun stores or updates a crawl run record.
func (s *CrawlRunStore) SaveRun(_ context.Context, run domain.CrawlRun) error {
	if run.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

// ListRuns returns all recorded runs, newest first.
func (s *CrawlRunStore) ListRuns(_ context.Context) ([]domain.CrawlRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CrawlRun, 0, len(s.runs))
	for _, run := range s.runs {
		out = append(out, run)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}
