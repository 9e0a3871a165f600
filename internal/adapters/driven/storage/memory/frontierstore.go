// Package memory provides in-memory implementations of driven port
// interfaces. They are used in tests and as lightweight defaults when
// persistence is not needed.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/lexica-cli/internal/core/domain"
	"github.com/custodia-labs/lexica-cli/internal/core/ports/driven"
)

// Ensure FrontierStore implements the interface.
var _ driven.FrontierStore = (*FrontierStore)(nil)

// FrontierStore is an in-memory implementation of driven.FrontierStore.
type FrontierStore struct {
	mu      sync.RWMutex
	records map[string]domain.URLRecord
}

// NewFrontierStore creates a new in-memory frontier store.
func NewFrontierStore() *FrontierStore {
	return &FrontierStore{
		records: make(map[string]domain.URLRecord),
	}
}

// Upsert stores or updates a URL record.
func (s *FrontierStore) Upsert(_ context.Context, rec domain.URLRecord) error {
	if rec.URL == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.URL] = rec
	return nil
}

// SetStatus updates the crawl status of a URL.
func (s *FrontierStore) SetStatus(_ context.Context, url string, status domain.URLStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[url]
	if !ok {
		return domain.ErrNotFound
	}
	rec.Status = status
	s.records[url] = rec
	return nil
}

// Get retrieves a URL record.
func (s *FrontierStore) Get(_ context.Context, url string) (*domain.URLRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[url]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// List returns all URL records.
func (s *FrontierStore) List(_ context.Context) ([]domain.URLRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(domain.URLRecord) bool { return true }), nil
}

// ListByStatus returns URL records with the given status.
func (s *FrontierStore) ListByStatus(_ context.Context, status domain.URLStatus) ([]domain.URLRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(r domain.URLRecord) bool { return r.Status == status }), nil
}

// collect returns matching records in URL order for determinism.
// Caller must hold the lock.
func (s *FrontierStore) collect(keep func(domain.URLRecord) bool) []domain.URLRecord {
	var out []domain.URLRecord
	for _, rec := range s.records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].URL < out[j].URL })
	return out
}
