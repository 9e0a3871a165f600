package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/lexica-cli/internal/core/domain"
	"github.com/custodia-labs/lexica-cli/internal/core/ports/driven"
)

// Ensure SimhashStore implements the interface.
var _ driven.SimhashStore = (*SimhashStore)(nil)

// SimhashStore is an in-memory implementation of driven.SimhashStore.
type SimhashStore struct {
	mu     sync.RWMutex
	hashes map[string]uint64
}

// NewSimhashStore creates a new in-memory fingerprint store.
func NewSimhashStore() *SimhashStore {
	return &SimhashStore{
		hashes: make(map[string]uint64),
	}
}

// Add stores the fingerprint for a page.
func (s *SimhashStore) Add(_ context.Context, pageID string, hash uint64) error {
	if pageID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashes[pageID] = hash
	return nil
}

// All returns every stored fingerprint keyed by page ID.
func (s *SimhashStore) All(_ context.Context) (map[string]uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]uint64, len(s.hashes))
	for id, h := range s.hashes {
		out[id] = h
	}
	return out, nil
}
