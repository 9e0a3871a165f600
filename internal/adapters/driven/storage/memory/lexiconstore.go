package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/lexica-cli/internal/core/domain"
	"github.com/custodia-labs/lexica-cli/internal/core/ports/driven"
)

// Ensure LexiconStore implements the interface.
var _ driven.LexiconStore = (*LexiconStore)(nil)

// LexiconStore is an in-memory implementation of driven.LexiconStore.
type LexiconStore struct {
	mu    sync.RWMutex
	words []string
	saved bool
}

// NewLexiconStore creates a new in-memory lexicon store.
func NewLexiconStore() *LexiconStore {
	return &LexiconStore{}
}

// Save replaces the stored word set.
func (s *LexiconStore) Save(_ context.Context, lex *domain.Lexicon) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = lex.Words()
	s.saved = true
	return nil
}

// Load returns the stored word set.
func (s *LexiconStore) Load(_ context.Context) (*domain.Lexicon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.saved {
		return nil, domain.ErrNotFound
	}
	lex := domain.NewLexicon()
	lex.AddAll(s.words)
	return lex, nil
}
