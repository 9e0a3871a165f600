package driven

import (
	"context"

	"github.com/custodia-labs/lexica-cli/internal/core/domain"
)

// LexiconStore persists the final word set.
// The file adapter writes one word per line in unspecified order.
type LexiconStore interface {
	// Save writes the full lexicon, replacing any previous contents.
	Save(ctx context.Context, lex *domain.Lexicon) error

	// Load reads a previously saved lexicon.
	// Returns domain.ErrNotFound if nothing has been saved yet.
	Load(ctx context.Context) (*domain.Lexicon, error)
}
