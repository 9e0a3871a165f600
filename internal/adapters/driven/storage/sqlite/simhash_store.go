package sqlite

import (
	"context"
	"fmt"

	"github.com/custodia-labs/lexica-cli/internal/core/domain"
	"github.com/custodia-labs/lexica-cli/internal/core/ports/driven"
)

// simhashStore implements driven.SimhashStore.
// Fingerprints are uint64; SQLite stores them as their two's-complement
// int64 and they are cast back on read.
type simhashStore struct {
	store *Store
}

var _ driven.SimhashStore = (*simhashStore)(nil)

// Add stores the fingerprint for a page.
func (s *simhashStore) Add(ctx context.Context, pageID string, hash uint64) error {
	if pageID == "" {
		return fmt.Errorf("fingerprint: %w", domain.ErrInvalidInput)
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO simhashes (page_id, hash)
		VALUES (?, ?)
		ON CONFLICT(page_id) DO UPDATE SET hash = excluded.hash
	`, pageID, int64(hash))

	if err != nil {
		return fmt.Errorf("saving fingerprint: %w", err)
	}
	return nil
}

// All returns every stored fingerprint keyed by page ID.
func (s *simhashStore) All(ctx context.Context) (map[string]uint64, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT page_id, hash FROM simhashes")
	if err != nil {
		return nil, fmt.Errorf("listing fingerprints: %w", err)
	}
	defer rows.Close()

	out := make(map[string]uint64)
	for rows.Next() {
		var pageID string
		var hash int64
		if err := rows.Scan(&pageID, &hash); err != nil {
			return nil, fmt.Errorf("scanning fingerprint: %w", err)
		}
		out[pageID] = uint64(hash)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing fingerprints: %w", err)
	}
	return out, nil
}
