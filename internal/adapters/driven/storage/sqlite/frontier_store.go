package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/lexica-cli/internal/core/domain"
	"github.com/custodia-labs/lexica-cli/internal/core/ports/driven"
)

// frontierStore implements driven.FrontierStore.
type frontierStore struct {
	store *Store
}

var _ driven.FrontierStore = (*frontierStore)(nil)

// Upsert stores or updates a URL record.
func (s *frontierStore) Upsert(ctx context.Context, rec domain.URLRecord) error {
	if rec.URL == "" {
		return fmt.Errorf("url record: %w", domain.ErrInvalidInput)
	}
	if rec.DiscoveredAt.IsZero() {
		rec.DiscoveredAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO urls (url, domain, status, discovered_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			domain = excluded.domain,
			status = excluded.status
	`, rec.URL, rec.Domain, rec.Status.String(), rec.DiscoveredAt.UTC())

	if err != nil {
		return fmt.Errorf("saving url: %w", err)
	}
	return nil
}

// SetStatus updates the crawl status of a URL.
func (s *frontierStore) SetStatus(ctx context.Context, url string, status domain.URLStatus) error {
	res, err := s.store.db.ExecContext(ctx,
		"UPDATE urls SET status = ? WHERE url = ?", status.String(), url)
	if err != nil {
		return fmt.Errorf("updating url status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating url status: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Get retrieves a URL record.
func (s *frontierStore) Get(ctx context.Context, url string) (*domain.URLRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT url, domain, status, discovered_at
		FROM urls WHERE url = ?
	`, url)

	rec, err := scanURLRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting url: %w", err)
	}
	return rec, nil
}

// List returns all URL records.
func (s *frontierStore) List(ctx context.Context) ([]domain.URLRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT url, domain, status, discovered_at
		FROM urls ORDER BY discovered_at
	`)
	if err != nil {
		return nil, fmt.Errorf("listing urls: %w", err)
	}
	defer rows.Close()

	return collectURLRecords(rows)
}

// ListByStatus returns URL records with the given status.
func (s *frontierStore) ListByStatus(ctx context.Context, status domain.URLStatus) ([]domain.URLRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT url, domain, status, discovered_at
		FROM urls WHERE status = ? ORDER BY discovered_at
	`, status.String())
	if err != nil {
		return nil, fmt.Errorf("listing urls: %w", err)
	}
	defer rows.Close()

	return collectURLRecords(rows)
}

func collectURLRecords(rows *sql.Rows) ([]domain.URLRecord, error) {
	var out []domain.URLRecord
	for rows.Next() {
		rec, err := scanURLRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning url: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing urls: %w", err)
	}
	return out, nil
}

func scanURLRecord(scan func(...any) error) (*domain.URLRecord, error) {
	var rec domain.URLRecord
	var status string
	if err := scan(&rec.URL, &rec.Domain, &status, &rec.DiscoveredAt); err != nil {
		return nil, err
	}

	parsed, err := domain.ParseURLStatus(status)
	if err != nil {
		return nil, fmt.Errorf("url %s: bad status %q", rec.URL, status)
	}
	rec.Status = parsed
	return &rec, nil
}
