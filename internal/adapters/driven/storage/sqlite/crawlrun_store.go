package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/custodia-labs/lexica-cli/internal/core/domain"
	"github.com/custodia-labs/lexica-cli/internal/core/ports/driven"
)

// crawlRunStore implements driven.CrawlRunStore.
type crawlRunStore struct {
	store *Store
}

var _ driven.CrawlRunStore = (*crawlRunStore)(nil)

// SaveRun stores or updates a crawl run record.
func (s *crawlRunStore) SaveRun(ctx context.Context, run domain.CrawlRun) error {
	if run.ID == "" {
		return fmt.Errorf("crawl run: %w", domain.ErrInvalidInput)
	}

	var finished any
	if !run.FinishedAt.IsZero() {
		finished = run.FinishedAt.UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO crawl_runs (id, started_at, finished_at, pages_fetched, pages_skipped, failures)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			finished_at = excluded.finished_at,
			pages_fetched = excluded.pages_fetched,
			pages_skipped = excluded.pages_skipped,
			failures = excluded.failures
	`, run.ID, run.StartedAt.UTC(), finished, run.PagesFetched, run.PagesSkipped, run.Failures)

	if err != nil {
		return fmt.Errorf("saving crawl run: %w", err)
	}
	return nil
}

// ListRuns returns all recorded runs, newest first.
func (s *crawlRunStore) ListRuns(ctx context.Context) ([]domain.CrawlRun, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, pages_fetched, pages_skipped, failures
		FROM crawl_runs ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing crawl runs: %w", err)
	}
	defer rows.Close()

	var out []domain.CrawlRun
	for rows.Next() {
		var run domain.CrawlRun
		var finished sql.NullTime
		if err := rows.Scan(&run.ID, &run.StartedAt, &finished,
			&run.PagesFetched, &run.PagesSkipped, &run.Failures); err != nil {
			return nil, fmt.Errorf("scanning crawl run: %w", err)
		}
		if finished.Valid {
			run.FinishedAt = finished.Time
		} else {
			run.FinishedAt = time.Time{}
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing crawl runs: %w", err)
	}
	return out, nil
}
