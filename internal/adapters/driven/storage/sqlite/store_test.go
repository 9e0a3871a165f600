package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexica-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "lexica-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func TestNewStore(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.FileExists(t, store.Path())
	assert.Equal(t, "state.db", filepath.Base(store.Path()))
}

func TestNewStore_MigrationsAreIdempotent(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "lexica-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening must not re-run applied migrations.
	store, err = NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	var version int
	row := store.db.QueryRow("SELECT MAX(version) FROM schema_migrations")
	require.NoError(t, row.Scan(&version))
	assert.Equal(t, 1, version)
}

func TestFrontierStore_UpsertGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	frontier := store.FrontierStore()
	ctx := context.Background()

	rec := domain.URLRecord{
		URL:          "https://example.com/a",
		Domain:       "example.com",
		Status:       domain.URLPending,
		DiscoveredAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, frontier.Upsert(ctx, rec))

	got, err := frontier.Get(ctx, rec.URL)
	require.NoError(t, err)
	assert.Equal(t, rec.URL, got.URL)
	assert.Equal(t, rec.Domain, got.Domain)
	assert.Equal(t, domain.URLPending, got.Status)
	assert.False(t, got.DiscoveredAt.IsZero())
}

func TestFrontierStore_UpsertUpdates(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	frontier := store.FrontierStore()
	ctx := context.Background()

	rec := domain.URLRecord{URL: "https://example.com/a", Domain: "example.com", Status: domain.URLPending}
	require.NoError(t, frontier.Upsert(ctx, rec))

	rec.Status = domain.URLVisited
	require.NoError(t, frontier.Upsert(ctx, rec))

	got, err := frontier.Get(ctx, rec.URL)
	require.NoError(t, err)
	assert.Equal(t, domain.URLVisited, got.Status)

	all, err := frontier.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "upsert must not duplicate")
}

func TestFrontierStore_UpsertEmptyURL(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.FrontierStore().Upsert(context.Background(), domain.URLRecord{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFrontierStore_SetStatus(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	frontier := store.FrontierStore()
	ctx := context.Background()

	require.NoError(t, frontier.Upsert(ctx, domain.URLRecord{
		URL: "https://example.com/a", Domain: "example.com", Status: domain.URLPending,
	}))
	require.NoError(t, frontier.SetStatus(ctx, "https://example.com/a", domain.URLFailed))

	got, err := frontier.Get(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, domain.URLFailed, got.Status)

	t.Run("unknown url", func(t *testing.T) {
		err := frontier.SetStatus(ctx, "https://example.com/missing", domain.URLVisited)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestFrontierStore_GetMissing(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.FrontierStore().Get(context.Background(), "https://example.com/nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFrontierStore_ListByStatus(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	frontier := store.FrontierStore()
	ctx := context.Background()

	for i, status := range []domain.URLStatus{domain.URLPending, domain.URLVisited, domain.URLPending} {
		require.NoError(t, frontier.Upsert(ctx, domain.URLRecord{
			URL:    "https://example.com/" + string(rune('a'+i)),
			Domain: "example.com",
			Status: status,
		}))
	}

	pending, err := frontier.ListByStatus(ctx, domain.URLPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	visited, err := frontier.ListByStatus(ctx, domain.URLVisited)
	require.NoError(t, err)
	assert.Len(t, visited, 1)

	failed, err := frontier.ListByStatus(ctx, domain.URLFailed)
	require.NoError(t, err)
	assert.Empty(t, failed)
}

func TestSimhashStore(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	simhashes := store.SimhashStore()
	ctx := context.Background()

	// The high bit must survive the int64 round-trip.
	big := uint64(0xFFFFFFFFFFFFFFFF)
	require.NoError(t, simhashes.Add(ctx, "page-1", big))
	require.NoError(t, simhashes.Add(ctx, "page-2", 42))

	all, err := simhashes.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]uint64{"page-1": big, "page-2": 42}, all)

	t.Run("add replaces", func(t *testing.T) {
		require.NoError(t, simhashes.Add(ctx, "page-2", 43))
		all, err := simhashes.All(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(43), all["page-2"])
	})

	t.Run("empty page ID", func(t *testing.T) {
		assert.ErrorIs(t, simhashes.Add(ctx, "", 1), domain.ErrInvalidInput)
	})
}

func TestCrawlRunStore(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	runs := store.CrawlRunStore()
	ctx := context.Background()

	started := time.Now().UTC().Truncate(time.Second)
	run := domain.CrawlRun{
		ID:           "run-1",
		StartedAt:    started,
		FinishedAt:   started.Add(time.Minute),
		PagesFetched: 10,
		PagesSkipped: 2,
		Failures:     1,
	}
	require.NoError(t, runs.SaveRun(ctx, run))

	list, err := runs.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "run-1", list[0].ID)
	assert.Equal(t, 10, list[0].PagesFetched)
	assert.Equal(t, 2, list[0].PagesSkipped)
	assert.Equal(t, 1, list[0].Failures)
	assert.False(t, list[0].FinishedAt.IsZero())
}

func TestCrawlRunStore_UnfinishedRun(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	runs := store.CrawlRunStore()
	ctx := context.Background()

	require.NoError(t, runs.SaveRun(ctx, domain.CrawlRun{
		ID:        "run-1",
		StartedAt: time.Now().UTC(),
	}))

	list, err := runs.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].FinishedAt.IsZero())
}

func TestCrawlRunStore_NewestFirst(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	runs := store.CrawlRunStore()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, runs.SaveRun(ctx, domain.CrawlRun{ID: "old", StartedAt: base.Add(-time.Hour)}))
	require.NoError(t, runs.SaveRun(ctx, domain.CrawlRun{ID: "new", StartedAt: base}))

	list, err := runs.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "old", list[1].ID)
}

func TestCrawlRunStore_EmptyID(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.CrawlRunStore().SaveRun(context.Background(), domain.CrawlRun{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
