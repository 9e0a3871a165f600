package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexica-cli/internal/core/domain"
)

func TestCrawlRunStore(t *testing.T) {
	store := NewCrawlRunStore()
	ctx := context.Background()

	base := time.Now()
	require.NoError(t, store.SaveRun(ctx, domain.CrawlRun{ID: "old", StartedAt: base.Add(-time.Hour), PagesFetched: 5}))
	require.NoError(t, store.SaveRun(ctx, domain.CrawlRun{ID: "new", StartedAt: base, PagesFetched: 9}))

	list, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID, "newest first")
	assert.Equal(t, 9, list[0].PagesFetched)

	t.Run("save updates", func(t *testing.T) {
		require.NoError(t, store.SaveRun(ctx, domain.CrawlRun{ID: "new", StartedAt: base, PagesFetched: 12}))
		list, err := store.ListRuns(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, 12, list[0].PagesFetched)
	})

	t.Run("empty ID rejected", func(t *testing.T) {
		assert.ErrorIs(t, store.SaveRun(ctx, domain.CrawlRun{}), domain.ErrInvalidInput)
	})
}

func TestCrawlRunStore_Empty(t *testing.T) {
	store := NewCrawlRunStore()
	list, err := store.ListRuns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
