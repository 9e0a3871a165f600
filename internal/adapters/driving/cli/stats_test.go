package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexica-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lexica-cli/internal/core/domain"
)

func setupStatsTest(t *testing.T, runs ...domain.CrawlRun) func() {
	t.Helper()

	store := memory.NewCrawlRunStore()
	for _, run := range runs {
		require.NoError(t, store.SaveRun(context.Background(), run))
	}

	oldStore := runStore
	runStore = store
	return func() {
		runStore = oldStore
	}
}

func TestStatsCmd_Use(t *testing.T) {
	assert.Equal(t, "stats", statsCmd.Use)
}

func TestStatsCmd_Short(t *testing.T) {
	assert.Equal(t, "Show crawl run history", statsCmd.Short)
}

func TestStatsCmd_NoRuns(t *testing.T) {
	cleanup := setupStatsTest(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"stats"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No crawl runs recorded.")
}

func TestStatsCmd_ListsRuns(t *testing.T) {
	started := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	cleanup := setupStatsTest(t,
		domain.CrawlRun{
			ID:           "run-1",
			StartedAt:    started,
			FinishedAt:   started.Add(5 * time.Minute),
			PagesFetched: 120,
			PagesSkipped: 8,
			Failures:     2,
		},
		domain.CrawlRun{
			ID:        "run-2",
			StartedAt: started.Add(time.Hour),
		},
	)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"stats"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "fetched 120")
	assert.Contains(t, out, "skipped 8")
	assert.Contains(t, out, "failed 2")
	assert.Contains(t, out, "2026-03-14 09:30:00")

	// The unfinished run shows as still running.
	assert.Contains(t, out, "run-2")
	assert.Contains(t, out, "finished running")
}

func TestStatsCmd_ServiceNotConfigured(t *testing.T) {
	oldStore := runStore
	runStore = nil
	defer func() {
		runStore = oldStore
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"stats"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "state store not configured")
}
