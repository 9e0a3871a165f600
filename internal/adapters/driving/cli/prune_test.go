package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/lexica-cli/internal/core/ports/driving"
)

// mockCorpusPruner implements driving.CorpusPruner for testing.
type mockCorpusPruner struct {
	report    *driving.PruneReport
	pruneErr  error
	gotDryRun bool
}

func (m *mockCorpusPruner) Prune(_ context.Context, dryRun bool) (*driving.PruneReport, error) {
	m.gotDryRun = dryRun
	if m.pruneErr != nil {
		return nil, m.pruneErr
	}
	if m.report != nil {
		return m.report, nil
	}
	return &driving.PruneReport{}, nil
}

func setupPruneTest(mock driving.CorpusPruner) func() {
	oldPruner := corpusPruner
	corpusPruner = mock
	return func() {
		corpusPruner = oldPruner
	}
}

func TestPruneCmd_Use(t *testing.T) {
	assert.Equal(t, "prune", pruneCmd.Use)
}

func TestPruneCmd_Short(t *testing.T) {
	assert.Equal(t, "Remove low-value pages from the corpus", pruneCmd.Short)
}

func TestPruneCmd_Executes(t *testing.T) {
	mock := &mockCorpusPruner{
		report: &driving.PruneReport{
			PagesChecked: 10,
			Removed:      []string{"/corpus/a.html", "/corpus/b.html"},
		},
	}
	cleanup := setupPruneTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"prune"})
	defer func() {
		pruneDryRunFlag = false
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.False(t, mock.gotDryRun)
	assert.Contains(t, buf.String(), "Checked 10 pages; removed 2.")
	assert.Contains(t, buf.String(), "/corpus/a.html")
	assert.Contains(t, buf.String(), "/corpus/b.html")
}

func TestPruneCmd_DryRun(t *testing.T) {
	mock := &mockCorpusPruner{
		report: &driving.PruneReport{
			PagesChecked: 5,
			Removed:      []string{"/corpus/junk.html"},
		},
	}
	cleanup := setupPruneTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"prune", "--dry-run"})
	defer func() {
		pruneDryRunFlag = false
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.True(t, mock.gotDryRun)
	assert.Contains(t, buf.String(), "1 would be removed")
}

func TestPruneCmd_ReportsUnreadablePages(t *testing.T) {
	cleanup := setupPruneTest(&mockCorpusPruner{
		report: &driving.PruneReport{PagesChecked: 4, ErrorCount: 2},
	})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"prune"})
	defer func() {
		pruneDryRunFlag = false
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "2 pages could not be read.")
}

func TestPruneCmd_PruneError(t *testing.T) {
	cleanup := setupPruneTest(&mockCorpusPruner{
		pruneErr: errors.New("corpus directory missing"),
	})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"prune"})
	defer func() {
		pruneDryRunFlag = false
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "prune failed")
}

func TestPruneCmd_ServiceNotConfigured(t *testing.T) {
	oldPruner := corpusPruner
	corpusPruner = nil
	defer func() {
		corpusPruner = oldPruner
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"prune"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pruner service not configured")
}
