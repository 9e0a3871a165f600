package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/lexica-cli/internal/core/ports/driving"
	"github.com/custodia-labs/lexica-cli/internal/langmeta"
	"github.com/custodia-labs/lexica-cli/internal/logger"
	"github.com/custodia-labs/lexica-cli/internal/tokeniser"
)

// Ensure Pruner implements the interface.
var _ driving.CorpusPruner = (*Pruner)(nil)

// DefaultMinWords is the minimum text word count for a page to be
// worth keeping.
const DefaultMinWords = 200

// Pruner removes low-value pages from the raw corpus directory:
// pages that declare a non-English language, and pages with too little
// text to contribute to the lexicon. Pages with no language declaration
// are kept; only an explicit foreign declaration is disqualifying.
type Pruner struct {
	rawDir   string
	minWords int
}

// PrunerOption configures the pruner.
type PrunerOption func(*Pruner)

// WithMinWords sets the minimum word count for keeping a page.
func WithMinWords(n int) PrunerOption {
	return func(p *Pruner) {
		if n > 0 {
			p.minWords = n
		}
	}
}

// NewPruner creates a pruner over the given corpus directory.
func NewPruner(rawDir string, opts ...PrunerOption) *Pruner {
	p := &Pruner{
		rawDir:   rawDir,
		minWords: DefaultMinWords,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Prune inspects every .html page under the corpus directory and
// deletes the ones that fail the checks. With dryRun set nothing is
// deleted; the report lists what would have been removed.
func (p *Pruner) Prune(ctx context.Context, dryRun bool) (*driving.PruneReport, error) {
	entries, err := os.ReadDir(p.rawDir)
	if err != nil {
		return nil, err
	}

	logger.Section("Corpus prune")
	report := &driving.PruneReport{}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}

		path := filepath.Join(p.rawDir, entry.Name())
		report.PagesChecked++

		body, err := os.ReadFile(path)
		if err != nil {
			// Unreadable pages are removable; they cannot be tokenised
			// either.
			logger.Warn("Unreadable page %s: %v", path, err)
			report.ErrorCount++
			p.remove(path, dryRun, report)
			continue
		}

		if reason, drop := p.shouldDrop(body); drop {
			logger.Debug("Dropping %s: %s", path, reason)
			p.remove(path, dryRun, report)
		}
	}

	logger.Info("Prune complete: %d checked, %d removed", report.PagesChecked, len(report.Removed))
	return report, nil
}

// shouldDrop applies the prune checks to one page.
func (p *Pruner) shouldDrop(body []byte) (string, bool) {
	if english, declared := langmeta.IsEnglish(body); declared && !english {
		return "non-English language declared", true
	}

	words := countWords(body, p.minWords)
	if words < p.minWords {
		return "too little text", true
	}
	return "", false
}

func (p *Pruner) remove(path string, dryRun bool, report *driving.PruneReport) {
	if !dryRun {
		if err := os.Remove(path); err != nil {
			logger.Warn("Remove %s: %v", path, err)
			report.ErrorCount++
			return
		}
	}
	report.Removed = append(report.Removed, path)
}

// countWords counts candidate words in the page text, stopping once
// enough have been seen.
func countWords(body []byte, enough int) int {
	s := tokeniser.New(bytes.NewReader(body))
	n := 0
	for s.Scan() {
		n++
		if n >= enough {
			break
		}
	}
	return n
}
