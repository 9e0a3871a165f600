package services

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/lexica-cli/internal/core/domain"
	"github.com/custodia-labs/lexica-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lexica-cli/internal/core/ports/driving"
	"github.com/custodia-labs/lexica-cli/internal/logger"
	"github.com/custodia-labs/lexica-cli/internal/tokeniser"
	"github.com/custodia-labs/lexica-cli/internal/wordfilter"
)

// Ensure Builder implements the interface.
var _ driving.LexiconBuilder = (*Builder)(nil)

// Builder produces the final lexicon for one run.
// It feeds every page from the source through the tokeniser and word
// filter, accumulating accepted words plus the seed set into one
// deduplicated set, and persists the result through the lexicon store.
type Builder struct {
	source driven.PageSource
	store  driven.LexiconStore

	// Status tracking
	mu      sync.RWMutex
	running bool
	status  driving.BuildStatus
}

// NewBuilder creates a new lexicon builder.
func NewBuilder(source driven.PageSource, store driven.LexiconStore) *Builder {
	return &Builder{
		source: source,
		store:  store,
	}
}

// Build scans the whole corpus and writes the resulting lexicon.
// Unreadable pages are logged and skipped; they never fail the build.
func (b *Builder) Build(ctx context.Context) (*driving.BuildResult, error) {
	if !b.setRunning(true) {
		return nil, domain.ErrBuildInProgress
	}
	defer b.setRunning(false)

	caps := b.source.Capabilities()
	if caps.SupportsValidation {
		if err := b.source.Validate(ctx); err != nil {
			return nil, fmt.Errorf("validate source: %w", err)
		}
	}

	lex := domain.NewLexicon()
	lex.AddAll(domain.SeedWords())

	logger.Section("Lexicon build")
	logger.Info("Seeded lexicon with %d words", lex.Len())

	result := &driving.BuildResult{}
	pagesCh, errsCh := b.source.FullSync(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			// Per-page failures are reported and skipped.
			b.countError()
			logger.Warn("Skipping page: %v", err)

		case page, ok := <-pagesCh:
			if !ok {
				if errsCh != nil {
					for err := range errsCh {
						b.countError()
						logger.Warn("Skipping page: %v", err)
					}
				}
				result.LexiconSize = lex.Len()
				if err := b.store.Save(ctx, lex); err != nil {
					return nil, fmt.Errorf("save lexicon: %w", err)
				}
				logger.Info("Build complete: %d pages, %d unique words",
					result.PagesScanned, result.LexiconSize)
				return result, nil
			}

			b.scanPage(lex, &page, result)
			b.countPage()
		}
	}
}

// Watch performs a full build and then keeps extending the lexicon as
// pages land in the corpus, persisting after every change.
func (b *Builder) Watch(ctx context.Context) error {
	result, err := b.Build(ctx)
	if err != nil {
		return err
	}

	if !b.source.Capabilities().SupportsWatch {
		return fmt.Errorf("%w: source %q cannot watch", domain.ErrUnsupportedType, b.source.Type())
	}

	// Reload the set the initial build produced and keep growing it.
	lex, err := b.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load lexicon: %w", err)
	}

	changesCh, err := b.source.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch source: %w", err)
	}

	logger.Section("Watching corpus")
	logger.Info("Initial build: %d unique words", result.LexiconSize)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case change, ok := <-changesCh:
			if !ok {
				return nil
			}
			// Words are never removed; deletes are ignored.
			if change.Type == domain.ChangeDeleted {
				continue
			}

			logger.Debug("Corpus change: %s", change.Page.URI)
			b.scanPage(lex, &change.Page, &driving.BuildResult{})
			if err := b.store.Save(ctx, lex); err != nil {
				return fmt.Errorf("save lexicon: %w", err)
			}
		}
	}
}

// Status returns the state of a running build.
func (b *Builder) Status(_ context.Context) (*driving.BuildStatus, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	status := b.status
	return &status, nil
}

// scanPage tokenises one page and merges accepted words into the lexicon.
func (b *Builder) scanPage(lex *domain.Lexicon, page *domain.RawPage, result *driving.BuildResult) {
	s := tokeniser.New(bytes.NewReader(page.Content))
	for s.Scan() {
		result.CandidateWords++
		if word := s.Word(); wordfilter.Valid(word) {
			result.AcceptedWords++
			lex.Add(word)
		}
	}
	// A bytes.Reader cannot fail mid-stream, but the scanner surfaces
	// reader errors for other sources.
	if err := s.Err(); err != nil {
		b.countError()
		logger.Warn("Tokenising %s: %v", page.URI, err)
		return
	}
	result.PagesScanned++
}

func (b *Builder) setRunning(v bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if v && b.running {
		return false
	}
	b.running = v
	if v {
		b.status = driving.BuildStatus{Running: true}
	} else {
		b.status.Running = false
	}
	return true
}

func (b *Builder) countPage() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status.PagesScanned++
}

func (b *Builder) countError() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status.ErrorCount++
}
