package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/lexica-cli/internal/core/domain"
	"github.com/custodia-labs/lexica-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lexica-cli/internal/core/ports/driving"
	"github.com/custodia-labs/lexica-cli/internal/crawler"
	"github.com/custodia-labs/lexica-cli/internal/dedupe"
	"github.com/custodia-labs/lexica-cli/internal/logger"
	"github.com/custodia-labs/lexica-cli/internal/tokeniser"
)

// Ensure CrawlService implements the interface.
var _ driving.CrawlOrchestrator = (*CrawlService)(nil)

// DefaultCrawlWorkers is the number of concurrent crawl workers.
const DefaultCrawlWorkers = 4

// idlePoll is how long a worker waits when every queued domain is
// claimed by another worker.
const idlePoll = 200 * time.Millisecond

// CrawlService fetches pages into the raw corpus directory.
// Workers take one site at a time and drain it (domain affinity), the
// fetcher rate-limits per host, and near-duplicate pages are detected
// by simhash and skipped. Frontier state and fingerprints survive runs
// through their stores.
type CrawlService struct {
	fetcher       *crawler.Fetcher
	frontierStore driven.FrontierStore
	simhashStore  driven.SimhashStore
	runStore      driven.CrawlRunStore
	rawDir        string
	workers       int

	// dedupeMu guards the simhash index during a run.
	dedupeMu sync.Mutex
	index    *dedupe.Index

	// Status tracking
	mu      sync.Mutex
	running bool
	status  driving.CrawlStatus
	budget  int
	fetched int
}

// CrawlOption configures the crawl service.
type CrawlOption func(*CrawlService)

// WithWorkers sets the number of concurrent workers.
func WithWorkers(n int) CrawlOption {
	return func(s *CrawlService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// NewCrawlService creates a crawl service writing pages into rawDir.
func NewCrawlService(
	fetcher *crawler.Fetcher,
	frontierStore driven.FrontierStore,
	simhashStore driven.SimhashStore,
	runStore driven.CrawlRunStore,
	rawDir string,
	opts ...CrawlOption,
) *CrawlService {
	s := &CrawlService{
		fetcher:       fetcher,
		frontierStore: frontierStore,
		simhashStore:  simhashStore,
		runStore:      runStore,
		rawDir:        rawDir,
		workers:       DefaultCrawlWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Crawl fetches pages until the budget is reached or the frontier
// drains.
func (s *CrawlService) Crawl(ctx context.Context, seeds []string, pageBudget int) error {
	if !s.start(pageBudget) {
		return domain.ErrCrawlInProgress
	}
	defer s.stop()

	if err := os.MkdirAll(s.rawDir, 0o700); err != nil {
		return fmt.Errorf("creating raw directory: %w", err)
	}

	frontier := crawler.NewFrontier()
	records, err := s.frontierStore.List(ctx)
	if err != nil {
		return fmt.Errorf("load frontier: %w", err)
	}
	frontier.Restore(records)
	for _, seed := range seeds {
		frontier.Add(seed)
	}
	if !frontier.HasPending() {
		return domain.ErrFrontierEmpty
	}

	if err := s.loadIndex(ctx); err != nil {
		return fmt.Errorf("load simhash index: %w", err)
	}

	run := domain.CrawlRun{
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
	}
	logger.Section("Crawl")
	logger.Info("Run %s: %d workers, budget %d pages", run.ID, s.workers, pageBudget)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func(name int) {
			defer wg.Done()
			s.work(ctx, name, frontier)
		}(i)
	}
	wg.Wait()

	// Persist pending URLs for the next run. Visited and failed URLs
	// were recorded as they happened.
	for _, rec := range frontier.Snapshot() {
		if rec.Status != domain.URLPending {
			continue
		}
		if err := s.frontierStore.Upsert(ctx, rec); err != nil {
			return fmt.Errorf("save frontier: %w", err)
		}
	}

	status, _ := s.Status(ctx)
	run.FinishedAt = time.Now()
	run.PagesFetched = status.PagesFetched
	run.PagesSkipped = status.PagesSkipped
	run.Failures = status.ErrorCount
	if err := s.runStore.SaveRun(ctx, run); err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	logger.Info("Crawl complete: %d fetched, %d skipped, %d failed",
		run.PagesFetched, run.PagesSkipped, run.Failures)

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return nil
}

// Status returns the state of the current or last crawl.
func (s *CrawlService) Status(_ context.Context) (*driving.CrawlStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := s.status
	return &status, nil
}

// work is one crawl worker: claim a domain, drain it, repeat.
func (s *CrawlService) work(ctx context.Context, name int, frontier *crawler.Frontier) {
	for {
		if ctx.Err() != nil || s.budgetSpent() {
			return
		}

		host, rawURL, ok := frontier.NextDomain()
		if !ok {
			if !frontier.HasPending() {
				return
			}
			// Another worker holds the remaining URLs.
			select {
			case <-ctx.Done():
				return
			case <-time.After(idlePoll):
			}
			continue
		}

		logger.Debug("[worker %d] domain %s", name, host)
		s.fetchOne(ctx, frontier, rawURL)

		for !s.budgetSpent() && ctx.Err() == nil {
			next, more := frontier.NextForHost(host)
			if !more {
				break
			}
			s.fetchOne(ctx, frontier, next)
		}
		logger.Debug("[worker %d] finished domain %s", name, host)
	}
}

// fetchOne downloads a single URL, stores the page unless it is a
// near-duplicate, and queues discovered links.
func (s *CrawlService) fetchOne(ctx context.Context, frontier *crawler.Frontier, rawURL string) {
	body, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		if errors.Is(err, domain.ErrNotHTML) {
			frontier.MarkVisited(rawURL)
			s.recordURL(ctx, rawURL, domain.URLVisited)
			s.countSkipped()
			return
		}
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Warn("Fetch failed %s: %v", rawURL, err)
		frontier.MarkFailed(rawURL)
		s.recordURL(ctx, rawURL, domain.URLFailed)
		s.countError()
		return
	}

	// Fingerprint the text content only, so markup and chrome changes
	// do not mask duplicated copy.
	text := strings.Join(tokeniser.WordsString(string(body)), " ")
	hash := dedupe.Hash(text)
	pageID := crawler.PageID(rawURL)

	if dupID, dup := s.checkAndAdd(ctx, pageID, hash); dup {
		logger.Debug("Near-duplicate of %s: %s", dupID, rawURL)
		frontier.MarkVisited(rawURL)
		s.recordURL(ctx, rawURL, domain.URLVisited)
		s.countSkipped()
		return
	}

	path := filepath.Join(s.rawDir, crawler.PageFileName(rawURL))
	if err := os.WriteFile(path, body, 0o600); err != nil {
		logger.Warn("Store failed %s: %v", rawURL, err)
		frontier.MarkFailed(rawURL)
		s.recordURL(ctx, rawURL, domain.URLFailed)
		s.countError()
		return
	}

	frontier.MarkVisited(rawURL)
	s.recordURL(ctx, rawURL, domain.URLVisited)
	s.countFetched()

	for _, link := range crawler.ExtractLinks(rawURL, body) {
		frontier.Add(link)
	}
}

// checkAndAdd checks the simhash index for a near-duplicate and, when
// the page is new, registers its fingerprint in the index and store.
func (s *CrawlService) checkAndAdd(ctx context.Context, pageID string, hash uint64) (string, bool) {
	s.dedupeMu.Lock()
	defer s.dedupeMu.Unlock()

	if dupID, dup := s.index.NearDuplicate(hash); dup {
		return dupID, true
	}
	s.index.Add(pageID, hash)
	if err := s.simhashStore.Add(ctx, pageID, hash); err != nil {
		logger.Warn("Save fingerprint %s: %v", pageID, err)
	}
	return "", false
}

// loadIndex rebuilds the in-memory simhash index from the store.
func (s *CrawlService) loadIndex(ctx context.Context) error {
	hashes, err := s.simhashStore.All(ctx)
	if err != nil {
		return err
	}

	s.dedupeMu.Lock()
	defer s.dedupeMu.Unlock()
	s.index = dedupe.NewIndex(dedupe.DefaultMaxDistance)
	for id, h := range hashes {
		s.index.Add(id, h)
	}
	logger.Debug("Loaded %d fingerprints", len(hashes))
	return nil
}

func (s *CrawlService) recordURL(ctx context.Context, rawURL string, status domain.URLStatus) {
	rec := domain.URLRecord{
		URL:          rawURL,
		Domain:       crawler.Host(rawURL),
		Status:       status,
		DiscoveredAt: time.Now(),
	}
	if err := s.frontierStore.Upsert(ctx, rec); err != nil {
		logger.Warn("Save URL state %s: %v", rawURL, err)
	}
}

func (s *CrawlService) start(budget int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return false
	}
	s.running = true
	s.budget = budget
	s.fetched = 0
	s.status = driving.CrawlStatus{Running: true}
	return true
}

func (s *CrawlService) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.status.Running = false
}

func (s *CrawlService) budgetSpent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budget > 0 && s.fetched >= s.budget
}

func (s *CrawlService) countFetched() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetched++
	s.status.PagesFetched++
}

func (s *CrawlService) countSkipped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.PagesSkipped++
}

func (s *CrawlService) countError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.ErrorCount++
}
