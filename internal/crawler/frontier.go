// Package crawler provides the URL frontier, the polite HTTP fetcher and
// link extraction used by the crawl orchestrator.
package crawler

import (
	"net/url"
	"sync"
	"time"

	"github.com/custodia-labs/lexica-cli/internal/core/domain"
)

// Frontier is a domain-affinity URL queue. URLs are grouped by host so a
// worker can stick to one site while it has pages left, and a URL is
// only ever handed to one worker. Safe for concurrent use.
type Frontier struct {
	mu       sync.Mutex
	queues   map[string][]string
	visited  map[string]struct{}
	inFlight map[string]struct{}
	failed   map[string]struct{}
}

// NewFrontier creates an empty frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		queues:   make(map[string][]string),
		visited:  make(map[string]struct{}),
		inFlight: make(map[string]struct{}),
		failed:   make(map[string]struct{}),
	}
}

// Add queues a URL unless it is already known (queued, in flight,
// visited or failed). Returns true if the URL was added.
func (f *Frontier) Add(rawURL string) bool {
	host := Host(rawURL)
	if host == "" {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.known(rawURL) {
		return false
	}
	f.queues[host] = append(f.queues[host], rawURL)
	return true
}

// Restore loads persisted frontier state. Pending URLs are queued and
// failed URLs are re-queued for retry; visited URLs are remembered so
// they are never fetched again.
func (f *Frontier) Restore(records []domain.URLRecord) {
	for _, rec := range records {
		switch rec.Status {
		case domain.URLVisited:
			f.mu.Lock()
			f.visited[rec.URL] = struct{}{}
			f.mu.Unlock()
		case domain.URLPending, domain.URLInFlight, domain.URLFailed:
			// In-flight URLs from a crashed run go back on the queue.
			f.Add(rec.URL)
		}
	}
}

// NextDomain hands out a host that has pending URLs together with its
// first URL, marking that URL in flight. Returns ok=false when no host
// has pending work.
func (f *Frontier) NextDomain() (host, rawURL string, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for h := range f.queues {
		if u, found := f.popLocked(h); found {
			return h, u, true
		}
	}
	return "", "", false
}

// NextForHost hands out the next pending URL for a host, marking it in
// flight. Returns ok=false when the host's queue is drained.
func (f *Frontier) NextForHost(host string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.popLocked(host)
}

// MarkVisited records a successful fetch.
func (f *Frontier) MarkVisited(rawURL string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.inFlight, rawURL)
	f.visited[rawURL] = struct{}{}
}

// MarkFailed records a failed fetch for retry on a later run.
func (f *Frontier) MarkFailed(rawURL string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.inFlight, rawURL)
	f.failed[rawURL] = struct{}{}
}

// HasPending reports whether any URL is queued or in flight.
func (f *Frontier) HasPending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.inFlight) > 0 {
		return true
	}
	for _, q := range f.queues {
		if len(q) > 0 {
			return true
		}
	}
	return false
}

// Snapshot returns the full frontier state for persistence.
func (f *Frontier) Snapshot() []domain.URLRecord {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	var out []domain.URLRecord
	for host, q := range f.queues {
		for _, u := range q {
			out = append(out, domain.URLRecord{URL: u, Domain: host, Status: domain.URLPending, DiscoveredAt: now})
		}
	}
	for u := range f.inFlight {
		out = append(out, domain.URLRecord{URL: u, Domain: Host(u), Status: domain.URLInFlight, DiscoveredAt: now})
	}
	for u := range f.visited {
		out = append(out, domain.URLRecord{URL: u, Domain: Host(u), Status: domain.URLVisited, DiscoveredAt: now})
	}
	for u := range f.failed {
		out = append(out, domain.URLRecord{URL: u, Domain: Host(u), Status: domain.URLFailed, DiscoveredAt: now})
	}
	return out
}

// popLocked removes and returns the next unknown URL for a host.
// Caller must hold f.mu.
func (f *Frontier) popLocked(host string) (string, bool) {
	q := f.queues[host]
	for len(q) > 0 {
		u := q[0]
		q = q[1:]
		if _, seen := f.visited[u]; seen {
			continue
		}
		if _, busy := f.inFlight[u]; busy {
			continue
		}
		f.queues[host] = q
		f.inFlight[u] = struct{}{}
		return u, true
	}
	delete(f.queues, host)
	return "", false
}

// known reports whether a URL is anywhere in the frontier.
// Caller must hold f.mu.
func (f *Frontier) known(rawURL string) bool {
	if _, ok := f.visited[rawURL]; ok {
		return true
	}
	if _, ok := f.inFlight[rawURL]; ok {
		return true
	}
	if _, ok := f.failed[rawURL]; ok {
		return true
	}
	for _, u := range f.queues[Host(rawURL)] {
		if u == rawURL {
			return true
		}
	}
	return false
}

// Host extracts the host part of a URL, empty if unparseable.
func Host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
