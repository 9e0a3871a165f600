// Package filesystem provides a page source backed by a local directory
// of .html files. It is the default corpus source for lexicon builds
// and supports watching the directory for pages added by a concurrent
// crawl.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/lexica-cli/internal/core/domain"
	"github.com/custodia-labs/lexica-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lexica-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.PageSource = (*Source)(nil)

// Source streams .html files from a directory.
type Source struct {
	sourceID string
	rootPath string

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// New creates a filesystem page source rooted at rootPath.
func New(sourceID, rootPath string) *Source {
	return &Source{
		sourceID: sourceID,
		rootPath: rootPath,
	}
}

// Type returns the source type identifier.
func (s *Source) Type() string {
	return "filesystem"
}

// SourceID returns the configured source ID.
func (s *Source) SourceID() string {
	return s.sourceID
}

// Capabilities returns what this source supports.
func (s *Source) Capabilities() driven.SourceCapabilities {
	return driven.SourceCapabilities{
		SupportsWatch:      true,
		SupportsValidation: true,
	}
}

// Validate checks the root path exists and is a readable directory.
func (s *Source) Validate(_ context.Context) error {
	info, err := os.Stat(s.rootPath)
	if err != nil {
		return fmt.Errorf("corpus directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("corpus directory %s: %w", s.rootPath, domain.ErrInvalidInput)
	}
	if _, err := os.ReadDir(s.rootPath); err != nil {
		return fmt.Errorf("corpus directory: %w", err)
	}
	return nil
}

// FullSync streams every .html file in the directory.
// Unreadable files go to the error channel and do not stop the stream.
func (s *Source) FullSync(ctx context.Context) (<-chan domain.RawPage, <-chan error) {
	pagesCh := make(chan domain.RawPage)
	errsCh := make(chan error, 1)

	go func() {
		defer close(pagesCh)
		defer close(errsCh)

		entries, err := os.ReadDir(s.rootPath)
		if err != nil {
			errsCh <- fmt.Errorf("reading corpus directory: %w", err)
			return
		}

		for _, entry := range entries {
			if ctx.Err() != nil {
				return
			}
			if entry.IsDir() || !isHTML(entry.Name()) {
				continue
			}

			path := filepath.Join(s.rootPath, entry.Name())
			content, err := os.ReadFile(path)
			if err != nil {
				select {
				case errsCh <- fmt.Errorf("reading %s: %w", path, err):
				case <-ctx.Done():
					return
				}
				continue
			}

			page := domain.RawPage{
				SourceID: s.sourceID,
				URI:      path,
				Content:  content,
			}
			select {
			case pagesCh <- page:
			case <-ctx.Done():
				return
			}
		}
	}()

	return pagesCh, errsCh
}

// Watch pushes change events for .html files added, modified or removed
// under the root path. The returned channel closes when the context is
// cancelled or the source is closed.
func (s *Source) Watch(ctx context.Context) (<-chan domain.RawPageChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, domain.ErrSourceClosed
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(s.rootPath); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", s.rootPath, err)
	}
	s.watcher = watcher

	changesCh := make(chan domain.RawPageChange)

	go func() {
		defer close(changesCh)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if change, send := s.toChange(event); send {
					select {
					case changesCh <- change:
					case <-ctx.Done():
						return
					}
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error: %v", err)
			}
		}
	}()

	return changesCh, nil
}

// Close releases the watcher, if any.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

// toChange converts an fsnotify event into a page change event.
func (s *Source) toChange(event fsnotify.Event) (domain.RawPageChange, bool) {
	if !isHTML(event.Name) {
		return domain.RawPageChange{}, false
	}

	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		return domain.RawPageChange{
			Type: domain.ChangeDeleted,
			Page: domain.RawPage{SourceID: s.sourceID, URI: event.Name},
		}, true

	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		content, err := os.ReadFile(event.Name)
		if err != nil {
			// The file may be mid-write; a later Write event will
			// deliver it.
			logger.Debug("Skipping %s: %v", event.Name, err)
			return domain.RawPageChange{}, false
		}
		changeType := domain.ChangeUpdated
		if event.Has(fsnotify.Create) {
			changeType = domain.ChangeCreated
		}
		return domain.RawPageChange{
			Type: changeType,
			Page: domain.RawPage{SourceID: s.sourceID, URI: event.Name, Content: content},
		}, true
	}

	return domain.RawPageChange{}, false
}

func isHTML(name string) bool {
	return strings.HasSuffix(name, ".html")
}
