// Package file provides the flat-file lexicon store.
// The lexicon is persisted as newline-separated words in set iteration
// order; consumers that need a stable order sort the file themselves.
package file

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/lexica-cli/internal/core/domain"
	"github.com/custodia-labs/lexica-cli/internal/core/ports/driven"
)

// Ensure LexiconStore implements the interface.
var _ driven.LexiconStore = (*LexiconStore)(nil)

// LexiconStore persists the lexicon to a flat text file.
type LexiconStore struct {
	path string
}

// NewLexiconStore creates a store writing to the given file path.
func NewLexiconStore(path string) *LexiconStore {
	return &LexiconStore{path: path}
}

// Save writes the full lexicon, replacing any previous file. The write
// goes through a temp file and rename so a crash never leaves a
// truncated lexicon behind.
func (s *LexiconStore) Save(_ context.Context, lex *domain.Lexicon) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".lexicon-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, word := range lex.Words() {
		if _, err := w.WriteString(word + "\n"); err != nil {
			tmp.Close()
			return fmt.Errorf("writing lexicon: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("writing lexicon: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing lexicon: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing lexicon: %w", err)
	}
	return nil
}

// Load reads a previously saved lexicon.
func (s *LexiconStore) Load(_ context.Context) (*domain.Lexicon, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("opening lexicon: %w", err)
	}
	defer f.Close()

	lex := domain.NewLexicon()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if word := strings.TrimSpace(scanner.Text()); word != "" {
			lex.Add(word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading lexicon: %w", err)
	}
	return lex, nil
}

// Path returns the lexicon file path.
func (s *LexiconStore) Path() string {
	return s.path
}
