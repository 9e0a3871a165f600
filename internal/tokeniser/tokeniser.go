// Package tokeniser provides a streaming HTML-to-word scanner.
//
// The scanner consumes a character stream representing one HTML document
// and emits a lazy, forward-only sequence of lowercase alphabetic
// candidate words. Markup is stripped by tag-boundary detection only:
// there is no tag or attribute model, and no entity decoding. Scanning is
// ASCII-only; bytes outside the ASCII letter range act as word boundaries.
package tokeniser

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Scanner tokenises one HTML document into candidate words.
// The usage model follows bufio.Scanner:
//
//	s := tokeniser.New(r)
//	for s.Scan() {
//		word := s.Word()
//	}
//	if err := s.Err(); err != nil { ... }
//
// A Scanner is single-use and not safe for concurrent use.
type Scanner struct {
	r    *bufio.Reader
	word string
	err  error
	done bool

	// inTag is set between an unconsumed '<' and the next '>'.
	// An unmatched '<' swallows the remainder of the document;
	// that matches the tag-boundary model and is deliberate.
	inTag bool

	// prev is the previously accepted text character, used only for
	// the possessive elision rule. Zero means none.
	prev byte
}

// New creates a Scanner reading from r.
func New(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReader(r)}
}

// Scan advances to the next candidate word. It returns false at end of
// stream or on read error, after which Err reports the error, if any.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}

	var buf []byte
	for {
		c, err := s.r.ReadByte()
		if err != nil {
			s.done = true
			if !errors.Is(err, io.EOF) {
				s.err = err
				return false
			}
			// Flush the final word at end of stream.
			if len(buf) > 0 {
				s.word = string(buf)
				return true
			}
			return false
		}

		if c == '<' {
			s.inTag = true
			continue
		}
		if c == '>' {
			s.inTag = false
			continue
		}
		if s.inTag {
			continue
		}

		// Possessive elision: drop the "s" of a trailing "'s" so that
		// "bird's" tokenises as "bird" rather than "bird" plus "s".
		if s.prev == '\'' && c == 's' {
			s.prev = 0
			continue
		}
		s.prev = c

		if isLetter(c) {
			buf = append(buf, toLower(c))
			continue
		}

		// Any other character ends the current word.
		if len(buf) > 0 {
			s.word = string(buf)
			return true
		}
	}
}

// Word returns the candidate word produced by the last call to Scan.
func (s *Scanner) Word() string {
	return s.word
}

// Err returns the first non-EOF error encountered by the Scanner.
func (s *Scanner) Err() error {
	return s.err
}

// Words collects every candidate word from r. It is a convenience for
// callers that do not need lazy iteration.
func Words(r io.Reader) ([]string, error) {
	var out []string
	s := New(r)
	for s.Scan() {
		out = append(out, s.Word())
	}
	return out, s.Err()
}

// WordsString collects every candidate word from an in-memory document.
func WordsString(doc string) []string {
	words, _ := Words(strings.NewReader(doc))
	return words
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
