// Package wordfilter implements the heuristic word-validity predicate.
//
// The filter is phonotactic, not lexical: it accepts strings that look
// pronounceable by length and vowel/consonant shape, without any
// dictionary lookup. Real words can be rejected (acronyms, very long or
// very short words) and non-words can be accepted.
package wordfilter

// Length bounds for accepted words. Lengths 4 through 14 inclusive pass;
// common shorter words are covered by the seed set instead.
const (
	MinLen = 4
	MaxLen = 14
)

// maxConsonantRun is the longest allowed run of consecutive non-vowels.
const maxConsonantRun = 3

// Valid reports whether a candidate word passes the heuristic filter.
// The input is expected to be a non-empty lowercase ASCII letter sequence,
// as produced by the tokeniser.
func Valid(word string) bool {
	if len(word) < MinLen || len(word) > MaxLen {
		return false
	}

	hasVowel := false
	for i := 0; i < len(word); i++ {
		if isVowel(word[i]) {
			hasVowel = true
			break
		}
	}
	if !hasVowel {
		return false
	}

	run := 0
	for i := 0; i < len(word); i++ {
		if isVowel(word[i]) {
			run = 0
			continue
		}
		run++
		if run > maxConsonantRun {
			return false
		}
	}

	return true
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
