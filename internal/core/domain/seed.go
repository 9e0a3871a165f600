package domain

import (
	_ "embed"
	"strings"
)

// seedData holds the embedded seed word list, one word per line.
// These are common 1-3 letter words that the validator's length rule
// would otherwise reject. They are merged into every lexicon
// unconditionally, with no validation applied.
//
//go:embed seedwords.txt
var seedData string

var seedWords []string

func init() {
	for _, line := range strings.Split(seedData, "\n") {
		word := strings.TrimSpace(line)
		if word != "" {
			seedWords = append(seedWords, word)
		}
	}
}

// SeedWords returns a copy of the fixed seed word set.
func SeedWords() []string {
	out := make([]string, len(seedWords))
	copy(out, seedWords)
	return out
}
