package domain

// Lexicon is the deduplicated set of accepted words for one run.
// Words are lowercase ASCII letter sequences. Insert-only: a word is
// never removed once added. Not safe for concurrent use; the builder
// owns it exclusively.
type Lexicon struct {
	words map[string]struct{}
}

// NewLexicon creates an empty lexicon.
func NewLexicon() *Lexicon {
	return &Lexicon{words: make(map[string]struct{})}
}

// Add inserts a word. Duplicates collapse silently.
func (l *Lexicon) Add(word string) {
	l.words[word] = struct{}{}
}

// AddAll inserts every word in the given slice.
func (l *Lexicon) AddAll(words []string) {
	for _, w := range words {
		l.words[w] = struct{}{}
	}
}

// Contains reports whether the lexicon holds the given word.
func (l *Lexicon) Contains(word string) bool {
	_, ok := l.words[word]
	return ok
}

// Len returns the number of unique words.
func (l *Lexicon) Len() int {
	return len(l.words)
}

// Words returns all words in unspecified order.
func (l *Lexicon) Words() []string {
	out := make([]string, 0, len(l.words))
	for w := range l.words {
		out = append(out, w)
	}
	return out
}
