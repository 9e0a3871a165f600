// Package dedupe implements 64-bit simhash fingerprinting for
// near-duplicate page detection. Two pages whose fingerprints are within
// a small Hamming distance carry substantially the same text; the
// crawler uses this to avoid storing the same page twice under
// different URLs.
package dedupe

import (
	"hash/fnv"
	"math/bits"
	"strings"
)

// HashBits is the fingerprint width.
const HashBits = 64

// Hash computes the simhash fingerprint of a text.
// Features are whitespace-separated lowercased words, weighted by their
// occurrence count.
func Hash(text string) uint64 {
	counts := make(map[string]int)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		counts[w]++
	}

	var v [HashBits]int
	for w, weight := range counts {
		h := fnv.New64a()
		h.Write([]byte(w))
		f := h.Sum64()
		for i := 0; i < HashBits; i++ {
			if f&(1<<uint(i)) != 0 {
				v[i] += weight
			} else {
				v[i] -= weight
			}
		}
	}

	var out uint64
	for i := 0; i < HashBits; i++ {
		if v[i] > 0 {
			out |= 1 << uint(i)
		}
	}
	return out
}

// Distance returns the Hamming distance between two fingerprints.
func Distance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}
