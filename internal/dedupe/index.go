package dedupe

// DefaultMaxDistance is the Hamming distance at or below which two
// fingerprints are considered near-duplicates.
const DefaultMaxDistance = 3

type entry struct {
	id   string
	hash uint64
}

// Index finds near-duplicate fingerprints by banded bucketing.
// The 64-bit fingerprint is split into k+1 equal blocks; by pigeonhole,
// two fingerprints within Hamming distance k share at least one block
// exactly, so only fingerprints sharing a block need a full distance
// check. Not safe for concurrent use.
type Index struct {
	k       int
	blocks  int
	buckets map[uint64][]entry
}

// NewIndex creates an index with the given maximum Hamming distance.
// A non-positive k falls back to DefaultMaxDistance.
func NewIndex(k int) *Index {
	if k <= 0 {
		k = DefaultMaxDistance
	}
	return &Index{
		k:       k,
		blocks:  k + 1,
		buckets: make(map[uint64][]entry),
	}
}

// Add inserts a fingerprint under the given ID.
func (x *Index) Add(id string, hash uint64) {
	for b := 0; b < x.blocks; b++ {
		key := x.bucketKey(hash, b)
		x.buckets[key] = append(x.buckets[key], entry{id: id, hash: hash})
	}
}

// NearDuplicate returns the ID of a stored fingerprint within the
// maximum distance of hash, if any.
func (x *Index) NearDuplicate(hash uint64) (string, bool) {
	for b := 0; b < x.blocks; b++ {
		for _, e := range x.buckets[x.bucketKey(hash, b)] {
			if Distance(e.hash, hash) <= x.k {
				return e.id, true
			}
		}
	}
	return "", false
}

// bucketKey extracts block b of the fingerprint and tags it with the
// block number so blocks from different positions never collide.
func (x *Index) bucketKey(hash uint64, b int) uint64 {
	width := HashBits / x.blocks
	shift := uint(b * width)
	mask := uint64(1)<<uint(width) - 1
	return (hash>>shift)&mask | uint64(b)<<uint(HashBits-8)
}
