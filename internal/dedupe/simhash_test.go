package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_Deterministic(t *testing.T) {
	a := Hash("the quick brown fox jumps over the lazy dog")
	b := Hash("the quick brown fox jumps over the lazy dog")
	assert.Equal(t, a, b)
}

func TestHash_CaseInsensitive(t *testing.T) {
	assert.Equal(t, Hash("Hello World"), Hash("hello world"))
}

func TestHash_SimilarTextsAreClose(t *testing.T) {
	base := "the quick brown fox jumps over the lazy dog and keeps running through the long green field all day"
	tweaked := "the quick brown fox jumps over the lazy cat and keeps running through the long green field all day"
	unrelated := "completely different subject matter about database migrations and storage engines with nothing shared"

	near := Distance(Hash(base), Hash(tweaked))
	far := Distance(Hash(base), Hash(unrelated))

	assert.Less(t, near, far, "one-word change should be closer than unrelated text")
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 0, Distance(0, 0))
	assert.Equal(t, 1, Distance(0, 1))
	assert.Equal(t, 64, Distance(0, ^uint64(0)))
	assert.Equal(t, 2, Distance(0b1100, 0b0000))
}

func TestIndex_ExactDuplicate(t *testing.T) {
	idx := NewIndex(3)
	idx.Add("page-1", 0xDEADBEEF)

	id, dup := idx.NearDuplicate(0xDEADBEEF)
	require.True(t, dup)
	assert.Equal(t, "page-1", id)
}

func TestIndex_WithinDistance(t *testing.T) {
	idx := NewIndex(3)
	h := uint64(0xF0F0F0F0F0F0F0F0)
	idx.Add("page-1", h)

	t.Run("distance 3 is a near-duplicate", func(t *testing.T) {
		flipped := h ^ 0b111 // flip 3 bits
		id, dup := idx.NearDuplicate(flipped)
		require.True(t, dup)
		assert.Equal(t, "page-1", id)
	})

	t.Run("distance 4 is not", func(t *testing.T) {
		flipped := h ^ 0b1111 // flip 4 bits
		_, dup := idx.NearDuplicate(flipped)
		assert.False(t, dup)
	})

	t.Run("distance 4 spread across blocks is not", func(t *testing.T) {
		// One bit in each 16-bit block.
		flipped := h ^ (1 | 1<<16 | 1<<32 | 1<<48)
		_, dup := idx.NearDuplicate(flipped)
		assert.False(t, dup)
	})
}

func TestIndex_Empty(t *testing.T) {
	idx := NewIndex(3)
	_, dup := idx.NearDuplicate(12345)
	assert.False(t, dup)
}

func TestIndex_DefaultDistance(t *testing.T) {
	idx := NewIndex(0)
	idx.Add("p", 0)

	_, dup := idx.NearDuplicate(0b111)
	assert.True(t, dup)
	_, dup = idx.NearDuplicate(0b1111)
	assert.False(t, dup)
}
