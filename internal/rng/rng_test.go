package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashStringIsFNV1a(t *testing.T) {
	// Offset basis for the empty string.
	assert.Equal(t, uint32(2166136261), HashString(""))
	// Published FNV-1a test vector.
	assert.Equal(t, uint32(0xe40c292c), HashString("a"))
}

func TestSameSeedSameStream(t *testing.T) {
	a := FromString("game-1")
	b := FromString("game-1")
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Uint32(), b.Uint32(), "draw %d", i)
	}
}

func TestTaggedStreamsDiffer(t *testing.T) {
	a := FromTagged("game-1", "ports")
	b := FromTagged("game-1", "devdeck")
	same := true
	for i := 0; i < 8; i++ {
		if a.Uint32() != b.Uint32() {
			same = false
		}
	}
	assert.False(t, same)
}

func TestFloat64Range(t *testing.T) {
	s := New(7)
	for i := 0; i < 10000; i++ {
		f := s.Float64()
		require.GreaterOrEqual(t, f, 0.0)
		require.Less(t, f, 1.0)
	}
}

func TestIntNCoversRange(t *testing.T) {
	s := New(99)
	seen := make(map[int]int)
	for i := 0; i < 6000; i++ {
		v := s.IntN(6)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 6)
		seen[v]++
	}
	assert.Len(t, seen, 6)
}

func TestShuffledKeepsMultiset(t *testing.T) {
	in := []int{1, 2, 2, 3, 3, 3, 4}
	out := Shuffled(FromString("x"), in)

	assert.Equal(t, []int{1, 2, 2, 3, 3, 3, 4}, in, "input must not be modified")
	assert.ElementsMatch(t, in, out)
}

func TestShuffleDeterministic(t *testing.T) {
	a := Shuffled(FromString("seed"), []string{"a", "b", "c", "d", "e", "f"})
	b := Shuffled(FromString("seed"), []string{"a", "b", "c", "d", "e", "f"})
	assert.Equal(t, a, b)
}

func TestIntNPanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { New(1).IntN(0) })
}
