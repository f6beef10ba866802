// Package rng provides the reproducible pseudo-random stream used for board
// generation and dev deck shuffling.
//
// A stream is seeded from a string (usually the game id plus a tag) so the
// same game always produces the same board, port layout and deck order. Live
// dice rolls do not use this package.
package rng

import "hash/fnv"

// Source is a mulberry32 generator. The zero value is a valid stream seeded
// with 0.
type Source struct {
	state uint32
}

// New returns a stream seeded with seed.
func New(seed uint32) *Source {
	return &Source{state: seed}
}

// FromString returns a stream seeded with the 32-bit FNV-1a hash of s.
func FromString(s string) *Source {
	return New(HashString(s))
}

// FromTagged seeds a stream from id and a tag joined by a colon, so two
// generators working over the same id draw independent streams.
func FromTagged(id, tag string) *Source {
	return FromString(id + ":" + tag)
}

// HashString returns the 32-bit FNV-1a hash of s.
func HashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

// Uint32 advances the stream and returns the next raw value.
func (s *Source) Uint32() uint32 {
	s.state += 0x6d2b79f5
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns a value in [0, 1).
func (s *Source) Float64() float64 {
	return float64(s.Uint32()) / 4294967296.0
}

// IntN returns a value in [0, n). It panics if n <= 0.
func (s *Source) IntN(n int) int {
	if n <= 0 {
		panic("rng: IntN called with non-positive n")
	}
	return int(s.Float64() * float64(n))
}

// Shuffle permutes items in place with a Fisher-Yates pass driven by s.
func Shuffle[T any](s *Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := s.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// Shuffled returns a shuffled copy of items, leaving items untouched.
func Shuffled[T any](s *Source, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	Shuffle(s, out)
	return out
}

// Pick returns a uniformly chosen element of items. It panics on an empty
// slice.
func Pick[T any](s *Source, items []T) T {
	return items[s.IntN(len(items))]
}
