// Package id generates the short opaque identifiers used for games, players,
// cards, trade offers and map templates.
package id

import (
	"strings"

	"github.com/google/uuid"
)

// Length is the number of hex characters in an id.
const Length = 16

// New returns a random 16-character lowercase hex id taken from a v4 UUID.
func New() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:Length]
}

// Valid reports whether s has the shape of an id produced by New.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
