package mwt

import (
	"fmt"
	"unicode/utf8"

	"github.com/spaolacci/murmur3"
)

// HashID computes the identity hash of s: MurmurHash3 x86_32 with seed 0
// over the UTF-8 bytes of s, widened to 64 bits without sign extension.
//
// The result must agree with every other implementation that shares logs
// with this one, so the algorithm, seed constant and widening are fixed.
// Returns ErrInvalidEncoding if s is not valid UTF-8.
func HashID(s string) (uint64, error) {
	if !utf8.ValidString(s) {
		return 0, fmt.Errorf("hash %q: %w", s, ErrInvalidEncoding)
	}
	return uint64(murmur3.Sum32([]byte(s))), nil
}
