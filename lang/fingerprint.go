package lang

import "github.com/zeebo/xxh3"

// Fingerprint returns a 64-bit hash of the compiled text of n.
//
// Structurally identical trees compile to identical text, so they share a
// fingerprint. Literals of different types with the same textual form (42 and
// "42") are not distinguished.
func Fingerprint(n Node) uint64 {
	if isNil(n) {
		return xxh3.HashString("")
	}

	return xxh3.HashString(n.Compile())
}
