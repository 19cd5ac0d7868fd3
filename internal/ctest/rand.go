package ctest

import (
	"crypto/sha256"
	"math/rand/v2"
	"testing"
)

// RandomLeavesForTest returns n leaf byte slices of size sz each,
// filled with pseudorandom data derived from a seed based on the
// test name. The same test always sees the same leaves.
func RandomLeavesForTest(t *testing.T, n, sz int) [][]byte {
	// Sha256 happens to be the right size for the chacha8 seed,
	// and this fits well anyway since that means
	// we are not limited by the length of any particular test name.
	seed := sha256.Sum256([]byte(t.Name()))
	chacha := rand.NewChaCha8(seed)

	leaves := make([][]byte, n)
	for i := range leaves {
		leaves[i] = make([]byte, sz)
		if _, err := chacha.Read(leaves[i]); err != nil {
			panic(err)
		}
	}

	return leaves
}
