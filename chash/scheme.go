// Package chash declares the hashing capabilities consumed by the
// canopy tree. Concrete algorithms live in subpackages;
// the tree itself never assumes anything about the digest type
// beyond comparability, and it treats the zero digest
// as the value of an empty leaf or subtree.
package chash

// Merger combines two child digests into their parent digest.
//
// Merge must be deterministic, but it is not assumed to be
// commutative or associative: the verifier replays every merge
// with its operands in the same left/right order used when
// the tree was built, and implementations are free to
// (and encouraged to) produce different results for swapped operands.
//
// Merge must be safe to call concurrently.
type Merger[H comparable] interface {
	Merge(left, right H) H
}

// Hasher maps a leaf's raw byte representation to a digest.
//
// Hash must be deterministic and collision resistant,
// and safe to call concurrently.
type Hasher[H comparable] interface {
	Hash(data []byte) H
}

// Scheme is the full pair of capabilities needed to build a tree
// from raw leaf data rather than precomputed digests.
type Scheme[H comparable] interface {
	Hasher[H]
	Merger[H]
}
