package canopy

import (
	"fmt"
	"log/slog"
	"math/bits"

	"github.com/arbor-engine/canopy/chash"
)

// Tree is a complete binary Merkle tree stored as a flat slice.
//
// The slice holds 2*half digests, where half is the leaf count
// rounded up to the next power of two.
// Index 0 is unused filler so that the children of node i
// are at 2i and 2i+1 and the root is at index 1.
// Leaf digests occupy the upper half of the slice,
// right-padded with zero digests past the real leaves.
//
// A Tree is immutable once built and is safe for
// concurrent use by multiple goroutines.
type Tree[H comparable] struct {
	nodes []H

	nonEmptyLeaves uint32

	log *slog.Logger
}

// TreeConfig is the configuration for [New] and [Restore].
type TreeConfig[H comparable] struct {
	// Merger combines two child digests into their parent.
	// It is only invoked during construction;
	// the Tree does not retain a reference to it.
	Merger chash.Merger[H]

	// Optional logger for diagnostics,
	// such as proof requests with out-of-range indices.
	// A nil Log disables diagnostics.
	Log *slog.Logger
}

// New builds a tree over the given leaf digests.
//
// The leaves slice must contain the exact set of leaves;
// the tree shape is fixed by len(leaves) at this point
// and cannot be changed later.
// New does not retain a reference to the leaves slice.
//
// Building from zero leaves is allowed and yields a tree
// whose root is the zero digest.
func New[H comparable](leaves []H, cfg TreeConfig[H]) *Tree[H] {
	nonEmpty := uint32(len(leaves))
	half := nextPowerOfTwo(nonEmpty)
	if half == 0 {
		return &Tree[H]{log: cfg.Log}
	}

	// The lower half starts as zero digests,
	// and everything in [1, half) is overwritten by the merge pass.
	nodes := make([]H, 2*half)
	copy(nodes[half:], leaves)

	for i := half - 1; i >= 1; i-- {
		nodes[i] = cfg.Merger.Merge(nodes[2*i], nodes[2*i+1])
	}

	return &Tree[H]{
		nodes: nodes,

		nonEmptyLeaves: nonEmpty,

		log: cfg.Log,
	}
}

// DataTreeConfig is the configuration for [NewFromData].
type DataTreeConfig[H comparable] struct {
	// Scheme hashes raw leaf data and merges child digests.
	Scheme chash.Scheme[H]

	// Optional logger, as in [TreeConfig].
	Log *slog.Logger
}

// NewFromData hashes each raw leaf through the configured scheme
// and builds a tree over the resulting digests.
// Use [New] directly when the leaves are already digests.
func NewFromData[H comparable](data [][]byte, cfg DataTreeConfig[H]) *Tree[H] {
	leaves := make([]H, len(data))
	for i, d := range data {
		leaves[i] = cfg.Scheme.Hash(d)
	}

	return New(leaves, TreeConfig[H]{
		Merger: cfg.Scheme,
		Log:    cfg.Log,
	})
}

// Restore rehydrates a tree from a previously captured node slice
// and non-empty leaf count, without re-running any merges.
// The nodes slice is what [*Tree.Nodes] returned for the original tree.
//
// Restore panics if the slice length does not match the shape
// implied by nonEmpty, since that indicates corrupted
// or mismatched persisted data being treated as trusted.
func Restore[H comparable](nodes []H, nonEmpty uint32, cfg TreeConfig[H]) *Tree[H] {
	if want := 2 * nextPowerOfTwo(nonEmpty); uint32(len(nodes)) != want {
		panic(fmt.Errorf(
			"BUG: restoring tree with %d non-empty leaves requires %d nodes (got %d)",
			nonEmpty, want, len(nodes),
		))
	}

	return &Tree[H]{
		nodes: nodes,

		nonEmptyLeaves: nonEmpty,

		log: cfg.Log,
	}
}

// Root returns the tree's summary digest: the node at index 1,
// or the zero digest for a tree built from zero leaves.
func (t *Tree[H]) Root() H {
	if len(t.nodes) == 0 {
		var zero H
		return zero
	}
	return t.nodes[1]
}

// LeafCount returns the padded width of the node slice,
// which is twice the power-of-two leaf capacity.
// It is zero for a tree built from zero leaves.
func (t *Tree[H]) LeafCount() uint32 {
	return uint32(len(t.nodes))
}

// NonEmptyLeafCount returns the number of real (non-padding) leaves.
// All leaf indices passed to [*Tree.Prove] and [*Tree.Leaf]
// are relative to this count.
func (t *Tree[H]) NonEmptyLeafCount() uint32 {
	return t.nonEmptyLeaves
}

// Leaf returns the digest of the real leaf at the given index.
func (t *Tree[H]) Leaf(idx uint32) H {
	if idx >= t.nonEmptyLeaves {
		panic(fmt.Errorf(
			"BUG: attempted to get leaf at index %d; must be in range [0, %d)",
			idx, t.nonEmptyLeaves,
		))
	}

	half := uint32(len(t.nodes)) / 2
	return t.nodes[half+idx]
}

// Nodes returns the backing node slice.
// The caller must not modify the returned slice;
// it is exposed for persistence through
// [github.com/arbor-engine/canopy/cwire] and for [Restore].
func (t *Tree[H]) Nodes() []H {
	return t.nodes
}

// nextPowerOfTwo maps 0 to 0 and any other n
// to the smallest power of two >= n.
func nextPowerOfTwo(n uint32) uint32 {
	if n == 0 {
		return 0
	}
	return 1 << bits.Len32(n-1)
}
