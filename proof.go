package canopy

import (
	"errors"
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// ErrLeafIndexOutOfRange is returned by [*Tree.Prove] when any
// requested leaf index is >= the tree's non-empty leaf count.
var ErrLeafIndexOutOfRange = errors.New("leaf index out of range")

// IndexedLeaf is one claimed leaf in a [Proof]:
// a digest together with its global node index,
// i.e. half the padded node count plus the local leaf index.
type IndexedLeaf[H comparable] struct {
	Index  uint32
	Digest H
}

// Proof is a self-contained transcript proving that a set of leaves
// belongs to a tree with the claimed root.
// It carries no reference back to the tree it was generated from,
// so it can be freely copied, serialized, and transmitted.
//
// The order of Siblings is significant:
// [Verify] consumes them in exactly the order produced here.
type Proof[H comparable] struct {
	// Root is the claimed root digest.
	Root H

	// Leaves are the claimed (global index, digest) pairs,
	// in the order the indices were requested.
	Leaves []IndexedLeaf[H]

	// Siblings are the digests a verifier cannot derive
	// from the claimed leaves alone,
	// emitted bottom-up in node-index order per level.
	Siblings []H
}

// Sort reorders Leaves into descending index order.
//
// [Verify] requires its input's Leaves to be sorted descending;
// a proof generated from indices that were not already
// in descending order must be sorted before verification.
func (p *Proof[H]) Sort() *Proof[H] {
	sort.Slice(p.Leaves, func(i, j int) bool {
		return p.Leaves[i].Index > p.Leaves[j].Index
	})

	return p
}

// Prove produces a minimal multiproof for the real leaves
// at the given local indices.
//
// If any index is >= [*Tree.NonEmptyLeafCount],
// Prove logs a warning and returns the zero Proof
// along with [ErrLeafIndexOutOfRange];
// it never panics for out-of-range requests.
// Verifying the zero Proof reports false.
//
// An empty indices slice yields a Proof with no leaves,
// which is likewise unverifiable.
func (t *Tree[H]) Prove(indices []uint32) (Proof[H], error) {
	for _, idx := range indices {
		if idx >= t.nonEmptyLeaves {
			if t.log != nil {
				t.log.Warn(
					"Proof requested for out-of-range leaf index",
					"index", idx,
					"non_empty_leaves", t.nonEmptyLeaves,
				)
			}
			return Proof[H]{}, ErrLeafIndexOutOfRange
		}
	}

	leavesCount := uint32(len(t.nodes))
	half := leavesCount / 2

	// Mark the requested leaves,
	// then sweep bottom-up so that each node records
	// whether it is derivable from the claimed leaves.
	known := bitset.MustNew(uint(leavesCount))
	for _, idx := range indices {
		known.Set(uint(half + idx))
	}

	var siblings []H

	for i := int(half) - 1; i >= 1; i-- {
		j := uint32(2 * i)
		k := j + 1
		l := known.Test(uint(j))
		r := known.Test(uint(k))

		// A sibling is needed exactly when one child is derivable
		// and the other is not.
		if l && !r {
			siblings = append(siblings, t.nodes[k])
		}
		if !l && r {
			siblings = append(siblings, t.nodes[j])
		}

		known.SetTo(uint(i), l || r)
	}

	leaves := make([]IndexedLeaf[H], len(indices))
	for n, idx := range indices {
		gi := half + idx
		leaves[n] = IndexedLeaf[H]{Index: gi, Digest: t.nodes[gi]}
	}

	return Proof[H]{
		Root:     t.Root(),
		Leaves:   leaves,
		Siblings: siblings,
	}, nil
}
