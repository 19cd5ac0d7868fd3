package canopy

import (
	"github.com/arbor-engine/canopy/chash"
)

// Verify replays the merges implied by the proof transcript
// and reports whether they reproduce the claimed root.
// It is a pure function: it never touches the originating tree,
// and it never panics on malformed or truncated input.
//
// The proof's Leaves must be sorted by index in descending order;
// call [*Proof.Sort] first if the proof was generated from indices
// that were not already descending.
// Verify does not detect unsorted input:
// a non-canonical ordering simply pairs queue entries incorrectly
// and yields a wrong result.
//
// A proof with no claimed leaves is definitionally unverifiable
// and reports false.
func Verify[H comparable](p Proof[H], m chash.Merger[H]) bool {
	if len(p.Leaves) == 0 {
		return false
	}

	// The queue starts as the claimed leaves and grows with every
	// derived parent. Both cursors only ever move forward:
	// sibCursor through the proof's sibling list,
	// queueCursor through the queue itself.
	queue := make([]IndexedLeaf[H], len(p.Leaves), 2*len(p.Leaves))
	copy(queue, p.Leaves)

	sibCursor := 0
	queueCursor := 0

	for queueCursor < len(queue) {
		cur := queue[queueCursor]
		queueCursor++

		i := cur.Index

		if i == 1 {
			// First arrival at the root position is authoritative.
			return cur.Digest == p.Root
		}

		if i%2 == 0 {
			// Left child: the right sibling can only come
			// from the proof list.
			if sibCursor == len(p.Siblings) {
				return false
			}

			queue = append(queue, IndexedLeaf[H]{
				Index:  i / 2,
				Digest: m.Merge(cur.Digest, p.Siblings[sibCursor]),
			})
			sibCursor++
			continue
		}

		// Right child: with descending-sorted input,
		// a claimed or derived left sibling is always
		// the very next queue entry.
		if queueCursor != len(queue) && queue[queueCursor].Index == i-1 {
			queue = append(queue, IndexedLeaf[H]{
				Index:  i / 2,
				Digest: m.Merge(queue[queueCursor].Digest, cur.Digest),
			})
			queueCursor++
			continue
		}

		if sibCursor == len(p.Siblings) {
			return false
		}

		queue = append(queue, IndexedLeaf[H]{
			Index:  i / 2,
			Digest: m.Merge(p.Siblings[sibCursor], cur.Digest),
		})
		sibCursor++
	}

	// Queue exhausted without reaching the root position.
	return false
}
