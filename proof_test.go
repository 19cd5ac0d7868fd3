package canopy_test

import (
	"math/bits"
	"testing"

	"github.com/arbor-engine/canopy"
	"github.com/arbor-engine/canopy/chash/chashtest"
	"github.com/arbor-engine/canopy/internal/ctest"
	"github.com/stretchr/testify/require"
)

func TestProve_4_leaves(t *testing.T) {
	t.Parallel()

	/* Tree structure:

	         10
	     3       7
	   1   2   3   4
	  idx: 0 1 2 3

	*/

	tree := sumTree(4)

	for _, tc := range []struct {
		indices  []uint32
		siblings []uint32
	}{
		{indices: []uint32{0}, siblings: []uint32{2, 7}},
		{indices: []uint32{0, 1}, siblings: []uint32{7}},
		{indices: []uint32{0, 2}, siblings: []uint32{4, 2}},
		{indices: []uint32{0, 3}, siblings: []uint32{3, 2}},
		{indices: []uint32{1, 2}, siblings: []uint32{4, 1}},
		{indices: []uint32{1, 3}, siblings: []uint32{3, 1}},
		{indices: []uint32{2, 3}, siblings: []uint32{3}},
		{indices: []uint32{0, 1, 2}, siblings: []uint32{4}},
		{indices: []uint32{0, 1, 3}, siblings: []uint32{3}},
		{indices: []uint32{0, 2, 3}, siblings: []uint32{2}},
		{indices: []uint32{1, 2, 3}, siblings: []uint32{1}},
	} {
		proof, err := tree.Prove(tc.indices)
		require.NoError(t, err)
		require.Equal(t, tc.siblings, proof.Siblings,
			"siblings for indices %v", tc.indices)
	}
}

func TestProve_5_leaves(t *testing.T) {
	t.Parallel()

	tree := sumTree(5)

	for _, tc := range []struct {
		indices  []uint32
		siblings []uint32
	}{
		{indices: []uint32{0}, siblings: []uint32{2, 7, 5}},
		{indices: []uint32{0, 1}, siblings: []uint32{7, 5}},
		{indices: []uint32{0, 2}, siblings: []uint32{4, 2, 5}},
		{indices: []uint32{0, 3}, siblings: []uint32{3, 2, 5}},
		{indices: []uint32{0, 4}, siblings: []uint32{0, 2, 0, 7}},
		{indices: []uint32{1, 2}, siblings: []uint32{4, 1, 5}},
		{indices: []uint32{1, 3}, siblings: []uint32{3, 1, 5}},
		{indices: []uint32{1, 4}, siblings: []uint32{0, 1, 0, 7}},
		{indices: []uint32{2, 3}, siblings: []uint32{3, 5}},
		{indices: []uint32{2, 4}, siblings: []uint32{0, 4, 0, 3}},
		{indices: []uint32{3, 4}, siblings: []uint32{0, 3, 0, 3}},
		{indices: []uint32{0, 1, 2}, siblings: []uint32{4, 5}},
		{indices: []uint32{0, 1, 3}, siblings: []uint32{3, 5}},
		{indices: []uint32{0, 1, 4}, siblings: []uint32{0, 0, 7}},
		{indices: []uint32{0, 2, 3}, siblings: []uint32{2, 5}},
		{indices: []uint32{0, 2, 4}, siblings: []uint32{0, 4, 2, 0}},
		{indices: []uint32{0, 3, 4}, siblings: []uint32{0, 3, 2, 0}},
		{indices: []uint32{1, 2, 3}, siblings: []uint32{1, 5}},
		{indices: []uint32{1, 2, 4}, siblings: []uint32{0, 4, 1, 0}},
		{indices: []uint32{2, 3, 4}, siblings: []uint32{0, 0, 3}},
		{indices: []uint32{0, 1, 2, 3}, siblings: []uint32{5}},
		{indices: []uint32{0, 1, 2, 4}, siblings: []uint32{0, 4, 0}},
		{indices: []uint32{0, 2, 3, 4}, siblings: []uint32{0, 2, 0}},
		{indices: []uint32{0, 1, 2, 3, 4}, siblings: []uint32{0, 0}},
	} {
		proof, err := tree.Prove(tc.indices)
		require.NoError(t, err)
		require.Equal(t, tc.siblings, proof.Siblings,
			"siblings for indices %v", tc.indices)
	}
}

func TestProve_claimed_leaves(t *testing.T) {
	t.Parallel()

	tree := sumTree(5)

	proof, err := tree.Prove([]uint32{4, 0})
	require.NoError(t, err)

	require.Equal(t, uint32(15), proof.Root)

	// Global index is the padded half-width plus the local index,
	// and the pairs stay in the caller's request order.
	require.Equal(t, []canopy.IndexedLeaf[uint32]{
		{Index: 12, Digest: 5},
		{Index: 8, Digest: 1},
	}, proof.Leaves)
}

func TestProve_out_of_range(t *testing.T) {
	t.Parallel()

	leaves := []uint32{1, 2, 3, 4, 5}
	tree := canopy.New(leaves, canopy.TreeConfig[uint32]{
		Merger: chashtest.SumMerger{},
		Log:    ctest.NewLogger(t),
	})

	proof, err := tree.Prove([]uint32{0, 5})
	require.ErrorIs(t, err, canopy.ErrLeafIndexOutOfRange)

	// The zero Proof is the "not provable" sentinel:
	// no leaves, no siblings, zero root, and it never verifies.
	require.Empty(t, proof.Leaves)
	require.Empty(t, proof.Siblings)
	require.Zero(t, proof.Root)
	require.False(t, canopy.Verify(proof, chashtest.SumMerger{}))
}

func TestProve_empty_indices(t *testing.T) {
	t.Parallel()

	tree := sumTree(5)

	proof, err := tree.Prove(nil)
	require.NoError(t, err)
	require.Empty(t, proof.Leaves)
	require.False(t, canopy.Verify(proof, chashtest.SumMerger{}))
}

func TestProve_minimality(t *testing.T) {
	t.Parallel()

	// With half=16,
	// no k-leaf proof may carry more than log2(half)*k siblings.
	tree := sumTree(16)
	height := bits.Len32(16) - 1

	for _, indices := range [][]uint32{
		{0},
		{15},
		{0, 15},
		{0, 1, 2, 3},
		{0, 5, 10, 15},
		{3, 7, 11},
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	} {
		proof, err := tree.Prove(indices)
		require.NoError(t, err)

		require.LessOrEqual(t, len(proof.Siblings), height*len(indices),
			"proof size bound for indices %v", indices)
		require.True(t, canopy.Verify(*proof.Sort(), chashtest.SumMerger{}))
	}
}
