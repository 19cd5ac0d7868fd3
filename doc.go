// Package canopy implements a fixed-shape, array-backed Merkle tree
// with compact multi-leaf inclusion proofs.
//
// The tree is built once from an ordered list of leaf digests,
// padded to a power-of-two width with the zero digest,
// and is immutable afterwards.
// Nodes are stored in a flat slice using 1-based complete-binary-tree
// indexing: the root is at index 1, and the children of node i
// are at 2i and 2i+1.
//
// [*Tree.Prove] produces the minimal ordered set of sibling digests
// needed to recompute the root for a chosen subset of leaves,
// and [Verify] replays the implied merges against a claimed root
// without any access to the original tree.
//
// Hashing and merging are supplied by the caller through the
// interfaces in the [github.com/arbor-engine/canopy/chash] package.
// The merge function is never assumed to be commutative:
// every merge during verification is invoked with its operands
// in the same left/right order used at construction time.
package canopy
