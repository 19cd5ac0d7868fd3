// Package cwire serializes canopy trees and proofs.
//
// The wire form is a direct, order-preserving encoding of the
// in-memory structures: a tree is its non-empty leaf count followed by
// the flat node slice, and a proof is its root, its claimed
// (index, digest) pairs, and its sibling list.
// There is no framing or versioning; callers that need either
// are expected to wrap the encoded bytes themselves.
//
// Multi-word integers are big endian.
// Digest conversion is pluggable through [DigestCodec],
// so the codecs work for any digest type the tree can hold.
//
// Proofs may optionally be snappy-compressed,
// which pays off when proofs contain padding (all-zero) digests.
package cwire
