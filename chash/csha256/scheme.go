// Package csha256 provides a chash scheme backed by SHA-256
// from the standard library.
package csha256

import (
	"crypto/sha256"
)

// DigestSize is the size in bytes of a SHA-256 digest.
const DigestSize = sha256.Size

// Scheme hashes leaves with SHA-256 and merges nodes
// by hashing the 64-byte concatenation of the two child digests,
// left first.
type Scheme struct{}

func (Scheme) Hash(data []byte) [DigestSize]byte {
	return sha256.Sum256(data)
}

func (Scheme) Merge(left, right [DigestSize]byte) [DigestSize]byte {
	var m [2 * DigestSize]byte
	copy(m[:DigestSize], left[:])
	copy(m[DigestSize:], right[:])

	return sha256.Sum256(m[:])
}
