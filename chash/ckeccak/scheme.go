// Package ckeccak provides a chash scheme backed by Keccak-256,
// the pre-standardization SHA-3 variant used on Ethereum-style chains.
package ckeccak

import (
	"golang.org/x/crypto/sha3"
)

// DigestSize is the size in bytes of a Keccak-256 digest.
const DigestSize = 32

// Scheme hashes leaves with Keccak-256 and merges nodes
// by hashing the 64-byte concatenation of the two child digests,
// left first.
type Scheme struct{}

func (Scheme) Hash(data []byte) [DigestSize]byte {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(data)

	var out [DigestSize]byte
	h.Sum(out[:0])
	return out
}

func (Scheme) Merge(left, right [DigestSize]byte) [DigestSize]byte {
	var m [2 * DigestSize]byte
	copy(m[:DigestSize], left[:])
	copy(m[DigestSize:], right[:])

	return Scheme{}.Hash(m[:])
}
