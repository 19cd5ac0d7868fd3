package cwire

import (
	"fmt"
)

// DigestCodec converts digests to and from their fixed-size byte form.
//
// Implementations must be stateless,
// and every digest must encode to exactly Size bytes.
type DigestCodec[H comparable] interface {
	// Size is the encoded length of one digest, in bytes.
	Size() int

	// AppendDigest appends the encoding of d to dst
	// and returns the extended slice.
	AppendDigest(dst []byte, d H) []byte

	// ParseDigest decodes one digest from the first Size bytes of src.
	ParseDigest(src []byte) (H, error)
}

// Digest32 is a [DigestCodec] for any digest type
// whose underlying type is a 32-byte array,
// such as the digests of the ckeccak and csha256 schemes.
type Digest32[H ~[32]byte] struct{}

func (Digest32[H]) Size() int {
	return 32
}

func (Digest32[H]) AppendDigest(dst []byte, d H) []byte {
	return append(dst, d[:]...)
}

func (Digest32[H]) ParseDigest(src []byte) (H, error) {
	var d H
	if len(src) < len(d) {
		return d, fmt.Errorf(
			"parsing 32-byte digest: need %d bytes, have %d", len(d), len(src),
		)
	}

	copy(d[:], src)
	return d, nil
}
