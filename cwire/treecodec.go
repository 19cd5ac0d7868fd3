package cwire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/bits"

	"github.com/arbor-engine/canopy"
)

// ErrMalformedTree indicates an encoded tree whose node count
// does not match the shape implied by its leaf count.
var ErrMalformedTree = errors.New("encoded tree has wrong node count for its leaf count")

// ErrTreeTooLarge indicates an encoded tree whose leaf count
// exceeds what the decoder is willing to allocate.
var ErrTreeTooLarge = errors.New("encoded tree exceeds leaf limit")

// TreeEncoder writes the persistent form of a [canopy.Tree]:
// the big-endian uint32 counts of non-empty leaves and nodes,
// followed by the flat node slice.
//
// The encoder reuses an internal buffer across calls
// and must not be used concurrently.
type TreeEncoder[H comparable] struct {
	dc DigestCodec[H]

	buf []byte
}

// NewTreeEncoder returns a TreeEncoder
// using dc for digest conversion.
func NewTreeEncoder[H comparable](dc DigestCodec[H]) *TreeEncoder[H] {
	return &TreeEncoder[H]{dc: dc}
}

// Encode writes the encoding of t to w.
func (e *TreeEncoder[H]) Encode(w io.Writer, t *canopy.Tree[H]) error {
	nodes := t.Nodes()
	n := 8 + len(nodes)*e.dc.Size()

	if cap(e.buf) < n {
		e.buf = make([]byte, 0, n)
	} else {
		e.buf = e.buf[:0]
	}

	buf := binary.BigEndian.AppendUint32(e.buf, t.NonEmptyLeafCount())
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(nodes)))
	for _, d := range nodes {
		buf = e.dc.AppendDigest(buf, d)
	}
	e.buf = buf

	if _, err := w.Write(e.buf); err != nil {
		return fmt.Errorf("failed to write tree: %w", err)
	}

	return nil
}

// TreeDecoder reads trees written by [TreeEncoder].
//
// Like the encoder, it reuses an internal buffer
// and must not be used concurrently.
type TreeDecoder[H comparable] struct {
	dc DigestCodec[H]

	buf []byte
}

// NewTreeDecoder returns a TreeDecoder
// using dc for digest conversion.
func NewTreeDecoder[H comparable](dc DigestCodec[H]) *TreeDecoder[H] {
	return &TreeDecoder[H]{dc: dc}
}

// Decode reads one encoded tree from r,
// returning the node slice and non-empty leaf count
// to pass to [canopy.Restore].
//
// The node count is validated against the leaf count
// before any node data is read,
// so corrupt input produces [ErrMalformedTree]
// rather than a shape panic out of Restore.
func (d *TreeDecoder[H]) Decode(r io.Reader) ([]H, uint32, error) {
	if cap(d.buf) < 8 {
		d.buf = make([]byte, 8)
	} else {
		d.buf = d.buf[:8]
	}
	if _, err := io.ReadFull(r, d.buf); err != nil {
		return nil, 0, fmt.Errorf("failed to read tree header: %w", err)
	}

	nonEmpty := binary.BigEndian.Uint32(d.buf)
	nNodes := binary.BigEndian.Uint32(d.buf[4:])

	if nonEmpty > maxProofEntries {
		return nil, 0, ErrTreeTooLarge
	}

	var want uint32
	if nonEmpty > 0 {
		want = 2 << bits.Len32(nonEmpty-1)
	}
	if nNodes != want {
		return nil, 0, ErrMalformedTree
	}

	if nNodes == 0 {
		return nil, 0, nil
	}

	sz := d.dc.Size()
	d.buf = d.buf[:0]
	if cap(d.buf) < int(nNodes)*sz {
		d.buf = make([]byte, int(nNodes)*sz)
	} else {
		d.buf = d.buf[:int(nNodes)*sz]
	}
	if _, err := io.ReadFull(r, d.buf); err != nil {
		return nil, 0, fmt.Errorf("failed to read tree nodes: %w", err)
	}

	nodes := make([]H, nNodes)
	for i := range nodes {
		dig, err := d.dc.ParseDigest(d.buf[i*sz:])
		if err != nil {
			return nil, 0, err
		}
		nodes[i] = dig
	}

	return nodes, nonEmpty, nil
}
