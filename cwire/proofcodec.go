package cwire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/arbor-engine/canopy"
	"github.com/golang/snappy"
)

// maxProofEntries bounds the leaf and sibling counts
// a decoder will accept, so that a corrupt or hostile header
// cannot force an enormous allocation.
const maxProofEntries = 1 << 20

// ErrProofTooLarge indicates an encoded proof whose leaf or sibling
// count exceeds what the decoder is willing to allocate.
var ErrProofTooLarge = errors.New("encoded proof exceeds entry limit")

// ProofEncoder writes [canopy.Proof] values to a writer,
// either raw or snappy-compressed.
//
// The encoder reuses an internal buffer across calls,
// so a single encoder should be reused when encoding many proofs.
// It must not be used concurrently.
type ProofEncoder[H comparable] struct {
	dc DigestCodec[H]

	buf []byte

	// Separate buffer for the compressed form,
	// since snappy needs the full raw encoding as its input.
	snappyBuf []byte
}

// NewProofEncoder returns a ProofEncoder
// using dc for digest conversion.
func NewProofEncoder[H comparable](dc DigestCodec[H]) *ProofEncoder[H] {
	return &ProofEncoder[H]{dc: dc}
}

// Encode writes the raw encoding of p to w.
func (e *ProofEncoder[H]) Encode(w io.Writer, p canopy.Proof[H]) error {
	e.encode(p)

	if _, err := w.Write(e.buf); err != nil {
		return fmt.Errorf("failed to write raw proof: %w", err)
	}

	return nil
}

// EncodeSnappy writes the snappy-compressed encoding of p to w,
// prefixed with the big-endian uint32 length of the compressed block.
func (e *ProofEncoder[H]) EncodeSnappy(w io.Writer, p canopy.Proof[H]) error {
	e.encode(p)

	maxEnc := snappy.MaxEncodedLen(len(e.buf)) + 4
	if cap(e.snappyBuf) < maxEnc {
		e.snappyBuf = make([]byte, maxEnc)
	} else {
		e.snappyBuf = e.snappyBuf[:maxEnc]
	}

	// Compress first, then backfill the size header.
	res := snappy.Encode(e.snappyBuf[4:], e.buf)
	binary.BigEndian.PutUint32(e.snappyBuf, uint32(len(res)))
	e.snappyBuf = e.snappyBuf[:4+len(res)]

	if _, err := w.Write(e.snappyBuf); err != nil {
		return fmt.Errorf("failed to write snappy proof: %w", err)
	}

	return nil
}

func (e *ProofEncoder[H]) encode(p canopy.Proof[H]) {
	sz := e.dc.Size()
	n := sz + 4 + len(p.Leaves)*(4+sz) + 4 + len(p.Siblings)*sz

	if cap(e.buf) < n {
		e.buf = make([]byte, 0, n)
	} else {
		e.buf = e.buf[:0]
	}

	buf := e.dc.AppendDigest(e.buf, p.Root)

	buf = binary.BigEndian.AppendUint32(buf, uint32(len(p.Leaves)))
	for _, l := range p.Leaves {
		buf = binary.BigEndian.AppendUint32(buf, l.Index)
		buf = e.dc.AppendDigest(buf, l.Digest)
	}

	buf = binary.BigEndian.AppendUint32(buf, uint32(len(p.Siblings)))
	for _, s := range p.Siblings {
		buf = e.dc.AppendDigest(buf, s)
	}

	e.buf = buf
}

// ProofDecoder reads [canopy.Proof] values produced by [ProofEncoder].
//
// Like the encoder, it reuses internal buffers
// and must not be used concurrently.
type ProofDecoder[H comparable] struct {
	dc DigestCodec[H]

	buf []byte
}

// NewProofDecoder returns a ProofDecoder
// using dc for digest conversion.
func NewProofDecoder[H comparable](dc DigestCodec[H]) *ProofDecoder[H] {
	return &ProofDecoder[H]{dc: dc}
}

// Decode reads one raw-encoded proof from r.
func (d *ProofDecoder[H]) Decode(r io.Reader) (canopy.Proof[H], error) {
	var p canopy.Proof[H]
	sz := d.dc.Size()

	d.sizeBuf(sz + 4)
	if _, err := io.ReadFull(r, d.buf); err != nil {
		return p, fmt.Errorf("failed to read proof header: %w", err)
	}

	root, err := d.dc.ParseDigest(d.buf)
	if err != nil {
		return p, err
	}
	p.Root = root

	nLeaves := binary.BigEndian.Uint32(d.buf[sz:])
	if nLeaves > maxProofEntries {
		return p, ErrProofTooLarge
	}

	if nLeaves > 0 {
		d.sizeBuf(int(nLeaves) * (4 + sz))
		if _, err := io.ReadFull(r, d.buf); err != nil {
			return p, fmt.Errorf("failed to read proof leaves: %w", err)
		}

		p.Leaves = make([]canopy.IndexedLeaf[H], nLeaves)
		for i := range p.Leaves {
			rec := d.buf[i*(4+sz):]

			dig, err := d.dc.ParseDigest(rec[4:])
			if err != nil {
				return p, err
			}

			p.Leaves[i] = canopy.IndexedLeaf[H]{
				Index:  binary.BigEndian.Uint32(rec),
				Digest: dig,
			}
		}
	}

	d.sizeBuf(4)
	if _, err := io.ReadFull(r, d.buf); err != nil {
		return p, fmt.Errorf("failed to read proof sibling count: %w", err)
	}

	nSiblings := binary.BigEndian.Uint32(d.buf)
	if nSiblings > maxProofEntries {
		return p, ErrProofTooLarge
	}

	if nSiblings > 0 {
		d.sizeBuf(int(nSiblings) * sz)
		if _, err := io.ReadFull(r, d.buf); err != nil {
			return p, fmt.Errorf("failed to read proof siblings: %w", err)
		}

		p.Siblings = make([]H, nSiblings)
		for i := range p.Siblings {
			dig, err := d.dc.ParseDigest(d.buf[i*sz:])
			if err != nil {
				return p, err
			}
			p.Siblings[i] = dig
		}
	}

	return p, nil
}

// DecodeSnappy reads one snappy-compressed proof from r,
// as written by [*ProofEncoder.EncodeSnappy].
func (d *ProofDecoder[H]) DecodeSnappy(r io.Reader) (canopy.Proof[H], error) {
	var p canopy.Proof[H]

	d.sizeBuf(4)
	if _, err := io.ReadFull(r, d.buf); err != nil {
		return p, fmt.Errorf("failed to read snappy proof length: %w", err)
	}

	encLen := binary.BigEndian.Uint32(d.buf)
	if encLen > maxProofEntries*64 {
		return p, ErrProofTooLarge
	}

	enc := make([]byte, encLen)
	if _, err := io.ReadFull(r, enc); err != nil {
		return p, fmt.Errorf("failed to read snappy proof data: %w", err)
	}

	raw, err := snappy.Decode(nil, enc)
	if err != nil {
		return p, fmt.Errorf("failed to decompress proof: %w", err)
	}

	return d.Decode(bytes.NewReader(raw))
}

// sizeBuf right-sizes d.buf to n bytes, reallocating only on growth.
func (d *ProofDecoder[H]) sizeBuf(n int) {
	if cap(d.buf) < n {
		d.buf = make([]byte, n)
	} else {
		d.buf = d.buf[:n]
	}
}
