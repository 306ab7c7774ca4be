package codec

import (
	"bytes"

	"github.com/spoolkit/spool/errors"
)

// Bytes returns a length-prefixed codec for opaque byte spans. Decode
// returns a view into the input buffer; use BytesCopy when the span must
// outlive the input.
func Bytes[L Unsigned](length Codec[L]) Codec[[]byte] {
	return bytesCodec[L]{length}
}

type bytesCodec[L Unsigned] struct{ length Codec[L] }

func (c bytesCodec[L]) Size(v []byte) int {
	return c.length.Size(L(len(v))) + len(v)
}

func (c bytesCodec[L]) Encode(w *Writer, v []byte) error {
	if err := encodeCount(w, c.length, len(v)); err != nil {
		return err
	}
	w.WriteBytes(v)
	return nil
}

func (c bytesCodec[L]) Decode(r *Reader) ([]byte, error) {
	n, err := decodeCount(r, c.length)
	if err != nil {
		return nil, err
	}
	return r.ReadBytes(n)
}

// BytesCopy is Bytes with an owning decode: the span is copied out of the
// input buffer. Wire bytes are identical.
func BytesCopy[L Unsigned](length Codec[L]) Codec[[]byte] {
	return bytesCopyCodec[L]{bytesCodec[L]{length}}
}

type bytesCopyCodec[L Unsigned] struct{ bytesCodec[L] }

func (c bytesCopyCodec[L]) Decode(r *Reader) ([]byte, error) {
	b, err := c.bytesCodec.Decode(r)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(b), nil
}

// FixedBytes returns a codec for exactly n opaque bytes with no prefix.
// Encoding a span of any other length fails with invalid_encoding. Decode
// returns a view into the input buffer.
func FixedBytes(n int) Codec[[]byte] {
	if n < 0 {
		panic("codec: negative span size")
	}
	return fixedBytesCodec{n}
}

type fixedBytesCodec struct{ n int }

func (c fixedBytesCodec) Size([]byte) int { return c.n }

func (c fixedBytesCodec) Encode(w *Writer, v []byte) error {
	if len(v) != c.n {
		return errors.LengthMismatch(nil, len(v), c.n)
	}
	w.WriteBytes(v)
	return nil
}

func (c fixedBytesCodec) Decode(r *Reader) ([]byte, error) {
	return r.ReadBytes(c.n)
}

// Rest returns a codec that consumes every byte remaining in the buffer,
// with no prefix. It is unbounded and greedy, so it is only meaningful as
// the final field of an enclosing structure. Decode returns a view into
// the input buffer.
func Rest() Codec[[]byte] { return restCodec{} }

type restCodec struct{}

func (restCodec) Size(v []byte) int { return len(v) }

func (restCodec) Encode(w *Writer, v []byte) error {
	w.WriteBytes(v)
	return nil
}

func (restCodec) Decode(r *Reader) ([]byte, error) {
	return r.ReadRemaining(), nil
}

// RestCopy is Rest with an owning decode.
func RestCopy() Codec[[]byte] { return restCopyCodec{} }

type restCopyCodec struct{ restCodec }

func (restCopyCodec) Decode(r *Reader) ([]byte, error) {
	return bytes.Clone(r.ReadRemaining()), nil
}

var (
	_ Codec[[]byte] = fixedBytesCodec{}
	_ Codec[[]byte] = restCodec{}
	_ Codec[[]byte] = restCopyCodec{}
)
