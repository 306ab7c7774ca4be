package codec

import (
	"encoding/binary"
	"math/bits"

	"github.com/spoolkit/spool/errors"
)

// Uvarint16 returns a variable-length codec for uint16. See Uvarint64 for
// the wire scheme.
func Uvarint16(order binary.ByteOrder) Codec[uint16] {
	return uvarint16Codec{newUvarint(order, 16)}
}

// Uvarint32 returns a variable-length codec for uint32. See Uvarint64 for
// the wire scheme.
func Uvarint32(order binary.ByteOrder) Codec[uint32] {
	return uvarint32Codec{newUvarint(order, 32)}
}

// Uvarint64 returns a variable-length codec for uint64: the value split
// into 7-bit groups, the high bit of each byte flagging continuation.
// binary.LittleEndian emits the least significant group first,
// binary.BigEndian the most significant first. Zero encodes as the single
// byte 0x00, and encoding always uses the minimum number of groups.
//
// Decoding accepts redundant zero groups as long as the value fits the
// target width; a value that does not fit fails with overflow. Uvarint64
// panics on any other ByteOrder, since group order cannot be derived from
// an arbitrary implementation.
func Uvarint64(order binary.ByteOrder) Codec[uint64] {
	return uvarint64Codec{newUvarint(order, 64)}
}

type uvarintCodec struct {
	bits int  // target integer width
	be   bool // most-significant group first
}

func newUvarint(order binary.ByteOrder, width int) uvarintCodec {
	switch order {
	case binary.LittleEndian:
		return uvarintCodec{bits: width}
	case binary.BigEndian:
		return uvarintCodec{bits: width, be: true}
	}
	panic("codec: varint group order must be binary.BigEndian or binary.LittleEndian")
}

// sizeOf counts the 7-bit groups needed for v without encoding.
func (c uvarintCodec) sizeOf(v uint64) int {
	return (bits.Len64(v|1) + 6) / 7
}

func (c uvarintCodec) encode(w *Writer, v uint64) {
	if c.be {
		for i := c.sizeOf(v) - 1; i >= 0; i-- {
			b := byte(v>>(uint(i)*7)) & 0x7f
			if i > 0 {
				b |= 0x80
			}
			w.Byte(b)
		}
		return
	}
	for {
		b := byte(v) & 0x7f
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.Byte(b)
		if v == 0 {
			return
		}
	}
}

func (c uvarintCodec) decode(r *Reader) (uint64, error) {
	start := r.off
	var result uint64
	shift := 0
	for {
		b, err := r.ReadByte()
		if err != nil {
			r.off = start
			return 0, errors.New(errors.PhaseDecode, errors.KindInsufficientInput).
				Offset(start).
				Detail("varint truncated").
				Build()
		}
		group := uint64(b & 0x7f)
		if c.be {
			if result>>(uint(c.bits)-7) != 0 {
				r.off = start
				return 0, errors.VarintOverflow(nil, start, c.bits)
			}
			result = result<<7 | group
		} else {
			if rem := c.bits - shift; rem >= 7 {
				result |= group << uint(shift)
			} else if rem > 0 && group>>uint(rem) == 0 {
				result |= group << uint(shift)
			} else if group != 0 {
				r.off = start
				return 0, errors.VarintOverflow(nil, start, c.bits)
			}
			shift += 7
		}
		if b&0x80 == 0 {
			return result, nil
		}
	}
}

type uvarint16Codec struct{ uvarintCodec }

func (c uvarint16Codec) Size(v uint16) int { return c.sizeOf(uint64(v)) }

func (c uvarint16Codec) Encode(w *Writer, v uint16) error {
	c.encode(w, uint64(v))
	return nil
}

func (c uvarint16Codec) Decode(r *Reader) (uint16, error) {
	v, err := c.decode(r)
	return uint16(v), err
}

type uvarint32Codec struct{ uvarintCodec }

func (c uvarint32Codec) Size(v uint32) int { return c.sizeOf(uint64(v)) }

func (c uvarint32Codec) Encode(w *Writer, v uint32) error {
	c.encode(w, uint64(v))
	return nil
}

func (c uvarint32Codec) Decode(r *Reader) (uint32, error) {
	v, err := c.decode(r)
	return uint32(v), err
}

type uvarint64Codec struct{ uvarintCodec }

func (c uvarint64Codec) Size(v uint64) int { return c.sizeOf(v) }

func (c uvarint64Codec) Encode(w *Writer, v uint64) error {
	c.encode(w, v)
	return nil
}

func (c uvarint64Codec) Decode(r *Reader) (uint64, error) {
	return c.decode(r)
}

var (
	_ Codec[uint16] = uvarint16Codec{}
	_ Codec[uint32] = uvarint32Codec{}
	_ Codec[uint64] = uvarint64Codec{}
)
