package codec

import (
	"encoding/binary"

	"github.com/spoolkit/spool/errors"
)

// Reader is the decode cursor: a single byte offset advancing through an
// immutable input buffer. The offset only moves forward; a read that
// cannot be satisfied fails without advancing. Create one Reader per
// decode call; it must not be shared across concurrent decodes.
//
// Slices returned by ReadBytes and ReadRemaining are views into the input
// buffer, valid only while the buffer lives and stays unmodified.
type Reader struct {
	buf []byte
	off int
}

// NewReader creates a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Position returns the current byte offset.
func (r *Reader) Position() int {
	return r.off
}

// Len returns the total length of the input buffer.
func (r *Reader) Len() int {
	return len(r.buf)
}

// Remaining returns the number of unconsumed bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

// ReadByte consumes a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.off >= len(r.buf) {
		return 0, errors.ShortInput(nil, r.off, 1, 0)
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

// ReadBytes consumes exactly n bytes, returned as a view into the input
// buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	rem := len(r.buf) - r.off
	if n > rem {
		return nil, errors.ShortInput(nil, r.off, n, rem)
	}
	b := r.buf[r.off : r.off+n : r.off+n]
	r.off += n
	return b, nil
}

// Skip advances the offset by n bytes.
func (r *Reader) Skip(n int) error {
	rem := len(r.buf) - r.off
	if n > rem {
		return errors.ShortInput(nil, r.off, n, rem)
	}
	r.off += n
	return nil
}

// ReadRemaining consumes all bytes from the current offset to the end of
// the buffer, returned as a view.
func (r *Reader) ReadRemaining() []byte {
	b := r.buf[r.off:len(r.buf):len(r.buf)]
	r.off = len(r.buf)
	return b
}

// ReadU16 consumes a fixed-width uint16 in the given byte order.
func (r *Reader) ReadU16(order binary.ByteOrder) (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return order.Uint16(b), nil
}

// ReadU32 consumes a fixed-width uint32 in the given byte order.
func (r *Reader) ReadU32(order binary.ByteOrder) (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(b), nil
}

// ReadU64 consumes a fixed-width uint64 in the given byte order.
func (r *Reader) ReadU64(order binary.ByteOrder) (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return order.Uint64(b), nil
}
