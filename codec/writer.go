package codec

import "encoding/binary"

// Writer is the encode sink: an append-backed byte buffer. Appends never
// fail; encode errors come only from value validation in the codecs.
// Create one Writer per encode call, or use Marshal/Append which manage
// one internally.
type Writer struct {
	buf []byte
}

// NewWriter creates a Writer with the given initial capacity. Sizing it
// with Codec.Size lets a full encode run without reallocation.
func NewWriter(capacity int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity)}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Grow ensures capacity for at least n more bytes.
func (w *Writer) Grow(n int) {
	if cap(w.buf)-len(w.buf) >= n {
		return
	}
	grown := make([]byte, len(w.buf), len(w.buf)+n)
	copy(grown, w.buf)
	w.buf = grown
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) {
	w.buf = append(w.buf, b)
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(data []byte) {
	w.buf = append(w.buf, data...)
}

// WriteString writes the raw bytes of s.
func (w *Writer) WriteString(s string) {
	w.buf = append(w.buf, s...)
}

// WriteU16 writes a fixed-width uint16 in the given byte order.
func (w *Writer) WriteU16(order binary.ByteOrder, v uint16) {
	var b [2]byte
	order.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteU32 writes a fixed-width uint32 in the given byte order.
func (w *Writer) WriteU32(order binary.ByteOrder, v uint32) {
	var b [4]byte
	order.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteU64 writes a fixed-width uint64 in the given byte order.
func (w *Writer) WriteU64(order binary.ByteOrder, v uint64) {
	var b [8]byte
	order.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}
