package codec

import (
	"math"

	"github.com/spoolkit/spool/errors"
)

// Codec describes how values of one logical type travel as bytes.
//
// Implementations are immutable after construction and safe to share
// across goroutines. Size is analytic: it never encodes just to count,
// and its result is meaningful only for values Encode accepts.
type Codec[T any] interface {
	// Size returns the exact number of bytes Encode will write for v.
	Size(v T) int

	// Encode appends the byte representation of v to w, exactly Size(v)
	// bytes on success. Value validation happens before any bytes for v
	// are written, so a failed Encode never leaves a truncated field
	// behind (bytes written for earlier sibling fields stay; callers
	// needing atomicity use Marshal).
	Encode(w *Writer, v T) error

	// Decode reads a value starting at the reader's offset and advances
	// it by exactly the bytes Encode would have produced for the result.
	Decode(r *Reader) (T, error)
}

// Unsigned constrains the carrier types usable for length prefixes and
// union discriminants.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Marshal encodes v into a buffer allocated to exactly Size(v) bytes.
// The buffer is returned only on full success, so a mid-encode failure
// never publishes partial output.
func Marshal[T any](c Codec[T], v T) ([]byte, error) {
	w := &Writer{buf: make([]byte, 0, c.Size(v))}
	if err := c.Encode(w, v); err != nil {
		return nil, err
	}
	return w.buf, nil
}

// Append encodes v onto dst and returns the extended slice. No allocation
// happens when dst has enough spare capacity.
func Append[T any](c Codec[T], dst []byte, v T) ([]byte, error) {
	w := &Writer{buf: dst}
	if err := c.Encode(w, v); err != nil {
		return dst, err
	}
	return w.buf, nil
}

// Unmarshal decodes exactly one value spanning all of data. Input left
// over after the value fails with invalid_encoding.
func Unmarshal[T any](c Codec[T], data []byte) (T, error) {
	r := NewReader(data)
	v, err := c.Decode(r)
	if err != nil {
		var zero T
		return zero, err
	}
	if n := r.Remaining(); n > 0 {
		var zero T
		return zero, errors.TrailingBytes(r.Position(), n)
	}
	return v, nil
}

// maxPrealloc caps the initial capacity a decode allocates from a wire
// count, so a forged length cannot reserve unbounded memory before the
// input shortfall surfaces. Growth past the cap goes through append.
const maxPrealloc = 4096

func preallocCap(n int) int {
	if n > maxPrealloc {
		return maxPrealloc
	}
	return n
}

// encodeCount writes an element count through the length codec, failing
// with overflow when the count does not fit L.
func encodeCount[L Unsigned](w *Writer, length Codec[L], n int) error {
	if uint64(n) > uint64(^L(0)) {
		return errors.LengthOverflow(nil, uint64(n), uint64(^L(0)))
	}
	return length.Encode(w, L(n))
}

// decodeCount reads an element count through the length codec.
func decodeCount[L Unsigned](r *Reader, length Codec[L]) (int, error) {
	v, err := length.Decode(r)
	if err != nil {
		return 0, err
	}
	if uint64(v) > math.MaxInt {
		return 0, errors.New(errors.PhaseDecode, errors.KindOverflow).
			Offset(r.Position()).
			Detail("count %d overflows int", uint64(v)).
			Build()
	}
	return int(v), nil
}
