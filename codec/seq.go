package codec

import (
	"fmt"

	"github.com/spoolkit/spool/errors"
)

// List returns a length-prefixed codec for slices: the element count
// through the length codec, then each element in order. Encoding a slice
// whose length does not fit the length codec fails with overflow before
// any bytes are written. A nil slice encodes as count zero.
func List[L Unsigned, T any](length Codec[L], elem Codec[T]) Codec[[]T] {
	return listCodec[L, T]{length: length, elem: elem}
}

type listCodec[L Unsigned, T any] struct {
	length Codec[L]
	elem   Codec[T]
}

func (c listCodec[L, T]) Size(v []T) int {
	n := c.length.Size(L(len(v)))
	for _, e := range v {
		n += c.elem.Size(e)
	}
	return n
}

func (c listCodec[L, T]) Encode(w *Writer, v []T) error {
	if err := encodeCount(w, c.length, len(v)); err != nil {
		return err
	}
	for i, e := range v {
		if err := c.elem.Encode(w, e); err != nil {
			return errors.Prefix(err, fmt.Sprintf("[%d]", i))
		}
	}
	return nil
}

func (c listCodec[L, T]) Decode(r *Reader) ([]T, error) {
	n, err := decodeCount(r, c.length)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, preallocCap(n))
	for i := 0; i < n; i++ {
		e, err := c.elem.Decode(r)
		if err != nil {
			return nil, errors.Prefix(err, fmt.Sprintf("[%d]", i))
		}
		out = append(out, e)
	}
	return out, nil
}

// Array returns a codec for exactly n elements with no length prefix.
// Encoding a slice of any other length fails with invalid_encoding before
// any bytes are written; decoding fewer than n available elements fails
// with insufficient_input.
func Array[T any](n int, elem Codec[T]) Codec[[]T] {
	if n < 0 {
		panic("codec: negative array arity")
	}
	return arrayCodec[T]{n: n, elem: elem}
}

type arrayCodec[T any] struct {
	n    int
	elem Codec[T]
}

func (c arrayCodec[T]) Size(v []T) int {
	n := 0
	for _, e := range v {
		n += c.elem.Size(e)
	}
	return n
}

func (c arrayCodec[T]) Encode(w *Writer, v []T) error {
	if len(v) != c.n {
		return errors.LengthMismatch(nil, len(v), c.n)
	}
	for i, e := range v {
		if err := c.elem.Encode(w, e); err != nil {
			return errors.Prefix(err, fmt.Sprintf("[%d]", i))
		}
	}
	return nil
}

func (c arrayCodec[T]) Decode(r *Reader) ([]T, error) {
	out := make([]T, 0, preallocCap(c.n))
	for i := 0; i < c.n; i++ {
		e, err := c.elem.Decode(r)
		if err != nil {
			return nil, errors.Prefix(err, fmt.Sprintf("[%d]", i))
		}
		out = append(out, e)
	}
	return out, nil
}
