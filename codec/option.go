package codec

import (
	"fmt"
	"sync"

	"github.com/spoolkit/spool/errors"
)

// Option returns a codec for optional values: a presence flag through the
// flag codec, then the payload only when present. A nil pointer is the
// absent state. Decoding a false flag returns nil without invoking the
// payload codec at all.
func Option[T any](flag Codec[bool], payload Codec[T]) Codec[*T] {
	return optionCodec[T]{flag: flag, payload: payload}
}

type optionCodec[T any] struct {
	flag    Codec[bool]
	payload Codec[T]
}

func (c optionCodec[T]) Size(v *T) int {
	if v == nil {
		return c.flag.Size(false)
	}
	return c.flag.Size(true) + c.payload.Size(*v)
}

func (c optionCodec[T]) Encode(w *Writer, v *T) error {
	if v == nil {
		return c.flag.Encode(w, false)
	}
	if err := c.flag.Encode(w, true); err != nil {
		return err
	}
	return c.payload.Encode(w, *v)
}

func (c optionCodec[T]) Decode(r *Reader) (*T, error) {
	present, err := c.flag.Decode(r)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	v, err := c.payload.Decode(r)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Boxed adapts a codec for T into a codec for *T. The wire representation
// is byte-identical to the inner codec; the indirection exists purely so
// recursive type definitions have a finite descriptor graph. Encoding nil
// fails with invalid_encoding; box an Option when absence is legal.
func Boxed[T any](inner Codec[T]) Codec[*T] {
	return boxedCodec[T]{inner}
}

type boxedCodec[T any] struct{ inner Codec[T] }

func (c boxedCodec[T]) Size(v *T) int {
	if v == nil {
		return 0
	}
	return c.inner.Size(*v)
}

func (c boxedCodec[T]) Encode(w *Writer, v *T) error {
	if v == nil {
		return errors.NilValue(nil, fmt.Sprintf("%T", v))
	}
	return c.inner.Encode(w, *v)
}

func (c boxedCodec[T]) Decode(r *Reader) (*T, error) {
	v, err := c.inner.Decode(r)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Lazy defers resolution of a codec until first use, breaking the cycle
// when a descriptor graph refers to itself:
//
//	var node codec.Codec[Tree]
//	node = codec.Struct[Tree](
//		codec.Field("value", codec.S64(binary.LittleEndian), ...),
//		codec.Field("left", codec.Option(codec.Bool(), codec.Lazy(func() codec.Codec[Tree] { return node })), ...),
//	)
//
// Resolution happens once; concurrent first uses are safe.
func Lazy[T any](resolve func() Codec[T]) Codec[T] {
	return &lazyCodec[T]{resolve: resolve}
}

type lazyCodec[T any] struct {
	once    sync.Once
	resolve func() Codec[T]
	inner   Codec[T]
}

func (c *lazyCodec[T]) get() Codec[T] {
	c.once.Do(func() {
		c.inner = c.resolve()
		c.resolve = nil
	})
	return c.inner
}

func (c *lazyCodec[T]) Size(v T) int { return c.get().Size(v) }

func (c *lazyCodec[T]) Encode(w *Writer, v T) error { return c.get().Encode(w, v) }

func (c *lazyCodec[T]) Decode(r *Reader) (T, error) { return c.get().Decode(r) }

// Unit returns a zero-byte codec for struct{}: it writes and reads
// nothing. Useful as the payload of union variants that carry no data.
func Unit() Codec[struct{}] { return unitCodec{} }

type unitCodec struct{}

func (unitCodec) Size(struct{}) int { return 0 }

func (unitCodec) Encode(*Writer, struct{}) error { return nil }

func (unitCodec) Decode(*Reader) (struct{}, error) { return struct{}{}, nil }
