package codec

import (
	"fmt"

	"github.com/spoolkit/spool/errors"
)

// UnionCase binds one discriminant value to one variant of a sum type U.
// Build cases with Case.
type UnionCase[U any] struct {
	tag    uint64
	size   func(U) int
	encode func(*Writer, U) error
	decode func(*Reader) (U, error)
	match  func(U) bool
}

// Case binds discriminant tag to payload codec c for one variant of U.
// wrap lifts a decoded payload into the sum type; match recognizes values
// of this variant and extracts the payload for sizing and encoding:
//
//	codec.Case(1, circleCodec,
//		func(c Circle) Shape { return c },
//		func(s Shape) (Circle, bool) { c, ok := s.(Circle); return c, ok })
func Case[U any, V any](tag uint64, c Codec[V], wrap func(V) U, match func(U) (V, bool)) UnionCase[U] {
	return UnionCase[U]{
		tag: tag,
		size: func(u U) int {
			v, _ := match(u)
			return c.Size(v)
		},
		encode: func(w *Writer, u U) error {
			v, _ := match(u)
			return c.Encode(w, v)
		},
		decode: func(r *Reader) (U, error) {
			v, err := c.Decode(r)
			if err != nil {
				var zero U
				return zero, err
			}
			return wrap(v), nil
		},
		match: func(u U) bool {
			_, ok := match(u)
			return ok
		},
	}
}

// Union returns a codec for a tagged sum type: the discriminant through
// the tag codec, then the matched variant's payload. Discriminants need
// not be contiguous or ordered.
//
// Decoding an unregistered discriminant fails with unknown_discriminant
// carrying the raw value, before consuming any payload bytes. Encoding
// picks the first case in declared order whose match accepts the value;
// a value no case accepts fails with unknown_discriminant.
//
// Union panics when two cases share a discriminant or a discriminant does
// not fit the tag codec's width: descriptors are wired once at startup,
// and bad wiring is a programming error, not a runtime condition.
func Union[L Unsigned, U any](tag Codec[L], cases ...UnionCase[U]) Codec[U] {
	byTag := make(map[uint64]int, len(cases))
	for i, cs := range cases {
		if cs.tag > uint64(^L(0)) {
			panic(fmt.Sprintf("codec: discriminant %d exceeds tag codec range (max %d)", cs.tag, uint64(^L(0))))
		}
		if prev, dup := byTag[cs.tag]; dup {
			panic(fmt.Sprintf("codec: discriminant %d bound to cases %d and %d", cs.tag, prev, i))
		}
		byTag[cs.tag] = i
	}
	return unionCodec[L, U]{tag: tag, cases: cases, byTag: byTag}
}

type unionCodec[L Unsigned, U any] struct {
	tag   Codec[L]
	cases []UnionCase[U]
	byTag map[uint64]int
}

func (c unionCodec[L, U]) Size(v U) int {
	for _, cs := range c.cases {
		if cs.match(v) {
			return c.tag.Size(L(cs.tag)) + cs.size(v)
		}
	}
	return 0
}

func (c unionCodec[L, U]) Encode(w *Writer, v U) error {
	for _, cs := range c.cases {
		if cs.match(v) {
			if err := c.tag.Encode(w, L(cs.tag)); err != nil {
				return err
			}
			return cs.encode(w, v)
		}
	}
	return errors.NoVariant(nil, fmt.Sprintf("%T", v))
}

func (c unionCodec[L, U]) Decode(r *Reader) (U, error) {
	var zero U
	start := r.off
	t, err := c.tag.Decode(r)
	if err != nil {
		return zero, err
	}
	i, ok := c.byTag[uint64(t)]
	if !ok {
		r.off = start
		return zero, errors.UnknownTag(nil, start, uint64(t))
	}
	return c.cases[i].decode(r)
}
