package codec

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/spoolkit/spool/errors"
)

// MapOf returns a length-prefixed codec for maps: the entry count through
// the length codec, then key/value pairs. Encoding visits keys in sorted
// order, so equal maps always produce identical bytes. Decoding a
// duplicate key keeps the last value.
func MapOf[L Unsigned, K cmp.Ordered, V any](length Codec[L], key Codec[K], val Codec[V]) Codec[map[K]V] {
	return mapCodec[L, K, V]{length: length, key: key, val: val}
}

type mapCodec[L Unsigned, K cmp.Ordered, V any] struct {
	length Codec[L]
	key    Codec[K]
	val    Codec[V]
}

func (c mapCodec[L, K, V]) Size(v map[K]V) int {
	n := c.length.Size(L(len(v)))
	for k, e := range v {
		n += c.key.Size(k) + c.val.Size(e)
	}
	return n
}

func (c mapCodec[L, K, V]) Encode(w *Writer, v map[K]V) error {
	if err := encodeCount(w, c.length, len(v)); err != nil {
		return err
	}
	keys := make([]K, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := c.key.Encode(w, k); err != nil {
			return errors.Prefix(err, fmt.Sprintf("[%v]", k))
		}
		if err := c.val.Encode(w, v[k]); err != nil {
			return errors.Prefix(err, fmt.Sprintf("[%v]", k))
		}
	}
	return nil
}

func (c mapCodec[L, K, V]) Decode(r *Reader) (map[K]V, error) {
	n, err := decodeCount(r, c.length)
	if err != nil {
		return nil, err
	}
	out := make(map[K]V, preallocCap(n))
	for i := 0; i < n; i++ {
		k, err := c.key.Decode(r)
		if err != nil {
			return nil, errors.Prefix(err, fmt.Sprintf("[%d]", i))
		}
		e, err := c.val.Decode(r)
		if err != nil {
			return nil, errors.Prefix(err, fmt.Sprintf("[%d]", i))
		}
		out[k] = e
	}
	return out, nil
}
