package codec

import "github.com/spoolkit/spool/errors"

// StructField binds one field of a record type T to its codec. Build
// fields with Field and assemble them with Struct.
type StructField[T any] struct {
	name   string
	size   func(*T) int
	encode func(*Writer, *T) error
	decode func(*Reader, *T) error
}

// Field binds a record field: its name (used in error paths), its codec,
// and an accessor returning a pointer to the field within the record. The
// accessor serves both directions: encode reads through it, decode
// writes through it.
//
//	codec.Field("id", codec.U32(binary.BigEndian), func(u *User) *uint32 { return &u.ID })
func Field[T, F any](name string, c Codec[F], access func(*T) *F) StructField[T] {
	return StructField[T]{
		name: name,
		size: func(v *T) int {
			return c.Size(*access(v))
		},
		encode: func(w *Writer, v *T) error {
			return c.Encode(w, *access(v))
		},
		decode: func(r *Reader, v *T) error {
			f, err := c.Decode(r)
			if err != nil {
				return err
			}
			*access(v) = f
			return nil
		},
	}
}

// Struct returns a codec for record type T from its fields in wire order.
// Size is the sum of field sizes, encode and decode run the fields
// strictly in declared order, and the first failing field aborts the
// operation with its name prefixed to the error path.
func Struct[T any](fields ...StructField[T]) Codec[T] {
	return structCodec[T]{fields}
}

type structCodec[T any] struct {
	fields []StructField[T]
}

func (c structCodec[T]) Size(v T) int {
	n := 0
	for _, f := range c.fields {
		n += f.size(&v)
	}
	return n
}

func (c structCodec[T]) Encode(w *Writer, v T) error {
	for _, f := range c.fields {
		if err := f.encode(w, &v); err != nil {
			return errors.Prefix(err, f.name)
		}
	}
	return nil
}

func (c structCodec[T]) Decode(r *Reader) (T, error) {
	var v T
	for _, f := range c.fields {
		if err := f.decode(r, &v); err != nil {
			var zero T
			return zero, errors.Prefix(err, f.name)
		}
	}
	return v, nil
}
