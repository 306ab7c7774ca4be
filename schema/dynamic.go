package schema

import (
	"encoding/binary"
	"fmt"

	"github.com/spoolkit/spool/codec"
	"github.com/spoolkit/spool/errors"
)

// adapt erases a concrete codec into Codec[any]. Encoding any other
// dynamic type fails with type_mismatch naming want.
func adapt[T any](c codec.Codec[T], want string) codec.Codec[any] {
	return anyCodec[T]{c: c, want: want}
}

type anyCodec[T any] struct {
	c    codec.Codec[T]
	want string
}

func (a anyCodec[T]) Size(v any) int {
	t, ok := v.(T)
	if !ok {
		return 0
	}
	return a.c.Size(t)
}

func (a anyCodec[T]) Encode(w *codec.Writer, v any) error {
	t, ok := v.(T)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, nil, fmt.Sprintf("%T", v), a.want)
	}
	return a.c.Encode(w, t)
}

func (a anyCodec[T]) Decode(r *codec.Reader) (any, error) {
	t, err := a.c.Decode(r)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// lengthCodec instantiates the length-parameterized constructors for one
// concrete carrier width. The schema layer cannot name that type
// parameter statically, so each width implements this interface once and
// lengthFor picks the instantiation by name.
type lengthCodec interface {
	valueCodec() codec.Codec[any]
	buildString() codec.Codec[string]
	buildBytes() codec.Codec[[]byte]
	buildList(elem codec.Codec[any]) codec.Codec[any]
	buildMap(key codec.Codec[string], val codec.Codec[any]) codec.Codec[any]
	buildUnion(cases []codec.UnionCase[Tagged]) codec.Codec[Tagged]
	maxCount() uint64
}

type lengthOf[L codec.Unsigned] struct {
	c    codec.Codec[L]
	name string // Go type name for mismatch messages
}

func (l lengthOf[L]) valueCodec() codec.Codec[any] { return adapt(l.c, l.name) }

func (l lengthOf[L]) buildString() codec.Codec[string] { return codec.String(l.c) }

func (l lengthOf[L]) buildBytes() codec.Codec[[]byte] { return codec.BytesCopy(l.c) }

func (l lengthOf[L]) buildList(elem codec.Codec[any]) codec.Codec[any] {
	return adapt(codec.List(l.c, elem), "[]any")
}

func (l lengthOf[L]) buildMap(key codec.Codec[string], val codec.Codec[any]) codec.Codec[any] {
	return adapt(codec.MapOf(l.c, key, val), "map[string]any")
}

func (l lengthOf[L]) buildUnion(cases []codec.UnionCase[Tagged]) codec.Codec[Tagged] {
	return codec.Union(l.c, cases...)
}

func (l lengthOf[L]) maxCount() uint64 { return uint64(^L(0)) }

// lengthFor maps unsigned integer type names to their width
// instantiation. These are the only types valid in count and discriminant
// positions.
func lengthFor(name string) (lengthCodec, bool) {
	be, le := binary.BigEndian, binary.LittleEndian
	switch name {
	case "u8":
		return lengthOf[uint8]{codec.U8(), "uint8"}, true
	case "u16be":
		return lengthOf[uint16]{codec.U16(be), "uint16"}, true
	case "u16le":
		return lengthOf[uint16]{codec.U16(le), "uint16"}, true
	case "u32be":
		return lengthOf[uint32]{codec.U32(be), "uint32"}, true
	case "u32le":
		return lengthOf[uint32]{codec.U32(le), "uint32"}, true
	case "u64be":
		return lengthOf[uint64]{codec.U64(be), "uint64"}, true
	case "u64le":
		return lengthOf[uint64]{codec.U64(le), "uint64"}, true
	case "uvar16be":
		return lengthOf[uint16]{codec.Uvarint16(be), "uint16"}, true
	case "uvar16le":
		return lengthOf[uint16]{codec.Uvarint16(le), "uint16"}, true
	case "uvar32be":
		return lengthOf[uint32]{codec.Uvarint32(be), "uint32"}, true
	case "uvar32le":
		return lengthOf[uint32]{codec.Uvarint32(le), "uint32"}, true
	case "uvar64be":
		return lengthOf[uint64]{codec.Uvarint64(be), "uint64"}, true
	case "uvar64le":
		return lengthOf[uint64]{codec.Uvarint64(le), "uint64"}, true
	}
	return nil, false
}

// leafFor maps primitive type names to their erased codecs.
func leafFor(name string) (codec.Codec[any], bool) {
	be, le := binary.BigEndian, binary.LittleEndian
	switch name {
	case "bool":
		return adapt(codec.Bool(), "bool"), true
	case "s8":
		return adapt(codec.S8(), "int8"), true
	case "s16be":
		return adapt(codec.S16(be), "int16"), true
	case "s16le":
		return adapt(codec.S16(le), "int16"), true
	case "s32be":
		return adapt(codec.S32(be), "int32"), true
	case "s32le":
		return adapt(codec.S32(le), "int32"), true
	case "s64be":
		return adapt(codec.S64(be), "int64"), true
	case "s64le":
		return adapt(codec.S64(le), "int64"), true
	case "f32be":
		return adapt(codec.F32(be), "float32"), true
	case "f32le":
		return adapt(codec.F32(le), "float32"), true
	case "f64be":
		return adapt(codec.F64(be), "float64"), true
	case "f64le":
		return adapt(codec.F64(le), "float64"), true
	case "cstring":
		return adapt(codec.CString(), "string"), true
	}
	if l, ok := lengthFor(name); ok {
		return l.valueCodec(), true
	}
	return nil, false
}

type dynField struct {
	name string
	c    codec.Codec[any]
}

// recordCodec runs fields strictly in schema order, reading and writing a
// map keyed by field name. Encoding requires every field present in the
// map; extra keys are ignored.
type recordCodec struct {
	fields []dynField
}

func (c recordCodec) Size(v any) int {
	m, ok := v.(map[string]any)
	if !ok {
		return 0
	}
	n := 0
	for _, f := range c.fields {
		n += f.c.Size(m[f.name])
	}
	return n
}

func (c recordCodec) Encode(w *codec.Writer, v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, nil, fmt.Sprintf("%T", v), "map[string]any")
	}
	for _, f := range c.fields {
		fv, ok := m[f.name]
		if !ok {
			return errors.FieldMissing(errors.PhaseEncode, nil, f.name)
		}
		if err := f.c.Encode(w, fv); err != nil {
			return errors.Prefix(err, f.name)
		}
	}
	return nil
}

func (c recordCodec) Decode(r *codec.Reader) (any, error) {
	m := make(map[string]any, len(c.fields))
	for _, f := range c.fields {
		fv, err := f.c.Decode(r)
		if err != nil {
			return nil, errors.Prefix(err, f.name)
		}
		m[f.name] = fv
	}
	return m, nil
}

// tupleCodec is a fixed positional sequence decoding to []any.
type tupleCodec struct {
	elems []codec.Codec[any]
}

func (c tupleCodec) Size(v any) int {
	vs, ok := v.([]any)
	if !ok || len(vs) != len(c.elems) {
		return 0
	}
	n := 0
	for i, e := range c.elems {
		n += e.Size(vs[i])
	}
	return n
}

func (c tupleCodec) Encode(w *codec.Writer, v any) error {
	vs, ok := v.([]any)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, nil, fmt.Sprintf("%T", v), "[]any")
	}
	if len(vs) != len(c.elems) {
		return errors.LengthMismatch(nil, len(vs), len(c.elems))
	}
	for i, e := range c.elems {
		if err := e.Encode(w, vs[i]); err != nil {
			return errors.Prefix(err, fmt.Sprintf("[%d]", i))
		}
	}
	return nil
}

func (c tupleCodec) Decode(r *codec.Reader) (any, error) {
	vs := make([]any, len(c.elems))
	for i, e := range c.elems {
		v, err := e.Decode(r)
		if err != nil {
			return nil, errors.Prefix(err, fmt.Sprintf("[%d]", i))
		}
		vs[i] = v
	}
	return vs, nil
}

var flagCodec = codec.Bool()

// optionCodec carries absence as nil: a one-byte flag, then the payload
// only when present.
type optionCodec struct {
	payload codec.Codec[any]
}

func (c optionCodec) Size(v any) int {
	if v == nil {
		return flagCodec.Size(false)
	}
	return flagCodec.Size(true) + c.payload.Size(v)
}

func (c optionCodec) Encode(w *codec.Writer, v any) error {
	if v == nil {
		return flagCodec.Encode(w, false)
	}
	if err := flagCodec.Encode(w, true); err != nil {
		return err
	}
	return c.payload.Encode(w, v)
}

func (c optionCodec) Decode(r *codec.Reader) (any, error) {
	present, err := flagCodec.Decode(r)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	return c.payload.Decode(r)
}

// unitAny is the payload for union variants declared without a type: zero
// bytes on the wire, nil as the value.
type unitAny struct{}

func (unitAny) Size(any) int                      { return 0 }
func (unitAny) Encode(*codec.Writer, any) error   { return nil }
func (unitAny) Decode(*codec.Reader) (any, error) { return nil, nil }

var (
	_ codec.Codec[any] = anyCodec[bool]{}
	_ codec.Codec[any] = recordCodec{}
	_ codec.Codec[any] = tupleCodec{}
	_ codec.Codec[any] = optionCodec{}
	_ codec.Codec[any] = unitAny{}
)
