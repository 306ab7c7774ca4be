package codec

import (
	"encoding/binary"
	"math"
)

// Bool returns a codec for bool as a single byte: 1 for true, 0 for
// false. Any nonzero byte decodes as true.
func Bool() Codec[bool] { return boolCodec{} }

type boolCodec struct{}

func (boolCodec) Size(bool) int { return 1 }

func (boolCodec) Encode(w *Writer, v bool) error {
	if v {
		w.Byte(1)
	} else {
		w.Byte(0)
	}
	return nil
}

func (boolCodec) Decode(r *Reader) (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// U8 returns a codec for uint8. Single-byte widths have no byte order.
func U8() Codec[uint8] { return u8Codec{} }

type u8Codec struct{}

func (u8Codec) Size(uint8) int { return 1 }

func (u8Codec) Encode(w *Writer, v uint8) error {
	w.Byte(v)
	return nil
}

func (u8Codec) Decode(r *Reader) (uint8, error) {
	return r.ReadByte()
}

// S8 returns a codec for int8.
func S8() Codec[int8] { return s8Codec{} }

type s8Codec struct{}

func (s8Codec) Size(int8) int { return 1 }

func (s8Codec) Encode(w *Writer, v int8) error {
	w.Byte(byte(v))
	return nil
}

func (s8Codec) Decode(r *Reader) (int8, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	return int8(b), nil
}

// U16 returns a codec for uint16 in the given byte order.
func U16(order binary.ByteOrder) Codec[uint16] { return u16Codec{order} }

type u16Codec struct{ order binary.ByteOrder }

func (u16Codec) Size(uint16) int { return 2 }

func (c u16Codec) Encode(w *Writer, v uint16) error {
	w.WriteU16(c.order, v)
	return nil
}

func (c u16Codec) Decode(r *Reader) (uint16, error) {
	return r.ReadU16(c.order)
}

// U32 returns a codec for uint32 in the given byte order.
func U32(order binary.ByteOrder) Codec[uint32] { return u32Codec{order} }

type u32Codec struct{ order binary.ByteOrder }

func (u32Codec) Size(uint32) int { return 4 }

func (c u32Codec) Encode(w *Writer, v uint32) error {
	w.WriteU32(c.order, v)
	return nil
}

func (c u32Codec) Decode(r *Reader) (uint32, error) {
	return r.ReadU32(c.order)
}

// U64 returns a codec for uint64 in the given byte order.
func U64(order binary.ByteOrder) Codec[uint64] { return u64Codec{order} }

type u64Codec struct{ order binary.ByteOrder }

func (u64Codec) Size(uint64) int { return 8 }

func (c u64Codec) Encode(w *Writer, v uint64) error {
	w.WriteU64(c.order, v)
	return nil
}

func (c u64Codec) Decode(r *Reader) (uint64, error) {
	return r.ReadU64(c.order)
}

// S16 returns a codec for int16 in the given byte order.
func S16(order binary.ByteOrder) Codec[int16] { return s16Codec{order} }

type s16Codec struct{ order binary.ByteOrder }

func (s16Codec) Size(int16) int { return 2 }

func (c s16Codec) Encode(w *Writer, v int16) error {
	w.WriteU16(c.order, uint16(v))
	return nil
}

func (c s16Codec) Decode(r *Reader) (int16, error) {
	u, err := r.ReadU16(c.order)
	if err != nil {
		return 0, err
	}
	return int16(u), nil
}

// S32 returns a codec for int32 in the given byte order.
func S32(order binary.ByteOrder) Codec[int32] { return s32Codec{order} }

type s32Codec struct{ order binary.ByteOrder }

func (s32Codec) Size(int32) int { return 4 }

func (c s32Codec) Encode(w *Writer, v int32) error {
	w.WriteU32(c.order, uint32(v))
	return nil
}

func (c s32Codec) Decode(r *Reader) (int32, error) {
	u, err := r.ReadU32(c.order)
	if err != nil {
		return 0, err
	}
	return int32(u), nil
}

// S64 returns a codec for int64 in the given byte order.
func S64(order binary.ByteOrder) Codec[int64] { return s64Codec{order} }

type s64Codec struct{ order binary.ByteOrder }

func (s64Codec) Size(int64) int { return 8 }

func (c s64Codec) Encode(w *Writer, v int64) error {
	w.WriteU64(c.order, uint64(v))
	return nil
}

func (c s64Codec) Decode(r *Reader) (int64, error) {
	u, err := r.ReadU64(c.order)
	if err != nil {
		return 0, err
	}
	return int64(u), nil
}

// F32 returns a codec for float32 as its IEEE 754 bit pattern in the
// given byte order.
func F32(order binary.ByteOrder) Codec[float32] { return f32Codec{order} }

type f32Codec struct{ order binary.ByteOrder }

func (f32Codec) Size(float32) int { return 4 }

func (c f32Codec) Encode(w *Writer, v float32) error {
	w.WriteU32(c.order, math.Float32bits(v))
	return nil
}

func (c f32Codec) Decode(r *Reader) (float32, error) {
	u, err := r.ReadU32(c.order)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

// F64 returns a codec for float64 as its IEEE 754 bit pattern in the
// given byte order.
func F64(order binary.ByteOrder) Codec[float64] { return f64Codec{order} }

type f64Codec struct{ order binary.ByteOrder }

func (f64Codec) Size(float64) int { return 8 }

func (c f64Codec) Encode(w *Writer, v float64) error {
	w.WriteU64(c.order, math.Float64bits(v))
	return nil
}

func (c f64Codec) Decode(r *Reader) (float64, error) {
	u, err := r.ReadU64(c.order)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
}

var (
	_ Codec[bool]    = boolCodec{}
	_ Codec[uint8]   = u8Codec{}
	_ Codec[int8]    = s8Codec{}
	_ Codec[uint16]  = u16Codec{}
	_ Codec[uint32]  = u32Codec{}
	_ Codec[uint64]  = u64Codec{}
	_ Codec[int16]   = s16Codec{}
	_ Codec[int32]   = s32Codec{}
	_ Codec[int64]   = s64Codec{}
	_ Codec[float32] = f32Codec{}
	_ Codec[float64] = f64Codec{}
)
