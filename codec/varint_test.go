package codec

import (
	"bytes"
	"encoding/binary"
	stderrors "errors"
	"math"
	"testing"

	"github.com/spoolkit/spool/errors"
)

func TestUvarint64_LittleEndian(t *testing.T) {
	c := Uvarint64(binary.LittleEndian)

	tests := []struct {
		name  string
		value uint64
		want  []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"one group", 0x7f, []byte{0x7f}},
		{"two groups", 0x80, []byte{0x80, 0x01}},
		{"624485", 624485, []byte{0xe5, 0x8e, 0x26}},
		{"max u64", math.MaxUint64, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Size(tt.value); got != len(tt.want) {
				t.Errorf("Size(%d) = %d, want %d", tt.value, got, len(tt.want))
			}
			data, err := Marshal(c, tt.value)
			if err != nil {
				t.Fatalf("Marshal(%d) failed: %v", tt.value, err)
			}
			if !bytes.Equal(data, tt.want) {
				t.Errorf("Marshal(%d) = %x, want %x", tt.value, data, tt.want)
			}
			back, err := Unmarshal(c, data)
			if err != nil {
				t.Fatalf("Unmarshal(%x) failed: %v", data, err)
			}
			if back != tt.value {
				t.Errorf("Unmarshal(%x) = %d, want %d", data, back, tt.value)
			}
		})
	}
}

func TestUvarint64_BigEndian(t *testing.T) {
	c := Uvarint64(binary.BigEndian)

	tests := []struct {
		name  string
		value uint64
		want  []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"one group", 0x7f, []byte{0x7f}},
		{"two groups", 0x80, []byte{0x81, 0x00}},
		{"624485", 624485, []byte{0xa6, 0x8e, 0x65}},
		{"max u64", math.MaxUint64, []byte{0x81, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Size(tt.value); got != len(tt.want) {
				t.Errorf("Size(%d) = %d, want %d", tt.value, got, len(tt.want))
			}
			data, err := Marshal(c, tt.value)
			if err != nil {
				t.Fatalf("Marshal(%d) failed: %v", tt.value, err)
			}
			if !bytes.Equal(data, tt.want) {
				t.Errorf("Marshal(%d) = %x, want %x", tt.value, data, tt.want)
			}
			back, err := Unmarshal(c, data)
			if err != nil {
				t.Fatalf("Unmarshal(%x) failed: %v", data, err)
			}
			if back != tt.value {
				t.Errorf("Unmarshal(%x) = %d, want %d", data, back, tt.value)
			}
		})
	}
}

func TestUvarint_Canonical(t *testing.T) {
	// zero is exactly one byte with no continuation bit, and the maximum
	// value of each width uses the minimum group count
	widths := []struct {
		name      string
		zero      func() ([]byte, error)
		max       func() ([]byte, error)
		maxGroups int
	}{
		{"u16", func() ([]byte, error) { return Marshal(Uvarint16(binary.LittleEndian), 0) },
			func() ([]byte, error) { return Marshal(Uvarint16(binary.LittleEndian), math.MaxUint16) }, 3},
		{"u32", func() ([]byte, error) { return Marshal(Uvarint32(binary.LittleEndian), 0) },
			func() ([]byte, error) { return Marshal(Uvarint32(binary.LittleEndian), math.MaxUint32) }, 5},
		{"u64", func() ([]byte, error) { return Marshal(Uvarint64(binary.LittleEndian), 0) },
			func() ([]byte, error) { return Marshal(Uvarint64(binary.LittleEndian), math.MaxUint64) }, 10},
	}

	for _, tt := range widths {
		t.Run(tt.name, func(t *testing.T) {
			zero, err := tt.zero()
			if err != nil {
				t.Fatalf("Marshal(0) failed: %v", err)
			}
			if !bytes.Equal(zero, []byte{0x00}) {
				t.Errorf("Marshal(0) = %x, want 00", zero)
			}
			max, err := tt.max()
			if err != nil {
				t.Fatalf("Marshal(max) failed: %v", err)
			}
			if len(max) != tt.maxGroups {
				t.Errorf("Marshal(max) = %d groups, want %d", len(max), tt.maxGroups)
			}
		})
	}
}

func TestUvarint_Overflow(t *testing.T) {
	tests := []struct {
		name  string
		codec Codec[uint32]
		data  []byte
	}{
		// five full groups put bits 28..34 beyond a u32
		{"le fifth group too large", Uvarint32(binary.LittleEndian), []byte{0xff, 0xff, 0xff, 0xff, 0x7f}},
		{"le sixth group nonzero", Uvarint32(binary.LittleEndian), []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}},
		{"be leading group too large", Uvarint32(binary.BigEndian), []byte{0xff, 0xff, 0xff, 0xff, 0x7f}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.data)
			_, err := tt.codec.Decode(r)
			if !stderrors.Is(err, errors.ErrOverflow) {
				t.Fatalf("Decode(%x) err = %v, want overflow", tt.data, err)
			}
			if r.Position() != 0 {
				t.Errorf("failed decode moved cursor to %d, want 0", r.Position())
			}
		})
	}
}

func TestUvarint_RedundantZeroGroups(t *testing.T) {
	// non-minimal encodings still decode as long as the value fits
	tests := []struct {
		name  string
		codec Codec[uint32]
		data  []byte
		want  uint32
	}{
		{"le padded one", Uvarint32(binary.LittleEndian), []byte{0x81, 0x80, 0x00}, 1},
		{"le padded zero", Uvarint32(binary.LittleEndian), []byte{0x80, 0x80, 0x00}, 0},
		{"be padded one", Uvarint32(binary.BigEndian), []byte{0x80, 0x80, 0x01}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unmarshal(tt.codec, tt.data)
			if err != nil {
				t.Fatalf("Unmarshal(%x) failed: %v", tt.data, err)
			}
			if got != tt.want {
				t.Errorf("Unmarshal(%x) = %d, want %d", tt.data, got, tt.want)
			}
		})
	}
}

func TestUvarint_Truncated(t *testing.T) {
	c := Uvarint64(binary.LittleEndian)

	r := NewReader([]byte{0x80, 0x80})
	_, err := c.Decode(r)
	if !stderrors.Is(err, errors.ErrInsufficientInput) {
		t.Fatalf("Decode of truncated varint: err = %v, want insufficient_input", err)
	}
	if r.Position() != 0 {
		t.Errorf("failed decode moved cursor to %d, want 0", r.Position())
	}
}

func TestUvarint16_Range(t *testing.T) {
	c := Uvarint16(binary.LittleEndian)

	data, err := Marshal(c, math.MaxUint16)
	if err != nil {
		t.Fatalf("Marshal(max) failed: %v", err)
	}
	back, err := Unmarshal(c, data)
	if err != nil || back != math.MaxUint16 {
		t.Fatalf("round-trip = %d, %v, want %d", back, err, math.MaxUint16)
	}

	// 0x1FFFF does not fit sixteen bits
	_, err = Unmarshal(c, []byte{0xff, 0xff, 0x07})
	if !stderrors.Is(err, errors.ErrOverflow) {
		t.Errorf("Unmarshal(ffff07) err = %v, want overflow", err)
	}
}

func TestUvarint_RejectsFixedOrder(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Uvarint32 with a custom ByteOrder should panic")
		}
	}()
	Uvarint32(customOrder{})
}

type customOrder struct{ binary.ByteOrder }
