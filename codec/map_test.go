package codec

import (
	"bytes"
	"encoding/binary"
	stderrors "errors"
	"maps"
	"testing"

	"github.com/spoolkit/spool/errors"
)

func TestMapOf_RoundTrip(t *testing.T) {
	c := MapOf(U8(), U8(), U16(binary.BigEndian))
	v := map[uint8]uint16{3: 0x0a0b, 1: 0x0102, 2: 0xffff}

	data, err := Marshal(c, v)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	back, err := Unmarshal(c, data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !maps.Equal(back, v) {
		t.Errorf("Unmarshal = %v, want %v", back, v)
	}
}

func TestMapOf_DeterministicEncoding(t *testing.T) {
	c := MapOf(U8(), U8(), U8())
	v := map[uint8]uint8{9: 90, 1: 10, 5: 50}

	// entries come out sorted by key regardless of map iteration order
	want := []byte{0x03, 0x01, 0x0a, 0x05, 0x32, 0x09, 0x5a}
	for range 16 {
		data, err := Marshal(c, v)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if !bytes.Equal(data, want) {
			t.Fatalf("Marshal = %x, want %x", data, want)
		}
	}
}

func TestMapOf_Empty(t *testing.T) {
	c := MapOf(U8(), U8(), U8())

	data, err := Marshal(c, nil)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !bytes.Equal(data, []byte{0x00}) {
		t.Errorf("Marshal = %x, want 00", data)
	}

	back, err := Unmarshal(c, data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(back) != 0 {
		t.Errorf("Unmarshal = %v, want empty map", back)
	}
}

func TestMapOf_DuplicateKeyLastWins(t *testing.T) {
	c := MapOf(U8(), U8(), U8())

	// key 1 appears twice, second value wins
	back, err := Unmarshal(c, []byte{0x02, 0x01, 0x0a, 0x01, 0x0b})
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(back) != 1 || back[1] != 0x0b {
		t.Errorf("Unmarshal = %v, want map[1:11]", back)
	}
}

func TestMapOf_ValueErrorPath(t *testing.T) {
	c := MapOf(U8(), U8(), U16(binary.BigEndian))

	// second entry's value is truncated
	_, err := Unmarshal(c, []byte{0x02, 0x01, 0x0a, 0x0b, 0x02, 0x0c})
	if !stderrors.Is(err, errors.ErrInsufficientInput) {
		t.Fatalf("err = %v, want insufficient_input", err)
	}
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("err is %T, want *errors.Error", err)
	}
	if got := errors.JoinPath(e.Path); got != "[1]" {
		t.Errorf("path = %q, want [1]", got)
	}
}
