package codec

import (
	"bytes"
	"encoding/binary"
	stderrors "errors"
	"strings"
	"testing"
	"unsafe"

	"github.com/spoolkit/spool/errors"
)

func TestString_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		codec Codec[string]
		value string
		want  []byte
	}{
		{"u8 length", String(U8()), "Alice", []byte{0x05, 'A', 'l', 'i', 'c', 'e'}},
		{"empty", String(U8()), "", []byte{0x00}},
		{"u16 be length", String(U16(binary.BigEndian)), "hi", []byte{0x00, 0x02, 'h', 'i'}},
		{"varint length", String(Uvarint32(binary.LittleEndian)), "hey", []byte{0x03, 'h', 'e', 'y'}},
		{"multibyte runes", String(U8()), "héllo", []byte{0x06, 'h', 0xc3, 0xa9, 'l', 'l', 'o'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.codec.Size(tt.value); got != len(tt.want) {
				t.Errorf("Size(%q) = %d, want %d", tt.value, got, len(tt.want))
			}
			data, err := Marshal(tt.codec, tt.value)
			if err != nil {
				t.Fatalf("Marshal(%q) failed: %v", tt.value, err)
			}
			if !bytes.Equal(data, tt.want) {
				t.Errorf("Marshal(%q) = %x, want %x", tt.value, data, tt.want)
			}
			back, err := Unmarshal(tt.codec, data)
			if err != nil {
				t.Fatalf("Unmarshal(%x) failed: %v", data, err)
			}
			if back != tt.value {
				t.Errorf("Unmarshal(%x) = %q, want %q", data, back, tt.value)
			}
		})
	}
}

func TestString_InvalidUTF8(t *testing.T) {
	c := String(U8())

	// decode: 0xff 0xfe is not well-formed
	r := NewReader([]byte{0x02, 0xff, 0xfe})
	_, err := c.Decode(r)
	if !stderrors.Is(err, errors.ErrInvalidEncoding) {
		t.Fatalf("Decode err = %v, want invalid_encoding", err)
	}
	// cursor back at the payload start
	if r.Position() != 1 {
		t.Errorf("cursor = %d, want 1", r.Position())
	}

	// encode: validation happens before any bytes are written
	w := NewWriter(8)
	err = c.Encode(w, string([]byte{0xff, 0xfe}))
	if !stderrors.Is(err, errors.ErrInvalidEncoding) {
		t.Fatalf("Encode err = %v, want invalid_encoding", err)
	}
	if w.Len() != 0 {
		t.Errorf("failed encode wrote %d bytes, want 0", w.Len())
	}
}

func TestStringView_AliasesBuffer(t *testing.T) {
	borrow := StringView(U8())
	own := String(U8())
	buf := []byte{0x02, 'h', 'i'}

	// wire bytes are identical for both ownership modes
	viewData, err := Marshal(borrow, "hi")
	if err != nil {
		t.Fatalf("Marshal(view) failed: %v", err)
	}
	ownData, err := Marshal(own, "hi")
	if err != nil {
		t.Fatalf("Marshal(owned) failed: %v", err)
	}
	if !bytes.Equal(viewData, ownData) || !bytes.Equal(viewData, buf) {
		t.Errorf("wire bytes differ: view %x, owned %x, want %x", viewData, ownData, buf)
	}

	view, err := Unmarshal(borrow, buf)
	if err != nil {
		t.Fatalf("Unmarshal(view) failed: %v", err)
	}
	owned, err := Unmarshal(own, buf)
	if err != nil {
		t.Fatalf("Unmarshal(owned) failed: %v", err)
	}

	if view != "hi" || owned != "hi" {
		t.Fatalf("decoded %q and %q, want %q", view, owned, "hi")
	}
	// the borrowed string points into the buffer, the owned one does not
	if unsafe.StringData(view) != &buf[1] {
		t.Error("borrowed string does not alias the input buffer")
	}
	if unsafe.StringData(owned) == &buf[1] {
		t.Error("owned string should not alias the input buffer")
	}
}

func TestCString_RoundTrip(t *testing.T) {
	c := CString()

	if got := c.Size("abc"); got != 4 {
		t.Errorf("Size(abc) = %d, want 4", got)
	}

	data, err := Marshal(c, "abc")
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := []byte{'a', 'b', 'c', 0x00}
	if !bytes.Equal(data, want) {
		t.Errorf("Marshal = %x, want %x", data, want)
	}

	back, err := Unmarshal(c, data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back != "abc" {
		t.Errorf("Unmarshal = %q, want abc", back)
	}

	// empty string is a lone terminator
	data, err = Marshal(c, "")
	if err != nil {
		t.Fatalf("Marshal(empty) failed: %v", err)
	}
	if !bytes.Equal(data, []byte{0x00}) {
		t.Errorf("Marshal(empty) = %x, want 00", data)
	}
}

func TestCString_CursorPastTerminator(t *testing.T) {
	c := CString()

	r := NewReader([]byte{'h', 'i', 0x00, 0xaa})
	v, err := c.Decode(r)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if v != "hi" {
		t.Errorf("Decode = %q, want hi", v)
	}
	if r.Position() != 3 {
		t.Errorf("cursor = %d, want 3 (past the terminator)", r.Position())
	}
}

func TestCString_MissingTerminator(t *testing.T) {
	c := CString()

	r := NewReader([]byte{'h', 'i'})
	_, err := c.Decode(r)
	if !stderrors.Is(err, errors.ErrInvalidEncoding) {
		t.Fatalf("err = %v, want invalid_encoding", err)
	}
	if r.Position() != 0 {
		t.Errorf("failed decode moved cursor to %d, want 0", r.Position())
	}
}

func TestCString_RejectsEmbeddedNUL(t *testing.T) {
	c := CString()

	w := NewWriter(8)
	err := c.Encode(w, "ab\x00cd")
	if !stderrors.Is(err, errors.ErrInvalidEncoding) {
		t.Fatalf("err = %v, want invalid_encoding", err)
	}
	// rejected before any bytes were emitted
	if w.Len() != 0 {
		t.Errorf("failed encode wrote %d bytes, want 0", w.Len())
	}

	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("err is %T, want *errors.Error", err)
	}
	if !strings.Contains(e.Detail, "2") {
		t.Errorf("detail %q should name the NUL position", e.Detail)
	}
}

func TestCString_NotRequiredUTF8(t *testing.T) {
	c := CString()

	// arbitrary non-UTF-8 bytes round-trip; only the terminator matters
	raw := string([]byte{0xff, 0x01, 0xfe})
	data, err := Marshal(c, raw)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	back, err := Unmarshal(c, data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back != raw {
		t.Errorf("Unmarshal = %x, want %x", back, raw)
	}
}
