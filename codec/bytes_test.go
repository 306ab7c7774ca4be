package codec

import (
	"bytes"
	"encoding/binary"
	stderrors "errors"
	"testing"

	"github.com/spoolkit/spool/errors"
)

func TestBytes_RoundTrip(t *testing.T) {
	c := Bytes(U8())

	data, err := Marshal(c, []byte{0xde, 0xad, 0xbe, 0xef})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := []byte{0x04, 0xde, 0xad, 0xbe, 0xef}
	if !bytes.Equal(data, want) {
		t.Errorf("Marshal = %x, want %x", data, want)
	}

	back, err := Unmarshal(c, data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !bytes.Equal(back, []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Errorf("Unmarshal = %x", back)
	}
}

func TestBytes_DecodeIsView(t *testing.T) {
	c := Bytes(U8())
	buf := []byte{0x02, 0xaa, 0xbb}

	span, err := Unmarshal(c, buf)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	// the decoded span aliases the input buffer
	buf[1] = 0xcc
	if span[0] != 0xcc {
		t.Error("decoded span does not alias the input buffer")
	}
}

func TestBytesCopy_DecodeOwns(t *testing.T) {
	c := BytesCopy(U8())
	buf := []byte{0x02, 0xaa, 0xbb}

	span, err := Unmarshal(c, buf)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	buf[1] = 0xcc
	if span[0] != 0xaa {
		t.Error("owned span should not alias the input buffer")
	}
}

func TestBytes_ShortPayload(t *testing.T) {
	c := Bytes(U8())

	r := NewReader([]byte{0x05, 0x01, 0x02})
	_, err := c.Decode(r)
	if !stderrors.Is(err, errors.ErrInsufficientInput) {
		t.Fatalf("err = %v, want insufficient_input", err)
	}
	// the count was consumed; the cursor sits where the payload starts
	if r.Position() != 1 {
		t.Errorf("cursor = %d, want 1", r.Position())
	}
}

func TestBytes_CountOverflowsLength(t *testing.T) {
	c := Bytes(U8())

	_, err := Marshal(c, make([]byte, 300))
	if !stderrors.Is(err, errors.ErrOverflow) {
		t.Fatalf("Marshal of 300 bytes with u8 length: err = %v, want overflow", err)
	}
}

func TestBytes_KeyValueEntry(t *testing.T) {
	type entry struct {
		Key   []byte
		Value []byte
	}
	c := Struct[entry](
		Field("key", Bytes(U16(binary.LittleEndian)), func(e *entry) *[]byte { return &e.Key }),
		Field("value", Rest(), func(e *entry) *[]byte { return &e.Value }),
	)

	data, err := Marshal(c, entry{Key: []byte("host"), Value: []byte("db-1")})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	// u16-LE key length, then the key; the value runs to the end of the record
	want := []byte{0x04, 0x00, 'h', 'o', 's', 't', 'd', 'b', '-', '1'}
	if !bytes.Equal(data, want) {
		t.Errorf("Marshal = %x, want %x", data, want)
	}

	back, err := Unmarshal(c, data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !bytes.Equal(back.Key, []byte("host")) || !bytes.Equal(back.Value, []byte("db-1")) {
		t.Errorf("Unmarshal = %+v", back)
	}
}

func TestFixedBytes(t *testing.T) {
	c := FixedBytes(4)

	data, err := Marshal(c, []byte{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !bytes.Equal(data, []byte{1, 2, 3, 4}) {
		t.Errorf("Marshal = %x, no prefix expected", data)
	}

	_, err = Marshal(c, []byte{1, 2, 3})
	if !stderrors.Is(err, errors.ErrInvalidEncoding) {
		t.Errorf("Marshal of 3 bytes: err = %v, want invalid_encoding", err)
	}

	_, err = Unmarshal(c, []byte{1, 2, 3})
	if !stderrors.Is(err, errors.ErrInsufficientInput) {
		t.Errorf("Unmarshal of 3 bytes: err = %v, want insufficient_input", err)
	}
}

func TestRest_ConsumesRemainder(t *testing.T) {
	c := Rest()

	buf := []byte{0x01, 0x02, 0x03}
	r := NewReader(buf)
	if err := r.Skip(1); err != nil {
		t.Fatalf("Skip failed: %v", err)
	}

	span, err := c.Decode(r)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(span, []byte{0x02, 0x03}) {
		t.Errorf("Decode = %x, want 0203", span)
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", r.Remaining())
	}

	// empty remainder is fine
	span, err = c.Decode(r)
	if err != nil {
		t.Fatalf("Decode at end failed: %v", err)
	}
	if len(span) != 0 {
		t.Errorf("Decode at end = %x, want empty", span)
	}
}

func TestRest_AsFinalField(t *testing.T) {
	type frame struct {
		Kind    uint8
		Payload []byte
	}
	c := Struct[frame](
		Field("kind", U8(), func(f *frame) *uint8 { return &f.Kind }),
		Field("payload", Rest(), func(f *frame) *[]byte { return &f.Payload }),
	)

	data, err := Marshal(c, frame{Kind: 7, Payload: []byte{0xaa, 0xbb, 0xcc}})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := []byte{0x07, 0xaa, 0xbb, 0xcc}
	if !bytes.Equal(data, want) {
		t.Errorf("Marshal = %x, want %x", data, want)
	}

	back, err := Unmarshal(c, data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.Kind != 7 || !bytes.Equal(back.Payload, []byte{0xaa, 0xbb, 0xcc}) {
		t.Errorf("Unmarshal = %+v", back)
	}
}
