package codec

import (
	"bytes"
	"strings"
	"unicode/utf8"
	"unsafe"

	"github.com/spoolkit/spool/errors"
)

// String returns a length-prefixed codec for UTF-8 text. Both directions
// validate well-formedness: encode checks the value before writing any
// bytes, decode checks the consumed span. Decode copies the text out of
// the input buffer; StringView is the zero-copy variant.
func String[L Unsigned](length Codec[L]) Codec[string] {
	return stringCodec[L]{length: length}
}

// StringView is String with a borrowing decode: the returned string
// aliases the input buffer and is valid only while the buffer lives and
// stays unmodified. Wire bytes are identical.
func StringView[L Unsigned](length Codec[L]) Codec[string] {
	return stringCodec[L]{length: length, view: true}
}

type stringCodec[L Unsigned] struct {
	length Codec[L]
	view   bool
}

func (c stringCodec[L]) Size(v string) int {
	return c.length.Size(L(len(v))) + len(v)
}

func (c stringCodec[L]) Encode(w *Writer, v string) error {
	if !utf8.ValidString(v) {
		p := v
		if len(p) > 32 {
			p = p[:32]
		}
		return errors.InvalidUTF8(errors.PhaseEncode, nil, -1, []byte(p))
	}
	if err := encodeCount(w, c.length, len(v)); err != nil {
		return err
	}
	w.WriteString(v)
	return nil
}

func (c stringCodec[L]) Decode(r *Reader) (string, error) {
	n, err := decodeCount(r, c.length)
	if err != nil {
		return "", err
	}
	off := r.off
	b, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		r.off = off
		return "", errors.InvalidUTF8(errors.PhaseDecode, nil, off, b)
	}
	if c.view {
		return unsafe.String(unsafe.SliceData(b), len(b)), nil
	}
	return string(b), nil
}

// CString returns a codec for NUL-terminated byte strings: the content
// followed by a single 0x00, no length prefix. Decode scans forward for
// the terminator and positions the cursor past it; no terminator before
// end of input fails with invalid_encoding. Encoding content that itself
// contains a NUL fails with invalid_encoding before any bytes are
// written. Content is treated as an opaque byte span, not UTF-8.
func CString() Codec[string] { return cstringCodec{} }

// CStringView is CString with a borrowing decode; the returned string
// aliases the input buffer.
func CStringView() Codec[string] { return cstringCodec{view: true} }

type cstringCodec struct{ view bool }

func (cstringCodec) Size(v string) int { return len(v) + 1 }

func (cstringCodec) Encode(w *Writer, v string) error {
	if i := strings.IndexByte(v, 0); i >= 0 {
		return errors.EmbeddedNUL(nil, i)
	}
	w.WriteString(v)
	w.Byte(0)
	return nil
}

func (c cstringCodec) Decode(r *Reader) (string, error) {
	rest := r.buf[r.off:]
	i := bytes.IndexByte(rest, 0)
	if i < 0 {
		return "", errors.MissingTerminator(nil, r.off)
	}
	b := rest[:i:i]
	r.off += i + 1
	if c.view {
		return unsafe.String(unsafe.SliceData(b), len(b)), nil
	}
	return string(b), nil
}

var _ Codec[string] = cstringCodec{}
