// Package codec is a composable binary codec runtime: descriptors that
// convert typed in-memory values to and from exact byte sequences.
//
// Every descriptor implements Codec[T] with three operations: Size reports
// the exact number of bytes Encode will produce, Encode appends them to a
// Writer, and Decode reads them back through a Reader cursor. Descriptors
// compose structurally: a codec for a record is built from codecs for its
// fields, a codec for a list from its element and length codecs.
//
//	point := codec.Struct[Point](
//		codec.Field("x", codec.U32(binary.BigEndian), func(p *Point) *uint32 { return &p.X }),
//		codec.Field("y", codec.U32(binary.BigEndian), func(p *Point) *uint32 { return &p.Y }),
//	)
//	path := codec.List(codec.Uvarint32(binary.LittleEndian), point)
//
//	data, err := codec.Marshal(path, pts)
//	back, err := codec.Unmarshal(path, data)
//
// # Byte order
//
// Byte order is a property of the codec, not the value: the same uint32
// field can travel big- or little-endian depending on which descriptor
// encodes it. Fixed-width codecs accept any binary.ByteOrder; varint
// codecs accept exactly binary.BigEndian or binary.LittleEndian, which
// select most-significant-group-first or least-significant-group-first
// emission.
//
// # Zero-copy decoding
//
// Bytes, StringView, CStringView, and Rest return views into the input
// buffer instead of copying. A view is valid only while the buffer lives
// and stays unmodified; use BytesCopy, String, and CString when the value
// must outlive the input. Wire bytes are identical either way.
//
// # Errors
//
// All failures are structured errors from the errors package, carrying
// the operation phase, a kind (insufficient_input, invalid_encoding,
// overflow, unknown_discriminant), the structural path to the failing
// field or element, and the byte offset where decoding stood. The first
// failure aborts the whole operation; no partial values are returned.
// A failed decode leaves the Reader positioned at the start of the first
// datum that could not be decoded; earlier fields keep their advancement.
//
// # Concurrency
//
// Descriptors are immutable after construction and safe for concurrent
// use. Readers and Writers belong to a single call and must not be
// shared.
package codec
