// Package spool provides composable binary codecs for fixed-layout wire
// formats.
//
// A codec pairs an encoder and a decoder for one Go type, and compound
// codecs are built by passing codecs to constructors. The same value
// always produces the same bytes, and decoding those bytes returns the
// value unchanged.
//
// # Architecture Overview
//
// The library is organized into a small set of packages:
//
//	spool/
//	├── codec/       Codec[T] interface, leaf and compound constructors
//	├── schema/      TOML type definitions compiled to dynamic codecs
//	├── errors/      Structured error types with kind, path, and offset
//	└── cmd/inspect  CLI and TUI for decoding captures against a schema
//
// # Quick Start
//
// Compose a codec and round-trip a value:
//
//	be := binary.BigEndian
//	userCodec := codec.Struct[User](
//	    codec.Field("id", codec.U32(be), func(u *User) *uint32 { return &u.ID }),
//	    codec.Field("age", codec.U8(), func(u *User) *uint8 { return &u.Age }),
//	    codec.Field("name", codec.String(codec.U8()), func(u *User) *string { return &u.Name }),
//	)
//
//	data, err := codec.Marshal(userCodec, User{ID: 12345, Age: 30, Name: "Alice"})
//	// data = 00 00 30 39 1e 05 41 6c 69 63 65
//
//	user, err := codec.Unmarshal(userCodec, data)
//
// Or define the layout in TOML and compile it at runtime:
//
//	[types.user]
//	record = [
//	  {name = "id", type = "u32be"},
//	  {name = "age", type = "u8"},
//	  {name = "name", type = "string<u8>"},
//	]
//
//	s, err := schema.Compile(file)
//	c, err := s.Codec("user")         // codec.Codec[any]
//
// # Wire Constructs
//
// The codec package covers:
//
//   - Fixed-width integers and floats with explicit byte order
//   - Variable-length unsigned integers (7-bit groups, either group order)
//   - Length-prefixed strings, byte spans, lists, and maps
//   - NUL-terminated strings
//   - Fixed-arity arrays and tuples
//   - Optionals with a presence flag
//   - Discriminated unions keyed by an integer tag
//   - Greedy tail spans consuming the remaining input
//
// # Error Handling
//
// Failures are structured errors carrying a phase, a kind, the path into
// the value, and the byte offset:
//
//	[decode] insufficient_input at user.name (offset 6): need 5 bytes, have 2
//
// Match on kind with the errors package sentinels:
//
//	if errors.Is(err, errors.ErrInsufficientInput) { ... }
//
// # Thread Safety
//
// Codecs are immutable after construction and safe for concurrent use.
// Reader and Writer carry mutable cursors and belong to one goroutine at
// a time.
package spool
