// Package schema compiles TOML type definitions into runtime codecs.
//
// The codec package builds codecs in Go source, one generic constructor
// call at a time. This package builds the same codecs from data: a TOML
// file (or an inline type expression) describes the wire format, and
// Compile turns it into codec.Codec[any] values that encode and decode
// dynamically typed Go data.
//
//	┌──────────────────────────────────────────────────────────┐
//	│ schema.toml → [Load → Compile] → Schema → Codec("name") │
//	└──────────────────────────────────────────────────────────┘
//
// # Schema Files
//
// A schema is a table of named types. Each type is a record, a union,
// or an alias for a type expression:
//
//	[types.point]
//	record = [
//	  {name = "x", type = "u16be"},
//	  {name = "y", type = "u16be"},
//	]
//
//	[types.event]
//	tag = "u8"
//	union = [
//	  {tag = 1, name = "moved", type = "point"},
//	  {tag = 2, name = "named", type = "string<u8>"},
//	  {tag = 9, name = "quit"},
//	]
//
//	[types.trail]
//	alias = "list<u16be, point>"
//
// Types may reference each other by name in any order, and may recurse
// as long as an option, list, map, or union sits on the cycle.
//
// # Type Expressions
//
// Field types, alias targets, and the Expr functions share one grammar:
//
//	Expression              Wire form
//	─────────────────────────────────────────────────────────
//	bool                    one byte, 0 or 1
//	u8 u16be u32le s64be    fixed-width integer, stated order
//	f32be f64le             IEEE 754, stated order
//	uvar16le uvar32be       7-bit group varint, stated order
//	string<u8>              count prefix, then UTF-8 bytes
//	cstring                 UTF-8 bytes, NUL terminated
//	bytes<u16le>            count prefix, then raw bytes
//	rest                    all remaining bytes
//	list<u8, T>             count prefix, then count elements
//	array<4, T>             exactly 4 elements, no prefix
//	map<u8, string<u8>, T>  count prefix, then key/value pairs
//	option<T>               presence flag, then payload if present
//	tuple<A, B, C>          each element in order
//	name                    a type defined in the schema
//
// Count prefixes accept any unsigned integer type, fixed or varint.
// A rest leaf may only sit in a tail position: the final field of a
// record or tuple, or a union variant payload. It cannot appear under
// list, array, map, or option, and recursive types cannot contain it.
//
// # Dynamic Values
//
// Compiled codecs exchange dynamically typed values:
//
//	Construct         Go type
//	────────────────────────────────────────────
//	bool              bool
//	u8..u64, s8..s64  uint8..uint64, int8..int64
//	f32, f64          float32, float64
//	string, cstring   string
//	bytes, rest       []byte
//	list, array       []any
//	tuple             []any
//	map, record       map[string]any
//	option            nil, or the payload value
//	union             schema.Tagged
//
// Encoding expects exactly these types back; anything else fails with a
// type_mismatch naming the expected one.
//
// # Compilation Flow
//
//  1. Load(path) or Parse(data) → *File
//  2. Compile(file) → *Schema (validates first)
//  3. Schema.Codec("event") → codec.Codec[any]
//  4. codec.Marshal / codec.Unmarshal as usual
//
// Schema.Expr compiles a one-off expression against the schema's named
// types; the package-level Expr does the same with none in scope.
//
// # Error Handling
//
// Schema problems surface as compile-phase errors from the errors
// package, with the path naming the offending definition:
//
//	[compile] unknown_type at event.moved: type "piont" not defined
//	[compile] invalid_schema at blob: rest cannot be a list element
//
// Runtime encode and decode failures are the codec package's usual
// errors, with paths built from field names and indexes.
//
// # Thread Safety
//
// File is plain data and safe to read concurrently. Schema and every
// codec it hands out are immutable and safe for concurrent use.
package schema
