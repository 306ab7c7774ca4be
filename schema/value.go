package schema

// Tagged is the dynamic representation of a union value: the variant name
// from the schema definition plus its payload. Variants declared without
// a payload type carry nil.
//
// The remaining schema constructs map to plain Go values:
//
//	bool                  bool
//	u8/s8 .. u64/s64      uint8/int8 .. uint64/int64
//	f32/f64               float32/float64
//	uvar16/32/64          uint16/uint32/uint64
//	string, cstring       string
//	bytes, rest           []byte
//	list, array, tuple    []any
//	map                   map[string]any
//	record                map[string]any
//	option                nil or the payload value
//	union                 Tagged
//
// Encoding expects exactly these types back; anything else fails with
// type_mismatch naming the expected one.
type Tagged struct {
	Name  string
	Value any
}
