package schema

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spoolkit/spool/codec"
	"github.com/spoolkit/spool/errors"
)

// File is the TOML form of a schema: a set of named type definitions.
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
//	  {tag = 2, name = "quit"},
//	]
//
//	[types.coords]
//	alias = "list<u16be, point>"
type File struct {
	Types map[string]TypeDef `toml:"types"`
}

// TypeDef is one named type. Exactly one of Record, Union, or Alias must
// be set; Tag names the discriminant type and accompanies Union only.
type TypeDef struct {
	Record []FieldDef   `toml:"record"`
	Union  []VariantDef `toml:"union"`
	Tag    string       `toml:"tag"`
	Alias  string       `toml:"alias"`
}

// FieldDef is one record field: a name and a type expression.
type FieldDef struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

// VariantDef is one union variant. An empty Type declares a variant that
// carries no payload.
type VariantDef struct {
	Tag  uint64 `toml:"tag"`
	Name string `toml:"name"`
	Type string `toml:"type"`
}

// Validate checks the structural rules a File must satisfy before
// compilation: every type defines exactly one of record, union, or
// alias; unions carry a tag type and no one else does; field and
// variant names are present and unique; discriminants are unique.
// Type expressions are not resolved here, that happens in Compile.
func (f *File) Validate() error {
	for _, name := range sortedNames(f.Types) {
		if name == "" {
			return errors.InvalidSchema(nil, "type with an empty name")
		}
		if reserved(name) {
			return errors.InvalidSchema([]string{name}, fmt.Sprintf("%q is a builtin type name", name))
		}
		def := f.Types[name]
		forms := 0
		if len(def.Record) > 0 {
			forms++
		}
		if len(def.Union) > 0 {
			forms++
		}
		if def.Alias != "" {
			forms++
		}
		switch {
		case forms == 0:
			return errors.InvalidSchema([]string{name}, "type defines none of record, union, or alias")
		case forms > 1:
			return errors.InvalidSchema([]string{name}, "type defines more than one of record, union, or alias")
		}
		if len(def.Union) > 0 && def.Tag == "" {
			return errors.InvalidSchema([]string{name}, "union requires a tag type")
		}
		if len(def.Union) == 0 && def.Tag != "" {
			return errors.InvalidSchema([]string{name}, "tag is only valid on a union")
		}
		if err := validFields(name, def.Record); err != nil {
			return err
		}
		if err := validVariants(name, def.Union); err != nil {
			return err
		}
	}
	return nil
}

func validFields(typeName string, fields []FieldDef) error {
	seen := make(map[string]bool, len(fields))
	for _, fd := range fields {
		if fd.Name == "" {
			return errors.InvalidSchema([]string{typeName}, "record field missing a name")
		}
		if fd.Type == "" {
			return errors.InvalidSchema([]string{typeName, fd.Name}, "field missing a type")
		}
		if seen[fd.Name] {
			return errors.InvalidSchema([]string{typeName, fd.Name}, "duplicate field name")
		}
		seen[fd.Name] = true
	}
	return nil
}

func validVariants(typeName string, variants []VariantDef) error {
	names := make(map[string]bool, len(variants))
	tags := make(map[uint64]bool, len(variants))
	for _, v := range variants {
		if v.Name == "" {
			return errors.InvalidSchema([]string{typeName}, "union variant missing a name")
		}
		if names[v.Name] {
			return errors.InvalidSchema([]string{typeName, v.Name}, "duplicate variant name")
		}
		names[v.Name] = true
		if tags[v.Tag] {
			return errors.DuplicateTag(typeName, v.Tag)
		}
		tags[v.Tag] = true
	}
	return nil
}

// Compile validates a File and builds a codec for every type it defines.
func Compile(f *File) (*Schema, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return compileSchema(f.Types)
}

// Schema is a compiled set of named codecs. It is immutable and safe
// for concurrent use.
type Schema struct {
	types  map[string]codec.Codec[any]
	greedy map[string]bool
}

// Codec returns the codec compiled for a named type.
func (s *Schema) Codec(name string) (codec.Codec[any], error) {
	c, ok := s.types[name]
	if !ok {
		return nil, errors.UnknownType(nil, name)
	}
	return c, nil
}

// Types lists the schema's type names in sorted order.
func (s *Schema) Types() []string {
	return sortedNames(s.types)
}

// Expr compiles a standalone type expression that may reference the
// schema's named types.
func (s *Schema) Expr(src string) (codec.Codec[any], error) {
	c := &compiler{
		resolved: s.types,
		greedy:   s.greedy,
		building: map[string]bool{},
	}
	out, err := c.exprSrc(src, nil)
	if err != nil {
		return nil, err
	}
	return out.c, nil
}

// Expr compiles a type expression with no named types in scope, for
// one-off codecs like "list<u16be, string<u8>>".
func Expr(src string) (codec.Codec[any], error) {
	return (&Schema{}).Expr(src)
}

func sortedNames[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

// reserved reports whether a name is claimed by the expression grammar
// and therefore unavailable as a schema type name.
func reserved(name string) bool {
	if _, ok := leafFor(name); ok {
		return true
	}
	switch name {
	case "rest", "string", "bytes", "list", "array", "map", "option", "tuple":
		return true
	}
	return false
}
