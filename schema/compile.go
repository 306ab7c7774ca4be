package schema

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/spoolkit/spool/codec"
	"github.com/spoolkit/spool/errors"
)

// compiled pairs a built codec with whether its wire form is greedy,
// meaning a rest leaf sits in its tail position and the codec consumes
// all remaining input when decoded.
type compiled struct {
	c      codec.Codec[any]
	greedy bool
}

type compiler struct {
	defs     map[string]TypeDef
	resolved map[string]codec.Codec[any]
	greedy   map[string]bool
	// building tracks types whose compilation is on the stack. The value
	// records whether a guard has been crossed since that build began; a
	// back reference is only legal once it has.
	building map[string]bool
	deferred []func() error
}

func compileSchema(defs map[string]TypeDef) (*Schema, error) {
	c := &compiler{
		defs:     defs,
		resolved: map[string]codec.Codec[any]{},
		greedy:   map[string]bool{},
		building: map[string]bool{},
	}
	for _, name := range sortedNames(defs) {
		if _, err := c.named(name, nil); err != nil {
			return nil, err
		}
	}
	for _, check := range c.deferred {
		if err := check(); err != nil {
			return nil, err
		}
	}
	return &Schema{types: c.resolved, greedy: c.greedy}, nil
}

// named resolves a reference to a schema-defined type, compiling it on
// first use. A reference back into a type still being compiled becomes a
// lazy codec, provided a guard sits between that type and the reference;
// without one the type would have no finite wire form.
func (c *compiler) named(name string, path []string) (compiled, error) {
	if built, ok := c.resolved[name]; ok {
		return compiled{c: built, greedy: c.greedy[name]}, nil
	}
	if crossed, inProgress := c.building[name]; inProgress {
		if !crossed {
			return compiled{}, errors.InvalidSchema(path, fmt.Sprintf("type %q recurses without an option, list, map, or union in between", name))
		}
		// Whether the cycle is greedy is unknown until the whole type
		// resolves, so the check runs after compilation finishes.
		c.deferred = append(c.deferred, func() error {
			if c.greedy[name] {
				return errors.InvalidSchema(path, fmt.Sprintf("recursive type %q cannot contain rest", name))
			}
			return nil
		})
		return compiled{c: codec.Lazy(func() codec.Codec[any] { return c.resolved[name] })}, nil
	}
	def, ok := c.defs[name]
	if !ok {
		return compiled{}, errors.UnknownType(path, name)
	}
	c.building[name] = false
	defer func() { delete(c.building, name) }()
	out, err := c.typeDef(name, def)
	if err != nil {
		return compiled{}, err
	}
	c.resolved[name] = out.c
	c.greedy[name] = out.greedy
	Logger().Debug("compiled schema type", zap.String("type", name))
	return out, nil
}

// guard runs f with every in-progress type marked as guarded. Lists,
// maps, options, and union payloads qualify: their decoders consult the
// wire before recursing, so a self reference behind one terminates.
// Arrays do not, since a fixed arity forces the recursion unconditionally.
func (c *compiler) guard(f func() (compiled, error)) (compiled, error) {
	prev := c.building
	next := make(map[string]bool, len(prev))
	for name := range prev {
		next[name] = true
	}
	c.building = next
	out, err := f()
	c.building = prev
	return out, err
}

func (c *compiler) typeDef(name string, def TypeDef) (compiled, error) {
	switch {
	case def.Alias != "":
		return c.exprSrc(def.Alias, []string{name})
	case len(def.Record) > 0:
		return c.record(name, def.Record)
	case len(def.Union) > 0:
		return c.union(name, def)
	default:
		return compiled{}, errors.InvalidSchema([]string{name}, "type defines none of record, union, or alias")
	}
}

func (c *compiler) record(name string, fields []FieldDef) (compiled, error) {
	fs := make([]dynField, len(fields))
	greedy := false
	for i, f := range fields {
		if greedy {
			return compiled{}, errors.InvalidSchema([]string{name, f.Name}, "only the final field may consume the rest of the input")
		}
		fc, err := c.exprSrc(f.Type, []string{name, f.Name})
		if err != nil {
			return compiled{}, err
		}
		fs[i] = dynField{name: f.Name, c: fc.c}
		greedy = fc.greedy
	}
	return compiled{c: recordCodec{fields: fs}, greedy: greedy}, nil
}

func (c *compiler) union(name string, def TypeDef) (compiled, error) {
	lc, err := lengthExpr(def.Tag, []string{name})
	if err != nil {
		return compiled{}, err
	}
	cases := make([]codec.UnionCase[Tagged], len(def.Union))
	greedy := false
	for i, v := range def.Union {
		if v.Tag > lc.maxCount() {
			return compiled{}, errors.InvalidSchema([]string{name, v.Name}, fmt.Sprintf("discriminant %d exceeds the %s tag range (max %d)", v.Tag, def.Tag, lc.maxCount()))
		}
		payload := codec.Codec[any](unitAny{})
		if v.Type != "" {
			pc, err := c.guard(func() (compiled, error) {
				return c.exprSrc(v.Type, []string{name, v.Name})
			})
			if err != nil {
				return compiled{}, err
			}
			payload = pc.c
			greedy = greedy || pc.greedy
		}
		vname := v.Name
		cases[i] = codec.Case(v.Tag, payload,
			func(p any) Tagged { return Tagged{Name: vname, Value: p} },
			func(t Tagged) (any, bool) { return t.Value, t.Name == vname })
	}
	return compiled{c: adapt(lc.buildUnion(cases), "schema.Tagged"), greedy: greedy}, nil
}

func (c *compiler) exprSrc(src string, path []string) (compiled, error) {
	e, err := parseTypeExpr(src)
	if err != nil {
		return compiled{}, attachPath(err, path)
	}
	return c.expr(e, path)
}

func (c *compiler) expr(e typeExpr, path []string) (compiled, error) {
	if e.lit {
		return compiled{}, errors.InvalidSchema(path, fmt.Sprintf("unexpected integer %d, want a type", e.num))
	}
	if len(e.args) == 0 {
		if e.name == "rest" {
			return compiled{c: adapt(codec.RestCopy(), "[]byte"), greedy: true}, nil
		}
		if leaf, ok := leafFor(e.name); ok {
			return compiled{c: leaf}, nil
		}
		switch e.name {
		case "string", "bytes", "list", "array", "map", "option", "tuple":
			return compiled{}, errors.InvalidSchema(path, fmt.Sprintf("%s requires type arguments", e.name))
		}
		return c.named(e.name, path)
	}
	switch e.name {
	case "string":
		lc, err := oneLength(e, path)
		if err != nil {
			return compiled{}, err
		}
		return compiled{c: adapt(lc.buildString(), "string")}, nil
	case "bytes":
		lc, err := oneLength(e, path)
		if err != nil {
			return compiled{}, err
		}
		return compiled{c: adapt(lc.buildBytes(), "[]byte")}, nil
	case "list":
		if err := arity(path, e, 2); err != nil {
			return compiled{}, err
		}
		lc, err := lengthArg(e.args[0], path)
		if err != nil {
			return compiled{}, err
		}
		elem, err := c.guard(func() (compiled, error) {
			return c.expr(e.args[1], child(path, "[elem]"))
		})
		if err != nil {
			return compiled{}, err
		}
		if elem.greedy {
			return compiled{}, errors.InvalidSchema(path, "rest cannot be a list element")
		}
		return compiled{c: lc.buildList(elem.c)}, nil
	case "array":
		if err := arity(path, e, 2); err != nil {
			return compiled{}, err
		}
		if !e.args[0].lit {
			return compiled{}, errors.InvalidSchema(path, fmt.Sprintf("array arity must be an integer, got %q", e.args[0].String()))
		}
		if e.args[0].num > math.MaxInt32 {
			return compiled{}, errors.InvalidSchema(path, fmt.Sprintf("array arity %d is out of range", e.args[0].num))
		}
		elem, err := c.expr(e.args[1], child(path, "[elem]"))
		if err != nil {
			return compiled{}, err
		}
		if elem.greedy {
			return compiled{}, errors.InvalidSchema(path, "rest cannot be an array element")
		}
		return compiled{c: adapt(codec.Array(int(e.args[0].num), elem.c), "[]any")}, nil
	case "map":
		if err := arity(path, e, 3); err != nil {
			return compiled{}, err
		}
		lc, err := lengthArg(e.args[0], path)
		if err != nil {
			return compiled{}, err
		}
		key, err := keyArg(e.args[1], child(path, "[key]"))
		if err != nil {
			return compiled{}, err
		}
		val, err := c.guard(func() (compiled, error) {
			return c.expr(e.args[2], child(path, "[val]"))
		})
		if err != nil {
			return compiled{}, err
		}
		if val.greedy {
			return compiled{}, errors.InvalidSchema(path, "rest cannot be a map value")
		}
		return compiled{c: lc.buildMap(key, val.c)}, nil
	case "option":
		if err := arity(path, e, 1); err != nil {
			return compiled{}, err
		}
		payload, err := c.guard(func() (compiled, error) {
			return c.expr(e.args[0], child(path, "[some]"))
		})
		if err != nil {
			return compiled{}, err
		}
		if payload.greedy {
			return compiled{}, errors.InvalidSchema(path, "rest cannot be an option payload")
		}
		// nil marks absence, so a nested option would make the absent
		// inner value indistinguishable from an absent outer one.
		if _, ok := payload.c.(optionCodec); ok {
			return compiled{}, errors.InvalidSchema(path, "option of option cannot be represented; wrap the inner option in a record")
		}
		return compiled{c: optionCodec{payload: payload.c}}, nil
	case "tuple":
		elems := make([]codec.Codec[any], len(e.args))
		greedy := false
		for i, a := range e.args {
			if greedy {
				return compiled{}, errors.InvalidSchema(path, "only the final element may consume the rest of the input")
			}
			el, err := c.expr(a, child(path, fmt.Sprintf("[%d]", i)))
			if err != nil {
				return compiled{}, err
			}
			elems[i] = el.c
			greedy = el.greedy
		}
		return compiled{c: tupleCodec{elems: elems}, greedy: greedy}, nil
	default:
		return compiled{}, errors.InvalidSchema(path, fmt.Sprintf("unknown type constructor %q", e.name))
	}
}

func oneLength(e typeExpr, path []string) (lengthCodec, error) {
	if err := arity(path, e, 1); err != nil {
		return nil, err
	}
	return lengthArg(e.args[0], path)
}

func lengthArg(e typeExpr, path []string) (lengthCodec, error) {
	if !e.lit && len(e.args) == 0 {
		if lc, ok := lengthFor(e.name); ok {
			return lc, nil
		}
	}
	return nil, errors.InvalidSchema(path, fmt.Sprintf("%q cannot carry a count, want an unsigned integer type", e.String()))
}

func keyArg(e typeExpr, path []string) (codec.Codec[string], error) {
	if !e.lit {
		if e.name == "cstring" && len(e.args) == 0 {
			return codec.CString(), nil
		}
		if e.name == "string" {
			lc, err := oneLength(e, path)
			if err != nil {
				return nil, err
			}
			return lc.buildString(), nil
		}
	}
	return nil, errors.InvalidSchema(path, fmt.Sprintf("map key must be string or cstring, got %q", e.String()))
}

// lengthExpr parses a source string that must name an unsigned integer
// type, as union tag declarations do.
func lengthExpr(src string, path []string) (lengthCodec, error) {
	e, err := parseTypeExpr(src)
	if err != nil {
		return nil, attachPath(err, path)
	}
	return lengthArg(e, path)
}

func arity(path []string, e typeExpr, want int) error {
	if len(e.args) != want {
		return errors.InvalidSchema(path, fmt.Sprintf("%s takes %d type arguments, got %d", e.name, want, len(e.args)))
	}
	return nil
}

func child(path []string, seg string) []string {
	return append(append(make([]string, 0, len(path)+1), path...), seg)
}

// attachPath fills in the schema location on parse errors, which are
// produced without one.
func attachPath(err error, path []string) error {
	if e, ok := err.(*errors.Error); ok && len(e.Path) == 0 {
		e.Path = path
	}
	return err
}
