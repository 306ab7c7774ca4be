package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which operation the error occurred in
type Phase string

const (
	PhaseEncode  Phase = "encode"  // value to bytes
	PhaseDecode  Phase = "decode"  // bytes to value
	PhaseCompile Phase = "compile" // codec construction from a schema
)

// Kind categorizes the error
type Kind string

const (
	KindInsufficientInput     Kind = "insufficient_input"
	KindInvalidEncoding       Kind = "invalid_encoding"
	KindOverflow              Kind = "overflow"
	KindUnknownDiscriminant   Kind = "unknown_discriminant"
	KindTypeMismatch          Kind = "type_mismatch"
	KindDuplicateDiscriminant Kind = "duplicate_discriminant"
	KindUnknownType           Kind = "unknown_type"
	KindInvalidSchema         Kind = "invalid_schema"
)

// Sentinels for errors.Is matching. Phase is left empty so each sentinel
// matches its kind in any phase. Comparison targets only; never returned.
var (
	ErrInsufficientInput   = &Error{Kind: KindInsufficientInput, Offset: -1}
	ErrInvalidEncoding     = &Error{Kind: KindInvalidEncoding, Offset: -1}
	ErrOverflow            = &Error{Kind: KindOverflow, Offset: -1}
	ErrUnknownDiscriminant = &Error{Kind: KindUnknownDiscriminant, Offset: -1}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
	Offset int // byte offset into the input buffer; -1 when not applicable
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(JoinPath(e.Path))
	}

	if e.Offset >= 0 {
		b.WriteString(" (offset ")
		fmt.Fprintf(&b, "%d", e.Offset)
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target with an empty
// Phase matches the kind in any phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && e.Phase != t.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// JoinPath renders a structural path: field segments joined with dots,
// index segments ("[3]") attached to the preceding segment.
func JoinPath(path []string) string {
	var b strings.Builder
	for i, seg := range path {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: -1,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Offset sets the byte offset in the input buffer
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Prefix prepends a path segment to a structured error, attributing a
// failure inside a composite codec to the enclosing field or element.
// Non-structured errors pass through unchanged.
func Prefix(err error, segment string) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}
	e.Path = append([]string{segment}, e.Path...)
	return e
}

// Convenience constructors for common error patterns

// ShortInput creates an insufficient-input error for a decode that ran
// out of buffer.
func ShortInput(path []string, offset, need, have int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInsufficientInput,
		Path:   path,
		Offset: offset,
		Detail: fmt.Sprintf("need %d bytes, have %d", need, have),
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, path []string, offset int, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidEncoding,
		Path:   path,
		Offset: offset,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// VarintOverflow creates an overflow error for a variable-length integer
// that exceeds its target width.
func VarintOverflow(path []string, offset, bits int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindOverflow,
		Path:   path,
		Offset: offset,
		Detail: fmt.Sprintf("varint exceeds %d bits", bits),
	}
}

// LengthOverflow creates an overflow error for an element count that does
// not fit the length codec's integer width.
func LengthOverflow(path []string, count, max uint64) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindOverflow,
		Path:   path,
		Offset: -1,
		Detail: fmt.Sprintf("count %d exceeds length codec range (max %d)", count, max),
		Value:  count,
	}
}

// UnknownTag creates an unknown-discriminant error carrying the raw tag.
func UnknownTag(path []string, offset int, tag uint64) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnknownDiscriminant,
		Path:   path,
		Offset: offset,
		Detail: fmt.Sprintf("no variant for discriminant %d", tag),
		Value:  tag,
	}
}

// NoVariant creates an unknown-discriminant error for an encode value
// that matches no registered variant.
func NoVariant(path []string, goType string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindUnknownDiscriminant,
		Path:   path,
		Offset: -1,
		Detail: fmt.Sprintf("no variant matches value of type %s", goType),
	}
}

// MissingTerminator creates an invalid-encoding error for a C-string with
// no NUL before end of input.
func MissingTerminator(path []string, offset int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidEncoding,
		Path:   path,
		Offset: offset,
		Detail: "no NUL terminator before end of input",
	}
}

// EmbeddedNUL creates an invalid-encoding error for C-string content
// containing a zero byte.
func EmbeddedNUL(path []string, index int) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindInvalidEncoding,
		Path:   path,
		Offset: -1,
		Detail: fmt.Sprintf("embedded NUL at byte %d", index),
	}
}

// LengthMismatch creates an invalid-encoding error for a value whose
// length differs from a codec's fixed arity.
func LengthMismatch(path []string, got, want int) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindInvalidEncoding,
		Path:   path,
		Offset: -1,
		Detail: fmt.Sprintf("length %d, want exactly %d", got, want),
		Value:  got,
	}
}

// NilValue creates an invalid-encoding error for a nil value given to a
// codec that requires a present one.
func NilValue(path []string, goType string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindInvalidEncoding,
		Path:   path,
		Offset: -1,
		Detail: fmt.Sprintf("nil %s", goType),
	}
}

// FieldMissing creates an invalid-encoding error for a record value
// lacking a required field.
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidEncoding,
		Path:   path,
		Offset: -1,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// TrailingBytes creates an invalid-encoding error for input left over
// after a complete top-level decode.
func TrailingBytes(offset, n int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidEncoding,
		Offset: offset,
		Detail: fmt.Sprintf("%d trailing bytes after value", n),
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, want string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		Offset: -1,
		Detail: fmt.Sprintf("have %s, want %s", goType, want),
	}
}

// DuplicateTag creates a duplicate-discriminant construction error.
func DuplicateTag(typeName string, tag uint64) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindDuplicateDiscriminant,
		Offset: -1,
		Detail: fmt.Sprintf("discriminant %d bound twice in %s", tag, typeName),
		Value:  tag,
	}
}

// UnknownType creates an unresolved type reference error.
func UnknownType(path []string, name string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindUnknownType,
		Path:   path,
		Offset: -1,
		Detail: fmt.Sprintf("type %q not defined", name),
	}
}

// InvalidSchema creates a malformed schema definition error.
func InvalidSchema(path []string, detail string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindInvalidSchema,
		Path:   path,
		Offset: -1,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Offset: -1,
		Detail: detail,
		Cause:  cause,
	}
}
