// Package errors provides structured error types for the spool codec runtime.
//
// Errors are categorized by Phase (which operation failed) and Kind (error
// category). The Error type includes rich context: the structural path of
// the failing field or element, the byte offset where decoding stood, the
// offending value, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInsufficientInput).
//		Path("user", "name").
//		Offset(17).
//		Detail("need 4 bytes, have 2").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ShortInput(path, 17, 4, 2)
//	err := errors.UnknownTag(path, 0, 3)
//
// All errors implement the standard error interface and support errors.Is/As.
// The exported sentinels (ErrInsufficientInput, ErrOverflow, ...) match their
// kind in any phase:
//
//	if errors.Is(err, errors.ErrInsufficientInput) { ... }
package errors
