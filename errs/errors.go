// Package errs implements the Error Reporter: every other component in
// mshellx raises failures exclusively through the constructors here, so the
// embedder always sees one of the five typed kinds instead of an ad hoc
// error string.
package errs

import "fmt"

// Kind classifies a translation failure. There are exactly five: arity and
// type mismatches are surfaced distinctly even though both stem from the
// argument checker, because the embedder needs to tell "wrong shape" from
// "wrong count" apart.
type Kind string

const (
	// KindArity is a recognized call given the wrong number of arguments.
	KindArity Kind = "arity"
	// KindType is an argument that failed its declared type slot, or a
	// non-callable value invoked.
	KindType Kind = "type"
	// KindReference is an identifier absent from the symbol table.
	KindReference Kind = "reference"
	// KindAttribute is an attribute accessed on a recognized BSON value
	// that does not declare it.
	KindAttribute Kind = "attribute"
	// KindGeneric covers everything else: sandbox evaluation failures,
	// unsupported regex flags, malformed compile-time constants.
	KindGeneric Kind = "generic"
)

// Error is the uniform failure payload every component raises.
type Error struct {
	Kind    Kind
	Message string
	Pos     int // byte offset into the source fragment; 0 when unknown, which every caller in this module passes
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause so callers can errors.Is/As through it.
func (e *Error) Unwrap() error { return e.cause }

func newErr(kind Kind, pos int, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// Arity reports a recognized call given the wrong number of arguments.
func Arity(pos int, name string, got, lo, hi int) *Error {
	if lo == hi {
		return newErr(KindArity, pos, "%s expects %d argument(s), got %d", name, lo, got)
	}
	return newErr(KindArity, pos, "%s expects %d-%d argument(s), got %d", name, lo, hi, got)
}

// TypeMismatch reports an argument that failed its declared type slot.
func TypeMismatch(pos int, name string, index int, expected []string, observed string) *Error {
	return newErr(KindType, pos, "%s argument %d: expected one of %v, got %s", name, index, expected, observed)
}

// NotCallable reports an attempt to invoke a non-callable value.
func NotCallable(pos int, name string) *Error {
	return newErr(KindType, pos, "%s is not callable", name)
}

// Reference reports an identifier absent from the symbol table.
func Reference(pos int, name string) *Error {
	return newErr(KindReference, pos, "%q is not a recognized identifier", name)
}

// Attribute reports an attribute accessed on a recognized BSON value that
// does not declare it.
func Attribute(pos int, owner, attr string) *Error {
	return newErr(KindAttribute, pos, "%s has no attribute %q", owner, attr)
}

// Generic wraps any other failure, including sandbox evaluation failures
// and malformed compile-time constants.
func Generic(pos int, message string, cause error) *Error {
	e := newErr(KindGeneric, pos, "%s", message)
	e.cause = cause
	return e
}

// Is reports whether err is a *Error of the given kind. It checks err
// itself with a type assertion and does not unwrap a chain of errors.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
