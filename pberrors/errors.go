// Package pberrors defines the typed error taxonomy raised by the wire,
// buffer and codec packages. Every rejected byte stream yields one of
// these kinds rather than an opaque error string, so callers can
// errors.As/errors.Is against a specific failure the way callers of
// google.golang.org/protobuf's protowire package switch on
// protowire.ParseError.
package pberrors

import "fmt"

// Kind identifies one row of the error taxonomy from the wire-format and
// generator specification.
type Kind int

const (
	// Malformed covers varint overrun, truncated fields, invalid wire
	// types, and forbidden field numbers.
	Malformed Kind = iota
	// WireTypeMismatch means the tag's wire type disagrees with the
	// schema's expected wire type for that field number.
	WireTypeMismatch
	// UnknownField means a strict parse saw a field number absent from
	// the schema.
	UnknownField
	// DepthExceeded means nested-message recursion exceeded max_depth.
	DepthExceeded
	// SizeExceeded means a length-delimited payload exceeded max_size.
	SizeExceeded
	// IO covers underlying stream errors and short reads/writes.
	IO
	// Generator covers unresolved references, duplicate field numbers,
	// non-comparable fields named in pbj.comparable, and duplicate
	// generated artifacts.
	Generator
)

func (k Kind) String() string {
	switch k {
	case Malformed:
		return "malformed"
	case WireTypeMismatch:
		return "wire type mismatch"
	case UnknownField:
		return "unknown field"
	case DepthExceeded:
		return "depth exceeded"
	case SizeExceeded:
		return "size exceeded"
	case IO:
		return "io failure"
	case Generator:
		return "generator error"
	default:
		return "unknown error kind"
	}
}

// ParseError is the error type returned by every decode operation in
// wire, buffer and codec. Field is the dotted field path that produced
// the failure, set by Wrap; the generated Parse/ParseStrict functions do
// not call Wrap, so the errors they return carry an empty Field.
type ParseError struct {
	Kind  Kind
	Field string
	Msg   string
	cause error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Field, e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.cause }

// New constructs a ParseError with no field path and no wrapped cause.
func New(kind Kind, msg string) *ParseError {
	return &ParseError{Kind: kind, Msg: msg}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(kind Kind, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a field path to an existing ParseError, returning a new
// ParseError so the original is left untouched. If err is not a
// *ParseError it is wrapped as a Malformed error with err as its cause.
func Wrap(field string, err error) error {
	if err == nil {
		return nil
	}
	pe, ok := err.(*ParseError)
	if !ok {
		return &ParseError{Kind: Malformed, Field: field, Msg: err.Error(), cause: err}
	}
	if pe.Field != "" {
		// Innermost field path wins; an outer wrapper does not overwrite it.
		return pe
	}
	return &ParseError{Kind: pe.Kind, Field: field, Msg: pe.Msg, cause: pe.cause}
}

// IOErrorf constructs an IO-kind ParseError wrapping cause.
func IOErrorf(cause error, format string, args ...any) *ParseError {
	return &ParseError{Kind: IO, Msg: fmt.Sprintf(format, args...), cause: cause}
}

// GeneratorErrorf constructs a Generator-kind ParseError (used by the
// generator, which reuses this taxonomy rather than inventing its own).
func GeneratorErrorf(format string, args ...any) *ParseError {
	return &ParseError{Kind: Generator, Msg: fmt.Sprintf(format, args...)}
}
