// Package jsonerr defines the error kinds reported by the scanner, binder and generator.
package jsonerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is a stable error discriminant.
type Kind int

const (
	// Exception wraps a conversion or construction failure.
	Exception Kind = iota
	// EndOfBuffer reports input that ended inside a token or structure.
	EndOfBuffer
	// InvalidByte reports a byte the scanner cannot classify.
	InvalidByte
	// NameInvalid reports a non-string token in a field name position.
	NameInvalid
	// ExpectColonAfterName reports a missing ':' after a field name.
	ExpectColonAfterName
	// UnexpectedTokenAfterLeftBrace reports malformed object or array syntax.
	UnexpectedTokenAfterLeftBrace
	// PropertyTypeNotMatchInObject reports a value whose shape does not fit the destination field.
	PropertyTypeNotMatchInObject
	// NameNotFoundInObject reports a field missing from the destination type.
	NameNotFoundInObject
)

func (k Kind) String() string {
	switch k {
	case EndOfBuffer:
		return "EndOfBuffer"
	case InvalidByte:
		return "InvalidByte"
	case NameInvalid:
		return "NameInvalid"
	case ExpectColonAfterName:
		return "ExpectColonAfterName"
	case UnexpectedTokenAfterLeftBrace:
		return "UnexpectedTokenAfterLeftBrace"
	case PropertyTypeNotMatchInObject:
		return "PropertyTypeNotMatchInObject"
	case NameNotFoundInObject:
		return "NameNotFoundInObject"
	default:
		return "Exception"
	}
}

// Error is returned by every codec operation.
type Error struct {
	Kind    Kind
	Message string
	// Offset is the byte position in the input, -1 when unknown.
	Offset  int
	Excerpt string
	Err     error
}

func (e *Error) Error() string {
	b := strings.Builder{}
	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Offset >= 0 {
		fmt.Fprintf(&b, " at %d", e.Offset)
	}
	if e.Excerpt != "" {
		b.WriteString(" near ")
		b.WriteString(fmt.Sprintf("%q", e.Excerpt))
	}
	if e.Err != nil && !strings.Contains(e.Message, e.Err.Error()) {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by kind, so sentinels such as Sentinel(NameNotFoundInObject) work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

// New creates an error at offset with an optional input excerpt.
func New(kind Kind, offset int, excerpt string, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Offset: offset, Excerpt: excerpt, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps cause as kind, keeping an existing *Error untouched.
func Wrap(kind Kind, cause error, offset int, format string, args ...interface{}) error {
	if cause == nil {
		return nil
	}
	var existing *Error
	if errors.As(cause, &existing) {
		return cause
	}
	return &Error{Kind: kind, Offset: offset, Message: fmt.Sprintf(format, args...), Err: cause}
}

// Sentinel returns a kind-only error usable as errors.Is target.
func Sentinel(kind Kind) *Error {
	return &Error{Kind: kind, Offset: -1}
}

// KindOf returns the kind of err, false when err is not produced by the codec.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return Exception, false
}
