package jsonbind

import "github.com/viant/jsonbind/jsonerr"

type (
	// Error is returned by every parse and stringify call.
	Error = jsonerr.Error
	// ErrorKind discriminates errors.
	ErrorKind = jsonerr.Kind
)

const (
	Exception                     = jsonerr.Exception
	EndOfBuffer                   = jsonerr.EndOfBuffer
	InvalidByte                   = jsonerr.InvalidByte
	NameInvalid                   = jsonerr.NameInvalid
	ExpectColonAfterName          = jsonerr.ExpectColonAfterName
	UnexpectedTokenAfterLeftBrace = jsonerr.UnexpectedTokenAfterLeftBrace
	PropertyTypeNotMatchInObject  = jsonerr.PropertyTypeNotMatchInObject
	NameNotFoundInObject          = jsonerr.NameNotFoundInObject
)

// Sentinels matching any error of their kind with errors.Is.
var (
	ErrException                     error = jsonerr.Sentinel(jsonerr.Exception)
	ErrEndOfBuffer                   error = jsonerr.Sentinel(jsonerr.EndOfBuffer)
	ErrInvalidByte                   error = jsonerr.Sentinel(jsonerr.InvalidByte)
	ErrNameInvalid                   error = jsonerr.Sentinel(jsonerr.NameInvalid)
	ErrExpectColonAfterName          error = jsonerr.Sentinel(jsonerr.ExpectColonAfterName)
	ErrUnexpectedTokenAfterLeftBrace error = jsonerr.Sentinel(jsonerr.UnexpectedTokenAfterLeftBrace)
	ErrPropertyTypeNotMatchInObject  error = jsonerr.Sentinel(jsonerr.PropertyTypeNotMatchInObject)
	ErrNameNotFoundInObject          error = jsonerr.Sentinel(jsonerr.NameNotFoundInObject)
)

// KindOf returns the kind of a codec error.
func KindOf(err error) (ErrorKind, bool) {
	return jsonerr.KindOf(err)
}
