// Package unmarshal binds JSON text into typed Go values, ordered maps and lists.
package unmarshal

import (
	"reflect"
	"sync"

	"github.com/viant/jsonbind/conv"
	"github.com/viant/jsonbind/descriptor"
	"github.com/viant/jsonbind/jsonerr"
	"github.com/viant/jsonbind/scanner"
	"github.com/viant/jsonbind/value"
)

// Engine binds JSON documents.
type Engine struct {
	// DirectAccess writes fields directly, bypassing setters.
	DirectAccess bool
	// Strict reports unknown names and type mismatches instead of skipping them.
	Strict bool
}

// New creates an engine.
func New(directAccess, strict bool) *Engine {
	return &Engine{DirectAccess: directAccess, Strict: strict}
}

type session struct {
	*Engine
	scanner *scanner.Scanner
}

var sessionPool = sync.Pool{New: func() interface{} { return &session{scanner: scanner.New(nil)} }}

func (e *Engine) session(data []byte) *session {
	s := sessionPool.Get().(*session)
	s.Engine = e
	s.scanner.Reset(data)
	return s
}

func (s *session) release() {
	s.Engine = nil
	s.scanner.Reset(nil)
	sessionPool.Put(s)
}

// Bind binds data into dest, a non-nil pointer to any supported shape.
func (e *Engine) Bind(data []byte, dest interface{}) error {
	rv := reflect.ValueOf(dest)
	if !rv.IsValid() || rv.Kind() != reflect.Ptr || rv.IsNil() {
		return jsonerr.New(jsonerr.Exception, -1, "", "destination must be a non-nil pointer, but had %T", dest)
	}
	shape := descriptor.ShapeOf(rv.Type().Elem())
	if shape.Kind == descriptor.Invalid {
		return jsonerr.New(jsonerr.Exception, -1, "", "unsupported destination type %T", dest)
	}
	s := e.session(data)
	defer s.release()
	tok, err := s.value()
	if err != nil {
		return err
	}
	ok, err := s.bindValue(tok, shape, rv.Elem())
	if err != nil {
		return err
	}
	if !ok {
		return s.errorf(jsonerr.PropertyTypeNotMatchInObject, tok.Start, "%v can not be bound to %v", tok.Kind, shape.Type)
	}
	return s.finish()
}

// BindObject binds a JSON object into dest, a non-nil pointer to a struct.
func (e *Engine) BindObject(data []byte, dest interface{}) error {
	rv := reflect.ValueOf(dest)
	if !rv.IsValid() || rv.Kind() != reflect.Ptr || rv.IsNil() {
		return jsonerr.New(jsonerr.Exception, -1, "", "destination must be a non-nil pointer, but had %T", dest)
	}
	if _, err := descriptor.For(rv.Type()); err != nil {
		return err
	}
	return e.Bind(data, dest)
}

// BindList binds a JSON array into a new slice of elem.
func (e *Engine) BindList(data []byte, elem reflect.Type) (reflect.Value, error) {
	ret := reflect.New(reflect.SliceOf(elem))
	if err := e.Bind(data, ret.Interface()); err != nil {
		return reflect.Value{}, err
	}
	return ret.Elem(), nil
}

// ParseMap parses a JSON object into an ordered map.
func (e *Engine) ParseMap(data []byte) (*value.OrderedMap, error) {
	s := e.session(data)
	defer s.release()
	tok, err := s.value()
	if err != nil {
		return nil, err
	}
	if tok.Kind != scanner.LeftBrace {
		return nil, s.errorf(jsonerr.PropertyTypeNotMatchInObject, tok.Start, "expected object, but had %v", tok.Kind)
	}
	ret, err := s.parseObject()
	if err != nil {
		return nil, err
	}
	return ret, s.finish()
}

// ParseList parses a JSON array into a dynamic list.
func (e *Engine) ParseList(data []byte) (value.List, error) {
	s := e.session(data)
	defer s.release()
	tok, err := s.value()
	if err != nil {
		return nil, err
	}
	if tok.Kind != scanner.LeftBracket {
		return nil, s.errorf(jsonerr.PropertyTypeNotMatchInObject, tok.Start, "expected array, but had %v", tok.Kind)
	}
	ret, err := s.parseArray()
	if err != nil {
		return nil, err
	}
	return ret, s.finish()
}

// Parse parses any JSON document into a dynamic value.
func (e *Engine) Parse(data []byte) (value.Dynamic, error) {
	s := e.session(data)
	defer s.release()
	tok, err := s.value()
	if err != nil {
		return value.Null(), err
	}
	ret, err := s.parseDynamic(tok)
	if err != nil {
		return value.Null(), err
	}
	return ret, s.finish()
}

func (s *session) next() (scanner.Token, error) {
	return s.scanner.Next()
}

// value reads the next token, which must start a value.
func (s *session) value() (scanner.Token, error) {
	tok, err := s.scanner.Next()
	if err != nil {
		return tok, err
	}
	return tok, s.valueAt(tok)
}

// valueAt checks that tok starts a value.
func (s *session) valueAt(tok scanner.Token) error {
	switch tok.Kind {
	case scanner.End:
		return s.errorf(jsonerr.EndOfBuffer, tok.Start, "unexpected end of input, expected value")
	case scanner.RightBrace, scanner.RightBracket, scanner.Colon, scanner.Comma:
		return s.errorf(jsonerr.InvalidByte, tok.Start, "unexpected %v, expected value", tok.Kind)
	}
	return nil
}

func (s *session) finish() error {
	tok, err := s.next()
	if err != nil {
		return err
	}
	if tok.Kind != scanner.End {
		return s.errorf(jsonerr.UnexpectedTokenAfterLeftBrace, tok.Start, "unexpected %v after top-level value", tok.Kind)
	}
	return nil
}

func (s *session) errorf(kind jsonerr.Kind, pos int, format string, args ...interface{}) error {
	return jsonerr.New(kind, pos, s.scanner.Excerpt(pos), format, args...)
}

func (s *session) mismatch(name string, tok scanner.Token, shape *descriptor.Shape) error {
	if !s.Strict {
		return nil
	}
	return s.errorf(jsonerr.PropertyTypeNotMatchInObject, tok.Start, "%v: %v can not be bound to %v", name, tok.Kind, shape.Type)
}

// bindValue binds the value starting with tok into target, a settable value of shape.Type.
// ok is false when the value did not fit the shape; the value is consumed either way.
func (s *session) bindValue(tok scanner.Token, shape *descriptor.Shape, target reflect.Value) (bool, error) {
	switch tok.Kind {
	case scanner.LeftBrace:
		switch shape.Kind {
		case descriptor.Object:
			return true, s.bindObject(shape, target)
		case descriptor.Map:
			return true, s.bindMap(shape, target)
		case descriptor.Dynamic:
			m, err := s.parseObject()
			if err != nil {
				return false, err
			}
			s.setDynamic(shape, target, value.FromMap(m))
			return true, nil
		}
		return false, s.skipObject()
	case scanner.LeftBracket:
		switch shape.Kind {
		case descriptor.List:
			return true, s.bindList(shape, target)
		case descriptor.Array:
			return true, s.bindArray(shape, target)
		case descriptor.Dynamic:
			l, err := s.parseArray()
			if err != nil {
				return false, err
			}
			s.setDynamic(shape, target, value.FromList(l))
			return true, nil
		}
		return false, s.skipArray()
	}
	ok, err := conv.Scalar(tok, s.scanner.Bytes(tok), shape, target)
	if err != nil {
		return false, jsonerr.Wrap(jsonerr.Exception, err, tok.Start, "failed to convert %v", tok.Kind)
	}
	return ok, nil
}

func (s *session) setDynamic(shape *descriptor.Shape, target reflect.Value, d value.Dynamic) {
	if shape.IsDynamic() {
		target.Set(reflect.ValueOf(d.Interface()))
		return
	}
	if shape.Type.Kind() == reflect.Ptr {
		target.Set(reflect.ValueOf(&d))
		return
	}
	target.Set(reflect.ValueOf(d))
}

// allocate returns the settable base value of target, allocating nil pointers.
func allocate(shape *descriptor.Shape, target reflect.Value) reflect.Value {
	if shape.Type.Kind() != reflect.Ptr {
		return target
	}
	if target.IsNil() {
		target.Set(reflect.New(shape.Base))
	}
	return target.Elem()
}
