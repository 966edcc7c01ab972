package unmarshal

import (
	"reflect"

	"github.com/viant/jsonbind/conv"
	"github.com/viant/jsonbind/descriptor"
	"github.com/viant/jsonbind/jsonerr"
	"github.com/viant/jsonbind/scanner"
)

// member returns the member name of tok.
// name aliases scanner memory and is valid until the next token.
func (s *session) member(tok scanner.Token) ([]byte, error) {
	switch tok.Kind {
	case scanner.String:
		return s.scanner.Bytes(tok), nil
	case scanner.End:
		return nil, s.errorf(jsonerr.EndOfBuffer, tok.Start, "unexpected end of input, expected name")
	}
	return nil, s.errorf(jsonerr.NameInvalid, tok.Start, "expected name, but had %v", tok.Kind)
}

func (s *session) colon() error {
	tok, err := s.next()
	if err != nil {
		return err
	}
	switch tok.Kind {
	case scanner.Colon:
		return nil
	case scanner.End:
		return s.errorf(jsonerr.EndOfBuffer, tok.Start, "unexpected end of input, expected ':'")
	}
	return s.errorf(jsonerr.ExpectColonAfterName, tok.Start, "expected ':' at %d, but had %v", tok.Start, tok.Kind)
}

// separator reads the token after a member or element: more is set on ','.
func (s *session) separator(closing scanner.Kind) (more bool, err error) {
	tok, err := s.next()
	if err != nil {
		return false, err
	}
	switch tok.Kind {
	case scanner.Comma:
		return true, nil
	case closing:
		return false, nil
	case scanner.End:
		return false, s.errorf(jsonerr.EndOfBuffer, tok.Start, "unexpected end of input, expected ',' or %v", closing)
	}
	return false, s.errorf(jsonerr.UnexpectedTokenAfterLeftBrace, tok.Start, "expected ',' or %v, but had %v", closing, tok.Kind)
}

// first reads the first token inside a container; empty is set when it closes immediately.
func (s *session) first(closing scanner.Kind) (tok scanner.Token, empty bool, err error) {
	if tok, err = s.next(); err != nil {
		return tok, false, err
	}
	return tok, tok.Kind == closing, nil
}

// bindObject binds object members after '{' into target.
func (s *session) bindObject(shape *descriptor.Shape, target reflect.Value) error {
	desc, err := descriptor.For(shape.Base)
	if err != nil {
		return err
	}
	var holder reflect.Value
	if shape.Type.Kind() == reflect.Ptr {
		holder = allocate(shape, target).Addr()
	} else {
		holder = target.Addr()
	}
	tok, empty, err := s.first(scanner.RightBrace)
	if err != nil || empty {
		return err
	}
	for {
		name, err := s.member(tok)
		if err != nil {
			return err
		}
		namePos := tok.Start
		field := desc.LookupBytes(name)
		var unknown string
		if field == nil && s.Strict {
			unknown = string(name)
		}
		if err = s.colon(); err != nil {
			return err
		}
		if tok, err = s.value(); err != nil {
			return err
		}
		if field == nil {
			if s.Strict {
				return s.errorf(jsonerr.NameNotFoundInObject, namePos, "field %q not found in %v", unknown, shape.Base)
			}
			if err = s.skipValue(tok); err != nil {
				return err
			}
		} else {
			bound, err := s.bindField(field, holder, tok)
			if err != nil {
				return err
			}
			if bound {
				desc.MarkPresent(holder.UnsafePointer(), field)
			}
		}
		more, err := s.separator(scanner.RightBrace)
		if err != nil || !more {
			return err
		}
		if tok, err = s.next(); err != nil {
			return err
		}
	}
}

// bindField binds a member value; bound is false when a mismatch was skipped.
func (s *session) bindField(field *descriptor.Field, holder reflect.Value, tok scanner.Token) (bound bool, err error) {
	shape := field.Shape
	if tok.Kind == scanner.Null && !shape.Nullable && shape.Kind != descriptor.Dynamic {
		return true, nil
	}
	if tok.Kind.IsScalar() && shape.Kind.IsLeaf() && field.Inline() && (s.DirectAccess || !field.HasSetter()) {
		target := reflect.NewAt(field.Type, field.Addr(holder.UnsafePointer(), false)).Elem()
		ok, err := conv.Scalar(tok, s.scanner.Bytes(tok), shape, target)
		if err != nil {
			return false, jsonerr.Wrap(jsonerr.Exception, err, tok.Start, "failed to convert %v", field.Name)
		}
		if !ok {
			return false, s.mismatch(field.Name, tok, shape)
		}
		return true, nil
	}
	child := reflect.New(field.Type).Elem()
	ok, err := s.bindValue(tok, shape, child)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, s.mismatch(field.Name, tok, shape)
	}
	if err = field.Set(holder, child, s.DirectAccess); err != nil {
		return false, jsonerr.Wrap(jsonerr.Exception, err, tok.Start, "failed to set %v", field.Name)
	}
	return true, nil
}

// bindMap binds members after '{' into a Go map or an ordered map.
func (s *session) bindMap(shape *descriptor.Shape, target reflect.Value) error {
	if shape.Ordered {
		m, err := s.parseObject()
		if err != nil {
			return err
		}
		if shape.Type.Kind() == reflect.Ptr {
			target.Set(reflect.ValueOf(m))
		} else {
			target.Set(reflect.ValueOf(m).Elem())
		}
		return nil
	}
	m := reflect.MakeMap(shape.Base)
	allocate(shape, target).Set(m)
	keyType := shape.Base.Key()
	elemShape := shape.Elem()
	tok, empty, err := s.first(scanner.RightBrace)
	if err != nil || empty {
		return err
	}
	for {
		name, err := s.member(tok)
		if err != nil {
			return err
		}
		key := reflect.ValueOf(string(name)).Convert(keyType)
		if err = s.colon(); err != nil {
			return err
		}
		if tok, err = s.value(); err != nil {
			return err
		}
		child := reflect.New(elemShape.Type).Elem()
		ok, err := s.bindValue(tok, elemShape, child)
		if err != nil {
			return err
		}
		if ok {
			m.SetMapIndex(key, child)
		} else if err = s.mismatch(key.String(), tok, elemShape); err != nil {
			return err
		}
		more, err := s.separator(scanner.RightBrace)
		if err != nil || !more {
			return err
		}
		if tok, err = s.next(); err != nil {
			return err
		}
	}
}
