package unmarshal

import (
	"reflect"
	"strconv"

	"github.com/viant/jsonbind/descriptor"
	"github.com/viant/jsonbind/scanner"
)

// bindList binds elements after '[' into a new slice.
func (s *session) bindList(shape *descriptor.Shape, target reflect.Value) error {
	elemShape := shape.Elem()
	slice := reflect.MakeSlice(shape.Base, 0, 4)
	tok, empty, err := s.first(scanner.RightBracket)
	if err != nil {
		return err
	}
	for !empty {
		if err = s.valueAt(tok); err != nil {
			return err
		}
		child := reflect.New(elemShape.Type).Elem()
		ok, err := s.bindValue(tok, elemShape, child)
		if err != nil {
			return err
		}
		if ok {
			slice = reflect.Append(slice, child)
		} else if err = s.mismatch("["+strconv.Itoa(slice.Len())+"]", tok, elemShape); err != nil {
			return err
		}
		more, err := s.separator(scanner.RightBracket)
		if err != nil {
			return err
		}
		if !more {
			break
		}
		if tok, err = s.next(); err != nil {
			return err
		}
	}
	allocate(shape, target).Set(slice)
	return nil
}

// bindArray binds elements after '[' into a fixed size array; surplus elements do not fit.
func (s *session) bindArray(shape *descriptor.Shape, target reflect.Value) error {
	elemShape := shape.Elem()
	array := allocate(shape, target)
	tok, empty, err := s.first(scanner.RightBracket)
	if err != nil || empty {
		return err
	}
	for i := 0; ; i++ {
		if err = s.valueAt(tok); err != nil {
			return err
		}
		if i >= shape.Len {
			if err = s.skipValue(tok); err != nil {
				return err
			}
			if err = s.mismatch("["+strconv.Itoa(i)+"]", tok, elemShape); err != nil {
				return err
			}
		} else {
			child := reflect.New(elemShape.Type).Elem()
			ok, err := s.bindValue(tok, elemShape, child)
			if err != nil {
				return err
			}
			if ok {
				array.Index(i).Set(child)
			} else if err = s.mismatch("["+strconv.Itoa(i)+"]", tok, elemShape); err != nil {
				return err
			}
		}
		more, err := s.separator(scanner.RightBracket)
		if err != nil || !more {
			return err
		}
		if tok, err = s.next(); err != nil {
			return err
		}
	}
}
