package descriptor

import (
	"math/big"
	"reflect"
	"sync"
	"time"

	"github.com/viant/jsonbind/value"
)

var (
	bigIntType     = reflect.TypeOf(big.Int{})
	bigFloatType   = reflect.TypeOf(big.Float{})
	decimalType    = reflect.TypeOf(value.Decimal{})
	dateType       = reflect.TypeOf(value.Date{})
	timeOfDayType  = reflect.TypeOf(value.TimeOfDay{})
	timeType       = reflect.TypeOf(time.Time{})
	orderedMapType = reflect.TypeOf(value.OrderedMap{})
	dynamicType    = reflect.TypeOf(value.Dynamic{})
	enumType       = reflect.TypeOf((*Enumerator)(nil)).Elem()
)

// Shape describes how a declared type binds.
type Shape struct {
	Kind   Kind
	Scalar ScalarKind
	// Bits is the width of fixed-size numbers.
	Bits int
	// Type is the declared type, Base the type with one pointer level removed.
	Type     reflect.Type
	Base     reflect.Type
	Nullable bool
	// Ordered is set for value.OrderedMap maps.
	Ordered bool
	// Len is the fixed length of an Array.
	Len int
	// Pattern is the date pattern, Layout its Go layout; both empty for kind defaults.
	Pattern string
	Layout  string
	// Names lists enum names.
	Names []string
	elem  reflect.Type
}

var shapes sync.Map // map[reflect.Type]*Shape

// ShapeOf returns the cached shape of t.
func ShapeOf(t reflect.Type) *Shape {
	if v, ok := shapes.Load(t); ok {
		return v.(*Shape)
	}
	v, _ := shapes.LoadOrStore(t, newShape(t))
	return v.(*Shape)
}

// Elem returns the element shape of List, Array and Map kinds.
func (s *Shape) Elem() *Shape {
	if s.elem == nil {
		return nil
	}
	return ShapeOf(s.elem)
}

// ElemType returns the element type of List, Array and Map kinds.
func (s *Shape) ElemType() reflect.Type {
	return s.elem
}

// WithLayout returns a copy of s using the supplied date pattern and layout.
func (s *Shape) WithLayout(pattern, layout string) *Shape {
	ret := *s
	ret.Pattern = pattern
	ret.Layout = layout
	return &ret
}

// IsDynamic returns true when the declared type is an empty interface.
func (s *Shape) IsDynamic() bool {
	return s.Kind == Dynamic && s.Base.Kind() == reflect.Interface
}

func newShape(t reflect.Type) *Shape {
	ret := &Shape{Type: t, Base: t}
	if t.Kind() == reflect.Ptr {
		ret.Base = t.Elem()
		ret.Nullable = true
	}
	base := ret.Base
	switch base {
	case bigIntType:
		ret.Kind, ret.Scalar = Scalar, BigInt
		return ret
	case bigFloatType:
		ret.Kind, ret.Scalar = Scalar, BigFloat
		return ret
	case decimalType:
		ret.Kind, ret.Scalar = Scalar, Decimal
		return ret
	case dateType:
		ret.Kind = Date
		return ret
	case timeOfDayType:
		ret.Kind = Time
		return ret
	case timeType:
		ret.Kind = DateTime
		return ret
	case orderedMapType:
		ret.Kind, ret.Ordered, ret.elem = Map, true, dynamicType
		return ret
	case dynamicType:
		ret.Kind = Dynamic
		return ret
	}
	if isEnumBase(base.Kind()) {
		if base.Implements(enumType) {
			ret.Kind = Enum
			ret.Names = reflect.Zero(base).Interface().(Enumerator).EnumNames()
			return ret
		}
		if reflect.PointerTo(base).Implements(enumType) {
			ret.Kind = Enum
			ret.Names = reflect.New(base).Interface().(Enumerator).EnumNames()
			return ret
		}
	}
	switch base.Kind() {
	case reflect.String:
		ret.Kind = String
	case reflect.Bool:
		ret.Kind, ret.Scalar = Scalar, Bool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		ret.Kind, ret.Scalar, ret.Bits = Scalar, Int, base.Bits()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		ret.Kind, ret.Scalar, ret.Bits = Scalar, Uint, base.Bits()
	case reflect.Float32, reflect.Float64:
		ret.Kind, ret.Scalar, ret.Bits = Scalar, Float, base.Bits()
	case reflect.Slice:
		ret.Kind, ret.elem = List, base.Elem()
		ret.Nullable = true
	case reflect.Array:
		ret.Kind, ret.elem, ret.Len = Array, base.Elem(), base.Len()
	case reflect.Map:
		if base.Key().Kind() == reflect.String {
			ret.Kind, ret.elem = Map, base.Elem()
			ret.Nullable = true
		}
	case reflect.Struct:
		ret.Kind = Object
	case reflect.Interface:
		if base.NumMethod() == 0 {
			ret.Kind = Dynamic
			ret.Nullable = true
		}
	}
	if t.Kind() == reflect.Ptr && base.Kind() == reflect.Ptr {
		ret.Kind = Invalid
	}
	return ret
}

func isEnumBase(k reflect.Kind) bool {
	switch k {
	case reflect.String, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
