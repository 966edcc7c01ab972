// Package value defines the untyped values produced by generic map and list binding.
package value

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// Kind identifies the variant held by a Dynamic.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindInteger
	KindDecimal
	KindBool
	KindMap
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindBool:
		return "bool"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	default:
		return "null"
	}
}

// Dynamic is a tagged union over JSON values. The zero value is null.
type Dynamic struct {
	kind    Kind
	str     string
	integer *big.Int
	decimal Decimal
	boolean bool
	object  *OrderedMap
	list    List
}

// Null returns the null value.
func Null() Dynamic { return Dynamic{} }

// FromString wraps s.
func FromString(s string) Dynamic { return Dynamic{kind: KindString, str: s} }

// FromInteger wraps an arbitrary-precision integer.
func FromInteger(i *big.Int) Dynamic {
	if i == nil {
		return Null()
	}
	return Dynamic{kind: KindInteger, integer: i}
}

// FromInt64 wraps i as an integer.
func FromInt64(i int64) Dynamic { return FromInteger(big.NewInt(i)) }

// FromDecimal wraps d.
func FromDecimal(d Decimal) Dynamic { return Dynamic{kind: KindDecimal, decimal: d} }

// FromBool wraps b.
func FromBool(b bool) Dynamic { return Dynamic{kind: KindBool, boolean: b} }

// FromMap wraps m; a nil map yields null.
func FromMap(m *OrderedMap) Dynamic {
	if m == nil {
		return Null()
	}
	return Dynamic{kind: KindMap, object: m}
}

// FromList wraps l; a nil list yields an empty list.
func FromList(l List) Dynamic {
	if l == nil {
		l = List{}
	}
	return Dynamic{kind: KindList, list: l}
}

// Of converts common Go values into a Dynamic.
func Of(v interface{}) (Dynamic, error) {
	switch actual := v.(type) {
	case nil:
		return Null(), nil
	case Dynamic:
		return actual, nil
	case string:
		return FromString(actual), nil
	case bool:
		return FromBool(actual), nil
	case int:
		return FromInt64(int64(actual)), nil
	case int32:
		return FromInt64(int64(actual)), nil
	case int64:
		return FromInt64(actual), nil
	case uint64:
		return FromInteger(new(big.Int).SetUint64(actual)), nil
	case *big.Int:
		return FromInteger(actual), nil
	case Decimal:
		return FromDecimal(actual), nil
	case float64:
		if math.IsNaN(actual) || math.IsInf(actual, 0) {
			return Null(), fmt.Errorf("unsupported float value %v", actual)
		}
		d, err := ParseDecimal(strconv.FormatFloat(actual, 'g', -1, 64))
		if err != nil {
			return Null(), err
		}
		return FromDecimal(d), nil
	case *OrderedMap:
		return FromMap(actual), nil
	case List:
		return FromList(actual), nil
	case []interface{}:
		list := make(List, 0, len(actual))
		for _, item := range actual {
			d, err := Of(item)
			if err != nil {
				return Null(), err
			}
			list = append(list, d)
		}
		return FromList(list), nil
	}
	return Null(), fmt.Errorf("unsupported dynamic value type %T", v)
}

// MustOf converts v or panics.
func MustOf(v interface{}) Dynamic {
	d, err := Of(v)
	if err != nil {
		panic(err)
	}
	return d
}

// Kind returns the held variant.
func (d Dynamic) Kind() Kind { return d.kind }

// IsNull reports whether d is null.
func (d Dynamic) IsNull() bool { return d.kind == KindNull }

func (d Dynamic) AsString() (string, bool) { return d.str, d.kind == KindString }

func (d Dynamic) AsInteger() (*big.Int, bool) { return d.integer, d.kind == KindInteger }

func (d Dynamic) AsDecimal() (Decimal, bool) { return d.decimal, d.kind == KindDecimal }

func (d Dynamic) AsBool() (bool, bool) { return d.boolean, d.kind == KindBool }

func (d Dynamic) AsMap() (*OrderedMap, bool) { return d.object, d.kind == KindMap }

func (d Dynamic) AsList() (List, bool) { return d.list, d.kind == KindList }

// Interface returns the natural Go representation: string, *big.Int, Decimal, bool, *OrderedMap, List or nil.
func (d Dynamic) Interface() interface{} {
	switch d.kind {
	case KindString:
		return d.str
	case KindInteger:
		return d.integer
	case KindDecimal:
		return d.decimal
	case KindBool:
		return d.boolean
	case KindMap:
		return d.object
	case KindList:
		return d.list
	}
	return nil
}

// Equal reports deep equality; numbers compare by value within the same kind.
func (d Dynamic) Equal(other Dynamic) bool {
	if d.kind != other.kind {
		return false
	}
	switch d.kind {
	case KindString:
		return d.str == other.str
	case KindInteger:
		return d.integer.Cmp(other.integer) == 0
	case KindDecimal:
		return d.decimal.Cmp(other.decimal) == 0
	case KindBool:
		return d.boolean == other.boolean
	case KindMap:
		return d.object.Equal(other.object)
	case KindList:
		return d.list.Equal(other.list)
	}
	return true
}

func (d Dynamic) String() string {
	switch d.kind {
	case KindString:
		return strconv.Quote(d.str)
	case KindInteger:
		return d.integer.String()
	case KindDecimal:
		return d.decimal.String()
	case KindBool:
		return strconv.FormatBool(d.boolean)
	case KindMap:
		return fmt.Sprintf("map[%d]", d.object.Len())
	case KindList:
		return fmt.Sprintf("list[%d]", len(d.list))
	}
	return "null"
}

// List is an ordered sequence of dynamic values.
type List []Dynamic

// Equal reports element-wise equality.
func (l List) Equal(other List) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if !l[i].Equal(other[i]) {
			return false
		}
	}
	return true
}
