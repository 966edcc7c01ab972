package jsonbind

import (
	"reflect"

	"github.com/viant/jsonbind/marshal"
	"github.com/viant/jsonbind/unmarshal"
	"github.com/viant/jsonbind/value"
)

var (
	defaultUnmarshalEngine = unmarshal.New(false, false)
	defaultMarshalEngine   = marshal.New(false, false, false)
)

func unmarshalEngine(opts []Option) *unmarshal.Engine {
	if len(opts) == 0 {
		return defaultUnmarshalEngine
	}
	o := NewOptions(opts...)
	return unmarshal.New(o.DirectAccess, o.Strict)
}

func marshalEngine(opts []Option) *marshal.Engine {
	if len(opts) == 0 {
		return defaultMarshalEngine
	}
	o := NewOptions(opts...)
	return marshal.New(o.DirectAccess, o.Pretty, o.Nullable)
}

// ParseInto parses data into a new T.
func ParseInto[T any](data []byte, opts ...Option) (T, error) {
	var ret T
	err := unmarshalEngine(opts).Bind(data, &ret)
	return ret, err
}

// Bind parses a JSON object into dest, a non-nil pointer to a struct.
func Bind(data []byte, dest interface{}, opts ...Option) error {
	return unmarshalEngine(opts).BindObject(data, dest)
}

// BindList parses a JSON array into a new slice of elem.
func BindList(data []byte, elem reflect.Type, opts ...Option) (interface{}, error) {
	ret, err := unmarshalEngine(opts).BindList(data, elem)
	if err != nil {
		return nil, err
	}
	return ret.Interface(), nil
}

// ParseToMap parses a JSON object into an ordered map.
func ParseToMap(data []byte, opts ...Option) (*value.OrderedMap, error) {
	return unmarshalEngine(opts).ParseMap(data)
}

// ParseToList parses a JSON array into a dynamic list.
func ParseToList(data []byte, opts ...Option) (value.List, error) {
	return unmarshalEngine(opts).ParseList(data)
}

// Parse parses any JSON document into a dynamic value.
func Parse(data []byte, opts ...Option) (value.Dynamic, error) {
	return unmarshalEngine(opts).Parse(data)
}

// Stringify returns the JSON text of v.
func Stringify(v interface{}, opts ...Option) (string, error) {
	return marshalEngine(opts).String(v)
}

// Marshal returns the JSON text of v.
func Marshal(v interface{}, opts ...Option) ([]byte, error) {
	return marshalEngine(opts).Marshal(v)
}
