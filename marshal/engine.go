// Package marshal serializes structs, ordered maps, lists and Go collections to JSON text.
package marshal

import (
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"unsafe"

	"github.com/viant/jsonbind/buffer"
	"github.com/viant/jsonbind/conv"
	"github.com/viant/jsonbind/descriptor"
	"github.com/viant/jsonbind/jsonerr"
	"github.com/viant/jsonbind/value"
	"github.com/viant/xunsafe"
)

// Engine generates JSON text.
type Engine struct {
	// DirectAccess reads fields directly, bypassing getters.
	DirectAccess bool
	// Pretty emits one member per line, indented with tabs.
	Pretty bool
	// Nullable emits absent fields as null instead of omitting them.
	Nullable bool
}

// New creates an engine.
func New(directAccess, pretty, nullable bool) *Engine {
	return &Engine{DirectAccess: directAccess, Pretty: pretty, Nullable: nullable}
}

// Marshal returns the JSON text of v.
func (e *Engine) Marshal(v interface{}) ([]byte, error) {
	buf := buffer.Get()
	defer buffer.Put(buf)
	if err := e.MarshalTo(buf, v); err != nil {
		return nil, err
	}
	ret := make([]byte, buf.Len())
	copy(ret, buf.Bytes())
	return ret, nil
}

// MarshalTo appends the JSON text of v to buf; on error buf is reset.
func (e *Engine) MarshalTo(buf *buffer.Buffer, v interface{}) error {
	if v == nil {
		_, _ = buf.WriteString("null")
		return nil
	}
	rv := reflect.ValueOf(v)
	err := e.writeValue(buf, rv, descriptor.ShapeOf(rv.Type()), 0)
	if err != nil {
		buf.Reset()
	}
	return err
}

func (e *Engine) writeValue(buf *buffer.Buffer, rv reflect.Value, shape *descriptor.Shape, depth int) error {
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			_, _ = buf.WriteString("null")
			return nil
		}
		rv = rv.Elem()
		return e.writeValue(buf, rv, descriptor.ShapeOf(rv.Type()), depth)
	case reflect.Ptr:
		if rv.IsNil() {
			_, _ = buf.WriteString("null")
			return nil
		}
		rv = rv.Elem()
	}
	switch shape.Kind {
	case descriptor.String:
		buf.WriteEscaped(xunsafe.AsString(pointer(rv)))
	case descriptor.Scalar:
		return e.writeScalar(buf, pointer(rv), shape)
	case descriptor.Date, descriptor.Time, descriptor.DateTime:
		buf.WriteEscaped(conv.FormatTime(xunsafe.AsTime(pointer(rv)), shape))
	case descriptor.Enum:
		name, err := conv.EnumName(pointer(rv), shape)
		if err != nil {
			return jsonerr.Wrap(jsonerr.Exception, err, -1, "failed to write enum")
		}
		buf.WriteEscaped(name)
	case descriptor.List:
		if rv.IsNil() {
			_, _ = buf.WriteString("null")
			return nil
		}
		return e.writeList(buf, rv, shape, depth)
	case descriptor.Array:
		return e.writeList(buf, rv, shape, depth)
	case descriptor.Map:
		if shape.Ordered {
			m := addressable(rv).Addr().Interface().(*value.OrderedMap)
			return e.writeOrderedMap(buf, m, depth)
		}
		if rv.IsNil() {
			_, _ = buf.WriteString("null")
			return nil
		}
		return e.writeMap(buf, rv, shape, depth)
	case descriptor.Object:
		return e.writeObject(buf, rv, depth)
	case descriptor.Dynamic:
		return e.writeDynamic(buf, rv.Interface().(value.Dynamic), depth)
	default:
		return jsonerr.New(jsonerr.Exception, -1, "", "unsupported type %v", rv.Type())
	}
	return nil
}

func (e *Engine) writeScalar(buf *buffer.Buffer, ptr unsafe.Pointer, shape *descriptor.Shape) error {
	var num [64]byte
	switch shape.Scalar {
	case descriptor.Bool:
		_, _ = buf.Write(strconv.AppendBool(num[:0], xunsafe.AsBool(ptr)))
	case descriptor.Int:
		_, _ = buf.Write(strconv.AppendInt(num[:0], conv.Int(ptr, shape.Base.Kind()), 10))
	case descriptor.Uint:
		_, _ = buf.Write(strconv.AppendUint(num[:0], conv.Uint(ptr, shape.Base.Kind()), 10))
	case descriptor.Float:
		var f float64
		if shape.Bits == 32 {
			f = float64(xunsafe.AsFloat32(ptr))
		} else {
			f = xunsafe.AsFloat64(ptr)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return jsonerr.New(jsonerr.Exception, -1, "", "unsupported number %v", f)
		}
		_, _ = buf.Write(strconv.AppendFloat(num[:0], f, 'g', -1, shape.Bits))
	case descriptor.BigInt:
		_, _ = buf.WriteString((*big.Int)(ptr).String())
	case descriptor.BigFloat:
		f := (*big.Float)(ptr)
		if f.IsInf() {
			return jsonerr.New(jsonerr.Exception, -1, "", "unsupported number %v", f)
		}
		_, _ = buf.WriteString(f.Text('g', -1))
	case descriptor.Decimal:
		_, _ = buf.WriteString((*value.Decimal)(ptr).String())
	}
	return nil
}

// pointer returns the address of rv, or of a copy when rv is not addressable.
func pointer(rv reflect.Value) unsafe.Pointer {
	return addressable(rv).Addr().UnsafePointer()
}

// open writes the separator and indentation preceding the index-th member.
func (e *Engine) open(buf *buffer.Buffer, index, depth int) {
	if index > 0 {
		_ = buf.WriteByte(',')
	}
	if e.Pretty {
		_ = buf.WriteByte('\n')
		buf.WriteTabs(depth + 1)
	}
}

// close writes the closing bracket after count members.
func (e *Engine) close(buf *buffer.Buffer, closing byte, count, depth int) {
	if e.Pretty && count > 0 {
		_ = buf.WriteByte('\n')
		buf.WriteTabs(depth)
	}
	_ = buf.WriteByte(closing)
}

func (e *Engine) writeList(buf *buffer.Buffer, rv reflect.Value, shape *descriptor.Shape, depth int) error {
	_ = buf.WriteByte('[')
	elemShape := shape.Elem()
	count := rv.Len()
	for i := 0; i < count; i++ {
		e.open(buf, i, depth)
		if err := e.writeValue(buf, rv.Index(i), elemShape, depth+1); err != nil {
			return err
		}
	}
	e.close(buf, ']', count, depth)
	return nil
}

func (e *Engine) writeMap(buf *buffer.Buffer, rv reflect.Value, shape *descriptor.Shape, depth int) error {
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	elemShape := shape.Elem()
	_ = buf.WriteByte('{')
	for i, key := range keys {
		e.open(buf, i, depth)
		buf.WriteQuotedName(key.String(), e.Pretty)
		if err := e.writeValue(buf, rv.MapIndex(key), elemShape, depth+1); err != nil {
			return err
		}
	}
	e.close(buf, '}', len(keys), depth)
	return nil
}

func (e *Engine) writeOrderedMap(buf *buffer.Buffer, m *value.OrderedMap, depth int) error {
	_ = buf.WriteByte('{')
	i := 0
	for key, item := range m.All() {
		e.open(buf, i, depth)
		buf.WriteQuotedName(key, e.Pretty)
		if err := e.writeDynamic(buf, item, depth+1); err != nil {
			return err
		}
		i++
	}
	e.close(buf, '}', i, depth)
	return nil
}

func (e *Engine) writeDynamic(buf *buffer.Buffer, d value.Dynamic, depth int) error {
	switch d.Kind() {
	case value.KindString:
		s, _ := d.AsString()
		buf.WriteEscaped(s)
	case value.KindInteger:
		i, _ := d.AsInteger()
		_, _ = buf.WriteString(i.String())
	case value.KindDecimal:
		dec, _ := d.AsDecimal()
		_, _ = buf.WriteString(dec.String())
	case value.KindBool:
		b, _ := d.AsBool()
		_, _ = buf.WriteString(strconv.FormatBool(b))
	case value.KindMap:
		m, _ := d.AsMap()
		return e.writeOrderedMap(buf, m, depth)
	case value.KindList:
		l, _ := d.AsList()
		_ = buf.WriteByte('[')
		for i, item := range l {
			e.open(buf, i, depth)
			if err := e.writeDynamic(buf, item, depth+1); err != nil {
				return err
			}
		}
		e.close(buf, ']', len(l), depth)
	default:
		_, _ = buf.WriteString("null")
	}
	return nil
}

func (e *Engine) writeObject(buf *buffer.Buffer, rv reflect.Value, depth int) error {
	desc, err := descriptor.For(rv.Type())
	if err != nil {
		return err
	}
	holder := addressable(rv).Addr()
	_ = buf.WriteByte('{')
	count := 0
	ptr := holder.UnsafePointer()
	for _, field := range desc.Fields {
		if !desc.IsPresent(ptr, field) {
			continue
		}
		v, ok, err := field.Get(holder, e.DirectAccess)
		if err != nil {
			return jsonerr.Wrap(jsonerr.Exception, err, -1, "failed to read %v", field.Name)
		}
		if ok && field.OmitEmpty && v.IsZero() {
			continue
		}
		if !ok || isAbsent(v, field.Shape) {
			if !field.EmitNull(e.Nullable) {
				continue
			}
			e.open(buf, count, depth)
			buf.WriteQuotedName(field.Name, e.Pretty)
			_, _ = buf.WriteString("null")
			count++
			continue
		}
		e.open(buf, count, depth)
		buf.WriteQuotedName(field.Name, e.Pretty)
		if err = e.writeValue(buf, v, field.Shape, depth+1); err != nil {
			return fieldError(field, err)
		}
		count++
	}
	e.close(buf, '}', count, depth)
	return nil
}

func fieldError(field *descriptor.Field, err error) error {
	if _, ok := jsonerr.KindOf(err); ok {
		return err
	}
	return jsonerr.Wrap(jsonerr.Exception, err, -1, "%v", field.Name)
}

// addressable returns rv or an addressable copy of it.
func addressable(rv reflect.Value) reflect.Value {
	if rv.CanAddr() {
		return rv
	}
	ret := reflect.New(rv.Type()).Elem()
	ret.Set(rv)
	return ret
}

// isAbsent reports nil references, zero temporals and null dynamic values.
func isAbsent(v reflect.Value, shape *descriptor.Shape) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		if v.IsNil() {
			return true
		}
	}
	switch shape.Kind {
	case descriptor.Date, descriptor.Time, descriptor.DateTime:
		if v.Kind() == reflect.Ptr {
			v = v.Elem()
		}
		return xunsafe.AsTime(pointer(v)).IsZero()
	case descriptor.Dynamic:
		if d, ok := v.Interface().(value.Dynamic); ok {
			return d.IsNull()
		}
	}
	return false
}

// String returns the JSON text of v as a string.
func (e *Engine) String(v interface{}) (string, error) {
	buf := buffer.Get()
	defer buffer.Put(buf)
	if err := e.MarshalTo(buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}
