package conv

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"time"
	"unsafe"

	"github.com/viant/jsonbind/descriptor"
	"github.com/viant/jsonbind/internal/pattern"
	"github.com/viant/jsonbind/scanner"
	"github.com/viant/jsonbind/value"
	"github.com/viant/xunsafe"
)

var (
	defaultDateLayout     = pattern.MustLayout(pattern.Date)
	defaultTimeLayout     = pattern.MustLayout(pattern.Time)
	defaultDateTimeLayout = pattern.MustLayout(pattern.DateTime)
	// date times without explicit pattern also accept the generated form
	dateTimeFallbacks = []string{pattern.MustLayout(pattern.GeneratedDateTime), time.RFC3339Nano}
)

// Scalar converts a scalar token lexeme into target, a settable value of shape.Type.
// ok is false when the token kind cannot bind to the shape.
// err reports a conversion failure: overflow, decimal into integer, bad date or unknown enum name.
func Scalar(tok scanner.Token, lexeme []byte, shape *descriptor.Shape, target reflect.Value) (ok bool, err error) {
	if tok.Kind == scanner.Null {
		if shape.Nullable {
			target.Set(reflect.Zero(shape.Type))
		} else if shape.Kind == descriptor.Dynamic {
			target.Set(reflect.ValueOf(value.Null()))
		}
		return true, nil
	}
	switch shape.Kind {
	case descriptor.String:
		return convertToString(tok, lexeme, shape, target)
	case descriptor.Scalar:
		return convertToScalar(tok, lexeme, shape, target)
	case descriptor.Enum:
		if tok.Kind != scanner.String {
			return false, nil
		}
		return true, convertToEnum(string(lexeme), shape, target)
	case descriptor.Date, descriptor.Time, descriptor.DateTime:
		if tok.Kind != scanner.String {
			return false, nil
		}
		return true, convertToTime(string(lexeme), shape, target)
	case descriptor.Dynamic:
		d, err := Dynamic(tok, lexeme)
		if err != nil {
			return false, err
		}
		if shape.IsDynamic() {
			if d.IsNull() {
				target.Set(reflect.Zero(shape.Type))
				return true, nil
			}
			target.Set(reflect.ValueOf(d.Interface()))
			return true, nil
		}
		elem(target, shape).Set(reflect.ValueOf(d))
		return true, nil
	}
	return false, nil
}

// Dynamic converts a scalar token lexeme into a dynamic value without narrowing numbers.
func Dynamic(tok scanner.Token, lexeme []byte) (value.Dynamic, error) {
	switch tok.Kind {
	case scanner.Null:
		return value.Null(), nil
	case scanner.String:
		return value.FromString(string(lexeme)), nil
	case scanner.Bool:
		return value.FromBool(tok.Bool), nil
	case scanner.Integer:
		i, ok := new(big.Int).SetString(string(lexeme), 10)
		if !ok {
			return value.Null(), fmt.Errorf("invalid integer %q", lexeme)
		}
		return value.FromInteger(i), nil
	case scanner.Decimal:
		d, err := value.ParseDecimal(string(lexeme))
		if err != nil {
			return value.Null(), err
		}
		return value.FromDecimal(d), nil
	}
	return value.Null(), fmt.Errorf("unsupported token %v", tok.Kind)
}

// elem returns the settable base value, allocating a pointer target.
func elem(target reflect.Value, shape *descriptor.Shape) reflect.Value {
	if shape.Type.Kind() != reflect.Ptr {
		return target
	}
	if target.IsNil() {
		target.Set(reflect.New(shape.Base))
	}
	return target.Elem()
}

// addr returns the address of the base value of target, allocating a pointer target.
// It is called once the value is converted so a failed conversion leaves target untouched.
func addr(target reflect.Value, shape *descriptor.Shape) unsafe.Pointer {
	ptr := target.Addr().UnsafePointer()
	if shape.Type.Kind() == reflect.Ptr {
		return xunsafe.SafeDerefPointer(ptr, shape.Type)
	}
	return ptr
}

func convertToString(tok scanner.Token, lexeme []byte, shape *descriptor.Shape, target reflect.Value) (bool, error) {
	var text string
	switch tok.Kind {
	case scanner.String, scanner.Integer, scanner.Decimal:
		text = string(lexeme)
	case scanner.Bool:
		text = strconv.FormatBool(tok.Bool)
	default:
		return false, nil
	}
	*xunsafe.AsStringPtr(addr(target, shape)) = text
	return true, nil
}

func convertToScalar(tok scanner.Token, lexeme []byte, shape *descriptor.Shape, target reflect.Value) (bool, error) {
	if shape.Scalar == descriptor.Bool {
		if tok.Kind != scanner.Bool {
			return false, nil
		}
		*xunsafe.AsBoolPtr(addr(target, shape)) = tok.Bool
		return true, nil
	}
	if !tok.Kind.IsNumber() {
		return false, nil
	}
	literal := string(lexeme)
	switch shape.Scalar {
	case descriptor.Int:
		if tok.Kind == scanner.Decimal {
			return true, fmt.Errorf("decimal %v can not be assigned to %v", literal, shape.Type)
		}
		v, err := strconv.ParseInt(literal, 10, shape.Bits)
		if err != nil {
			return true, fmt.Errorf("integer %v overflows %v", literal, shape.Type)
		}
		setInt(addr(target, shape), shape.Base.Kind(), v)
	case descriptor.Uint:
		if tok.Kind == scanner.Decimal {
			return true, fmt.Errorf("decimal %v can not be assigned to %v", literal, shape.Type)
		}
		v, err := strconv.ParseUint(literal, 10, shape.Bits)
		if err != nil {
			return true, fmt.Errorf("integer %v overflows %v", literal, shape.Type)
		}
		setUint(addr(target, shape), shape.Base.Kind(), v)
	case descriptor.Float:
		v, err := strconv.ParseFloat(literal, shape.Bits)
		if err != nil {
			return true, fmt.Errorf("number %v overflows %v", literal, shape.Type)
		}
		if shape.Bits == 32 {
			*xunsafe.AsFloat32Ptr(addr(target, shape)) = float32(v)
		} else {
			*xunsafe.AsFloat64Ptr(addr(target, shape)) = v
		}
	case descriptor.BigInt:
		if tok.Kind == scanner.Decimal {
			return true, fmt.Errorf("decimal %v can not be assigned to %v", literal, shape.Type)
		}
		v, ok := new(big.Int).SetString(literal, 10)
		if !ok {
			return true, fmt.Errorf("invalid integer %v", literal)
		}
		setBig(target, shape, reflect.ValueOf(v))
	case descriptor.BigFloat:
		v, _, err := big.ParseFloat(literal, 10, precision(literal), big.ToNearestEven)
		if err != nil {
			return true, fmt.Errorf("invalid number %v: %w", literal, err)
		}
		setBig(target, shape, reflect.ValueOf(v))
	case descriptor.Decimal:
		v, err := value.ParseDecimal(literal)
		if err != nil {
			return true, err
		}
		*(*value.Decimal)(addr(target, shape)) = v
	default:
		return false, nil
	}
	return true, nil
}

func setInt(ptr unsafe.Pointer, kind reflect.Kind, v int64) {
	switch kind {
	case reflect.Int8:
		*xunsafe.AsInt8Ptr(ptr) = int8(v)
	case reflect.Int16:
		*xunsafe.AsInt16Ptr(ptr) = int16(v)
	case reflect.Int32:
		*xunsafe.AsInt32Ptr(ptr) = int32(v)
	case reflect.Int64:
		*xunsafe.AsInt64Ptr(ptr) = v
	default:
		*xunsafe.AsIntPtr(ptr) = int(v)
	}
}

func setUint(ptr unsafe.Pointer, kind reflect.Kind, v uint64) {
	switch kind {
	case reflect.Uint8:
		*xunsafe.AsUint8Ptr(ptr) = uint8(v)
	case reflect.Uint16:
		*xunsafe.AsUint16Ptr(ptr) = uint16(v)
	case reflect.Uint32:
		*xunsafe.AsUint32Ptr(ptr) = uint32(v)
	case reflect.Uint64:
		*xunsafe.AsUint64Ptr(ptr) = v
	default:
		*xunsafe.AsUintPtr(ptr) = uint(v)
	}
}

// setBig assigns a freshly parsed *big.Int or *big.Float to a pointer or value target.
func setBig(target reflect.Value, shape *descriptor.Shape, v reflect.Value) {
	if shape.Type.Kind() == reflect.Ptr {
		target.Set(v)
		return
	}
	target.Set(v.Elem())
}

// precision sizes big.Float mantissa bits from the literal digit count.
func precision(literal string) uint {
	digits := 0
	for i := 0; i < len(literal); i++ {
		if literal[i] == 'e' || literal[i] == 'E' {
			break
		}
		if literal[i] >= '0' && literal[i] <= '9' {
			digits++
		}
	}
	bits := uint(math.Ceil(float64(digits)*math.Log2(10))) + 1
	if bits < 64 {
		return 64
	}
	return bits
}

func convertToEnum(name string, shape *descriptor.Shape, target reflect.Value) error {
	for i, candidate := range shape.Names {
		if candidate != name {
			continue
		}
		ptr := addr(target, shape)
		switch kind := shape.Base.Kind(); kind {
		case reflect.String:
			*xunsafe.AsStringPtr(ptr) = name
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			setInt(ptr, kind, int64(i))
		default:
			setUint(ptr, kind, uint64(i))
		}
		return nil
	}
	return fmt.Errorf("unknown %v name %q", shape.Base, name)
}

// convertToTime writes ts through a time pointer: Date and TimeOfDay embed time.Time as their only field.
func convertToTime(literal string, shape *descriptor.Shape, target reflect.Value) error {
	ts, err := ParseTime(literal, shape)
	if err != nil {
		return err
	}
	*xunsafe.AsTimePtr(addr(target, shape)) = ts
	return nil
}

// ParseTime parses literal with the shape layout or the kind default.
func ParseTime(literal string, shape *descriptor.Shape) (time.Time, error) {
	if shape.Layout != "" {
		return time.ParseInLocation(shape.Layout, literal, time.UTC)
	}
	switch shape.Kind {
	case descriptor.Date:
		return time.ParseInLocation(defaultDateLayout, literal, time.UTC)
	case descriptor.Time:
		return time.ParseInLocation(defaultTimeLayout, literal, time.UTC)
	}
	ts, err := time.ParseInLocation(defaultDateTimeLayout, literal, time.UTC)
	if err == nil {
		return ts, nil
	}
	for _, layout := range dateTimeFallbacks {
		if ts, fallbackErr := time.ParseInLocation(layout, literal, time.UTC); fallbackErr == nil {
			return ts, nil
		}
	}
	return ts, err
}

// FormatTime formats ts with the shape layout or the generator default.
func FormatTime(ts time.Time, shape *descriptor.Shape) string {
	if shape.Layout != "" {
		return ts.Format(shape.Layout)
	}
	switch shape.Kind {
	case descriptor.Date:
		return ts.Format(defaultDateLayout)
	case descriptor.Time:
		return ts.Format(defaultTimeLayout)
	}
	return ts.Format(dateTimeFallbacks[0])
}

// EnumName returns the name of the enum value at ptr.
func EnumName(ptr unsafe.Pointer, shape *descriptor.Shape) (string, error) {
	var ordinal uint64
	switch shape.Base.Kind() {
	case reflect.String:
		return xunsafe.AsString(ptr), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := Int(ptr, shape.Base.Kind())
		if i < 0 {
			return "", fmt.Errorf("%v ordinal %v out of range", shape.Base, i)
		}
		ordinal = uint64(i)
	default:
		ordinal = Uint(ptr, shape.Base.Kind())
	}
	if ordinal >= uint64(len(shape.Names)) {
		return "", fmt.Errorf("%v ordinal %v out of range", shape.Base, ordinal)
	}
	return shape.Names[ordinal], nil
}

// Int reads a signed integer of kind at ptr.
func Int(ptr unsafe.Pointer, kind reflect.Kind) int64 {
	switch kind {
	case reflect.Int8:
		return int64(xunsafe.AsInt8(ptr))
	case reflect.Int16:
		return int64(xunsafe.AsInt16(ptr))
	case reflect.Int32:
		return int64(xunsafe.AsInt32(ptr))
	case reflect.Int64:
		return xunsafe.AsInt64(ptr)
	}
	return int64(xunsafe.AsInt(ptr))
}

// Uint reads an unsigned integer of kind at ptr.
func Uint(ptr unsafe.Pointer, kind reflect.Kind) uint64 {
	switch kind {
	case reflect.Uint8:
		return uint64(xunsafe.AsUint8(ptr))
	case reflect.Uint16:
		return uint64(xunsafe.AsUint16(ptr))
	case reflect.Uint32:
		return uint64(xunsafe.AsUint32(ptr))
	case reflect.Uint64:
		return xunsafe.AsUint64(ptr)
	}
	return uint64(xunsafe.AsUint(ptr))
}
