package descriptor

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/viant/xunsafe"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Field represents a bound struct member.
type Field struct {
	Name      string
	GoName    string
	Type      reflect.Type
	Shape     *Shape
	OmitEmpty bool
	// Nullable overrides the generator nullable option when set.
	Nullable *bool
	Exported bool
	Depth    int

	path     []step
	field    *xunsafe.Field
	presence *xunsafe.Field
	owner    reflect.Type
	setter   int
	getter   int
	getError bool
	setError bool
}

type step struct {
	field   *xunsafe.Field
	pointer bool
	elem    reflect.Type
}

// HasSetter returns true when a SetX method is declared.
func (f *Field) HasSetter() bool { return f.setter >= 0 }

// HasGetter returns true when a GetX, IsX or X method is declared.
func (f *Field) HasGetter() bool { return f.getter >= 0 }

// EmitNull returns true when an absent value should be written as null.
func (f *Field) EmitNull(nullable bool) bool {
	if f.Nullable != nil {
		return *f.Nullable
	}
	return nullable
}

// Addr returns the field address inside the struct at ptr.
// Embedded pointers are allocated when alloc is set, otherwise a nil embedding yields nil.
func (f *Field) Addr(ptr unsafe.Pointer, alloc bool) unsafe.Pointer {
	holder := f.holder(ptr, alloc)
	if holder == nil {
		return nil
	}
	return f.field.Pointer(holder)
}

// Inline returns true when the field address is reachable without allocating embedded pointers.
func (f *Field) Inline() bool {
	for i := range f.path {
		if f.path[i].pointer {
			return false
		}
	}
	return true
}

func (f *Field) holder(ptr unsafe.Pointer, alloc bool) unsafe.Pointer {
	for i := range f.path {
		s := &f.path[i]
		ptr = s.field.Pointer(ptr)
		if !s.pointer {
			continue
		}
		ref := (*unsafe.Pointer)(ptr)
		if *ref == nil {
			if !alloc {
				return nil
			}
			*ref = reflect.New(s.elem).UnsafePointer()
		}
		ptr = *ref
	}
	return ptr
}

// Set writes v into the struct pointed by holder, through the setter unless direct.
func (f *Field) Set(holder reflect.Value, v reflect.Value, direct bool) error {
	ptr := f.holder(holder.UnsafePointer(), true)
	if !direct && f.setter >= 0 {
		owner := reflect.NewAt(f.owner, ptr)
		out := owner.Method(f.setter).Call([]reflect.Value{v})
		if f.setError && !out[0].IsNil() {
			return fmt.Errorf("%v.Set%v: %w", f.owner.Name(), f.accessorName(), out[0].Interface().(error))
		}
		return nil
	}
	reflect.NewAt(f.Type, f.field.Pointer(ptr)).Elem().Set(v)
	return nil
}

// Get reads the field value, through the getter unless direct.
// ok is false when the field sits behind a nil embedded pointer.
func (f *Field) Get(holder reflect.Value, direct bool) (ret reflect.Value, ok bool, err error) {
	ptr := f.holder(holder.UnsafePointer(), false)
	if ptr == nil {
		return ret, false, nil
	}
	if !direct && f.getter >= 0 {
		owner := reflect.NewAt(f.owner, ptr)
		out := owner.Method(f.getter).Call(nil)
		if f.getError && !out[1].IsNil() {
			return ret, false, fmt.Errorf("%v getter %v: %w", f.owner.Name(), f.accessorName(), out[1].Interface().(error))
		}
		return out[0], true, nil
	}
	return reflect.NewAt(f.Type, f.field.Pointer(ptr)).Elem(), true, nil
}

func (f *Field) accessorName() string {
	return upperFirst(f.GoName)
}

func (f *Field) bindAccessors() {
	f.setter, f.getter = -1, -1
	ptrType := reflect.PointerTo(f.owner)
	name := upperFirst(f.GoName)
	if m, ok := ptrType.MethodByName("Set" + name); ok && isSetter(m.Type, f.Type) {
		f.setter = m.Index
		f.setError = m.Type.NumOut() == 1
	}
	candidates := []string{"Get" + name, "Is" + name}
	if f.Type.Kind() == reflect.Bool {
		candidates = []string{"Is" + name, "Get" + name}
	}
	if !f.Exported {
		candidates = append(candidates, name)
	}
	for _, candidate := range candidates {
		if m, ok := ptrType.MethodByName(candidate); ok && isGetter(m.Type, f.Type) {
			f.getter = m.Index
			f.getError = m.Type.NumOut() == 2
			break
		}
	}
}

// method types include the receiver as the first input
func isSetter(m reflect.Type, fieldType reflect.Type) bool {
	if m.NumIn() != 2 || m.In(1) != fieldType {
		return false
	}
	switch m.NumOut() {
	case 0:
		return true
	case 1:
		return m.Out(0) == errorType
	}
	return false
}

func isGetter(m reflect.Type, fieldType reflect.Type) bool {
	if m.NumIn() != 1 {
		return false
	}
	switch m.NumOut() {
	case 1:
		return m.Out(0) == fieldType
	case 2:
		return m.Out(0) == fieldType && m.Out(1) == errorType
	}
	return false
}

func upperFirst(name string) string {
	if name == "" || name[0] < 'a' || name[0] > 'z' {
		return name
	}
	return string(name[0]-'a'+'A') + name[1:]
}
