package descriptor

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/viant/xunsafe"
)

// PresenceTag marks a pointer to a struct of bool flags, one per top-level field Go name,
// recording which members were bound.
const PresenceTag = "presenceMarker"

// IsPresenceMarker returns true for a field tagged as presence marker holder.
func IsPresenceMarker(tag reflect.StructTag) bool {
	_, ok := tag.Lookup(PresenceTag)
	return ok
}

type presence struct {
	holder *xunsafe.Field
	elem   reflect.Type
}

func newPresence(t reflect.Type, sf reflect.StructField, fields []*Field) (*presence, error) {
	holderType := sf.Type
	if holderType.Kind() != reflect.Ptr || holderType.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%v.%v: presence marker has to be a pointer to struct, but had %v", t.Name(), sf.Name, holderType)
	}
	ret := &presence{holder: xunsafe.NewField(sf), elem: holderType.Elem()}
	index := make(map[string]*Field, len(fields))
	for _, field := range fields {
		if field.Depth == 0 {
			index[field.GoName] = field
		}
	}
	for i := 0; i < ret.elem.NumField(); i++ {
		flag := ret.elem.Field(i)
		field, ok := index[flag.Name]
		if !ok {
			return nil, fmt.Errorf("presence marker field: '%v' does not have corresponding %v field", flag.Name, t.Name())
		}
		if flag.Type.Kind() != reflect.Bool {
			return nil, fmt.Errorf("presence marker field: '%v' has to be bool, but had %v", flag.Name, flag.Type)
		}
		field.presence = xunsafe.NewField(flag)
	}
	return ret, nil
}

// MarkPresent flags field as bound in the struct at ptr, allocating the marker holder.
func (t *Type) MarkPresent(ptr unsafe.Pointer, field *Field) {
	if t.presence == nil || field.presence == nil {
		return
	}
	ref := (*unsafe.Pointer)(t.presence.holder.Pointer(ptr))
	if *ref == nil {
		*ref = reflect.New(t.presence.elem).UnsafePointer()
	}
	field.presence.SetBool(*ref, true)
}

// IsPresent returns true when field was flagged as bound.
// Structs without a marker, or with a nil marker holder, report every field as present.
func (t *Type) IsPresent(ptr unsafe.Pointer, field *Field) bool {
	if t.presence == nil || field.presence == nil {
		return true
	}
	holder := *(*unsafe.Pointer)(t.presence.holder.Pointer(ptr))
	if holder == nil {
		return true
	}
	return field.presence.Bool(holder)
}

// HasPresence returns true when the struct declares a presence marker.
func (t *Type) HasPresence() bool {
	return t.presence != nil
}
