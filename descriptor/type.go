// Package descriptor builds and caches struct binding descriptors.
package descriptor

import (
	"reflect"
	"sync"

	"github.com/viant/jsonbind/internal/pattern"
	"github.com/viant/jsonbind/internal/tagutil"
	"github.com/viant/jsonbind/jsonerr"
	"github.com/viant/xunsafe"
)

// Type represents a struct binding descriptor.
type Type struct {
	Type     reflect.Type
	Fields   []*Field
	index    map[string]*Field
	presence *presence
}

// Lookup returns a field by JSON name.
func (t *Type) Lookup(name string) *Field {
	return t.index[name]
}

// LookupBytes returns a field by JSON name without allocating.
func (t *Type) LookupBytes(name []byte) *Field {
	return t.index[string(name)]
}

var types sync.Map // map[reflect.Type]*Type

// For returns the cached descriptor of a struct or pointer to struct type.
func For(t reflect.Type) (*Type, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if v, ok := types.Load(t); ok {
		return v.(*Type), nil
	}
	if t.Kind() != reflect.Struct {
		return nil, jsonerr.New(jsonerr.Exception, -1, "", "unsupported type %v, expected struct", t)
	}
	ret, err := build(t)
	if err != nil {
		return nil, err
	}
	v, _ := types.LoadOrStore(t, ret)
	return v.(*Type), nil
}

func build(t reflect.Type) (*Type, error) {
	var candidates []*Field
	if err := collect(t, nil, 0, &candidates); err != nil {
		return nil, err
	}
	depth := map[string]int{}
	for _, f := range candidates {
		if d, ok := depth[f.Name]; !ok || f.Depth < d {
			depth[f.Name] = f.Depth
		}
	}
	ret := &Type{Type: t, index: make(map[string]*Field, len(candidates))}
	for _, f := range candidates {
		if f.Depth != depth[f.Name] {
			continue
		}
		if _, ok := ret.index[f.Name]; ok {
			continue
		}
		ret.index[f.Name] = f
		ret.Fields = append(ret.Fields, f)
	}
	for i := 0; i < t.NumField(); i++ {
		if sf := t.Field(i); IsPresenceMarker(sf.Tag) {
			p, err := newPresence(t, sf, ret.Fields)
			if err != nil {
				return nil, jsonerr.Wrap(jsonerr.Exception, err, -1, "invalid presence marker")
			}
			ret.presence = p
			break
		}
	}
	return ret, nil
}

func collect(t reflect.Type, path []step, depth int, fields *[]*Field) error {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, err := tagutil.Resolve(sf)
		if err != nil {
			return jsonerr.Wrap(jsonerr.Exception, err, -1, "field %v.%v", t.Name(), sf.Name)
		}
		if tag.Ignore || IsPresenceMarker(sf.Tag) {
			continue
		}
		if sf.Anonymous && !tag.Explicit {
			embedded := sf.Type
			pointer := embedded.Kind() == reflect.Ptr
			if pointer {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				next := append(append([]step{}, path...), step{field: xunsafe.NewField(sf), pointer: pointer, elem: embedded})
				if err := collect(embedded, next, depth+1, fields); err != nil {
					return err
				}
				continue
			}
		}
		field := &Field{
			Name:      tag.Name,
			GoName:    sf.Name,
			Type:      sf.Type,
			Shape:     ShapeOf(sf.Type),
			OmitEmpty: tag.OmitEmpty,
			Nullable:  tag.Nullable,
			Exported:  sf.IsExported(),
			Depth:     depth,
			path:      path,
			field:     xunsafe.NewField(sf),
			owner:     t,
		}
		field.bindAccessors()
		if !field.Exported && !field.HasSetter() && !field.HasGetter() {
			continue
		}
		if field.Shape.Kind.IsTemporal() && (tag.TimeLayout != "" || tag.DateFormat != "") {
			layout := tag.TimeLayout
			if layout == "" {
				if layout, err = pattern.Layout(tag.DateFormat); err != nil {
					return jsonerr.Wrap(jsonerr.Exception, err, -1, "field %v.%v", t.Name(), sf.Name)
				}
			}
			field.Shape = field.Shape.WithLayout(tag.DateFormat, layout)
		}
		*fields = append(*fields, field)
	}
	return nil
}
