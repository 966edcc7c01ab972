package tagutil

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/viant/tagly/format"
)

// Field captures the resolved binding attributes of a struct field.
type Field struct {
	Name       string
	Explicit   bool
	OmitEmpty  bool
	Ignore     bool
	Nullable   *bool
	DateFormat string
	TimeLayout string
}

type formatTag struct {
	name       string
	caseFormat string
	omitEmpty  bool
	ignore     bool
	nullable   *bool
	timeLayout string
	dateFormat string
	err        error
}

var formatTags sync.Map // map[string]formatTag

// Resolve resolves json and format tags of sf.
// json name wins over format name/caseFormat which wins over the Go field name.
func Resolve(sf reflect.StructField) (Field, error) {
	jTag := ParseJSONTag(sf.Name, sf.Tag.Get("json"))
	fTag := loadFormatTag(sf.Tag)
	if fTag.err != nil {
		return Field{}, fmt.Errorf("invalid format tag of %v: %w", sf.Name, fTag.err)
	}
	ret := Field{
		Name:       jTag.Name,
		Explicit:   jTag.Explicit,
		OmitEmpty:  jTag.OmitEmpty || fTag.omitEmpty,
		Ignore:     jTag.Transient || fTag.ignore,
		Nullable:   fTag.nullable,
		DateFormat: fTag.dateFormat,
		TimeLayout: fTag.timeLayout,
	}
	if !jTag.Explicit && (fTag.name != "" || fTag.caseFormat != "") {
		tag := &format.Tag{Name: fTag.name, CaseFormat: fTag.caseFormat}
		if tag.Name == "" {
			tag.Name = sf.Name
		}
		if name := tag.CaseFormatName(""); name != "" {
			ret.Name = name
			ret.Explicit = true
		}
	}
	return ret, nil
}

func loadFormatTag(raw reflect.StructTag) formatTag {
	if _, ok := raw.Lookup("format"); !ok {
		return formatTag{}
	}
	if v, ok := formatTags.Load(string(raw)); ok {
		return v.(formatTag)
	}
	tag, err := format.Parse(raw)
	if err != nil {
		ret := formatTag{err: err}
		formatTags.Store(string(raw), ret)
		return ret
	}
	ret := formatTag{
		name:       tag.Name,
		caseFormat: tag.CaseFormat,
		omitEmpty:  tag.Omitempty,
		ignore:     tag.Ignore,
		nullable:   tag.Nullable,
		timeLayout: tag.TimeLayout,
		dateFormat: tag.DateFormat,
	}
	formatTags.Store(string(raw), ret)
	return ret
}
