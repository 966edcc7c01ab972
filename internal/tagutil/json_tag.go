package tagutil

import "strings"

// JSONTag represents the `json` struct tag.
type JSONTag struct {
	Name      string
	OmitEmpty bool
	Explicit  bool
	Transient bool
}

// ParseJSONTag parses a `json` tag, falling back to defaultName.
func ParseJSONTag(defaultName string, raw string) JSONTag {
	if raw == "" {
		return JSONTag{Name: defaultName}
	}
	name, options, _ := strings.Cut(raw, ",")
	tag := JSONTag{Name: name, Explicit: name != "", Transient: name == "-"}
	if name == "" {
		tag.Name = defaultName
	}
	for options != "" {
		var option string
		option, options, _ = strings.Cut(options, ",")
		if option == "omitempty" {
			tag.OmitEmpty = true
		}
	}
	return tag
}
