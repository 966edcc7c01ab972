package jsonbind

import (
	"os"

	"github.com/viant/jsonbind/jsonerr"
	"github.com/viant/jsonbind/value"
)

// ParseFile reads and parses the file at path into a new T.
func ParseFile[T any](path string, opts ...Option) (T, error) {
	var ret T
	data, err := readFile(path)
	if err != nil {
		return ret, err
	}
	return ParseInto[T](data, opts...)
}

// ParseFileToMap reads and parses the JSON object file at path.
func ParseFileToMap(path string, opts ...Option) (*value.OrderedMap, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseToMap(data, opts...)
}

// ParseFileToList reads and parses the JSON array file at path.
func ParseFileToList(path string, opts ...Option) (value.List, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseToList(data, opts...)
}

// StringifyToFile writes the JSON text of v to path.
func StringifyToFile(path string, v interface{}, opts ...Option) error {
	data, err := Marshal(v, opts...)
	if err != nil {
		return err
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return jsonerr.Wrap(jsonerr.Exception, err, -1, "failed to write %v", path)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, jsonerr.Wrap(jsonerr.Exception, err, -1, "failed to read %v", path)
	}
	return data, nil
}
