package main

import (
	"bytes"
	"strconv"

	"github.com/viant/jsonbind/value"
	"gopkg.in/yaml.v3"
)

func encodeYAML(doc value.Dynamic) ([]byte, error) {
	buf := bytes.Buffer{}
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(yamlNode(doc)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// yamlNode keeps member order, which a Go map round trip would lose.
func yamlNode(d value.Dynamic) *yaml.Node {
	switch d.Kind() {
	case value.KindMap:
		m, _ := d.AsMap()
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for key, item := range m.All() {
			node.Content = append(node.Content, scalar("!!str", key), yamlNode(item))
		}
		return node
	case value.KindList:
		l, _ := d.AsList()
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range l {
			node.Content = append(node.Content, yamlNode(item))
		}
		return node
	case value.KindString:
		s, _ := d.AsString()
		return scalar("!!str", s)
	case value.KindInteger:
		i, _ := d.AsInteger()
		return scalar("!!int", i.String())
	case value.KindDecimal:
		dec, _ := d.AsDecimal()
		return scalar("!!float", dec.String())
	case value.KindBool:
		b, _ := d.AsBool()
		return scalar("!!bool", strconv.FormatBool(b))
	}
	return scalar("!!null", "null")
}

func scalar(tag, text string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
}
