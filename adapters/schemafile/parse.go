package schemafile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/artpar/specforge/domain/rawschema"
)

// Parse decodes one schema document. Plain struct decoding would put the
// properties in a Go map and destroy the declaration order the pipeline
// depends on, so the document is decoded into a yaml.Node tree (yaml.v3
// parses JSON and keeps mapping keys ordered) and walked from there.
func Parse(data []byte) (rawschema.Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return rawschema.Schema{}, fmt.Errorf("parse document: %w", err)
	}
	if len(doc.Content) == 0 {
		return rawschema.Schema{}, fmt.Errorf("empty document")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return rawschema.Schema{}, fmt.Errorf("line %d: document is not an object", root.Line)
	}

	var out rawschema.Schema
	var err error
	for i := 0; i < len(root.Content)-1; i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "typeName":
			out.TypeName, err = stringValue(val)
		case "properties":
			out.Properties, err = parseProps(val)
		}
		if err != nil {
			return rawschema.Schema{}, err
		}
	}
	return out, nil
}

func parseProps(n *yaml.Node) ([]rawschema.Property, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: properties is not an object", n.Line)
	}

	var out []rawschema.Property
	for i := 0; i < len(n.Content)-1; i += 2 {
		p, err := parseProp(n.Content[i].Value, n.Content[i+1])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func parseProp(name string, n *yaml.Node) (rawschema.Property, error) {
	if n.Kind != yaml.MappingNode {
		return rawschema.Property{}, fmt.Errorf("line %d: property %q is not an object", n.Line, name)
	}

	p := rawschema.Property{Name: name}
	var err error
	for i := 0; i < len(n.Content)-1; i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch key.Value {
		case "type":
			var kind string
			kind, err = stringValue(val)
			p.Kind = rawschema.Kind(kind)
		case "required":
			p.Required, err = boolValue(val)
		case "readOnly":
			p.ReadOnly, err = boolValue(val)
		case "primaryIdentifier":
			p.PrimaryIdentifier, err = boolValue(val)
		case "properties":
			p.Children, err = parseProps(val)
		case "items":
			var elem rawschema.Property
			elem, err = parseProp("", val)
			if err == nil {
				p.Element = &elem
			}
		case "values":
			var value rawschema.Property
			value, err = parseProp("", val)
			if err == nil {
				p.Value = &value
			}
		}
		if err != nil {
			return rawschema.Property{}, err
		}
	}
	return p, nil
}

func stringValue(n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode || n.Tag != "!!str" {
		return "", fmt.Errorf("line %d: expected string, got %s", n.Line, n.Tag)
	}
	return n.Value, nil
}

func boolValue(n *yaml.Node) (bool, error) {
	if n.Kind != yaml.ScalarNode || n.Tag != "!!bool" {
		return false, fmt.Errorf("line %d: expected bool, got %s", n.Line, n.Tag)
	}
	var b bool
	if err := n.Decode(&b); err != nil {
		return false, fmt.Errorf("line %d: %w", n.Line, err)
	}
	return b, nil
}
