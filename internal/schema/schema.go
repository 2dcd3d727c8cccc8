package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Schema is the subset of a JSON Schema node that the option model cares
// about. It decodes from both JSON and YAML and keeps property order.
type Schema struct {
	ID          string     `json:"$id,omitempty" yaml:"$id,omitempty"`
	Title       string     `json:"title,omitempty" yaml:"title,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Type        TypeName   `json:"type,omitempty" yaml:"type,omitempty"`
	Enum        []any      `json:"enum,omitempty" yaml:"enum,omitempty"`
	Default     any        `json:"default,omitempty" yaml:"default,omitempty"`
	Items       *Schema    `json:"items,omitempty" yaml:"items,omitempty"`
	Properties  Properties `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required    []string   `json:"required,omitempty" yaml:"required,omitempty"`
	AllOf       []*Schema  `json:"allOf,omitempty" yaml:"allOf,omitempty"`
	AnyOf       []*Schema  `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
	OneOf       []*Schema  `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`
	If          *Schema    `json:"if,omitempty" yaml:"if,omitempty"`
	Then        *Schema    `json:"then,omitempty" yaml:"then,omitempty"`
	Else        *Schema    `json:"else,omitempty" yaml:"else,omitempty"`
}

// plainSchema has Schema's fields without its unmarshal methods.
type plainSchema Schema

// UnmarshalJSON accepts boolean schemas as empty nodes.
func (s *Schema) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("true")) || bytes.Equal(trimmed, []byte("false")) {
		*s = Schema{}
		return nil
	}
	return json.Unmarshal(data, (*plainSchema)(s))
}

// UnmarshalYAML accepts boolean schemas as empty nodes.
func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!bool" {
		*s = Schema{}
		return nil
	}
	return node.Decode((*plainSchema)(s))
}

// TypeName is the JSON Schema "type" keyword. A list of types collapses to
// its first non-null entry.
type TypeName string

func (t *TypeName) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = TypeName(single)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("type: expected string or list of strings")
	}
	*t = firstNonNull(list)
	return nil
}

func (t *TypeName) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*t = TypeName(node.Value)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return fmt.Errorf("type: %w", err)
		}
		*t = firstNonNull(list)
		return nil
	}
	return fmt.Errorf("type: expected string or list of strings (line %d)", node.Line)
}

func firstNonNull(list []string) TypeName {
	for _, name := range list {
		if name != "null" {
			return TypeName(name)
		}
	}
	return ""
}

// Properties is an insertion-ordered map of property name to schema.
type Properties struct {
	keys  []string
	byKey map[string]*Schema
}

// Set adds or replaces a property. Replacing keeps the original position.
func (p *Properties) Set(key string, s *Schema) {
	if p.byKey == nil {
		p.byKey = make(map[string]*Schema)
	}
	if _, ok := p.byKey[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.byKey[key] = s
}

// Get returns the schema for key.
func (p Properties) Get(key string) (*Schema, bool) {
	s, ok := p.byKey[key]
	return s, ok
}

// Keys returns property names in document order.
func (p Properties) Keys() []string {
	return append([]string(nil), p.keys...)
}

// Len returns the number of properties.
func (p Properties) Len() int {
	return len(p.keys)
}

func (p *Properties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("properties: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("properties: expected object")
	}
	*p = Properties{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("properties: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("properties: expected key, got %v", tok)
		}
		var s Schema
		if err := dec.Decode(&s); err != nil {
			return fmt.Errorf("properties.%s: %w", key, err)
		}
		p.Set(key, &s)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("properties: %w", err)
	}
	return nil
}

func (p *Properties) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("properties: expected mapping (line %d)", node.Line)
	}
	*p = Properties{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		var s Schema
		if err := node.Content[i+1].Decode(&s); err != nil {
			return fmt.Errorf("properties.%s: %w", key, err)
		}
		p.Set(key, &s)
	}
	return nil
}

// DecodeJSON decodes a JSON schema document.
func DecodeJSON(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DecodeYAML decodes a YAML schema document.
func DecodeYAML(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
