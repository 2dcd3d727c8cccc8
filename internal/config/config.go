package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/re-cinq/instruct/internal/schema"
	"gopkg.in/yaml.v3"
)

// Format is the structured-data format the schema section was written in.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// delimiter matches a line made of six or more hyphens, optionally padded.
var delimiter = regexp.MustCompile(`(?m)^[ \t]*-{6,}[ \t]*\r?$`)

// Misc holds the presentation maps that may sit next to the schema.
type Misc struct {
	Pretty      map[string]string `json:"pretty,omitempty" yaml:"pretty,omitempty"`
	Description map[string]string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PrettyName returns the pretty title for key, or key itself.
func (m Misc) PrettyName(key string) string {
	if p, ok := m.Pretty[key]; ok && p != "" {
		return p
	}
	return key
}

// DescriptionOf returns the long description for key, if any.
func (m Misc) DescriptionOf(key string) string {
	return m.Description[key]
}

// Document is a parsed config: the schema in both raw and typed form, its
// presentation metadata, and the untouched template text.
type Document struct {
	Path         string
	Raw          string
	SchemaText   string
	TemplateText string
	Format       Format

	// SchemaDoc is the JSON Schema as decoded data, used for validation.
	SchemaDoc map[string]any
	Schema    *schema.Schema
	Misc      Misc
	Validator *schema.Validator
}

type wrapper struct {
	Schema *schema.Schema `json:"schema" yaml:"schema"`
	Misc   `yaml:",inline"`
}

// Split separates a config into schema and template text, trimming both.
// The first delimiter line splits; later ones belong to the template.
func Split(raw string) (string, string, error) {
	loc := delimiter.FindStringIndex(raw)
	if loc == nil {
		return "", "", &DelimiterNotFoundError{}
	}
	return strings.TrimSpace(raw[:loc[0]]), strings.TrimSpace(raw[loc[1]:]), nil
}

// ParseSchemaText decodes the schema section as JSON, falling back to YAML.
func ParseSchemaText(text string) (Format, map[string]any, error) {
	var v any
	jsonErr := json.Unmarshal([]byte(text), &v)
	if jsonErr == nil {
		return asMapping(FormatJSON, v)
	}

	v = nil
	yamlErr := yaml.Unmarshal([]byte(text), &v)
	if yamlErr == nil {
		return asMapping(FormatYAML, v)
	}
	return "", nil, &SchemaFormatError{JSONErr: jsonErr, YAMLErr: yamlErr}
}

func asMapping(f Format, v any) (Format, map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", nil, &SchemaFormatError{Reason: fmt.Sprintf("must be a mapping, got %T", v)}
	}
	return f, m, nil
}

// Parse parses a full config document and checks the schema against the
// Draft 2020-12 meta-schema.
func Parse(raw string) (*Document, error) {
	schemaText, templateText, err := Split(raw)
	if err != nil {
		return nil, err
	}

	format, top, err := ParseSchemaText(schemaText)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Raw:          raw,
		SchemaText:   schemaText,
		TemplateText: templateText,
		Format:       format,
		SchemaDoc:    top,
	}

	_, wrapped := top["schema"]
	if wrapped {
		inner, ok := top["schema"].(map[string]any)
		if !ok {
			return nil, &SchemaFormatError{Reason: "key \"schema\" must hold a mapping"}
		}
		doc.SchemaDoc = inner
	}

	v, err := schema.Compile(doc.SchemaDoc)
	if err != nil {
		return nil, &SchemaInvalidError{Err: err}
	}
	doc.Validator = v

	if wrapped {
		var w wrapper
		if err := decode(format, schemaText, &w); err != nil {
			return nil, fmt.Errorf("decoding schema: %w", err)
		}
		doc.Schema = w.Schema
		doc.Misc = w.Misc
	} else {
		var s schema.Schema
		if err := decode(format, schemaText, &s); err != nil {
			return nil, fmt.Errorf("decoding schema: %w", err)
		}
		doc.Schema = &s
	}
	if doc.Schema == nil {
		doc.Schema = &schema.Schema{}
	}

	return doc, nil
}

// Load reads and parses the config file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	doc, err := Parse(string(data))
	if err != nil {
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

func decode(f Format, text string, out any) error {
	if f == FormatJSON {
		return json.Unmarshal([]byte(text), out)
	}
	return yaml.Unmarshal([]byte(text), out)
}
