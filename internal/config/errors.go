package config

import (
	"fmt"
	"strings"
)

// DelimiterNotFoundError is returned when a config has no line of six or
// more hyphens separating the schema from the template.
type DelimiterNotFoundError struct{}

func (e *DelimiterNotFoundError) Error() string {
	return "no delimiter (------) found between schema and template"
}

// SchemaFormatError is returned when the schema section is neither JSON nor
// YAML, or decodes to something other than a mapping.
type SchemaFormatError struct {
	JSONErr error
	YAMLErr error
	Reason  string
}

func (e *SchemaFormatError) Error() string {
	if e.Reason != "" {
		return "schema section " + e.Reason
	}
	var b strings.Builder
	b.WriteString("schema is neither valid JSON nor valid YAML")
	if e.JSONErr != nil {
		fmt.Fprintf(&b, "\n  json: %s", e.JSONErr)
	}
	if e.YAMLErr != nil {
		fmt.Fprintf(&b, "\n  yaml: %s", e.YAMLErr)
	}
	return b.String()
}

// SchemaInvalidError is returned when the schema fails meta-schema validation.
type SchemaInvalidError struct {
	Err error
}

func (e *SchemaInvalidError) Error() string {
	return fmt.Sprintf("the given schema is not a valid JSON schema:\n\n%s", e.Err)
}

func (e *SchemaInvalidError) Unwrap() error {
	return e.Err
}
