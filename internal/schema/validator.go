package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const resourceURL = "file:///instruction.schema.json"

// Validator checks input documents against a compiled Draft 2020-12 schema.
// It is immutable and safe for concurrent use.
type Validator struct {
	compiled *jsonschema.Schema
}

// Compile checks doc against its meta-schema and compiles it. doc is any
// JSON-compatible value (maps decoded from JSON or YAML).
func Compile(doc any) (*Validator, error) {
	normalized, err := toJSONValue(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft2020)
	if err := c.AddResource(resourceURL, normalized); err != nil {
		return nil, err
	}
	compiled, err := c.Compile(resourceURL)
	if err != nil {
		return nil, err
	}
	return &Validator{compiled: compiled}, nil
}

// Validate returns nil when input conforms. A non-conforming input yields a
// *ValidationError; anything else is an encoding problem.
func (v *Validator) Validate(input any) error {
	normalized, err := toJSONValue(input)
	if err != nil {
		return fmt.Errorf("encoding input: %w", err)
	}
	err = v.compiled.Validate(normalized)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if errors.As(err, &verr) {
		return &ValidationError{Problems: problems(verr.Error())}
	}
	return err
}

// ValidationError lists the reasons an input failed validation.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// problems turns the validator's indented report into one line per leaf.
func problems(report string) []string {
	lines := strings.Split(report, "\n")
	var out []string
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if i == 0 && len(lines) > 1 {
			continue // "jsonschema validation failed with ..."
		}
		line = strings.TrimPrefix(line, "- ")
		if line != "" {
			out = append(out, line)
		}
	}
	if len(out) == 0 {
		out = []string{strings.TrimSpace(report)}
	}
	return out
}

// toJSONValue round-trips v through JSON so that numbers and maps have the
// shapes the validator expects, whatever decoder produced them.
func toJSONValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}
