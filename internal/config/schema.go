package config

import "encoding/json"

// Schema returns a JSON Schema describing the schema section of an install
// config (the part above the ------ delimiter) as indented JSON.
func Schema() []byte {
	schema := map[string]any{
		"$schema":     "https://json-schema.org/draft/2020-12/schema",
		"title":       "install.cfg schema section",
		"description": "The part of an install config above the ------ delimiter, written in JSON or YAML. Either a bare JSON Schema (Draft 2020-12) describing the questions asked to the user, or an object wrapping that schema under \"schema\" next to presentation maps.",
		"oneOf": []any{
			map[string]any{
				"description": "Wrapped form.",
				"type":        "object",
				"required":    []string{"schema"},
				"properties": map[string]any{
					"schema": map[string]any{
						"$ref": "#/$defs/instructionSchema",
					},
					"pretty":      stringMap("Human-readable titles keyed by option name or enum value (e.g. \"cu121\": \"CUDA 12.1\")."),
					"description": stringMap("Long descriptions keyed by option name or enum value. Used when the schema property has no description of its own."),
				},
			},
			map[string]any{
				"description": "Bare form.",
				"$ref":        "#/$defs/instructionSchema",
				"not":         map[string]any{"required": []string{"schema"}},
			},
		},
		"$defs": map[string]any{
			"instructionSchema": map[string]any{
				"description": "JSON Schema for the user's answers. The $id (or title) identifies the project when saving default answers.",
				"type":        "object",
				"properties": map[string]any{
					"$id": map[string]any{
						"type":        "string",
						"description": "Stable project identifier, used as the key for saved defaults.",
					},
					"title":       map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
					"properties": map[string]any{
						"description": "One entry per question. Keys become flags: underscores and spaces turn into hyphens (build_type -> --build-type).",
						"type":        "object",
						"additionalProperties": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"type": map[string]any{
									"description": "string, integer, number, boolean or array. Missing or unknown types are treated as string.",
								},
								"enum": map[string]any{
									"type":        "array",
									"description": "Allowed values, kept verbatim (spaces included).",
								},
								"default": map[string]any{
									"description": "Answer used when the flag is omitted. A property with a default is never mandatory.",
								},
								"items": map[string]any{
									"type":        "object",
									"description": "For arrays: items.enum lists the values that may be selected (flag may be repeated).",
								},
							},
						},
					},
					"required": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"allOf": map[string]any{"type": "array"},
					"anyOf": map[string]any{"type": "array"},
					"oneOf": map[string]any{"type": "array"},
					"if":    map[string]any{"type": "object"},
					"then": map[string]any{
						"type":        "object",
						"description": "Options defined only here are conditional.",
					},
					"else": map[string]any{
						"type":        "object",
						"description": "Options defined only here are conditional.",
					},
				},
			},
		},
	}

	out, _ := json.MarshalIndent(schema, "", "  ")
	return out
}

func stringMap(description string) map[string]any {
	return map[string]any{
		"description":          description,
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "string"},
	}
}
