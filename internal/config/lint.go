package config

import (
	"fmt"

	"github.com/re-cinq/instruct/internal/schema"
)

// Lint checks a parsed Document for authoring mistakes the meta-schema does
// not catch. Returns one human-readable string per issue.
func Lint(doc *Document) []string {
	var errs []string

	set := schema.Normalize(doc.Schema)
	for _, name := range requiredNames(doc.Schema) {
		if _, ok := set.Get(name); !ok {
			errs = append(errs, fmt.Sprintf("required: %q has no property definition", name))
		}
	}

	errs = append(errs, lintNode("", doc.Schema)...)
	return errs
}

func lintNode(path string, node *schema.Schema) []string {
	var errs []string

	for _, key := range node.Properties.Keys() {
		prop, _ := node.Properties.Get(key)
		at := join(path, "properties."+key)

		switch schema.KindOf(prop) {
		case schema.KindEnum:
			if prop.Default != nil && !containsValue(prop.Enum, prop.Default) {
				errs = append(errs, fmt.Sprintf("%s.default: %v is not one of the enum values", at, prop.Default))
			}
		case schema.KindArray:
			if prop.Items == nil || len(prop.Items.Enum) == 0 {
				errs = append(errs, fmt.Sprintf("%s: arrays need items.enum to be answerable", at))
				break
			}
			if list, ok := prop.Default.([]any); ok {
				for _, v := range list {
					if !containsValue(prop.Items.Enum, v) {
						errs = append(errs, fmt.Sprintf("%s.default: %v is not one of items.enum", at, v))
					}
				}
			}
		case schema.KindObject:
			errs = append(errs, fmt.Sprintf("%s: nested objects cannot be answered with flags", at))
		}
	}

	groups := []struct {
		name    string
		members []*schema.Schema
	}{
		{"allOf", node.AllOf},
		{"anyOf", node.AnyOf},
		{"oneOf", node.OneOf},
	}
	for _, g := range groups {
		for i, sub := range g.members {
			if sub != nil {
				errs = append(errs, lintNode(join(path, fmt.Sprintf("%s[%d]", g.name, i)), sub)...)
			}
		}
	}

	if node.If == nil {
		if node.Then != nil {
			errs = append(errs, fmt.Sprintf("%s: then without if is ignored", join(path, "then")))
		}
		if node.Else != nil {
			errs = append(errs, fmt.Sprintf("%s: else without if is ignored", join(path, "else")))
		}
		return errs
	}
	if node.Then != nil {
		errs = append(errs, lintNode(join(path, "then"), node.Then)...)
	}
	if node.Else != nil {
		errs = append(errs, lintNode(join(path, "else"), node.Else)...)
	}
	return errs
}

// requiredNames collects every name listed under required anywhere in the
// tree except inside if, which constrains rather than declares.
func requiredNames(node *schema.Schema) []string {
	names := append([]string(nil), node.Required...)
	for _, group := range [][]*schema.Schema{node.AllOf, node.AnyOf, node.OneOf} {
		for _, sub := range group {
			if sub != nil {
				names = append(names, requiredNames(sub)...)
			}
		}
	}
	for _, sub := range []*schema.Schema{node.Then, node.Else} {
		if sub != nil {
			names = append(names, requiredNames(sub)...)
		}
	}
	return names
}

func containsValue(list []any, v any) bool {
	want := fmt.Sprint(v)
	for _, item := range list {
		if fmt.Sprint(item) == want {
			return true
		}
	}
	return false
}

func join(path, part string) string {
	if path == "" {
		return part
	}
	return path + "." + part
}
