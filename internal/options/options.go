// Package options turns a normalized schema into command-line option
// descriptors.
package options

import (
	"fmt"
	"strings"

	"github.com/re-cinq/instruct/internal/config"
	"github.com/re-cinq/instruct/internal/schema"
)

// Mode selects how defaults and required-ness are treated.
type Mode int

const (
	// Invocation builds flags for answering the questions.
	Invocation Mode = iota
	// Discovery builds flags that only collect what the user typed:
	// nothing is required and nothing has a default.
	Discovery
)

// Choice is one allowed value of an enum or array-of-enum option.
type Choice struct {
	Value       any    `json:"value" yaml:"value"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Flag describes one option as a command-line flag.
type Flag struct {
	Key  string `json:"key" yaml:"key"`
	Name string `json:"flag" yaml:"flag"`
	// Negation is set for required booleans without a default, which are
	// answered with --name or --no-name.
	Negation    string      `json:"negation,omitempty" yaml:"negation,omitempty"`
	Kind        schema.Kind `json:"kind" yaml:"kind"`
	Choices     []Choice    `json:"choices,omitempty" yaml:"choices,omitempty"`
	Multiple    bool        `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Default     any         `json:"default,omitempty" yaml:"default,omitempty"`
	Required    bool        `json:"required" yaml:"required"`
	Conditional bool        `json:"conditional,omitempty" yaml:"conditional,omitempty"`
	Title       string      `json:"title" yaml:"title"`
	Help        string      `json:"help,omitempty" yaml:"help,omitempty"`
}

// Params carries what Extract needs beyond the schema.
type Params struct {
	Misc config.Misc
	// Saved holds the user's stored answers for the current project.
	Saved  map[string]any
	Mode   Mode
	HostOS string
}

// FlagName derives the long flag for key: underscores and spaces become
// hyphens and leading or trailing hyphens are dropped.
func FlagName(key string) string {
	name := strings.NewReplacer("_", "-", " ", "-").Replace(key)
	return "--" + strings.Trim(name, "-")
}

// Extract builds one Flag per property of set, in order. In Discovery mode
// it also returns the schema defaults keyed by property.
func Extract(set *schema.Set, p Params) ([]Flag, map[string]any) {
	flags := make([]Flag, 0, set.Len())
	var defaults map[string]any
	if p.Mode == Discovery {
		defaults = make(map[string]any)
	}

	for _, prop := range set.All() {
		f := Flag{
			Key:         prop.Key,
			Name:        FlagName(prop.Key),
			Kind:        prop.Kind,
			Default:     prop.Default,
			Required:    prop.Required,
			Conditional: prop.Conditional,
			Title:       prop.Title,
			Help:        prop.Description,
		}
		if f.Title == "" {
			f.Title = p.Misc.PrettyName(prop.Key)
		}
		if f.Help == "" {
			f.Help = p.Misc.DescriptionOf(prop.Key)
		}
		for _, v := range prop.Choices {
			s := fmt.Sprint(v)
			f.Choices = append(f.Choices, Choice{
				Value:       v,
				Title:       p.Misc.PrettyName(s),
				Description: p.Misc.DescriptionOf(s),
			})
		}
		if f.Kind == schema.KindArray {
			f.Multiple = true
			if f.Default == nil {
				f.Default = []any{}
			}
		}
		if f.Kind == schema.KindBoolean && f.Required {
			f.Negation = "--no-" + strings.TrimPrefix(f.Name, "--")
		}

		if p.Mode == Discovery {
			if f.Default != nil {
				defaults[f.Key] = f.Default
			}
			f.Default = nil
			f.Required = false
			f.Negation = ""
			flags = append(flags, f)
			continue
		}

		if v, ok := p.Saved[f.Key]; ok {
			f.Default = v
			f.Required = false
			f.Negation = ""
		} else if isOSKey(f.Key) && f.Default == nil && len(f.Choices) > 0 {
			if c, ok := hostChoice(f.Choices, p.HostOS); ok {
				f.Default = c.Value
				f.Required = false
			}
		}
		flags = append(flags, f)
	}
	return flags, defaults
}

// Match returns the canonical choice value for user text, ignoring case.
func (f Flag) Match(text string) (any, bool) {
	for _, c := range f.Choices {
		if strings.EqualFold(fmt.Sprint(c.Value), text) {
			return c.Value, true
		}
	}
	return nil, false
}

// Usage builds the help line shown next to the flag.
func (f Flag) Usage() string {
	var parts []string
	if f.Help != "" {
		parts = append(parts, f.Help)
	} else if f.Title != "" && f.Title != f.Key {
		parts = append(parts, f.Title)
	}
	if len(f.Choices) > 0 {
		values := make([]string, len(f.Choices))
		for i, c := range f.Choices {
			values[i] = fmt.Sprint(c.Value)
		}
		parts = append(parts, "Choices: "+strings.Join(values, ", "))
	}
	if f.Multiple {
		parts = append(parts, "(repeatable)")
	}
	if f.Conditional {
		parts = append(parts, "[Conditional]")
	}
	return strings.Join(parts, " ")
}

func isOSKey(key string) bool {
	return strings.EqualFold(strings.Trim(key, "_"), "os")
}

func hostChoice(choices []Choice, goos string) (Choice, bool) {
	token := goos
	switch goos {
	case "darwin":
		token = "mac"
	case "windows":
		token = "win"
	}
	if token == "" {
		return Choice{}, false
	}
	for _, c := range choices {
		if strings.Contains(strings.ToLower(fmt.Sprint(c.Value)), token) {
			return c, true
		}
	}
	return Choice{}, false
}
