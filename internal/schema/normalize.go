package schema

// Property is the normalized, UI-agnostic description of one option.
type Property struct {
	Key         string
	Kind        Kind
	// ValueKind is the declared type of the value, or of each element for
	// KindArray. It drives numeric coercion for enums too.
	ValueKind   Kind
	Title       string
	Description string
	Default     any
	// Choices holds enum values for KindEnum and items.enum for KindArray.
	Choices     []any
	Required    bool
	Conditional bool
}

// HasDefault reports whether the schema supplied a default.
func (p Property) HasDefault() bool {
	return p.Default != nil
}

// Coerce converts v to the Go representation of the property's declared
// type. Array elements are converted one by one.
func (p Property) Coerce(v any) any {
	if p.Kind != KindArray {
		return Coerce(p.ValueKind, v)
	}
	items, ok := v.([]any)
	if !ok {
		return v
	}
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = Coerce(p.ValueKind, item)
	}
	return out
}

// Set is an insertion-ordered collection of properties keyed by name.
type Set struct {
	keys  []string
	byKey map[string]Property
}

func newSet() *Set {
	return &Set{byKey: make(map[string]Property)}
}

func (s *Set) put(p Property) {
	if _, ok := s.byKey[p.Key]; !ok {
		s.keys = append(s.keys, p.Key)
	}
	s.byKey[p.Key] = p
}

// Get returns the property for key.
func (s *Set) Get(key string) (Property, bool) {
	p, ok := s.byKey[key]
	return p, ok
}

// Keys returns property keys in the order they were first seen.
func (s *Set) Keys() []string {
	return append([]string(nil), s.keys...)
}

// All returns the properties in order.
func (s *Set) All() []Property {
	out := make([]Property, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.byKey[k])
	}
	return out
}

// Len returns the number of properties.
func (s *Set) Len() int {
	return len(s.keys)
}

// Normalize flattens root into an ordered property set. Properties reachable
// only through then/else are marked conditional. When a key is defined more
// than once the last definition wins but keeps its first position.
func Normalize(root *Schema) *Set {
	set := newSet()
	if root == nil {
		return set
	}
	visit(root, nil, false, set)
	return set
}

func visit(node *Schema, inherited map[string]bool, conditional bool, set *Set) {
	required := make(map[string]bool, len(inherited)+len(node.Required))
	for name := range inherited {
		required[name] = true
	}
	for _, name := range node.Required {
		required[name] = true
	}

	for _, key := range node.Properties.Keys() {
		prop, _ := node.Properties.Get(key)
		set.put(property(key, prop, required[key], conditional))
	}

	for _, group := range [][]*Schema{node.AllOf, node.AnyOf, node.OneOf} {
		for _, sub := range group {
			if sub != nil {
				visit(sub, required, conditional, set)
			}
		}
	}

	if node.If == nil {
		return
	}
	if node.Then != nil {
		visit(node.Then, required, true, set)
	}
	if node.Else != nil {
		visit(node.Else, required, true, set)
	}
}

func property(key string, s *Schema, required, conditional bool) Property {
	kind := KindOf(s)
	p := Property{
		Key:         key,
		Kind:        kind,
		Title:       s.Title,
		Description: s.Description,
		ValueKind:   declaredKind(s),
		Conditional: conditional,
	}
	choices := s.Enum
	if kind == KindArray {
		p.ValueKind = declaredKind(s.Items)
		if s.Items != nil {
			choices = s.Items.Enum
		}
	}
	for _, v := range choices {
		p.Choices = append(p.Choices, p.Coerce(v))
	}
	p.Default = p.Coerce(s.Default)
	p.Required = required && p.Default == nil
	return p
}
