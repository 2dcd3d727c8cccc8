package schema

import "math"

// Kind is the option-level type of a property.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	// KindEnum is a scalar restricted to a list of choices.
	KindEnum Kind = "enum"
)

var kindsByType = map[TypeName]Kind{
	"string":  KindString,
	"integer": KindInteger,
	"number":  KindNumber,
	"boolean": KindBoolean,
	"array":   KindArray,
	"object":  KindObject,
}

// KindOf classifies a property schema. Unknown or missing types are strings.
func KindOf(s *Schema) Kind {
	if len(s.Enum) > 0 {
		return KindEnum
	}
	return declaredKind(s)
}

// declaredKind is the kind named by the type keyword alone, ignoring enum.
func declaredKind(s *Schema) Kind {
	if s == nil {
		return KindString
	}
	if k, ok := kindsByType[s.Type]; ok {
		return k
	}
	return KindString
}

// Coerce converts numeric values to the Go type templates expect for kind:
// int for integers, float64 for numbers. Other values pass through, as do
// integers that do not fit in an int.
func Coerce(kind Kind, v any) any {
	switch kind {
	case KindInteger:
		switch n := v.(type) {
		case float64:
			if fitsInt(n) {
				return int(n)
			}
		case float32:
			if fitsInt(float64(n)) {
				return int(n)
			}
		case int64:
			if n >= math.MinInt && n <= math.MaxInt {
				return int(n)
			}
		case int32:
			return int(n)
		case uint64:
			if n <= math.MaxInt {
				return int(n)
			}
		case uint:
			if n <= math.MaxInt {
				return int(n)
			}
		}
	case KindNumber:
		switch n := v.(type) {
		case int:
			return float64(n)
		case int64:
			return float64(n)
		case float32:
			return float64(n)
		}
	}
	return v
}

// fitsInt reports whether f is a whole number inside the int range.
// MaxInt rounds up to 2^63 as a float64, hence the strict bound.
func fitsInt(f float64) bool {
	return f == math.Trunc(f) && f >= math.MinInt && f < math.MaxInt
}
