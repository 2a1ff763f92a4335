// SPDX-License-Identifier: MPL-2.0

package specifier

import "strings"

type (
	// Value is a node of a conditional specifier tree. It is one of Null,
	// Literal, List or ConditionMap; the set is closed by the unexported
	// marker method so type switches over Value are exhaustive.
	Value interface {
		isValue()
	}

	// Null is an explicit null in the manifest. As a target it hides the
	// subpath it is declared for.
	Null struct{}

	// Literal is a terminal target path such as "./dist/index.js".
	Literal string

	// List is an ordered fallback list. Only its first element is consulted.
	List []Value

	// ConditionMap is an ordered mapping. Below the top level every key is a
	// condition tag; at the top level the keys may be subpaths instead.
	ConditionMap []Field

	// Field is one key/value pair of a ConditionMap, kept in declaration order.
	Field struct {
		Key   string
		Value Value
	}
)

func (Null) isValue()         {}
func (Literal) isValue()      {}
func (List) isValue()         {}
func (ConditionMap) isValue() {}

// Keys returns the map keys in declaration order.
func (m ConditionMap) Keys() []string {
	keys := make([]string, len(m))
	for i, f := range m {
		keys[i] = f.Key
	}
	return keys
}

// Get returns the value of the first field named key.
func (m ConditionMap) Get(key string) (Value, bool) {
	for _, f := range m {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// String renders the value in a compact JSON-like form for logs and errors.
func String(v Value) string {
	var sb strings.Builder
	writeValue(&sb, v)
	return sb.String()
}

func writeValue(sb *strings.Builder, v Value) {
	switch v := v.(type) {
	case nil, Null:
		sb.WriteString("null")
	case Literal:
		sb.WriteByte('"')
		sb.WriteString(string(v))
		sb.WriteByte('"')
	case List:
		sb.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeValue(sb, e)
		}
		sb.WriteByte(']')
	case ConditionMap:
		sb.WriteByte('{')
		for i, f := range v {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteByte('"')
			sb.WriteString(f.Key)
			sb.WriteString(`": `)
			writeValue(sb, f.Value)
		}
		sb.WriteByte('}')
	}
}
