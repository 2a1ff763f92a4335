// SPDX-License-Identifier: MPL-2.0

package specifier

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// RootKey is the name of a package's main export.
	RootKey = "."
	// ImportPrefix starts every key of an imports map.
	ImportPrefix = "#"
	// Wildcard marks the substitution point of a pattern key or target.
	Wildcard = "*"
)

// ErrMalformedSpecifierMap is the sentinel error wrapped by MalformedSpecifierMapError.
var ErrMalformedSpecifierMap = errors.New("malformed specifier map")

type (
	// Entry is one canonical row of a specifier map.
	Entry struct {
		// RegisteredKey is the key exactly as written in the manifest.
		RegisteredKey string
		// MatchKey is the key used for matching. Legacy folder keys ending in
		// "/" are rewritten to end in "*".
		MatchKey string
		// Value is the conditional target of the key.
		Value Value
	}

	// MalformedSpecifierMapError reports a specifier map whose keys or shape
	// cannot be interpreted.
	MalformedSpecifierMapError struct {
		// Field is "exports" or "imports".
		Field string
		// Key is the offending key, if one can be named.
		Key string
		// Reason describes what is wrong.
		Reason string
	}
)

// IsPattern reports whether the entry's match key contains a wildcard.
func (e Entry) IsPattern() bool {
	return strings.Contains(e.MatchKey, Wildcard)
}

// FieldName returns the manifest field an entry table is read from.
func FieldName(isImports bool) string {
	if isImports {
		return "imports"
	}
	return "exports"
}

// Normalize turns the raw exports (or imports, when isImports is set) value of
// a manifest into canonical entries in declaration order.
//
// A nil or Null value has no entries. For exports, a bare Literal or List and
// a ConditionMap keyed by condition tags all describe the single "." entry.
// Exports keys must be either all subpaths ("." or "./...") or all
// conditions. Imports must be a ConditionMap whose keys all start with "#".
func Normalize(v Value, isImports bool) ([]Entry, error) {
	field := FieldName(isImports)

	var m ConditionMap
	switch v := v.(type) {
	case nil, Null:
		return nil, nil
	case Literal, List:
		if isImports {
			return nil, &MalformedSpecifierMapError{Field: field, Reason: "expected an object"}
		}
		return []Entry{{RegisteredKey: RootKey, MatchKey: RootKey, Value: v}}, nil
	case ConditionMap:
		m = v
	default:
		return nil, &MalformedSpecifierMapError{Field: field, Reason: fmt.Sprintf("unsupported value %T", v)}
	}

	if len(m) == 0 {
		return nil, nil
	}

	if isImports {
		for _, f := range m {
			if !strings.HasPrefix(f.Key, ImportPrefix) {
				return nil, &MalformedSpecifierMapError{Field: field, Key: f.Key, Reason: "key does not start with #"}
			}
		}
	} else {
		subpaths := isSubpathKey(m[0].Key)
		for _, f := range m[1:] {
			if isSubpathKey(f.Key) != subpaths {
				return nil, &MalformedSpecifierMapError{Field: field, Key: f.Key, Reason: "only some keys start with ./"}
			}
		}
		if !subpaths {
			return []Entry{{RegisteredKey: RootKey, MatchKey: RootKey, Value: m}}, nil
		}
	}

	entries := make([]Entry, 0, len(m))
	for _, f := range m {
		entries = append(entries, canonical(f.Key, f.Value))
	}
	return entries, nil
}

// canonical rewrites legacy folder mappings ("./dir/": "./lib/") into the
// equivalent pattern ("./dir/*": "./lib/*").
func canonical(key string, v Value) Entry {
	if !strings.HasSuffix(key, "/") {
		return Entry{RegisteredKey: key, MatchKey: key, Value: v}
	}
	return Entry{RegisteredKey: key, MatchKey: key + Wildcard, Value: appendWildcard(v)}
}

// appendWildcard appends "*" to every literal target reachable from v.
func appendWildcard(v Value) Value {
	switch v := v.(type) {
	case Literal:
		return v + Wildcard
	case List:
		out := make(List, len(v))
		for i, e := range v {
			out[i] = appendWildcard(e)
		}
		return out
	case ConditionMap:
		out := make(ConditionMap, len(v))
		for i, f := range v {
			out[i] = Field{Key: f.Key, Value: appendWildcard(f.Value)}
		}
		return out
	default:
		return v
	}
}

func isSubpathKey(key string) bool {
	return key == RootKey || strings.HasPrefix(key, "./")
}

// Error implements the error interface.
func (e *MalformedSpecifierMapError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("malformed %s object: key %q: %s", e.Field, e.Key, e.Reason)
	}
	return fmt.Sprintf("malformed %s value: %s", e.Field, e.Reason)
}

// Unwrap returns ErrMalformedSpecifierMap for errors.Is() compatibility.
func (e *MalformedSpecifierMapError) Unwrap() error { return ErrMalformedSpecifierMap }
