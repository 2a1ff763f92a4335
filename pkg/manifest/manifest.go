// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"

	"github.com/invowk/pkgsurface/pkg/cueutil"
	"github.com/invowk/pkgsurface/pkg/specifier"

	"cuelang.org/go/cue"
)

const (
	fieldName    = "name"
	fieldExports = "exports"
	fieldImports = "imports"
)

// ErrInvalidManifest is the sentinel error wrapped by InvalidManifestError.
var ErrInvalidManifest = errors.New("invalid manifest")

type (
	// Manifest is the part of a package manifest the resolver reads.
	// A nil Exports or Imports means the field is absent.
	Manifest struct {
		Name    string
		Exports specifier.Value
		Imports specifier.Value
	}

	// InvalidManifestError reports a manifest that could not be read, could
	// not be parsed, or whose root is not an object.
	InvalidManifestError struct {
		// Path is the manifest file, empty when the manifest was supplied
		// in memory.
		Path string
		// Reason describes what is wrong.
		Reason string
		// Cause is the underlying read or parse error, if any.
		Cause error
	}
)

// Field returns the exports value, or the imports value when isImports is set.
func (m *Manifest) Field(isImports bool) specifier.Value {
	if m == nil {
		return nil
	}
	if isImports {
		return m.Imports
	}
	return m.Exports
}

// FromJSON parses manifest bytes. filename is used in error messages and may
// be empty for in-memory input.
func FromJSON(data []byte, filename string) (*Manifest, error) {
	opts := []cueutil.Option{}
	if filename != "" {
		opts = append(opts, cueutil.WithFilename(filename))
	}

	v, err := cueutil.Compile(data, opts...)
	if err != nil {
		return nil, &InvalidManifestError{Path: filename, Reason: "failed to parse", Cause: err}
	}

	m, err := FromValue(v)
	if err != nil {
		var imErr *InvalidManifestError
		if errors.As(err, &imErr) && imErr.Path == "" {
			imErr.Path = filename
		}
		return nil, err
	}
	return m, nil
}

// FromValue converts a compiled CUE value into a Manifest. The value must be
// a struct; the order of its fields is preserved in the conditional trees.
func FromValue(v cue.Value) (*Manifest, error) {
	if v.Err() != nil {
		return nil, &InvalidManifestError{Reason: "failed to evaluate", Cause: v.Err()}
	}
	if v.Kind() != cue.StructKind {
		return nil, &InvalidManifestError{Reason: fmt.Sprintf("expected an object, got %s", v.Kind())}
	}

	m := &Manifest{}

	if name := v.LookupPath(cue.MakePath(cue.Str(fieldName))); name.Exists() && name.Kind() == cue.StringKind {
		m.Name, _ = name.String()
	}

	var err error
	if m.Exports, err = lookupSpecifier(v, fieldExports); err != nil {
		return nil, err
	}
	if m.Imports, err = lookupSpecifier(v, fieldImports); err != nil {
		return nil, err
	}
	return m, nil
}

// lookupSpecifier converts the named top-level field, returning nil when the
// field is absent.
func lookupSpecifier(root cue.Value, field string) (specifier.Value, error) {
	v := root.LookupPath(cue.MakePath(cue.Str(field)))
	if !v.Exists() {
		return nil, nil
	}

	out, err := toSpecifier(v)
	if err != nil {
		return nil, &InvalidManifestError{Reason: fmt.Sprintf("failed to read %s", field), Cause: err}
	}
	return out, nil
}

// toSpecifier converts a CUE value into a conditional specifier tree.
// Numbers and booleans never select a target and are kept as Null, which is
// how a loader treats any non-string, non-object target.
func toSpecifier(v cue.Value) (specifier.Value, error) {
	switch v.Kind() {
	case cue.NullKind:
		return specifier.Null{}, nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, err
		}
		return specifier.Literal(s), nil
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, err
		}
		var list specifier.List
		for iter.Next() {
			e, err := toSpecifier(iter.Value())
			if err != nil {
				return nil, err
			}
			list = append(list, e)
		}
		if list == nil {
			list = specifier.List{}
		}
		return list, nil
	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return nil, err
		}
		m := specifier.ConditionMap{}
		for iter.Next() {
			e, err := toSpecifier(iter.Value())
			if err != nil {
				return nil, err
			}
			m = append(m, specifier.Field{Key: iter.Selector().Unquoted(), Value: e})
		}
		return m, nil
	default:
		return specifier.Null{}, nil
	}
}

// Error implements the error interface.
func (e *InvalidManifestError) Error() string {
	msg := "invalid manifest"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns ErrInvalidManifest and the underlying cause, so both
// errors.Is(err, ErrInvalidManifest) and errors.Is(err, fs.ErrNotExist) work.
func (e *InvalidManifestError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalidManifest}
	}
	return []error{ErrInvalidManifest, e.Cause}
}
