// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
)

const (
	// ResolutionImport enables the "import" and "default" conditions.
	ResolutionImport ResolutionType = "import"
	// ResolutionRequire enables the "require" and "default" conditions.
	ResolutionRequire ResolutionType = "require"
	// ResolutionDefault enables only the "default" condition.
	ResolutionDefault ResolutionType = "default"
	// ResolutionNone enables no type-related condition at all.
	// It is spelled "none" on the command line and in config files.
	ResolutionNone ResolutionType = "none"
)

// ErrInvalidResolutionType is the sentinel error wrapped by InvalidResolutionTypeError.
var ErrInvalidResolutionType = errors.New("invalid resolution type")

type (
	// ResolutionType selects how a package is loaded (ESM import, CommonJS
	// require, or neither) and therefore which type conditions are active.
	ResolutionType string

	// InvalidResolutionTypeError is returned when a ResolutionType is not one
	// of the known values.
	InvalidResolutionTypeError struct {
		Value ResolutionType
	}
)

// ResolutionTypes returns all accepted values in display order.
func ResolutionTypes() []ResolutionType {
	return []ResolutionType{ResolutionImport, ResolutionRequire, ResolutionDefault, ResolutionNone}
}

// String returns the string representation of the ResolutionType.
func (r ResolutionType) String() string { return string(r) }

// Validate returns an error if the ResolutionType is not a known value.
func (r ResolutionType) Validate() error {
	switch r {
	case ResolutionImport, ResolutionRequire, ResolutionDefault, ResolutionNone:
		return nil
	default:
		return &InvalidResolutionTypeError{Value: r}
	}
}

// Condition returns the condition tag contributed by this type and whether
// there is one. ResolutionNone contributes nothing.
func (r ResolutionType) Condition() (string, bool) {
	if r == ResolutionNone || r == "" {
		return "", false
	}
	return string(r), true
}

// Error implements the error interface.
func (e *InvalidResolutionTypeError) Error() string {
	return fmt.Sprintf("invalid resolution type %q (must be one of import, require, default, none)", e.Value)
}

// Unwrap returns ErrInvalidResolutionType for errors.Is() compatibility.
func (e *InvalidResolutionTypeError) Unwrap() error { return ErrInvalidResolutionType }
