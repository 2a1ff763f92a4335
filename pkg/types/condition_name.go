// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidConditionName is the sentinel error wrapped by InvalidConditionNameError.
var ErrInvalidConditionName = errors.New("invalid condition name")

type (
	// ConditionName is a user supplied condition tag such as "browser",
	// "development" or "types". Any tag is accepted by the resolver; this type
	// only guards the command line and config file against values that can
	// never appear as a manifest key.
	ConditionName string

	// InvalidConditionNameError is returned when a ConditionName is empty or
	// contains whitespace.
	InvalidConditionNameError struct {
		Value ConditionName
	}
)

// String returns the string representation of the ConditionName.
func (c ConditionName) String() string { return string(c) }

// Validate returns an error if the ConditionName is empty or contains whitespace.
func (c ConditionName) Validate() error {
	if c == "" || strings.IndexFunc(string(c), unicode.IsSpace) >= 0 {
		return &InvalidConditionNameError{Value: c}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidConditionNameError) Error() string {
	return fmt.Sprintf("invalid condition name %q: must be non-empty and contain no whitespace", e.Value)
}

// Unwrap returns ErrInvalidConditionName for errors.Is() compatibility.
func (e *InvalidConditionNameError) Unwrap() error { return ErrInvalidConditionName }
