// SPDX-License-Identifier: MPL-2.0

package surface

import (
	"errors"
	"fmt"

	"github.com/invowk/pkgsurface/pkg/manifest"
	"github.com/invowk/pkgsurface/pkg/specifier"
)

var (
	// ErrMalformedPatternTarget is the sentinel error wrapped by MalformedPatternTargetError.
	ErrMalformedPatternTarget = errors.New("malformed pattern target")

	// ErrInvalidManifest is returned (wrapped) when the manifest cannot be read,
	// parsed, or is not an object.
	ErrInvalidManifest = manifest.ErrInvalidManifest

	// ErrMalformedSpecifierMap is returned (wrapped) when the exports or
	// imports keys are inconsistent.
	ErrMalformedSpecifierMap = specifier.ErrMalformedSpecifierMap
)

// MalformedPatternTargetError reports a wildcard key whose resolved target
// has no "*" to substitute into.
type MalformedPatternTargetError struct {
	Key    string
	Target string
}

// Error implements the error interface.
func (e *MalformedPatternTargetError) Error() string {
	return fmt.Sprintf("malformed pattern %q: target %q must contain * if the key contains *", e.Key, e.Target)
}

// Unwrap returns ErrMalformedPatternTarget for errors.Is() compatibility.
func (e *MalformedPatternTargetError) Unwrap() error { return ErrMalformedPatternTarget }
