// SPDX-License-Identifier: MPL-2.0

package surface

import (
	"cmp"
	"slices"
)

// Mapping is one public subpath of a package.
type Mapping struct {
	// Name is the subpath as used to import it, e.g. "./deep/export" or
	// "#internal". The main export is ".".
	Name string `json:"name" yaml:"name" toml:"name"`

	// Path is the file the subpath resolves to, relative to the manifest
	// directory.
	Path string `json:"path" yaml:"path" toml:"path"`

	// RegisteredName is the manifest key that produced the mapping. For
	// pattern keys it still contains the "*", so several mappings can share
	// one RegisteredName.
	RegisteredName string `json:"registeredName" yaml:"registeredName" toml:"registeredName"`

	// RegisteredPath is the resolved target of the manifest key, with its
	// "*" for pattern keys.
	RegisteredPath string `json:"registeredPath" yaml:"registeredPath" toml:"registeredPath"`
}

// IsPattern reports whether the mapping was produced by a wildcard key.
func (m Mapping) IsPattern() bool {
	return m.Name != m.RegisteredName
}

// sortByName orders mappings by name.
func sortByName(ms []Mapping) {
	slices.SortFunc(ms, func(a, b Mapping) int {
		return cmp.Compare(a.Name, b.Name)
	})
}
