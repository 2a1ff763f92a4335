// SPDX-License-Identifier: MPL-2.0

package surface

import (
	"github.com/invowk/pkgsurface/pkg/condition"
	"github.com/invowk/pkgsurface/pkg/specifier"
)

// resolveStatic maps a wildcard-free entry to its target. ok is false when
// the entry resolves to nothing under the active conditions.
func resolveStatic(e specifier.Entry, conditions condition.Set) (Mapping, bool) {
	p, ok := specifier.Resolve(e.Value, conditions)
	if !ok {
		return Mapping{}, false
	}
	return Mapping{
		Name:           e.MatchKey,
		Path:           p,
		RegisteredName: e.RegisteredKey,
		RegisteredPath: p,
	}, true
}

// resolveAllStatic resolves a specifier map without wildcard keys.
func resolveAllStatic(entries []specifier.Entry, conditions condition.Set) []Mapping {
	out := make([]Mapping, 0, len(entries))
	for _, e := range entries {
		if m, ok := resolveStatic(e, conditions); ok {
			out = append(out, m)
		}
	}
	return out
}
