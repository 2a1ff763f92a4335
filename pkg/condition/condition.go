// SPDX-License-Identifier: MPL-2.0

// Package condition builds the set of active condition tags for one
// resolution call.
package condition

import (
	"slices"

	"github.com/invowk/pkgsurface/pkg/types"
)

// Default is the condition that every typed resolution enables.
const Default = "default"

// Set is an immutable set of condition tags. Only membership matters; the
// order in which tags were added is not observable.
type Set struct {
	tags map[string]struct{}
}

// Build returns extra ∪ {typ, "default"} ∪ {environment}. The type part is
// skipped for types.ResolutionNone (or an empty type) and the environment
// part is skipped when environment is empty. Tags are not validated.
func Build(typ types.ResolutionType, environment string, extra ...string) Set {
	tags := make(map[string]struct{}, len(extra)+3)
	for _, c := range extra {
		tags[c] = struct{}{}
	}

	if c, ok := typ.Condition(); ok {
		tags[c] = struct{}{}
		tags[Default] = struct{}{}
	}

	if environment != "" {
		tags[environment] = struct{}{}
	}

	return Set{tags: tags}
}

// Of returns a set holding exactly the given tags.
func Of(tags ...string) Set {
	return Build(types.ResolutionNone, "", tags...)
}

// Has reports whether tag is active.
func (s Set) Has(tag string) bool {
	_, ok := s.tags[tag]
	return ok
}

// Len returns the number of active tags.
func (s Set) Len() int { return len(s.tags) }

// Sorted returns the tags in lexical order, for logs and display.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s.tags))
	for t := range s.tags {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}
