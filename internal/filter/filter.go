// SPDX-License-Identifier: MPL-2.0

// Package filter selects mappings by name with include and exclude globs.
//
// Patterns use gobwas/glob syntax with "/" as separator: "*" stays within one
// path segment, "**" crosses segments, and "{a,b}", "?" and "[...]" work as
// usual. "./features/**" keeps every name below ./features/.
package filter

import (
	"errors"
	"fmt"

	"github.com/invowk/pkgsurface/pkg/surface"

	"github.com/gobwas/glob"
)

// ErrInvalidPattern is the sentinel error wrapped by InvalidPatternError.
var ErrInvalidPattern = errors.New("invalid filter pattern")

type (
	// Filter keeps names matching any include pattern (or all names when
	// there are none) and not matching any exclude pattern.
	Filter struct {
		include []glob.Glob
		exclude []glob.Glob
	}

	// InvalidPatternError reports a pattern that does not compile.
	InvalidPatternError struct {
		Pattern string
		Cause   error
	}
)

// New compiles the include and exclude patterns.
func New(include, exclude []string) (*Filter, error) {
	in, err := compile(include)
	if err != nil {
		return nil, err
	}
	ex, err := compile(exclude)
	if err != nil {
		return nil, err
	}
	return &Filter{include: in, exclude: ex}, nil
}

func compile(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, &InvalidPatternError{Pattern: p, Cause: err}
		}
		out = append(out, g)
	}
	return out, nil
}

// Match reports whether name passes the filter.
func (f *Filter) Match(name string) bool {
	if f == nil {
		return true
	}
	if len(f.include) > 0 && !matchAny(f.include, name) {
		return false
	}
	return !matchAny(f.exclude, name)
}

// Apply returns the mappings whose name passes the filter, keeping their order.
func (f *Filter) Apply(mappings []surface.Mapping) []surface.Mapping {
	out := make([]surface.Mapping, 0, len(mappings))
	for _, m := range mappings {
		if f.Match(m.Name) {
			out = append(out, m)
		}
	}
	return out
}

func matchAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Error implements the error interface.
func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid filter pattern %q: %v", e.Pattern, e.Cause)
}

// Unwrap returns ErrInvalidPattern and the compile error.
func (e *InvalidPatternError) Unwrap() []error { return []error{ErrInvalidPattern, e.Cause} }
