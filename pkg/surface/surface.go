// SPDX-License-Identifier: MPL-2.0

package surface

import (
	"context"
	"fmt"
	"slices"

	"github.com/invowk/pkgsurface/pkg/condition"
	"github.com/invowk/pkgsurface/pkg/specifier"
	"github.com/invowk/pkgsurface/pkg/types"

	"github.com/spf13/afero"
)

// ListExports returns the public subpaths of the package at location.
func ListExports(ctx context.Context, location types.ManifestLocation, opts ...Option) ([]Mapping, error) {
	return List(ctx, location, false, opts...)
}

// ListImports returns the private "#" subpaths of the package at location.
func ListImports(ctx context.Context, location types.ManifestLocation, opts ...Option) ([]Mapping, error) {
	return List(ctx, location, true, opts...)
}

// List resolves the exports map of the package at location, or its imports
// map when isImports is set, into one Mapping per reachable name, sorted by
// name.
//
// location is a manifest file, the directory holding package.json, or a
// file:// URL. It may be empty when WithManifest is given, in which case
// patterns are expanded against the working directory.
func List(ctx context.Context, location types.ManifestLocation, isImports bool, opts ...Option) ([]Mapping, error) {
	o := newOptions(opts)

	if err := o.typ.Validate(); err != nil {
		return nil, err
	}
	if o.manifest != nil && location == "" {
		location = "."
	}

	file, dir, err := location.ResolveWith(func(p string) bool {
		isDir, _ := afero.IsDir(o.fs, p)
		return isDir
	})
	if err != nil {
		return nil, err
	}

	m := o.manifest
	if m == nil {
		if m, err = o.provider.Load(ctx, file); err != nil {
			return nil, err
		}
	}

	entries, err := specifier.Normalize(m.Field(isImports), isImports)
	if err != nil {
		return nil, err
	}

	conditions := condition.Build(o.typ, o.environment, o.conditions...)
	o.logger.Debug("resolving package surface",
		"field", specifier.FieldName(isImports),
		"manifest", file,
		"entries", len(entries),
		"conditions", conditions.Sorted())

	var out []Mapping
	if slices.ContainsFunc(entries, specifier.Entry.IsPattern) {
		fsys := afero.NewIOFS(afero.NewBasePathFs(o.fs, dir))
		if out, err = resolvePatterns(ctx, fsys, entries, conditions, o.logger); err != nil {
			return nil, fmt.Errorf("expand %s patterns in %s: %w", specifier.FieldName(isImports), file, err)
		}
	} else {
		out = resolveAllStatic(entries, conditions)
	}

	sortByName(out)
	return out, nil
}
