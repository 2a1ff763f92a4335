// SPDX-License-Identifier: MPL-2.0

// Package surface lists the subpaths a package makes reachable through the
// "exports" and "imports" fields of its package.json.
//
// Conditional targets are resolved against the active conditions (the
// resolution type, "default", the environment and any extra tags). Wildcard
// keys such as "./features/*" are expanded by scanning the package directory
// for files matching the target, so the result lists concrete names:
//
//	mappings, err := surface.ListExports(ctx, "./my-package",
//		surface.WithType(types.ResolutionRequire),
//		surface.WithConditions("development"),
//	)
//
// When several wildcard keys produce the same name, the key with the longest
// literal text wins. Wildcard keys resolving to null hide the matches of less
// specific keys, and fixed keys always take precedence over wildcard matches.
package surface
