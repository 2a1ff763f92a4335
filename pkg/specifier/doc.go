// SPDX-License-Identifier: MPL-2.0

// Package specifier models the conditional exports/imports tree of a package
// manifest and implements the two pure steps of resolving it: evaluating a
// conditional value against a condition set (Resolve) and turning the raw
// tree into canonical subpath entries (Normalize).
//
// Nothing in this package touches the filesystem; wildcard expansion lives in
// package surface.
package specifier
