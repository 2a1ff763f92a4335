// SPDX-License-Identifier: MPL-2.0

// Package manifest reads the exports and imports fields of a package manifest
// (package.json) into specifier trees.
//
// Manifests are compiled with CUE, which accepts JSON unchanged and keeps
// object fields in source order. Declaration order is significant: the first
// active condition of a conditional target wins.
package manifest
