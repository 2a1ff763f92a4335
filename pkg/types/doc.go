// SPDX-License-Identifier: MPL-2.0

// Package types defines small validated value types shared by the resolver,
// the configuration layer and the CLI.
//
// Each type exposes Validate() returning a typed error that wraps a package
// sentinel, so callers can use errors.Is for detection and errors.As to read
// the offending value.
package types
