// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE compilation utilities.
//
// Package manifests are JSON, and JSON is valid CUE, so both the manifest
// loader and the configuration loader go through the same steps:
//
//  1. Check the input size
//  2. Compile the input (and, optionally, an embedded schema)
//  3. Unify with the schema definition and validate
//
// Compiled values keep struct fields in source order, which the manifest
// loader relies on to honor the declaration order of conditions.
//
// # Usage
//
//	v, err := cueutil.Compile(data,
//	    cueutil.WithFilename("package.json"),
//	)
//	if err != nil {
//	    return nil, err // Error includes the CUE path for debugging
//	}
package cueutil
