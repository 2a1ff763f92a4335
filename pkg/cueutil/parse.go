// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Compile performs the CUE compilation flow:
//
//  1. Check the input size
//  2. Compile the input, and the schema if one is configured
//  3. Unify with the schema definition and validate
//
// The returned value shares a fresh cue.Context; callers may keep it around
// for as long as they need to read from it.
func Compile(data []byte, opts ...Option) (cue.Value, error) {
	options := applyOptions(opts)
	filename := options.displayName()

	if err := CheckFileSize(data, options.maxFileSize, filename); err != nil {
		return cue.Value{}, err
	}

	ctx := cuecontext.New()

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if value.Err() != nil {
		return cue.Value{}, FormatError(value.Err(), filename)
	}

	if options.schema != "" {
		schemaValue := ctx.CompileString(options.schema)
		if schemaValue.Err() != nil {
			return cue.Value{}, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
		}

		schemaRoot := schemaValue.LookupPath(cue.ParsePath(options.schemaPath))
		if schemaRoot.Err() != nil {
			return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", options.schemaPath, schemaRoot.Err())
		}

		value = schemaRoot.Unify(value)
	}

	if err := value.Validate(cue.Concrete(options.concrete)); err != nil {
		return cue.Value{}, FormatError(err, filename)
	}

	return value, nil
}

// Decode compiles data like Compile and decodes the result into a T.
func Decode[T any](data []byte, opts ...Option) (*T, cue.Value, error) {
	value, err := Compile(data, opts...)
	if err != nil {
		return nil, cue.Value{}, err
	}

	var result T
	if err := value.Decode(&result); err != nil {
		return nil, cue.Value{}, FormatError(err, applyOptions(opts).displayName())
	}
	return &result, value, nil
}
