// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize is the default maximum input size for CUE compilation (5MB).
// Real package manifests are a few kilobytes; the limit keeps a stray
// multi-gigabyte file from being read into memory.
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

type (
	// compileOptions holds configuration for CUE compilation.
	compileOptions struct {
		maxFileSize int64
		concrete    bool
		filename    string
		schema      string
		schemaPath  string
	}

	// Option configures compilation behavior.
	Option func(*compileOptions)
)

// defaultOptions returns the default compile options.
func defaultOptions() compileOptions {
	return compileOptions{
		maxFileSize: DefaultMaxFileSize,
		concrete:    true,
	}
}

func applyOptions(opts []Option) compileOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// displayName returns the filename used in error messages.
func (o compileOptions) displayName() string {
	if o.filename == "" {
		return "<input>"
	}
	return o.filename
}

// WithMaxFileSize sets the maximum allowed input size.
// Default is DefaultMaxFileSize (5MB).
func WithMaxFileSize(size int64) Option {
	return func(o *compileOptions) {
		o.maxFileSize = size
	}
}

// WithConcrete sets whether all values must be concrete after unification.
// Default is true (require concrete values).
//
// Set to false for config files where some fields may be optional and
// unset values are acceptable.
func WithConcrete(concrete bool) Option {
	return func(o *compileOptions) {
		o.concrete = concrete
	}
}

// WithFilename sets the filename for error messages.
func WithFilename(name string) Option {
	return func(o *compileOptions) {
		o.filename = name
	}
}

// WithSchema unifies the input with the definition at path (e.g. "#Config")
// inside the given CUE schema source.
func WithSchema(schema, path string) Option {
	return func(o *compileOptions) {
		o.schema = schema
		o.schemaPath = path
	}
}
