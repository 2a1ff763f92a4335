// SPDX-License-Identifier: MPL-2.0

package surface

import (
	"io"

	"github.com/invowk/pkgsurface/pkg/manifest"
	"github.com/invowk/pkgsurface/pkg/types"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// DefaultEnvironment is the environment condition used when none is given.
const DefaultEnvironment = "node"

type (
	// options holds the per-call resolution inputs.
	options struct {
		manifest    *manifest.Manifest
		typ         types.ResolutionType
		environment string
		conditions  []string
		fs          afero.Fs
		provider    manifest.Provider
		logger      *log.Logger
	}

	// Option configures a resolution call.
	Option func(*options)
)

// defaultOptions returns the defaults of an ESM consumer running in Node.js.
func defaultOptions() options {
	return options{
		typ:         types.ResolutionImport,
		environment: DefaultEnvironment,
	}
}

// newOptions applies opts on top of the defaults and fills in collaborators
// that were not supplied.
func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.fs == nil {
		o.fs = afero.NewOsFs()
	}
	if o.provider == nil {
		o.provider = manifest.NewProviderFs(o.fs)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return o
}

// WithManifest supplies an already parsed manifest. The location is then only
// used as the root directory for pattern scans.
func WithManifest(m *manifest.Manifest) Option {
	return func(o *options) {
		o.manifest = m
	}
}

// WithType sets how the package is loaded. Default is types.ResolutionImport.
func WithType(t types.ResolutionType) Option {
	return func(o *options) {
		o.typ = t
	}
}

// WithoutType disables the type conditions (including "default").
func WithoutType() Option {
	return WithType(types.ResolutionNone)
}

// WithEnvironment sets the environment condition. Default is "node".
func WithEnvironment(env string) Option {
	return func(o *options) {
		o.environment = env
	}
}

// WithoutEnvironment disables the environment condition.
func WithoutEnvironment() Option {
	return WithEnvironment("")
}

// WithConditions adds extra condition tags such as "browser" or "development".
func WithConditions(conditions ...string) Option {
	return func(o *options) {
		o.conditions = append(o.conditions, conditions...)
	}
}

// WithFs sets the filesystem manifests are read from and patterns are
// expanded against. Default is the operating system filesystem.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithProvider replaces the manifest provider.
func WithProvider(p manifest.Provider) Option {
	return func(o *options) {
		o.provider = p
	}
}

// WithLogger sets the logger for debug output. Default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
