// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
)

type (
	// Provider loads a manifest from a file.
	Provider interface {
		Load(ctx context.Context, path string) (*Manifest, error)
	}

	fileProvider struct {
		fs afero.Fs
	}
)

// NewProvider creates a provider reading from the operating system filesystem.
func NewProvider() Provider {
	return NewProviderFs(afero.NewOsFs())
}

// NewProviderFs creates a provider reading from fs.
func NewProviderFs(fs afero.Fs) Provider {
	return &fileProvider{fs: fs}
}

// Load reads and parses the manifest at path.
func (p *fileProvider) Load(ctx context.Context, path string) (*Manifest, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load manifest canceled: %w", ctx.Err())
	default:
	}

	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return nil, &InvalidManifestError{Path: path, Reason: "failed to read", Cause: err}
	}

	return FromJSON(data, path)
}
