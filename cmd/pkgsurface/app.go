// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/invowk/pkgsurface/internal/config"
	"github.com/invowk/pkgsurface/pkg/surface"
	"github.com/invowk/pkgsurface/pkg/types"

	"github.com/spf13/afero"
)

// defaultGuideStyle picks a dark or plain guide depending on the terminal.
const defaultGuideStyle = "auto"

type (
	// App wires CLI services and shared dependencies. Every command handler
	// receives an App and delegates to its services.
	App struct {
		Config     ConfigProvider
		Surface    SurfaceService
		stdout     io.Writer
		stderr     io.Writer
		guideStyle string
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config  ConfigProvider
		Surface SurfaceService
		// Fs backs the default SurfaceService. Nil means the OS filesystem.
		Fs     afero.Fs
		Stdout io.Writer
		Stderr io.Writer
		// GuideStyle is the glamour style for issue guides in verbose mode.
		GuideStyle string
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// SurfaceService lists the exports or imports of a package.
	SurfaceService interface {
		List(ctx context.Context, location types.ManifestLocation, isImports bool, opts ...surface.Option) ([]surface.Mapping, error)
	}

	fsSurfaceService struct {
		fs afero.Fs
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Surface == nil {
		deps.Surface = &fsSurfaceService{fs: deps.Fs}
	}
	if deps.GuideStyle == "" {
		deps.GuideStyle = defaultGuideStyle
	}

	return &App{
		Config:     deps.Config,
		Surface:    deps.Surface,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
		guideStyle: deps.GuideStyle,
	}
}

// List resolves against the service filesystem. Caller options are applied
// after it, so an explicit surface.WithFs still wins.
func (s *fsSurfaceService) List(ctx context.Context, location types.ManifestLocation, isImports bool, opts ...surface.Option) ([]surface.Mapping, error) {
	return surface.List(ctx, location, isImports, append([]surface.Option{surface.WithFs(s.fs)}, opts...)...)
}
