// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/invowk/pkgsurface/internal/config"
	"github.com/invowk/pkgsurface/internal/filter"
	"github.com/invowk/pkgsurface/internal/render"
	"github.com/invowk/pkgsurface/pkg/specifier"
	"github.com/invowk/pkgsurface/pkg/surface"
	"github.com/invowk/pkgsurface/pkg/types"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type (
	// listFlagValues holds the flags of the exports and imports commands.
	listFlagValues struct {
		typ         string
		require     bool
		env         string
		conditions  []string
		format      string
		registered  bool
		include     []string
		exclude     []string
		watch       bool
		clearScreen bool
	}

	// listRequest is the configuration merged with the command line.
	listRequest struct {
		location   types.ManifestLocation
		isImports  bool
		cfg        *config.Config
		registered bool
		filter     *filter.Filter
		logger     *log.Logger
		verbose    bool
	}
)

func newListCommand(app *App, rootFlags *rootFlagValues, isImports bool) *cobra.Command {
	field := specifier.FieldName(isImports)
	flags := &listFlagValues{}

	short := "List the subpaths other packages can import"
	long := `List the subpaths a package exports.

Every key of the "exports" field is resolved under the active conditions.
Wildcard keys such as "./features/*" are expanded against the files of the
package, so each listed name is a specifier that resolves to a real file.`
	if isImports {
		short = "List the private #specifiers a package can import"
		long = `List the "#" specifiers a package maps in its "imports" field.

Targets may be files of the package or bare specifiers of dependencies.
Wildcard keys expand to package files only.`
	}

	c := &cobra.Command{
		Use:   field + " [location]",
		Short: short,
		Long: long + `

location is a directory holding package.json, the manifest itself or a
file:// URL. It defaults to the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildListRequest(cmd, app, rootFlags, flags, isImports, args)
			if err != nil {
				return err
			}
			if flags.watch {
				return runWatchMode(cmd.Context(), app, req, flags.clearScreen)
			}
			return listOnce(cmd.Context(), app, req)
		},
	}

	f := c.Flags()
	f.StringVar(&flags.typ, "type", "", "loader type: import, require, default or none (default import)")
	f.BoolVar(&flags.require, "require", false, "shorthand for --type require")
	f.StringVar(&flags.env, "env", "", `environment condition, "none" disables it (default node)`)
	f.StringSliceVarP(&flags.conditions, "condition", "C", nil, "extra condition, repeatable (e.g. -C browser -C development)")
	f.StringVarP(&flags.format, "format", "o", "", "output format: table, plain, json, yaml or toml (default table)")
	f.BoolVar(&flags.registered, "registered", false, "also print the declared key and target of each name")
	f.StringSliceVar(&flags.include, "include", nil, "keep only names matching these globs")
	f.StringSliceVar(&flags.exclude, "exclude", nil, "drop names matching these globs")
	f.BoolVarP(&flags.watch, "watch", "w", false, "list again whenever a file of the package changes")
	f.BoolVar(&flags.clearScreen, "clear", false, "clear the screen before each listing in watch mode")
	c.MarkFlagsMutuallyExclusive("type", "require")

	return c
}

// buildListRequest loads the configuration and lays the flags over it.
func buildListRequest(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *listFlagValues, isImports bool, args []string) (*listRequest, error) {
	ctx := cmd.Context()

	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: rootFlags.configPath})
	if err != nil {
		return nil, usageError(err)
	}

	f := cmd.Flags()
	if cfg.UI.Verbose && !f.Changed("verbose") {
		rootFlags.verbose = true
	}
	if f.Changed("type") {
		cfg.Type = types.ResolutionType(flags.typ)
	}
	if flags.require {
		cfg.Type = types.ResolutionRequire
	}
	if f.Changed("env") {
		cfg.Environment = flags.env
	}
	if f.Changed("condition") {
		cfg.ExtraConditions = flags.conditions
	}
	if f.Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if f.Changed("include") {
		cfg.Include = flags.include
	}
	if f.Changed("exclude") {
		cfg.Exclude = flags.exclude
	}

	operation := "list " + specifier.FieldName(isImports)
	if err := cfg.Validate(); err != nil {
		return nil, classifyListError(err, operation, "command line")
	}

	nameFilter, err := filter.New(cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, classifyListError(err, operation, "command line")
	}

	location := types.ManifestLocation(".")
	if len(args) == 1 {
		location = types.ManifestLocation(args[0])
	}

	return &listRequest{
		location:   location,
		isImports:  isImports,
		cfg:        cfg,
		registered: flags.registered,
		filter:     nameFilter,
		logger:     newLogger(app.stderr, rootFlags.verbose),
		verbose:    rootFlags.verbose,
	}, nil
}

func (r *listRequest) options() []surface.Option {
	opts := []surface.Option{
		surface.WithType(r.cfg.Type),
		surface.WithConditions(r.cfg.ExtraConditions...),
		surface.WithLogger(r.logger),
	}
	if env := r.cfg.EnvironmentCondition(); env != "" {
		opts = append(opts, surface.WithEnvironment(env))
	} else {
		opts = append(opts, surface.WithoutEnvironment())
	}
	return opts
}

// listOnce resolves the surface and prints it.
func listOnce(ctx context.Context, app *App, req *listRequest) error {
	mappings, err := app.Surface.List(ctx, req.location, req.isImports, req.options()...)
	if err != nil {
		return classifyListError(err, "list "+specifier.FieldName(req.isImports), req.location.String())
	}

	mappings = req.filter.Apply(mappings)
	req.logger.Debug("listing", "mappings", len(mappings), "format", req.cfg.Format)

	if err := render.Write(app.stdout, req.cfg.Format, mappings, render.Options{Registered: req.registered}); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
