// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/invowk/pkgsurface/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the persistent flags shared by every subcommand.
type rootFlagValues struct {
	configPath string
	verbose    bool
}

func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// NewRootCommand builds the command tree on top of app.
func NewRootCommand(app *App) *cobra.Command {
	root, _ := newRootCommand(app)
	return root
}

func newRootCommand(app *App) (*cobra.Command, *rootFlagValues) {
	flags := &rootFlagValues{}

	root := &cobra.Command{
		Use:   "pkgsurface",
		Short: "List the public surface of a package",
		Long: TitleStyle.Render("pkgsurface") + SubtitleStyle.Render(" - list the public surface of a package") + `

pkgsurface reads the "exports" and "imports" fields of a package.json,
resolves their conditions and expands wildcard subpaths against the files
of the package, printing every specifier a consumer can use.

` + SubtitleStyle.Render("Examples:") + `
  pkgsurface exports                 Exports of the package in the current directory
  pkgsurface exports ./lib --require Exports seen by require()
  pkgsurface imports -C browser      Imports with the "browser" condition
  pkgsurface exports -o json         Machine-readable output
  pkgsurface exports --watch         List again whenever a file changes`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logs and issue guides")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is the user config, then ./pkgsurface.cue)")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	root.AddCommand(
		newListCommand(app, flags, false),
		newListCommand(app, flags, true),
		newConfigCommand(app, flags),
	)

	return root, flags
}

// newLogger returns the stderr logger; verbose enables debug records.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "pkgsurface",
		Level:  level,
	})
}

// run executes args against app without fang, rendering errors to app's
// stderr. It backs in-process tests.
func run(ctx context.Context, app *App, args []string) error {
	root, flags := newRootCommand(app)
	root.SetArgs(args)
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		renderError(app.stderr, err, flags.verbose, app.guideStyle)
	}
	return err
}

// exitCode returns the process status for err.
func exitCode(err error) types.ExitCode {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return types.ExitFailure
}

// Execute runs the command line and exits on failure. It is called by
// main.main.
func Execute() {
	app := NewApp(Dependencies{})
	root, flags := newRootCommand(app)

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			renderError(w, err, flags.verbose, app.guideStyle)
		}),
	); err != nil {
		os.Exit(int(exitCode(err)))
	}
}
