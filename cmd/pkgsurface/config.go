// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/invowk/pkgsurface/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `pkgsurface config` command tree.
func newConfigCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage pkgsurface configuration",
		Long: `Manage pkgsurface configuration.

The user configuration is stored in:
  - Linux: ~/.config/pkgsurface/config.cue
  - macOS: ~/Library/Application Support/pkgsurface/config.cue
  - Windows: %APPDATA%\pkgsurface\config.cue

Without it, ./pkgsurface.cue is read from the working directory. Every key
can be overridden with a PKGSURFACE_* environment variable, for example
PKGSURFACE_FORMAT=json or PKGSURFACE_WATCH_DEBOUNCE=1s.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: rootFlags.configPath})
			if err != nil {
				return usageError(err)
			}

			source := SubtitleStyle.Render("(defaults)")
			if cfg.Source != "" {
				source = cfg.Source
			}
			fmt.Fprintf(app.stderr, "%s: %s\n", KeyStyle.Render("Config file"), source)
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default user configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.CreateDefaultConfig("")
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			if !created {
				fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			userPath, err := config.FilePath("")
			if err != nil {
				return err
			}
			lines := []string{
				"User config: " + userPath,
				"Project config: " + config.LocalConfigFile,
			}
			fmt.Fprintln(app.stdout, strings.Join(lines, "\n"))
			return nil
		},
	})

	return cfgCmd
}
