// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/invowk/pkgsurface/pkg/types"
)

const (
	// FormatTable renders an aligned, styled table.
	FormatTable OutputFormat = "table"
	// FormatPlain renders one "name<TAB>path" line per mapping.
	FormatPlain OutputFormat = "plain"
	// FormatJSON renders a JSON array.
	FormatJSON OutputFormat = "json"
	// FormatYAML renders a YAML sequence.
	FormatYAML OutputFormat = "yaml"
	// FormatTOML renders a TOML array of tables.
	FormatTOML OutputFormat = "toml"

	// EnvironmentNone disables the environment condition.
	EnvironmentNone = "none"

	// DefaultDebounce is the default watch quiet period.
	DefaultDebounce = 300 * time.Millisecond
)

var (
	// ErrInvalidOutputFormat is returned when an OutputFormat value is not recognized.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// OutputFormat selects how listings are printed.
	OutputFormat string

	// InvalidOutputFormatError is returned when an OutputFormat value is not recognized.
	InvalidOutputFormatError struct {
		Value OutputFormat
	}

	// InvalidConfigError collects the field-level errors of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the defaults applied to every listing command. Command-line
	// flags take precedence over these values.
	Config struct {
		// Type is the loader type whose conditions are active.
		Type types.ResolutionType `json:"type" mapstructure:"type"`
		// Environment is the environment condition, or "none".
		Environment string `json:"environment" mapstructure:"environment"`
		// ExtraConditions are added to every resolution.
		ExtraConditions []string `json:"extra_conditions" mapstructure:"extra_conditions"`
		// Format is the output format.
		Format OutputFormat `json:"format" mapstructure:"format"`
		// Include keeps only names matching one of these globs.
		Include []string `json:"include" mapstructure:"include"`
		// Exclude drops names matching any of these globs.
		Exclude []string `json:"exclude" mapstructure:"exclude"`
		// Watch configures --watch.
		Watch WatchConfig `json:"watch" mapstructure:"watch"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`

		// Source is the file the configuration was read from, empty when only
		// defaults and environment variables apply.
		Source string `json:"-" mapstructure:"-"`
	}

	// WatchConfig configures watch mode.
	WatchConfig struct {
		// Debounce is the quiet period after the last change before listing again.
		Debounce time.Duration `json:"debounce" mapstructure:"debounce"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		// Verbose enables debug logs and the error guide.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the built-in configuration: an ESM consumer running in
// Node.js, printed as a table.
func DefaultConfig() *Config {
	return &Config{
		Type:            types.ResolutionImport,
		Environment:     "node",
		ExtraConditions: []string{},
		Format:          FormatTable,
		Include:         []string{},
		Exclude:         []string{},
		Watch:           WatchConfig{Debounce: DefaultDebounce},
	}
}

// OutputFormats returns all accepted formats in display order.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatTable, FormatPlain, FormatJSON, FormatYAML, FormatTOML}
}

// String returns the string representation of the OutputFormat.
func (f OutputFormat) String() string { return string(f) }

// Validate returns an error if the OutputFormat is not a known value.
func (f OutputFormat) Validate() error {
	switch f {
	case FormatTable, FormatPlain, FormatJSON, FormatYAML, FormatTOML:
		return nil
	default:
		return &InvalidOutputFormatError{Value: f}
	}
}

// Error implements the error interface.
func (e *InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (must be one of table, plain, json, yaml, toml)", e.Value)
}

// Unwrap returns ErrInvalidOutputFormat for errors.Is() compatibility.
func (e *InvalidOutputFormatError) Unwrap() error { return ErrInvalidOutputFormat }

// EnvironmentCondition returns the environment condition to resolve with,
// empty when the environment is disabled.
func (c *Config) EnvironmentCondition() string {
	if c.Environment == EnvironmentNone {
		return ""
	}
	return c.Environment
}

// Validate checks the values that environment variables can set without
// passing the CUE schema.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Type.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Format.Validate(); err != nil {
		errs = append(errs, err)
	}
	for _, cond := range c.ExtraConditions {
		if err := types.ConditionName(cond).Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig and the field errors for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
