// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/pkgsurface/config.cue (or the XDG
// equivalent on Linux, ~/Library/Application Support/pkgsurface/config.cue on
// macOS, %APPDATA%\pkgsurface\config.cue on Windows), falling back to a
// pkgsurface.cue in the working directory. PKGSURFACE_* environment variables
// override file values. Files are validated against the embedded CUE schema
// (config_schema.cue).
package config
