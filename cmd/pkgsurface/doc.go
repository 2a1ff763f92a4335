// SPDX-License-Identifier: MPL-2.0

// Package cmd implements the pkgsurface command line: the exports and
// imports listing commands with their watch mode, and configuration
// management.
//
// Commands receive an App, the composition root holding the configuration
// provider and the surface service, so tests can run the full command tree
// against an in-memory filesystem.
package cmd
