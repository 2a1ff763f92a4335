// SPDX-License-Identifier: MPL-2.0

// Package testutil builds package directories for tests, in memory or on disk,
// and isolates the user configuration directory.
package testutil
