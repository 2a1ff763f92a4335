// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"runtime"
	"testing"
)

// SetConfigHome points the platform configuration root at dir for the rest of
// the test and returns the pkgsurface config directory below it. Tests using
// it cannot run in parallel.
//
// Windows reads APPDATA, macOS reads HOME/Library/Application Support and
// other systems read XDG_CONFIG_HOME.
func SetConfigHome(t testing.TB, dir string) string {
	t.Helper()

	switch runtime.GOOS {
	case "windows":
		t.Setenv("APPDATA", dir)
		return filepath.Join(dir, "pkgsurface")
	case "darwin":
		t.Setenv("HOME", dir)
		return filepath.Join(dir, "Library", "Application Support", "pkgsurface")
	default:
		t.Setenv("XDG_CONFIG_HOME", dir)
		return filepath.Join(dir, "pkgsurface")
	}
}
