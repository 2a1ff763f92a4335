// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// ManifestFile is the manifest written at the root of every fixture package.
const ManifestFile = "package.json"

// FixtureFiles is the layout of the reference package: top-level modules, a
// nested folder, an internal folder and a dependency that listings must never
// expose.
var FixtureFiles = []string{
	"file.js",
	"source.js",
	"folder/file.js",
	"folder/other.js",
	"internal/file.js",
	"node_modules/dep/index.js",
}

// NewPackageFs returns an in-memory filesystem holding a package at dir with
// the given manifest, FixtureFiles and any extra files.
func NewPackageFs(t testing.TB, dir, manifest string, extra ...string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	populate(t, afero.NewBasePathFs(fs, dir), manifest, extra)
	return fs
}

// WritePackage writes the same layout as NewPackageFs to dir on disk.
func WritePackage(t testing.TB, dir, manifest string, extra ...string) {
	t.Helper()

	populate(t, afero.NewBasePathFs(afero.NewOsFs(), dir), manifest, extra)
}

// MustWriteFile writes content to name within fs, creating parent directories.
func MustWriteFile(t testing.TB, fs afero.Fs, name, content string) {
	t.Helper()

	if err := fs.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := afero.WriteFile(fs, name, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func populate(t testing.TB, fs afero.Fs, manifest string, extra []string) {
	t.Helper()

	if manifest == "" {
		manifest = "{}"
	}
	MustWriteFile(t, fs, ManifestFile, manifest)
	for _, f := range append(append([]string{}, FixtureFiles...), extra...) {
		MustWriteFile(t, fs, filepath.FromSlash(f), "export {}\n")
	}
}
