// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ManifestFileName is the manifest looked up when a location names a directory.
const ManifestFileName = "package.json"

// ErrInvalidManifestLocation is the sentinel error wrapped by InvalidManifestLocationError.
var ErrInvalidManifestLocation = errors.New("invalid manifest location")

type (
	// ManifestLocation identifies a package manifest. It is either a filesystem
	// path (to the manifest file or to the directory holding it) or a
	// "file://" URL. The directory of the manifest is the root of every
	// pattern scan.
	ManifestLocation string

	// InvalidManifestLocationError is returned when a ManifestLocation is empty,
	// whitespace-only, or a URL with a scheme other than "file".
	InvalidManifestLocationError struct {
		Value  ManifestLocation
		Reason string
	}
)

// String returns the string representation of the ManifestLocation.
func (l ManifestLocation) String() string { return string(l) }

// Validate returns an error if the location cannot name a manifest.
func (l ManifestLocation) Validate() error {
	_, err := l.path()
	return err
}

// Resolve returns the absolute manifest file path and the directory that
// contains it. A location naming an existing directory resolves to the
// package.json inside it; anything else (including a file that does not exist
// yet) is taken to be the manifest file itself.
func (l ManifestLocation) Resolve() (file, dir string, err error) {
	return l.ResolveWith(func(p string) bool {
		info, statErr := os.Stat(p)
		return statErr == nil && info.IsDir()
	})
}

// ResolveWith is Resolve with a caller supplied directory check, for
// locations that live on a filesystem other than the host's.
func (l ManifestLocation) ResolveWith(isDir func(string) bool) (file, dir string, err error) {
	p, err := l.path()
	if err != nil {
		return "", "", err
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", "", fmt.Errorf("resolve manifest location %q: %w", l, err)
	}

	if isDir(abs) {
		return filepath.Join(abs, ManifestFileName), abs, nil
	}
	return abs, filepath.Dir(abs), nil
}

// path converts the location to a native filesystem path.
func (l ManifestLocation) path() (string, error) {
	s := string(l)
	if strings.TrimSpace(s) == "" {
		return "", &InvalidManifestLocationError{Value: l, Reason: "must be non-empty"}
	}

	if !strings.Contains(s, "://") {
		return s, nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", &InvalidManifestLocationError{Value: l, Reason: err.Error()}
	}
	if u.Scheme != "file" {
		return "", &InvalidManifestLocationError{Value: l, Reason: "only file:// URLs are supported"}
	}
	if u.Path == "" {
		return "", &InvalidManifestLocationError{Value: l, Reason: "file URL has no path"}
	}
	return filepath.FromSlash(u.Path), nil
}

// Error implements the error interface.
func (e *InvalidManifestLocationError) Error() string {
	return fmt.Sprintf("invalid manifest location %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidManifestLocation for errors.Is() compatibility.
func (e *InvalidManifestLocationError) Unwrap() error { return ErrInvalidManifestLocation }
