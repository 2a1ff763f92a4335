// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolutionType_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   ResolutionType
		wantErr bool
	}{
		{ResolutionImport, false},
		{ResolutionRequire, false},
		{ResolutionDefault, false},
		{ResolutionNone, false},
		{"", true},
		{"module", true},
		{"IMPORT", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			t.Parallel()
			err := tt.value.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolutionType(%q).Validate() error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidResolutionType) {
					t.Errorf("error should wrap ErrInvalidResolutionType, got: %v", err)
				}
				var rtErr *InvalidResolutionTypeError
				if !errors.As(err, &rtErr) {
					t.Errorf("error should be *InvalidResolutionTypeError, got: %T", err)
				}
			}
		})
	}
}

func TestResolutionType_Condition(t *testing.T) {
	t.Parallel()

	if c, ok := ResolutionRequire.Condition(); !ok || c != "require" {
		t.Errorf("ResolutionRequire.Condition() = %q, %v", c, ok)
	}
	if _, ok := ResolutionNone.Condition(); ok {
		t.Error("ResolutionNone should not contribute a condition")
	}
	if len(ResolutionTypes()) != 4 {
		t.Errorf("ResolutionTypes() returned %d values, want 4", len(ResolutionTypes()))
	}
}

func TestConditionName_Validate(t *testing.T) {
	t.Parallel()

	valid := []ConditionName{"node", "browser", "react-native", "types@>=5"}
	for _, c := range valid {
		if err := c.Validate(); err != nil {
			t.Errorf("ConditionName(%q).Validate() = %v, want nil", c, err)
		}
	}

	invalid := []ConditionName{"", " ", "dev mode", "tab\there"}
	for _, c := range invalid {
		err := c.Validate()
		if err == nil {
			t.Errorf("ConditionName(%q).Validate() = nil, want error", c)
			continue
		}
		if !errors.Is(err, ErrInvalidConditionName) {
			t.Errorf("error should wrap ErrInvalidConditionName, got: %v", err)
		}
	}
}

func TestManifestLocation_Resolve(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	manifest := filepath.Join(dir, ManifestFileName)
	if err := os.WriteFile(manifest, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	tests := []struct {
		name     string
		location ManifestLocation
	}{
		{"directory", ManifestLocation(dir)},
		{"manifest file", ManifestLocation(manifest)},
		{"file url", ManifestLocation("file://" + filepath.ToSlash(manifest))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			file, gotDir, err := tt.location.Resolve()
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if file != manifest {
				t.Errorf("file = %q, want %q", file, manifest)
			}
			if gotDir != dir {
				t.Errorf("dir = %q, want %q", gotDir, dir)
			}
		})
	}
}

func TestManifestLocation_MissingFileKeepsDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	missing := filepath.Join(dir, "nested", ManifestFileName)

	file, gotDir, err := ManifestLocation(missing).Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if file != missing || gotDir != filepath.Dir(missing) {
		t.Errorf("Resolve() = (%q, %q)", file, gotDir)
	}
}

func TestManifestLocation_ResolveWith(t *testing.T) {
	t.Parallel()

	root := filepath.Join(string(filepath.Separator), "virtual", "pkg")
	isDir := func(p string) bool { return p == root }

	file, dir, err := ManifestLocation(root).ResolveWith(isDir)
	if err != nil {
		t.Fatalf("ResolveWith() error: %v", err)
	}
	if file != filepath.Join(root, ManifestFileName) || dir != root {
		t.Errorf("ResolveWith() = (%q, %q)", file, dir)
	}
}

func TestManifestLocation_Invalid(t *testing.T) {
	t.Parallel()

	for _, l := range []ManifestLocation{"", "   ", "https://example.com/package.json", "file://"} {
		err := l.Validate()
		if err == nil {
			t.Errorf("ManifestLocation(%q).Validate() = nil, want error", l)
			continue
		}
		if !errors.Is(err, ErrInvalidManifestLocation) {
			t.Errorf("error should wrap ErrInvalidManifestLocation, got: %v", err)
		}
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	if !ExitSuccess.IsSuccess() || ExitFailure.IsSuccess() {
		t.Error("IsSuccess() mismatch")
	}
	if err := ExitCode(256).Validate(); !errors.Is(err, ErrInvalidExitCode) {
		t.Errorf("ExitCode(256).Validate() = %v, want ErrInvalidExitCode", err)
	}
	if ExitUsage.String() != "2" {
		t.Errorf("ExitUsage.String() = %q", ExitUsage.String())
	}
}
