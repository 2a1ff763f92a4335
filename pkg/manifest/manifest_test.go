// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/invowk/pkgsurface/pkg/specifier"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

func TestFromJSON(t *testing.T) {
	t.Parallel()

	data := []byte(`{
  "name": "pkg",
  "version": "1.0.0",
  "exports": {
    ".": {"node": "./source.js", "default": "./file.js"},
    "./*.js": ["./folder/*.js", "./fallback/*.js"],
    "./internal/*": null,
    "./flag": true
  },
  "imports": {"#dep": {"browser": "./b.js", "default": "./d.js"}}
}`)

	m, err := FromJSON(data, "package.json")
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}

	if m.Name != "pkg" {
		t.Errorf("Name = %q, want pkg", m.Name)
	}

	wantExports := specifier.ConditionMap{
		{Key: ".", Value: specifier.ConditionMap{
			{Key: "node", Value: specifier.Literal("./source.js")},
			{Key: "default", Value: specifier.Literal("./file.js")},
		}},
		{Key: "./*.js", Value: specifier.List{specifier.Literal("./folder/*.js"), specifier.Literal("./fallback/*.js")}},
		{Key: "./internal/*", Value: specifier.Null{}},
		{Key: "./flag", Value: specifier.Null{}},
	}
	if diff := cmp.Diff(specifier.Value(wantExports), m.Field(false)); diff != "" {
		t.Errorf("exports mismatch (-want +got):\n%s", diff)
	}

	wantImports := specifier.ConditionMap{
		{Key: "#dep", Value: specifier.ConditionMap{
			{Key: "browser", Value: specifier.Literal("./b.js")},
			{Key: "default", Value: specifier.Literal("./d.js")},
		}},
	}
	if diff := cmp.Diff(specifier.Value(wantImports), m.Field(true)); diff != "" {
		t.Errorf("imports mismatch (-want +got):\n%s", diff)
	}
}

func TestFromJSON_ConditionOrderIsPreserved(t *testing.T) {
	t.Parallel()

	m, err := FromJSON([]byte(`{"exports": {"default": "./file.js", "node": "./source.js"}}`), "")
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}

	cm, ok := m.Exports.(specifier.ConditionMap)
	if !ok {
		t.Fatalf("exports is %T, want ConditionMap", m.Exports)
	}
	if diff := cmp.Diff([]string{"default", "node"}, cm.Keys()); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}
}

func TestFromJSON_AbsentAndNullFields(t *testing.T) {
	t.Parallel()

	m, err := FromJSON([]byte(`{"name": "x", "exports": null}`), "")
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	if _, ok := m.Exports.(specifier.Null); !ok {
		t.Errorf("Exports = %#v, want Null", m.Exports)
	}
	if m.Imports != nil {
		t.Errorf("Imports = %#v, want nil", m.Imports)
	}

	var nilManifest *Manifest
	if nilManifest.Field(false) != nil {
		t.Error("nil manifest should have no fields")
	}
}

func TestFromJSON_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"array root", `["./file.js"]`},
		{"null root", `null`},
		{"string root", `"./file.js"`},
		{"syntax error", `{"exports": `},
		{"conflicting duplicate keys", `{"exports": {".": "./a.js", ".": "./b.js"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := FromJSON([]byte(tt.data), "package.json")
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidManifest) {
				t.Errorf("error should wrap ErrInvalidManifest, got: %v", err)
			}
			var imErr *InvalidManifestError
			if !errors.As(err, &imErr) {
				t.Fatalf("error should be *InvalidManifestError, got: %T", err)
			}
			if imErr.Path != "package.json" {
				t.Errorf("Path = %q, want package.json", imErr.Path)
			}
		})
	}
}

func TestProvider_Load(t *testing.T) {
	t.Parallel()

	mem := afero.NewMemMapFs()
	if err := afero.WriteFile(mem, "/pkg/package.json", []byte(`{"exports": "./file.js"}`), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	p := NewProviderFs(mem)

	m, err := p.Load(context.Background(), "/pkg/package.json")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Exports != specifier.Value(specifier.Literal("./file.js")) {
		t.Errorf("Exports = %#v", m.Exports)
	}

	_, err = p.Load(context.Background(), "/missing/package.json")
	if !errors.Is(err, ErrInvalidManifest) {
		t.Errorf("missing file should be ErrInvalidManifest, got: %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file should also match fs.ErrNotExist, got: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Load(ctx, "/pkg/package.json"); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled context should fail with context.Canceled, got: %v", err)
	}
}
