// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	if err := FormatError(nil, "package.json"); err != nil {
		t.Errorf("FormatError(nil) = %v, want nil", err)
	}

	original := errors.New("some error")
	err := FormatError(original, "package.json")
	if !errors.Is(err, original) {
		t.Errorf("non-CUE error should be wrapped, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "package.json: ") {
		t.Errorf("error should start with the file name, got %q", err)
	}
}

func TestFormatError_CUEPath(t *testing.T) {
	t.Parallel()

	schema := `#Config: {watch?: {debounce?: string}}`
	_, err := Compile([]byte(`watch: debounce: 5`),
		WithFilename("config.cue"),
		WithSchema(schema, "#Config"),
		WithConcrete(false),
	)
	if err == nil {
		t.Fatal("Compile() should fail")
	}
	if !strings.HasPrefix(err.Error(), "config.cue: ") || !strings.Contains(err.Error(), "watch.debounce: ") {
		t.Errorf("error should carry the file and field path, got %q", err)
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"name"}, "name"},
		{[]string{"watch", "debounce"}, "watch.debounce"},
		{[]string{"extra_conditions", "1"}, "extra_conditions[1]"},
		{[]string{"exports", "0", "node", "2", "default"}, "exports[0].node[2].default"},
		{[]string{"exports", `"./features/*"`, "import"}, `exports["./features/*"].import`},
		{[]string{"imports", "#dep"}, `imports["#dep"]`},
		{[]string{"exports", "."}, `exports["."]`},
		{[]string{"0"}, `["0"]`},
	}

	for _, tt := range tests {
		if got := formatPath(tt.path); got != tt.want {
			t.Errorf("formatPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"empty", 0, false},
		{"within limit", 11, false},
		{"at limit", 100, false},
		{"over limit", 101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := CheckFileSize(make([]byte, tt.size), 100, "package.json")
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckFileSize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}

			var sizeErr *FileTooLargeError
			if !errors.As(err, &sizeErr) || sizeErr.Size != 101 || sizeErr.Max != 100 {
				t.Errorf("error = %#v, want *FileTooLargeError{Size: 101, Max: 100}", err)
			}
			if !errors.Is(err, ErrFileTooLarge) {
				t.Error("error should wrap ErrFileTooLarge")
			}
		})
	}
}
