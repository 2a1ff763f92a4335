// SPDX-License-Identifier: MPL-2.0

package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/invowk/pkgsurface/internal/config"
	"github.com/invowk/pkgsurface/pkg/surface"

	"github.com/google/go-cmp/cmp"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

func sample() []surface.Mapping {
	return []surface.Mapping{
		{Name: ".", Path: "./file.js", RegisteredName: ".", RegisteredPath: "./file.js"},
		{Name: "./other.js", Path: "./folder/other.js", RegisteredName: "./*.js", RegisteredPath: "./folder/*.js"},
	}
}

func write(t *testing.T, format config.OutputFormat, ms []surface.Mapping, opts Options) string {
	t.Helper()

	var buf bytes.Buffer
	if err := Write(&buf, format, ms, opts); err != nil {
		t.Fatalf("Write(%s) error: %v", format, err)
	}
	return buf.String()
}

func TestWrite_Plain(t *testing.T) {
	t.Parallel()

	got := write(t, config.FormatPlain, sample(), Options{})
	want := ".\t./file.js\n./other.js\t./folder/other.js\n"
	if got != want {
		t.Errorf("plain = %q, want %q", got, want)
	}

	got = write(t, config.FormatPlain, sample()[1:], Options{Registered: true})
	want = "./other.js\t./folder/other.js\t./*.js\t./folder/*.js\n"
	if got != want {
		t.Errorf("plain registered = %q, want %q", got, want)
	}
}

func TestWrite_JSON(t *testing.T) {
	t.Parallel()

	var got []surface.Mapping
	if err := json.Unmarshal([]byte(write(t, config.FormatJSON, sample(), Options{})), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if diff := cmp.Diff(sample(), got); diff != "" {
		t.Errorf("json mismatch (-want +got):\n%s", diff)
	}

	out := write(t, config.FormatJSON, sample(), Options{})
	for _, key := range []string{`"name"`, `"path"`, `"registeredName"`, `"registeredPath"`} {
		if !strings.Contains(out, key) {
			t.Errorf("json output missing key %s:\n%s", key, out)
		}
	}

	if got := write(t, config.FormatJSON, nil, Options{}); strings.TrimSpace(got) != "[]" {
		t.Errorf("empty json = %q, want []", got)
	}
}

func TestWrite_YAML(t *testing.T) {
	t.Parallel()

	var got []surface.Mapping
	if err := yaml.Unmarshal([]byte(write(t, config.FormatYAML, sample(), Options{})), &got); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if diff := cmp.Diff(sample(), got); diff != "" {
		t.Errorf("yaml mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_TOML(t *testing.T) {
	t.Parallel()

	out := write(t, config.FormatTOML, sample(), Options{})
	if !strings.Contains(out, "[[mappings]]") {
		t.Errorf("toml output should use an array of tables:\n%s", out)
	}

	var doc tomlDocument
	if err := toml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not TOML: %v", err)
	}
	if diff := cmp.Diff(sample(), doc.Mappings); diff != "" {
		t.Errorf("toml mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_Table(t *testing.T) {
	t.Parallel()

	out := write(t, config.FormatTable, sample(), Options{})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("table has %d lines, want 3:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "NAME") || !strings.Contains(lines[0], "PATH") {
		t.Errorf("header = %q", lines[0])
	}
	// Paths start in the same column on every line.
	col := strings.Index(lines[0], "PATH")
	if strings.Index(lines[1], "./file.js") != col || strings.Index(lines[2], "./folder/other.js") != col {
		t.Errorf("columns are not aligned:\n%s", out)
	}

	registered := write(t, config.FormatTable, sample(), Options{Registered: true})
	if !strings.Contains(registered, "REGISTERED PATH") || !strings.Contains(registered, "./folder/*.js") {
		t.Errorf("registered table missing columns:\n%s", registered)
	}

	if empty := write(t, config.FormatTable, nil, Options{}); !strings.Contains(empty, "no mappings") {
		t.Errorf("empty table = %q", empty)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := Write(&bytes.Buffer{}, "xml", sample(), Options{})
	if !errors.Is(err, config.ErrInvalidOutputFormat) {
		t.Errorf("Write() error = %v, want ErrInvalidOutputFormat", err)
	}
}
