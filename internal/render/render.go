// SPDX-License-Identifier: MPL-2.0

// Package render prints mapping listings in the supported output formats.
//
// The table and plain formats show names and paths, plus the registered key
// and target when Options.Registered is set. The structured formats (json,
// yaml, toml) always carry all four fields.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/invowk/pkgsurface/internal/config"
	"github.com/invowk/pkgsurface/pkg/surface"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const columnGap = "  "

var (
	colorHeader = lipgloss.Color("#7C3AED")
	colorName   = lipgloss.Color("#3B82F6")
	colorMuted  = lipgloss.Color("#6B7280")
)

// Options tunes the human-readable formats.
type Options struct {
	// Registered adds the manifest key and target columns.
	Registered bool
}

// tomlDocument wraps the listing because TOML documents must be tables.
type tomlDocument struct {
	Mappings []surface.Mapping `toml:"mappings"`
}

// Write renders mappings to w in the given format.
func Write(w io.Writer, format config.OutputFormat, mappings []surface.Mapping, opts Options) error {
	if mappings == nil {
		mappings = []surface.Mapping{}
	}

	switch format {
	case config.FormatTable:
		return writeTable(w, mappings, opts)
	case config.FormatPlain:
		return writePlain(w, mappings, opts)
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(mappings)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(mappings); err != nil {
			return err
		}
		return enc.Close()
	case config.FormatTOML:
		return toml.NewEncoder(w).Encode(tomlDocument{Mappings: mappings})
	default:
		return format.Validate()
	}
}

// writePlain prints one tab-separated line per mapping, for scripts.
func writePlain(w io.Writer, mappings []surface.Mapping, opts Options) error {
	for _, m := range mappings {
		fields := []string{m.Name, m.Path}
		if opts.Registered {
			fields = append(fields, m.RegisteredName, m.RegisteredPath)
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, "\t")); err != nil {
			return err
		}
	}
	return nil
}

// writeTable prints aligned, styled columns with a header row.
func writeTable(w io.Writer, mappings []surface.Mapping, opts Options) error {
	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true).Foreground(colorHeader)
	name := r.NewStyle().Foreground(colorName)
	muted := r.NewStyle().Foreground(colorMuted)

	if len(mappings) == 0 {
		_, err := fmt.Fprintln(w, muted.Render("no mappings"))
		return err
	}

	headers := []string{"NAME", "PATH"}
	if opts.Registered {
		headers = append(headers, "REGISTERED NAME", "REGISTERED PATH")
	}

	rows := make([][]string, len(mappings))
	for i, m := range mappings {
		rows[i] = []string{m.Name, m.Path}
		if opts.Registered {
			rows[i] = append(rows[i], m.RegisteredName, m.RegisteredPath)
		}
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	line := func(cells []string, style func(col int) lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			s := style(i)
			if i < len(cells)-1 {
				s = s.Width(widths[i])
			}
			parts[i] = s.Render(cell)
		}
		return strings.Join(parts, columnGap)
	}

	var sb strings.Builder
	sb.WriteString(line(headers, func(int) lipgloss.Style { return header }))
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString(line(row, func(col int) lipgloss.Style {
			if col == 0 {
				return name
			}
			if col >= 2 {
				return muted
			}
			return r.NewStyle()
		}))
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
