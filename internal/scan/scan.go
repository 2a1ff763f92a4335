// SPDX-License-Identifier: MPL-2.0

// Package scan finds the files a wildcard target can refer to.
//
// A target such as "./lib/*.js" is split around its "*" into a literal prefix
// and suffix. The wildcard stands for one path segment or for several nested
// segments, so "./lib/*.js" matches both "./lib/a.js" and "./lib/x/y/a.js".
// Directories and everything below a node_modules directory are never
// reported.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	// localPrefix starts every target that refers to a file in the package.
	localPrefix = "./"
	// nodeModules is the dependency directory that is never scanned.
	nodeModules = "node_modules"
)

// errStop ends a walk early when the consumer stops iterating.
var errStop = errors.New("scan: stop")

// Target is a wildcard target split around its "*".
type Target struct {
	Prefix string
	Suffix string
}

// NewTarget splits value around its first "*". ok is false when value has no
// wildcard.
func NewTarget(value string) (t Target, ok bool) {
	before, after, found := strings.Cut(value, "*")
	if !found {
		return Target{}, false
	}
	return Target{Prefix: before, Suffix: after}, true
}

// String returns the target with its wildcard restored.
func (t Target) String() string { return t.Prefix + "*" + t.Suffix }

// IsLocal reports whether the target can refer to files inside the package.
// Bare specifiers such as "lodash/*" (allowed as imports targets) name other
// packages and never match local files.
func (t Target) IsLocal() bool {
	if !strings.HasPrefix(t.Prefix, localPrefix) {
		return false
	}
	rel := strings.TrimPrefix(t.Prefix, localPrefix)
	dir := rel[:strings.LastIndex(rel, "/")+1]
	return dir == "" || fs.ValidPath(strings.TrimSuffix(dir, "/"))
}

// Globs returns the doublestar patterns, relative to the package directory,
// that select the files the target can refer to. It returns nil for targets
// that are not local.
func (t Target) Globs() []string {
	if !t.IsLocal() {
		return nil
	}

	p := escape(strings.TrimPrefix(t.Prefix, localPrefix))
	s := escape(t.Suffix)

	dirPrefix := strings.HasSuffix(t.Prefix, "/")
	dirSuffix := strings.HasPrefix(t.Suffix, "/")

	switch {
	case dirPrefix && dirSuffix:
		return []string{p + "**" + s}
	case dirPrefix:
		return []string{p + "**/*" + s}
	case dirSuffix:
		return []string{p + "*/**" + s}
	default:
		return []string{p + "*" + s, p + "*/**/*" + s}
	}
}

// Capture returns the part of file that the wildcard stands for. file must
// be a "./"-relative path as produced by Files.
func (t Target) Capture(file string) (string, bool) {
	if len(file) < len(t.Prefix)+len(t.Suffix) {
		return "", false
	}
	if !strings.HasPrefix(file, t.Prefix) || !strings.HasSuffix(file, t.Suffix) {
		return "", false
	}
	return file[len(t.Prefix) : len(file)-len(t.Suffix)], true
}

// Files returns an iterator over the files in fsys matching the target, as
// "./"-relative slash paths. Matches are produced while the directory tree is
// walked; stopping the iteration stops the walk. The first I/O error is
// yielded once and ends the iteration.
func Files(ctx context.Context, fsys fs.FS, t Target) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		pruned := prunedFS{fsys}

		for _, pattern := range t.Globs() {
			err := doublestar.GlobWalk(pruned, pattern, func(p string, d fs.DirEntry) error {
				if err := ctx.Err(); err != nil {
					return err
				}
				if inNodeModules(p) || isDirLink(pruned, p, d) {
					return nil
				}
				if !yield(localPrefix+p, nil) {
					return errStop
				}
				return nil
			}, doublestar.WithFilesOnly(), doublestar.WithNoFollow(), doublestar.WithFailOnIOErrors())

			if errors.Is(err, errStop) {
				return
			}
			if err != nil {
				yield("", fmt.Errorf("scan %s: %w", pattern, err))
				return
			}
		}
	}
}

// inNodeModules reports whether any segment of p is node_modules.
func inNodeModules(p string) bool {
	for seg := range strings.SplitSeq(p, "/") {
		if seg == nodeModules {
			return true
		}
	}
	return false
}

// isDirLink reports whether d is a symlink to a directory or a dangling link.
func isDirLink(fsys fs.FS, p string, d fs.DirEntry) bool {
	if d == nil || d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := fs.Stat(fsys, p)
	return err != nil || info.IsDir()
}

// escape quotes doublestar metacharacters so literal target text is matched
// literally.
func escape(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '\\', '*', '?', '[', ']', '{', '}':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// prunedFS hides node_modules directories from directory listings so the walk
// never descends into them.
type prunedFS struct {
	fs.FS
}

// ReadDir implements fs.ReadDirFS.
func (p prunedFS) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := fs.ReadDir(p.FS, name)
	if err != nil {
		return nil, err
	}

	kept := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && e.Name() == nodeModules {
			continue
		}
		kept = append(kept, e)
	}
	return kept, nil
}

// Stat implements fs.StatFS.
func (p prunedFS) Stat(name string) (fs.FileInfo, error) {
	return fs.Stat(p.FS, name)
}
