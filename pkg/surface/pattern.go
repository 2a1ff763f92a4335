// SPDX-License-Identifier: MPL-2.0

package surface

import (
	"context"
	"io/fs"
	"sync"

	"github.com/invowk/pkgsurface/internal/scan"
	"github.com/invowk/pkgsurface/pkg/condition"
	"github.com/invowk/pkgsurface/pkg/specifier"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

type (
	// rule is a wildcard key together with its resolved target.
	rule struct {
		registeredKey string
		key           scan.Target
		target        string
		// order is the position of the key in the manifest.
		order int
	}

	// plan is a specifier map split into the parts the pattern engine
	// handles differently.
	plan struct {
		// fixed are the resolved wildcard-free keys.
		fixed []Mapping
		// taken holds every wildcard-free key, including those resolving to
		// nothing, since those hide pattern matches of the same name.
		taken map[string]struct{}
		// active are the wildcard keys with a target.
		active []rule
		// blocked are the wildcard keys without a target. They hide less
		// specific matches.
		blocked []rule
	}

	// slot is the current winner for one name.
	slot struct {
		specificity int
		order       int
		mapping     Mapping
	}

	// table collects pattern matches from concurrent scans.
	table struct {
		mu    sync.Mutex
		slots map[string]slot
	}
)

// specificity ranks a key by the length of its literal text.
func (r rule) specificity() int {
	return len(r.key.Prefix) + len(r.key.Suffix)
}

// newPlan partitions entries. Fixed keys are resolved right away.
func newPlan(entries []specifier.Entry, conditions condition.Set) plan {
	p := plan{taken: make(map[string]struct{})}

	for i, e := range entries {
		if !e.IsPattern() {
			p.taken[e.MatchKey] = struct{}{}
			if m, ok := resolveStatic(e, conditions); ok {
				p.fixed = append(p.fixed, m)
			}
			continue
		}

		key, _ := scan.NewTarget(e.MatchKey)
		r := rule{registeredKey: e.RegisteredKey, key: key, order: i}

		target, ok := specifier.Resolve(e.Value, conditions)
		if !ok {
			p.blocked = append(p.blocked, r)
			continue
		}
		r.target = target
		p.active = append(p.active, r)
	}
	return p
}

// offer records s under name unless a more specific (or equally specific but
// earlier declared) match is already there.
func (t *table) offer(name string, s slot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur, ok := t.slots[name]
	if !ok || s.specificity > cur.specificity || (s.specificity == cur.specificity && s.order < cur.order) {
		t.slots[name] = s
	}
}

// resolvePatterns expands every active rule against fsys and merges the
// results with the fixed keys.
func resolvePatterns(ctx context.Context, fsys fs.FS, entries []specifier.Entry, conditions condition.Set, logger *log.Logger) ([]Mapping, error) {
	p := newPlan(entries, conditions)

	for _, r := range p.active {
		if _, ok := scan.NewTarget(r.target); !ok {
			return nil, &MalformedPatternTargetError{Key: r.registeredKey, Target: r.target}
		}
	}

	tbl := &table{slots: make(map[string]slot)}

	g, gctx := errgroup.WithContext(ctx)
	for _, r := range p.active {
		g.Go(func() error {
			return expand(gctx, fsys, r, p.taken, tbl, logger)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := append(make([]Mapping, 0, len(p.fixed)+len(tbl.slots)), p.fixed...)
	for name, s := range tbl.slots {
		if isBlocked(name, s.specificity, p.blocked) {
			logger.Debug("pattern match blocked", "name", name, "path", s.mapping.Path)
			continue
		}
		out = append(out, s.mapping)
	}
	return out, nil
}

// expand offers every file matching the target of r to tbl.
func expand(ctx context.Context, fsys fs.FS, r rule, taken map[string]struct{}, tbl *table, logger *log.Logger) error {
	target, _ := scan.NewTarget(r.target)
	if !target.IsLocal() {
		logger.Debug("skipping non-local pattern target", "key", r.registeredKey, "target", r.target)
		return nil
	}

	matches := 0
	for file, err := range scan.Files(ctx, fsys, target) {
		if err != nil {
			return err
		}

		fragment, ok := target.Capture(file)
		if !ok {
			continue
		}
		name := r.key.Prefix + fragment + r.key.Suffix
		if _, fixed := taken[name]; fixed {
			continue
		}

		tbl.offer(name, slot{
			specificity: r.specificity(),
			order:       r.order,
			mapping: Mapping{
				Name:           name,
				Path:           file,
				RegisteredName: r.registeredKey,
				RegisteredPath: r.target,
			},
		})
		matches++
	}

	logger.Debug("expanded pattern", "key", r.registeredKey, "target", r.target, "matches", matches)
	return nil
}

// isBlocked reports whether a blocked rule more specific than specificity
// matches name.
func isBlocked(name string, specificity int, blocked []rule) bool {
	for _, b := range blocked {
		if b.specificity() <= specificity {
			continue
		}
		if _, ok := b.key.Capture(name); ok {
			return true
		}
	}
	return false
}
