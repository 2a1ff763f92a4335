// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// recorder collects OnChange invocations.
type recorder struct {
	mu    sync.Mutex
	calls [][]string
	fired chan struct{}
}

func newRecorder() *recorder {
	return &recorder{fired: make(chan struct{}, 16)}
}

func (r *recorder) onChange(_ context.Context, changed []string) error {
	r.mu.Lock()
	r.calls = append(r.calls, changed)
	r.mu.Unlock()
	r.fired <- struct{}{}
	return nil
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
}

// start runs w until the test ends and reports Run's error.
func start(t *testing.T, w *Watcher) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		if err := <-errCh; err != nil {
			t.Errorf("Run() error: %v", err)
		}
	})
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("export {}\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestWatcher_Debounce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rec := newRecorder()

	w, err := New(Config{BaseDir: dir, Debounce: 100 * time.Millisecond, OnChange: rec.onChange})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	start(t, w)

	for _, name := range []string{"c.js", "a.js", "b.js"} {
		writeFile(t, filepath.Join(dir, name))
		time.Sleep(10 * time.Millisecond)
	}

	rec.wait(t)
	time.Sleep(250 * time.Millisecond)

	calls := rec.snapshot()
	if len(calls) != 1 {
		t.Fatalf("callbacks = %d, want 1", len(calls))
	}
	if diff := cmp.Diff([]string{"a.js", "b.js", "c.js"}, calls[0]); diff != "" {
		t.Errorf("changed mismatch (-want +got):\n%s", diff)
	}
}

func TestWatcher_IgnoresNodeModules(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "node_modules", "dep"), 0o755); err != nil {
		t.Fatal(err)
	}
	rec := newRecorder()

	w, err := New(Config{BaseDir: dir, Debounce: 50 * time.Millisecond, OnChange: rec.onChange})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	start(t, w)

	writeFile(t, filepath.Join(dir, "node_modules", "dep", "index.js"))
	writeFile(t, filepath.Join(dir, "file.js"))

	rec.wait(t)
	if diff := cmp.Diff([][]string{{"file.js"}}, rec.snapshot()); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestWatcher_PatternFiltering(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rec := newRecorder()

	w, err := New(Config{
		BaseDir:  dir,
		Patterns: []string{"**/*.js", "package.json"},
		Ignore:   []string{"**/*.map"},
		Debounce: 50 * time.Millisecond,
		OnChange: rec.onChange,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	start(t, w)

	writeFile(t, filepath.Join(dir, "notes.md"))
	writeFile(t, filepath.Join(dir, "file.js.map"))
	writeFile(t, filepath.Join(dir, "package.json"))

	rec.wait(t)
	if diff := cmp.Diff([][]string{{"package.json"}}, rec.snapshot()); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestWatcher_NewDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rec := newRecorder()

	w, err := New(Config{BaseDir: dir, Patterns: []string{"**/*.js"}, Debounce: 100 * time.Millisecond, OnChange: rec.onChange})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	start(t, w)

	if err := os.Mkdir(filepath.Join(dir, "folder"), 0o755); err != nil {
		t.Fatal(err)
	}
	// Give the event loop time to register the new directory.
	time.Sleep(50 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "folder", "file.js"))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-rec.fired:
		case <-deadline:
			t.Fatalf("folder/file.js never reported, calls = %v", rec.snapshot())
		}
		for _, call := range rec.snapshot() {
			if slices.Contains(call, "folder/file.js") {
				return
			}
		}
	}
}

func TestWatcher_ClearScreen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var stdout bytes.Buffer
	var mu sync.Mutex
	done := make(chan struct{})

	w, err := New(Config{
		BaseDir:     dir,
		Debounce:    50 * time.Millisecond,
		ClearScreen: true,
		Stdout:      &lockedWriter{mu: &mu, w: &stdout},
		OnChange: func(context.Context, []string) error {
			close(done)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	start(t, w)

	writeFile(t, filepath.Join(dir, "file.js"))
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}

	mu.Lock()
	defer mu.Unlock()
	if got := stdout.String(); got != "\033[2J\033[H" {
		t.Errorf("stdout = %q, want clear sequence", got)
	}
}

func TestWatcher_SkipIfBusy(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	release := make(chan struct{})
	entered := make(chan struct{}, 4)
	var (
		mu    sync.Mutex
		calls [][]string
	)

	w, err := New(Config{
		BaseDir:  dir,
		Debounce: 30 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			mu.Lock()
			calls = append(calls, changed)
			first := len(calls) == 1
			mu.Unlock()
			entered <- struct{}{}
			if first {
				<-release
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	start(t, w)

	writeFile(t, filepath.Join(dir, "a.js"))
	<-entered

	// Changes arriving while the first callback runs are delivered afterwards.
	writeFile(t, filepath.Join(dir, "b.js"))
	time.Sleep(150 * time.Millisecond)
	close(release)

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("pending change was never delivered")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 2 || !slices.Contains(calls[1], "b.js") {
		t.Errorf("calls = %v, want second call with b.js", calls)
	}
}

func TestWatcher_RunTwice(t *testing.T) {
	t.Parallel()

	w, err := New(Config{BaseDir: t.TempDir()})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	// Wait for the first Run to claim the watcher.
	for !w.started.Load() {
		time.Sleep(time.Millisecond)
	}
	if err := w.Run(ctx); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Run() = %v, want ErrAlreadyStarted", err)
	}

	cancel()
	if err := <-errCh; err != nil {
		t.Errorf("Run() error: %v", err)
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
	}{
		{"invalid watch pattern", Config{BaseDir: t.TempDir(), Patterns: []string{"[a-"}}},
		{"invalid ignore pattern", Config{BaseDir: t.TempDir(), Ignore: []string{"{a,b"}}},
		{"missing directory", Config{BaseDir: filepath.Join(t.TempDir(), "missing")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := New(tt.cfg); err == nil {
				t.Error("New() should fail")
			}
		})
	}
}

func TestDefaultIgnores(t *testing.T) {
	t.Parallel()

	w := &Watcher{ignores: DefaultIgnores()}
	tests := []struct {
		rel  string
		want bool
	}{
		{"node_modules", true},
		{"node_modules/dep/index.js", true},
		{"packages/a/node_modules/dep/index.js", true},
		{".git", true},
		{".git/HEAD", true},
		{"file.js.swp", true},
		{"folder/file.js~", true},
		{"folder/.DS_Store", true},
		{"file.js", false},
		{"package.json", false},
		{"folder/other.js", false},
	}

	for _, tt := range tests {
		if got := w.isIgnored(tt.rel); got != tt.want {
			t.Errorf("isIgnored(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}

	// The returned slice is a copy.
	ignores := DefaultIgnores()
	ignores[0] = "changed"
	if DefaultIgnores()[0] == "changed" {
		t.Error("DefaultIgnores() exposes internal state")
	}
}

type lockedWriter struct {
	mu *sync.Mutex
	w  *bytes.Buffer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
