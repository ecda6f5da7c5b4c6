package scanner

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
	"time"

	"github.com/zippyzappypixy/fast-license-checker/pkg/ignore"
)

func collectPaths(t *testing.T, root string, matcher *ignore.Matcher, jobs int) []string {
	t.Helper()
	w := NewWalker(root, matcher, jobs)

	var paths []string
	for entry := range w.Walk(context.Background()) {
		if entry.Err != nil {
			t.Errorf("unexpected walk error for %s: %v", entry.Path, entry.Err)
			continue
		}
		rel, err := filepath.Rel(root, entry.Path)
		if err != nil {
			t.Fatal(err)
		}
		paths = append(paths, filepath.ToSlash(rel))
	}
	sort.Strings(paths)
	return paths
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkFindsNestedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.go"), "package main")
	writeFile(t, filepath.Join(root, "src", "lib.go"), "package lib")
	writeFile(t, filepath.Join(root, "src", "deep", "util.go"), "package deep")

	paths := collectPaths(t, root, nil, 2)
	want := []string{"main.go", "src/deep/util.go", "src/lib.go"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestWalkSkipsHiddenEntries(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "visible.go"), "package main")
	writeFile(t, filepath.Join(root, ".hidden.go"), "package main")
	writeFile(t, filepath.Join(root, ".config", "settings.go"), "package main")

	paths := collectPaths(t, root, nil, 1)
	if len(paths) != 1 || paths[0] != "visible.go" {
		t.Errorf("paths = %v, want only visible.go", paths)
	}
}

func TestWalkPrunesIgnoredDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "build/\n*.log\n")
	writeFile(t, filepath.Join(root, "keep.go"), "package main")
	writeFile(t, filepath.Join(root, "build", "out.go"), "package main")
	writeFile(t, filepath.Join(root, "trace.log"), "log line")

	matcher, err := ignore.NewMatcher(root, nil)
	if err != nil {
		t.Fatal(err)
	}

	paths := collectPaths(t, root, matcher, 2)
	if len(paths) != 1 || paths[0] != "keep.go" {
		t.Errorf("paths = %v, want only keep.go", paths)
	}
}

func TestWalkExtraGlobs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.go"), "package main")
	writeFile(t, filepath.Join(root, "generated", "api.go"), "package gen")

	matcher, err := ignore.NewMatcher(root, []string{"generated"})
	if err != nil {
		t.Fatal(err)
	}

	paths := collectPaths(t, root, matcher, 2)
	if len(paths) != 1 || paths[0] != "keep.go" {
		t.Errorf("paths = %v, want only keep.go", paths)
	}
}

func TestWalkSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs privileges on windows")
	}
	root := t.TempDir()
	outside := t.TempDir()

	writeFile(t, filepath.Join(outside, "real.go"), "package real")
	if err := os.Symlink(filepath.Join(outside, "real.go"), filepath.Join(root, "link.go")); err != nil {
		t.Skipf("cannot create symlinks here: %v", err)
	}
	// Self-referencing directory loop must not hang the walk.
	if err := os.Symlink(root, filepath.Join(root, "loop")); err != nil {
		t.Fatal(err)
	}

	done := make(chan []string, 1)
	go func() { done <- collectPaths(t, root, nil, 2) }()

	select {
	case paths := <-done:
		if len(paths) != 1 || paths[0] != "link.go" {
			t.Errorf("paths = %v, want only link.go", paths)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("walk did not terminate with a symlink loop present")
	}
}

func TestWalkReportsUnreadableSubtree(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ok.go"), "package main")
	locked := filepath.Join(root, "locked")
	writeFile(t, filepath.Join(locked, "secret.go"), "package secret")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	w := NewWalker(root, nil, 2)
	var files, errs int
	for entry := range w.Walk(context.Background()) {
		if entry.Err != nil {
			errs++
			continue
		}
		files++
	}
	if files != 1 {
		t.Errorf("files = %d, want 1 (sibling of unreadable subtree)", files)
	}
	if errs != 1 {
		t.Errorf("errors = %d, want 1", errs)
	}
}

func TestWalkCancellation(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 50; i++ {
		writeFile(t, filepath.Join(root, "dir", "file"+string(rune('a'+i%26))+".go"), "package p")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewWalker(root, nil, 2)
	count := 0
	for range w.Walk(ctx) {
		count++
	}
	// The channel must close promptly; a few buffered entries are fine.
	if count > 64 {
		t.Errorf("received %d entries after cancellation", count)
	}
}

func TestEntryExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.go", "go"},
		{"src/lib.rs", "rs"},
		{"Makefile", ""},
		{"archive.tar.gz", "gz"},
	}
	for _, tt := range tests {
		if got := (Entry{Path: tt.path}).Extension(); got != tt.want {
			t.Errorf("Extension(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
