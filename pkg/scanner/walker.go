package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/zippyzappypixy/fast-license-checker/pkg/ignore"
)

// Entry is a single item produced by a walk: either a regular file to
// process or a per-subtree error. Err entries never abort the walk.
type Entry struct {
	Path  string
	Depth int
	Err   error
}

// Extension returns the entry's file extension without the leading dot, or
// "" when there is none.
func (e Entry) Extension() string {
	return strings.TrimPrefix(filepath.Ext(e.Path), ".")
}

// Walker traverses a directory tree concurrently, pruning ignored and hidden
// directories, and delivers entries over a channel. Each call to Walk starts
// a fresh traversal.
type Walker struct {
	root    string
	matcher *ignore.Matcher
	jobs    int
}

// NewWalker creates a walker rooted at root. jobs bounds traversal
// concurrency; values below 1 mean one goroutine per CPU.
func NewWalker(root string, matcher *ignore.Matcher, jobs int) *Walker {
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}
	return &Walker{root: root, matcher: matcher, jobs: jobs}
}

// Walk starts the traversal and returns the entry channel. The channel is
// closed once the whole tree has been visited or ctx is cancelled. Ordering
// between subtrees is unspecified.
func (w *Walker) Walk(ctx context.Context) <-chan Entry {
	out := make(chan Entry, 64)
	sem := make(chan struct{}, w.jobs)

	var wg sync.WaitGroup
	wg.Add(1)
	go w.walkDir(ctx, w.root, 1, out, sem, &wg)

	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// walkDir visits one directory. Subdirectories descend on their own
// goroutine when a slot is free and inline otherwise, so traversal never
// blocks on the semaphore.
func (w *Walker) walkDir(ctx context.Context, dir string, depth int, out chan<- Entry, sem chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	entries, err := os.ReadDir(dir)
	if err != nil {
		send(ctx, out, Entry{Path: dir, Depth: depth, Err: err})
		return
	}

	for _, e := range entries {
		if ctx.Err() != nil {
			return
		}

		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)

		switch {
		case e.IsDir():
			if w.matcher != nil && w.matcher.IsIgnoredDir(path) {
				continue
			}
			wg.Add(1)
			select {
			case sem <- struct{}{}:
				go func(p string, d int) {
					defer func() { <-sem }()
					w.walkDir(ctx, p, d, out, sem, wg)
				}(path, depth+1)
			default:
				w.walkDir(ctx, path, depth+1, out, sem, wg)
			}

		case e.Type()&fs.ModeSymlink != 0:
			// Symlinked files are followed; symlinked directories are not,
			// which keeps cycles impossible.
			st, err := os.Stat(path)
			if err != nil || !st.Mode().IsRegular() {
				continue
			}
			w.emitFile(ctx, path, depth, out)

		case e.Type().IsRegular():
			w.emitFile(ctx, path, depth, out)
		}
	}
}

func (w *Walker) emitFile(ctx context.Context, path string, depth int, out chan<- Entry) {
	if w.matcher != nil && w.matcher.IsIgnored(path) {
		return
	}
	send(ctx, out, Entry{Path: path, Depth: depth})
}

func send(ctx context.Context, out chan<- Entry, e Entry) {
	select {
	case out <- e:
	case <-ctx.Done():
	}
}
