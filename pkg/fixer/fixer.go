package fixer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zippyzappypixy/fast-license-checker/pkg/config"
	"github.com/zippyzappypixy/fast-license-checker/pkg/logger"
	"github.com/zippyzappypixy/fast-license-checker/pkg/results"
	"github.com/zippyzappypixy/fast-license-checker/pkg/safeio"
	"github.com/zippyzappypixy/fast-license-checker/pkg/scanner"
)

// Fixer walks a tree and inserts the license header into files that are
// missing it. Writes are atomic: a file is either fully rewritten or left
// untouched.
type Fixer struct {
	scanner *scanner.Scanner
	cfg     *config.Config
	jobs    int

	// DryRun previews: missing headers report WouldFix and nothing is
	// written.
	DryRun bool

	// OnResult, when set, is invoked for every processed file. Calls are
	// serialized.
	OnResult func(results.FixResult)
}

// New creates a fixer for the given root directory.
func New(root string, cfg *config.Config) (*Fixer, error) {
	s, err := scanner.New(root, cfg)
	if err != nil {
		return nil, err
	}

	jobs := cfg.ParallelJobs
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}
	return &Fixer{scanner: s, cfg: cfg, jobs: jobs}, nil
}

// Fix processes every file under the root and returns the aggregate
// summary. Per-file failures are recorded as failed actions; only walk
// setup or cancellation abort the run.
func (f *Fixer) Fix(ctx context.Context) (results.FixSummary, error) {
	start := time.Now()
	entries := f.scanner.Walker().Walk(ctx)

	var mu sync.Mutex
	var total results.FixSummary

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < f.jobs; i++ {
		g.Go(func() error {
			var local results.FixSummary
			for entry := range entries {
				if err := ctx.Err(); err != nil {
					return err
				}
				res := f.fixEntry(entry)
				local.Add(res.Action)
				f.deliver(&mu, res)
			}
			mu.Lock()
			total.Merge(local)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return total, err
	}
	total.Duration = time.Since(start)
	logger.Debug("fix completed",
		logger.Int("files", total.Total),
		logger.Int("fixed", total.Fixed),
		logger.Duration("elapsed", total.Duration))
	return total, nil
}

func (f *Fixer) deliver(mu *sync.Mutex, res results.FixResult) {
	if f.OnResult == nil {
		return
	}
	mu.Lock()
	f.OnResult(res)
	mu.Unlock()
}

func (f *Fixer) fixEntry(entry scanner.Entry) results.FixResult {
	if entry.Err != nil {
		logger.Warn("unreadable during walk",
			logger.String("path", entry.Path),
			logger.Err(entry.Err))
		return results.FixResult{
			Path:   entry.Path,
			Action: results.FixSkipped(results.SkipUnreadable),
		}
	}
	return results.FixResult{
		Path:   entry.Path,
		Action: f.FixFile(entry.Path, entry.Extension()),
	}
}

// FixFile decides and applies the action for a single file.
func (f *Fixer) FixFile(path, ext string) results.FixAction {
	status := f.scanner.CheckFile(path, ext)

	switch status.Kind {
	case results.StatusHasHeader:
		return results.AlreadyHasHeader()

	case results.StatusSkipped:
		return results.FixSkipped(status.Reason)

	case results.StatusMalformedHeader:
		// A similar header is already there. Overwriting it could destroy
		// hand-edited copyright lines, so leave the decision to a human.
		return results.FixFailed(fmt.Sprintf(
			"similar header found (%d%% match); review manually", status.Similarity))

	case results.StatusMissingHeader:
		if f.DryRun {
			return results.WouldFix()
		}
		if err := f.insert(path, ext); err != nil {
			return results.FixFailed(err.Error())
		}
		return results.Fixed()

	default:
		return results.FixFailed(fmt.Sprintf("unexpected status %v", status))
	}
}

// insert rewrites path with the header added. The whole file is read here,
// unlike detection which only samples the head.
func (f *Fixer) insert(path, ext string) error {
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	hc := f.scanner.Checker()
	updated := InsertHeader(content, hc.Header(), hc.StyleFor(ext))

	if err := safeio.WriteFileAtomic(path, updated); err != nil {
		return err
	}
	logger.Debug("header inserted", logger.String("path", path))
	return nil
}
