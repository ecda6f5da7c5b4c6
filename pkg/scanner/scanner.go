package scanner

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zippyzappypixy/fast-license-checker/pkg/checker"
	"github.com/zippyzappypixy/fast-license-checker/pkg/config"
	"github.com/zippyzappypixy/fast-license-checker/pkg/ignore"
	"github.com/zippyzappypixy/fast-license-checker/pkg/logger"
	"github.com/zippyzappypixy/fast-license-checker/pkg/results"
)

// Scanner walks a tree and checks every processable file for the license
// header. Files are independent; results are reduced into a summary whose
// value does not depend on scheduling order.
type Scanner struct {
	root    string
	cfg     *config.Config
	checker *checker.HeaderChecker
	walker  *Walker
	jobs    int

	// OnResult, when set, is invoked for every scanned file. Calls are
	// serialized.
	OnResult func(results.ScanResult)
}

// New creates a scanner for the given root directory.
func New(root string, cfg *config.Config) (*Scanner, error) {
	st, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root %s: %w", root, err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	header, err := checker.NewHeader(cfg.LicenseHeader)
	if err != nil {
		return nil, fmt.Errorf("license header: %w", err)
	}
	if err := header.CheckText(); err != nil {
		logger.Warn(err.Error())
	}

	hc, err := checker.New(header, cfg.StyleTable(), cfg.SimilarityThreshold)
	if err != nil {
		return nil, err
	}

	matcher, err := ignore.NewMatcher(root, cfg.IgnorePatterns)
	if err != nil {
		return nil, fmt.Errorf("build ignore matcher: %w", err)
	}

	jobs := cfg.ParallelJobs
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}

	return &Scanner{
		root:    root,
		cfg:     cfg,
		checker: hc,
		walker:  NewWalker(root, matcher, jobs),
		jobs:    jobs,
	}, nil
}

// Checker exposes the underlying header checker, shared with the fixer.
func (s *Scanner) Checker() *checker.HeaderChecker { return s.checker }

// Walker exposes the underlying walker, shared with the fixer.
func (s *Scanner) Walker() *Walker { return s.walker }

// Scan walks the tree and checks every file, returning the aggregate
// summary. Unreadable subtrees are logged and counted as skips, never
// aborts.
func (s *Scanner) Scan(ctx context.Context) (results.ScanSummary, error) {
	start := time.Now()
	entries := s.walker.Walk(ctx)

	var mu sync.Mutex
	var total results.ScanSummary

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < s.jobs; i++ {
		g.Go(func() error {
			var local results.ScanSummary
			for entry := range entries {
				if err := ctx.Err(); err != nil {
					return err
				}
				res := s.checkEntry(entry)
				local.Add(res.Status)
				s.deliver(&mu, res)
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
	logger.Debug("scan completed",
		logger.Int("files", total.Total),
		logger.Duration("elapsed", total.Duration))
	return total, nil
}

func (s *Scanner) deliver(mu *sync.Mutex, res results.ScanResult) {
	if s.OnResult == nil {
		return
	}
	mu.Lock()
	s.OnResult(res)
	mu.Unlock()
}

// checkEntry turns one walk entry into a scan result.
func (s *Scanner) checkEntry(entry Entry) results.ScanResult {
	if entry.Err != nil {
		logger.Warn("unreadable during walk",
			logger.String("path", entry.Path),
			logger.Err(entry.Err))
		return results.ScanResult{
			Path:   entry.Path,
			Status: results.Skipped(results.SkipUnreadable),
		}
	}
	return results.ScanResult{
		Path:   entry.Path,
		Status: s.CheckFile(entry.Path, entry.Extension()),
	}
}

// CheckFile samples a single file and classifies it. Also used by the fixer
// to decide what a file needs.
func (s *Scanner) CheckFile(path, ext string) results.FileStatus {
	if s.cfg.MaxFileSize > 0 {
		if st, err := os.Stat(path); err == nil && st.Size() > s.cfg.MaxFileSize {
			return results.Skipped(results.SkipTooLarge)
		}
	}

	sample, err := s.ReadSample(path)
	if err != nil {
		logger.Warn("cannot read file",
			logger.String("path", path),
			logger.Err(err))
		return results.Skipped(results.SkipUnreadable)
	}

	if reason, skip := Classify(sample, ext, s.cfg); skip {
		return results.Skipped(reason)
	}
	return s.checker.Check(sample, ext)
}

// ReadSample reads at most MaxHeaderBytes from the start of path.
func (s *Scanner) ReadSample(path string) ([]byte, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the walk
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return io.ReadAll(io.LimitReader(f, int64(s.cfg.MaxHeaderBytes)))
}
