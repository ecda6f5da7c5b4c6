package scanner

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/zippyzappypixy/fast-license-checker/pkg/config"
	"github.com/zippyzappypixy/fast-license-checker/pkg/results"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.LicenseHeader = "MIT License\nCopyright 2024"
	return cfg
}

func TestNewRejectsMissingRoot(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope"), testConfig()); err == nil {
		t.Error("expected error for nonexistent root")
	}
}

func TestNewRejectsFileRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(file, testConfig()); err == nil {
		t.Error("expected error for file root")
	}
}

func TestNewRejectsEmptyHeader(t *testing.T) {
	cfg := config.Default()
	cfg.LicenseHeader = "   "
	if _, err := New(t.TempDir(), cfg); err == nil {
		t.Error("expected error for blank license header")
	}
}

func TestScanEmptyDirectory(t *testing.T) {
	s, err := New(t.TempDir(), testConfig())
	if err != nil {
		t.Fatal(err)
	}

	summary, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if summary.Total != 0 || summary.Passed != 0 || summary.Failed != 0 || summary.Skipped != 0 {
		t.Errorf("summary = %+v, want all zero", summary)
	}
	if !summary.IsClean() {
		t.Error("empty scan should be clean")
	}
}

func TestScanMixedTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "good.rs"),
		"// MIT License\n// Copyright 2024\n\nfn main() {}\n")
	writeFile(t, filepath.Join(root, "missing.rs"), "fn main() {}\n")
	writeFile(t, filepath.Join(root, "empty.txt"), "")
	writeFile(t, filepath.Join(root, "binary.bin"), "MZ\x00\x01")
	writeFile(t, filepath.Join(root, "noext"), "some content")

	s, err := New(root, testConfig())
	if err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	seen := map[string]results.FileStatus{}
	s.OnResult = func(r results.ScanResult) {
		mu.Lock()
		seen[filepath.Base(r.Path)] = r.Status
		mu.Unlock()
	}

	summary, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if summary.Total != 5 {
		t.Errorf("Total = %d, want 5", summary.Total)
	}
	if summary.Passed != 1 {
		t.Errorf("Passed = %d, want 1", summary.Passed)
	}
	if summary.Failed != 1 {
		t.Errorf("Failed = %d, want 1", summary.Failed)
	}
	if summary.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", summary.Skipped)
	}

	checks := []struct {
		name string
		kind results.StatusKind
	}{
		{"good.rs", results.StatusHasHeader},
		{"missing.rs", results.StatusMissingHeader},
		{"empty.txt", results.StatusSkipped},
		{"binary.bin", results.StatusSkipped},
		{"noext", results.StatusSkipped},
	}
	for _, c := range checks {
		status, ok := seen[c.name]
		if !ok {
			t.Errorf("no result delivered for %s", c.name)
			continue
		}
		if status.Kind != c.kind {
			t.Errorf("%s status = %v, want kind %v", c.name, status, c.kind)
		}
	}
}

func TestScanMalformedHeader(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "typo.rs"),
		"// MIT License\n// Copyrigth 2024\n\nfn main() {}\n")

	s, err := New(root, testConfig())
	if err != nil {
		t.Fatal(err)
	}

	var got results.FileStatus
	s.OnResult = func(r results.ScanResult) { got = r.Status }

	summary, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if summary.Failed != 1 {
		t.Errorf("Failed = %d, want 1", summary.Failed)
	}
	if got.Kind != results.StatusMalformedHeader {
		t.Fatalf("status = %v, want MalformedHeader", got)
	}
	if got.Similarity < 70 || got.Similarity >= 100 {
		t.Errorf("similarity = %d, want within [70,100)", got.Similarity)
	}
}

func TestScanRespectsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "vendor_js/\n")
	writeFile(t, filepath.Join(root, "app.rs"), "fn main() {}\n")
	writeFile(t, filepath.Join(root, "vendor_js", "lib.js"), "var x = 1;\n")

	s, err := New(root, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	summary, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if summary.Total != 1 {
		t.Errorf("Total = %d, want 1 (ignored dir pruned)", summary.Total)
	}
}

func TestScanMaxFileSize(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "big.rs"), strings.Repeat("// filler\n", 100))

	cfg := testConfig()
	cfg.MaxFileSize = 64

	s, err := New(root, cfg)
	if err != nil {
		t.Fatal(err)
	}

	var got results.FileStatus
	s.OnResult = func(r results.ScanResult) { got = r.Status }

	summary, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if summary.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", summary.Skipped)
	}
	if got.Kind != results.StatusSkipped || got.Reason != results.SkipTooLarge {
		t.Errorf("status = %v, want Skipped(TooLarge)", got)
	}
}

func TestScanHeaderBeyondSampleIsMissing(t *testing.T) {
	root := t.TempDir()
	// Push the header past the sampling window.
	content := strings.Repeat("// padding line\n", 40) +
		"// MIT License\n// Copyright 2024\n"
	writeFile(t, filepath.Join(root, "late.rs"), content)

	cfg := testConfig()
	cfg.MaxHeaderBytes = 256

	s, err := New(root, cfg)
	if err != nil {
		t.Fatal(err)
	}
	summary, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if summary.Failed != 1 {
		t.Errorf("Failed = %d, want 1: header outside the sample is invisible", summary.Failed)
	}
}

func TestScanSummaryOrderIndependent(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 12; i++ {
		name := string(rune('a'+i)) + ".rs"
		if i%3 == 0 {
			writeFile(t, filepath.Join(root, name),
				"// MIT License\n// Copyright 2024\n\nfn main() {}\n")
		} else {
			writeFile(t, filepath.Join(root, name), "fn main() {}\n")
		}
	}

	var totals []results.ScanSummary
	for _, jobs := range []int{1, 4} {
		cfg := testConfig()
		cfg.ParallelJobs = jobs
		s, err := New(root, cfg)
		if err != nil {
			t.Fatal(err)
		}
		summary, err := s.Scan(context.Background())
		if err != nil {
			t.Fatalf("Scan with %d jobs: %v", jobs, err)
		}
		totals = append(totals, summary)
	}

	if totals[0].Total != totals[1].Total ||
		totals[0].Passed != totals[1].Passed ||
		totals[0].Failed != totals[1].Failed ||
		totals[0].Skipped != totals[1].Skipped {
		t.Errorf("summaries differ by worker count: %+v vs %+v", totals[0], totals[1])
	}
	if totals[0].Total != 12 || totals[0].Passed != 4 || totals[0].Failed != 8 {
		t.Errorf("summary = %+v, want 12 total, 4 passed, 8 failed", totals[0])
	}
}

func TestCheckFileDirectly(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "tool.py")
	writeFile(t, path, "#!/usr/bin/env python3\n# MIT License\n# Copyright 2024\n\nprint('hi')\n")

	s, err := New(root, testConfig())
	if err != nil {
		t.Fatal(err)
	}

	status := s.CheckFile(path, "py")
	if !status.Passed() {
		t.Errorf("status = %v, want HasHeader after shebang", status)
	}
}

func TestReadSampleBounded(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "big.rs")
	writeFile(t, path, strings.Repeat("x", 10000))

	cfg := testConfig()
	cfg.MaxHeaderBytes = 512

	s, err := New(root, cfg)
	if err != nil {
		t.Fatal(err)
	}

	sample, err := s.ReadSample(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(sample) != 512 {
		t.Errorf("sample length = %d, want 512", len(sample))
	}
}

func TestScanResultsCoverEveryFile(t *testing.T) {
	root := t.TempDir()
	var want []string
	for _, name := range []string{"one.rs", "two.rs", "sub/three.rs"} {
		writeFile(t, filepath.Join(root, name), "fn main() {}\n")
		want = append(want, filepath.Base(name))
	}
	sort.Strings(want)

	s, err := New(root, testConfig())
	if err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	var got []string
	s.OnResult = func(r results.ScanResult) {
		mu.Lock()
		got = append(got, filepath.Base(r.Path))
		mu.Unlock()
	}

	if _, err := s.Scan(context.Background()); err != nil {
		t.Fatal(err)
	}
	sort.Strings(got)

	if len(got) != len(want) {
		t.Fatalf("delivered %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
