// Package ignore provides gitignore-based file filtering using go-git
package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5/osfs"
	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/zippyzappypixy/fast-license-checker/pkg/safeio"
)

// Matcher decides which files and directories the walker skips.
type Matcher struct {
	root    string
	matcher gitignore.Matcher
	globs   []string
}

// NewMatcher creates a matcher rooted at root with layered ignore sources:
//  1. .gitignore and related git ignore files (foundation)
//  2. .flcignore (repo overrides)
//  3. ~/.flc/.flcignore (user overrides)
//  4. extraGlobs from configuration (doublestar syntax)
func NewMatcher(root string, extraGlobs []string) (*Matcher, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	fs := osfs.New(absRoot)

	var allPatterns []gitignore.Pattern

	// Always ignored regardless of any ignore file contents.
	defaultPatterns := []string{".git/**", "node_modules/**", "target/**", "vendor/**"}
	for _, pattern := range defaultPatterns {
		allPatterns = append(allPatterns, gitignore.ParsePattern(pattern, nil))
	}

	// Layer 1: standard gitignore patterns. ReadPatterns with nil reads
	// .gitignore, global excludes, and .git/info/exclude.
	if gitPatterns, err := gitignore.ReadPatterns(fs, nil); err == nil {
		allPatterns = append(allPatterns, gitPatterns...)
	}

	// Layer 2: repo-level .flcignore overrides.
	if repoPatterns, err := readIgnoreFile(absRoot, filepath.Join(absRoot, ".flcignore")); err == nil {
		for _, pattern := range repoPatterns {
			allPatterns = append(allPatterns, gitignore.ParsePattern(pattern, nil))
		}
	}

	// Layer 3: user-level ~/.flc/.flcignore overrides.
	if homeDir, err := os.UserHomeDir(); err == nil {
		userDir := filepath.Join(homeDir, ".flc")
		if userPatterns, err := readIgnoreFile(userDir, filepath.Join(userDir, ".flcignore")); err == nil {
			for _, pattern := range userPatterns {
				allPatterns = append(allPatterns, gitignore.ParsePattern(pattern, nil))
			}
		}
	}

	globs := make([]string, 0, len(extraGlobs))
	for _, g := range extraGlobs {
		if g = strings.TrimSpace(g); g != "" {
			globs = append(globs, g)
		}
	}

	return &Matcher{
		root:    absRoot,
		matcher: gitignore.NewMatcher(allPatterns),
		globs:   globs,
	}, nil
}

// readIgnoreFile reads patterns from a text file (like .flcignore). The file
// must live directly inside baseDir.
func readIgnoreFile(baseDir, path string) ([]string, error) {
	cleaned := filepath.Clean(path)
	// Allowlist: .flcignore at repo root or under $HOME/.flc/
	if !strings.HasSuffix(cleaned, string(os.PathSeparator)+".flcignore") {
		return nil, fmt.Errorf("disallowed ignore file path: %s", cleaned)
	}
	content, err := safeio.ReadFileContained(baseDir, cleaned)
	if err != nil {
		return nil, err
	}

	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}

	return patterns, nil
}

// IsIgnored reports whether a file path should be skipped.
func (m *Matcher) IsIgnored(path string) bool {
	return m.match(path, false)
}

// IsIgnoredDir reports whether a directory should be pruned from traversal.
func (m *Matcher) IsIgnoredDir(path string) bool {
	return m.match(path, true)
}

func (m *Matcher) match(path string, isDir bool) bool {
	rel := m.relative(path)
	parts := splitPath(rel)
	if len(parts) == 0 {
		return false
	}

	if m.matcher.Match(parts, isDir) {
		return true
	}

	for _, glob := range m.globs {
		if ok, err := doublestar.Match(glob, rel); err == nil && ok {
			return true
		}
		// A bare directory glob like "build" also prunes everything under it.
		if ok, err := doublestar.Match(glob+"/**", rel); err == nil && ok {
			return true
		}
	}
	return false
}

// relative converts path to a slash-separated path relative to the matcher
// root. Paths already relative are used as-is.
func (m *Matcher) relative(path string) string {
	if filepath.IsAbs(path) {
		if rel, err := filepath.Rel(m.root, path); err == nil {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}

// splitPath converts a slash-separated path into components for go-git matching
func splitPath(path string) []string {
	if path == "" || path == "." {
		return []string{}
	}
	path = strings.TrimPrefix(path, "/")

	parts := strings.Split(path, "/")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}
	return result
}
