// Package safeio provides the file-system primitives flc relies on: atomic
// in-place rewrites and containment-checked reads of user-supplied paths.
package safeio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TempName returns the sibling temporary file name used for atomic writes:
// ".{name}.tmp" in the same directory as path.
func TempName(path string) string {
	dir, name := filepath.Split(path)
	return filepath.Join(dir, "."+name+".tmp")
}

// WriteFileAtomic writes data to path so that no reader ever observes a
// partially-written file. The content goes to a sibling temp file which is
// synced and then renamed over the target; the rename is the only mutation
// visible externally. On any failure before the rename the original file is
// untouched and the temp file is removed.
//
// The existing file mode is preserved when the target exists; new files get
// 0644.
func WriteFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if st, err := os.Stat(path); err == nil {
		if m := st.Mode() & 0o777; m != 0 {
			mode = m
		}
	}

	tmp := TempName(path)
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode) // #nosec G304 -- sibling of caller-chosen target
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// CleanUserPath cleans a user-provided path and rejects traversal attempts.
func CleanUserPath(p string) (string, error) {
	c := filepath.Clean(p)
	if strings.Contains(c, "..") {
		return "", errors.New("path traversal detected")
	}
	return c, nil
}

// ReadFileContained reads a file only if it resolves to a location inside
// baseDir, guarding config-driven reads against path traversal.
func ReadFileContained(baseDir, filePath string) ([]byte, error) {
	baseAbs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve base directory: %w", err)
	}
	fileAbs, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("resolve file path: %w", err)
	}

	rel, err := filepath.Rel(baseAbs, fileAbs)
	if err != nil {
		return nil, fmt.Errorf("compute relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("file %s is outside %s", filePath, baseDir)
	}

	return os.ReadFile(fileAbs) // #nosec G304 -- containment verified above
}
