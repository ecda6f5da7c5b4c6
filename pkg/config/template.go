package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const yamlTemplate = `# flc configuration
# The license header text every scanned file should carry, without comment
# markers. Comment wrapping is chosen per file extension.
license_header: |
  Copyright 2026 Your Organization

  Licensed under the MIT License.

# Comment styles per file extension (stock table provided; entries here
# extend or override it).
# comment_styles:
#   rs:
#     prefix: "//"
#   py:
#     prefix: "#"
#   css:
#     prefix: "/*"
#     suffix: "*/"

# Additional ignore patterns (beyond .gitignore and .flcignore).
ignore_patterns:
  - "*.tmp"
  - "*.bak"

# Maximum bytes to read from the start of each file.
max_header_bytes: 8192

# Skip zero-byte files instead of flagging them.
skip_empty_files: true

# Number of parallel jobs (default: one per CPU core).
# parallel_jobs: 4

# Similarity threshold for malformed header detection (0-100).
similarity_threshold: 70
`

const tomlTemplate = `# flc configuration
license_header = """
Copyright 2026 Your Organization

Licensed under the MIT License.
"""

# Comment styles per file extension (stock table provided; entries here
# extend or override it).
# [comment_styles]
# rs = { prefix = "//" }
# py = { prefix = "#" }
# css = { prefix = "/*", suffix = "*/" }

# Additional ignore patterns (beyond .gitignore and .flcignore).
ignore_patterns = [
    "*.tmp",
    "*.bak",
]

# Maximum bytes to read from the start of each file.
max_header_bytes = 8192

# Skip zero-byte files instead of flagging them.
skip_empty_files = true

# Number of parallel jobs (default: one per CPU core).
# parallel_jobs = 4

# Similarity threshold for malformed header detection (0-100).
similarity_threshold = 70
`

// WriteTemplate writes a starter config file at path in the given format
// ("yaml" or "toml"). Existing files are never overwritten.
func WriteTemplate(path, format string) error {
	var template string
	switch format {
	case "yaml", "yml":
		template = yamlTemplate
	case "toml":
		template = tomlTemplate
	default:
		return fmt.Errorf("unsupported config format %q (want yaml or toml)", format)
	}

	cleaned := filepath.Clean(path)
	if _, err := os.Stat(cleaned); err == nil {
		return fmt.Errorf("config file %s already exists", cleaned)
	}

	if err := os.WriteFile(cleaned, []byte(template), 0o644); err != nil {
		return fmt.Errorf("write config template: %w", err)
	}
	return nil
}
