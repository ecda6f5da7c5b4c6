// Package config holds flc's runtime configuration: the license header text,
// per-extension comment styles, ignore patterns, and scan tuning knobs. It
// loads from discovered or explicit config files, FLC_ environment variables,
// and CLI overrides, in that order of increasing priority.
package config

import (
	"fmt"

	"github.com/zippyzappypixy/fast-license-checker/pkg/checker"
)

// Config holds all configuration for flc.
type Config struct {
	// LicenseHeader is the canonical header text without comment markers.
	LicenseHeader string `mapstructure:"license_header" yaml:"license_header" toml:"license_header" json:"license_header"`

	// CommentStyles maps file extensions to comment wrapping styles. Keys are
	// normalized (lowercase, no leading dot) at use time.
	CommentStyles map[string]CommentStyleConfig `mapstructure:"comment_styles" yaml:"comment_styles,omitempty" toml:"comment_styles,omitempty" json:"comment_styles,omitempty"`

	// IgnorePatterns are extra glob patterns applied beyond .gitignore.
	IgnorePatterns []string `mapstructure:"ignore_patterns" yaml:"ignore_patterns,omitempty" toml:"ignore_patterns,omitempty" json:"ignore_patterns,omitempty"`

	// MaxHeaderBytes bounds how much of each file is read for detection.
	MaxHeaderBytes int `mapstructure:"max_header_bytes" yaml:"max_header_bytes" toml:"max_header_bytes" json:"max_header_bytes"`

	// MaxFileSize skips files larger than this many bytes (0 = unlimited).
	MaxFileSize int64 `mapstructure:"max_file_size" yaml:"max_file_size,omitempty" toml:"max_file_size,omitempty" json:"max_file_size,omitempty"`

	// SkipEmptyFiles skips zero-byte files instead of flagging them.
	SkipEmptyFiles bool `mapstructure:"skip_empty_files" yaml:"skip_empty_files" toml:"skip_empty_files" json:"skip_empty_files"`

	// ParallelJobs sets worker count; 0 means one per CPU.
	ParallelJobs int `mapstructure:"parallel_jobs" yaml:"parallel_jobs,omitempty" toml:"parallel_jobs,omitempty" json:"parallel_jobs,omitempty"`

	// SimilarityThreshold (0-100) separates MalformedHeader from
	// MissingHeader during fuzzy matching.
	SimilarityThreshold int `mapstructure:"similarity_threshold" yaml:"similarity_threshold" toml:"similarity_threshold" json:"similarity_threshold"`
}

// CommentStyleConfig describes how header lines are wrapped for a file type.
type CommentStyleConfig struct {
	Prefix string `mapstructure:"prefix" yaml:"prefix" toml:"prefix" json:"prefix"`
	Suffix string `mapstructure:"suffix" yaml:"suffix,omitempty" toml:"suffix,omitempty" json:"suffix,omitempty"`
}

// Default returns the built-in configuration: no header text, the stock
// comment-style table, 8 KiB sampling, and a 70% similarity threshold.
func Default() *Config {
	return &Config{
		LicenseHeader:       "",
		CommentStyles:       DefaultCommentStyles(),
		IgnorePatterns:      nil,
		MaxHeaderBytes:      8192,
		MaxFileSize:         0,
		SkipEmptyFiles:      true,
		ParallelJobs:        0,
		SimilarityThreshold: 70,
	}
}

// Validate reports the first fatal problem with the configuration.
func (c *Config) Validate() error {
	if c.MaxHeaderBytes < 256 {
		return fmt.Errorf("max_header_bytes: must be at least 256 bytes, got %d", c.MaxHeaderBytes)
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 100 {
		return fmt.Errorf("similarity_threshold: must be between 0 and 100, got %d", c.SimilarityThreshold)
	}
	if c.ParallelJobs < 0 {
		return fmt.Errorf("parallel_jobs: must be greater than 0, got %d", c.ParallelJobs)
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size: must not be negative, got %d", c.MaxFileSize)
	}
	for ext, style := range c.CommentStyles {
		if style.Prefix == "" {
			return fmt.Errorf("comment_styles.%s: prefix must not be empty", ext)
		}
	}
	return nil
}

// HasCommentStyle reports whether ext has a configured style. The extension
// is normalized before lookup.
func (c *Config) HasCommentStyle(ext string) bool {
	key, err := checker.NormalizeExtension(ext)
	if err != nil {
		return false
	}
	_, ok := c.CommentStyles[key]
	return ok
}

// StyleTable converts the configured styles into checker comment styles,
// keyed by normalized extension. Entries whose extension cannot be
// normalized are dropped.
func (c *Config) StyleTable() map[string]checker.CommentStyle {
	table := make(map[string]checker.CommentStyle, len(c.CommentStyles))
	for ext, style := range c.CommentStyles {
		key, err := checker.NormalizeExtension(ext)
		if err != nil {
			continue
		}
		if style.Suffix != "" {
			table[key] = checker.BlockComment(style.Prefix, style.Suffix)
		} else {
			table[key] = checker.LineComment(style.Prefix)
		}
	}
	return table
}

// DefaultCommentStyles returns the stock comment-style table covering common
// source file extensions.
func DefaultCommentStyles() map[string]CommentStyleConfig {
	styles := make(map[string]CommentStyleConfig, 80)

	line := func(prefix string, exts ...string) {
		for _, ext := range exts {
			styles[ext] = CommentStyleConfig{Prefix: prefix}
		}
	}
	block := func(prefix, suffix string, exts ...string) {
		for _, ext := range exts {
			styles[ext] = CommentStyleConfig{Prefix: prefix, Suffix: suffix}
		}
	}

	line("//",
		"rs", "js", "ts", "c", "cpp", "cc", "cxx", "h", "hpp", "hxx",
		"java", "kt", "scala", "go", "swift", "cs", "vb", "fs", "ml",
		"fsx", "elm", "php", "pas", "d")
	line("#",
		"py", "rb", "sh", "bash", "zsh", "fish", "pl", "pm", "tcl", "lua",
		"r", "yaml", "yml", "toml", "ini", "cfg", "conf", "ex", "exs",
		"clj", "cljs", "coffee", "dart", "nim", "nimble", "cr", "rspec",
		"thor")
	block("<!--", "-->", "html", "htm", "xml", "svg", "vue", "jsx", "tsx", "xsd")
	block("/*", "*/", "css", "scss", "sass", "less", "styl")
	line("--", "sql", "hs", "lhs")
	line("%", "erl", "hrl")
	line(";;", "lisp", "lsp", "scm", "ss", "rkt")
	line("\"", "vim", "vimrc")
	line("REM", "bat", "cmd")
	line("'", "asp")
	line(";", "asm")

	return styles
}
