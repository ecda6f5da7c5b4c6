// Package scanner walks a directory tree in parallel and checks each
// processable file for the configured license header.
package scanner

import (
	"bytes"
	"unicode/utf8"

	"github.com/zippyzappypixy/fast-license-checker/pkg/config"
	"github.com/zippyzappypixy/fast-license-checker/pkg/results"
)

// IsBinary reports whether content looks binary. A NUL byte anywhere in the
// sample is the signal; text files do not contain them.
func IsBinary(content []byte) bool {
	return bytes.IndexByte(content, 0) >= 0
}

// IsValidUTF8 reports whether content is valid UTF-8.
func IsValidUTF8(content []byte) bool {
	return utf8.Valid(content)
}

// Classify decides whether a sampled file should be skipped, checking in
// order: emptiness, binary content, encoding, then comment-style coverage
// for the extension. The returned reason is meaningful only when skip is
// true.
func Classify(content []byte, ext string, cfg *config.Config) (reason results.SkipReason, skip bool) {
	if len(content) == 0 && cfg.SkipEmptyFiles {
		return results.SkipEmpty, true
	}
	if IsBinary(content) {
		return results.SkipBinary, true
	}
	if !IsValidUTF8(content) {
		return results.SkipEncoding, true
	}
	if !cfg.HasCommentStyle(ext) {
		return results.SkipNoCommentStyle, true
	}
	return 0, false
}
