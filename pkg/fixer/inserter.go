// Package fixer inserts missing license headers into source files. Files
// with an exact header are left alone; files with a similar-but-wrong header
// are reported for manual review, never rewritten.
package fixer

import (
	"github.com/zippyzappypixy/fast-license-checker/pkg/checker"
)

// InsertHeader returns content with the formatted header inserted at the
// prelude offset, after any shebang or XML declaration. The original bytes
// are copied unchanged on either side of the insertion.
func InsertHeader(content []byte, header checker.Header, style checker.CommentStyle) []byte {
	offset := checker.PreludeOffset(content)
	formatted := checker.FormatForInsert(header, style)

	out := make([]byte, 0, len(content)+len(formatted))
	out = append(out, content[:offset]...)
	out = append(out, formatted...)
	out = append(out, content[offset:]...)
	return out
}
