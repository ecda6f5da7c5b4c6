package checker

import "bytes"

// Prelude detection locates file-leading constructs that must stay ahead of
// any license header: shebang lines, XML declarations, and encoding or
// modeline comments. Precedence is shebang > XML declaration > other
// hashbang forms. A shebang (or hashbang) line without a terminating newline
// is treated as not a prelude, so the offset falls back to 0.

var hashbangPrefixes = [][]byte{
	[]byte("# -*- coding:"),
	[]byte("# vim:"),
}

// PreludeOffset returns the byte offset at which header search and
// insertion should begin. It never fails; indeterminate input yields 0.
func PreludeOffset(content []byte) int {
	if off, ok := shebangEnd(content); ok {
		return off
	}
	if off, ok := xmlDeclEnd(content); ok {
		return off
	}
	if off, ok := hashbangEnd(content); ok {
		return off
	}
	return 0
}

// shebangEnd returns the offset just past the shebang line, if present.
func shebangEnd(content []byte) (int, bool) {
	if !bytes.HasPrefix(content, []byte("#!")) {
		return 0, false
	}
	if nl := bytes.IndexByte(content, '\n'); nl >= 0 {
		return nl + 1, true
	}
	return 0, false
}

// xmlDeclEnd returns the offset just past the XML declaration, plus one more
// byte when it is immediately followed by a newline.
func xmlDeclEnd(content []byte) (int, bool) {
	if !bytes.HasPrefix(content, []byte("<?xml")) {
		return 0, false
	}
	close := bytes.Index(content, []byte("?>"))
	if close < 0 {
		return 0, false
	}
	end := close + 2
	if end < len(content) && content[end] == '\n' {
		end++
	}
	return end, true
}

// hashbangEnd handles hashbang-like first lines that are not shebangs:
// Python encoding declarations and vim modelines.
func hashbangEnd(content []byte) (int, bool) {
	for _, prefix := range hashbangPrefixes {
		if bytes.HasPrefix(content, prefix) {
			if nl := bytes.IndexByte(content, '\n'); nl >= 0 {
				return nl + 1, true
			}
			return 0, false
		}
	}
	return 0, false
}
