// Package checker implements license header detection: prelude analysis,
// header formatting for comment styles, and exact/fuzzy matching.
package checker

import (
	"fmt"
	"strings"
)

// Header is a validated license header text: the canonical content without
// comment markers, guaranteed non-empty after trimming. Immutable once built.
type Header struct {
	text string
}

// NewHeader validates and trims the header text.
func NewHeader(text string) (Header, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Header{}, fmt.Errorf("license header is empty")
	}
	return Header{text: trimmed}, nil
}

// Text returns the header content.
func (h Header) Text() string { return h.text }

// Lines returns the header split on newlines, blank lines preserved.
func (h Header) Lines() []string { return strings.Split(h.text, "\n") }

// licenseKeywords are terms a plausible license header is expected to contain.
var licenseKeywords = []string{"license", "copyright", "licensed", "permission", "redistribution"}

// CheckText reports whether the header text looks like license text.
// Callers treat a failure as a warning, not an error.
func (h Header) CheckText() error {
	lower := strings.ToLower(h.text)
	for _, kw := range licenseKeywords {
		if strings.Contains(lower, kw) {
			return nil
		}
	}
	return fmt.Errorf("header does not appear to contain license text")
}

// CommentStyle describes how header lines are wrapped for a file type.
// Suffix is empty for line comments and set for block comments.
type CommentStyle struct {
	Prefix string `json:"prefix" mapstructure:"prefix" yaml:"prefix" toml:"prefix"`
	Suffix string `json:"suffix,omitempty" mapstructure:"suffix" yaml:"suffix,omitempty" toml:"suffix,omitempty"`
}

// LineComment builds a line-comment style ("//", "#", ...).
func LineComment(prefix string) CommentStyle { return CommentStyle{Prefix: prefix} }

// BlockComment builds a block-comment style ("/*"+"*/", "<!--"+"-->").
func BlockComment(prefix, suffix string) CommentStyle {
	return CommentStyle{Prefix: prefix, Suffix: suffix}
}

// IsBlock reports whether this style wraps with a closing marker.
func (s CommentStyle) IsBlock() bool { return s.Suffix != "" }

func (s CommentStyle) String() string {
	if s.IsBlock() {
		return s.Prefix + "..." + s.Suffix
	}
	return s.Prefix
}

// NormalizeExtension lowercases ext, strips a leading dot, and validates the
// character set (alphanumeric, underscore, '+', '#').
func NormalizeExtension(ext string) (string, error) {
	e := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if e == "" {
		return "", fmt.Errorf("file extension is empty")
	}
	for _, r := range e {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '+' || r == '#':
		default:
			return "", fmt.Errorf("invalid character %q in file extension %q", r, ext)
		}
	}
	return e, nil
}

// MatchKind discriminates the outcome of header detection.
type MatchKind int

const (
	// MatchNone means no recognizable header at the expected offset.
	MatchNone MatchKind = iota
	// MatchFuzzy means a similar but not identical header was found.
	MatchFuzzy
	// MatchExact means the formatted header bytes are present verbatim.
	MatchExact
)

// MatchOutcome is the result of a detection attempt. Similarity is
// meaningful only for MatchFuzzy.
type MatchOutcome struct {
	Kind       MatchKind
	Similarity int
}
