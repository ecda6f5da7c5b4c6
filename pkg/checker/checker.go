package checker

import (
	"fmt"

	"github.com/zippyzappypixy/fast-license-checker/pkg/results"
)

// DefaultStyle is the fallback comment style for extensions checked
// directly without a configured mapping.
var DefaultStyle = LineComment("//")

// HeaderChecker holds the canonical header and the per-extension comment
// styles for a run. It is immutable after construction and safe to share
// across workers.
type HeaderChecker struct {
	header    Header
	styles    map[string]CommentStyle
	threshold int
}

// New builds a checker. Style keys are normalized extensions; threshold is
// the fuzzy-match similarity cutoff (0-100).
func New(header Header, styles map[string]CommentStyle, threshold int) (*HeaderChecker, error) {
	if threshold < 0 || threshold > 100 {
		return nil, fmt.Errorf("similarity threshold %d out of range [0,100]", threshold)
	}

	normalized := make(map[string]CommentStyle, len(styles))
	for ext, style := range styles {
		key, err := NormalizeExtension(ext)
		if err != nil {
			return nil, err
		}
		if style.Prefix == "" {
			return nil, fmt.Errorf("comment style for %q has an empty prefix", ext)
		}
		normalized[key] = style
	}

	return &HeaderChecker{header: header, styles: normalized, threshold: threshold}, nil
}

// Header returns the canonical header text.
func (c *HeaderChecker) Header() Header { return c.header }

// Threshold returns the fuzzy-match similarity cutoff.
func (c *HeaderChecker) Threshold() int { return c.threshold }

// HasStyle reports whether a comment style is configured for ext.
func (c *HeaderChecker) HasStyle(ext string) bool {
	key, err := NormalizeExtension(ext)
	if err != nil {
		return false
	}
	_, ok := c.styles[key]
	return ok
}

// StyleFor returns the comment style for ext, falling back to DefaultStyle
// for unknown extensions.
func (c *HeaderChecker) StyleFor(ext string) CommentStyle {
	if key, err := NormalizeExtension(ext); err == nil {
		if style, ok := c.styles[key]; ok {
			return style
		}
	}
	return DefaultStyle
}

// Check maps a detection outcome for sample onto a file status: an exact
// match passes, a fuzzy match at or above the threshold is a malformed
// header needing manual review, anything else is a missing header.
func (c *HeaderChecker) Check(sample []byte, ext string) results.FileStatus {
	outcome := Detect(sample, c.header, c.StyleFor(ext), c.threshold)
	switch outcome.Kind {
	case MatchExact:
		return results.HasHeader()
	case MatchFuzzy:
		return results.MalformedHeader(outcome.Similarity)
	default:
		return results.MissingHeader()
	}
}
