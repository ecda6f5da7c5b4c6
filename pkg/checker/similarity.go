package checker

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

const (
	// bytePrefixCap bounds the byte-prefix comparison window.
	bytePrefixCap = 256
	// minFuzzyBytes is the shortest comparison considered meaningful.
	minFuzzyBytes = 10
	// maxFuzzyLines bounds the line-wise comparison.
	maxFuzzyLines = 10
)

// BytePrefixSimilarity is the cheap fuzzy heuristic: the length of the
// common byte prefix of a and b, as a percentage of the shorter slice,
// looking at most at the first 256 bytes of each. Two empty slices are 100.
func BytePrefixSimilarity(a, b []byte) int {
	if len(a) > bytePrefixCap {
		a = a[:bytePrefixCap]
	}
	if len(b) > bytePrefixCap {
		b = b[:bytePrefixCap]
	}
	if len(a) == 0 && len(b) == 0 {
		return 100
	}
	shorter := len(a)
	if len(b) < shorter {
		shorter = len(b)
	}
	if shorter == 0 {
		return 0
	}

	prefix := 0
	for prefix < shorter && a[prefix] == b[prefix] {
		prefix++
	}

	sim := prefix * 100 / shorter
	if sim > 100 {
		sim = 100
	}
	return sim
}

// LevenshteinDistance is the edit distance between a and b over Unicode
// scalar values. The distance to or from an empty string is the length of
// the other string. The underlying computation uses a single-row dynamic
// programming buffer, so memory stays O(min(len)).
func LevenshteinDistance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// LevenshteinSimilarity converts edit distance into a 0-100 score:
// ((maxLen - distance) * 100) / maxLen over rune counts, clamped to [0,100].
// Two empty strings are 100.
func LevenshteinSimilarity(a, b string) int {
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 100
	}

	sim := (maxLen - LevenshteinDistance(a, b)) * 100 / maxLen
	if sim < 0 {
		sim = 0
	}
	if sim > 100 {
		sim = 100
	}
	return sim
}

// LineSimilarity is the accurate fuzzy heuristic: the Levenshtein similarity
// of corresponding lines of content and expected, averaged over up to the
// first 10 line pairs. Pairs where both sides are blank are not counted.
// Returns 0 when nothing comparable exists.
func LineSimilarity(content, expected string) int {
	contentLines := headLines(content, maxFuzzyLines)
	expectedLines := headLines(expected, maxFuzzyLines)

	n := len(contentLines)
	if len(expectedLines) < n {
		n = len(expectedLines)
	}

	total, counted := 0, 0
	for i := 0; i < n; i++ {
		if strings.TrimSpace(contentLines[i]) == "" && strings.TrimSpace(expectedLines[i]) == "" {
			continue
		}
		total += LevenshteinSimilarity(contentLines[i], expectedLines[i])
		counted++
	}
	if counted == 0 {
		return 0
	}
	return total / counted
}

func headLines(s string, n int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}
