package checker

import (
	"bytes"
	"unicode/utf8"
)

// Detect determines whether the formatted header is present in sample at
// the expected offset. sample is the bounded prefix of a file, never the
// whole file. threshold (0-100) is the minimum similarity for a fuzzy match.
//
// The search region starts after any prelude (shebang, XML declaration,
// modeline). An exact match is reported when the region starts with either
// the search rendering or the insertion rendering of the header (see
// format.go); otherwise the byte-prefix and line-wise similarity heuristics
// decide between a fuzzy match and none.
func Detect(sample []byte, header Header, style CommentStyle, threshold int) MatchOutcome {
	offset := PreludeOffset(sample)
	if offset > len(sample) {
		offset = len(sample)
	}
	region := sample[offset:]

	search := []byte(FormatForSearch(header, style))
	if bytes.HasPrefix(region, search) {
		return MatchOutcome{Kind: MatchExact}
	}
	if style.IsBlock() {
		if insert := []byte(FormatForInsert(header, style)); bytes.HasPrefix(region, insert) {
			return MatchOutcome{Kind: MatchExact}
		}
	}

	if sim, ok := fuzzySimilarity(region, search, threshold); ok {
		return MatchOutcome{Kind: MatchFuzzy, Similarity: sim}
	}
	return MatchOutcome{Kind: MatchNone}
}

// fuzzySimilarity combines the two heuristics: the cheap byte-prefix score
// first, then the line-wise edit-distance score, keeping the higher of the
// two. Comparisons shorter than minFuzzyBytes are rejected as noise.
func fuzzySimilarity(region, expected []byte, threshold int) (int, bool) {
	if len(region) == 0 || len(expected) == 0 {
		return 0, false
	}
	shorter := len(region)
	if len(expected) < shorter {
		shorter = len(expected)
	}
	if shorter < minFuzzyBytes {
		return 0, false
	}

	sim := BytePrefixSimilarity(region, expected)

	// The per-line heuristic only applies to text regions.
	if utf8.Valid(region) {
		if lineSim := LineSimilarity(string(region), string(expected)); lineSim > sim {
			sim = lineSim
		}
	}

	if sim >= threshold {
		return sim, true
	}
	return 0, false
}
