package checker

import "strings"

// Two renderings of a header exist for block-comment styles: a whole-block
// wrap used when searching, and a per-line wrap used when inserting. For
// line-comment styles both renderings are identical. Detect accepts either,
// so a file fixed by this tool always scans as an exact match afterwards.

// FormatForSearch renders the header the way the Matcher expects to find it
// in a conformant file.
//
// Line style: each non-empty header line becomes "prefix line\n", each empty
// line just "prefix\n". Block style: the opening marker on its own line, the
// header lines verbatim, the closing marker on its own line.
func FormatForSearch(header Header, style CommentStyle) string {
	if !style.IsBlock() {
		return formatLineComments(header, style)
	}

	var b strings.Builder
	b.WriteString(style.Prefix)
	b.WriteByte('\n')
	for _, line := range header.Lines() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(style.Suffix)
	b.WriteByte('\n')
	return b.String()
}

// FormatForInsert renders the header for insertion into a file, followed by
// a single blank line separating it from the original content.
//
// Block styles wrap each line individually ("prefix line suffix") so the
// result stays readable when later lines are edited independently.
func FormatForInsert(header Header, style CommentStyle) string {
	var body string
	if style.IsBlock() {
		var b strings.Builder
		for _, line := range header.Lines() {
			b.WriteString(style.Prefix)
			if line != "" {
				b.WriteByte(' ')
				b.WriteString(line)
			}
			b.WriteByte(' ')
			b.WriteString(style.Suffix)
			b.WriteByte('\n')
		}
		body = b.String()
	} else {
		body = formatLineComments(header, style)
	}
	return body + "\n"
}

func formatLineComments(header Header, style CommentStyle) string {
	var b strings.Builder
	for _, line := range header.Lines() {
		b.WriteString(style.Prefix)
		if line != "" {
			b.WriteByte(' ')
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
