package annotation

import "firloc/internal/textindex"

// SummaryRegion returns the byte range of the annotation's marker region:
// the opening "@[", extended left over an immediately preceding "// " or
// "//" comment marker when one sits on the same line. Hovering this region
// summarizes the whole annotation rather than a single token.
func SummaryRegion(text string, span Span, ix *textindex.Index) (int, int) {
	atStart := span.FullStart
	markerEnd := min(atStart+2, len(text))
	lineStart := ix.LineStartForOffset(atStart)

	if atStart+2 <= len(text) {
		if start := atStart - 3; start >= lineStart && text[start:atStart+2] == "// @[" {
			return start, atStart + 2
		}
		if start := atStart - 2; start >= lineStart && text[start:atStart+2] == "//@[" {
			return start, atStart + 2
		}
	}

	return atStart, markerEnd
}
