// Package textindex converts between LSP text positions and byte offsets.
//
// The transport encodes positions as 0-based lines with UTF-16 code-unit
// columns, while all annotation processing happens on raw bytes. An Index
// holds a line-start table for one document so the two coordinate systems
// convert exactly: for any offset on a codepoint boundary,
// PositionToOffset(OffsetToPosition(o)) == o.
package textindex

import (
	"sort"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Index is a line-start table over a single document's text.
type Index struct {
	text       string
	lineStarts []int
}

// New builds an Index for text. Offset 0 always starts the first line and
// every byte after a '\n' starts a new one.
func New(text string) *Index {
	starts := []int{0}
	for idx := 0; idx < len(text); idx++ {
		if text[idx] == '\n' {
			starts = append(starts, idx+1)
		}
	}
	return &Index{text: text, lineStarts: starts}
}

// utf16Width is the number of UTF-16 code units encoding r.
func utf16Width(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}

// PositionToOffset converts an LSP position to a byte offset. It fails only
// when the line is outside the document; a column past the end of its line
// resolves to the line's end.
func (ix *Index) PositionToOffset(pos protocol.Position) (int, bool) {
	line := int(pos.Line)
	if line >= len(ix.lineStarts) {
		return 0, false
	}

	lineStart := ix.lineStarts[line]
	lineEnd := len(ix.text)
	if line+1 < len(ix.lineStarts) {
		lineEnd = ix.lineStarts[line+1]
	}

	remaining := int(pos.Character)
	for idx, r := range ix.text[lineStart:lineEnd] {
		width := utf16Width(r)
		if remaining < width {
			// A column landing inside a surrogate pair snaps to the
			// character's start.
			return lineStart + idx, true
		}
		remaining -= width
	}

	return lineEnd, true
}

// OffsetToPosition converts a byte offset (clamped to the document length)
// to an LSP position.
func (ix *Index) OffsetToPosition(offset int) protocol.Position {
	clamped := min(offset, len(ix.text))
	line := ix.lineIndexFor(clamped)

	var column protocol.UInteger
	for _, r := range ix.text[ix.lineStarts[line]:clamped] {
		column += protocol.UInteger(utf16Width(r))
	}

	return protocol.Position{Line: protocol.UInteger(line), Character: column}
}

// Range converts a byte range to an LSP range.
func (ix *Index) Range(start, end int) protocol.Range {
	return protocol.Range{
		Start: ix.OffsetToPosition(start),
		End:   ix.OffsetToPosition(end),
	}
}

// LineStartForOffset returns the byte offset at which the line containing
// offset begins.
func (ix *Index) LineStartForOffset(offset int) int {
	return ix.lineStarts[ix.lineIndexFor(min(offset, len(ix.text)))]
}

func (ix *Index) lineIndexFor(offset int) int {
	i := sort.SearchInts(ix.lineStarts, offset)
	if i < len(ix.lineStarts) && ix.lineStarts[i] == offset {
		return i
	}
	if i == 0 {
		return 0
	}
	return i - 1
}
