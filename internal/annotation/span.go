// Package annotation finds and parses @[...] source-locator annotations.
//
// FIRRTL and Verilog emitters append annotations of the form
// @[path:line:col, :line:{col,col}, ...] to generated statements, pointing
// back at the original source. Everything here works on byte offsets into
// one flat document buffer so hover anchors and jump ranges stay exact.
package annotation

import "strings"

// Span locates one @[...] annotation by byte offsets: FullStart/FullEnd
// cover the literal @[...] text and InnerStart/InnerEnd the content between
// the brackets. FullEnd is one past the closing bracket.
type Span struct {
	FullStart  int
	FullEnd    int
	InnerStart int
	InnerEnd   int
}

// Scan finds all annotations in text, left to right, non-overlapping. An
// annotation ends at the first ']' after its opening marker; a stray ']'
// inside the content truncates the annotation early (the source format
// never emits nested brackets). An unterminated @[ is ignored.
func Scan(text string) []Span {
	var spans []Span
	cursor := 0

	for {
		relStart := strings.Index(text[cursor:], "@[")
		if relStart < 0 {
			break
		}
		fullStart := cursor + relStart
		innerStart := fullStart + 2

		relEnd := strings.IndexByte(text[innerStart:], ']')
		if relEnd < 0 {
			break
		}
		innerEnd := innerStart + relEnd
		fullEnd := innerEnd + 1

		spans = append(spans, Span{
			FullStart:  fullStart,
			FullEnd:    fullEnd,
			InnerStart: innerStart,
			InnerEnd:   innerEnd,
		})

		cursor = fullEnd
	}

	return spans
}

// SpanAt returns the annotation whose full extent contains offset.
func SpanAt(text string, offset int) (Span, bool) {
	for _, span := range Scan(text) {
		if offset >= span.FullStart && offset < span.FullEnd {
			return span, true
		}
	}
	return Span{}, false
}
