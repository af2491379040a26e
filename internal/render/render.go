// Package render builds the markdown hover content for locator tokens: the
// referenced source line in a fenced code block with caret markers under
// the referenced columns.
package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"firloc/internal/annotation"
)

// UnavailableLine substitutes for a source line that cannot be read, so
// hover rendering still completes when a target file is missing.
const UnavailableLine = "<source line unavailable>"

// A LineReader supplies the text of the source line a locator points at.
// Implementations consult open editor buffers before the filesystem.
type LineReader interface {
	LocatorLine(locator annotation.Locator) (string, bool)
}

// LineAt returns the 1-based line of text. Both \n and \r\n endings yield
// the same line text, without the trailing \r. Line 0 or a line past the
// end of the document fails.
func LineAt(text string, line uint32) (string, bool) {
	if line == 0 {
		return "", false
	}
	lines := strings.Split(text, "\n")
	index := int(line - 1)
	if index >= len(lines) {
		return "", false
	}
	return strings.TrimSuffix(lines[index], "\r"), true
}

// ColumnMarker builds the marker line drawn under a source line: a caret
// under each nonzero 1-based column, truncated right after the last caret.
// Tabs in the source line stay tabs in the marker line so editor tab
// rendering keeps the carets aligned. With no nonzero column the marker is
// a single caret.
func ColumnMarker(sourceLine string, columns []uint32) string {
	indicators := make([]rune, 0, len(sourceLine))
	for _, r := range sourceLine {
		if r == '\t' {
			indicators = append(indicators, '\t')
		} else {
			indicators = append(indicators, ' ')
		}
	}

	hasValidColumn := false
	last := -1
	for _, column := range columns {
		if column == 0 {
			continue
		}
		hasValidColumn = true
		index := int(column - 1)
		for index >= len(indicators) {
			indicators = append(indicators, ' ')
		}
		indicators[index] = '^'
		if index > last {
			last = index
		}
	}

	if !hasValidColumn {
		return "^"
	}

	return string(indicators[:last+1])
}

// languageSuffixes maps lower-cased path suffixes to markdown fence tags,
// checked in order.
var languageSuffixes = []struct {
	suffix   string
	language string
}{
	{".scala", "scala"},
	{".fir", "firrtl"},
	{".firrtl", "firrtl"},
	{".rs", "rust"},
	{".py", "python"},
	{".sv", "verilog"},
	{".svh", "verilog"},
	{".v", "verilog"},
}

// Language maps a target path to the markdown language tag used for its
// hover code fence. Config overrides (keyed by extension, dot included)
// win over the built-in table; unknown extensions render as plain text.
func Language(path string, overrides map[string]string) string {
	lower := strings.ToLower(path)

	if len(overrides) > 0 {
		if tag, ok := overrides[strings.ToLower(filepath.Ext(path))]; ok {
			return tag
		}
	}

	for _, entry := range languageSuffixes {
		if strings.HasSuffix(lower, entry.suffix) {
			return entry.language
		}
	}
	return "text"
}

// TokenBlock renders the fenced context block for one locator: the target
// source line with a caret marker line beneath it.
func TokenBlock(locator annotation.Locator, reader LineReader, overrides map[string]string) string {
	sourceLine, ok := reader.LocatorLine(locator)
	if !ok {
		sourceLine = UnavailableLine
	}
	language := Language(locator.Path, overrides)
	marker := ColumnMarker(sourceLine, locator.Columns)
	return fmt.Sprintf("```%s\n%s\n%s\n```", language, sourceLine, marker)
}

// TokenHover renders the hover for a single token: its context block with
// the formatted locator below the fence.
func TokenHover(locator annotation.Locator, reader LineReader, overrides map[string]string) string {
	return TokenBlock(locator, reader, overrides) + "\n" + locator.String()
}

// Summary renders one context block per token for the whole-annotation
// hover. It returns "" when there are no tokens to render.
func Summary(tokens []annotation.Token, reader LineReader, overrides map[string]string) string {
	blocks := make([]string, 0, len(tokens))
	for _, token := range tokens {
		blocks = append(blocks, TokenBlock(token.Locator, reader, overrides))
	}
	return strings.Join(blocks, "\n")
}
