package annotation

import (
	"strconv"
	"strings"
	"unicode"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"firloc/internal/textindex"
)

// Token pairs the literal text of one comma-delimited locator inside an
// annotation with the Locator it parsed to. ByteStart/ByteEnd address the
// trimmed token text within the hosting document; Range is the same
// extent in LSP coordinates.
type Token struct {
	ByteStart int
	ByteEnd   int
	Range     protocol.Range
	Locator   Locator
}

// ParseTokens extracts all valid locator tokens from the annotation span,
// in textual order. A token with an empty path inherits the nearest
// preceding explicit path in the same annotation; tokens that fail to
// parse (or have nothing to inherit) are dropped without affecting their
// siblings.
func ParseTokens(text string, span Span, ix *textindex.Index) []Token {
	inner := text[span.InnerStart:span.InnerEnd]
	var tokens []Token
	lastPath := ""

	for _, raw := range splitTokens(inner) {
		rawStart, rawEnd := raw[0], raw[1]
		if rawStart >= rawEnd || rawEnd > len(inner) {
			continue
		}

		segment := inner[rawStart:rawEnd]
		leading := len(segment) - len(strings.TrimLeftFunc(segment, unicode.IsSpace))
		trailing := len(segment) - len(strings.TrimRightFunc(segment, unicode.IsSpace))
		if leading+trailing >= len(segment) {
			continue
		}

		tokenStart := rawStart + leading
		tokenEnd := rawEnd - trailing

		locator, inherited, ok := parseLocator(inner[tokenStart:tokenEnd], lastPath)
		if !ok {
			continue
		}
		if !inherited {
			lastPath = locator.Path
		}

		byteStart := span.InnerStart + tokenStart
		byteEnd := span.InnerStart + tokenEnd

		tokens = append(tokens, Token{
			ByteStart: byteStart,
			ByteEnd:   byteEnd,
			Range:     ix.Range(byteStart, byteEnd),
			Locator:   locator,
		})
	}

	return tokens
}

// TokenAt returns the token whose byte range contains offset.
func TokenAt(tokens []Token, offset int) (Token, bool) {
	for _, token := range tokens {
		if offset >= token.ByteStart && offset < token.ByteEnd {
			return token, true
		}
	}
	return Token{}, false
}

// splitTokens splits the annotation's inner text on top-level commas,
// returning [start, end) byte pairs. Commas inside {...} column groups are
// not delimiters; an unmatched '}' never drives the depth below zero.
func splitTokens(inner string) [][2]int {
	var result [][2]int
	start := 0
	braceDepth := 0

	for idx := 0; idx < len(inner); idx++ {
		switch inner[idx] {
		case '{':
			braceDepth++
		case '}':
			if braceDepth > 0 {
				braceDepth--
			}
		case ',':
			if braceDepth == 0 {
				result = append(result, [2]int{start, idx})
				start = idx + 1
			}
		}
	}

	return append(result, [2]int{start, len(inner)})
}

// parseLocator parses one trimmed token. The text after the last colon is
// the column specifier, the text after the next-to-last colon is the line,
// and everything before that is the path. An empty path inherits lastPath;
// inherited reports whether it did, and ok is false when the token is
// invalid (bad line, no usable columns, or nothing to inherit).
func parseLocator(token string, lastPath string) (locator Locator, inherited bool, ok bool) {
	lastColon := strings.LastIndexByte(token, ':')
	if lastColon < 0 {
		return Locator{}, false, false
	}
	columnsText := token[lastColon+1:]
	beforeColumns := token[:lastColon]

	lineColon := strings.LastIndexByte(beforeColumns, ':')
	if lineColon < 0 {
		return Locator{}, false, false
	}
	pathText := beforeColumns[:lineColon]
	lineText := beforeColumns[lineColon+1:]

	line, err := strconv.ParseUint(lineText, 10, 32)
	if err != nil {
		return Locator{}, false, false
	}

	columns := parseColumns(columnsText)
	if columns == nil {
		return Locator{}, false, false
	}

	path := pathText
	if path == "" {
		if lastPath == "" {
			return Locator{}, false, false
		}
		path = lastPath
		inherited = true
	}

	return Locator{Path: path, Line: uint32(line), Columns: columns}, inherited, true
}

// parseColumns parses a column specifier: either a single integer or a
// {c1,c2,...} group. Group entries that fail to parse are skipped; an
// empty result is invalid and returns nil.
func parseColumns(text string) []uint32 {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		var columns []uint32
		for _, part := range strings.Split(trimmed[1:len(trimmed)-1], ",") {
			column, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
			if err != nil {
				continue
			}
			columns = append(columns, uint32(column))
		}
		return columns
	}

	column, err := strconv.ParseUint(trimmed, 10, 32)
	if err != nil {
		return nil
	}
	return []uint32{uint32(column)}
}
