package annotation

import (
	"strconv"
	"strings"
)

// Locator is one resolved path:line:column(s) reference. Line and columns
// are 1-based; a value of 0 means "no location" and produces no jump
// target. Path may have been inherited from an earlier token in the same
// annotation.
type Locator struct {
	Path    string
	Line    uint32
	Columns []uint32
}

// String renders the locator in its source form: path:line:col for a
// single column, path:line:{c1,c2,...} for a group, preserving order.
func (l Locator) String() string {
	var sb strings.Builder
	sb.WriteString(l.Path)
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(uint64(l.Line), 10))
	sb.WriteByte(':')

	if len(l.Columns) == 1 {
		sb.WriteString(strconv.FormatUint(uint64(l.Columns[0]), 10))
		return sb.String()
	}

	sb.WriteByte('{')
	for i, column := range l.Columns {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(column), 10))
	}
	sb.WriteByte('}')
	return sb.String()
}
