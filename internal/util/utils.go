package util

import (
	"bytes"
	"fmt"
)

// GetContextLine renders a single-line segment with a marker under the 1-based
// column of an error.
func GetContextLine(src string, column int) string {
	var result bytes.Buffer

	if column < 1 {
		column = 1
	}
	if column > len(src)+1 {
		column = len(src) + 1
	}

	margin := "  > | "
	result.WriteString(fmt.Sprintf("%s%s\n", margin, src))
	result.WriteString(fmt.Sprintf("%s^ unexpected here",
		replaceVisibleWithSpaces(margin+src[:column-1])))

	return result.String()
}

// replaceVisibleWithSpaces replaces all non-whitespace characters with spaces
// while preserving tabs for correct alignment.
func replaceVisibleWithSpaces(s string) string {
	var buf bytes.Buffer
	for _, c := range s {
		if c == '\t' {
			buf.WriteRune('\t')
		} else {
			buf.WriteRune(' ')
		}
	}
	return buf.String()
}
