// Package textmeasure estimates the rendered extent of label text in
// monospace cells. Layout sizes label boxes from it without loading
// fonts.
package textmeasure

import (
	"strings"

	"golang.org/x/text/width"
)

// CellCount is the number of monospace cells a string occupies. Wide
// East Asian runes take two cells, everything else one, so byte count
// never leaks into pixel math.
func CellCount(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// WordCount counts whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
