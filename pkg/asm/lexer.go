package asm

import (
	"regexp"
	"strings"
)

// quotedRun matches one whitespace-delimited chunk holding a "..." span,
// together with any non-space characters glued to either quote. RE2's \s
// lacks \v, NEL and the Unicode separators, so they are listed explicitly to
// agree with strings.Fields.
var quotedRun = regexp.MustCompile(`[^\s\v\p{Z}\x{85}]*"[^"]*"[^\s\v\p{Z}\x{85}]*`)

// StripComment cuts line at its first '#'.
func StripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

// Tokenize splits line on whitespace, keeping each quoted run whole even if
// it contains spaces. A quote with no closing partner on the line is treated
// as ordinary text.
func Tokenize(line string) []string {
	var tokens []string
	last := 0
	for _, m := range quotedRun.FindAllStringIndex(line, -1) {
		tokens = append(tokens, strings.Fields(line[last:m[0]])...)
		if m[1] > m[0] {
			tokens = append(tokens, line[m[0]:m[1]])
		}
		last = m[1]
	}
	return append(tokens, strings.Fields(line[last:])...)
}
