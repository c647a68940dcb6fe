package asm

import "strings"

// LineKind says what a non-empty source line declares.
type LineKind uint8

const (
	Instruction LineKind = iota
	Label
)

func (k LineKind) String() string {
	if k == Label {
		return "label"
	}
	return "instruction"
}

// Classify decides whether a tokenized line declares a label. A label's
// first token starts with '.' and ends with ':'. With loose set, the leading
// '.' alone is enough. tokens must not be empty.
func Classify(tokens []string, loose bool) LineKind {
	first := tokens[0]
	if first[0] != '.' {
		return Instruction
	}
	if loose || strings.HasSuffix(first, ":") {
		return Label
	}
	return Instruction
}

// LabelName pulls the label name out of a comment-stripped line: the line
// is split on ':' and '.', blank pieces are dropped, and the first word of
// the first remaining piece is the name. Whitespace-only pieces count as
// blank, so "  .main:" names main rather than being malformed.
func LabelName(line string) (string, bool) {
	pieces := strings.FieldsFunc(line, func(r rune) bool {
		return r == ':' || r == '.'
	})
	for _, p := range pieces {
		if words := strings.Fields(p); len(words) > 0 {
			return words[0], true
		}
	}
	return "", false
}
