// Package operand provides a simple tagged operand type for assembled
// programs: integers where the token reads as one, text otherwise.
package operand

import (
	"strconv"
)

type Kind uint8

const (
	Str Kind = iota
	Int
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Str:
		return "str"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operand holds either an integer or a string. Values are comparable so
// equal operands can share storage.
type Operand struct {
	Kind Kind
	Int  int64
	Str  string
}

func FromInt(v int64) Operand {
	return Operand{Kind: Int, Int: v}
}

func FromString(s string) Operand {
	return Operand{Kind: Str, Str: s}
}

// Parse converts a source token. Decimal integers, and integers with an
// explicit 0x, 0o or 0b prefix, become Int, with an optional sign. A leading
// zero does not mean octal and digit separators are not accepted. Anything
// else is kept verbatim as Str.
func Parse(tok string) (Operand, error) {
	if v, ok := parseInt(tok); ok {
		return FromInt(v), nil
	}
	return FromString(tok), nil
}

func parseInt(tok string) (int64, bool) {
	sign, body := "", tok
	if body != "" && (body[0] == '+' || body[0] == '-') {
		sign, body = body[:1], body[1:]
	}

	base := 10
	if len(body) > 2 && body[0] == '0' {
		switch body[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 10 {
			body = body[2:]
		}
	}

	// An explicit base makes ParseInt reject '_' separators.
	v, err := strconv.ParseInt(sign+body, base, 64)
	return v, err == nil
}

func (o Operand) String() string {
	if o.Kind == Int {
		return strconv.FormatInt(o.Int, 10)
	}
	return o.Str
}

// Converter turns tokens into Operands.
type Converter struct{}

func (Converter) FromToken(tok string) (Operand, error) {
	return Parse(tok)
}
