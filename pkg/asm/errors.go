package asm

import "fmt"

// UnknownMnemonicError reports an instruction line whose first token is not
// in the instruction table.
type UnknownMnemonicError struct {
	Line  int
	Token string
}

func (e *UnknownMnemonicError) Error() string {
	return fmt.Sprintf("unknown instruction on line %d: %s", e.Line, e.Token)
}

// MissingOperandError reports fewer operand tokens than the instruction's
// arity.
type MissingOperandError struct {
	Line     int
	Mnemonic string
	Expected int
	Found    int
}

func (e *MissingOperandError) Error() string {
	return fmt.Sprintf("%s expects %d operands on line %d, found %d", e.Mnemonic, e.Expected, e.Line, e.Found)
}

// SurplusOperandError reports extra operand tokens in strict arity mode.
type SurplusOperandError struct {
	Line     int
	Mnemonic string
	Expected int
	Found    int
}

func (e *SurplusOperandError) Error() string {
	return fmt.Sprintf("%s expects %d operands on line %d, found %d", e.Mnemonic, e.Expected, e.Line, e.Found)
}

// MalformedLabelError reports a label line from which no name can be
// extracted, such as a bare ":" or ".".
type MalformedLabelError struct {
	Line int
	Text string
}

func (e *MalformedLabelError) Error() string {
	return fmt.Sprintf("invalid label on line %d: %q", e.Line, e.Text)
}

// BadOperandError wraps a conversion failure for one operand token.
type BadOperandError struct {
	Line  int
	Token string
	Err   error
}

func (e *BadOperandError) Error() string {
	return fmt.Sprintf("invalid operand '%s' on line %d: %v", e.Token, e.Line, e.Err)
}

func (e *BadOperandError) Unwrap() error { return e.Err }

// EmitError wraps an accumulator rejection, such as a duplicate label.
type EmitError struct {
	Line int
	Err  error
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *EmitError) Unwrap() error { return e.Err }

// LineOf returns the source line an assembler error points at, or 0.
func LineOf(err error) int {
	switch e := err.(type) {
	case *UnknownMnemonicError:
		return e.Line
	case *MissingOperandError:
		return e.Line
	case *SurplusOperandError:
		return e.Line
	case *MalformedLabelError:
		return e.Line
	case *BadOperandError:
		return e.Line
	case *EmitError:
		return e.Line
	}
	return 0
}
