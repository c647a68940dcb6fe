package asm

// Converter builds an operand value from its token text. The operand type
// decides what a token means; the assembler only hands tokens over.
type Converter[T any] interface {
	FromToken(tok string) (T, error)
}

// ConverterFunc adapts a plain function to Converter.
type ConverterFunc[T any] func(tok string) (T, error)

func (f ConverterFunc[T]) FromToken(tok string) (T, error) {
	return f(tok)
}

// coerceOperands converts the arity tokens following the mnemonic.
func coerceOperands[T any](p parsedLine, arity int, strict bool, conv Converter[T]) ([]T, error) {
	found := len(p.operands)
	if found < arity {
		return nil, &MissingOperandError{Line: p.lineNo, Mnemonic: p.mnemonic, Expected: arity, Found: found}
	}
	if strict && found > arity {
		return nil, &SurplusOperandError{Line: p.lineNo, Mnemonic: p.mnemonic, Expected: arity, Found: found}
	}

	args := make([]T, 0, arity)
	for _, tok := range p.operands[:arity] {
		v, err := conv.FromToken(tok)
		if err != nil {
			return nil, &BadOperandError{Line: p.lineNo, Token: tok, Err: err}
		}
		args = append(args, v)
	}
	return args, nil
}
