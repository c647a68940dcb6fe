package asm

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"stackasm/pkg/code"
	"stackasm/pkg/isa"
)

// Accumulator receives labels and instructions in source order.
// *code.Builder satisfies it.
type Accumulator[T any] interface {
	Label(name string) error
	Push(mnemonic string, args []T) error
}

type options struct {
	looseLabels bool
	strictArity bool
	log         logrus.FieldLogger
}

type Option func(*options)

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}()

// WithDotLabels treats every line whose first token starts with '.' as a
// label declaration, colon or not.
func WithDotLabels() Option {
	return func(o *options) { o.looseLabels = true }
}

// WithStrictArity rejects instruction lines carrying more operand tokens
// than the instruction takes. By default the extra tokens are ignored.
func WithStrictArity() Option {
	return func(o *options) { o.strictArity = true }
}

// WithLogger traces every classified line at debug level.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) { o.log = log }
}

// Assembler turns source text into code for one instruction table. It holds
// no per-parse state, so a single Assembler may parse concurrently.
type Assembler[T comparable, H any] struct {
	table *isa.Table[H]
	conv  Converter[T]
	opts  options
}

type parsedLine struct {
	lineNo   int
	kind     LineKind
	label    string
	mnemonic string
	operands []string
}

func New[T comparable, H any](table *isa.Table[H], conv Converter[T], opts ...Option) *Assembler[T, H] {
	a := &Assembler[T, H]{table: table, conv: conv}
	for _, opt := range opts {
		opt(&a.opts)
	}
	return a
}

// Parse assembles src with a one-off Assembler.
func Parse[T comparable, H any](src string, table *isa.Table[H], conv Converter[T], opts ...Option) (*code.Code[T], error) {
	return New(table, conv, opts...).Parse(src)
}

// Emit feeds src into acc with a one-off Assembler.
func Emit[T comparable, H any](src string, table *isa.Table[H], conv Converter[T], acc Accumulator[T], opts ...Option) error {
	return New(table, conv, opts...).Emit(src, acc)
}

// Parse assembles src into a fresh builder and finalizes it.
func (a *Assembler[T, H]) Parse(src string) (*code.Code[T], error) {
	b := code.NewBuilder[T](a.table)
	if err := a.Emit(src, b); err != nil {
		return nil, err
	}
	return code.FromBuilder(b), nil
}

// Emit makes a single forward pass over src and stops at the first error.
// The line that fails never reaches acc.
func (a *Assembler[T, H]) Emit(src string, acc Accumulator[T]) error {
	for i, raw := range strings.Split(src, "\n") {
		p, ok, err := a.parseLine(raw, i+1)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		if p.kind == Label {
			a.trace(p).Debug("label")
			if err := acc.Label(p.label); err != nil {
				return &EmitError{Line: p.lineNo, Err: err}
			}
			continue
		}

		instr, found := a.table.ByName(p.mnemonic)
		if !found {
			return &UnknownMnemonicError{Line: p.lineNo, Token: p.mnemonic}
		}
		args, err := coerceOperands(p, instr.Arity, a.opts.strictArity, a.conv)
		if err != nil {
			return err
		}
		a.trace(p).WithField("opcode", instr.OpCode).Debug("instruction")
		if err := acc.Push(instr.Name, args); err != nil {
			return &EmitError{Line: p.lineNo, Err: err}
		}
	}
	return nil
}

// parseLine strips, tokenizes and classifies one line. ok is false for
// lines with nothing left to assemble.
func (a *Assembler[T, H]) parseLine(raw string, lineNo int) (p parsedLine, ok bool, err error) {
	p.lineNo = lineNo

	line := StripComment(raw)
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return p, false, nil
	}

	p.kind = Classify(tokens, a.opts.looseLabels)
	if p.kind == Label {
		name, found := LabelName(line)
		if !found {
			return p, false, &MalformedLabelError{Line: lineNo, Text: strings.TrimSpace(line)}
		}
		p.label = name
		return p, true, nil
	}

	p.mnemonic = tokens[0]
	p.operands = tokens[1:]
	return p, true, nil
}

func (a *Assembler[T, H]) trace(p parsedLine) logrus.FieldLogger {
	if a.opts.log == nil {
		return discard
	}
	fields := logrus.Fields{"line": p.lineNo}
	if p.kind == Label {
		fields["label"] = p.label
	} else {
		fields["mnemonic"] = p.mnemonic
		fields["operands"] = p.operands
	}
	return a.opts.log.WithFields(fields)
}
