package code

import (
	"errors"
	"fmt"

	"stackasm/pkg/isa"
)

var (
	ErrDuplicateLabel     = errors.New("duplicate label")
	ErrEmptyLabel         = errors.New("empty label")
	ErrUnknownInstruction = errors.New("unknown instruction")
	ErrArity              = errors.New("wrong number of operands")
)

// Label marks a program offset.
type Label struct {
	IP   int
	Name string
}

// Builder accumulates labels and instructions for one program. It is owned
// by a single caller until FromBuilder finalizes it.
type Builder[T comparable, H any] struct {
	table   *isa.Table[H]
	program []int
	data    []T
	index   map[T]int
	labels  []Label
	seen    map[string]struct{}
}

func NewBuilder[T comparable, H any](table *isa.Table[H]) *Builder[T, H] {
	return &Builder[T, H]{
		table: table,
		index: make(map[T]int),
		seen:  make(map[string]struct{}),
	}
}

// Label marks the current end of the program with name.
func (b *Builder[T, H]) Label(name string) error {
	if name == "" {
		return ErrEmptyLabel
	}
	if _, exists := b.seen[name]; exists {
		return fmt.Errorf("%w '%s'", ErrDuplicateLabel, name)
	}
	b.seen[name] = struct{}{}
	b.labels = append(b.labels, Label{IP: len(b.program), Name: name})
	return nil
}

// Push appends an instruction. On error the builder is left unchanged.
func (b *Builder[T, H]) Push(mnemonic string, args []T) error {
	instr, ok := b.table.ByName(mnemonic)
	if !ok {
		return fmt.Errorf("%w '%s'", ErrUnknownInstruction, mnemonic)
	}
	if len(args) != instr.Arity {
		return fmt.Errorf("%s: %w: expects %d, got %d", mnemonic, ErrArity, instr.Arity, len(args))
	}

	b.program = append(b.program, instr.OpCode, len(args))
	for _, arg := range args {
		b.program = append(b.program, b.intern(arg))
	}
	return nil
}

// Len is the current program length in words.
func (b *Builder[T, H]) Len() int {
	return len(b.program)
}

// intern returns the data index of v, adding it if no equal value exists.
func (b *Builder[T, H]) intern(v T) int {
	if i, ok := b.index[v]; ok {
		return i
	}
	b.data = append(b.data, v)
	b.index[v] = len(b.data) - 1
	return len(b.data) - 1
}
