package isa

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrDuplicateOpCode = errors.New("duplicate opcode")
	ErrDuplicateName   = errors.New("duplicate instruction name")
	ErrInvalidArity    = errors.New("invalid arity")
	ErrEmptyName       = errors.New("empty instruction name")
)

// Instruction describes one kind of VM instruction. Handler is whatever the
// executing machine needs to run it; the assembler never looks at it.
type Instruction[H any] struct {
	OpCode  int
	Name    string
	Arity   int
	Handler H
}

// Symbol pairs an opcode with its mnemonic.
type Symbol struct {
	OpCode int
	Name   string
}

// Table maps mnemonics and opcodes to instructions. It is built once and
// then only read, so concurrent lookups need no locking.
type Table[H any] struct {
	byOpCode map[int]*Instruction[H]
	byName   map[string]*Instruction[H]
}

func NewTable[H any]() *Table[H] {
	return &Table[H]{
		byOpCode: make(map[int]*Instruction[H]),
		byName:   make(map[string]*Instruction[H]),
	}
}

// Insert adds an instruction to the table.
func (t *Table[H]) Insert(instr Instruction[H]) error {
	if instr.Name == "" {
		return fmt.Errorf("opcode %d: %w", instr.OpCode, ErrEmptyName)
	}
	if instr.Arity < 0 {
		return fmt.Errorf("%s: %w %d", instr.Name, ErrInvalidArity, instr.Arity)
	}
	if prev, exists := t.byOpCode[instr.OpCode]; exists {
		return fmt.Errorf("%s: %w %d (already used by %s)", instr.Name, ErrDuplicateOpCode, instr.OpCode, prev.Name)
	}
	if _, exists := t.byName[instr.Name]; exists {
		return fmt.Errorf("%w '%s'", ErrDuplicateName, instr.Name)
	}

	stored := instr
	t.byOpCode[instr.OpCode] = &stored
	t.byName[instr.Name] = &stored
	return nil
}

// ByName looks up an instruction by exact mnemonic.
func (t *Table[H]) ByName(name string) (*Instruction[H], bool) {
	instr, ok := t.byName[name]
	return instr, ok
}

func (t *Table[H]) ByOpCode(op int) (*Instruction[H], bool) {
	instr, ok := t.byOpCode[op]
	return instr, ok
}

func (t *Table[H]) Len() int {
	return len(t.byOpCode)
}

// Symbols returns every (opcode, name) pair ordered by opcode.
func (t *Table[H]) Symbols() []Symbol {
	syms := make([]Symbol, 0, len(t.byOpCode))
	for op, instr := range t.byOpCode {
		syms = append(syms, Symbol{OpCode: op, Name: instr.Name})
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i].OpCode < syms[j].OpCode
	})
	return syms
}
