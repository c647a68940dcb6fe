package code

import (
	"fmt"
	"strings"

	"stackasm/pkg/isa"
)

// Code is a finalized program. Program is a flat word stream where each
// instruction is laid out as opcode, operand count, then one Data index per
// operand.
type Code[T any] struct {
	Symbols []isa.Symbol
	Program []int
	Data    []T
	Labels  []Label
}

// Instr is one decoded instruction.
type Instr[T any] struct {
	IP     int
	OpCode int
	Name   string
	Args   []T
}

// FromBuilder finalizes b. The builder should not be used afterwards.
func FromBuilder[T comparable, H any](b *Builder[T, H]) *Code[T] {
	c := &Code[T]{
		Symbols: b.table.Symbols(),
		Program: make([]int, len(b.program)),
		Data:    make([]T, len(b.data)),
		Labels:  make([]Label, len(b.labels)),
	}
	copy(c.Program, b.program)
	copy(c.Data, b.data)
	copy(c.Labels, b.labels)
	return c
}

// LabelIP returns the program offset a label points at.
func (c *Code[T]) LabelIP(name string) (int, bool) {
	for _, l := range c.Labels {
		if l.Name == name {
			return l.IP, true
		}
	}
	return 0, false
}

func (c *Code[T]) symbol(op int) string {
	for _, s := range c.Symbols {
		if s.OpCode == op {
			return s.Name
		}
	}
	return fmt.Sprintf("op%d", op)
}

// Instructions decodes the program in order.
func (c *Code[T]) Instructions() []Instr[T] {
	var out []Instr[T]
	for ip := 0; ip+1 < len(c.Program); {
		op, arity := c.Program[ip], c.Program[ip+1]
		in := Instr[T]{IP: ip, OpCode: op, Name: c.symbol(op)}
		for j := 0; j < arity && ip+2+j < len(c.Program); j++ {
			in.Args = append(in.Args, c.Data[c.Program[ip+2+j]])
		}
		out = append(out, in)
		ip += 2 + arity
	}
	return out
}

// String renders the program back to assembly text: labels as ".name:" and
// instructions indented by a tab, each on its own line after a leading
// newline, with one trailing newline.
func (c *Code[T]) String() string {
	var sb strings.Builder
	next := 0
	writeLabels := func(ip int) {
		for next < len(c.Labels) && c.Labels[next].IP <= ip {
			fmt.Fprintf(&sb, "\n.%s:", c.Labels[next].Name)
			next++
		}
	}

	for _, in := range c.Instructions() {
		writeLabels(in.IP)
		sb.WriteString("\n\t")
		sb.WriteString(in.Name)
		for _, arg := range in.Args {
			sb.WriteByte(' ')
			sb.WriteString(fmt.Sprint(arg))
		}
	}
	writeLabels(len(c.Program))
	sb.WriteByte('\n')
	return sb.String()
}
