package asm

import (
	"strings"
	"testing"

	"stackasm/pkg/isa"
	"stackasm/pkg/operand"
)

// smallProgram is a short counter loop.
const smallProgram = `
.main:
	push 10
.loop:
	push 1
	sub
	dup
	jz done
	jmp loop
.done:
	halt
`

// mediumProgram has several subroutines, comments and a quoted operand.
const mediumProgram = `
# entry point
.main:
	push 7
	call abs_fn
	push 5
	call triple_fn
	add
	print
	push "Hello, World!"   # greeting
	print
	halt

# ---- absolute value of top of stack ----
.abs_fn:
	dup
	push 0
	sub
	jz abs_done
	push -1
	mul
.abs_done:
	ret

# ---- doubles top of stack ----
.double_fn:
	dup
	add
	ret

.triple_fn:
	dup
	call double_fn
	add
	ret
`

// largeProgram repeats the medium body under distinct labels.
var largeProgram = func() string {
	var sb strings.Builder
	for i := 0; i < 20; i++ {
		body := strings.ReplaceAll(mediumProgram, "_fn", "_fn"+strings.Repeat("x", i+1))
		body = strings.ReplaceAll(body, ".main:", ".main"+strings.Repeat("x", i+1)+":")
		body = strings.ReplaceAll(body, ".abs_done:", ".abs_done"+strings.Repeat("x", i+1)+":")
		sb.WriteString(body)
	}
	return sb.String()
}()

func benchmarkParse(b *testing.B, src string) {
	a := New[operand.Operand](isa.Stack(), operand.Converter{})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := a.Parse(src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParse_Small(b *testing.B) { benchmarkParse(b, smallProgram) }
func BenchmarkParse_Medium(b *testing.B) { benchmarkParse(b, mediumProgram) }
func BenchmarkParse_Large(b *testing.B) { benchmarkParse(b, largeProgram) }

func BenchmarkTokenize(b *testing.B) {
	line := `	store "quoted operand with spaces" 42   # comment`
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Tokenize(StripComment(line))
	}
}

func TestBenchmarkProgramsAssemble(t *testing.T) {
	for name, src := range map[string]string{"small": smallProgram, "medium": mediumProgram, "large": largeProgram} {
		if _, err := Parse[operand.Operand](src, isa.Stack(), operand.Converter{}); err != nil {
			t.Errorf("%s program: %v", name, err)
		}
	}
}
