package isa

// Opcodes of the built-in stack machine table.
const (
	OpPush = iota
	OpPop
	OpDup
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpJmp
	OpJz
	OpCall
	OpRet
	OpPrint
	OpHalt
)

var stackInstructions = []Instruction[string]{
	{OpCode: OpPush, Name: "push", Arity: 1, Handler: "push"},
	{OpCode: OpPop, Name: "pop", Arity: 0, Handler: "pop"},
	{OpCode: OpDup, Name: "dup", Arity: 0, Handler: "dup"},
	{OpCode: OpAdd, Name: "add", Arity: 0, Handler: "add"},
	{OpCode: OpSub, Name: "sub", Arity: 0, Handler: "sub"},
	{OpCode: OpMul, Name: "mul", Arity: 0, Handler: "mul"},
	{OpCode: OpDiv, Name: "div", Arity: 0, Handler: "div"},
	{OpCode: OpJmp, Name: "jmp", Arity: 1, Handler: "jump"},
	{OpCode: OpJz, Name: "jz", Arity: 1, Handler: "jump_if_zero"},
	{OpCode: OpCall, Name: "call", Arity: 1, Handler: "call"},
	{OpCode: OpRet, Name: "ret", Arity: 0, Handler: "return"},
	{OpCode: OpPrint, Name: "print", Arity: 0, Handler: "print"},
	{OpCode: OpHalt, Name: "halt", Arity: 0, Handler: "halt"},
}

// Stack returns a fresh table for a small stack machine. Handlers are the
// symbolic names of the routines a machine would bind to each opcode.
func Stack() *Table[string] {
	t := NewTable[string]()
	for _, instr := range stackInstructions {
		if err := t.Insert(instr); err != nil {
			panic(err)
		}
	}
	return t
}
