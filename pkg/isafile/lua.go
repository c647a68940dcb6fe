// Package isafile loads instruction tables from Lua scripts. A script
// declares each instruction with
//
//	instruction(opcode, "name", arity [, "handler"])
//
// and may use any Lua to compute them. The handler defaults to the name.
package isafile

import (
	"os"

	"github.com/pkg/errors"
	lua "github.com/yuin/gopher-lua"

	"stackasm/pkg/isa"
)

// LoadLua reads and runs the script at path.
func LoadLua(path string) (*isa.Table[string], error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading instruction table")
	}
	return ParseLua(path, string(src))
}

// ParseLua runs src, named name in error messages, and returns the table it
// declared.
func ParseLua(name, src string) (*isa.Table[string], error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			return nil, errors.Wrapf(err, "opening lua library %s", lib.name)
		}
	}

	table := isa.NewTable[string]()
	L.SetGlobal("instruction", L.NewFunction(func(L *lua.LState) int {
		instr := isa.Instruction[string]{
			OpCode: L.CheckInt(1),
			Name:   L.CheckString(2),
			Arity:  L.CheckInt(3),
		}
		instr.Handler = L.OptString(4, instr.Name)
		if err := table.Insert(instr); err != nil {
			L.RaiseError("%s", err.Error())
		}
		return 0
	}))

	if err := L.DoString(src); err != nil {
		return nil, errors.Wrapf(err, "instruction table %s", name)
	}
	if table.Len() == 0 {
		return nil, errors.Errorf("instruction table %s declares no instructions", name)
	}
	return table, nil
}

// Load returns the table scripted at path, or the built-in stack machine
// table when path is empty.
func Load(path string) (*isa.Table[string], error) {
	if path == "" {
		return isa.Stack(), nil
	}
	return LoadLua(path)
}
