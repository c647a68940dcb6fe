package isafile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const stackScript = `
-- a tiny stack machine
instruction(0, "push", 1)
instruction(1, "add", 0, "do_add")

local binops = { "sub", "mul" }
for i, name in ipairs(binops) do
  instruction(1 + i, name, 0)
end
`

func TestParseLua(t *testing.T) {
	tbl, err := ParseLua("stack.lua", stackScript)
	require.NoError(t, err)
	require.Equal(t, 4, tbl.Len())

	push, ok := tbl.ByName("push")
	require.True(t, ok)
	require.Equal(t, 0, push.OpCode)
	require.Equal(t, 1, push.Arity)
	require.Equal(t, "push", push.Handler)

	add, ok := tbl.ByName("add")
	require.True(t, ok)
	require.Equal(t, "do_add", add.Handler)

	mul, ok := tbl.ByName("mul")
	require.True(t, ok)
	require.Equal(t, 3, mul.OpCode)
}

func TestParseLuaErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"syntax", `instruction(0, "push"`, "bad.lua"},
		{"duplicate", `instruction(0, "push", 1) instruction(0, "pop", 0)`, "duplicate opcode"},
		{"bad arity type", `instruction(0, "push", "one")`, "bad.lua"},
		{"empty", `local x = 1`, "declares no instructions"},
	}
	for _, tc := range tests {
		_, err := ParseLua("bad.lua", tc.script)
		require.Error(t, err, tc.name)
		require.True(t, strings.Contains(err.Error(), tc.want), "%s: %v", tc.name, err)
	}
}

func TestLoadLua(t *testing.T) {
	path := filepath.Join(t.TempDir(), "isa.lua")
	require.NoError(t, os.WriteFile(path, []byte(stackScript), 0o644))

	tbl, err := LoadLua(path)
	require.NoError(t, err)
	require.Equal(t, 4, tbl.Len())

	_, err = LoadLua(filepath.Join(t.TempDir(), "missing.lua"))
	require.Error(t, err)
}

func TestLoadDefault(t *testing.T) {
	tbl, err := Load("")
	require.NoError(t, err)
	_, ok := tbl.ByName("halt")
	require.True(t, ok)
}
