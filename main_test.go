package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const roundTripSource = `
.main:
	push 33
	push hello_world
	add
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunPrintsListing(t *testing.T) {
	in := writeFile(t, t.TempDir(), "prog.asm", roundTripSource)

	var stdout, stderr bytes.Buffer
	code := run([]string{in}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	require.Equal(t, roundTripSource, stdout.String())
}

func TestRunMultipleFilesKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	var inputs []string
	for _, name := range []string{"a.asm", "b.asm", "c.asm"} {
		inputs = append(inputs, writeFile(t, dir, name, "."+strings.TrimSuffix(name, ".asm")+":\n\thalt\n"))
	}

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run(inputs, &stdout, &stderr), stderr.String())

	out := stdout.String()
	ia := strings.Index(out, "== "+inputs[0])
	ib := strings.Index(out, "== "+inputs[1])
	ic := strings.Index(out, "== "+inputs[2])
	require.True(t, ia >= 0 && ia < ib && ib < ic, out)
	require.Contains(t, out, ".b:\n\thalt\n")
}

func TestRunAnnotateToFile(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "prog.asm", roundTripSource)
	out := filepath.Join(dir, "prog.lst")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-annotate", "-out", out, in}, &stdout, &stderr), stderr.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "    .main:\n0000\tpush 33\n0003\tpush hello_world\n0006\tadd\n", string(data))
	require.Empty(t, stdout.String())
}

func TestRunReportsFirstError(t *testing.T) {
	in := writeFile(t, t.TempDir(), "bad.asm", "push 1\nfrobnicate 2\n")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 1, run([]string{in}, &stdout, &stderr))
	require.Contains(t, stderr.String(), in+":2")
	require.Contains(t, stderr.String(), "frobnicate")
}

func TestRunReportsEarliestInputError(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.asm", "frobA 1\n")
	var inputs []string
	inputs = append(inputs, first)
	for i := 0; i < 8; i++ {
		inputs = append(inputs, writeFile(t, dir, fmt.Sprintf("b%d.asm", i), "frobB 1\n"))
	}

	for i := 0; i < 50; i++ {
		var stdout, stderr bytes.Buffer
		require.Equal(t, 1, run(inputs, &stdout, &stderr))
		require.Contains(t, stderr.String(), first+":1", "run %d", i)
		require.Contains(t, stderr.String(), "frobA", "run %d", i)
		require.NotContains(t, stderr.String(), "frobB", "run %d", i)
	}
}

func TestRunStrict(t *testing.T) {
	in := writeFile(t, t.TempDir(), "extra.asm", "push 1 2\n")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{in}, &stdout, &stderr), stderr.String())
	require.Equal(t, 1, run([]string{"-strict", in}, &stdout, &stderr))
}

func TestRunCustomTable(t *testing.T) {
	dir := t.TempDir()
	isaPath := writeFile(t, dir, "isa.lua", `instruction(0, "emit", 2)`)
	in := writeFile(t, dir, "prog.asm", "emit \"a b\" 3\n")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-isa", isaPath, in}, &stdout, &stderr), stderr.String())
	require.Equal(t, "\n\temit \"a b\" 3\n", stdout.String())
}

func TestRunUsageErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 2, run(nil, &stdout, &stderr))
	require.Equal(t, 2, run([]string{"-out", "x.lst", "a.asm", "b.asm"}, &stdout, &stderr))
}
