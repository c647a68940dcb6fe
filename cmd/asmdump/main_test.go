package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestDumpLines(t *testing.T) {
	arity := func(name string) (int, bool) {
		switch name {
		case "push":
			return 1, true
		case "add":
			return 0, true
		}
		return 0, false
	}

	var buf bytes.Buffer
	dumpLines(&buf, testSource+"frob\n.:\n", false, arity)
	out := buf.String()

	for _, want := range []string{
		"label main",
		`push/1 operands ["33"]`,
		`push/1 operands ["\"hello world\""]`,
		"add/0 operands []",
		"unknown mnemonic frob",
		"malformed label",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "sample") {
		t.Errorf("comment-only line should be skipped:\n%s", out)
	}
}
