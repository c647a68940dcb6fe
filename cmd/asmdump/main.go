package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"stackasm/pkg/asm"
	"stackasm/pkg/isafile"
	"stackasm/pkg/operand"
)

const testSource = `# sample
.main:
	push 33
	push "hello world"   # quoted operand
	add
`

func main() {
	isaPath := flag.String("isa", "", "Lua instruction table script (default: built-in stack machine)")
	dotLabels := flag.Bool("dot-labels", false, "treat every line starting with '.' as a label")
	flag.Parse()

	src := testSource
	if flag.NArg() > 0 {
		data, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, "read error:", err)
			os.Exit(1)
		}
		src = string(data)
	}

	table, err := isafile.Load(*isaPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "isa error:", err)
		os.Exit(1)
	}

	dumpLines(os.Stdout, src, *dotLabels, func(name string) (int, bool) {
		instr, ok := table.ByName(name)
		if !ok {
			return 0, false
		}
		return instr.Arity, true
	})

	var opts []asm.Option
	if *dotLabels {
		opts = append(opts, asm.WithDotLabels())
	}
	c, err := asm.Parse[operand.Operand](src, table, operand.Converter{}, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "assembly error:", err)
		os.Exit(1)
	}

	fmt.Println("Program")
	fmt.Println(" ", c.Program)
	fmt.Println("Data")
	for i, d := range c.Data {
		fmt.Printf("  %d: %s %v\n", i, d.Kind, d)
	}
	fmt.Println("Listing")
	fmt.Print(c)
}

// dumpLines prints what every stage of the line pipeline sees.
func dumpLines(w io.Writer, src string, loose bool, arity func(string) (int, bool)) {
	fmt.Fprintln(w, "Lines")
	for i, raw := range strings.Split(src, "\n") {
		stripped := asm.StripComment(raw)
		tokens := asm.Tokenize(stripped)
		if len(tokens) == 0 {
			continue
		}

		kind := asm.Classify(tokens, loose)
		fmt.Fprintf(w, "  %3d %-11s %q\n", i+1, kind, tokens)
		switch kind {
		case asm.Label:
			name, ok := asm.LabelName(stripped)
			if !ok {
				fmt.Fprintln(w, "      malformed label")
				continue
			}
			fmt.Fprintf(w, "      label %s\n", name)
		default:
			n, ok := arity(tokens[0])
			if !ok {
				fmt.Fprintf(w, "      unknown mnemonic %s\n", tokens[0])
				continue
			}
			fmt.Fprintf(w, "      %s/%d operands %q\n", tokens[0], n, tokens[1:min(len(tokens), n+1)])
		}
	}
	fmt.Fprintln(w)
}
