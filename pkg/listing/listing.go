// Package listing lays out assembled code as display lines for the
// command-line tool and the desktop viewer.
package listing

import (
	"fmt"
	"strings"

	"stackasm/pkg/code"
)

type Kind uint8

const (
	KindLabel Kind = iota
	KindInstr
)

// Line is one rendered line of a program.
type Line struct {
	IP   int
	Kind Kind
	Text string
}

// Build renders c one label or instruction per line, matching the text
// produced by Code.String.
func Build[T any](c *code.Code[T]) []Line {
	var lines []Line
	next := 0
	labels := func(ip int) {
		for next < len(c.Labels) && c.Labels[next].IP <= ip {
			lines = append(lines, Line{IP: c.Labels[next].IP, Kind: KindLabel, Text: "." + c.Labels[next].Name + ":"})
			next++
		}
	}

	for _, in := range c.Instructions() {
		labels(in.IP)
		var sb strings.Builder
		sb.WriteByte('\t')
		sb.WriteString(in.Name)
		for _, arg := range in.Args {
			fmt.Fprintf(&sb, " %v", arg)
		}
		lines = append(lines, Line{IP: in.IP, Kind: KindInstr, Text: sb.String()})
	}
	labels(len(c.Program))
	return lines
}

// Annotated returns the line prefixed with its hex offset, or with blanks
// of the same width for labels.
func (l Line) Annotated() string {
	if l.Kind == KindInstr {
		return fmt.Sprintf("%04X%s", l.IP, l.Text)
	}
	return "    " + l.Text
}

// Annotate joins the annotated form of every line.
func Annotate(lines []Line) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l.Annotated())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Window returns the [start, end) range of n lines visible when scrolled
// to offset with room for rows lines. offset is clamped so the window never
// runs past either end.
func Window(n, offset, rows int) (start, end int) {
	if rows <= 0 || n == 0 {
		return 0, 0
	}
	if offset > n-rows {
		offset = n - rows
	}
	if offset < 0 {
		offset = 0
	}
	end = offset + rows
	if end > n {
		end = n
	}
	return offset, end
}
