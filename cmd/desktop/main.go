package main

import (
	"flag"
	"image/color"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"stackasm/pkg/asm"
	"stackasm/pkg/isafile"
	"stackasm/pkg/listing"
	"stackasm/pkg/operand"
	"stackasm/pkg/utils"
)

const (
	screenWidth  = 640
	screenHeight = 480
	lineHeight   = 16
	margin       = 8
)

var (
	labelColor = color.RGBA{0xff, 0xd0, 0x60, 0xff}
	instrColor = color.RGBA{0xd0, 0xd0, 0xd0, 0xff}
	errorColor = color.RGBA{0xff, 0x60, 0x60, 0xff}
)

// Viewer shows an assembled listing, or the error that stopped assembly.
type Viewer struct {
	lines  []listing.Line
	err    error
	offset int
	face   text.Face
}

func (v *Viewer) rows() int {
	return (screenHeight - 2*margin) / lineHeight
}

func (v *Viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		v.offset++
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		v.offset--
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		v.offset += v.rows()
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		v.offset -= v.rows()
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		v.offset = 0
	}
	v.offset, _ = listing.Window(len(v.lines), v.offset, v.rows())
	return nil
}

func (v *Viewer) drawLine(screen *ebiten.Image, s string, row int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(margin, float64(margin+row*lineHeight))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, v.face, op)
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.err != nil {
		v.drawLine(screen, v.err.Error(), 0, errorColor)
		return
	}

	start, end := listing.Window(len(v.lines), v.offset, v.rows())
	for i, l := range v.lines[start:end] {
		c := instrColor
		if l.Kind == listing.KindLabel {
			c = labelColor
		}
		v.drawLine(screen, strings.ReplaceAll(l.Annotated(), "\t", "  "), i, c)
	}
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	isaPath := flag.String("isa", "", "Lua instruction table script (default: built-in stack machine)")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("usage: %s [-isa table.lua] file.asm", os.Args[0])
	}

	fullPath, _, err := utils.GetPathInfo(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to resolve source path: %v", err)
	}
	source, err := os.ReadFile(fullPath)
	if err != nil {
		log.Fatalf("Failed to read source file: %v", err)
	}
	table, err := isafile.Load(*isaPath)
	if err != nil {
		log.Fatalf("Failed to load instruction table: %v", err)
	}

	viewer := &Viewer{face: text.NewGoXFace(basicfont.Face7x13)}
	c, err := asm.Parse[operand.Operand](string(source), table, operand.Converter{})
	if err != nil {
		viewer.err = err
	} else {
		viewer.lines = listing.Build(c)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("stackasm - " + flag.Arg(0))

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}
}
