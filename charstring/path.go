// SPDX-License-Identifier: GPL-3.0-or-later

// Package charstring interprets Type 2 CharString programs, the
// bytecode format CFF and CFF2 outlines use to encode per-glyph
// drawing instructions, into resolution-independent vector paths.
package charstring

import (
	"strconv"
	"strings"
)

// Op identifies the kind of a Command.
type Op uint8

const (
	MoveTo Op = iota
	LineTo
	CurveTo
	ClosePath
)

// Command is one step of a decoded glyph outline: two operands for
// MoveTo/LineTo, six (x1,y1,x2,y2,x3,y3) for CurveTo, none for
// ClosePath. All coordinates are absolute, in the font's design units.
type Command struct {
	Op   Op
	Args [6]float64
}

// Path is the result of running a CharString program: its drawing
// commands plus the glyph's advance width. Warnings records non-fatal
// conditions hit during interpretation (a recursive or over-deep
// subroutine call that was skipped); the path around them is complete.
type Path struct {
	Commands []Command
	Advance  float64
	Warnings []error
}

func (p *Path) moveTo(x, y float64) {
	var c Command
	c.Op = MoveTo
	c.Args[0], c.Args[1] = x, y
	p.Commands = append(p.Commands, c)
}

func (p *Path) lineTo(x, y float64) {
	var c Command
	c.Op = LineTo
	c.Args[0], c.Args[1] = x, y
	p.Commands = append(p.Commands, c)
}

func (p *Path) curveTo(x1, y1, x2, y2, x3, y3 float64) {
	var c Command
	c.Op = CurveTo
	c.Args = [6]float64{x1, y1, x2, y2, x3, y3}
	p.Commands = append(p.Commands, c)
}

func (p *Path) closePath() {
	p.Commands = append(p.Commands, Command{Op: ClosePath})
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// SVG renders the path as an SVG path-data string: "M x,y", "L x,y",
// "C x1,y1 x2,y2 x,y" and "Z" terms joined by single spaces.
func (p *Path) SVG() string {
	var sb strings.Builder
	for i, c := range p.Commands {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch c.Op {
		case MoveTo:
			sb.WriteString("M " + fmtCoord(c.Args[0]) + "," + fmtCoord(c.Args[1]))
		case LineTo:
			sb.WriteString("L " + fmtCoord(c.Args[0]) + "," + fmtCoord(c.Args[1]))
		case CurveTo:
			sb.WriteString("C " + fmtCoord(c.Args[0]) + "," + fmtCoord(c.Args[1]) +
				" " + fmtCoord(c.Args[2]) + "," + fmtCoord(c.Args[3]) +
				" " + fmtCoord(c.Args[4]) + "," + fmtCoord(c.Args[5]))
		case ClosePath:
			sb.WriteString("Z")
		}
	}
	return sb.String()
}
