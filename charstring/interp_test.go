// SPDX-License-Identifier: GPL-3.0-or-later

package charstring

import (
	"testing"

	"github.com/otfdecode/sfnt/font/sfntutil"
)

// b encodes a small integer operand (-107..107) as a single Type 2
// CharString byte.
func b(v int) byte { return byte(v + 139) }

func TestRunExplicitWidthMoveLineClose(t *testing.T) {
	program := []byte{
		b(5), b(10), b(20), byte(opRmoveto),
		b(30), b(40), byte(opRlineto),
		byte(opEndchar),
	}
	g := Glyph{Program: program}
	path, err := Run(g)
	if err != nil {
		t.Fatal(err)
	}
	if path.Advance != 5 {
		t.Errorf("Advance = %v, want 5", path.Advance)
	}
	want := []Command{
		{Op: MoveTo, Args: [6]float64{10, 20}},
		{Op: LineTo, Args: [6]float64{40, 60}},
		{Op: ClosePath},
	}
	if len(path.Commands) != len(want) {
		t.Fatalf("Commands = %+v, want %+v", path.Commands, want)
	}
	for i, c := range want {
		if path.Commands[i] != c {
			t.Errorf("Commands[%d] = %+v, want %+v", i, path.Commands[i], c)
		}
	}
}

func TestRunImplicitWidthHintmaskSkipsBytes(t *testing.T) {
	program := []byte{
		b(10), b(20), byte(opHstem),
		byte(opHintmask), 0x80,
		byte(opEndchar),
	}
	g := Glyph{Program: program, DefaultWidthX: 7}
	path, err := Run(g)
	if err != nil {
		t.Fatal(err)
	}
	if path.Advance != 7 {
		t.Errorf("Advance = %v, want 7 (defaultWidthX)", path.Advance)
	}
	if len(path.Commands) != 0 {
		t.Errorf("Commands = %+v, want none", path.Commands)
	}
}

func TestRunCallsubrWithBias(t *testing.T) {
	// subr 0, biased per bias(1)=107
	subr := []byte{byte(opRmoveto), byte(opReturn)}
	program := []byte{
		b(15), b(25),
		b(0 - bias(1)), byte(opCallsubr),
		byte(opEndchar),
	}
	g := Glyph{Program: program, LocalSubrs: [][]byte{subr}}
	path, err := Run(g)
	if err != nil {
		t.Fatal(err)
	}
	want := []Command{
		{Op: MoveTo, Args: [6]float64{15, 25}},
		{Op: ClosePath},
	}
	if len(path.Commands) != len(want) {
		t.Fatalf("Commands = %+v, want %+v", path.Commands, want)
	}
	for i, c := range want {
		if path.Commands[i] != c {
			t.Errorf("Commands[%d] = %+v, want %+v", i, path.Commands[i], c)
		}
	}
}

func TestRunRecursiveSubroutineSkipped(t *testing.T) {
	// subr 0 calls itself; the inner call is skipped with a warning and
	// the rest of the glyph still runs.
	subr := []byte{b(0 - bias(1)), byte(opCallsubr), byte(opReturn)}
	program := []byte{
		b(0 - bias(1)), byte(opCallsubr),
		b(10), b(20), byte(opRmoveto),
		byte(opEndchar),
	}
	g := Glyph{Program: program, LocalSubrs: [][]byte{subr}}
	path, err := Run(g)
	if err != nil {
		t.Fatal(err)
	}
	if len(path.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want exactly one", path.Warnings)
	}
	if _, ok := path.Warnings[0].(*sfntutil.RecursiveSubroutineError); !ok {
		t.Errorf("Warnings[0] = %v, want *sfntutil.RecursiveSubroutineError", path.Warnings[0])
	}
	want := []Command{
		{Op: MoveTo, Args: [6]float64{10, 20}},
		{Op: ClosePath},
	}
	if len(path.Commands) != len(want) {
		t.Fatalf("Commands = %+v, want %+v", path.Commands, want)
	}
}

func TestRunSubroutineDepthExceededSkipped(t *testing.T) {
	const n = 11
	bi := bias(n)
	subrs := make([][]byte, n)
	for i := 0; i < n-1; i++ {
		subrs[i] = []byte{b(i + 1 - bi), byte(opCallsubr), byte(opReturn)}
	}
	subrs[n-1] = []byte{byte(opReturn)}

	program := []byte{b(0 - bi), byte(opCallsubr), byte(opEndchar)}

	g := Glyph{Program: program, LocalSubrs: subrs}
	path, err := Run(g)
	if err != nil {
		t.Fatal(err)
	}
	if len(path.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want exactly one", path.Warnings)
	}
	if _, ok := path.Warnings[0].(*sfntutil.SubroutineDepthExceededError); !ok {
		t.Errorf("Warnings[0] = %v, want *sfntutil.SubroutineDepthExceededError", path.Warnings[0])
	}
}

func TestRunTerminatesOnProgramEnd(t *testing.T) {
	// CFF2 CharStrings carry no endchar; the path is finalized at the
	// end of the program.
	program := []byte{
		b(10), b(20), byte(opRmoveto),
		b(5), b(5), byte(opRlineto),
	}
	g := Glyph{Program: program, IsCFF2: true}
	path, err := Run(g)
	if err != nil {
		t.Fatal(err)
	}
	want := []Command{
		{Op: MoveTo, Args: [6]float64{10, 20}},
		{Op: LineTo, Args: [6]float64{15, 25}},
		{Op: ClosePath},
	}
	if len(path.Commands) != len(want) {
		t.Fatalf("Commands = %+v, want %+v", path.Commands, want)
	}
	for i, c := range want {
		if path.Commands[i] != c {
			t.Errorf("Commands[%d] = %+v, want %+v", i, path.Commands[i], c)
		}
	}
}

type mockRegionScalars struct{ scalars []float64 }

func (m mockRegionScalars) ScalarsAt(dataIndex int, coords []float64) []float64 {
	return m.scalars
}

func TestRunCFF2Blend(t *testing.T) {
	program := []byte{
		b(100), b(20), b(1), byte(opBlend),
		byte(opHmoveto),
		byte(opEndchar),
	}
	g := Glyph{
		Program:  program,
		IsCFF2:   true,
		VarStore: mockRegionScalars{scalars: []float64{0.5}},
	}
	path, err := Run(g)
	if err != nil {
		t.Fatal(err)
	}
	want := []Command{
		{Op: MoveTo, Args: [6]float64{110, 0}},
		{Op: ClosePath},
	}
	if len(path.Commands) != len(want) {
		t.Fatalf("Commands = %+v, want %+v", path.Commands, want)
	}
	for i, c := range want {
		if path.Commands[i] != c {
			t.Errorf("Commands[%d] = %+v, want %+v", i, path.Commands[i], c)
		}
	}
}

func TestBias(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{0, 107},
		{1239, 107},
		{1240, 1131},
		{33899, 1131},
		{33900, 32768},
	}
	for _, c := range cases {
		if got := bias(c.n); got != c.want {
			t.Errorf("bias(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}
