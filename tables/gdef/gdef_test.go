// SPDX-License-Identifier: GPL-3.0-or-later

package gdef

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/otfdecode/sfnt/reader"
)

func be16(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }

// classDefFormat1 builds a ClassDef format 1 run starting at startGlyph.
func classDefFormat1(startGlyph uint16, classes ...uint16) []byte {
	var buf []byte
	buf = append(buf, be16(1)...)
	buf = append(buf, be16(startGlyph)...)
	buf = append(buf, be16(uint16(len(classes)))...)
	for _, c := range classes {
		buf = append(buf, be16(c)...)
	}
	return buf
}

// coverageFormat1 builds a Coverage format 1 glyph list.
func coverageFormat1(glyphs ...uint16) []byte {
	var buf []byte
	buf = append(buf, be16(1)...)
	buf = append(buf, be16(uint16(len(glyphs)))...)
	for _, g := range glyphs {
		buf = append(buf, be16(g)...)
	}
	return buf
}

func TestReadGlyphClasses(t *testing.T) {
	// version 1.0, with only a glyph class definition: glyph 5 is a
	// base, glyph 6 a ligature, glyph 7 a mark.
	var buf []byte
	buf = append(buf, be16(1)...)  // majorVersion
	buf = append(buf, be16(0)...)  // minorVersion
	buf = append(buf, be16(12)...) // glyphClassDefOffset
	buf = append(buf, be16(0)...)  // attachListOffset
	buf = append(buf, be16(0)...)  // ligCaretListOffset
	buf = append(buf, be16(0)...)  // markAttachClassDefOffset
	buf = append(buf, classDefFormat1(5, GlyphClassBase, GlyphClassLigature, GlyphClassMark)...)

	tbl, err := Read(reader.New(buf))
	if err != nil {
		t.Fatal(err)
	}
	if got := tbl.GlyphClass.Class(5); got != GlyphClassBase {
		t.Errorf("Class(5) = %d, want %d", got, GlyphClassBase)
	}
	if got := tbl.GlyphClass.Class(6); got != GlyphClassLigature {
		t.Errorf("Class(6) = %d, want %d", got, GlyphClassLigature)
	}
	if !tbl.IsMark(7) {
		t.Error("IsMark(7) = false, want true")
	}
	if tbl.IsMark(8) {
		t.Error("IsMark(8) = true, want false (unlisted glyph is class 0)")
	}
}

func TestReadLigCaretList(t *testing.T) {
	// version 1.0, with only a ligature caret list: glyph 10 has two
	// format-1 carets at x=300 and x=600.
	var buf []byte
	buf = append(buf, be16(1)...)  // majorVersion
	buf = append(buf, be16(0)...)  // minorVersion
	buf = append(buf, be16(0)...)  // glyphClassDefOffset
	buf = append(buf, be16(0)...)  // attachListOffset
	buf = append(buf, be16(12)...) // ligCaretListOffset
	buf = append(buf, be16(0)...)  // markAttachClassDefOffset

	// LigCaretList at offset 12: coverage at 6, one LigGlyph at 12.
	buf = append(buf, be16(6)...)  // coverageOffset
	buf = append(buf, be16(1)...)  // ligGlyphCount
	buf = append(buf, be16(12)...) // ligGlyphOffsets[0]
	buf = append(buf, coverageFormat1(10)...)
	// LigGlyph at ligCaretList+12: two carets at 6 and 10.
	buf = append(buf, be16(2)...)   // caretCount
	buf = append(buf, be16(6)...)   // caretValueOffsets[0]
	buf = append(buf, be16(10)...)  // caretValueOffsets[1]
	buf = append(buf, be16(1)...)   // CaretValue format 1
	buf = append(buf, be16(300)...) // coordinate
	buf = append(buf, be16(1)...)
	buf = append(buf, be16(600)...)

	tbl, err := Read(reader.New(buf))
	if err != nil {
		t.Fatal(err)
	}
	want := map[uint16][]CaretValue{
		10: {
			{Format: 1, Coordinate: 300},
			{Format: 1, Coordinate: 600},
		},
	}
	if diff := cmp.Diff(want, tbl.LigCarets); diff != "" {
		t.Errorf("LigCarets mismatch (-want +got):\n%s", diff)
	}
}

func TestReadMarkGlyphSets(t *testing.T) {
	// version 1.2, with only mark glyph sets: one set covering glyphs
	// 20 and 21.
	var buf []byte
	buf = append(buf, be16(1)...)  // majorVersion
	buf = append(buf, be16(2)...)  // minorVersion
	buf = append(buf, be16(0)...)  // glyphClassDefOffset
	buf = append(buf, be16(0)...)  // attachListOffset
	buf = append(buf, be16(0)...)  // ligCaretListOffset
	buf = append(buf, be16(0)...)  // markAttachClassDefOffset
	buf = append(buf, be16(14)...) // markGlyphSetsDefOffset

	buf = append(buf, be16(1)...) // format
	buf = append(buf, be16(1)...) // markGlyphSetCount
	buf = append(buf, 0, 0, 0, 8) // coverageOffsets[0] (Offset32)
	buf = append(buf, coverageFormat1(20, 21)...)

	tbl, err := Read(reader.New(buf))
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.MarkGlyphSets) != 1 {
		t.Fatalf("MarkGlyphSets = %v, want one set", tbl.MarkGlyphSets)
	}
	if !tbl.MarkGlyphSets[0].Contains(20) || !tbl.MarkGlyphSets[0].Contains(21) {
		t.Errorf("set 0 = %v, want coverage of glyphs 20 and 21", tbl.MarkGlyphSets[0])
	}
}

func TestReadRejectsUnknownVersion(t *testing.T) {
	buf := append(be16(2), be16(0)...)
	buf = append(buf, make([]byte, 8)...)
	if _, err := Read(reader.New(buf)); err == nil {
		t.Fatal("expected an error for GDEF version 2.0")
	}
}
