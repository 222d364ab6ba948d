// SPDX-License-Identifier: GPL-3.0-or-later

package cmap

import (
	"reflect"
	"testing"

	"github.com/otfdecode/sfnt/reader"
)

func be16b(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }
func be32b(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func TestReadFormat0Subtable(t *testing.T) {
	var sub []byte
	sub = append(sub, be16b(0)...) // format
	sub = append(sub, be16b(262)...)
	sub = append(sub, be16b(0)...) // language
	glyphs := make([]byte, 256)
	glyphs['A'] = 5
	sub = append(sub, glyphs...)

	var buf []byte
	buf = append(buf, be16b(0)...)  // version
	buf = append(buf, be16b(1)...)  // numTables
	buf = append(buf, be16b(1)...)  // platformID
	buf = append(buf, be16b(0)...)  // encodingID
	buf = append(buf, be32b(12)...) // offset
	buf = append(buf, sub...)

	info, err := Read(reader.New(buf))
	if err != nil {
		t.Fatal(err)
	}
	s, ok := info.Subtables[Key{1, 0}]
	if !ok {
		t.Fatal("expected subtable (1,0)")
	}
	if got := s.Lookup('A'); got != 5 {
		t.Errorf("Lookup('A') = %d, want 5", got)
	}
}

func TestReadFormat4Subtable(t *testing.T) {
	// a single segment [65,66] -> delta mapping, plus the required
	// terminal 0xFFFF segment.
	segCount := 2
	var words []byte
	// endCode
	words = append(words, be16b(66)...)
	words = append(words, be16b(0xFFFF)...)
	words = append(words, be16b(0)...) // reservedPad
	// startCode
	words = append(words, be16b(65)...)
	words = append(words, be16b(0xFFFF)...)
	// idDelta
	words = append(words, be16b(10)...) // glyph(code) = code + 10
	words = append(words, be16b(1)...)
	// idRangeOffset
	words = append(words, be16b(0)...)
	words = append(words, be16b(0)...)

	var sub []byte
	sub = append(sub, be16b(4)...)                     // format
	sub = append(sub, be16b(uint16(14+len(words)))...) // length
	sub = append(sub, be16b(0)...)                     // language
	sub = append(sub, be16b(uint16(segCount*2))...)    // segCountX2
	sub = append(sub, be16b(0)...)                     // searchRange
	sub = append(sub, be16b(0)...)                     // entrySelector
	sub = append(sub, be16b(0)...)                     // rangeShift
	sub = append(sub, words...)

	var buf []byte
	buf = append(buf, be16b(0)...)
	buf = append(buf, be16b(1)...)
	buf = append(buf, be16b(3)...)
	buf = append(buf, be16b(1)...)
	buf = append(buf, be32b(12)...)
	buf = append(buf, sub...)

	info, err := Read(reader.New(buf))
	if err != nil {
		t.Fatal(err)
	}
	s, ok := info.Subtables[Key{3, 1}]
	if !ok {
		t.Fatal("expected subtable (3,1)")
	}
	if got := s.Lookup(65); got != 65+10 {
		t.Errorf("Lookup(65) = %d, want %d", got, 65+10)
	}
	if got := s.Lookup(67); got != 0 {
		t.Errorf("Lookup(67) = %d, want 0 (unmapped)", got)
	}
}

func TestReadFormat12Subtable(t *testing.T) {
	var sub []byte
	sub = append(sub, be16b(12)...)
	sub = append(sub, be16b(0)...)       // reserved
	sub = append(sub, be32b(16+12)...)   // length
	sub = append(sub, be32b(0)...)       // language
	sub = append(sub, be32b(1)...)       // numGroups
	sub = append(sub, be32b(0x1F600)...) // startCharCode
	sub = append(sub, be32b(0x1F600)...) // endCharCode
	sub = append(sub, be32b(500)...)     // startGlyphID

	var buf []byte
	buf = append(buf, be16b(0)...)
	buf = append(buf, be16b(1)...)
	buf = append(buf, be16b(3)...)
	buf = append(buf, be16b(10)...)
	buf = append(buf, be32b(12)...)
	buf = append(buf, sub...)

	info, err := Read(reader.New(buf))
	if err != nil {
		t.Fatal(err)
	}
	s, ok := info.Subtables[Key{3, 10}]
	if !ok {
		t.Fatal("expected subtable (3,10)")
	}
	if got := s.Lookup(0x1F600); got != 500 {
		t.Errorf("Lookup(U+1F600) = %d, want 500", got)
	}
	best, ok := info.Best()
	if !ok || !reflect.DeepEqual(best, s) {
		t.Error("Best() should prefer the (3,10) full-Unicode subtable")
	}
}

func TestReadFormat6Subtable(t *testing.T) {
	var sub []byte
	sub = append(sub, be16b(6)...)    // format
	sub = append(sub, be16b(14)...)   // length
	sub = append(sub, be16b(0)...)    // language
	sub = append(sub, be16b(0x30)...) // firstCode
	sub = append(sub, be16b(2)...)    // entryCount
	sub = append(sub, be16b(100)...)
	sub = append(sub, be16b(101)...)

	var buf []byte
	buf = append(buf, be16b(0)...)
	buf = append(buf, be16b(1)...)
	buf = append(buf, be16b(1)...)
	buf = append(buf, be16b(0)...)
	buf = append(buf, be32b(12)...)
	buf = append(buf, sub...)

	info, err := Read(reader.New(buf))
	if err != nil {
		t.Fatal(err)
	}
	s, ok := info.Subtables[Key{1, 0}]
	if !ok {
		t.Fatal("expected subtable (1,0)")
	}
	if got := s.Lookup(0x30); got != 100 {
		t.Errorf("Lookup(0x30) = %d, want 100", got)
	}
	if got := s.Lookup(0x31); got != 101 {
		t.Errorf("Lookup(0x31) = %d, want 101", got)
	}
	if got := s.Lookup(0x32); got != 0 {
		t.Errorf("Lookup(0x32) = %d, want 0 (past entryCount)", got)
	}
	if got := s.Lookup(0x2F); got != 0 {
		t.Errorf("Lookup(0x2F) = %d, want 0 (before firstCode)", got)
	}
}

func TestReadFormat2Subtable(t *testing.T) {
	// subHeader 0 handles single-byte codes; subHeader 1 handles the
	// 0x81 high byte with lowByte range [0x40, 0x41].
	var sub []byte
	sub = append(sub, be16b(2)...) // format
	sub = append(sub, be16b(0)...) // length (unchecked)
	sub = append(sub, be16b(0)...) // language
	keys := make([]byte, 512)
	keys[2*0x81] = 0
	keys[2*0x81+1] = 8 // subHeaderKeys[0x81] = 8 -> subHeader 1
	sub = append(sub, keys...)
	// subHeader 0: firstCode=0, entryCount=0 (no single-byte mappings)
	sub = append(sub, be16b(0)...)
	sub = append(sub, be16b(0)...)
	sub = append(sub, be16b(0)...)
	sub = append(sub, be16b(0)...)
	// subHeader 1: firstCode=0x40, entryCount=2, idDelta=0,
	// idRangeOffset from its own field (at 6+512+8+6) to the glyph
	// array right after the subHeaders (at 6+512+16): 2 bytes.
	sub = append(sub, be16b(0x40)...)
	sub = append(sub, be16b(2)...)
	sub = append(sub, be16b(0)...)
	sub = append(sub, be16b(2)...)
	// glyph array
	sub = append(sub, be16b(70)...)
	sub = append(sub, be16b(71)...)

	var buf []byte
	buf = append(buf, be16b(0)...)
	buf = append(buf, be16b(1)...)
	buf = append(buf, be16b(3)...)
	buf = append(buf, be16b(2)...)
	buf = append(buf, be32b(12)...)
	buf = append(buf, sub...)

	info, err := Read(reader.New(buf))
	if err != nil {
		t.Fatal(err)
	}
	s, ok := info.Subtables[Key{3, 2}]
	if !ok {
		t.Fatal("expected subtable (3,2)")
	}
	if got := s.Lookup(0x8140); got != 70 {
		t.Errorf("Lookup(0x8140) = %d, want 70", got)
	}
	if got := s.Lookup(0x8141); got != 71 {
		t.Errorf("Lookup(0x8141) = %d, want 71", got)
	}
	if got := s.Lookup(0x8142); got != 0 {
		t.Errorf("Lookup(0x8142) = %d, want 0 (past entryCount)", got)
	}
	if got := s.Lookup(0x9140); got != 0 {
		t.Errorf("Lookup(0x9140) = %d, want 0 (unkeyed high byte)", got)
	}
}

func TestReadFormat13Subtable(t *testing.T) {
	// one group mapping the whole BMP private use area to glyph 1.
	var sub []byte
	sub = append(sub, be16b(13)...)
	sub = append(sub, be16b(0)...)      // reserved
	sub = append(sub, be32b(16+12)...)  // length
	sub = append(sub, be32b(0)...)      // language
	sub = append(sub, be32b(1)...)      // numGroups
	sub = append(sub, be32b(0xE000)...) // startCharCode
	sub = append(sub, be32b(0xF8FF)...) // endCharCode
	sub = append(sub, be32b(1)...)      // glyphID

	var buf []byte
	buf = append(buf, be16b(0)...)
	buf = append(buf, be16b(1)...)
	buf = append(buf, be16b(0)...)
	buf = append(buf, be16b(6)...)
	buf = append(buf, be32b(12)...)
	buf = append(buf, sub...)

	info, err := Read(reader.New(buf))
	if err != nil {
		t.Fatal(err)
	}
	s, ok := info.Subtables[Key{0, 6}]
	if !ok {
		t.Fatal("expected subtable (0,6)")
	}
	if got := s.Lookup(0xE000); got != 1 {
		t.Errorf("Lookup(U+E000) = %d, want 1", got)
	}
	if got := s.Lookup(0xF000); got != 1 {
		t.Errorf("Lookup(U+F000) = %d, want 1 (constant glyph)", got)
	}
	if got := s.Lookup(0xF900); got != 0 {
		t.Errorf("Lookup(U+F900) = %d, want 0", got)
	}
}

func TestReadFormat14VariationSequences(t *testing.T) {
	// one variation selector (U+FE00) with a single non-default
	// mapping: U+4E08 + U+FE00 -> glyph 99.
	var sub []byte
	sub = append(sub, be16b(14)...)     // format
	sub = append(sub, be32b(0)...)      // length (unchecked)
	sub = append(sub, be32b(1)...)      // numVarSelectorRecords
	sub = append(sub, 0x00, 0xFE, 0x00) // varSelector (uint24)
	sub = append(sub, be32b(0)...)      // defaultUVSOffset
	sub = append(sub, be32b(21)...)     // nonDefaultUVSOffset
	// non-default UVS table at offset 21
	sub = append(sub, be32b(1)...)      // numUVSMappings
	sub = append(sub, 0x00, 0x4E, 0x08) // unicodeValue (uint24)
	sub = append(sub, be16b(99)...)     // glyphID

	var buf []byte
	buf = append(buf, be16b(0)...)
	buf = append(buf, be16b(1)...)
	buf = append(buf, be16b(0)...)
	buf = append(buf, be16b(5)...)
	buf = append(buf, be32b(12)...)
	buf = append(buf, sub...)

	info, err := Read(reader.New(buf))
	if err != nil {
		t.Fatal(err)
	}
	if info.VariationSequences == nil {
		t.Fatal("expected a format 14 VariationSequences subtable")
	}
	gid, useDefault, found := info.VariationSequences.Lookup(0x4E08, 0xFE00)
	if !found || useDefault || gid != 99 {
		t.Errorf("Lookup(U+4E08, U+FE00) = (%d, %v, %v), want (99, false, true)", gid, useDefault, found)
	}
	_, _, found = info.VariationSequences.Lookup(0x4E09, 0xFE00)
	if found {
		t.Error("Lookup(U+4E09, U+FE00) should miss")
	}
}

func TestGlyphIDFallsBackAcrossSubtables(t *testing.T) {
	// A preferred (3,1) subtable that misses and a (1,0) byte table
	// that hits: GlyphID must fall through to the hit.
	var mac []byte
	mac = append(mac, be16b(0)...)
	mac = append(mac, be16b(262)...)
	mac = append(mac, be16b(0)...)
	glyphs := make([]byte, 256)
	glyphs['Z'] = 7
	mac = append(mac, glyphs...)

	var win []byte
	win = append(win, be16b(6)...)  // format 6, empty range far away
	win = append(win, be16b(10)...) // length
	win = append(win, be16b(0)...)  // language
	win = append(win, be16b(0x5000)...)
	win = append(win, be16b(0)...) // entryCount = 0

	var buf []byte
	buf = append(buf, be16b(0)...)
	buf = append(buf, be16b(2)...)
	buf = append(buf, be16b(3)...) // (3,1) record first
	buf = append(buf, be16b(1)...)
	buf = append(buf, be32b(20)...)
	buf = append(buf, be16b(1)...) // (1,0) record
	buf = append(buf, be16b(0)...)
	buf = append(buf, be32b(uint32(20+len(win)))...)
	buf = append(buf, win...)
	buf = append(buf, mac...)

	info, err := Read(reader.New(buf))
	if err != nil {
		t.Fatal(err)
	}
	if got := info.GlyphID('Z'); got != 7 {
		t.Errorf("GlyphID('Z') = %d, want 7 via the Macintosh fallback", got)
	}
	if got := info.GlyphID('Q'); got != 0 {
		t.Errorf("GlyphID('Q') = %d, want 0 (all subtables miss)", got)
	}
}
