// SPDX-License-Identifier: GPL-3.0-or-later

package cff

import "testing"

// fontBytes is a minimal hand-built CFF1 table: two glyphs (.notdef
// plus one real glyph), a custom charset/encoding, and a Private DICT
// that only sets defaultWidthX to 0. Generated to exercise Read's offset resolution across Name/Top
// DICT/charset/encoding/CharStrings/Private without needing a real font
// file.
var fontBytes = []byte{
	1, 0, 4, 4, 0, 1, 1, 1, 9, 84, 101, 115, 116, 70, 111, 110, 116, 0, 1,
	1, 1, 30, 29, 0, 0, 0, 55, 15, 29, 0, 0, 0, 58, 16, 29, 0, 0, 0, 60,
	17, 29, 0, 0, 0, 2, 29, 0, 0, 0, 72, 18, 0, 0, 0, 0, 0, 0, 5, 0, 0, 0,
	2, 1, 1, 4, 7, 139, 139, 14, 139, 139, 14, 139, 20,
}

func TestReadCFF1(t *testing.T) {
	f, err := Read(fontBytes)
	if err != nil {
		t.Fatal(err)
	}
	if f.Name != "TestFont" {
		t.Errorf("Name = %q, want TestFont", f.Name)
	}
	if f.IsCID {
		t.Error("font has no ROS operator, must not be CID")
	}
	if f.NumGlyphs() != 2 {
		t.Fatalf("NumGlyphs = %d, want 2", f.NumGlyphs())
	}
	if len(f.Charset) != 2 || f.Charset[0] != 0 || f.Charset[1] != 5 {
		t.Errorf("Charset = %v, want [0 5]", f.Charset)
	}
	if f.Private == nil {
		t.Fatal("expected a decoded Private DICT")
	}
	if f.Private.DefaultWidthX != 0 {
		t.Errorf("DefaultWidthX = %v, want 0", f.Private.DefaultWidthX)
	}
}

func TestGlyphNameLookup(t *testing.T) {
	f, err := Read(fontBytes)
	if err != nil {
		t.Fatal(err)
	}
	name, ok := f.GlyphName(1)
	if !ok || name != standardStrings[5] {
		t.Errorf("GlyphName(1) = %q, %v; want %q, true", name, ok, standardStrings[5])
	}
}

func TestGlyphPath(t *testing.T) {
	f, err := Read(fontBytes)
	if err != nil {
		t.Fatal(err)
	}
	path, err := f.GlyphPath(1)
	if err != nil {
		t.Fatal(err)
	}
	if path.Advance != 0 {
		t.Errorf("Advance = %v, want 0 (defaultWidthX)", path.Advance)
	}
}
