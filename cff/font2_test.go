// SPDX-License-Identifier: GPL-3.0-or-later

package cff

import "testing"

// font2Bytes is a minimal hand-built CFF2 table: a two-entry CharStrings
// INDEX, a single-entry FDArray (so FDSelect is absent), and a Private
// DICT with a non-zero defaultWidthX. Generated to exercise Read2's
// offset resolution across the Top DICT/Global Subrs/CharStrings/FDArray
// chain without needing a real variable font.
var font2Bytes = []byte{
	2, 0, 8, 0, 13, 0, 0, 0,
	29, 0, 0, 0, 25, 17,
	29, 0, 0, 0, 39, 12, 36,
	0, 0, 0, 0,
	0, 0, 0, 2, 1, 1, 4, 7, 139, 139, 14, 139, 139, 14,
	0, 0, 0, 1, 1, 1, 12, 29, 0, 0, 0, 2, 29, 0, 0, 0, 57, 18, 142, 20,
}

func TestReadCFF2(t *testing.T) {
	f, err := Read2(font2Bytes)
	if err != nil {
		t.Fatal(err)
	}
	if f.NumGlyphs() != 2 {
		t.Fatalf("NumGlyphs = %d, want 2", f.NumGlyphs())
	}
	if len(f.FDArray) != 1 {
		t.Fatalf("FDArray has %d entries, want 1", len(f.FDArray))
	}
	if f.FDSelect != nil {
		t.Error("FDSelect should be nil for a single-FD font")
	}
	if f.FDArray[0].DefaultWidthX != 3 {
		t.Errorf("DefaultWidthX = %v, want 3", f.FDArray[0].DefaultWidthX)
	}
	if f.VarStore != nil {
		t.Error("font has no vstore operator, VarStore should be nil")
	}
}

func TestCFF2PrivateForSingleFD(t *testing.T) {
	f, err := Read2(font2Bytes)
	if err != nil {
		t.Fatal(err)
	}
	if priv := f.privateFor(0); priv != f.FDArray[0] {
		t.Error("privateFor should return the sole FDArray entry when FDSelect is absent")
	}
	if priv := f.privateFor(1); priv != f.FDArray[0] {
		t.Error("privateFor should return the sole FDArray entry for any glyph")
	}
}

func TestCFF2GlyphPath(t *testing.T) {
	f, err := Read2(font2Bytes)
	if err != nil {
		t.Fatal(err)
	}
	path, err := f.GlyphPath(1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if path.Advance != 3 {
		t.Errorf("Advance = %v, want 3 (defaultWidthX)", path.Advance)
	}
}

func TestReadCFF2RejectsMajorVersion1(t *testing.T) {
	buf := []byte{1, 0, 4, 0, 0, 0, 0, 0}
	if _, err := Read2(buf); err == nil {
		t.Fatal("expected an error for a major version other than 2")
	}
}
