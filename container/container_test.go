// SPDX-License-Identifier: GPL-3.0-or-later

package container

import (
	"testing"

	"github.com/otfdecode/sfnt/font/tag"
)

func be32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

// buildMinimalTTC assembles a TTC header with two member offsets (0x24
// and 0x34), each pointing at a minimal (table-less) TrueType font
// header.
func buildMinimalTTC() []byte {
	var buf []byte
	buf = append(buf, []byte("ttcf")...)
	buf = append(buf, 0, 1, 0, 0) // major=1, minor=0
	buf = append(buf, be32(2)...) // numFonts
	off1 := uint32(0x24)
	off2 := uint32(0x34)
	buf = append(buf, be32(off1)...)
	buf = append(buf, be32(off2)...)
	for len(buf) < int(off1) {
		buf = append(buf, 0)
	}
	buf = append(buf, be32(ScalerTrueType)...)
	buf = append(buf, 0, 0) // numTables = 0
	buf = append(buf, 0, 0, 0, 0, 0, 0)
	for len(buf) < int(off2) {
		buf = append(buf, 0)
	}
	buf = append(buf, be32(ScalerTrueType)...)
	buf = append(buf, 0, 0)
	buf = append(buf, 0, 0, 0, 0, 0, 0)
	for len(buf) < int(off2)+16 {
		buf = append(buf, 0)
	}
	return buf
}

func TestContainerDispatchTTC(t *testing.T) {
	buf := buildMinimalTTC()
	font, coll, err := Open(buf)
	if err != nil {
		t.Fatal(err)
	}
	if font != nil {
		t.Fatal("expected a Collection, not a single Font")
	}
	if coll == nil {
		t.Fatal("expected a non-nil Collection")
	}
	if len(coll.Fonts) != 2 {
		t.Fatalf("expected 2 member fonts, got %d", len(coll.Fonts))
	}
}

func TestContainerDispatchSingleFont(t *testing.T) {
	var buf []byte
	buf = append(buf, be32(ScalerTrueType)...)
	buf = append(buf, 0, 0) // numTables = 0
	buf = append(buf, 0, 0, 0, 0, 0, 0)

	font, coll, err := Open(buf)
	if err != nil {
		t.Fatal(err)
	}
	if coll != nil {
		t.Fatal("expected a single Font, not a Collection")
	}
	if font == nil {
		t.Fatal("expected a non-nil Font")
	}
	if font.ScalerType != ScalerTrueType {
		t.Errorf("expected scaler type TrueType, got 0x%08X", font.ScalerType)
	}
}

func TestContainerRejectsUnknownScalerType(t *testing.T) {
	buf := append(be32(0xDEADBEEF), 0, 0, 0, 0, 0, 0, 0, 0)
	_, _, err := Open(buf)
	if err == nil {
		t.Fatal("expected an error for an unrecognized scaler type")
	}
}

func TestChecksumMismatchIsNonFatal(t *testing.T) {
	var buf []byte
	buf = append(buf, be32(ScalerTrueType)...)
	buf = append(buf, 0, 1) // numTables = 1
	buf = append(buf, 0, 0, 0, 0, 0, 0)

	tableStart := uint32(len(buf) + 16)
	buf = append(buf, []byte("test")...)
	buf = append(buf, be32(0xFFFFFFFF)...) // deliberately wrong checksum
	buf = append(buf, be32(tableStart)...)
	buf = append(buf, be32(4)...)
	buf = append(buf, []byte("DATA")...)

	font, _, err := Open(buf)
	if err != nil {
		t.Fatal(err)
	}
	tbl, ok := font.Tables[tag.Make("test")]
	if !ok {
		t.Fatal("expected the \"test\" table to be present despite the bad checksum")
	}
	if tbl.Meta.ChecksumValid {
		t.Error("expected ChecksumValid to be false")
	}
	if len(font.Diagnostics) == 0 {
		t.Error("expected a checksum-mismatch diagnostic to be recorded")
	}
}

