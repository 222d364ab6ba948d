// SPDX-License-Identifier: GPL-3.0-or-later

package maxp

import (
	"testing"

	"github.com/otfdecode/sfnt/reader"
)

func be16(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }
func be32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func TestReadShortForm(t *testing.T) {
	var buf []byte
	buf = append(buf, be32(0x00005000)...)
	buf = append(buf, be16(42)...)

	info, err := Read(reader.New(buf))
	if err != nil {
		t.Fatal(err)
	}
	if info.NumGlyphs != 42 {
		t.Errorf("NumGlyphs = %d, want 42", info.NumGlyphs)
	}
	if info.MaxPoints != 0 {
		t.Error("short form must not populate TrueType-only fields")
	}
}

func TestReadFullForm(t *testing.T) {
	var buf []byte
	buf = append(buf, be32(0x00010000)...)
	buf = append(buf, be16(100)...) // numGlyphs
	for i := 0; i < 13; i++ {
		buf = append(buf, be16(uint16(i+1))...)
	}

	info, err := Read(reader.New(buf))
	if err != nil {
		t.Fatal(err)
	}
	if info.NumGlyphs != 100 {
		t.Errorf("NumGlyphs = %d, want 100", info.NumGlyphs)
	}
	if info.MaxPoints != 1 || info.MaxComponentDepth != 13 {
		t.Errorf("unexpected TrueType fields: %+v", info)
	}
}

func TestReadUnsupportedVersion(t *testing.T) {
	var buf []byte
	buf = append(buf, be32(0x00020000)...)
	buf = append(buf, be16(1)...)
	if _, err := Read(reader.New(buf)); err == nil {
		t.Fatal("expected an error for an unrecognized maxp version")
	}
}
