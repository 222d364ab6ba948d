// SPDX-License-Identifier: GPL-3.0-or-later

package cff

import "testing"

func TestReadPrivateWidthDefaults(t *testing.T) {
	// defaultWidthX=500 (op 20), nominalWidthX=0 is the default for an
	// absent operator
	buf := []byte{
		28, 0x01, 0xf4, 20, // 500, opDefaultWidthX
	}
	p, err := readPrivate(buf, buf, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if p.DefaultWidthX != 500 {
		t.Errorf("DefaultWidthX = %v, want 500", p.DefaultWidthX)
	}
	if p.NominalWidthX != 0 {
		t.Errorf("NominalWidthX = %v, want 0", p.NominalWidthX)
	}
	if p.LocalSubrs != nil {
		t.Error("no Subrs operator present, LocalSubrs should be nil")
	}
}

func TestReadPrivateWithLocalSubrs(t *testing.T) {
	// Private DICT at file offset 10, with Subrs pointing 2 bytes past
	// its own start (relative offset), to a one-entry INDEX.
	privateDict := []byte{139 + 2, 19} // operand 2, opSubrs
	idx := []byte{0, 1, 1, 1, 2, 0xAB} // count=1, offSize=1, offsets 1,2, data 0xAB

	file := make([]byte, 10)
	file = append(file, privateDict...)
	file = append(file, idx...)

	p, err := readPrivate(privateDict, file, 10, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.LocalSubrs) != 1 || len(p.LocalSubrs[0]) != 1 || p.LocalSubrs[0][0] != 0xAB {
		t.Errorf("unexpected LocalSubrs: %v", p.LocalSubrs)
	}
}
