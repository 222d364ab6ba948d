// SPDX-License-Identifier: GPL-3.0-or-later

package cff

import "testing"

func TestReadDictIntegers(t *testing.T) {
	// 139 -> 0 (single-byte), then operator 15 (charset)
	buf := []byte{139, 15}
	d, err := readDict(buf)
	if err != nil {
		t.Fatal(err)
	}
	v, ok := d.Int(opCharset)
	if !ok || v != 0 {
		t.Errorf("Int(opCharset) = %d, %v; want 0, true", v, ok)
	}
}

func TestReadDictShortOperand(t *testing.T) {
	// 247 250 -> (247-247)*256+250+108 = 358
	buf := []byte{247, 250, 17}
	d, err := readDict(buf)
	if err != nil {
		t.Fatal(err)
	}
	v, _ := d.Int(opCharStrings)
	if v != 358 {
		t.Errorf("got %d, want 358", v)
	}
}

func TestReadDictNegativeShortOperand(t *testing.T) {
	// 251 250 -> -((251-251)*256+250+108) = -358
	buf := []byte{251, 250, 17}
	d, err := readDict(buf)
	if err != nil {
		t.Fatal(err)
	}
	v, _ := d.Int(opCharStrings)
	if v != -358 {
		t.Errorf("got %d, want -358", v)
	}
}

func TestReadDictInt16Operand(t *testing.T) {
	buf := []byte{28, 0xff, 0x38, 20} // -200, opDefaultWidthX
	d, err := readDict(buf)
	if err != nil {
		t.Fatal(err)
	}
	v, _ := d.Int(opDefaultWidthX)
	if v != -200 {
		t.Errorf("got %d, want -200", v)
	}
}

func TestReadDictEscapeOperator(t *testing.T) {
	buf := []byte{139, 139, 139, 139, 139, 139, 12, 7} // six zeros, FontMatrix
	d, err := readDict(buf)
	if err != nil {
		t.Fatal(err)
	}
	v, ok := d[opFontMatrix]
	if !ok || len(v) != 6 {
		t.Fatalf("opFontMatrix = %v, %v; want 6 operands", v, ok)
	}
}

func TestReadDictVstoreOperator(t *testing.T) {
	// CFF2 Top DICT "vstore" operator is single-byte 24, previously
	// misclassified as a reserved byte.
	buf := []byte{247, 0, 24} // operand 139? no: 247,0 -> (247-247)*256+0+108=108
	d, err := readDict(buf)
	if err != nil {
		t.Fatal(err)
	}
	v, ok := d.Int(opVariationStore)
	if !ok || v != 108 {
		t.Errorf("opVariationStore = %d, %v; want 108, true", v, ok)
	}
}

func TestReadDictReal(t *testing.T) {
	// 30 (real) then nibbles for "-2.5" = e 2 a 5 f, then operator 4 (Weight)
	buf := []byte{30, 0xe2, 0xa5, 0xff, 4}
	d, err := readDict(buf)
	if err != nil {
		t.Fatal(err)
	}
	v, ok := d[opWeight]
	if !ok || len(v) != 1 || v[0] != -2.5 {
		t.Errorf("got %v, want [-2.5]", v)
	}
}

func TestReadDictReservedByteRejected(t *testing.T) {
	if _, err := readDict([]byte{25}); err == nil {
		t.Fatal("expected an error for reserved DICT byte 25")
	}
}
