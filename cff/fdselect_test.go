// SPDX-License-Identifier: GPL-3.0-or-later

package cff

import "testing"

func TestReadFDSelectFormat0(t *testing.T) {
	buf := []byte{0, 0, 1, 2}
	sel, err := readFDSelect(buf, 3)
	if err != nil {
		t.Fatal(err)
	}
	if sel.Get(0) != 0 || sel.Get(1) != 1 || sel.Get(2) != 2 {
		t.Errorf("unexpected FDSelect: %v", sel)
	}
}

func TestReadFDSelectFormat3(t *testing.T) {
	// two ranges: [0,2)->fd0, [2,4)->fd1, sentinel at 4
	buf := []byte{3, 0, 2, 0, 0, 0, 0, 2, 1, 0, 4}
	sel, err := readFDSelect(buf, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint16{0, 0, 1, 1}
	for i, w := range want {
		if sel.Get(i) != w {
			t.Errorf("sel.Get(%d) = %d, want %d", i, sel.Get(i), w)
		}
	}
}

func TestReadFDSelectFormat4(t *testing.T) {
	// one range: [0,3) -> fd 1, sentinel at 3
	buf := []byte{4,
		0, 0, 0, 1,       // nRanges=1
		0, 0, 0, 0, 0, 1, // first=0, fd=1
		0, 0, 0, 3,       // sentinel
	}
	sel, err := readFDSelect(buf, 3)
	if err != nil {
		t.Fatal(err)
	}
	if sel.Get(0) != 1 || sel.Get(1) != 1 || sel.Get(2) != 1 {
		t.Errorf("unexpected FDSelect: %v", sel)
	}
}

func TestFDSelectGetOutOfRange(t *testing.T) {
	var sel FDSelect
	if sel.Get(-1) != 0 || sel.Get(5) != 0 {
		t.Error("Get should return 0 for out-of-range glyph indices")
	}
}

func TestReadFDSelectUnsupportedFormat(t *testing.T) {
	if _, err := readFDSelect([]byte{9}, 1); err == nil {
		t.Fatal("expected an error for an unrecognized FDSelect format")
	}
}
