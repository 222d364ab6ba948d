// SPDX-License-Identifier: GPL-3.0-or-later

package cff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadCharsetFormat0(t *testing.T) {
	// format 0: 16-bit SIDs for glyphs 1, 2 (glyph 0 is implicit .notdef)
	buf := []byte{0, 0, 5, 0, 7}
	cs, err := readCharset(buf, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := Charset{0, 5, 7}
	if diff := cmp.Diff(want, cs); diff != "" {
		t.Errorf("charset mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCharsetFormat1(t *testing.T) {
	// format 1: one range, first=5, nLeft=2 -> SIDs 5,6,7
	buf := []byte{1, 0, 5, 2}
	cs, err := readCharset(buf, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := Charset{0, 5, 6, 7}
	if diff := cmp.Diff(want, cs); diff != "" {
		t.Errorf("charset mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCharsetFormat2(t *testing.T) {
	// format 2: one range, first=100, nLeft=2 (16-bit) -> SIDs 100,101,102
	buf := []byte{2, 0, 100, 0, 2}
	cs, err := readCharset(buf, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := Charset{0, 100, 101, 102}
	if diff := cmp.Diff(want, cs); diff != "" {
		t.Errorf("charset mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCharsetUnsupportedFormat(t *testing.T) {
	if _, err := readCharset([]byte{9}, 1); err == nil {
		t.Fatal("expected an error for an unrecognized charset format")
	}
}

func TestPredefinedISOAdobeCharset(t *testing.T) {
	cs := predefinedCharset(PredefinedISOAdobe, 4)
	if len(cs) != 4 || cs[0] != 0 {
		t.Fatalf("unexpected predefined charset: %v", cs)
	}
	name := isoAdobeCharsetNames[1]
	if sid, ok := standardSIDByName[name]; !ok || cs[1] != sid {
		t.Errorf("cs[1] = %d, want SID of %q (%d)", cs[1], name, sid)
	}
}
