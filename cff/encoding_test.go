// SPDX-License-Identifier: GPL-3.0-or-later

package cff

import "testing"

func TestReadEncodingFormat0(t *testing.T) {
	// format 0, 2 codes: 'A' (65) -> gid 1, 'B' (66) -> gid 2
	buf := []byte{0, 2, 65, 66}
	enc, err := readEncoding(buf, 3)
	if err != nil {
		t.Fatal(err)
	}
	if enc[65] != 1 || enc[66] != 2 {
		t.Errorf("enc[65]=%d enc[66]=%d, want 1, 2", enc[65], enc[66])
	}
}

func TestReadEncodingFormat1(t *testing.T) {
	// format 1, one range: first=65, nLeft=2 -> codes 65,66,67 -> gids 1,2,3
	buf := []byte{1, 1, 65, 2}
	enc, err := readEncoding(buf, 4)
	if err != nil {
		t.Fatal(err)
	}
	if enc[65] != 1 || enc[66] != 2 || enc[67] != 3 {
		t.Errorf("unexpected encoding: %v %v %v", enc[65], enc[66], enc[67])
	}
}

func TestReadEncodingSupplementIsSkipped(t *testing.T) {
	// format 0 with the supplement bit set, one code then one supplement pair
	buf := []byte{0x80, 1, 65, 1, 66, 0, 10}
	enc, err := readEncoding(buf, 2)
	if err != nil {
		t.Fatal(err)
	}
	if enc[65] != 1 {
		t.Errorf("enc[65] = %d, want 1", enc[65])
	}
}

func TestReadEncodingUnsupportedFormat(t *testing.T) {
	if _, err := readEncoding([]byte{9}, 1); err == nil {
		t.Fatal("expected an error for an unrecognized encoding format")
	}
}

func TestPredefinedEncodingNamesStandard(t *testing.T) {
	names := predefinedEncodingNames(PredefinedStandardEncoding)
	if names['A'] != "A" {
		t.Errorf("names['A'] = %q, want A", names['A'])
	}
	if names[161] != "exclamdown" {
		t.Errorf("names[161] = %q, want exclamdown", names[161])
	}
}
