// SPDX-License-Identifier: GPL-3.0-or-later

package reader

import (
	"errors"
	"testing"
)

func TestBasicReads(t *testing.T) {
	buf := []byte("1234AB\xFF\xFF")
	r := NewWindow(buf, 0, 2)

	x, err := r.ReadUint16()
	if err != nil {
		t.Fatal(err)
	}
	if x != '1'*256+'2' {
		t.Errorf("wrong value, expected %d but got %d", '1'*256+'2', x)
	}

	_, err = r.ReadUint16()
	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("EOF not detected, got err=%s", err)
	}
}

func TestSeekBounds(t *testing.T) {
	buf := []byte("1234AB\xFF\xFF")
	r := NewWindow(buf, 4, 8)

	if err := r.Seek(2); err != nil {
		t.Fatal(err)
	}
	if err := r.Seek(10); !errors.Is(err, ErrSeekOutOfBounds) {
		t.Errorf("expected ErrSeekOutOfBounds, got %v", err)
	}
}

func TestSaveRestore(t *testing.T) {
	r := New([]byte{1, 2, 3, 4, 5, 6})
	r.Save()
	_, _ = r.ReadUint16()
	r.Save()
	_, _ = r.ReadUint16()
	if r.Pos() != 4 {
		t.Fatalf("expected pos 4, got %d", r.Pos())
	}
	if err := r.Restore(); err != nil {
		t.Fatal(err)
	}
	if r.Pos() != 2 {
		t.Fatalf("expected pos 2 after first restore, got %d", r.Pos())
	}
	if err := r.Restore(); err != nil {
		t.Fatal(err)
	}
	if r.Pos() != 0 {
		t.Fatalf("expected pos 0 after second restore, got %d", r.Pos())
	}
	if err := r.Restore(); !errors.Is(err, ErrEmptyStack) {
		t.Errorf("expected ErrEmptyStack, got %v", err)
	}
}

func TestSubReaderIndependence(t *testing.T) {
	r := New([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	_, _ = r.ReadUint16() // parent at pos 2

	child, err := r.SubReader(4)
	if err != nil {
		t.Fatal(err)
	}
	if r.Pos() != 6 {
		t.Fatalf("parent should have advanced past the sub-reader, got pos %d", r.Pos())
	}

	_, _ = child.ReadUint32()
	if r.Pos() != 6 {
		t.Fatalf("child movement must not affect parent, parent pos now %d", r.Pos())
	}
}

func TestReadTagEndianInvariant(t *testing.T) {
	r := New([]byte("true"))
	tag, err := r.ReadTag()
	if err != nil {
		t.Fatal(err)
	}
	if tag != "true" {
		t.Errorf("expected %q, got %q", "true", tag)
	}
}

func TestReadLongDateTime(t *testing.T) {
	// 1904-01-01 00:00 UTC itself encodes as 0, which must map to the
	// negative Unix-epoch offset exactly.
	r := New([]byte{0, 0, 0, 0, 0, 0, 0, 0})
	v, err := r.ReadLongDateTime()
	if err != nil {
		t.Fatal(err)
	}
	if v != -macEpochToUnixOffset {
		t.Errorf("expected %d, got %d", -macEpochToUnixOffset, v)
	}
}

func TestReadVersion16Dot16(t *testing.T) {
	cases := []struct {
		raw  uint32
		want Version16Dot16
	}{
		{0x00010000, Version16Dot16{Major: 1, Minor: 0}},
		{0x00005000, Version16Dot16{Major: 0, Minor: 5}},
	}
	for _, c := range cases {
		r := New([]byte{byte(c.raw >> 24), byte(c.raw >> 16), byte(c.raw >> 8), byte(c.raw)})
		got, err := r.ReadVersion16Dot16()
		if err != nil {
			t.Fatal(err)
		}
		if got != c.want {
			t.Errorf("raw %#x: expected %+v, got %+v", c.raw, c.want, got)
		}
	}
}

func TestReadFWORDRoundTrip(t *testing.T) {
	for _, v := range []int16{0, 1, -1, 32767, -32768, 1000} {
		r := New([]byte{byte(uint16(v) >> 8), byte(uint16(v))})
		got, err := r.ReadFWORD()
		if err != nil {
			t.Fatal(err)
		}
		if got != v {
			t.Errorf("expected %d, got %d", v, got)
		}
	}
}

func TestSetLittleEndian(t *testing.T) {
	r := New([]byte{0x34, 0x12, 0x78, 0x56, 0x34, 0x12})
	r.SetLittleEndian(true)
	if v, err := r.ReadUint16(); err != nil || v != 0x1234 {
		t.Errorf("ReadUint16 = %#x, %v; want 0x1234", v, err)
	}
	if v, err := r.ReadUint32(); err != nil || v != 0x12345678 {
		t.Errorf("ReadUint32 = %#x, %v; want 0x12345678", v, err)
	}
	r.SetLittleEndian(false)
	if err := r.Seek(0); err != nil {
		t.Fatal(err)
	}
	if v, err := r.ReadUint16(); err != nil || v != 0x3412 {
		t.Errorf("big-endian ReadUint16 = %#x, %v; want 0x3412", v, err)
	}
}
