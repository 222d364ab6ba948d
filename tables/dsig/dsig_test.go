// SPDX-License-Identifier: GPL-3.0-or-later

package dsig

import (
	"testing"

	"github.com/otfdecode/sfnt/reader"
)

func be16(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }
func be32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func TestRead(t *testing.T) {
	payload := []byte("pkcs7-placeholder")
	sigRecord := append(make([]byte, 12), payload...) // 12-byte header + payload

	var buf []byte
	buf = append(buf, be32(1)...) // version
	buf = append(buf, be16(1)...) // numSignatures
	buf = append(buf, be16(0)...) // flags

	buf = append(buf, be32(1)...)                      // format
	buf = append(buf, be32(uint32(len(sigRecord)))...) // length
	sigAbsOffset := uint32(len(buf) + 4)               // offset field itself is 4 bytes; signature starts right after
	buf = append(buf, be32(sigAbsOffset)...)
	buf = append(buf, sigRecord...)

	info, err := Read(reader.New(buf))
	if err != nil {
		t.Fatal(err)
	}
	if len(info.Signatures) != 1 {
		t.Fatalf("expected 1 signature, got %d", len(info.Signatures))
	}
	if string(info.Signatures[0].Payload) != string(payload) {
		t.Errorf("Payload = %q, want %q", info.Signatures[0].Payload, payload)
	}
}
