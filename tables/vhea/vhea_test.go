// SPDX-License-Identifier: GPL-3.0-or-later

package vhea

import (
	"testing"

	"github.com/otfdecode/sfnt/reader"
)

func be16(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }
func be16s(v int16) []byte { return be16(uint16(v)) }
func be32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func TestRead(t *testing.T) {
	var buf []byte
	buf = append(buf, be32(0x00011000)...)          // version
	buf = append(buf, be16s(950)...)  // vertTypoAscender
	buf = append(buf, be16s(-250)...) // vertTypoDescender
	buf = append(buf, be16(0)...)                   // vertTypoLineGap
	buf = append(buf, be16(1000)...)                // advanceHeightMax
	buf = append(buf, be16(0)...)                   // minTopSideBearing
	buf = append(buf, be16(0)...)                   // minBottomSideBearing
	buf = append(buf, be16(0)...)                   // yMaxExtent
	buf = append(buf, be16(1)...)                   // caretSlopeRise
	buf = append(buf, be16(0)...)                   // caretSlopeRun
	buf = append(buf, be16(0)...)                   // caretOffset
	buf = append(buf, make([]byte, 8)...)           // 4 reserved int16
	buf = append(buf, be16(0)...)                   // metricDataFormat
	buf = append(buf, be16(12)...)                  // numOfLongVerMetrics

	info, err := Read(reader.New(buf))
	if err != nil {
		t.Fatal(err)
	}
	if info.VertTypoAscender != 950 {
		t.Errorf("VertTypoAscender = %d, want 950", info.VertTypoAscender)
	}
	if info.NumOfLongVerMetrics != 12 {
		t.Errorf("NumOfLongVerMetrics = %d, want 12", info.NumOfLongVerMetrics)
	}
}
