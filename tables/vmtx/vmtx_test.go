// SPDX-License-Identifier: GPL-3.0-or-later

package vmtx

import (
	"testing"

	"github.com/otfdecode/sfnt/reader"
)

func be16(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }
func be16s(v int16) []byte { return be16(uint16(v)) }

func TestReadMixedRun(t *testing.T) {
	var buf []byte
	buf = append(buf, be16(1000)...)               // glyph 0 height
	buf = append(buf, be16s(50)...)  // glyph 0 tsb
	buf = append(buf, be16(900)...)                // glyph 1 height
	buf = append(buf, be16s(-10)...) // glyph 1 tsb
	buf = append(buf, be16s(5)...)   // glyph 2 trailing tsb only

	info, err := Read(reader.New(buf), 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if info.AdvanceHeight(0) != 1000 || info.AdvanceHeight(1) != 900 {
		t.Fatalf("unexpected heights: %+v", info.VMetrics)
	}
	if info.AdvanceHeight(2) != 900 {
		t.Errorf("AdvanceHeight(2) = %d, want 900 (clamped to last long metric)", info.AdvanceHeight(2))
	}
	if info.TSB(2) != 5 {
		t.Errorf("TSB(2) = %d, want 5", info.TSB(2))
	}
}

func TestReadToleratesTruncation(t *testing.T) {
	buf := be16(1000) // only half of one LongVerMetric
	info, err := Read(reader.New(buf), 5, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(info.VMetrics) != 0 {
		t.Errorf("expected no complete metrics from a truncated table, got %d", len(info.VMetrics))
	}
}
