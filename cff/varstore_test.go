// SPDX-License-Identifier: GPL-3.0-or-later

package cff

import "testing"

func f2dot14(v float64) []byte {
	x := int16(v * 16384)
	return []byte{byte(x >> 8), byte(x)}
}

func TestReadVariationStoreOneAxisOneRegion(t *testing.T) {
	var buf []byte
	buf = append(buf, 0, 1) // axisCount=1
	buf = append(buf, 0, 1) // regionCount=1
	buf = append(buf, f2dot14(-1)...)
	buf = append(buf, f2dot14(0)...)
	buf = append(buf, f2dot14(1)...)
	buf = append(buf, 0, 1)   // dataCount=1
	buf = append(buf, 0, 1)   // itemCount=1
	buf = append(buf, 0, 1)   // shortDeltaCount=1
	buf = append(buf, 0, 1)   // regionIndexCount=1
	buf = append(buf, 0, 0)   // regionIndices=[0]
	buf = append(buf, 0, 100) // deltas[0][0] = 100 (int16)

	vs, err := readVariationStore(buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(vs.Regions) != 1 || len(vs.Data) != 1 {
		t.Fatalf("unexpected store: %+v", vs)
	}
	if vs.Data[0].DeltaSets[0][0] != 100 {
		t.Errorf("delta = %d, want 100", vs.Data[0].DeltaSets[0][0])
	}
}

func TestRegionScalarAtPeak(t *testing.T) {
	r := VariationRegion{Start: []float64{-1}, Peak: []float64{1}, End: []float64{1}}
	if got := regionScalar(r, []float64{1}); got != 1 {
		t.Errorf("scalar at peak = %v, want 1", got)
	}
}

func TestRegionScalarOutsideRange(t *testing.T) {
	r := VariationRegion{Start: []float64{0}, Peak: []float64{1}, End: []float64{1}}
	if got := regionScalar(r, []float64{-1}); got != 0 {
		t.Errorf("scalar outside [start,end] = %v, want 0", got)
	}
}

func TestScalarsAtOutOfRange(t *testing.T) {
	vs := &VariationStore{}
	if got := vs.ScalarsAt(5, nil); got != nil {
		t.Errorf("ScalarsAt with bad index = %v, want nil", got)
	}
}
