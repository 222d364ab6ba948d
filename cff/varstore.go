// SPDX-License-Identifier: GPL-3.0-or-later

package cff

import "github.com/otfdecode/sfnt/reader"

// VariationRegion is one row of a CFF2 Variation Store's region list:
// per-axis (start, peak, end) tent-function coordinates in F2DOT14.
type VariationRegion struct {
	Start, Peak, End []float64 // one triple's worth of values per axis, flattened as Start[axis] etc.
}

// ItemVariationData is one deltas block of a CFF2 Variation Store: the
// subset of regions it applies to (RegionIndices) and, per item, one
// delta value per region in that subset.
type ItemVariationData struct {
	RegionIndices []uint16
	DeltaSets     [][]int32 // DeltaSets[item][region-in-subset]
}

// VariationStore is a decoded CFF2 Item Variation Store: the font's
// design-variation axis regions plus the per-item delta tables that
// the CharString VM's "blend" operator interpolates against.
type VariationStore struct {
	AxisCount int
	Regions   []VariationRegion
	Data      []ItemVariationData
}

// readVariationStore decodes a CFF2 Variation Store from buf:
// axisCount, regionCount, the region list, then a list of Item
// Variation Data blocks.
func readVariationStore(buf []byte) (*VariationStore, error) {
	r := reader.New(buf)
	axisCount, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	regionCount, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}

	regions := make([]VariationRegion, regionCount)
	for i := range regions {
		reg := VariationRegion{
			Start: make([]float64, axisCount),
			Peak:  make([]float64, axisCount),
			End:   make([]float64, axisCount),
		}
		for a := 0; a < int(axisCount); a++ {
			start, err := r.ReadF2Dot14()
			if err != nil {
				return nil, err
			}
			peak, err := r.ReadF2Dot14()
			if err != nil {
				return nil, err
			}
			end, err := r.ReadF2Dot14()
			if err != nil {
				return nil, err
			}
			reg.Start[a], reg.Peak[a], reg.End[a] = start, peak, end
		}
		regions[i] = reg
	}

	store := &VariationStore{AxisCount: int(axisCount), Regions: regions}

	dataCount, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	store.Data = make([]ItemVariationData, dataCount)
	for i := range store.Data {
		itemCount, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		shortDeltaCount, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		regionIndexCount, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		regionIndices, err := r.ReadUint16Array(int(regionIndexCount))
		if err != nil {
			return nil, err
		}

		deltaSets := make([][]int32, itemCount)
		for item := range deltaSets {
			deltas := make([]int32, regionIndexCount)
			for reg := 0; reg < int(regionIndexCount); reg++ {
				if reg < int(shortDeltaCount) {
					v, err := r.ReadInt16()
					if err != nil {
						return nil, err
					}
					deltas[reg] = int32(v)
				} else {
					v, err := r.ReadInt32()
					if err != nil {
						return nil, err
					}
					deltas[reg] = v
				}
			}
			deltaSets[item] = deltas
		}

		store.Data[i] = ItemVariationData{RegionIndices: regionIndices, DeltaSets: deltaSets}
	}

	return store, nil
}

// ScalarsAt returns, for Item Variation Data block dataIdx, the blend
// scalar for each of its regions evaluated at the given normalized axis
// coordinates (one value per axis in [-1, 1]). This is the tent-function
// interpolation the CharString "blend" operator needs.
func (s *VariationStore) ScalarsAt(dataIdx int, coords []float64) []float64 {
	if dataIdx < 0 || dataIdx >= len(s.Data) {
		return nil
	}
	d := s.Data[dataIdx]
	out := make([]float64, len(d.RegionIndices))
	for i, ri := range d.RegionIndices {
		if int(ri) >= len(s.Regions) {
			out[i] = 1
			continue
		}
		out[i] = regionScalar(s.Regions[ri], coords)
	}
	return out
}

func regionScalar(r VariationRegion, coords []float64) float64 {
	scalar := 1.0
	for a := range r.Peak {
		peak := r.Peak[a]
		if peak == 0 {
			continue
		}
		var v float64
		if a < len(coords) {
			v = coords[a]
		}
		start, end := r.Start[a], r.End[a]
		var factor float64
		switch {
		case v == peak:
			factor = 1
		case v <= start || v >= end:
			factor = 0
		case v < peak:
			factor = (v - start) / (peak - start)
		default:
			factor = (end - v) / (end - peak)
		}
		scalar *= factor
	}
	return scalar
}
