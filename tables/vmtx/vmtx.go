// SPDX-License-Identifier: GPL-3.0-or-later

// Package vmtx decodes the sfnt "vmtx" table: per-glyph advance heights
// and top side bearings for vertical text layout, the vertical
// counterpart of "hmtx".
package vmtx

import (
	"github.com/otfdecode/sfnt/container"
	"github.com/otfdecode/sfnt/font/sfntutil"
	"github.com/otfdecode/sfnt/font/tag"
	"github.com/otfdecode/sfnt/reader"
	"github.com/otfdecode/sfnt/tables/maxp"
	"github.com/otfdecode/sfnt/tables/vhea"
)

// LongVerMetric is one entry of the leading, explicit-height run of the
// "vmtx" table.
type LongVerMetric struct {
	AdvanceHeight  uint16
	TopSideBearing int16
}

// Info is the decoded content of the "vmtx" table.
type Info struct {
	VMetrics       []LongVerMetric
	TopSideBearing []int16
}

// AdvanceHeight returns the advance height of gid, in font design units.
func (info *Info) AdvanceHeight(gid int) uint16 {
	if len(info.VMetrics) == 0 {
		return 0
	}
	if gid >= len(info.VMetrics) {
		gid = len(info.VMetrics) - 1
	}
	return info.VMetrics[gid].AdvanceHeight
}

// TSB returns the top side bearing of gid, in font design units.
func (info *Info) TSB(gid int) int16 {
	if gid < len(info.VMetrics) {
		return info.VMetrics[gid].TopSideBearing
	}
	gid -= len(info.VMetrics)
	if gid < len(info.TopSideBearing) {
		return info.TopSideBearing[gid]
	}
	return 0
}

func init() {
	container.Register(tag.Make("vmtx"), func(r *reader.R, entry container.Meta, f *container.Font) (interface{}, error) {
		vheaTable, ok := f.Find(tag.Make("vhea"))
		if !ok {
			return nil, &sfntutil.MissingDependencyError{Table: "vmtx", Depends: "vhea"}
		}
		maxpTable, ok := f.Find(tag.Make("maxp"))
		if !ok {
			return nil, &sfntutil.MissingDependencyError{Table: "vmtx", Depends: "maxp"}
		}
		v := vheaTable.(*vhea.Info)
		m := maxpTable.(*maxp.Info)
		return Read(r, int(v.NumOfLongVerMetrics), int(m.NumGlyphs))
	})
}

// Read decodes a "vmtx" table from r, mirroring hmtx.Read's tolerant
// truncation contract.
func Read(r *reader.R, numOfLongVerMetrics, numGlyphs int) (*Info, error) {
	info := &Info{}
	for i := 0; i < numOfLongVerMetrics; i++ {
		height, err := r.ReadUint16()
		if err != nil {
			break
		}
		tsb, err := r.ReadFWORD()
		if err != nil {
			break
		}
		info.VMetrics = append(info.VMetrics, LongVerMetric{AdvanceHeight: height, TopSideBearing: tsb})
	}

	remaining := numGlyphs - len(info.VMetrics)
	for i := 0; i < remaining; i++ {
		tsb, err := r.ReadFWORD()
		if err != nil {
			break
		}
		info.TopSideBearing = append(info.TopSideBearing, tsb)
	}
	return info, nil
}
