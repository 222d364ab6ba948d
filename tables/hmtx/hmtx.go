// SPDX-License-Identifier: GPL-3.0-or-later

// Package hmtx decodes the sfnt "hmtx" table: per-glyph advance widths
// and left side bearings for horizontal text layout.
package hmtx

import (
	"github.com/otfdecode/sfnt/container"
	"github.com/otfdecode/sfnt/font/sfntutil"
	"github.com/otfdecode/sfnt/font/tag"
	"github.com/otfdecode/sfnt/reader"
	"github.com/otfdecode/sfnt/tables/hhea"
	"github.com/otfdecode/sfnt/tables/maxp"
)

// LongHorMetric is one entry of the leading, explicit-width run of the
// "hmtx" table.
type LongHorMetric struct {
	AdvanceWidth    uint16
	LeftSideBearing int16
}

// Info is the decoded content of the "hmtx" table.
type Info struct {
	HMetrics        []LongHorMetric
	LeftSideBearing []int16 // trailing glyphs that share the last advance width
}

// AdvanceWidth returns the advance width of gid, in font design units.
// Glyphs beyond the explicit run share the final entry's width.
func (info *Info) AdvanceWidth(gid int) uint16 {
	if len(info.HMetrics) == 0 {
		return 0
	}
	if gid >= len(info.HMetrics) {
		gid = len(info.HMetrics) - 1
	}
	return info.HMetrics[gid].AdvanceWidth
}

// LSB returns the left side bearing of gid, in font design units.
func (info *Info) LSB(gid int) int16 {
	if gid < len(info.HMetrics) {
		return info.HMetrics[gid].LeftSideBearing
	}
	gid -= len(info.HMetrics)
	if gid < len(info.LeftSideBearing) {
		return info.LeftSideBearing[gid]
	}
	return 0
}

func init() {
	container.Register(tag.Make("hmtx"), func(r *reader.R, entry container.Meta, f *container.Font) (interface{}, error) {
		hheaTable, ok := f.Find(tag.Make("hhea"))
		if !ok {
			return nil, &sfntutil.MissingDependencyError{Table: "hmtx", Depends: "hhea"}
		}
		maxpTable, ok := f.Find(tag.Make("maxp"))
		if !ok {
			return nil, &sfntutil.MissingDependencyError{Table: "hmtx", Depends: "maxp"}
		}
		h := hheaTable.(*hhea.Info)
		m := maxpTable.(*maxp.Info)
		return Read(r, int(h.NumOfLongHorMetrics), int(m.NumGlyphs))
	})
}

// Read decodes an "hmtx" table from r. numOfLongHorMetrics and numGlyphs
// come from "hhea" and "maxp" respectively. A length mismatch between
// these counts and the table's actual extent is tolerated: the read
// stops early rather than failing, per the tolerant-truncation contract
// for this table.
func Read(r *reader.R, numOfLongHorMetrics, numGlyphs int) (*Info, error) {
	info := &Info{}
	for i := 0; i < numOfLongHorMetrics; i++ {
		width, err := r.ReadUint16()
		if err != nil {
			break
		}
		lsb, err := r.ReadFWORD()
		if err != nil {
			break
		}
		info.HMetrics = append(info.HMetrics, LongHorMetric{AdvanceWidth: width, LeftSideBearing: lsb})
	}

	remaining := numGlyphs - len(info.HMetrics)
	for i := 0; i < remaining; i++ {
		lsb, err := r.ReadFWORD()
		if err != nil {
			break
		}
		info.LeftSideBearing = append(info.LeftSideBearing, lsb)
	}
	return info, nil
}
