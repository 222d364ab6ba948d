// SPDX-License-Identifier: GPL-3.0-or-later

// Package hhea decodes the sfnt "hhea" table: fixed-layout horizontal
// metrics shared across all glyphs, plus the count of long horizontal
// metrics consumed by the "hmtx" table.
package hhea

import (
	"github.com/otfdecode/sfnt/container"
	"github.com/otfdecode/sfnt/font/tag"
	"github.com/otfdecode/sfnt/reader"
)

// Info is the decoded content of the "hhea" table.
type Info struct {
	Ascent              int16
	Descent             int16
	LineGap             int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	MetricDataFormat    int16
	NumOfLongHorMetrics uint16
}

func init() {
	container.Register(tag.Make("hhea"), func(r *reader.R, entry container.Meta, f *container.Font) (interface{}, error) {
		return Read(r)
	})
}

// Read decodes an "hhea" table from r.
func Read(r *reader.R) (*Info, error) {
	if err := r.Skip(4); err != nil { // version
		return nil, err
	}
	info := &Info{}
	var err error
	if info.Ascent, err = r.ReadFWORD(); err != nil {
		return nil, err
	}
	if info.Descent, err = r.ReadFWORD(); err != nil {
		return nil, err
	}
	if info.LineGap, err = r.ReadFWORD(); err != nil {
		return nil, err
	}
	if info.AdvanceWidthMax, err = r.ReadUFWORD(); err != nil {
		return nil, err
	}
	if info.MinLeftSideBearing, err = r.ReadFWORD(); err != nil {
		return nil, err
	}
	if info.MinRightSideBearing, err = r.ReadFWORD(); err != nil {
		return nil, err
	}
	if info.XMaxExtent, err = r.ReadFWORD(); err != nil {
		return nil, err
	}
	if info.CaretSlopeRise, err = r.ReadInt16(); err != nil {
		return nil, err
	}
	if info.CaretSlopeRun, err = r.ReadInt16(); err != nil {
		return nil, err
	}
	if info.CaretOffset, err = r.ReadInt16(); err != nil {
		return nil, err
	}
	if err := r.Skip(8); err != nil { // 4 reserved int16 fields
		return nil, err
	}
	if info.MetricDataFormat, err = r.ReadInt16(); err != nil {
		return nil, err
	}
	if info.NumOfLongHorMetrics, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	return info, nil
}
