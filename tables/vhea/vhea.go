// SPDX-License-Identifier: GPL-3.0-or-later

// Package vhea decodes the sfnt "vhea" table: the vertical-writing
// counterpart of "hhea", consumed by "vmtx" for fonts with vertical
// metrics (typically CJK).
package vhea

import (
	"github.com/otfdecode/sfnt/container"
	"github.com/otfdecode/sfnt/font/tag"
	"github.com/otfdecode/sfnt/reader"
)

// Info is the decoded content of the "vhea" table.
type Info struct {
	Version              reader.Version16Dot16
	VertTypoAscender     int16
	VertTypoDescender    int16
	VertTypoLineGap      int16
	AdvanceHeightMax     int16
	MinTopSideBearing    int16
	MinBottomSideBearing int16
	YMaxExtent           int16
	CaretSlopeRise       int16
	CaretSlopeRun        int16
	CaretOffset          int16
	MetricDataFormat     int16
	NumOfLongVerMetrics  uint16
}

func init() {
	container.Register(tag.Make("vhea"), func(r *reader.R, entry container.Meta, f *container.Font) (interface{}, error) {
		return Read(r)
	})
}

// Read decodes a "vhea" table from r.
func Read(r *reader.R) (*Info, error) {
	info := &Info{}
	var err error
	if info.Version, err = r.ReadVersion16Dot16(); err != nil {
		return nil, err
	}
	if info.VertTypoAscender, err = r.ReadInt16(); err != nil {
		return nil, err
	}
	if info.VertTypoDescender, err = r.ReadInt16(); err != nil {
		return nil, err
	}
	if info.VertTypoLineGap, err = r.ReadInt16(); err != nil {
		return nil, err
	}
	if info.AdvanceHeightMax, err = r.ReadInt16(); err != nil {
		return nil, err
	}
	if info.MinTopSideBearing, err = r.ReadInt16(); err != nil {
		return nil, err
	}
	if info.MinBottomSideBearing, err = r.ReadInt16(); err != nil {
		return nil, err
	}
	if info.YMaxExtent, err = r.ReadInt16(); err != nil {
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
	if info.NumOfLongVerMetrics, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	return info, nil
}
