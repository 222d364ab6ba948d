// SPDX-License-Identifier: GPL-3.0-or-later

// Package vorg decodes the sfnt "VORG" table: per-glyph vertical
// origins for CFF-outline fonts, overriding a shared default.
package vorg

import (
	"golang.org/x/exp/slices"

	"github.com/otfdecode/sfnt/container"
	"github.com/otfdecode/sfnt/font/tag"
	"github.com/otfdecode/sfnt/reader"
)

// Metric is one glyph's explicit vertical origin override.
type Metric struct {
	GlyphIndex  uint16
	VertOriginY int16
}

// Info is the decoded content of the "VORG" table.
type Info struct {
	MajorVersion, MinorVersion uint16
	DefaultVertOriginY         int16
	Metrics                    []Metric // sorted by GlyphIndex
}

func init() {
	container.Register(tag.Make("VORG"), func(r *reader.R, entry container.Meta, f *container.Font) (interface{}, error) {
		return Read(r)
	})
}

// Read decodes a "VORG" table from r.
func Read(r *reader.R) (*Info, error) {
	info := &Info{}
	var err error
	if info.MajorVersion, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if info.MinorVersion, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if info.DefaultVertOriginY, err = r.ReadFWORD(); err != nil {
		return nil, err
	}
	n, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	info.Metrics = make([]Metric, n)
	for i := range info.Metrics {
		gid, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		y, err := r.ReadFWORD()
		if err != nil {
			return nil, err
		}
		info.Metrics[i] = Metric{GlyphIndex: gid, VertOriginY: y}
	}
	return info, nil
}

// VertOriginY returns the vertical origin Y for gid, falling back to
// the table's default when gid has no explicit override.
func (info *Info) VertOriginY(gid uint16) int16 {
	idx, found := slices.BinarySearchFunc(info.Metrics, gid, func(m Metric, target uint16) int {
		return int(m.GlyphIndex) - int(target)
	})
	if !found {
		return info.DefaultVertOriginY
	}
	return info.Metrics[idx].VertOriginY
}
