// SPDX-License-Identifier: GPL-3.0-or-later

// Package base decodes the sfnt "BASE" table: baseline-tag lists and
// per-script baseline coordinates used to align text across scripts
// with different natural baselines.
package base

import (
	"github.com/otfdecode/sfnt/container"
	"github.com/otfdecode/sfnt/font/sfntutil"
	"github.com/otfdecode/sfnt/font/tag"
	"github.com/otfdecode/sfnt/reader"
)

// BaseCoord is a single baseline coordinate, in one of three formats.
type BaseCoord struct {
	Format         uint16
	Coordinate     int16
	ReferenceGlyph uint16 // format 2 only
	BasePoint      uint16 // format 2 only
	DeviceOffset   uint16 // format 3 only: Offset16 to a Device table, unresolved
}

// BaseValues gives, for one script, the baseline coordinate of each
// tag in the axis's BaseTagList.
type BaseValues struct {
	DefaultBaselineIndex uint16
	Coords               []BaseCoord // parallel to the axis's BaseTagList
}

// FeatureMinMax overrides MinMax for a specific layout feature.
type FeatureMinMax struct {
	FeatureTag tag.Tag
	Min, Max   *BaseCoord
}

// MinMax gives the extreme (min/max) extent values for one script,
// optionally overridden per feature (version 1.1).
type MinMax struct {
	Min, Max         *BaseCoord
	FeatureOverrides []FeatureMinMax
}

// ScriptRecord is one script's baseline data within an axis.
type ScriptRecord struct {
	ScriptTag     tag.Tag
	BaseValues    *BaseValues
	DefaultMinMax *MinMax
	LangSysMinMax map[tag.Tag]*MinMax
}

// Axis is one of the two (horizontal/vertical) axis tables.
type Axis struct {
	BaselineTags []tag.Tag
	Scripts      []ScriptRecord
}

// Info is the decoded content of the "BASE" table.
type Info struct {
	MajorVersion, MinorVersion uint16
	HorizAxis, VertAxis        *Axis
}

func init() {
	container.Register(tag.Make("BASE"), func(r *reader.R, entry container.Meta, f *container.Font) (interface{}, error) {
		return Read(r)
	})
}

// Read decodes a "BASE" table from r.
func Read(r *reader.R) (*Info, error) {
	info := &Info{}
	var err error
	if info.MajorVersion, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if info.MinorVersion, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if info.MajorVersion != 1 || (info.MinorVersion != 0 && info.MinorVersion != 1) {
		return nil, &sfntutil.UnsupportedFormatError{Where: "BASE", Format: int(info.MajorVersion)}
	}

	horizAxisOffset, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	vertAxisOffset, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	if info.MinorVersion == 1 {
		if _, err := r.ReadOffset32(); err != nil { // itemVarStoreOffset: unresolved, variable-font only
			return nil, err
		}
	}

	if horizAxisOffset != 0 {
		if info.HorizAxis, err = readAxis(r, int(horizAxisOffset)); err != nil {
			return nil, err
		}
	}
	if vertAxisOffset != 0 {
		if info.VertAxis, err = readAxis(r, int(vertAxisOffset)); err != nil {
			return nil, err
		}
	}
	return info, nil
}

func readAxis(r *reader.R, offset int) (*Axis, error) {
	ar, err := r.SubWindow(offset, r.Len()-offset)
	if err != nil {
		return nil, err
	}
	baseTagListOffset, err := ar.ReadOffset16()
	if err != nil {
		return nil, err
	}
	baseScriptListOffset, err := ar.ReadOffset16()
	if err != nil {
		return nil, err
	}

	axis := &Axis{}
	if baseTagListOffset != 0 {
		tl, err := ar.SubWindow(int(baseTagListOffset), ar.Len()-int(baseTagListOffset))
		if err != nil {
			return nil, err
		}
		n, err := tl.ReadUint16()
		if err != nil {
			return nil, err
		}
		axis.BaselineTags = make([]tag.Tag, n)
		for i := range axis.BaselineTags {
			s, err := tl.ReadTag()
			if err != nil {
				return nil, err
			}
			axis.BaselineTags[i] = tag.Make(s)
		}
	}

	if baseScriptListOffset != 0 {
		sl, err := ar.SubWindow(int(baseScriptListOffset), ar.Len()-int(baseScriptListOffset))
		if err != nil {
			return nil, err
		}
		n, err := sl.ReadUint16()
		if err != nil {
			return nil, err
		}
		type scriptEntry struct {
			tag    tag.Tag
			offset uint16
		}
		entries := make([]scriptEntry, n)
		for i := range entries {
			s, err := sl.ReadTag()
			if err != nil {
				return nil, err
			}
			off, err := sl.ReadOffset16()
			if err != nil {
				return nil, err
			}
			entries[i] = scriptEntry{tag.Make(s), off}
		}
		for _, e := range entries {
			if e.offset == 0 {
				continue
			}
			rec, err := readBaseScript(sl, int(e.offset))
			if err != nil {
				return nil, err
			}
			rec.ScriptTag = e.tag
			axis.Scripts = append(axis.Scripts, *rec)
		}
	}
	return axis, nil
}

func readBaseScript(r *reader.R, offset int) (*ScriptRecord, error) {
	br, err := r.SubWindow(offset, r.Len()-offset)
	if err != nil {
		return nil, err
	}
	baseValuesOffset, err := br.ReadOffset16()
	if err != nil {
		return nil, err
	}
	defaultMinMaxOffset, err := br.ReadOffset16()
	if err != nil {
		return nil, err
	}
	baseLangSysCount, err := br.ReadUint16()
	if err != nil {
		return nil, err
	}
	type langSysEntry struct {
		tag    tag.Tag
		offset uint16
	}
	langSysEntries := make([]langSysEntry, baseLangSysCount)
	for i := range langSysEntries {
		s, err := br.ReadTag()
		if err != nil {
			return nil, err
		}
		off, err := br.ReadOffset16()
		if err != nil {
			return nil, err
		}
		langSysEntries[i] = langSysEntry{tag.Make(s), off}
	}

	rec := &ScriptRecord{}
	if baseValuesOffset != 0 {
		if rec.BaseValues, err = readBaseValues(br, int(baseValuesOffset)); err != nil {
			return nil, err
		}
	}
	if defaultMinMaxOffset != 0 {
		if rec.DefaultMinMax, err = readMinMax(br, int(defaultMinMaxOffset)); err != nil {
			return nil, err
		}
	}
	if baseLangSysCount > 0 {
		rec.LangSysMinMax = make(map[tag.Tag]*MinMax, baseLangSysCount)
		for _, e := range langSysEntries {
			if e.offset == 0 {
				continue
			}
			mm, err := readMinMax(br, int(e.offset))
			if err != nil {
				return nil, err
			}
			rec.LangSysMinMax[e.tag] = mm
		}
	}
	return rec, nil
}

func readBaseValues(r *reader.R, offset int) (*BaseValues, error) {
	vr, err := r.SubWindow(offset, r.Len()-offset)
	if err != nil {
		return nil, err
	}
	bv := &BaseValues{}
	if bv.DefaultBaselineIndex, err = vr.ReadUint16(); err != nil {
		return nil, err
	}
	n, err := vr.ReadUint16()
	if err != nil {
		return nil, err
	}
	offsets := make([]uint16, n)
	for i := range offsets {
		if offsets[i], err = vr.ReadOffset16(); err != nil {
			return nil, err
		}
	}
	bv.Coords = make([]BaseCoord, n)
	for i, off := range offsets {
		if off == 0 {
			continue
		}
		c, err := readBaseCoord(vr, int(off))
		if err != nil {
			return nil, err
		}
		bv.Coords[i] = *c
	}
	return bv, nil
}

func readBaseCoord(r *reader.R, offset int) (*BaseCoord, error) {
	cr, err := r.SubWindow(offset, r.Len()-offset)
	if err != nil {
		return nil, err
	}
	c := &BaseCoord{}
	if c.Format, err = cr.ReadUint16(); err != nil {
		return nil, err
	}
	if c.Coordinate, err = cr.ReadFWORD(); err != nil {
		return nil, err
	}
	switch c.Format {
	case 1:
	case 2:
		if c.ReferenceGlyph, err = cr.ReadUint16(); err != nil {
			return nil, err
		}
		if c.BasePoint, err = cr.ReadUint16(); err != nil {
			return nil, err
		}
	case 3:
		if c.DeviceOffset, err = cr.ReadOffset16(); err != nil {
			return nil, err
		}
	default:
		return nil, &sfntutil.UnsupportedFormatError{Where: "BaseCoord", Format: int(c.Format)}
	}
	return c, nil
}

func readMinMax(r *reader.R, offset int) (*MinMax, error) {
	mr, err := r.SubWindow(offset, r.Len()-offset)
	if err != nil {
		return nil, err
	}
	minOffset, err := mr.ReadOffset16()
	if err != nil {
		return nil, err
	}
	maxOffset, err := mr.ReadOffset16()
	if err != nil {
		return nil, err
	}
	featCount, err := mr.ReadUint16()
	if err != nil {
		return nil, err
	}

	mm := &MinMax{}
	if minOffset != 0 {
		if mm.Min, err = readBaseCoord(mr, int(minOffset)); err != nil {
			return nil, err
		}
	}
	if maxOffset != 0 {
		if mm.Max, err = readBaseCoord(mr, int(maxOffset)); err != nil {
			return nil, err
		}
	}
	for i := uint16(0); i < featCount; i++ {
		featTag, err := mr.ReadTag()
		if err != nil {
			return nil, err
		}
		featMinOffset, err := mr.ReadOffset16()
		if err != nil {
			return nil, err
		}
		featMaxOffset, err := mr.ReadOffset16()
		if err != nil {
			return nil, err
		}
		fmm := FeatureMinMax{FeatureTag: tag.Make(featTag)}
		if featMinOffset != 0 {
			if fmm.Min, err = readBaseCoord(mr, int(featMinOffset)); err != nil {
				return nil, err
			}
		}
		if featMaxOffset != 0 {
			if fmm.Max, err = readBaseCoord(mr, int(featMaxOffset)); err != nil {
				return nil, err
			}
		}
		mm.FeatureOverrides = append(mm.FeatureOverrides, fmm)
	}
	return mm, nil
}
