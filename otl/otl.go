// SPDX-License-Identifier: GPL-3.0-or-later

// Package otl implements the structures shared by the GSUB and GPOS
// table decoders: Coverage, ClassDef, Device, ValueRecord, Anchor,
// MarkArray, and the Script/Feature/Lookup list scaffolding common to
// both table families.
package otl

import (
	"golang.org/x/exp/slices"

	"github.com/otfdecode/sfnt/font/sfntutil"
	"github.com/otfdecode/sfnt/reader"
)

// Coverage is the flattened form of an OpenType Coverage table: the
// glyph ID at index i is the glyph whose coverage index is i. The
// sequence is always strictly increasing.
type Coverage []uint16

// Index returns the coverage index of gid, or -1 if gid is not covered.
func (c Coverage) Index(gid uint16) int {
	i, found := slices.BinarySearchFunc(c, gid, func(a, b uint16) int { return int(a) - int(b) })
	if !found {
		return -1
	}
	return i
}

// Contains reports whether gid is covered.
func (c Coverage) Contains(gid uint16) bool { return c.Index(gid) >= 0 }

// ReadCoverage decodes a Coverage table at the cursor's current
// position (format 1: explicit glyph list; format 2: sorted ranges).
func ReadCoverage(r *reader.R) (Coverage, error) {
	format, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	switch format {
	case 1:
		count, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		cov := make(Coverage, count)
		for i := range cov {
			g, err := r.ReadUint16()
			if err != nil {
				return nil, err
			}
			cov[i] = g
		}
		return cov, nil
	case 2:
		rangeCount, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		var cov Coverage
		for i := 0; i < int(rangeCount); i++ {
			start, err := r.ReadUint16()
			if err != nil {
				return nil, err
			}
			end, err := r.ReadUint16()
			if err != nil {
				return nil, err
			}
			startCoverageIndex, err := r.ReadUint16()
			if err != nil {
				return nil, err
			}
			if int(end) < int(start) {
				return nil, &sfntutil.OffsetOutOfRangeError{Table: "Coverage", Offset: int(end), Extent: int(start)}
			}
			for g := int(start); g <= int(end); g++ {
				cov = append(cov, uint16(g))
			}
			_ = startCoverageIndex // indices are implied by position, consistent with a well-formed table
		}
		return cov, nil
	default:
		return nil, &sfntutil.UnsupportedFormatError{Where: "Coverage", Format: int(format)}
	}
}

// ClassDef maps glyph IDs to class values. Glyphs absent from the map
// implicitly belong to class 0.
type ClassDef map[uint16]uint16

// Class returns the class of gid (0 if unlisted).
func (c ClassDef) Class(gid uint16) uint16 { return c[gid] }

// ReadClassDef decodes a ClassDef table (format 1: a run of class
// values starting at startGlyph; format 2: sorted glyph ranges).
func ReadClassDef(r *reader.R) (ClassDef, error) {
	format, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	cd := ClassDef{}
	switch format {
	case 1:
		startGlyph, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		glyphCount, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		for i := 0; i < int(glyphCount); i++ {
			v, err := r.ReadUint16()
			if err != nil {
				return nil, err
			}
			if v != 0 {
				cd[startGlyph+uint16(i)] = v
			}
		}
		return cd, nil
	case 2:
		rangeCount, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		for i := 0; i < int(rangeCount); i++ {
			start, err := r.ReadUint16()
			if err != nil {
				return nil, err
			}
			end, err := r.ReadUint16()
			if err != nil {
				return nil, err
			}
			class, err := r.ReadUint16()
			if err != nil {
				return nil, err
			}
			if class == 0 {
				continue
			}
			for g := int(start); g <= int(end); g++ {
				cd[uint16(g)] = class
			}
		}
		return cd, nil
	default:
		return nil, &sfntutil.UnsupportedFormatError{Where: "ClassDef", Format: int(format)}
	}
}

// Device is a per-point-size hinting adjustment table (formats 1-3,
// packed deltas at 2/4/8 bits per slot) or a variation-index table
// (format 0x8000, treated as opaque since variable-font hinting is out
// of scope).
type Device struct {
	StartSize   uint16
	EndSize     uint16
	DeltaFormat uint16
	Deltas      []int16 // one per size in [StartSize, EndSize], sign-extended
}

// ReadDevice decodes a Device table.
func ReadDevice(r *reader.R) (*Device, error) {
	startSize, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	endSize, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	deltaFormat, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	d := &Device{StartSize: startSize, EndSize: endSize, DeltaFormat: deltaFormat}
	if deltaFormat < 1 || deltaFormat > 3 {
		// Variation-index or unknown format: no per-size deltas to decode.
		return d, nil
	}
	bitsPerValue := 1 << deltaFormat // 2, 4, 8
	n := int(endSize) - int(startSize) + 1
	if n < 0 {
		return d, nil
	}
	valuesPerWord := 16 / bitsPerValue
	words := (n + valuesPerWord - 1) / valuesPerWord
	sign := int16(1) << (bitsPerValue - 1)
	mask := uint16(1)<<bitsPerValue - 1
	d.Deltas = make([]int16, 0, n)
	for w := 0; w < words; w++ {
		word, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		for k := 0; k < valuesPerWord && len(d.Deltas) < n; k++ {
			shift := 16 - bitsPerValue*(k+1)
			v := int16((word >> shift) & mask)
			if v >= sign {
				v -= sign << 1
			}
			d.Deltas = append(d.Deltas, v)
		}
	}
	return d, nil
}

// ValueRecord is a sparse GPOS positioning adjustment. ValueFormat is
// the bitmask that determined which fields were present in the binary
// encoding; absent fields decode as zero.
type ValueRecord struct {
	ValueFormat uint16
	XPlacement  int16
	YPlacement  int16
	XAdvance    int16
	YAdvance    int16
	XPlaDevice  *Device
	YPlaDevice  *Device
	XAdvDevice  *Device
	YAdvDevice  *Device
}

const (
	vfXPlacement = 0x0001
	vfYPlacement = 0x0002
	vfXAdvance   = 0x0004
	vfYAdvance   = 0x0008
	vfXPlaDevice = 0x0010
	vfYPlaDevice = 0x0020
	vfXAdvDevice = 0x0040
	vfYAdvDevice = 0x0080
)

// ReadValueRecord decodes a ValueRecord whose present fields are
// determined by valueFormat. base is the cursor whose window start
// per-field device-table offsets are relative to (the subtable's own
// start).
func ReadValueRecord(r *reader.R, valueFormat uint16, base *reader.R) (*ValueRecord, error) {
	if valueFormat == 0 {
		return nil, nil
	}
	vr := &ValueRecord{ValueFormat: valueFormat}
	var xPlaOff, yPlaOff, xAdvOff, yAdvOff uint16
	readField := func(flag uint16, dst *int16) error {
		if valueFormat&flag == 0 {
			return nil
		}
		v, err := r.ReadInt16()
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
	readOffset := func(flag uint16, dst *uint16) error {
		if valueFormat&flag == 0 {
			return nil
		}
		v, err := r.ReadUint16()
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
	if err := readField(vfXPlacement, &vr.XPlacement); err != nil {
		return nil, err
	}
	if err := readField(vfYPlacement, &vr.YPlacement); err != nil {
		return nil, err
	}
	if err := readField(vfXAdvance, &vr.XAdvance); err != nil {
		return nil, err
	}
	if err := readField(vfYAdvance, &vr.YAdvance); err != nil {
		return nil, err
	}
	if err := readOffset(vfXPlaDevice, &xPlaOff); err != nil {
		return nil, err
	}
	if err := readOffset(vfYPlaDevice, &yPlaOff); err != nil {
		return nil, err
	}
	if err := readOffset(vfXAdvDevice, &xAdvOff); err != nil {
		return nil, err
	}
	if err := readOffset(vfYAdvDevice, &yAdvOff); err != nil {
		return nil, err
	}
	resolve := func(off uint16) (*Device, error) {
		if off == 0 || base == nil {
			return nil, nil
		}
		sub, err := base.SubWindow(int(off), base.Len()-int(off))
		if err != nil {
			return nil, nil // out-of-range device offsets are tolerated, not fatal
		}
		return ReadDevice(sub)
	}
	var err error
	if vr.XPlaDevice, err = resolve(xPlaOff); err != nil {
		return nil, err
	}
	if vr.YPlaDevice, err = resolve(yPlaOff); err != nil {
		return nil, err
	}
	if vr.XAdvDevice, err = resolve(xAdvOff); err != nil {
		return nil, err
	}
	if vr.YAdvDevice, err = resolve(yAdvOff); err != nil {
		return nil, err
	}
	return vr, nil
}

// ValueRecordSize returns the serialized byte size of a ValueRecord with the
// given format: popcount(valueFormat)*2.
func ValueRecordSize(valueFormat uint16) int {
	n := 0
	for v := valueFormat; v != 0; v &= v - 1 {
		n++
	}
	return n * 2
}

// Anchor is a GPOS anchor point, in one of three formats: plain
// coordinates, coordinates plus a contour-point index (format 2, used
// by hinted TrueType outlines), or coordinates plus device-table
// adjustments (format 3).
type Anchor struct {
	Format      uint16
	X, Y        int16
	AnchorPoint uint16 // format 2 only
	XDevice     *Device
	YDevice     *Device
}

// ReadAnchor decodes an Anchor table at the cursor's current position.
func ReadAnchor(r *reader.R) (*Anchor, error) {
	format, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	x, err := r.ReadInt16()
	if err != nil {
		return nil, err
	}
	y, err := r.ReadInt16()
	if err != nil {
		return nil, err
	}
	a := &Anchor{Format: format, X: x, Y: y}
	switch format {
	case 1:
	case 2:
		pt, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		a.AnchorPoint = pt
	case 3:
		xDevOff, err := r.ReadOffset16()
		if err != nil {
			return nil, err
		}
		yDevOff, err := r.ReadOffset16()
		if err != nil {
			return nil, err
		}
		if xDevOff != 0 {
			sub, err := r.SubWindow(int(xDevOff), r.Len()-int(xDevOff))
			if err == nil {
				a.XDevice, _ = ReadDevice(sub)
			}
		}
		if yDevOff != 0 {
			sub, err := r.SubWindow(int(yDevOff), r.Len()-int(yDevOff))
			if err == nil {
				a.YDevice, _ = ReadDevice(sub)
			}
		}
	default:
		return nil, &sfntutil.UnsupportedFormatError{Where: "Anchor", Format: int(format)}
	}
	return a, nil
}

// MarkRecord is one entry of a MarkArray: the mark class used to
// select the matching base/ligature/mark anchor, plus this mark
// glyph's own attachment anchor.
type MarkRecord struct {
	Class      uint16
	MarkAnchor *Anchor
}

// MarkArray is the decoded content of a MarkArray table, used by
// GPOS lookup types 4-6 (Mark-to-Base/Ligature/Mark).
type MarkArray []MarkRecord

// ReadMarkArray decodes a MarkArray table at the cursor's current
// position. Mark-anchor offsets are resolved relative to r's window
// start, so r must be windowed at the MarkArray's own start.
func ReadMarkArray(r *reader.R) (MarkArray, error) {
	count, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	type rec struct {
		class  uint16
		offset uint16
	}
	recs := make([]rec, count)
	for i := range recs {
		class, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		offset, err := r.ReadOffset16()
		if err != nil {
			return nil, err
		}
		recs[i] = rec{class, offset}
	}
	out := make(MarkArray, count)
	for i, rc := range recs {
		out[i].Class = rc.class
		if rc.offset == 0 {
			continue
		}
		sub, err := r.SubWindow(int(rc.offset), r.Len()-int(rc.offset))
		if err != nil {
			continue
		}
		out[i].MarkAnchor, _ = ReadAnchor(sub)
	}
	return out, nil
}
