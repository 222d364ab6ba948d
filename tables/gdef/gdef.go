// SPDX-License-Identifier: GPL-3.0-or-later

// Package gdef decodes the sfnt "GDEF" table: the glyph class
// definitions, attachment points, ligature carets, and mark-filtering
// sets the GSUB/GPOS lookups refer to.
package gdef

import (
	"github.com/otfdecode/sfnt/container"
	"github.com/otfdecode/sfnt/font/sfntutil"
	"github.com/otfdecode/sfnt/font/tag"
	"github.com/otfdecode/sfnt/otl"
	"github.com/otfdecode/sfnt/reader"
)

// Glyph classes of the glyph class definition table.
const (
	GlyphClassBase      = 1
	GlyphClassLigature  = 2
	GlyphClassMark      = 3
	GlyphClassComponent = 4
)

// CaretValue is one ligature caret position, in one of three formats:
// an X or Y coordinate (format 1), a contour point index (format 2), or
// a coordinate with device-table adjustment (format 3).
type CaretValue struct {
	Format     uint16
	Coordinate int16  // formats 1 and 3
	PointIndex uint16 // format 2
	Device     *otl.Device
}

// Table is the decoded content of a "GDEF" table.
type Table struct {
	MajorVersion, MinorVersion uint16

	GlyphClass      otl.ClassDef
	MarkAttachClass otl.ClassDef

	// AttachPoints lists, per covered glyph, the contour point indices
	// used for attachment. Keyed by glyph ID.
	AttachPoints map[uint16][]uint16

	// LigCarets lists, per covered ligature glyph, the caret positions
	// splitting it into components. Keyed by glyph ID.
	LigCarets map[uint16][]CaretValue

	// MarkGlyphSets holds the coverage sets selected by a lookup's
	// markFilteringSet index (version 1.2+).
	MarkGlyphSets []otl.Coverage
}

// IsMark reports whether the glyph class definition assigns gid the
// mark class.
func (t *Table) IsMark(gid uint16) bool {
	if t == nil || t.GlyphClass == nil {
		return false
	}
	return t.GlyphClass.Class(gid) == GlyphClassMark
}

func init() {
	container.Register(tag.Make("GDEF"), func(r *reader.R, entry container.Meta, f *container.Font) (interface{}, error) {
		return Read(r)
	})
}

// Read decodes a "GDEF" table from r.
func Read(r *reader.R) (*Table, error) {
	t := &Table{}
	var err error
	if t.MajorVersion, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if t.MinorVersion, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if t.MajorVersion != 1 || (t.MinorVersion != 0 && t.MinorVersion != 2 && t.MinorVersion != 3) {
		return nil, &sfntutil.UnsupportedFormatError{Where: "GDEF", Format: int(t.MajorVersion)*100 + int(t.MinorVersion)}
	}

	glyphClassDefOffset, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	attachListOffset, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	ligCaretListOffset, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	markAttachClassDefOffset, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	var markGlyphSetsDefOffset uint16
	if t.MinorVersion >= 2 {
		if markGlyphSetsDefOffset, err = r.ReadOffset16(); err != nil {
			return nil, err
		}
	}
	if t.MinorVersion >= 3 {
		if _, err := r.ReadOffset32(); err != nil { // itemVarStoreOffset: variable-font only, unresolved
			return nil, err
		}
	}

	if glyphClassDefOffset != 0 {
		if sub, err := r.SubWindow(int(glyphClassDefOffset), r.Len()-int(glyphClassDefOffset)); err == nil {
			t.GlyphClass, _ = otl.ReadClassDef(sub)
		}
	}
	if markAttachClassDefOffset != 0 {
		if sub, err := r.SubWindow(int(markAttachClassDefOffset), r.Len()-int(markAttachClassDefOffset)); err == nil {
			t.MarkAttachClass, _ = otl.ReadClassDef(sub)
		}
	}
	if attachListOffset != 0 {
		if sub, err := r.SubWindow(int(attachListOffset), r.Len()-int(attachListOffset)); err == nil {
			t.AttachPoints, _ = readAttachList(sub)
		}
	}
	if ligCaretListOffset != 0 {
		if sub, err := r.SubWindow(int(ligCaretListOffset), r.Len()-int(ligCaretListOffset)); err == nil {
			t.LigCarets, _ = readLigCaretList(sub)
		}
	}
	if markGlyphSetsDefOffset != 0 {
		if sub, err := r.SubWindow(int(markGlyphSetsDefOffset), r.Len()-int(markGlyphSetsDefOffset)); err == nil {
			t.MarkGlyphSets, _ = readMarkGlyphSets(sub)
		}
	}

	return t, nil
}

func readAttachList(r *reader.R) (map[uint16][]uint16, error) {
	covOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	count, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	offsets, err := r.ReadUint16Array(int(count))
	if err != nil {
		return nil, err
	}
	var cov otl.Coverage
	if covOff != 0 {
		if sub, err := r.SubWindow(int(covOff), r.Len()-int(covOff)); err == nil {
			cov, _ = otl.ReadCoverage(sub)
		}
	}
	out := make(map[uint16][]uint16, count)
	for i, off := range offsets {
		if off == 0 || i >= len(cov) {
			continue
		}
		sub, err := r.SubWindow(int(off), r.Len()-int(off))
		if err != nil {
			continue
		}
		points, err := otl.ReadUint16ArrayField(sub)
		if err != nil {
			continue
		}
		out[cov[i]] = points
	}
	return out, nil
}

func readLigCaretList(r *reader.R) (map[uint16][]CaretValue, error) {
	covOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	count, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	offsets, err := r.ReadUint16Array(int(count))
	if err != nil {
		return nil, err
	}
	var cov otl.Coverage
	if covOff != 0 {
		if sub, err := r.SubWindow(int(covOff), r.Len()-int(covOff)); err == nil {
			cov, _ = otl.ReadCoverage(sub)
		}
	}
	out := make(map[uint16][]CaretValue, count)
	for i, off := range offsets {
		if off == 0 || i >= len(cov) {
			continue
		}
		sub, err := r.SubWindow(int(off), r.Len()-int(off))
		if err != nil {
			continue
		}
		carets, err := readLigGlyph(sub)
		if err != nil {
			continue
		}
		out[cov[i]] = carets
	}
	return out, nil
}

func readLigGlyph(r *reader.R) ([]CaretValue, error) {
	caretOffsets, err := otl.ReadUint16ArrayField(r)
	if err != nil {
		return nil, err
	}
	carets := make([]CaretValue, 0, len(caretOffsets))
	for _, off := range caretOffsets {
		if off == 0 {
			continue
		}
		sub, err := r.SubWindow(int(off), r.Len()-int(off))
		if err != nil {
			continue
		}
		cv, err := readCaretValue(sub)
		if err != nil {
			continue
		}
		carets = append(carets, *cv)
	}
	return carets, nil
}

func readCaretValue(r *reader.R) (*CaretValue, error) {
	cv := &CaretValue{}
	var err error
	if cv.Format, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	switch cv.Format {
	case 1:
		if cv.Coordinate, err = r.ReadFWORD(); err != nil {
			return nil, err
		}
	case 2:
		if cv.PointIndex, err = r.ReadUint16(); err != nil {
			return nil, err
		}
	case 3:
		if cv.Coordinate, err = r.ReadFWORD(); err != nil {
			return nil, err
		}
		devOff, err := r.ReadOffset16()
		if err != nil {
			return nil, err
		}
		if devOff != 0 {
			if sub, err := r.SubWindow(int(devOff), r.Len()-int(devOff)); err == nil {
				cv.Device, _ = otl.ReadDevice(sub)
			}
		}
	default:
		return nil, &sfntutil.UnsupportedFormatError{Where: "GDEF CaretValue", Format: int(cv.Format)}
	}
	return cv, nil
}

func readMarkGlyphSets(r *reader.R) ([]otl.Coverage, error) {
	format, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if format != 1 {
		return nil, &sfntutil.UnsupportedFormatError{Where: "GDEF MarkGlyphSets", Format: int(format)}
	}
	count, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	offsets := make([]uint32, count)
	for i := range offsets {
		if offsets[i], err = r.ReadOffset32(); err != nil {
			return nil, err
		}
	}
	sets := make([]otl.Coverage, count)
	for i, off := range offsets {
		if off == 0 {
			continue
		}
		sub, err := r.SubWindow(int(off), r.Len()-int(off))
		if err != nil {
			continue
		}
		sets[i], _ = otl.ReadCoverage(sub)
	}
	return sets, nil
}
