// SPDX-License-Identifier: GPL-3.0-or-later

// Package head decodes the sfnt "head" table: global font-level metrics
// and flags shared across all glyph outline formats.
package head

import (
	"fmt"
	"time"

	"github.com/otfdecode/sfnt/container"
	"github.com/otfdecode/sfnt/font/sfntutil"
	"github.com/otfdecode/sfnt/font/tag"
	"github.com/otfdecode/sfnt/reader"
)

// Version is a 16.16 fixed-point font revision number.
type Version int32

func (v Version) String() string {
	return fmt.Sprintf("%.3f", float64(v)/65536)
}

// Info is the decoded content of the "head" table.
type Info struct {
	FontRevision      Version
	Created           time.Time
	Modified          time.Time
	UnitsPerEm        uint16
	XMin, YMin        int16
	XMax, YMax        int16
	MacStyle          uint16
	LowestRecPPEM     uint16
	FontDirectionHint int16
	IndexToLocFormat  int16 // 0: short offsets, 1: long offsets
	GlyphDataFormat   int16

	HasYBaseAt0 bool
	HasXBaseAt0 bool
	IsNonlinear bool

	IsBold       bool
	IsItalic     bool
	HasUnderline bool
	IsOutline    bool
	HasShadow    bool
	IsCondensed  bool
	IsExtended   bool
}

const magicNumber = 0x5F0F3CF5

func init() {
	container.Register(tag.Make("head"), func(r *reader.R, entry container.Meta, f *container.Font) (interface{}, error) {
		return Read(r)
	})
}

// Read decodes a "head" table from r, which must be windowed to exactly
// the table's extent.
func Read(r *reader.R) (*Info, error) {
	version, err := r.ReadVersion16Dot16()
	if err != nil {
		return nil, err
	}
	if version.Major != 1 || version.Minor != 0 {
		return nil, &sfntutil.UnsupportedFormatError{Where: "head", Format: int(version.Major)}
	}
	fontRevisionRaw, err := r.ReadFixed()
	if err != nil {
		return nil, err
	}
	fontRevision := Version(fontRevisionRaw)
	if err := r.Skip(4); err != nil { // checkSumAdjustment, verified by the container loader
		return nil, err
	}
	magic, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if magic != magicNumber {
		return nil, &sfntutil.InvalidMagicError{Table: "head", Got: magic, Want: magicNumber}
	}
	flags, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	unitsPerEm, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	createdRaw, err := r.ReadLongDateTime()
	if err != nil {
		return nil, err
	}
	modifiedRaw, err := r.ReadLongDateTime()
	if err != nil {
		return nil, err
	}
	xMin, err := r.ReadFWORD()
	if err != nil {
		return nil, err
	}
	yMin, err := r.ReadFWORD()
	if err != nil {
		return nil, err
	}
	xMax, err := r.ReadFWORD()
	if err != nil {
		return nil, err
	}
	yMax, err := r.ReadFWORD()
	if err != nil {
		return nil, err
	}
	macStyle, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	lowestRecPPEM, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	fontDirectionHint, err := r.ReadInt16()
	if err != nil {
		return nil, err
	}
	indexToLocFormat, err := r.ReadInt16()
	if err != nil {
		return nil, err
	}
	glyphDataFormat, err := r.ReadInt16()
	if err != nil {
		return nil, err
	}

	info := &Info{
		FontRevision:      fontRevision,
		UnitsPerEm:        unitsPerEm,
		XMin:              xMin,
		YMin:              yMin,
		XMax:              xMax,
		YMax:              yMax,
		MacStyle:          macStyle,
		LowestRecPPEM:     lowestRecPPEM,
		FontDirectionHint: fontDirectionHint,
		IndexToLocFormat:  indexToLocFormat,
		GlyphDataFormat:   glyphDataFormat,

		HasYBaseAt0: flags&(1<<0) != 0,
		HasXBaseAt0: flags&(1<<1) != 0,
		IsNonlinear: flags&(1<<2) != 0 || flags&(1<<4) != 0,

		IsBold:       macStyle&(1<<0) != 0,
		IsItalic:     macStyle&(1<<1) != 0,
		HasUnderline: macStyle&(1<<2) != 0,
		IsOutline:    macStyle&(1<<3) != 0,
		HasShadow:    macStyle&(1<<4) != 0,
		IsCondensed:  macStyle&(1<<5) != 0,
		IsExtended:   macStyle&(1<<6) != 0,
	}
	if createdRaw != 0 {
		info.Created = time.Unix(createdRaw, 0).UTC()
	}
	if modifiedRaw != 0 {
		info.Modified = time.Unix(modifiedRaw, 0).UTC()
	}
	return info, nil
}
