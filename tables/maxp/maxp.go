// SPDX-License-Identifier: GPL-3.0-or-later

// Package maxp decodes the sfnt "maxp" table: the glyph count and, for
// TrueType fonts, the various memory and hinting-bytecode limits.
package maxp

import (
	"github.com/otfdecode/sfnt/container"
	"github.com/otfdecode/sfnt/font/sfntutil"
	"github.com/otfdecode/sfnt/font/tag"
	"github.com/otfdecode/sfnt/reader"
)

// Info is the decoded content of the "maxp" table. The TrueType-only
// fields are zero when the table is the short (version 0.5) form used
// by CFF-outline fonts.
type Info struct {
	Version   reader.Version16Dot16
	NumGlyphs uint16

	// TrueType-only (version 1.0):
	MaxPoints             uint16
	MaxContours           uint16
	MaxCompositePoints    uint16
	MaxCompositeContours  uint16
	MaxZones              uint16
	MaxTwilightPoints     uint16
	MaxStorage            uint16
	MaxFunctionDefs       uint16
	MaxInstructionDefs    uint16
	MaxStackElements      uint16
	MaxSizeOfInstructions uint16
	MaxComponentElements  uint16
	MaxComponentDepth     uint16
}

func init() {
	container.Register(tag.Make("maxp"), func(r *reader.R, entry container.Meta, f *container.Font) (interface{}, error) {
		return Read(r)
	})
}

// NumGlyphsHint lets other table parsers (e.g. "post") recover the
// glyph count through container.Font.Find without importing this
// package's concrete type.
func (info *Info) NumGlyphsHint() int { return int(info.NumGlyphs) }

// Read decodes a "maxp" table from r.
func Read(r *reader.R) (*Info, error) {
	version, err := r.ReadVersion16Dot16()
	if err != nil {
		return nil, err
	}
	numGlyphs, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}

	info := &Info{Version: version, NumGlyphs: numGlyphs}

	switch {
	case version.Major == 0 && version.Minor == 5:
		return info, nil
	case version.Major == 1 && version.Minor == 0:
	default:
		return nil, &sfntutil.UnsupportedFormatError{Where: "maxp", Format: int(version.Major)}
	}

	fields := []*uint16{
		&info.MaxPoints, &info.MaxContours,
		&info.MaxCompositePoints, &info.MaxCompositeContours,
		&info.MaxZones, &info.MaxTwilightPoints,
		&info.MaxStorage, &info.MaxFunctionDefs,
		&info.MaxInstructionDefs, &info.MaxStackElements,
		&info.MaxSizeOfInstructions, &info.MaxComponentElements,
		&info.MaxComponentDepth,
	}
	for _, f := range fields {
		v, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		*f = v
	}
	return info, nil
}
