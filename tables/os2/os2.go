// SPDX-License-Identifier: GPL-3.0-or-later

// Package os2 decodes the sfnt "OS/2" table: weight/width class,
// vertical metrics, Unicode/codepage coverage, and embedding
// permissions, with progressive version dispatch (versions 0 through
// 5 add fields incrementally; absent trailing versions leave later
// fields at their zero value).
package os2

import (
	"github.com/otfdecode/sfnt/container"
	"github.com/otfdecode/sfnt/font/sfntutil"
	"github.com/otfdecode/sfnt/font/tag"
	"github.com/otfdecode/sfnt/reader"
)

// Permissions describes embedding rights granted by the low bits of
// fsType.
type Permissions int

const (
	PermInstallable Permissions = iota
	PermRestricted
	PermPreviewAndPrint
	PermEditable
)

// Info is the decoded content of the "OS/2" table.
type Info struct {
	Version uint16

	AvgCharWidth int16
	WeightClass  uint16
	WidthClass   uint16
	FsType       uint16

	SubscriptXSize, SubscriptYSize         int16
	SubscriptXOffset, SubscriptYOffset     int16
	SuperscriptXSize, SuperscriptYSize     int16
	SuperscriptXOffset, SuperscriptYOffset int16
	StrikeoutSize, StrikeoutPosition       int16

	FamilyClass int16
	Panose      [10]byte

	UnicodeRange [4]uint32
	VendID       string
	Selection    uint16

	FirstCharIndex, LastCharIndex uint16

	// present once the table is not truncated after FsType-era fields
	TypoAscender, TypoDescender, TypoLineGap int16
	WinAscent, WinDescent                    uint16

	// version >= 1
	CodePageRange [2]uint32

	// version >= 2
	XHeight, CapHeight     int16
	DefaultChar, BreakChar uint16
	MaxContext             uint16

	// version >= 5
	LowerOpticalPointSize, UpperOpticalPointSize uint16

	IsBold    bool
	IsItalic  bool
	IsRegular bool
	IsOblique bool
	Perm      Permissions
}

func init() {
	container.Register(tag.Make("OS/2"), func(r *reader.R, entry container.Meta, f *container.Font) (interface{}, error) {
		return Read(r)
	})
}

// Read decodes an "OS/2" table from r. A table truncated after the
// version-0 fields is accepted (several very old fonts ship exactly
// that); every field beyond the truncation point is left at its zero
// value.
func Read(r *reader.R) (*Info, error) {
	version, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if version > 5 {
		return nil, &sfntutil.UnsupportedFormatError{Where: "OS/2", Format: int(version)}
	}
	info := &Info{Version: version}

	if info.AvgCharWidth, err = r.ReadInt16(); err != nil {
		return nil, err
	}
	if info.WeightClass, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if info.WidthClass, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if info.FsType, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if info.SubscriptXSize, err = r.ReadInt16(); err != nil {
		return nil, err
	}
	if info.SubscriptYSize, err = r.ReadInt16(); err != nil {
		return nil, err
	}
	if info.SubscriptXOffset, err = r.ReadInt16(); err != nil {
		return nil, err
	}
	if info.SubscriptYOffset, err = r.ReadInt16(); err != nil {
		return nil, err
	}
	if info.SuperscriptXSize, err = r.ReadInt16(); err != nil {
		return nil, err
	}
	if info.SuperscriptYSize, err = r.ReadInt16(); err != nil {
		return nil, err
	}
	if info.SuperscriptXOffset, err = r.ReadInt16(); err != nil {
		return nil, err
	}
	if info.SuperscriptYOffset, err = r.ReadInt16(); err != nil {
		return nil, err
	}
	if info.StrikeoutSize, err = r.ReadInt16(); err != nil {
		return nil, err
	}
	if info.StrikeoutPosition, err = r.ReadInt16(); err != nil {
		return nil, err
	}
	if info.FamilyClass, err = r.ReadInt16(); err != nil {
		return nil, err
	}
	panose, err := r.ReadBytes(10)
	if err != nil {
		return nil, err
	}
	copy(info.Panose[:], panose)
	for i := 0; i < 4; i++ {
		if info.UnicodeRange[i], err = r.ReadUint32(); err != nil {
			return nil, err
		}
	}
	vendID, err := r.ReadTag()
	if err != nil {
		return nil, err
	}
	info.VendID = vendID
	if info.Selection, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if info.FirstCharIndex, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if info.LastCharIndex, err = r.ReadUint16(); err != nil {
		return nil, err
	}

	sel := info.Selection
	if version <= 3 {
		sel &= 0x007F
	}
	info.IsItalic = sel&0x0001 != 0
	info.IsBold = sel&0x0020 != 0
	info.IsRegular = sel&0x0040 != 0
	info.IsOblique = sel&0x0200 != 0

	permBits := info.FsType
	if version == 0 {
		permBits &= 0xF
	}
	switch {
	case permBits&0x0008 != 0:
		info.Perm = PermEditable
	case permBits&0x0004 != 0:
		info.Perm = PermPreviewAndPrint
	case permBits&0x0002 != 0:
		info.Perm = PermRestricted
	default:
		info.Perm = PermInstallable
	}

	if info.TypoAscender, err = r.ReadInt16(); err != nil {
		return info, nil // truncated after the version-0 block; tolerated
	}
	if info.TypoDescender, err = r.ReadInt16(); err != nil {
		return info, nil
	}
	if info.TypoLineGap, err = r.ReadInt16(); err != nil {
		return info, nil
	}
	if info.WinAscent, err = r.ReadUint16(); err != nil {
		return info, nil
	}
	if info.WinDescent, err = r.ReadUint16(); err != nil {
		return info, nil
	}

	if version < 1 {
		return info, nil
	}
	for i := 0; i < 2; i++ {
		if info.CodePageRange[i], err = r.ReadUint32(); err != nil {
			return info, nil
		}
	}

	if version < 2 {
		return info, nil
	}
	if info.XHeight, err = r.ReadInt16(); err != nil {
		return info, nil
	}
	if info.CapHeight, err = r.ReadInt16(); err != nil {
		return info, nil
	}
	if info.DefaultChar, err = r.ReadUint16(); err != nil {
		return info, nil
	}
	if info.BreakChar, err = r.ReadUint16(); err != nil {
		return info, nil
	}
	if info.MaxContext, err = r.ReadUint16(); err != nil {
		return info, nil
	}

	if version < 5 {
		return info, nil
	}
	if info.LowerOpticalPointSize, err = r.ReadUint16(); err != nil {
		return info, nil
	}
	if info.UpperOpticalPointSize, err = r.ReadUint16(); err != nil {
		return info, nil
	}

	return info, nil
}
