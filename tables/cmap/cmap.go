// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmap decodes the sfnt "cmap" table: the character-code to
// glyph-ID mapping, across every subtable format in common use
// (0, 2, 4, 6, 8, 10, 12, 13) plus format 14's Unicode variation
// selector records.
package cmap

import (
	"github.com/otfdecode/sfnt/container"
	"github.com/otfdecode/sfnt/font/sfntutil"
	"github.com/otfdecode/sfnt/font/tag"
	"github.com/otfdecode/sfnt/reader"
)

// Key identifies one subtable of a "cmap" table by platform and
// platform-specific encoding.
type Key struct {
	PlatformID uint16
	EncodingID uint16
}

// Subtable maps character codes to glyph IDs. Lookup returns 0
// (.notdef) for an unmapped code.
type Subtable interface {
	Lookup(code rune) uint16
	CodeRange() (low, high rune)
}

// Info is the decoded content of a "cmap" table.
type Info struct {
	Subtables map[Key]Subtable

	// VariationSequences holds the format 14 Unicode Variation
	// Sequences subtable, if present.
	VariationSequences *VariationSequences
}

func init() {
	container.Register(tag.Make("cmap"), func(r *reader.R, entry container.Meta, f *container.Font) (interface{}, error) {
		return Read(r)
	})
}

type encodingRecord struct {
	platformID uint16
	encodingID uint16
	offset     uint32
}

// Read decodes a "cmap" table from r.
func Read(r *reader.R) (*Info, error) {
	version, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if version != 0 {
		return nil, &sfntutil.UnsupportedFormatError{Where: "cmap", Format: int(version)}
	}
	numTables, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}

	records := make([]encodingRecord, numTables)
	for i := range records {
		var rec encodingRecord
		if rec.platformID, err = r.ReadUint16(); err != nil {
			return nil, err
		}
		if rec.encodingID, err = r.ReadUint16(); err != nil {
			return nil, err
		}
		if rec.offset, err = r.ReadOffset32(); err != nil {
			return nil, err
		}
		records[i] = rec
	}

	info := &Info{Subtables: make(map[Key]Subtable)}
	for _, rec := range records {
		sub, err := r.SubWindow(int(rec.offset), r.Len()-int(rec.offset))
		if err != nil {
			continue
		}
		format, err := peekFormat(sub)
		if err != nil {
			continue
		}

		if format == 14 {
			vs, err := readFormat14(sub)
			if err == nil {
				info.VariationSequences = vs
			}
			continue
		}

		decoded, err := decodeSubtable(format, sub)
		if err != nil {
			// Unsupported or unparsable subtables keep their directory
			// slot as a placeholder that maps everything to .notdef.
			decoded = placeholder{format: format}
		}
		info.Subtables[Key{rec.platformID, rec.encodingID}] = decoded
	}

	return info, nil
}

func peekFormat(r *reader.R) (uint16, error) {
	r.Save()
	defer r.Restore()
	return r.ReadUint16()
}

func decodeSubtable(format uint16, r *reader.R) (Subtable, error) {
	switch format {
	case 0:
		return readFormat0(r)
	case 2:
		return readFormat2(r)
	case 4:
		return readFormat4(r)
	case 6:
		return readFormat6(r)
	case 8:
		return readFormat8(r)
	case 10:
		return readFormat10(r)
	case 12:
		return readFormat12(r)
	case 13:
		return readFormat13(r)
	default:
		return nil, &sfntutil.UnsupportedFormatError{Where: "cmap subtable", Format: int(format)}
	}
}

// preferredKeys ranks the platform/encoding pairs most likely to
// yield a usable Unicode mapping, most preferred first.
var preferredKeys = []Key{
	{3, 10}, // Windows, full Unicode (UCS-4)
	{0, 6},  // Unicode, full Unicode
	{0, 4},
	{3, 1}, // Windows, BMP Unicode
	{0, 3},
	{0, 2},
	{0, 1},
	{0, 0},
	{1, 0}, // Macintosh Roman
}

// Best returns the highest-ranked subtable present in the table. When
// none of the ranked encodings is present it returns an arbitrary
// remaining subtable; the bool is false only for a table with no
// subtables.
func (info *Info) Best() (Subtable, bool) {
	for _, k := range preferredKeys {
		if sub, ok := info.Subtables[k]; ok {
			return sub, true
		}
	}
	for _, sub := range info.Subtables {
		return sub, true
	}
	return nil, false
}

// GlyphID resolves r to a glyph ID, consulting the preferred Unicode
// subtables first and falling back to every remaining subtable on a
// miss. Returns 0 (.notdef) only when all subtables miss.
func (info *Info) GlyphID(r rune) uint16 {
	tried := make(map[Key]bool, len(info.Subtables))
	for _, k := range preferredKeys {
		sub, ok := info.Subtables[k]
		if !ok {
			continue
		}
		tried[k] = true
		if gid := sub.Lookup(r); gid != 0 {
			return gid
		}
	}
	for k, sub := range info.Subtables {
		if tried[k] {
			continue
		}
		if gid := sub.Lookup(r); gid != 0 {
			return gid
		}
	}
	return 0
}

// placeholder stands in for a subtable whose format this decoder does
// not understand; it maps every code to .notdef.
type placeholder struct {
	format uint16
}

// Format returns the unsupported subtable's format discriminant.
func (p placeholder) Format() uint16 { return p.format }

func (placeholder) Lookup(rune) uint16          { return 0 }
func (placeholder) CodeRange() (low, high rune) { return 0, 0 }
