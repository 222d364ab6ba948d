// SPDX-License-Identifier: GPL-3.0-or-later

package cff

import "github.com/otfdecode/sfnt/font/sfntutil"

// FDSelect maps a glyph index to an index into a CID-keyed font's
// FDArray (the per-glyph Font DICT / Private DICT selector).
type FDSelect []uint16

// Get returns the FD index for gid, or 0 if gid is out of range (every
// decoded FDSelect covers exactly nGlyphs glyphs, so this only matters
// for malformed input).
func (s FDSelect) Get(gid int) uint16 {
	if gid < 0 || gid >= len(s) {
		return 0
	}
	return s[gid]
}

// readFDSelect decodes an FDSelect table in one of formats 0, 3, or 4
// (format 4 uses 32-bit glyph ids and is CFF2-only, for fonts with more
// than 65535 glyphs).
func readFDSelect(buf []byte, nGlyphs int) (FDSelect, error) {
	if len(buf) < 1 {
		return nil, sfntutil.ErrUnexpectedEOF
	}
	format := buf[0]
	buf = buf[1:]

	sel := make(FDSelect, nGlyphs)
	switch format {
	case 0:
		if len(buf) < nGlyphs {
			return nil, sfntutil.ErrUnexpectedEOF
		}
		for i := 0; i < nGlyphs; i++ {
			sel[i] = uint16(buf[i])
		}
	case 3:
		if len(buf) < 2 {
			return nil, sfntutil.ErrUnexpectedEOF
		}
		nRanges := int(buf[0])<<8 | int(buf[1])
		buf = buf[2:]
		first := make([]int, nRanges+1)
		fd := make([]uint16, nRanges)
		for i := 0; i < nRanges; i++ {
			if len(buf) < 3 {
				return nil, sfntutil.ErrUnexpectedEOF
			}
			first[i] = int(buf[0])<<8 | int(buf[1])
			fd[i] = uint16(buf[2])
			buf = buf[3:]
		}
		if len(buf) < 2 {
			return nil, sfntutil.ErrUnexpectedEOF
		}
		first[nRanges] = int(buf[0])<<8 | int(buf[1])
		for i := 0; i < nRanges; i++ {
			for g := first[i]; g < first[i+1] && g < nGlyphs; g++ {
				sel[g] = fd[i]
			}
		}
	case 4:
		if len(buf) < 4 {
			return nil, sfntutil.ErrUnexpectedEOF
		}
		nRanges := int(buf[0])<<24 | int(buf[1])<<16 | int(buf[2])<<8 | int(buf[3])
		buf = buf[4:]
		first := make([]int, nRanges+1)
		fd := make([]uint16, nRanges)
		for i := 0; i < nRanges; i++ {
			if len(buf) < 6 {
				return nil, sfntutil.ErrUnexpectedEOF
			}
			first[i] = int(buf[0])<<24 | int(buf[1])<<16 | int(buf[2])<<8 | int(buf[3])
			fd[i] = uint16(buf[4])<<8 | uint16(buf[5])
			buf = buf[6:]
		}
		if len(buf) < 4 {
			return nil, sfntutil.ErrUnexpectedEOF
		}
		first[nRanges] = int(buf[0])<<24 | int(buf[1])<<16 | int(buf[2])<<8 | int(buf[3])
		for i := 0; i < nRanges; i++ {
			for g := first[i]; g < first[i+1] && g < nGlyphs; g++ {
				sel[g] = fd[i]
			}
		}
	default:
		return nil, &sfntutil.UnsupportedLookupTypeError{Where: "CFF FDSelect", Type: int(format)}
	}
	return sel, nil
}
