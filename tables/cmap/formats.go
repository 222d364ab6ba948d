// SPDX-License-Identifier: GPL-3.0-or-later

package cmap

import (
	"golang.org/x/exp/slices"

	"github.com/otfdecode/sfnt/font/sfntutil"
	"github.com/otfdecode/sfnt/reader"
)

func be16(b []byte) uint16 { return uint16(b[0])<<8 | uint16(b[1]) }
func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// format0 is a byte-encoding table: a direct 256-entry glyph array.
type format0 struct {
	glyphIDArray [256]byte
}

func readFormat0(r *reader.R) (Subtable, error) {
	data, err := r.ReadBytes(r.Len())
	if err != nil {
		return nil, err
	}
	if len(data) < 6+256 {
		return nil, sfntutil.ErrUnexpectedEOF
	}
	f := &format0{}
	copy(f.glyphIDArray[:], data[6:6+256])
	return f, nil
}

func (f *format0) Lookup(code rune) uint16 {
	if code < 0 || code >= 256 {
		return 0
	}
	return uint16(f.glyphIDArray[code])
}

func (f *format0) CodeRange() (low, high rune) {
	lo, hi := -1, -1
	for i, g := range f.glyphIDArray {
		if g == 0 {
			continue
		}
		if lo == -1 {
			lo = i
		}
		hi = i
	}
	if lo == -1 {
		return 0, 0
	}
	return rune(lo), rune(hi)
}

// format2 is the high-byte mapping through table, used by some legacy
// CJK encodings.
type format2subHeader struct {
	firstCode        uint16
	entryCount       uint16
	idDelta          int16
	idRangeOffset    uint16
	idRangeOffsetPos int // byte offset, within data, of the idRangeOffset field itself
}

type format2 struct {
	subHeaderKeys [256]uint16
	subHeaders    []format2subHeader
	data          []byte
}

func readFormat2(r *reader.R) (Subtable, error) {
	data, err := r.ReadBytes(r.Len())
	if err != nil {
		return nil, err
	}
	if len(data) < 6+512 {
		return nil, sfntutil.ErrUnexpectedEOF
	}
	f := &format2{data: data}
	maxK := 0
	for i := 0; i < 256; i++ {
		k := be16(data[6+2*i:])
		f.subHeaderKeys[i] = k
		if idx := int(k) / 8; idx > maxK {
			maxK = idx
		}
	}
	base := 6 + 512
	for k := 0; k <= maxK; k++ {
		off := base + k*8
		if off+8 > len(data) {
			break
		}
		f.subHeaders = append(f.subHeaders, format2subHeader{
			firstCode:        be16(data[off:]),
			entryCount:       be16(data[off+2:]),
			idDelta:          int16(be16(data[off+4:])),
			idRangeOffset:    be16(data[off+6:]),
			idRangeOffsetPos: off + 6,
		})
	}
	return f, nil
}

func (f *format2) Lookup(code rune) uint16 {
	if code < 0 || code > 0xFFFF {
		return 0
	}
	c := uint16(code)
	highByte := c >> 8
	lowByte := c & 0xFF

	var sh format2subHeader
	var idx uint16
	if highByte == 0 {
		if len(f.subHeaders) == 0 {
			return 0
		}
		sh = f.subHeaders[0]
		idx = c
	} else {
		k := int(f.subHeaderKeys[highByte]) / 8
		// An out-of-range subHeaderKeys entry is treated as a miss
		// rather than dereferenced, since nothing in the format
		// guarantees it points at a real subHeader.
		if k <= 0 || k >= len(f.subHeaders) {
			return 0
		}
		sh = f.subHeaders[k]
		idx = lowByte
	}

	if idx < sh.firstCode || idx >= sh.firstCode+sh.entryCount {
		return 0
	}

	// idRangeOffset is a byte count measured from the position of the
	// idRangeOffset field itself, not from the start of the subtable.
	glyphOff := sh.idRangeOffsetPos + int(sh.idRangeOffset) + 2*int(idx-sh.firstCode)
	if glyphOff < 0 || glyphOff+2 > len(f.data) {
		return 0
	}
	g := be16(f.data[glyphOff:])
	if g == 0 {
		return 0
	}
	return uint16(int32(g) + int32(sh.idDelta))
}

func (f *format2) CodeRange() (low, high rune) {
	lo, hi := rune(-1), rune(-1)
	scan := func(code rune) {
		if f.Lookup(code) == 0 {
			return
		}
		if lo == -1 {
			lo = code
		}
		hi = code
	}
	for c := rune(0); c <= 0xFFFF; c++ {
		scan(c)
	}
	if lo == -1 {
		return 0, 0
	}
	return lo, hi
}

// format4 is the segment mapping to delta values table, the dominant
// format for BMP-only Windows/Unicode fonts.
type format4 map[uint16]uint16

func readFormat4(r *reader.R) (Subtable, error) {
	data, err := r.ReadBytes(r.Len())
	if err != nil {
		return nil, err
	}
	if len(data)%2 != 0 || len(data) < 16 {
		return nil, sfntutil.ErrUnexpectedEOF
	}
	segCountX2 := int(be16(data[6:]))
	if segCountX2%2 != 0 || 4*segCountX2+16 > len(data) {
		return nil, sfntutil.ErrUnexpectedEOF
	}
	segCount := segCountX2 / 2

	words := make([]uint16, 0, (len(data)-14)/2)
	for i := 14; i < len(data); i += 2 {
		words = append(words, be16(data[i:]))
	}
	endCode := words[:segCount]
	startCode := words[segCount+1 : 2*segCount+1]
	idDelta := words[2*segCount+1 : 3*segCount+1]
	idRangeOffset := words[3*segCount+1 : 4*segCount+1]
	glyphIDArray := words[4*segCount+1:]

	f := format4{}
	prevEnd := uint32(0)
	for k := 0; k < segCount; k++ {
		start := uint32(startCode[k])
		end := uint32(endCode[k]) + 1
		if start < prevEnd || end <= start {
			return nil, sfntutil.ErrUnexpectedEOF
		}
		prevEnd = end

		if idRangeOffset[k] == 0 {
			delta := idDelta[k]
			for idx := start; idx < end; idx++ {
				gid := uint16(idx) + delta
				if gid != 0 {
					f[uint16(idx)] = gid
				}
			}
			continue
		}
		d := int(idRangeOffset[k])/2 - (segCount - k)
		if d < 0 || d+int(end-start) > len(glyphIDArray) {
			if start == 0xFFFF {
				continue // some fonts carry garbage in the final segment
			}
			return nil, sfntutil.ErrUnexpectedEOF
		}
		for idx := start; idx < end; idx++ {
			gid := glyphIDArray[d+int(idx-start)]
			if gid != 0 {
				f[uint16(idx)] = gid
			}
		}
	}
	return f, nil
}

func (f format4) Lookup(code rune) uint16 {
	if code < 0 || code > 0xFFFF {
		return 0
	}
	return f[uint16(code)]
}

func (f format4) CodeRange() (low, high rune) {
	if len(f) == 0 {
		return 0, 0
	}
	lo, hi := rune(1<<31-1), rune(0)
	for k := range f {
		if rune(k) < lo {
			lo = rune(k)
		}
		if rune(k) > hi {
			hi = rune(k)
		}
	}
	return lo, hi
}

// format6 is the trimmed table mapping: a dense array over a single
// contiguous code range.
type format6 struct {
	firstCode    uint16
	glyphIDArray []uint16
}

func readFormat6(r *reader.R) (Subtable, error) {
	data, err := r.ReadBytes(r.Len())
	if err != nil {
		return nil, err
	}
	if len(data) < 10 {
		return nil, sfntutil.ErrUnexpectedEOF
	}
	firstCode := be16(data[6:])
	entryCount := int(be16(data[8:]))
	if 10+2*entryCount > len(data) {
		return nil, sfntutil.ErrUnexpectedEOF
	}
	glyphs := make([]uint16, entryCount)
	for i := range glyphs {
		glyphs[i] = be16(data[10+2*i:])
	}
	return &format6{firstCode: firstCode, glyphIDArray: glyphs}, nil
}

func (f *format6) Lookup(code rune) uint16 {
	if code < rune(f.firstCode) {
		return 0
	}
	idx := int(code) - int(f.firstCode)
	if idx >= len(f.glyphIDArray) {
		return 0
	}
	return f.glyphIDArray[idx]
}

func (f *format6) CodeRange() (low, high rune) {
	if len(f.glyphIDArray) == 0 {
		return 0, 0
	}
	return rune(f.firstCode), rune(f.firstCode) + rune(len(f.glyphIDArray)) - 1
}

// coverageGroup is the shared shape of format 8, 12, and 13 groups.
type coverageGroup struct {
	startCharCode rune
	endCharCode   rune
	startGlyphID  uint32
	constantGlyph bool // format 13: every code in range maps to startGlyphID
}

type segmentedCoverage []coverageGroup

func (g segmentedCoverage) Lookup(code rune) uint16 {
	idx, found := slices.BinarySearchFunc(g, code, func(seg coverageGroup, target rune) int {
		switch {
		case seg.endCharCode < target:
			return -1
		case seg.startCharCode > target:
			return 1
		default:
			return 0
		}
	})
	if !found {
		return 0
	}
	if g[idx].constantGlyph {
		return uint16(g[idx].startGlyphID)
	}
	return uint16(g[idx].startGlyphID + uint32(code-g[idx].startCharCode))
}

func (g segmentedCoverage) CodeRange() (low, high rune) {
	if len(g) == 0 {
		return 0, 0
	}
	return g[0].startCharCode, g[len(g)-1].endCharCode
}

// format8 is the mixed 16-bit and 32-bit coverage table: a BMP
// is32 bitmap (which this decoder does not need for lookups) followed
// by segmented groups identical in shape to format 12's.
func readFormat8(r *reader.R) (Subtable, error) {
	data, err := r.ReadBytes(r.Len())
	if err != nil {
		return nil, err
	}
	if len(data) < 8192+16 {
		return nil, sfntutil.ErrUnexpectedEOF
	}
	// format, reserved, length, language (12 bytes), then the 8192-byte
	// is32 bitmap, then numGroups and the groups themselves.
	groupsStart := 12 + 8192 + 4
	numGroups := be32(data[12+8192:])
	return readGroups32(data, groupsStart, numGroups, false)
}

// format10 is the trimmed array with a 32-bit start code: a dense
// array over a single contiguous (possibly supplementary-plane) range.
type format10 struct {
	startCharCode rune
	glyphIDArray  []uint16
}

func readFormat10(r *reader.R) (Subtable, error) {
	data, err := r.ReadBytes(r.Len())
	if err != nil {
		return nil, err
	}
	if len(data) < 20 {
		return nil, sfntutil.ErrUnexpectedEOF
	}
	startCharCode := be32(data[12:])
	numChars := int(be32(data[16:]))
	if 20+2*numChars > len(data) {
		return nil, sfntutil.ErrUnexpectedEOF
	}
	glyphs := make([]uint16, numChars)
	for i := range glyphs {
		glyphs[i] = be16(data[20+2*i:])
	}
	return &format10{startCharCode: rune(startCharCode), glyphIDArray: glyphs}, nil
}

func (f *format10) Lookup(code rune) uint16 {
	if code < f.startCharCode {
		return 0
	}
	idx := int(code - f.startCharCode)
	if idx >= len(f.glyphIDArray) {
		return 0
	}
	return f.glyphIDArray[idx]
}

func (f *format10) CodeRange() (low, high rune) {
	if len(f.glyphIDArray) == 0 {
		return 0, 0
	}
	return f.startCharCode, f.startCharCode + rune(len(f.glyphIDArray)) - 1
}

// format12 is the segmented coverage table, the dominant format for
// full-Unicode (including supplementary-plane) fonts.
func readFormat12(r *reader.R) (Subtable, error) {
	data, err := r.ReadBytes(r.Len())
	if err != nil {
		return nil, err
	}
	if len(data) < 16 {
		return nil, sfntutil.ErrUnexpectedEOF
	}
	numGroups := be32(data[12:])
	return readGroups32(data, 16, numGroups, false)
}

// format13 is the many-to-one range mapping table: every code in a
// group's range maps to the same constant glyph ID (used for default
// glyphs covering huge Unicode ranges).
func readFormat13(r *reader.R) (Subtable, error) {
	data, err := r.ReadBytes(r.Len())
	if err != nil {
		return nil, err
	}
	if len(data) < 16 {
		return nil, sfntutil.ErrUnexpectedEOF
	}
	numGroups := be32(data[12:])
	return readGroups32(data, 16, numGroups, true)
}

func readGroups32(data []byte, start int, numGroups uint32, constantGlyph bool) (Subtable, error) {
	if numGroups > 1_000_000 || start+int(numGroups)*12 > len(data) {
		return nil, sfntutil.ErrUnexpectedEOF
	}
	groups := make(segmentedCoverage, numGroups)
	prevEnd := rune(-1)
	for i := uint32(0); i < numGroups; i++ {
		base := start + int(i)*12
		startCode := rune(be32(data[base:]))
		endCode := rune(be32(data[base+4:]))
		startGlyph := be32(data[base+8:])
		if startCode <= prevEnd || endCode < startCode {
			return nil, sfntutil.ErrUnexpectedEOF
		}
		prevEnd = endCode
		groups[i] = coverageGroup{
			startCharCode: startCode,
			endCharCode:   endCode,
			startGlyphID:  startGlyph,
			constantGlyph: constantGlyph,
		}
	}
	return groups, nil
}
