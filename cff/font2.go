// SPDX-License-Identifier: GPL-3.0-or-later

package cff

import (
	"github.com/otfdecode/sfnt/charstring"
	"github.com/otfdecode/sfnt/font/sfntutil"
	"github.com/otfdecode/sfnt/reader"
)

// Font2 is a decoded CFF2 table. CFF2 drops the legacy Name INDEX,
// String INDEX, Charset, and Encoding of CFF1 (glyph names live in the
// font's "post" table, if anywhere) and always uses an FDArray for
// Private DICT lookup; FDSelect may be omitted, in which case the first
// FDArray entry applies to every glyph.
type Font2 struct {
	Data []byte

	TopDict     Dict
	GSubrs      Index
	CharStrings Index

	FontMatrix FontMatrix

	FDArray  []*Private
	FDSelect FDSelect // nil when the Top DICT has no FDSelect operator

	VarStore *VariationStore // nil if the Top DICT has no vstore operator
}

// Read2 decodes a CFF2 table from its raw bytes.
func Read2(data []byte) (*Font2, error) {
	r := reader.New(data)
	major, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadUint8(); err != nil { // minor
		return nil, err
	}
	if major != 2 {
		return nil, &sfntutil.UnsupportedFormatError{Where: "CFF2 header", Format: int(major)}
	}
	hdrSize, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	topDictLength, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}

	topStart := int(hdrSize)
	if topStart+int(topDictLength) > len(data) {
		return nil, sfntutil.ErrUnexpectedEOF
	}
	topDict, err := readDict(data[topStart : topStart+int(topDictLength)])
	if err != nil {
		return nil, err
	}

	if err := r.SeekAbs(topStart + int(topDictLength)); err != nil {
		return nil, err
	}
	gsubrIdx, err := readIndex2(r)
	if err != nil {
		return nil, err
	}

	f := &Font2{
		Data:       data,
		TopDict:    topDict,
		GSubrs:     gsubrIdx,
		FontMatrix: readFontMatrix(topDict),
	}

	if off, ok := topDict.Int(opCharStrings); ok && int(off) < len(data) {
		cr := reader.New(data[off:])
		f.CharStrings, err = readIndex2(cr)
		if err != nil {
			return nil, err
		}
	}
	nGlyphs := len(f.CharStrings)

	if off, ok := topDict.Int(opFDArray); ok && int(off) < len(data) {
		fr := reader.New(data[off:])
		fdIdx, err := readIndex2(fr)
		if err != nil {
			return nil, err
		}
		for _, fdBytes := range fdIdx {
			fdDict, err := readDict(fdBytes)
			if err != nil {
				continue
			}
			if v, ok := fdDict[opPrivate]; ok && len(v) == 2 {
				size, poff := int(v[0]), int(v[1])
				if poff >= 0 && poff+size <= len(data) {
					priv, err := readPrivate(data[poff:poff+size], data, poff, true)
					if err == nil {
						f.FDArray = append(f.FDArray, priv)
						continue
					}
				}
			}
			f.FDArray = append(f.FDArray, &Private{Dict: fdDict})
		}
	}

	if off, ok := topDict.Int(opFDSelect); ok && int(off) < len(data) && nGlyphs > 0 {
		f.FDSelect, err = readFDSelect(data[off:], nGlyphs)
		if err != nil {
			return nil, err
		}
	}

	if off, ok := topDict.Int(opVariationStore); ok && int(off) < len(data) {
		// The vstore offset points at a 2-byte length prefix (an
		// OpenType "VariationStore" record embedded as a DICT operand),
		// followed by the Item Variation Store data readVariationStore
		// expects.
		vr := reader.New(data[off:])
		length, err := vr.ReadUint16()
		if err == nil && int(off)+2+int(length) <= len(data) {
			f.VarStore, _ = readVariationStore(data[int(off)+2 : int(off)+2+int(length)])
		}
	}

	return f, nil
}

// NumGlyphs returns the number of CharStrings (glyphs) in the font.
func (f *Font2) NumGlyphs() int { return len(f.CharStrings) }

// GlyphPath interprets the CharString for gid at the given normalized
// variation coordinates (nil selects the font's default instance) and
// returns its outline.
func (f *Font2) GlyphPath(gid int, coords []float64) (*charstring.Path, error) {
	if gid < 0 || gid >= len(f.CharStrings) {
		return nil, &sfntutil.OffsetOutOfRangeError{Table: "CFF2 CharStrings", Offset: gid, Extent: len(f.CharStrings)}
	}
	priv := f.privateFor(gid)
	g := charstring.Glyph{
		Program:     f.CharStrings[gid],
		GlobalSubrs: [][]byte(f.GSubrs),
		IsCFF2:      true,
		Coords:      coords,
	}
	if priv != nil {
		g.LocalSubrs = [][]byte(priv.LocalSubrs)
		g.DefaultWidthX = priv.DefaultWidthX
		g.NominalWidthX = priv.NominalWidthX
	}
	if f.VarStore != nil {
		g.VarStore = f.VarStore
		if priv != nil {
			// vsindex defaults come from the Private DICT.
			g.VsIndex = int(priv.Dict.IntDefault(opVsIndex, 0))
		}
	}
	return charstring.Run(g)
}

// privateFor returns the Private DICT in effect for glyph gid: the sole
// FDArray entry when FDSelect is absent (single Font DICT), or the
// entry FDSelect names otherwise.
func (f *Font2) privateFor(gid int) *Private {
	if len(f.FDArray) == 0 {
		return nil
	}
	if f.FDSelect == nil {
		return f.FDArray[0]
	}
	fd := int(f.FDSelect.Get(gid))
	if fd < 0 || fd >= len(f.FDArray) {
		return nil
	}
	return f.FDArray[fd]
}
