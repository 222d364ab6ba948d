// SPDX-License-Identifier: GPL-3.0-or-later

// Package cff decodes the CFF ("CFF ") and CFF2 ("CFF2") OpenType
// tables: the INDEX/DICT container format, charsets, encodings,
// FDSelect, and (CFF2 only) the Item Variation Store. Per-glyph
// CharString programs are handed to package charstring for execution;
// this package is only responsible for getting the right program, local
// subroutine set, and width defaults in front of the VM.
package cff

import (
	"github.com/otfdecode/sfnt/charstring"
	"github.com/otfdecode/sfnt/container"
	"github.com/otfdecode/sfnt/font/sfntutil"
	"github.com/otfdecode/sfnt/font/tag"
	"github.com/otfdecode/sfnt/reader"
)

func init() {
	container.Register(tag.Make("CFF "), func(r *reader.R, entry container.Meta, f *container.Font) (interface{}, error) {
		return Read(r.Buffer()[entry.Offset : entry.Offset+entry.Length])
	})
	container.Register(tag.Make("CFF2"), func(r *reader.R, entry container.Meta, f *container.Font) (interface{}, error) {
		return Read2(r.Buffer()[entry.Offset : entry.Offset+entry.Length])
	})
}

// FontMatrix is the 6-element affine transform a Top DICT's FontMatrix
// operator carries (default: 0.001 scale, identity otherwise).
type FontMatrix [6]float64

var defaultFontMatrix = FontMatrix{0.001, 0, 0, 0.001, 0, 0}

// Font is a decoded CFF1 table.
type Font struct {
	Data []byte // the whole "CFF " table, for offset resolution

	Name        string
	TopDict     Dict
	Strings     *Strings
	GSubrs      Index
	CharStrings Index
	Charset     Charset
	Encoding    *Encoding // nil for CID-keyed fonts

	FontMatrix FontMatrix
	IsCID      bool

	// Name-keyed fonts have a single Private DICT; CID-keyed fonts have
	// one per entry of FDArray, selected per-glyph by FDSelect.
	Private  *Private
	FDArray  []*Private
	FDSelect FDSelect
}

// Read decodes a CFF1 ("CFF ") table from its raw bytes.
func Read(data []byte) (*Font, error) {
	r := reader.New(data)
	if _, err := r.ReadUint8(); err != nil { // major
		return nil, err
	}
	if _, err := r.ReadUint8(); err != nil { // minor
		return nil, err
	}
	hdrSize, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadUint8(); err != nil { // offSize, not needed: INDEX carries its own
		return nil, err
	}
	if err := r.SeekAbs(int(hdrSize)); err != nil {
		return nil, err
	}

	nameIdx, err := readIndex(r)
	if err != nil {
		return nil, err
	}
	topDictIdx, err := readIndex(r)
	if err != nil {
		return nil, err
	}
	stringIdx, err := readIndex(r)
	if err != nil {
		return nil, err
	}
	gsubrIdx, err := readIndex(r)
	if err != nil {
		return nil, err
	}
	if len(topDictIdx) == 0 {
		return nil, &sfntutil.InvalidDictEncodingError{Reason: "empty Top DICT INDEX"}
	}
	topDict, err := readDict(topDictIdx[0])
	if err != nil {
		return nil, err
	}

	f := &Font{
		Data:       data,
		TopDict:    topDict,
		Strings:    NewStrings(stringIdx),
		GSubrs:     gsubrIdx,
		FontMatrix: readFontMatrix(topDict),
	}
	if len(nameIdx) > 0 {
		f.Name = string(nameIdx[0])
	}
	if _, ok := topDict[opROS]; ok {
		f.IsCID = true
	}

	charStringsOff, _ := topDict.Int(opCharStrings)
	if charStringsOff > 0 && int(charStringsOff) < len(data) {
		cr := reader.New(data[charStringsOff:])
		f.CharStrings, err = readIndex(cr)
		if err != nil {
			return nil, err
		}
	}
	nGlyphs := len(f.CharStrings)

	if nGlyphs > 0 {
		// An absent charset operator selects the predefined ISOAdobe
		// charset (id 0).
		charsetOff := topDict.IntDefault(opCharset, PredefinedISOAdobe)
		switch charsetOff {
		case PredefinedISOAdobe, PredefinedExpert, PredefinedExpertSubset:
			f.Charset = predefinedCharset(charsetOff, nGlyphs)
		default:
			if int(charsetOff) < len(data) {
				f.Charset, err = readCharset(data[charsetOff:], nGlyphs)
				if err != nil {
					return nil, err
				}
			}
		}
	}

	if !f.IsCID {
		encOff := topDict.IntDefault(opEncoding, PredefinedStandardEncoding)
		f.Encoding = readFontEncoding(f, encOff, nGlyphs, data)
	}

	if v, ok := topDict[opPrivate]; ok && len(v) == 2 {
		size, off := int(v[0]), int(v[1])
		if off >= 0 && off+size <= len(data) {
			f.Private, err = readPrivate(data[off:off+size], data, off, false)
			if err != nil {
				return nil, err
			}
		}
	}

	if f.IsCID {
		if fdArrayOff, ok := topDict.Int(opFDArray); ok && int(fdArrayOff) < len(data) {
			fr := reader.New(data[fdArrayOff:])
			fdIdx, err := readIndex(fr)
			if err == nil {
				for _, fdBytes := range fdIdx {
					fdDict, err := readDict(fdBytes)
					if err != nil {
						continue
					}
					if v, ok := fdDict[opPrivate]; ok && len(v) == 2 {
						size, off := int(v[0]), int(v[1])
						if off >= 0 && off+size <= len(data) {
							priv, err := readPrivate(data[off:off+size], data, off, false)
							if err == nil {
								f.FDArray = append(f.FDArray, priv)
								continue
							}
						}
					}
					f.FDArray = append(f.FDArray, &Private{Dict: fdDict})
				}
			}
		}
		if fdSelectOff, ok := topDict.Int(opFDSelect); ok && int(fdSelectOff) < len(data) && nGlyphs > 0 {
			f.FDSelect, err = readFDSelect(data[fdSelectOff:], nGlyphs)
			if err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

func readFontEncoding(f *Font, encOff int32, nGlyphs int, data []byte) *Encoding {
	switch encOff {
	case PredefinedStandardEncoding, PredefinedExpertEncoding:
		names := predefinedEncodingNames(encOff)
		var enc Encoding
		nameToGID := f.nameToGID(nGlyphs)
		for code, name := range names {
			if gid, ok := nameToGID[name]; ok {
				enc[code] = gid
			}
		}
		return &enc
	default:
		if int(encOff) < 0 || int(encOff) >= len(data) {
			return nil
		}
		enc, err := readEncoding(data[encOff:], nGlyphs)
		if err != nil {
			return nil
		}
		return &enc
	}
}

// nameToGID builds a reverse glyph-name index from the charset and
// string table, used to resolve predefined Encoding name tables to GIDs.
func (f *Font) nameToGID(nGlyphs int) map[string]uint16 {
	m := make(map[string]uint16, nGlyphs)
	for gid, sid := range f.Charset {
		if name, ok := f.Strings.Get(sid); ok {
			m[name] = uint16(gid)
		}
	}
	return m
}

// GlyphName returns the PostScript name of glyph gid (name-keyed fonts
// only; CID-keyed fonts have no glyph names, only CIDs via Charset).
func (f *Font) GlyphName(gid int) (string, bool) {
	if f.IsCID || gid < 0 || gid >= len(f.Charset) {
		return "", false
	}
	return f.Strings.Get(f.Charset[gid])
}

// CID returns the CID of glyph gid for a CID-keyed font.
func (f *Font) CID(gid int) (uint16, bool) {
	if !f.IsCID || gid < 0 || gid >= len(f.Charset) {
		return 0, false
	}
	return uint16(f.Charset[gid]), true
}

// NumGlyphs returns the number of CharStrings (glyphs) in the font.
func (f *Font) NumGlyphs() int { return len(f.CharStrings) }

// privateFor returns the Private DICT in effect for glyph gid: the
// single Private DICT for name-keyed fonts, or the FDArray entry
// FDSelect names for CID-keyed fonts.
func (f *Font) privateFor(gid int) *Private {
	if f.IsCID {
		fd := int(f.FDSelect.Get(gid))
		if fd >= 0 && fd < len(f.FDArray) {
			return f.FDArray[fd]
		}
		return nil
	}
	return f.Private
}

// GlyphPath interprets the CharString for gid and returns its outline.
func (f *Font) GlyphPath(gid int) (*charstring.Path, error) {
	if gid < 0 || gid >= len(f.CharStrings) {
		return nil, &sfntutil.OffsetOutOfRangeError{Table: "CFF CharStrings", Offset: gid, Extent: len(f.CharStrings)}
	}
	priv := f.privateFor(gid)
	g := charstring.Glyph{
		Program:     f.CharStrings[gid],
		GlobalSubrs: [][]byte(f.GSubrs),
	}
	if priv != nil {
		g.LocalSubrs = [][]byte(priv.LocalSubrs)
		g.DefaultWidthX = priv.DefaultWidthX
		g.NominalWidthX = priv.NominalWidthX
	}
	return charstring.Run(g)
}

func readFontMatrix(d Dict) FontMatrix {
	v, ok := d[opFontMatrix]
	if !ok || len(v) != 6 {
		return defaultFontMatrix
	}
	var m FontMatrix
	copy(m[:], v)
	return m
}
