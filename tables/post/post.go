// SPDX-License-Identifier: GPL-3.0-or-later

// Package post decodes the sfnt "post" table: PostScript-level
// properties (italic angle, underline metrics, fixed-pitch flag) and,
// for formats 1.0/2.0, per-glyph PostScript names.
package post

import (
	"github.com/otfdecode/sfnt/container"
	"github.com/otfdecode/sfnt/font/sfntutil"
	"github.com/otfdecode/sfnt/font/tag"
	"github.com/otfdecode/sfnt/reader"
)

// Info is the decoded content of the "post" table.
type Info struct {
	// Version is the raw 16.16 version number (0x00010000, 0x00020000,
	// 0x00025000, 0x00030000, or 0x00040000): unlike a Version16Dot16
	// field, 2.5 is not expressible as a (major, minor) pair, so it is
	// kept as the raw scalar and matched against the known constants.
	Version            uint32
	ItalicAngle        float64 // degrees; counter-clockwise from the vertical
	UnderlinePosition  int16
	UnderlineThickness int16
	IsFixedPitch       bool

	// GlyphNames is populated for format 1.0 (the standard Macintosh
	// ordering applied directly) and format 2.0 (explicit per-glyph
	// name indices, with indices >= 258 resolved against the trailing
	// Pascal-string pool). It is nil for formats 2.5, 3.0, and 4.0,
	// none of which carry names.
	GlyphNames []string
}

func init() {
	container.Register(tag.Make("post"), func(r *reader.R, entry container.Meta, f *container.Font) (interface{}, error) {
		var numGlyphs int
		if v, ok := f.Find(tag.Make("maxp")); ok {
			if m, ok := v.(interface{ NumGlyphsHint() int }); ok {
				numGlyphs = m.NumGlyphsHint()
			}
		}
		return Read(r, numGlyphs)
	})
}

// Read decodes a "post" table from r. numGlyphs (from "maxp") is only
// consulted for format 2.0's name-index array; pass 0 if unavailable.
func Read(r *reader.R, numGlyphs int) (*Info, error) {
	version, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	italicAngleRaw, err := r.ReadFixed()
	if err != nil {
		return nil, err
	}
	underlinePosition, err := r.ReadFWORD()
	if err != nil {
		return nil, err
	}
	underlineThickness, err := r.ReadFWORD()
	if err != nil {
		return nil, err
	}
	isFixedPitch, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if err := r.Skip(16); err != nil { // 4 memory-usage hint uint32 fields
		return nil, err
	}

	info := &Info{
		Version:            version,
		ItalicAngle:        float64(italicAngleRaw) / 65536,
		UnderlinePosition:  underlinePosition,
		UnderlineThickness: underlineThickness,
		IsFixedPitch:       isFixedPitch != 0,
	}

	switch version {
	case 0x00010000:
		info.GlyphNames = append([]string(nil), macGlyphNames...)
		return info, nil
	case 0x00020000:
		if err := readFormat2(r, info, numGlyphs); err != nil {
			return info, nil // names are a bonus; keep the header fields on failure
		}
		return info, nil
	case 0x00025000, 0x00030000, 0x00040000:
		return info, nil
	default:
		return nil, &sfntutil.UnsupportedFormatError{Where: "post", Format: int(version >> 16)}
	}
}

func readFormat2(r *reader.R, info *Info, numGlyphs int) error {
	n, err := r.ReadUint16()
	if err != nil {
		return err
	}
	if numGlyphs > 0 && int(n) != numGlyphs {
		n = uint16(numGlyphs)
	}
	indices := make([]uint16, n)
	for i := range indices {
		if indices[i], err = r.ReadUint16(); err != nil {
			return err
		}
	}

	var pascalStrings []string
	for r.Remaining() > 0 {
		length, err := r.ReadUint8()
		if err != nil {
			break
		}
		data, err := r.ReadBytes(int(length))
		if err != nil {
			break
		}
		pascalStrings = append(pascalStrings, string(data))
	}

	names := make([]string, len(indices))
	for i, idx := range indices {
		switch {
		case idx < 258:
			if int(idx) < len(macGlyphNames) {
				names[i] = macGlyphNames[idx]
			}
		default:
			j := int(idx) - 258
			if j < len(pascalStrings) {
				names[i] = pascalStrings[j]
			}
		}
	}
	info.GlyphNames = names
	return nil
}

// macGlyphNames is the standard Macintosh glyph-name ordering used by
// "post" format 1.0 and as the low-index namespace for format 2.0.
var macGlyphNames = []string{
	".notdef", ".null", "nonmarkingreturn", "space", "exclam", "quotedbl",
	"numbersign", "dollar", "percent", "ampersand", "quotesingle",
	"parenleft", "parenright", "asterisk", "plus", "comma", "hyphen",
	"period", "slash", "zero", "one", "two", "three", "four", "five",
	"six", "seven", "eight", "nine", "colon", "semicolon", "less",
	"equal", "greater", "question", "at", "A", "B", "C", "D", "E", "F",
	"G", "H", "I", "J", "K", "L", "M", "N", "O", "P", "Q", "R", "S", "T",
	"U", "V", "W", "X", "Y", "Z", "bracketleft", "backslash",
	"bracketright", "asciicircum", "underscore", "grave", "a", "b", "c",
	"d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o", "p", "q",
	"r", "s", "t", "u", "v", "w", "x", "y", "z", "braceleft", "bar",
	"braceright", "asciitilde", "Adieresis", "Aring", "Ccedilla",
	"Eacute", "Ntilde", "Odieresis", "Udieresis", "aacute", "agrave",
	"acircumflex", "adieresis", "atilde", "aring", "ccedilla", "eacute",
	"egrave", "ecircumflex", "edieresis", "iacute", "igrave",
	"icircumflex", "idieresis", "ntilde", "oacute", "ograve",
	"ocircumflex", "odieresis", "otilde", "uacute", "ugrave",
	"ucircumflex", "udieresis", "dagger", "degree", "cent", "sterling",
	"section", "bullet", "paragraph", "germandbls", "registered",
	"copyright", "trademark", "acute", "dieresis", "notequal", "AE",
	"Oslash", "infinity", "plusminus", "lessequal", "greaterequal",
	"yen", "mu", "partialdiff", "summation", "product", "pi", "integral",
	"ordfeminine", "ordmasculine", "Omega", "ae", "oslash",
	"questiondown", "exclamdown", "logicalnot", "radical", "florin",
	"approxequal", "Delta", "guillemotleft", "guillemotright",
	"ellipsis", "nonbreakingspace", "Agrave", "Atilde", "Otilde", "OE",
	"oe", "endash", "emdash", "quotedblleft", "quotedblright",
	"quoteleft", "quoteright", "divide", "lozenge", "ydieresis",
	"Ydieresis", "fraction", "currency", "guilsinglleft",
	"guilsinglright", "fi", "fl", "daggerdbl", "periodcentered",
	"quotesinglbase", "quotedblbase", "perthousand", "Acircumflex",
	"Ecircumflex", "Aacute", "Edieresis", "Egrave", "Iacute",
	"Icircumflex", "Idieresis", "Igrave", "Oacute", "Ocircumflex",
	"apple", "Ograve", "Uacute", "Ucircumflex", "Ugrave", "dotlessi",
	"circumflex", "tilde", "macron", "breve", "dotaccent", "ring",
	"cedilla", "hungarumlaut", "ogonek", "caron", "Lslash", "lslash",
	"Scaron", "scaron", "Zcaron", "zcaron", "brokenbar", "Eth", "eth",
	"Yacute", "yacute", "Thorn", "thorn", "minus", "multiply",
	"onesuperior", "twosuperior", "threesuperior", "onehalf",
	"onequarter", "threequarters", "franc", "Gbreve", "gbreve",
	"Idotaccent", "Scedilla", "scedilla", "Cacute", "cacute", "Ccaron",
	"ccaron", "dcroat",
}

// GlyphName returns the name of glyph gid, or "" if the table's format
// carries no names or gid is out of range.
func (info *Info) GlyphName(gid uint16) string {
	if int(gid) >= len(info.GlyphNames) {
		return ""
	}
	return info.GlyphNames[gid]
}
