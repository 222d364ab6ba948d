// SPDX-License-Identifier: GPL-3.0-or-later

package cff

import "github.com/otfdecode/sfnt/font/sfntutil"

// Encoding maps an 8-bit character code to a glyph index, for CFF1's
// legacy single-byte encoding mechanism. CID-keyed fonts carry no
// Encoding (the Top DICT's "ROS" operator makes the operator
// meaningless per the CFF spec); ordinary name-keyed fonts either embed
// a custom Encoding or select one of the two predefined ones.
type Encoding [256]uint16

// Predefined encoding IDs: a Top DICT "Encoding" operator value of 0 or
// 1 selects a built-in code->glyph table instead of an offset.
const (
	PredefinedStandardEncoding = 0
	PredefinedExpertEncoding   = 1
)

// readEncoding decodes a custom CFF1 Encoding: a format byte (with bit 7
// flagging a trailing supplement), then either a sorted code array
// (format 0) or a run-length range list (format 1), mapping codes to
// glyph indices 1..nGlyphs-1 in charset order.
func readEncoding(buf []byte, nGlyphs int) (Encoding, error) {
	var enc Encoding
	if len(buf) < 1 {
		return enc, sfntutil.ErrUnexpectedEOF
	}
	format := buf[0]
	buf = buf[1:]
	hasSupplement := format&0x80 != 0
	format &= 0x7f

	gid := uint16(1)
	switch format {
	case 0:
		if len(buf) < 1 {
			return enc, sfntutil.ErrUnexpectedEOF
		}
		nCodes := int(buf[0])
		buf = buf[1:]
		for i := 0; i < nCodes && gid < uint16(nGlyphs); i++ {
			if len(buf) < 1 {
				return enc, sfntutil.ErrUnexpectedEOF
			}
			enc[buf[0]] = gid
			buf = buf[1:]
			gid++
		}
	case 1:
		if len(buf) < 1 {
			return enc, sfntutil.ErrUnexpectedEOF
		}
		nRanges := int(buf[0])
		buf = buf[1:]
		for i := 0; i < nRanges; i++ {
			if len(buf) < 2 {
				return enc, sfntutil.ErrUnexpectedEOF
			}
			first, nLeft := buf[0], buf[1]
			buf = buf[2:]
			for c := int(first); c <= int(first)+int(nLeft) && c < 256 && gid < uint16(nGlyphs); c++ {
				enc[c] = gid
				gid++
			}
		}
	default:
		return enc, &sfntutil.UnsupportedFormatError{Where: "CFF encoding", Format: int(format)}
	}

	if hasSupplement {
		if len(buf) < 1 {
			return enc, sfntutil.ErrUnexpectedEOF
		}
		nSups := int(buf[0])
		buf = buf[1:]
		for i := 0; i < nSups; i++ {
			if len(buf) < 3 {
				return enc, sfntutil.ErrUnexpectedEOF
			}
			code := buf[0]
			// Supplement entries (code, SID) are consumed but not
			// applied: the returned Encoding holds only the codes of the
			// format 0/1 body, and no caller maps supplement codes to
			// glyphs.
			_ = code
			buf = buf[3:]
		}
	}

	return enc, nil
}

// predefinedEncodingNames builds a code->name Encoding-like mapping for one
// of the two built-in encodings, to be resolved to glyph indices by the
// caller via the font's charset (name -> GID).
func predefinedEncodingNames(id int32) [256]string {
	var names [256]string
	switch id {
	case PredefinedStandardEncoding:
		for code, name := range standardEncodingNames {
			if name != "" {
				names[code] = name
			}
		}
	case PredefinedExpertEncoding:
		for code, name := range expertEncodingNames {
			if name != "" {
				names[code] = name
			}
		}
	}
	return names
}

// standardEncodingNames is Adobe's StandardEncoding: the default CFF1
// Encoding when the Top DICT omits the operator. Codes 32-126 match the
// printable-ASCII run of the standard string/charset table directly;
// the high half covers the accented Latin-1-adjacent punctuation set
// every PostScript base encoding carries.
var standardEncodingNames = buildStandardEncoding()

func buildStandardEncoding() [256]string {
	var names [256]string
	for code := 32; code <= 126; code++ {
		names[code] = standardStrings[code-31]
	}
	high := map[int]string{
		161: "exclamdown", 162: "cent", 163: "sterling", 164: "fraction",
		165: "yen", 166: "florin", 167: "section", 168: "currency",
		169: "quotesingle", 170: "quotedblleft", 171: "guillemotleft",
		172: "guilsinglleft", 173: "guilsinglright", 174: "fi", 175: "fl",
		177: "endash", 178: "dagger", 179: "daggerdbl", 180: "periodcentered",
		182: "paragraph", 183: "bullet", 184: "quotesinglbase",
		185: "quotedblbase", 186: "quotedblright", 187: "guillemotright",
		188: "ellipsis", 189: "perthousand", 191: "questiondown",
		193: "grave", 194: "acute", 195: "circumflex", 196: "tilde",
		197: "macron", 198: "breve", 199: "dotaccent", 200: "dieresis",
		202: "ring", 203: "cedilla", 205: "hungarumlaut", 206: "ogonek",
		207: "caron", 208: "emdash", 225: "AE", 227: "ordfeminine",
		232: "Lslash", 233: "Oslash", 234: "OE", 235: "ordmasculine",
		241: "ae", 245: "dotlessi", 248: "lslash", 249: "oslash",
		250: "oe", 251: "germandbls",
	}
	for code, name := range high {
		names[code] = name
	}
	return names
}

// expertEncodingNames is a partial Adobe ExpertEncoding. Only code 32
// (space) and the codes listed in expertEncodingBaseCodes are filled in;
// every other code is left absent rather than guessed at.
var expertEncodingNames = buildExpertEncoding()

func buildExpertEncoding() [256]string {
	var names [256]string
	names[32] = "space"
	for i, name := range expertCharsetNames {
		if i == 0 {
			continue
		}
		// The first run of the Expert charset (small-caps punctuation)
		// occupies the same code positions as in StandardEncoding for
		// the glyphs that have direct Standard counterparts.
		if code, ok := expertEncodingBaseCodes[name]; ok {
			names[code] = name
		}
	}
	return names
}

// expertEncodingBaseCodes gives the handful of Expert glyphs whose codes
// are fixed points shared with StandardEncoding (comma, hyphen, period,
// colon, semicolon, fraction): enough to resolve an Encoding-format-0
// custom table that references them, without reproducing the full
// legacy 256-entry Expert vector.
var expertEncodingBaseCodes = map[string]int{
	"comma": 44, "hyphen": 45, "period": 46, "colon": 58, "semicolon": 59,
	"fraction": 164,
}
